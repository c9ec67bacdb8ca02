package main

import (
	"fmt"
	"image"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"
)

// renderCells draws img into a cols x rows block of terminal cells using
// upper-half-block characters, packing two pixel rows per cell. The image is
// downscaled to the cell grid first; aspect-ratio handling is the frame
// source's job, so the thumbnail here only has to match the grid.
func renderCells(img image.Image, cols, rows int) string {
	if img == nil || cols < 1 || rows < 1 {
		return ""
	}
	scaled := resize.Thumbnail(uint(cols), uint(rows*2), img, resize.NearestNeighbor)
	bounds := scaled.Bounds()
	w := bounds.Dx()
	h := bounds.Dy()

	var sb strings.Builder
	for y := 0; y < h; y += 2 {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			top := cellColor(scaled, bounds.Min.X+x, bounds.Min.Y+y)
			bottom := top
			if y+1 < h {
				bottom = cellColor(scaled, bounds.Min.X+x, bounds.Min.Y+y+1)
			}
			sb.WriteString(lipgloss.NewStyle().
				Foreground(top).
				Background(bottom).
				Render("▀"))
		}
	}
	return sb.String()
}

func cellColor(img image.Image, x, y int) lipgloss.Color {
	r, g, b, _ := img.At(x, y).RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}
