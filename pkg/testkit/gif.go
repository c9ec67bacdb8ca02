package testkit

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
)

// GIFSpec describes a synthetic animated GIF for tests.
type GIFSpec struct {
	// Frames is the number of frames. Each frame is filled with a distinct
	// palette colour so frame identity is observable in pixels.
	Frames int
	// DelayCS is the per-frame delay in hundredths of a second.
	DelayCS int
	// Width and Height are the logical screen size. Zero defaults to 8x8.
	Width, Height int
	// LoopCount is written to the GIF loop extension using image/gif
	// semantics: 0 loops forever, -1 writes no extension (play once).
	LoopCount int
}

// EncodeGIF builds GIF bytes from spec. It panics on encoding failure, which
// cannot happen for valid specs.
func EncodeGIF(spec GIFSpec) []byte {
	w, h := spec.Width, spec.Height
	if w == 0 {
		w = 8
	}
	if h == 0 {
		h = 8
	}
	palette := color.Palette{
		color.RGBA{A: 0xff},
		color.RGBA{R: 0xff, A: 0xff},
		color.RGBA{G: 0xff, A: 0xff},
		color.RGBA{B: 0xff, A: 0xff},
		color.RGBA{R: 0xff, G: 0xff, A: 0xff},
		color.RGBA{R: 0xff, B: 0xff, A: 0xff},
		color.RGBA{G: 0xff, B: 0xff, A: 0xff},
		color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}

	g := &gif.GIF{
		LoopCount: spec.LoopCount,
		Config: image.Config{
			ColorModel: palette,
			Width:      w,
			Height:     h,
		},
	}
	for i := 0; i < spec.Frames; i++ {
		frame := image.NewPaletted(image.Rect(0, 0, w, h), palette)
		idx := uint8(i % len(palette))
		for p := range frame.Pix {
			frame.Pix[p] = idx
		}
		g.Image = append(g.Image, frame)
		g.Delay = append(g.Delay, spec.DelayCS)
		g.Disposal = append(g.Disposal, gif.DisposalNone)
	}

	var buf bytes.Buffer
	if err := gif.EncodeAll(&buf, g); err != nil {
		panic(err)
	}
	return buf.Bytes()
}
