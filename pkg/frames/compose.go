package frames

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"

	"golang.org/x/image/draw"
)

// decode parses and validates GIF data. Delay, disposal and global
// background index values are checked for consistency so the compositor can
// rely on them later without re-validating.
func decode(data []byte) (*gif.GIF, error) {
	g, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if len(g.Image) == 0 {
		return nil, fmt.Errorf("no frames decoded")
	}
	if len(g.Image) != len(g.Delay) && g.Delay != nil {
		return nil, fmt.Errorf("mismatched image count and delay count: %d != %d", len(g.Image), len(g.Delay))
	}
	if len(g.Image) != len(g.Disposal) && g.Disposal != nil {
		return nil, fmt.Errorf("mismatched image count and disposal count: %d != %d", len(g.Image), len(g.Disposal))
	}
	pal, ok := g.Config.ColorModel.(color.Palette)
	if idx := int(g.BackgroundIndex); ok && idx >= len(pal) {
		return nil, fmt.Errorf("global background colour index not in palette: %d", idx)
	}
	return g, nil
}

// logicalBounds returns the GIF's logical screen rectangle, falling back to
// the union of frame bounds when the header does not record a size.
func logicalBounds(g *gif.GIF) image.Rectangle {
	if g.Config.Width > 0 && g.Config.Height > 0 {
		return image.Rect(0, 0, g.Config.Width, g.Config.Height)
	}
	var b image.Rectangle
	for _, f := range g.Image {
		b = b.Union(f.Bounds())
	}
	return b
}

// compositor renders successive GIF frames onto a shared canvas, honouring
// per-frame disposal modes. It is sequential: each call to next composites
// the frame after the previous one, wrapping past the end.
//
// The returned canvas is shared between calls; callers must copy out what
// they need before calling next again.
type compositor struct {
	g          *gif.GIF
	canvas     *image.RGBA
	background image.Image

	idx      int
	pending  int // frame whose disposal is still to be applied, -1 if none
	restored *image.RGBA
}

func newCompositor(g *gif.GIF) *compositor {
	c := &compositor{
		g:       g,
		canvas:  image.NewRGBA(logicalBounds(g)),
		pending: -1,
	}
	if pal, ok := g.Config.ColorModel.(color.Palette); ok {
		c.background = &image.Uniform{pal[g.BackgroundIndex]}
	}
	return c
}

func (c *compositor) next() *image.RGBA {
	f := c.idx
	c.idx = (c.idx + 1) % len(c.g.Image)
	frame := c.g.Image[f]

	c.applyDisposal()

	if c.disposal(f) == gif.DisposalPrevious {
		c.restored = image.NewRGBA(frame.Bounds())
		draw.Copy(c.restored, frame.Bounds().Min, c.canvas, frame.Bounds(), draw.Src, nil)
	}
	draw.Copy(c.canvas, frame.Bounds().Min, frame, frame.Bounds(), draw.Over, nil)
	c.pending = f
	return c.canvas
}

// applyDisposal erases or restores the region covered by the previously
// composited frame, per its disposal mode.
func (c *compositor) applyDisposal() {
	if c.pending < 0 {
		return
	}
	frame := c.g.Image[c.pending]
	switch c.disposal(c.pending) {
	case gif.DisposalBackground:
		background := c.background
		if background == nil {
			if idx := int(c.g.BackgroundIndex); idx < len(frame.Palette) {
				background = &image.Uniform{frame.Palette[idx]}
			} else {
				background = image.Transparent
			}
		}
		draw.Copy(c.canvas, frame.Bounds().Min, background, frame.Bounds(), draw.Src, nil)
	case gif.DisposalPrevious:
		if c.restored != nil {
			draw.Copy(c.canvas, c.restored.Bounds().Min, c.restored, c.restored.Bounds(), draw.Src, nil)
		}
	}
	c.pending = -1
}

func (c *compositor) disposal(f int) byte {
	if c.g.Disposal == nil {
		return gif.DisposalNone
	}
	return c.g.Disposal[f]
}

// renderFitted scales src into a freshly allocated target-sized image using
// the given fit mode.
func renderFitted(src *image.RGBA, target image.Point, fit Fit) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, target.X, target.Y))
	sr, dr := FitRects(fit, src.Bounds().Size(), target)
	if sr.Empty() || dr.Empty() {
		return dst
	}
	draw.ApproxBiLinear.Scale(dst, dr, src, sr, draw.Over, nil)
	return dst
}

// clone copies a shared canvas into an independent image.
func clone(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}
