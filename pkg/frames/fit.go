package frames

import (
	"fmt"
	"image"
)

// Fit controls how a frame is scaled within a target box.
type Fit int

const (
	// FitContain scales the frame to fit within the box while keeping its
	// aspect ratio. This is the zero value, making it the default.
	FitContain Fit = iota
	// FitFill stretches the frame to fill the box.
	FitFill
	// FitCover scales the frame to cover the box, cropping as needed.
	FitCover
	// FitNone leaves the frame at its intrinsic size.
	FitNone
	// FitScaleDown fits the frame if needed, but never scales up.
	FitScaleDown
)

// String returns a human-readable representation of the fit mode.
func (f Fit) String() string {
	switch f {
	case FitContain:
		return "contain"
	case FitFill:
		return "fill"
	case FitCover:
		return "cover"
	case FitNone:
		return "none"
	case FitScaleDown:
		return "scale_down"
	default:
		return fmt.Sprintf("Fit(%d)", int(f))
	}
}

// FitRects computes source and destination rectangles for drawing a frame of
// size src into a box of size box, centered.
func FitRects(f Fit, src, box image.Point) (sr, dr image.Rectangle) {
	fullSrc := image.Rect(0, 0, src.X, src.Y)
	fullDst := image.Rect(0, 0, box.X, box.Y)
	if src.X <= 0 || src.Y <= 0 || box.X <= 0 || box.Y <= 0 {
		return fullSrc, image.Rectangle{}
	}

	switch f {
	case FitFill:
		return fullSrc, fullDst

	case FitContain, FitScaleDown:
		scale := min(float64(box.X)/float64(src.X), float64(box.Y)/float64(src.Y))
		if f == FitScaleDown && scale > 1 {
			scale = 1
		}
		w := int(float64(src.X) * scale)
		h := int(float64(src.Y) * scale)
		return fullSrc, centered(fullDst, w, h)

	case FitCover:
		scale := max(float64(box.X)/float64(src.X), float64(box.Y)/float64(src.Y))
		// Crop in source coordinates so the destination fills the box.
		w := int(float64(box.X) / scale)
		h := int(float64(box.Y) / scale)
		return centered(fullSrc, w, h), fullDst

	case FitNone:
		return fullSrc, centered(fullDst, src.X, src.Y)
	}
	return fullSrc, fullDst
}

// centered returns a w by h rectangle centered within outer.
func centered(outer image.Rectangle, w, h int) image.Rectangle {
	x := outer.Min.X + (outer.Dx()-w)/2
	y := outer.Min.Y + (outer.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}
