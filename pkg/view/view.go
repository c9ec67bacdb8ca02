// Package view renders a playback driver's current frame onto an in-memory
// canvas, with content-fit scaling and a dirty latch.
//
// AnimatedImageView is the glue between the playback driver and a host
// compositor: the driver invalidates the view when the visible frame
// changes, and the host repaints by calling [AnimatedImageView.Paint] only
// when [AnimatedImageView.NeedsDisplay] reports true.
package view

import (
	"image"
	"sync"
	"sync/atomic"

	"golang.org/x/image/draw"

	"github.com/go-anima/anima/pkg/frames"
	"github.com/go-anima/anima/pkg/playback"
	"github.com/go-anima/anima/pkg/timing"
)

// AnimatedImageView is a widget surface showing an animated image.
//
// The view owns its playback driver; Dispose releases both. All playback
// operations are reached through [AnimatedImageView.Driver].
type AnimatedImageView struct {
	driver *playback.Driver
	size   image.Point
	fit    frames.Fit

	dirty atomic.Bool

	mu     sync.Mutex
	canvas *image.RGBA
}

// NewAnimatedImageView creates a view of the given pixel size, driven by
// ticks from link. The fit mode controls how frames are scaled into the
// view's bounds.
func NewAnimatedImageView(link timing.Link, size image.Point, fit frames.Fit) *AnimatedImageView {
	v := &AnimatedImageView{
		size: size,
		fit:  fit,
	}
	v.driver = playback.NewDriver(link, v, size, fit)
	v.dirty.Store(true)
	return v
}

// Driver returns the view's playback driver.
func (v *AnimatedImageView) Driver() *playback.Driver {
	return v.driver
}

// Size returns the view's pixel size.
func (v *AnimatedImageView) Size() image.Point {
	return v.size
}

// Invalidate marks the view as needing a repaint. The driver calls this
// whenever the visible frame changes.
func (v *AnimatedImageView) Invalidate() {
	v.dirty.Store(true)
}

// NeedsDisplay reports whether the displayed content changed since the last
// Paint.
func (v *AnimatedImageView) NeedsDisplay() bool {
	return v.dirty.Load()
}

// Paint draws the driver's current image into the view's canvas and clears
// the dirty latch. The returned image is owned by the view and valid until
// the next Paint. An empty view paints a transparent canvas.
func (v *AnimatedImageView) Paint() *image.RGBA {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.dirty.Store(false)

	if v.canvas == nil {
		v.canvas = image.NewRGBA(image.Rect(0, 0, v.size.X, v.size.Y))
	}
	clearRGBA(v.canvas)

	src := v.driver.CurrentImage()
	if src == nil {
		return v.canvas
	}

	bounds := src.Bounds()
	if bounds.Dx() == v.size.X && bounds.Dy() == v.size.Y {
		// Prescaled frames already match the canvas exactly.
		draw.Copy(v.canvas, v.canvas.Bounds().Min, src, bounds, draw.Src, nil)
		return v.canvas
	}

	sr, dr := frames.FitRects(v.fit, bounds.Size(), v.size)
	if sr.Empty() || dr.Empty() {
		return v.canvas
	}
	draw.ApproxBiLinear.Scale(v.canvas, dr, src, sr.Add(bounds.Min), draw.Over, nil)
	return v.canvas
}

// Dispose releases the view and its driver, detaching the refresh-clock
// subscription.
func (v *AnimatedImageView) Dispose() {
	v.driver.Dispose()
	v.mu.Lock()
	v.canvas = nil
	v.mu.Unlock()
}

func clearRGBA(img *image.RGBA) {
	for i := range img.Pix {
		img.Pix[i] = 0
	}
}
