// Package playback drives animated-image playback against a refresh clock.
//
// # Core Components
//
//   - [Driver]: owns the decoded frame source and the refresh-clock
//     subscription, advances the current frame on every tick, counts loops
//     and stops playback when the configured loop limit is reached.
//
//   - [Delegate]: an optional, non-owning observer notified off the tick
//     path when playback stops because the loop limit was reached.
//
//   - [Invalidator]: the rendering surface hook; the driver marks it dirty
//     whenever the visible frame changes, and that is the only write path to
//     the displayed image during playback.
//
// # Basic Usage
//
//	link := timing.NewDisplayLink(timing.DefaultRefreshInterval)
//	driver := playback.NewDriver(link, surface, image.Pt(200, 200), frames.FitContain)
//	defer driver.Dispose()
//
//	driver.SetMaxLoopCount(3)
//	driver.Animate(gifBytes)
//
// The driver never blocks on decoding: frames are preloaded on a background
// worker and a tick that lands on an undecoded frame simply leaves the
// previous frame displayed.
package playback

import (
	"bytes"
	"image"
	_ "image/gif" // first-frame preview decoding
	"sync"
	"time"

	"github.com/go-anima/anima/pkg/errors"
	"github.com/go-anima/anima/pkg/frames"
	"github.com/go-anima/anima/pkg/imageio"
	"github.com/go-anima/anima/pkg/timing"
)

// DefaultFramePreloadCount bounds the frame source's memory footprint when
// no explicit preload count is configured.
const DefaultFramePreloadCount = 50

// Delegate observes playback lifecycle events. The driver holds the delegate
// non-owningly: clearing it with SetDelegate(nil) guarantees no further
// notifications, including ones already scheduled.
type Delegate interface {
	// PlaybackStopped is called after playback stops because the configured
	// loop limit was reached. It is invoked asynchronously, off the tick
	// path. User-initiated Stop does not trigger it.
	PlaybackStopped(d *Driver)
}

// DelegateFunc adapts a function to the Delegate interface.
type DelegateFunc func(*Driver)

func (f DelegateFunc) PlaybackStopped(d *Driver) { f(d) }

// Invalidator marks a rendering surface as needing a repaint.
type Invalidator interface {
	Invalidate()
}

// Driver is the playback state machine for one animated image.
//
// A Driver is bound to a single [timing.Link] for its whole life. The link
// is attached lazily on the first successful prepare and detached exactly
// once, in Dispose, regardless of pause state. Stopping playback pauses the
// link rather than detaching it.
//
// Loop counting follows the prepared content's frame positions: each time
// the source reaches its final frame the loop count is incremented once.
// With a positive loop limit, reaching it pauses the link, resets the count
// to zero and notifies the delegate asynchronously.
type Driver struct {
	link     timing.Link
	surface  Invalidator
	dispatch func(func())

	mu         sync.Mutex
	target     image.Point
	fit        frames.Fit
	preload    int
	maxLoops   int
	prescale   bool
	source     *frames.Source
	loaded     []byte
	static     image.Image
	loopCount  int
	lastLatch  bool
	attached   bool
	delegate   Delegate
	generation uint64
}

// NewDriver creates a driver that ticks on link and marks surface dirty when
// the visible frame changes. surface may be nil. target and fit are passed
// to the frame source for prescaling.
//
// Stop notifications run on a fresh goroutine by default; hosts with their
// own event loop can reroute them with SetDispatch.
func NewDriver(link timing.Link, surface Invalidator, target image.Point, fit frames.Fit) *Driver {
	return &Driver{
		link:     link,
		surface:  surface,
		dispatch: func(fn func()) { go fn() },
		target:   target,
		fit:      fit,
		preload:  DefaultFramePreloadCount,
		prescale: true,
	}
}

// SetDispatch replaces the asynchronous executor used for delegate
// notifications, e.g. to hop onto a host UI thread.
func (d *Driver) SetDispatch(dispatch func(func())) {
	if dispatch == nil {
		dispatch = func(fn func()) { go fn() }
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.dispatch = dispatch
}

// SetDelegate registers the playback observer. Passing nil clears it and
// cancels any not-yet-delivered stop notification.
func (d *Driver) SetDelegate(delegate Delegate) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.delegate = delegate
	d.generation++
}

// FramePreloadCount returns the preload window applied to newly prepared
// content.
func (d *Driver) FramePreloadCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.preload
}

// SetFramePreloadCount bounds how many decoded frames the next prepared
// frame source keeps in memory. Values below 2 are clamped to 2, the
// smallest window that lets decoding run ahead of the displayed frame.
func (d *Driver) SetFramePreloadCount(n int) {
	if n < 2 {
		n = 2
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.preload = n
}

// MaxLoopCount returns the configured loop limit.
func (d *Driver) MaxLoopCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maxLoops
}

// SetMaxLoopCount configures loop termination: 0 loops forever, -1 defers to
// the loop count embedded in the content (forever if it has none), and a
// positive n stops playback after exactly n full cycles.
func (d *Driver) SetMaxLoopCount(n int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.maxLoops = n
}

// NeedsPrescaling returns whether newly prepared content is pre-resized to
// the target size.
func (d *Driver) NeedsPrescaling() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.prescale
}

// SetNeedsPrescaling controls whether the next prepared frame source
// pre-resizes frames to the target size, trading CPU for memory.
func (d *Driver) SetNeedsPrescaling(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.prescale = enabled
}

// PrepareForAnimation decodes data and replaces the current content with it,
// without starting playback. The loop count resets to zero, a static
// first-frame preview becomes visible immediately, and frame preloading
// begins in the background.
//
// Undecodable data is a reported no-op: the previously prepared content, if
// any, stays intact.
func (d *Driver) PrepareForAnimation(data []byte) {
	d.prepare("playback.PrepareForAnimation", "", data)
}

// PrepareForAnimationNamed is PrepareForAnimation for a named resource
// resolved via the imageio package. An unresolvable name is a reported
// no-op.
func (d *Driver) PrepareForAnimationNamed(name string) {
	d.prepareNamed("playback.PrepareForAnimationNamed", name)
}

// Animate prepares data and starts playback in one call.
func (d *Driver) Animate(data []byte) {
	if d.prepare("playback.Animate", "", data) {
		d.Start()
	}
}

// AnimateNamed prepares a named resource and starts playback in one call.
func (d *Driver) AnimateNamed(name string) {
	if d.prepareNamed("playback.AnimateNamed", name) {
		d.Start()
	}
}

func (d *Driver) prepareNamed(op, name string) bool {
	data, err := imageio.Load(name)
	if err != nil {
		errors.Report(&errors.Error{Op: op, Kind: errors.KindResource, Resource: name, Err: err})
		return false
	}
	return d.prepare(op, name, data)
}

func (d *Driver) prepare(op, resource string, data []byte) bool {
	d.mu.Lock()
	target, fit, preload, prescale := d.target, d.fit, d.preload, d.prescale
	d.mu.Unlock()

	src, err := frames.New(data, target, fit, preload)
	if err != nil {
		errors.Report(&errors.Error{Op: op, Kind: errors.KindDecode, Resource: resource, Err: err})
		return false
	}
	src.SetPrescaling(prescale)

	// Immediate static preview so something is visible before the preload
	// window fills.
	static, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		static = nil
	}

	d.mu.Lock()
	old := d.source
	d.source = src
	d.loaded = data
	d.static = static
	d.loopCount = 0
	d.lastLatch = false
	d.generation++
	if !d.attached {
		d.link.Attach(d.update)
		d.attached = true
	}
	d.link.SetPaused(true)
	d.mu.Unlock()

	if old != nil {
		old.Close()
	}
	src.Prepare()
	if d.surface != nil {
		d.surface.Invalidate()
	}
	return true
}

// Start begins ticking if the prepared content is animatable. It is a no-op
// when nothing is prepared or the content has a single frame.
func (d *Driver) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.source == nil || !d.source.IsAnimatable() {
		return
	}
	d.link.SetPaused(false)
}

// Stop pauses playback. It is always safe to call and idempotent; the loop
// count is preserved and no delegate notification fires.
func (d *Driver) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.link.SetPaused(true)
}

// Reset stops playback and discards the prepared content entirely, including
// its decoded frame cache. Used when the owning widget is recycled for
// unrelated content.
func (d *Driver) Reset() {
	d.mu.Lock()
	old := d.source
	d.source = nil
	d.loaded = nil
	d.static = nil
	d.loopCount = 0
	d.lastLatch = false
	d.generation++
	d.link.SetPaused(true)
	d.mu.Unlock()

	if old != nil {
		old.Close()
	}
	if d.surface != nil {
		d.surface.Invalidate()
	}
}

// Dispose releases the driver. The refresh-clock subscription is detached
// unconditionally, whatever the pause state, so the link never retains a
// dangling callback. The driver must not be used afterwards.
func (d *Driver) Dispose() {
	d.mu.Lock()
	old := d.source
	d.source = nil
	d.loaded = nil
	d.static = nil
	d.attached = false
	d.generation++
	d.mu.Unlock()

	d.link.Detach()
	if old != nil {
		old.Close()
	}
}

// IsAnimating reports whether the refresh-clock subscription is currently
// delivering ticks.
func (d *Driver) IsAnimating() bool {
	d.mu.Lock()
	attached := d.attached
	d.mu.Unlock()
	return attached && !d.link.IsPaused()
}

// FrameCount returns the total frame count of the prepared content, or zero
// when nothing is prepared.
func (d *Driver) FrameCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.source == nil {
		return 0
	}
	return d.source.FrameCount()
}

// CurrentLoopCount returns how many full cycles the current content has
// completed since it was prepared. It reads zero immediately after a
// loop-limit stop.
func (d *Driver) CurrentLoopCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loopCount
}

// CurrentImage returns the image to display: the current decoded frame when
// ready, otherwise the static preview from prepare, otherwise nil.
func (d *Driver) CurrentImage() image.Image {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.source != nil {
		if f := d.source.CurrentFrame(); f != nil {
			return f
		}
	}
	return d.static
}

// Prepared returns a channel closed once the current content's initial
// preload window is decoded. When nothing is prepared the returned channel
// is already closed.
func (d *Driver) Prepared() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.source == nil {
		return closedChan
	}
	return d.source.Prepared()
}

var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()

// update runs once per refresh tick. It advances the frame source by the
// elapsed interval, marks the surface dirty if the visible frame changed,
// and evaluates loop termination whenever the source sits on its final
// frame. The latch keeps the termination check idempotent across the many
// ticks that can land within the final frame's duration window.
func (d *Driver) update(delta time.Duration) {
	defer errors.Recover("playback.update")

	d.mu.Lock()
	src := d.source
	if src == nil {
		d.mu.Unlock()
		return
	}
	changed := src.Advance(delta)

	var notify func()
	if last := src.FrameCount() - 1; last > 0 && src.CurrentIndex() == last {
		if !d.lastLatch {
			d.lastLatch = true
			notify = d.completeLoop(src)
		}
	} else {
		d.lastLatch = false
	}
	d.mu.Unlock()

	if changed && d.surface != nil {
		d.surface.Invalidate()
	}
	if notify != nil {
		notify()
	}
}

// completeLoop increments the loop count and applies the termination state
// machine. Called with d.mu held; returns the deferred notification hop, if
// any, to run after the lock is released.
func (d *Driver) completeLoop(src *frames.Source) func() {
	d.loopCount++

	limit := d.maxLoops
	if limit == -1 {
		// Defer to the content's embedded loop count; zero means the
		// content itself asks to loop forever.
		limit = src.EmbeddedLoopCount()
	}
	if limit <= 0 || d.loopCount < limit {
		return nil
	}

	d.loopCount = 0
	d.link.SetPaused(true)

	delegate := d.delegate
	if delegate == nil {
		return nil
	}
	generation := d.generation
	dispatch := d.dispatch
	return func() {
		dispatch(func() {
			d.mu.Lock()
			live := d.generation == generation
			d.mu.Unlock()
			// The delegate may have been cleared or the content replaced
			// between scheduling and delivery; a stale stop is dropped.
			if live {
				delegate.PlaybackStopped(d)
			}
		})
	}
}
