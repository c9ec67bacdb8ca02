// Package frames decodes animated GIF data into a playback-ready sequence of
// frames with a bounded preload window.
//
// A [Source] composites GIF frames (honouring disposal modes) on a background
// worker, keeping at most the configured preload window decoded at once so
// memory stays bounded for long animations. [Source.Advance] only reads
// already-decoded frames and never blocks: if the next frame is not ready the
// previously displayed frame is reported unchanged.
package frames

import (
	"image"
	"image/gif"
	"sync"
	"time"
)

// defaultFrameDuration substitutes for a zero GIF delay, matching the
// de facto browser behaviour for untimed frames.
const defaultFrameDuration = 100 * time.Millisecond

// Source is a sequence of decoded animation frames with per-frame display
// durations and a position that advances with elapsed playback time.
//
// A Source is constructed with [New], optionally configured with
// [Source.SetPrescaling], and then started with [Source.Prepare], which
// launches the preload worker. It is discarded with [Source.Close]; a Source
// is never reconfigured for new content.
type Source struct {
	g         *gif.GIF
	target    image.Point
	fit       Fit
	preload   int
	durations []time.Duration

	mu        sync.Mutex
	space     *sync.Cond
	frames    map[int]*image.RGBA
	current   int
	acc       time.Duration
	preparing bool
	closed    bool
	prescale  bool

	prepared chan struct{}
}

// New decodes and validates GIF data, returning an unstarted Source. The
// target size and fit mode are used when prescaling is enabled. preload
// bounds how many composited frames are held in memory at once; values
// below 2 are raised to 2.
func New(data []byte, target image.Point, fit Fit, preload int) (*Source, error) {
	g, err := decode(data)
	if err != nil {
		return nil, err
	}
	durations := make([]time.Duration, len(g.Image))
	for i := range durations {
		var d time.Duration
		if g.Delay != nil {
			d = 10 * time.Duration(g.Delay[i]) * time.Millisecond
		}
		if d <= 0 {
			d = defaultFrameDuration
		}
		durations[i] = d
	}
	// Advance only evicts the current frame after stepping off it, so a
	// one-frame window could never admit the next frame and would stall the
	// worker too. Two is the smallest window where both sides make progress.
	if preload < 2 {
		preload = 2
	}
	s := &Source{
		g:         g,
		target:    target,
		fit:       fit,
		preload:   preload,
		durations: durations,
		frames:    make(map[int]*image.RGBA),
		prescale:  true,
		prepared:  make(chan struct{}),
	}
	s.space = sync.NewCond(&s.mu)
	return s, nil
}

// SetPrescaling controls whether composited frames are pre-resized to the
// target size, trading compositing CPU for per-frame memory. It must be
// called before Prepare; afterwards it has no effect.
func (s *Source) SetPrescaling(enabled bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.preparing {
		return
	}
	s.prescale = enabled
}

// Prepare launches the background worker that fills the preload window.
// Calling Prepare more than once is a no-op.
func (s *Source) Prepare() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.preparing || s.closed {
		return
	}
	s.preparing = true
	go s.fill()
}

// Prepared returns a channel closed once the initial preload window is
// decoded and ready to display.
func (s *Source) Prepared() <-chan struct{} {
	return s.prepared
}

// Close stops the preload worker and releases decoded frames. The Source
// must not be advanced after Close.
func (s *Source) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.frames = nil
	s.space.Broadcast()
}

// IsAnimatable reports whether the content has more than one frame.
func (s *Source) IsAnimatable() bool {
	return len(s.durations) > 1
}

// FrameCount returns the total number of frames in the content.
func (s *Source) FrameCount() int {
	return len(s.durations)
}

// CurrentIndex returns the index of the currently selected frame.
func (s *Source) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// CurrentFrame returns the currently selected frame, or nil if it has not
// been decoded yet.
func (s *Source) CurrentFrame() image.Image {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	f, ok := s.frames[s.current]
	if !ok {
		return nil
	}
	return f
}

// EmbeddedLoopCount resolves the GIF's own loop-count field to a number of
// plays: 0 means loop forever. The gif package reports 0 for forever, -1 for
// a single play and n for n additional repeats after the first.
func (s *Source) EmbeddedLoopCount() int {
	switch lc := s.g.LoopCount; {
	case lc == 0:
		return 0
	case lc < 0:
		return 1
	default:
		return lc + 1
	}
}

// Advance accumulates elapsed playback time against the current frame's
// duration, stepping to later frames as boundaries are crossed, and reports
// whether the visible frame changed.
//
// Advance never blocks on decoding: if the next frame is not ready the
// position holds at the current frame's boundary. It also never steps past
// the final frame, nor past frame zero after a wrap, within a single call,
// so a caller sampling the position between calls observes every loop
// boundary even under large elapsed values.
func (s *Source) Advance(elapsed time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || len(s.durations) < 2 {
		return false
	}
	s.acc += elapsed
	changed := false
	for {
		dur := s.durations[s.current]
		if s.acc < dur {
			break
		}
		next := s.current + 1
		if next == len(s.durations) {
			next = 0
		}
		if s.frames[next] == nil {
			// Hold at the boundary while decoding catches up, so the
			// stall does not later burst through several frames at once.
			s.acc = dur
			break
		}
		s.acc -= dur
		if s.preload < len(s.durations) {
			delete(s.frames, s.current)
			s.space.Signal()
		}
		s.current = next
		changed = true
		if s.current == len(s.durations)-1 || s.current == 0 {
			break
		}
	}
	return changed
}

// window returns how many frames are kept decoded at once.
func (s *Source) window() int {
	if s.preload < len(s.durations) {
		return s.preload
	}
	return len(s.durations)
}

// fill is the preload worker. It composites frames in display order into the
// preload window, waiting for the consumer to evict frames when the window
// is smaller than the animation, and wrapping indefinitely in that case.
func (s *Source) fill() {
	comp := newCompositor(s.g)

	s.mu.Lock()
	window := s.window()
	prescale := s.prescale && s.target.X > 0 && s.target.Y > 0
	s.mu.Unlock()

	total := len(s.durations)
	signalled := false
	for idx := 0; ; idx = (idx + 1) % total {
		s.mu.Lock()
		for !s.closed && (len(s.frames) >= window || s.frames[idx] != nil) {
			if !signalled {
				// Window full for the first time: initial preload done.
				close(s.prepared)
				signalled = true
			}
			if window == total {
				// Everything is decoded and retained; nothing left to do.
				s.mu.Unlock()
				return
			}
			s.space.Wait()
		}
		if s.closed {
			s.mu.Unlock()
			if !signalled {
				close(s.prepared)
			}
			return
		}
		s.mu.Unlock()

		canvas := comp.next()
		var out *image.RGBA
		if prescale {
			out = renderFitted(canvas, s.target, s.fit)
		} else {
			out = clone(canvas)
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()
			if !signalled {
				close(s.prepared)
			}
			return
		}
		s.frames[idx] = out
		if !signalled && len(s.frames) >= window {
			close(s.prepared)
			signalled = true
		}
		done := window == total && len(s.frames) == total
		s.mu.Unlock()
		if done {
			return
		}
	}
}
