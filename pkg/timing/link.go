package timing

import (
	"sync"
	"time"
)

// Link is a subscription to a periodic refresh signal.
//
// A Link starts paused. Attach registers the tick callback without starting
// delivery; SetPaused(false) starts it. Detach permanently releases the
// callback reference and any resources backing the link, regardless of pause
// state. After Detach the link delivers no further ticks and must not be
// reused.
//
// Tick delivery is sequential and non-overlapping: at most one callback
// invocation is in flight at a time.
type Link interface {
	// Attach registers the callback invoked once per refresh interval with
	// the elapsed time since the previous tick. Attaching twice replaces the
	// callback.
	Attach(callback func(delta time.Duration))
	// Detach unregisters the callback and releases the link.
	Detach()
	// SetPaused starts or suspends tick delivery. Safe to call at any time,
	// including before Attach.
	SetPaused(paused bool)
	// IsPaused reports whether tick delivery is currently suspended.
	IsPaused() bool
}

// DisplayLink delivers ticks from a wall-clock ticker at a fixed refresh
// interval. It reports the measured elapsed time between ticks rather than
// the nominal interval, so slow callbacks do not distort playback speed.
type DisplayLink struct {
	interval time.Duration

	mu       sync.Mutex
	callback func(time.Duration)
	paused   bool
	lastTick time.Time
	stop     chan struct{}
}

// DefaultRefreshInterval approximates a 60 Hz display.
const DefaultRefreshInterval = time.Second / 60

// NewDisplayLink creates a paused DisplayLink ticking at the given interval.
// A non-positive interval falls back to DefaultRefreshInterval.
func NewDisplayLink(interval time.Duration) *DisplayLink {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &DisplayLink{
		interval: interval,
		paused:   true,
	}
}

// Attach registers the callback and starts the ticker goroutine. Delivery
// remains suspended until SetPaused(false).
func (l *DisplayLink) Attach(callback func(delta time.Duration)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.callback = callback
	if l.stop == nil {
		l.stop = make(chan struct{})
		go l.run(l.stop)
	}
}

// Detach stops the ticker goroutine and releases the callback. Safe to call
// whether or not the link is paused, and more than once.
func (l *DisplayLink) Detach() {
	l.mu.Lock()
	stop := l.stop
	l.stop = nil
	l.callback = nil
	l.paused = true
	l.mu.Unlock()
	if stop != nil {
		close(stop)
	}
}

// SetPaused suspends or resumes tick delivery. Resuming resets the delta
// baseline so time spent paused is not reported as elapsed.
func (l *DisplayLink) SetPaused(paused bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if !paused && l.paused {
		l.lastTick = Now()
	}
	l.paused = paused
}

// IsPaused reports whether tick delivery is suspended.
func (l *DisplayLink) IsPaused() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.paused
}

func (l *DisplayLink) run(stop chan struct{}) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
		}

		l.mu.Lock()
		if l.paused || l.callback == nil {
			l.mu.Unlock()
			continue
		}
		now := Now()
		delta := now.Sub(l.lastTick)
		if l.lastTick.IsZero() || delta < 0 {
			delta = l.interval
		}
		l.lastTick = now
		cb := l.callback
		l.mu.Unlock()

		cb(delta)
	}
}

// ManualLink is a Link whose ticks are driven by the caller. Tick delivers a
// tick synchronously when the link is attached and unpaused, so tests and
// frame-loop hosts control playback time exactly.
type ManualLink struct {
	mu       sync.Mutex
	callback func(time.Duration)
	paused   bool
	detached bool
}

// NewManualLink creates a paused ManualLink.
func NewManualLink() *ManualLink {
	return &ManualLink{paused: true}
}

// Attach registers the callback.
func (l *ManualLink) Attach(callback func(delta time.Duration)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.callback = callback
	l.detached = false
}

// Detach releases the callback.
func (l *ManualLink) Detach() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.callback = nil
	l.paused = true
	l.detached = true
}

// SetPaused suspends or resumes tick delivery.
func (l *ManualLink) SetPaused(paused bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.detached {
		return
	}
	l.paused = paused
}

// IsPaused reports whether tick delivery is suspended.
func (l *ManualLink) IsPaused() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.paused
}

// Tick delivers one tick with the given elapsed duration. It is a no-op when
// the link is paused, detached, or has no callback. Returns whether the
// callback was invoked.
func (l *ManualLink) Tick(delta time.Duration) bool {
	l.mu.Lock()
	cb := l.callback
	deliver := !l.paused && cb != nil
	l.mu.Unlock()
	if !deliver {
		return false
	}
	cb(delta)
	return true
}
