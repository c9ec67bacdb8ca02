// Package timing provides the refresh-clock primitives that drive
// animated-image playback.
//
// # Core Components
//
//   - [Link]: a subscription to a periodic refresh signal. The playback
//     driver attaches a callback that is invoked once per refresh interval
//     with the elapsed time since the previous tick.
//
//   - [DisplayLink]: the production Link, driven by a wall-clock ticker at a
//     configurable refresh rate.
//
//   - [ManualLink]: a Link whose ticks are delivered by the caller, for
//     deterministic tests and for hosts that already own a frame loop.
//
// The package-level [Clock] is the time source for measured deltas and is
// replaceable via [SetClock] so tests can control timing exactly.
package timing

import "time"

// Clock provides time for tick-delta measurement. The default implementation
// uses system time. Tests can inject a fake clock via SetClock to control
// timing deterministically.
type Clock interface {
	Now() time.Time
}

// realClock uses system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// clock is the package-level time source, replaceable for testing.
var clock Clock = realClock{}

// SetClock replaces the timing clock. Returns the previous clock so callers
// can restore it during cleanup.
func SetClock(c Clock) Clock {
	prev := clock
	clock = c
	return prev
}

// Now returns the current time from the active clock.
func Now() time.Time { return clock.Now() }
