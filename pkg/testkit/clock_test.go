package testkit

import (
	"testing"
	"time"

	"github.com/go-anima/anima/pkg/timing"
)

func TestFakeClockAdvance(t *testing.T) {
	clock := NewFakeClock()
	start := clock.Now()

	clock.Advance(16 * time.Millisecond)
	if got := clock.Now().Sub(start); got != 16*time.Millisecond {
		t.Errorf("advanced %v, want 16ms", got)
	}
}

func TestFakeClockDrivesTiming(t *testing.T) {
	clock := NewFakeClock()
	prev := timing.SetClock(clock)
	defer timing.SetClock(prev)

	clock.Advance(time.Hour)
	if got := timing.Now(); !got.Equal(clock.Now()) {
		t.Errorf("timing.Now() = %v, want %v", got, clock.Now())
	}
}

func TestFakeClockDrivesDisplayLink(t *testing.T) {
	clock := NewFakeClock()
	prev := timing.SetClock(clock)
	defer timing.SetClock(prev)

	link := timing.NewDisplayLink(time.Millisecond)
	defer link.Detach()

	deltas := make(chan time.Duration, 64)
	link.Attach(func(d time.Duration) { deltas <- d })
	link.SetPaused(false)

	clock.Advance(42 * time.Millisecond)

	// The ticker runs on wall time but deltas are measured on the fake
	// clock, so exactly one tick carries the advance and the rest read zero.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case d := <-deltas:
			switch d {
			case 0:
			case 42 * time.Millisecond:
				return
			default:
				t.Fatalf("tick delta = %v, want 0 or 42ms", d)
			}
		case <-deadline:
			t.Fatal("no tick carried the fake clock advance")
		}
	}
}

func TestFakeClockSet(t *testing.T) {
	clock := NewFakeClock()
	target := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	clock.Set(target)
	if got := clock.Now(); !got.Equal(target) {
		t.Errorf("Now() = %v, want %v", got, target)
	}
}
