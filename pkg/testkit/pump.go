package testkit

import (
	"testing"
	"time"

	"github.com/go-anima/anima/pkg/timing"
)

// Pump delivers n ticks of delta each through link.
func Pump(link *timing.ManualLink, n int, delta time.Duration) {
	for i := 0; i < n; i++ {
		link.Tick(delta)
	}
}

// WaitClosed fails the test if ch is not closed within the timeout. Used to
// wait for a driver's preload window before ticking deterministically.
func WaitClosed(t *testing.T, ch <-chan struct{}, timeout time.Duration) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(timeout):
		t.Fatal("timed out waiting for preload")
	}
}
