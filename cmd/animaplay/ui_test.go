package main

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-anima/anima/pkg/frames"
)

func testModel() model {
	cfg := &Config{MaxLoopCount: -1, FramePreloadCount: 50, Fit: "contain", FPS: 30}
	return newModel(cfg, frames.FitContain, []Entry{{Path: "a.gif"}})
}

func TestTickBeforeWindowSizeKeepsTicking(t *testing.T) {
	// The first tick can arrive before the initial WindowSizeMsg builds the
	// driver; it must reschedule itself instead of touching a nil link.
	m := testModel()

	next, cmd := m.Update(tickMsg(time.Now()))
	require.NotNil(t, cmd)

	got, ok := next.(model)
	require.True(t, ok)
	assert.Nil(t, got.driver)
	assert.True(t, got.lastTick.IsZero())
}

func TestWindowSizeBuildsDriver(t *testing.T) {
	m := testModel()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 40, Height: 12})
	got, ok := next.(model)
	require.True(t, ok)
	assert.NotNil(t, got.driver)
	assert.NotNil(t, got.link)
}
