package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-anima/anima/pkg/frames"
)

func TestLoadConfigDefaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, -1, cfg.MaxLoopCount)
	assert.Equal(t, 50, cfg.FramePreloadCount)
	assert.Equal(t, 30, cfg.FPS)
	assert.True(t, cfg.prescale())

	fit, err := cfg.fit()
	require.NoError(t, err)
	assert.Equal(t, frames.FitContain, fit)
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := chdirTemp(t)
	content := []byte("max_loop_count = 3\nfps = 60\nfit = \"cover\"\nprescale = false\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "animaplay.toml"), content, 0o644))

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.MaxLoopCount)
	assert.Equal(t, 60, cfg.FPS)
	assert.False(t, cfg.prescale())

	fit, err := cfg.fit()
	require.NoError(t, err)
	assert.Equal(t, frames.FitCover, fit)
}

func TestConfigRejectsUnknownFit(t *testing.T) {
	cfg := &Config{Fit: "stretchy"}
	_, err := cfg.fit()
	assert.Error(t, err)
}

// chdirTemp isolates the test from any real animaplay.toml and config dirs.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "xdg"))
	xdg.Reload()
	return dir
}
