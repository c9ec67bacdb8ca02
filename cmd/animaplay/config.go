package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/go-anima/anima/pkg/frames"
)

// Config is the player configuration, loaded from TOML.
type Config struct {
	// MaxLoopCount controls looping: 0 loops forever, -1 defers to the loop
	// count embedded in each GIF, a positive n plays n loops per file.
	MaxLoopCount int `koanf:"max_loop_count"`
	// FramePreloadCount bounds how many decoded frames are held per file.
	FramePreloadCount int `koanf:"frame_preload_count"`
	// Prescale pre-resizes frames to the terminal size.
	Prescale *bool `koanf:"prescale"`
	// Fit is the content-fit mode: contain, fill, cover, none or scale_down.
	Fit string `koanf:"fit"`
	// FPS is the refresh rate of the terminal frame loop.
	FPS int `koanf:"fps"`
}

func loadConfig() (*Config, error) {
	k := koanf.New(".")

	// Config files in order of priority (last wins).
	for _, path := range configPaths() {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{
		MaxLoopCount:      -1,
		FramePreloadCount: 50,
		Fit:               "contain",
		FPS:               30,
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	if cfg.FPS < 1 {
		cfg.FPS = 30
	}
	if cfg.FramePreloadCount < 1 {
		cfg.FramePreloadCount = 50
	}
	return cfg, nil
}

func configPaths() []string {
	return []string{
		filepath.Join(xdg.ConfigHome, "animaplay", "config.toml"),
		"animaplay.toml",
	}
}

// prescale resolves the optional flag, defaulting to on.
func (c *Config) prescale() bool {
	if c.Prescale == nil {
		return true
	}
	return *c.Prescale
}

func (c *Config) fit() (frames.Fit, error) {
	switch c.Fit {
	case "", "contain":
		return frames.FitContain, nil
	case "fill":
		return frames.FitFill, nil
	case "cover":
		return frames.FitCover, nil
	case "none":
		return frames.FitNone, nil
	case "scale_down":
		return frames.FitScaleDown, nil
	default:
		return frames.FitContain, fmt.Errorf("unknown fit mode %q", c.Fit)
	}
}
