package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Playlist is a YAML list of animations to play in order.
type Playlist struct {
	Entries []Entry `yaml:"entries"`
}

// Entry is one animation in a playlist.
type Entry struct {
	// Path is the GIF file to play.
	Path string `yaml:"path"`
	// Loops overrides the configured loop count for this entry when set.
	Loops *int `yaml:"loops"`
}

func loadPlaylist(path string) (*Playlist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var pl Playlist
	if err := yaml.Unmarshal(data, &pl); err != nil {
		return nil, fmt.Errorf("playlist %s: %w", path, err)
	}
	if len(pl.Entries) == 0 {
		return nil, fmt.Errorf("playlist %s: no entries", path)
	}
	for i, e := range pl.Entries {
		if e.Path == "" {
			return nil, fmt.Errorf("playlist %s: entry %d has no path", path, i)
		}
	}
	return &pl, nil
}
