// Command animaplay plays animated GIFs in the terminal.
//
// Usage:
//
//	animaplay [flags] file.gif [file2.gif ...]
//	animaplay -playlist list.yaml
//
// Each file plays until its loop limit is reached, then the player advances
// to the next entry. Configuration is read from
// $XDG_CONFIG_HOME/animaplay/config.toml and ./animaplay.toml.
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	playlistPath := flag.String("playlist", "", "YAML playlist of animations to play")
	loops := flag.Int("loops", 0, "override loop count (0 forever, -1 per-file embedded count)")
	fit := flag.String("fit", "", "content fit: contain, fill, cover, none, scale_down")
	fps := flag.Int("fps", 0, "terminal refresh rate")
	flag.Parse()

	cfg, err := loadConfig()
	if err != nil {
		fatalf("loading config: %v", err)
	}
	if isFlagSet("loops") {
		cfg.MaxLoopCount = *loops
	}
	if *fit != "" {
		cfg.Fit = *fit
	}
	if *fps > 0 {
		cfg.FPS = *fps
	}
	fitMode, err := cfg.fit()
	if err != nil {
		fatalf("%v", err)
	}

	var entries []Entry
	if *playlistPath != "" {
		pl, err := loadPlaylist(*playlistPath)
		if err != nil {
			fatalf("%v", err)
		}
		entries = pl.Entries
	}
	for _, arg := range flag.Args() {
		entries = append(entries, Entry{Path: arg})
	}
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "usage: animaplay [flags] file.gif [file2.gif ...]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	p := tea.NewProgram(newModel(cfg, fitMode, entries), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fatalf("%v", err)
	}
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "animaplay: "+format+"\n", args...)
	os.Exit(1)
}
