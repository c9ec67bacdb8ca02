package main

import (
	"fmt"
	"image"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/go-anima/anima/pkg/frames"
	"github.com/go-anima/anima/pkg/playback"
	"github.com/go-anima/anima/pkg/timing"
)

var statusStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("252")).
	Background(lipgloss.Color("236")).
	Padding(0, 1)

type tickMsg time.Time

type stoppedMsg struct{}

type keyMap struct {
	Quit    key.Binding
	Toggle  key.Binding
	Next    key.Binding
	Prev    key.Binding
	Restart key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c")),
		Toggle:  key.NewBinding(key.WithKeys(" ")),
		Next:    key.NewBinding(key.WithKeys("n", "right")),
		Prev:    key.NewBinding(key.WithKeys("p", "left")),
		Restart: key.NewBinding(key.WithKeys("r")),
	}
}

// dirtySurface adapts the driver's invalidation hook to the frame loop: the
// next tick repaints only when a frame actually changed.
type dirtySurface struct {
	dirty atomic.Bool
}

func (s *dirtySurface) Invalidate() { s.dirty.Store(true) }

type model struct {
	cfg     *Config
	fit     frames.Fit
	entries []Entry
	idx     int
	keys    keyMap

	link    *timing.ManualLink
	surface *dirtySurface
	driver  *playback.Driver
	stopCh  chan struct{}

	width    int
	height   int
	frame    string
	lastTick time.Time
}

func newModel(cfg *Config, fit frames.Fit, entries []Entry) model {
	return model{
		cfg:     cfg,
		fit:     fit,
		entries: entries,
		keys:    defaultKeyMap(),
		surface: &dirtySurface{},
		stopCh:  make(chan struct{}, 1),
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.tickCmd(), m.waitStop())
}

func (m model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.cfg.FPS), func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// waitStop resolves when the driver reports a loop-limit stop.
func (m model) waitStop() tea.Cmd {
	ch := m.stopCh
	return func() tea.Msg {
		<-ch
		return stoppedMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m = m.rebuildDriver()
		return m, nil

	case tickMsg:
		if m.driver == nil {
			// No WindowSizeMsg yet; keep ticking until the driver exists.
			return m, m.tickCmd()
		}
		now := time.Time(msg)
		delta := now.Sub(m.lastTick)
		if m.lastTick.IsZero() || delta < 0 {
			delta = time.Second / time.Duration(m.cfg.FPS)
		}
		m.lastTick = now
		m.link.Tick(delta)
		if m.surface.dirty.Swap(false) {
			m.frame = renderCells(m.driver.CurrentImage(), m.cols(), m.rows())
		}
		return m, m.tickCmd()

	case stoppedMsg:
		if m.idx+1 >= len(m.entries) {
			return m, tea.Quit
		}
		m.idx++
		m.play()
		return m, m.waitStop()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Toggle):
			if m.driver != nil {
				if m.driver.IsAnimating() {
					m.driver.Stop()
				} else {
					m.driver.Start()
				}
			}
		case key.Matches(msg, m.keys.Next):
			if m.idx+1 < len(m.entries) {
				m.idx++
				m.play()
			}
		case key.Matches(msg, m.keys.Prev):
			if m.idx > 0 {
				m.idx--
				m.play()
			}
		case key.Matches(msg, m.keys.Restart):
			m.play()
		}
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	if m.driver == nil {
		return "loading..."
	}
	return m.frame + "\n" + m.statusLine()
}

func (m model) statusLine() string {
	entry := m.entries[m.idx]
	state := "paused"
	if m.driver.IsAnimating() {
		state = "playing"
	}
	return statusStyle.Render(fmt.Sprintf("[%d/%d] %s  %s  %d frames  space pause  n/p switch  q quit",
		m.idx+1, len(m.entries), entry.Path, state, m.driver.FrameCount()))
}

func (m model) cols() int { return m.width }

func (m model) rows() int {
	if m.height <= 1 {
		return 1
	}
	return m.height - 1 // status line
}

// rebuildDriver recreates the driver for the current terminal size and
// restarts the current entry. The target size in pixels is the cell grid
// with two pixel rows per cell.
func (m model) rebuildDriver() model {
	if m.driver != nil {
		m.driver.Dispose()
	}
	m.link = timing.NewManualLink()
	m.driver = playback.NewDriver(m.link, m.surface, m.targetSize(), m.fit)
	m.driver.SetFramePreloadCount(m.cfg.FramePreloadCount)
	m.driver.SetNeedsPrescaling(m.cfg.prescale())
	m.driver.SetDelegate(playback.DelegateFunc(func(*playback.Driver) {
		select {
		case m.stopCh <- struct{}{}:
		default:
		}
	}))
	m.play()
	return m
}

func (m model) targetSize() image.Point {
	return image.Pt(m.cols(), m.rows()*2)
}

// play prepares and starts the current entry.
func (m model) play() {
	entry := m.entries[m.idx]
	loops := m.cfg.MaxLoopCount
	if entry.Loops != nil {
		loops = *entry.Loops
	}
	m.driver.SetMaxLoopCount(loops)
	m.driver.AnimateNamed(entry.Path)
}
