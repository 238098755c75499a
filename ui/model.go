// Package ui runs a match in the terminal as a bubbletea program.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pthm-cable/lightcycle/components"
	"github.com/pthm-cable/lightcycle/config"
	"github.com/pthm-cable/lightcycle/game"
	"github.com/pthm-cable/lightcycle/renderer"
	"github.com/pthm-cable/lightcycle/systems"
	"github.com/pthm-cable/lightcycle/telemetry"
)

// Setup builds the match once the arena bounds are known. Human agents must
// read from input.
type Setup func(bounds components.Bounds, input systems.InputSource) (*game.Match, error)

type tickMsg struct{ gen int }

type countdownMsg struct{ step time.Duration }

// Model is the bubbletea model for one match. The first window size fixes
// the arena; later resizes only change what is visible.
type Model struct {
	cfg   *config.Config
	setup Setup
	latch *systems.KeyLatch
	theme *renderer.Theme
	pacer *game.Pacer
	perf  *telemetry.PerfCollector

	match *game.Match

	remaining time.Duration
	paused    bool
	done      bool
	gen       int
	err       error
}

// NewModel creates the model. perf may be nil.
func NewModel(cfg *config.Config, setup Setup, theme *renderer.Theme, perf *telemetry.PerfCollector) *Model {
	if theme == nil {
		theme = renderer.NewTheme(nil)
	}
	return &Model{
		cfg:   cfg,
		setup: setup,
		latch: &systems.KeyLatch{},
		theme: theme,
		pacer: game.NewPacer(cfg.Game.TickRate, nil),
		perf:  perf,
	}
}

// Init implements tea.Model. Nothing happens until the window size arrives.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Match returns the running match, nil before the first window size.
func (m *Model) Match() *game.Match { return m.match }

// Err returns the setup error that ended the program, if any.
func (m *Model) Err() error { return m.err }

// Done reports whether the match has ended.
func (m *Model) Done() bool { return m.done }

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if m.match != nil {
			return m, nil
		}
		return m, m.start(msg.Width, msg.Height)

	case tea.KeyMsg:
		return m, m.handleKey(msg.String())

	case countdownMsg:
		m.remaining -= msg.step
		return m, m.countdown()

	case tickMsg:
		if msg.gen != m.gen || m.paused || m.done || m.match == nil {
			return m, nil
		}
		return m, m.step()
	}
	return m, nil
}

// start sizes the arena from the terminal, unless the config fixes it.
func (m *Model) start(termW, termH int) tea.Cmd {
	w, h := m.cfg.Arena.Width, m.cfg.Arena.Height
	if w == 0 {
		w = termW
	}
	if h == 0 {
		h = termH - m.cfg.Arena.HUDRows
	}
	bounds := components.Bounds{MaxX: w - 1, MaxY: h - 1}

	match, err := m.setup(bounds, m.latch)
	if err != nil {
		m.err = fmt.Errorf("setting up %dx%d arena: %w", w, h, err)
		return tea.Quit
	}
	m.match = match
	m.remaining = m.cfg.Derived.StartDelay
	return m.countdown()
}

func (m *Model) countdown() tea.Cmd {
	if m.remaining <= 0 {
		m.remaining = 0
		return m.schedule(0)
	}
	step := min(m.remaining, time.Second)
	return tea.Tick(step, func(time.Time) tea.Msg { return countdownMsg{step: step} })
}

func (m *Model) schedule(d time.Duration) tea.Cmd {
	gen := m.gen
	return tea.Tick(d, func(time.Time) tea.Msg { return tickMsg{gen: gen} })
}

func (m *Model) step() tea.Cmd {
	start := m.pacer.Start()
	m.match.Step()

	a := m.match.Arena()
	if a.Finished() || (m.cfg.Game.MaxTicks > 0 && a.TickCount() >= m.cfg.Game.MaxTicks) {
		m.done = true
		m.match.Finish()
		return nil
	}
	return m.schedule(m.pacer.Residual(m.pacer.Elapsed(start)))
}

func (m *Model) handleKey(key string) tea.Cmd {
	switch key {
	case "q", "ctrl+c", "esc":
		if m.match != nil {
			m.match.Finish()
		}
		return tea.Quit
	case "p", " ":
		if m.match == nil || m.done || m.remaining > 0 {
			return nil
		}
		m.paused = !m.paused
		if m.paused {
			return nil
		}
		// A fresh generation drops any tick still in flight.
		m.gen++
		return m.schedule(0)
	}
	if d, ok := KeyDirection(key); ok {
		m.latch.Press(d)
	}
	return nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.err != nil {
		return ""
	}
	if m.match == nil {
		return "sizing arena..."
	}
	if m.perf != nil {
		m.perf.RecordFrame()
	}

	a := m.match.Arena()
	var sb strings.Builder
	sb.WriteString(m.theme.Render(renderer.Compose(a)))
	if m.cfg.Arena.HUDRows > 0 {
		sb.WriteByte('\n')
		sb.WriteString(m.theme.HUD.Render(m.status()))
	}
	return sb.String()
}

func (m *Model) status() string {
	hud := renderer.HUD(m.match.Arena())
	switch {
	case m.remaining > 0:
		secs := int((m.remaining + time.Second - 1) / time.Second)
		return fmt.Sprintf("%s  starting in %d", hud, secs)
	case m.done:
		return hud + "  q to quit"
	case m.paused:
		return hud + "  paused"
	}
	return hud
}
