package ui

import (
	"io"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/lightcycle/components"
	"github.com/pthm-cable/lightcycle/config"
	"github.com/pthm-cable/lightcycle/game"
	"github.com/pthm-cable/lightcycle/renderer"
	"github.com/pthm-cable/lightcycle/systems"
)

func testModel(t *testing.T, numAI int) *Model {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Derived.StartDelay = 0

	setup := func(bounds components.Bounds, input systems.InputSource) (*game.Match, error) {
		a, err := game.NewArena(bounds, game.Options{TrailCapacity: 4, Penalty: systems.DefaultPenalty, Input: input})
		if err != nil {
			return nil, err
		}
		if _, err := a.AddAgent(game.AgentSpec{Name: "you", Human: true, Color: components.ColorCyan}); err != nil {
			return nil, err
		}
		for i := 0; i < numAI; i++ {
			if _, err := a.AddAgent(game.AgentSpec{Color: components.ColorYellow}); err != nil {
				return nil, err
			}
		}
		return game.NewMatch(a, game.MatchOptions{}), nil
	}
	return NewModel(cfg, setup, renderer.NewTheme(lipgloss.NewRenderer(io.Discard)), nil)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestModel_WindowSizeFixesArena(t *testing.T) {
	m := testModel(t, 1)
	assert.Equal(t, "sizing arena...", m.View())

	_, cmd := m.Update(tea.WindowSizeMsg{Width: 20, Height: 11})
	require.NotNil(t, cmd)
	require.NotNil(t, m.Match())
	assert.Equal(t, components.Bounds{MaxX: 19, MaxY: 9}, m.Match().Arena().Bounds(), "one row kept for the HUD")

	m.Update(tea.WindowSizeMsg{Width: 40, Height: 30})
	assert.Equal(t, 20, m.Match().Arena().Bounds().Width(), "later resizes are ignored")
}

func TestModel_KeysSteerHuman(t *testing.T) {
	m := testModel(t, 1)
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 11})

	m.Update(key("up"))
	_, cmd := m.Update(tickMsg{gen: 0})
	assert.NotNil(t, cmd, "next tick scheduled")

	human, ok := m.Match().Arena().Human()
	require.True(t, ok)
	assert.Equal(t, components.Up, human.Direction())
	assert.Equal(t, components.Coord{X: 0, Y: 8}, human.Position())

	m.Update(key("d"))
	m.Update(tickMsg{gen: 0})
	assert.Equal(t, components.Right, human.Direction())
}

func TestModel_PauseDropsStaleTicks(t *testing.T) {
	m := testModel(t, 1)
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 11})
	a := m.Match().Arena()

	m.Update(key("p"))
	m.Update(tickMsg{gen: 0})
	assert.Equal(t, int32(0), a.TickCount(), "paused")
	assert.Contains(t, m.View(), "paused")

	_, cmd := m.Update(key("p"))
	require.NotNil(t, cmd)
	m.Update(tickMsg{gen: 0})
	assert.Equal(t, int32(0), a.TickCount(), "tick from before the pause is stale")
	m.Update(tickMsg{gen: 1})
	assert.Equal(t, int32(1), a.TickCount())
}

func TestModel_MatchEnds(t *testing.T) {
	m := testModel(t, 1)
	m.cfg.Game.MaxTicks = 30
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 11})

	// Reversing into the border ends the human on the first tick; the
	// autopilot rides on until the tick limit.
	m.Update(key("a"))
	for i := 0; i < 100 && !m.Done(); i++ {
		m.Update(tickMsg{gen: 0})
	}
	require.True(t, m.Done())
	assert.Equal(t, game.OutcomeLost, m.Match().Arena().Outcome())
	assert.True(t, strings.HasSuffix(m.View(), "q to quit"))

	ticks := m.Match().Arena().TickCount()
	m.Update(tickMsg{gen: 0})
	assert.Equal(t, ticks, m.Match().Arena().TickCount(), "no ticks after the end")
}

func TestModel_Quit(t *testing.T) {
	m := testModel(t, 2)
	m.Update(tea.WindowSizeMsg{Width: 20, Height: 11})

	_, cmd := m.Update(key("q"))
	assert.True(t, isQuit(cmd))

	m = testModel(t, 1)
	_, cmd = m.Update(key("ctrl+c"))
	assert.True(t, isQuit(cmd), "quitting works before the arena exists")
}

func TestModel_SetupErrorQuits(t *testing.T) {
	m := testModel(t, 1)
	_, cmd := m.Update(tea.WindowSizeMsg{Width: 1, Height: 2})

	assert.True(t, isQuit(cmd))
	assert.ErrorIs(t, m.Err(), game.ErrArenaTooSmall)
	assert.Empty(t, m.View())
}

func TestModel_View(t *testing.T) {
	m := testModel(t, 1)
	m.Update(tea.WindowSizeMsg{Width: 6, Height: 4})

	lines := strings.Split(m.View(), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "     <", lines[0])
	assert.Equal(t, ">     ", lines[2])
	assert.Equal(t, "tick 0  alive 2/2  you: riding", lines[3])
}

func TestKeyDirection(t *testing.T) {
	for k, want := range map[string]components.Direction{
		"left": components.Left, "w": components.Up, "j": components.Down, "l": components.Right,
	} {
		got, ok := KeyDirection(k)
		require.True(t, ok, k)
		assert.Equal(t, want, got, k)
	}
	_, ok := KeyDirection("x")
	assert.False(t, ok)
}
