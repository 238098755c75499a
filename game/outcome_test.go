package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/lightcycle/components"
)

func TestOutcome(t *testing.T) {
	t.Run("human crashes first", func(t *testing.T) {
		a := newArena(t, 8, 8, 4)
		human := addHuman(t, a)
		ai, err := a.AddAgent(AgentSpec{})
		require.NoError(t, err)
		place(a, human, components.Coord{X: 0, Y: 3}, components.Left)
		place(a, ai, components.Coord{X: 4, Y: 4}, components.Right)

		a.Tick()
		assert.Equal(t, OutcomeLost, a.Outcome())
		assert.Equal(t, ai.Slot(), a.Winner())
		assert.False(t, a.Finished())
	})

	t.Run("human outlives the field", func(t *testing.T) {
		a := newArena(t, 8, 8, 4)
		human := addHuman(t, a)
		ai, err := a.AddAgent(AgentSpec{})
		require.NoError(t, err)
		// Boxed into the top-right corner by its own trail: every heading
		// ends on a wall.
		trail := a.trailMap.Get(ai.entity)
		trail.Push(components.Coord{X: 6, Y: 0})
		trail.Push(components.Coord{X: 7, Y: 1})
		place(a, human, components.Coord{X: 4, Y: 4}, components.Up)
		place(a, ai, components.Coord{X: 7, Y: 0}, components.Right)

		a.Tick()
		require.False(t, ai.IsAlive())
		require.True(t, human.IsAlive())
		assert.Equal(t, components.CauseWall, ai.Vitals().Cause)
		assert.Equal(t, OutcomeWon, a.Outcome())
		assert.Equal(t, human.Slot(), a.Winner())
	})

	t.Run("no human, last standing", func(t *testing.T) {
		a, err := NewArena(components.Bounds{MaxX: 7, MaxY: 7}, Options{TrailCapacity: 4, EndCondition: EndLastStanding})
		require.NoError(t, err)
		first, err := a.AddAgent(AgentSpec{})
		require.NoError(t, err)
		second, err := a.AddAgent(AgentSpec{})
		require.NoError(t, err)
		assert.Equal(t, OutcomeRunning, a.Outcome())

		second.Kill()
		assert.True(t, a.Finished())
		assert.Equal(t, OutcomeWon, a.Outcome())
		assert.Equal(t, first.Slot(), a.Winner())
	})
}

func TestParseEndCondition(t *testing.T) {
	c, err := ParseEndCondition("last_standing")
	require.NoError(t, err)
	assert.Equal(t, EndLastStanding, c)

	c, err = ParseEndCondition("")
	require.NoError(t, err)
	assert.Equal(t, EndAllDead, c)

	_, err = ParseEndCondition("sudden_death")
	assert.Error(t, err)
}
