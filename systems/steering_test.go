package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/lightcycle/components"
)

// gridSnapshot is a sparse map; unlisted cells are empty.
type gridSnapshot map[components.Coord]components.CellState

func (g gridSnapshot) At(c components.Coord) components.CellState {
	return g[c]
}

func TestSteer_CornerAvoidsWalls(t *testing.T) {
	// Top-right corner of a 4x4 arena heading right: right and up are the
	// border, left is the reverse, so down is the only clean choice.
	m := NewOccupancyMap(components.Bounds{MaxX: 3, MaxY: 3})
	tr := components.NewTrail(2)
	tr.Push(components.Coord{X: 2, Y: 0})
	m.Stamp(components.Coord{X: 3, Y: 0}, &tr, true)

	got := Steer(components.Coord{X: 3, Y: 0}, components.Right, m, DefaultPenalty)
	assert.Equal(t, components.Down, got)
}

func TestSteer_OpenFieldKeepsFirstNonReverse(t *testing.T) {
	m := gridSnapshot{}
	pos := components.Coord{X: 10, Y: 10}

	// Nothing blocked: every heading but the reverse scores 0, so the
	// earliest non-reverse heading wins.
	assert.Equal(t, components.Right, Steer(pos, components.Right, m, DefaultPenalty))
	assert.Equal(t, components.Left, Steer(pos, components.Up, m, DefaultPenalty))
	assert.Equal(t, components.Left, Steer(pos, components.Left, m, DefaultPenalty))
	assert.Equal(t, components.Left, Steer(pos, components.Down, m, DefaultPenalty))
}

func TestSteer_NeverReversesWhileAlternativeExists(t *testing.T) {
	pos := components.Coord{X: 5, Y: 5}
	for _, dir := range components.Directions {
		for _, open := range components.Directions {
			if open == dir.Opposite() {
				continue
			}
			// Block everything except `open`.
			m := gridSnapshot{}
			for _, d := range components.Directions {
				if d != open {
					m[pos.Step(d)] = components.CellWall
				}
			}
			got := Steer(pos, dir, m, DefaultPenalty)
			assert.Equal(t, open, got, "dir=%v open=%v", dir, open)
		}
	}
}

func TestSteer_ReverseIsSoft(t *testing.T) {
	// Reverse cell empty, every other heading blocked: all four tie at the
	// penalty, so the tie-break (not a hard rule) decides. Heading Right,
	// the reverse is Left, which is first in enumeration order.
	pos := components.Coord{X: 5, Y: 5}
	m := gridSnapshot{
		pos.Step(components.Right): components.CellWall,
		pos.Step(components.Up):    components.CellAgent,
		pos.Step(components.Down):  components.CellWall,
	}

	scores := Scores(pos, components.Right, m, DefaultPenalty)
	assert.Equal(t, [components.NumDirections]int{-50, -50, -50, -50}, scores)
	assert.Equal(t, components.Left, Steer(pos, components.Right, m, DefaultPenalty))
}

func TestSteer_AllBlockedIsDeterministic(t *testing.T) {
	pos := components.Coord{X: 1, Y: 1}
	m := gridSnapshot{}
	for _, d := range components.Directions {
		m[pos.Step(d)] = components.CellWall
	}

	// Heading Up: reverse Down scores -100, the rest -50 -> Left.
	first := Steer(pos, components.Up, m, DefaultPenalty)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Steer(pos, components.Up, m, DefaultPenalty))
	}
	assert.Equal(t, components.Left, first)
}

func TestSteer_TwoStepLookahead(t *testing.T) {
	pos := components.Coord{X: 5, Y: 5}

	t.Run("agent two cells ahead is avoided", func(t *testing.T) {
		m := gridSnapshot{
			pos.Step(components.Right).Step(components.Right): components.CellAgent,
		}
		// Heading Right: Left reversed, Right penalised -> Up.
		assert.Equal(t, components.Up, Steer(pos, components.Right, m, DefaultPenalty))
	})

	t.Run("wall two cells ahead is ignored", func(t *testing.T) {
		m := gridSnapshot{
			pos.Step(components.Right).Step(components.Right): components.CellWall,
		}
		assert.Equal(t, components.Right, Steer(pos, components.Right, m, DefaultPenalty))
	})
}

func TestHumanPilot(t *testing.T) {
	latch := &KeyLatch{}
	p := HumanPilot{Input: latch}
	pos := components.Coord{}

	assert.Equal(t, components.Up, p.Direct(pos, components.Up, nil), "no input keeps heading")

	latch.Press(components.Left)
	latch.Press(components.Down)
	assert.Equal(t, components.Down, p.Direct(pos, components.Up, nil), "latest key wins")
	assert.Equal(t, components.Right, p.Direct(pos, components.Right, nil), "latch is consumed")

	assert.Equal(t, components.Left, HumanPilot{}.Direct(pos, components.Left, nil))
}

func TestAutoPilotMatchesSteer(t *testing.T) {
	m := gridSnapshot{components.Coord{X: 1, Y: 0}: components.CellWall}
	p := AutoPilot{Penalty: DefaultPenalty}
	pos := components.Coord{}

	assert.Equal(t, Steer(pos, components.Right, m, DefaultPenalty), p.Direct(pos, components.Right, m))
}
