package systems

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pthm-cable/lightcycle/components"
)

func TestSharedHeads(t *testing.T) {
	tests := []struct {
		name  string
		heads []components.Coord
		want  []components.Coord
	}{
		{"none", nil, nil},
		{"distinct", []components.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}}, nil},
		{"pair", []components.Coord{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 1, Y: 1}}, []components.Coord{{X: 1, Y: 1}}},
		{"triple", []components.Coord{{X: 2, Y: 2}, {X: 2, Y: 2}, {X: 2, Y: 2}}, []components.Coord{{X: 2, Y: 2}}},
		{"two pairs", []components.Coord{{X: 0, Y: 0}, {X: 3, Y: 3}, {X: 0, Y: 0}, {X: 3, Y: 3}}, []components.Coord{{X: 0, Y: 0}, {X: 3, Y: 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shared := SharedHeads(tt.heads)
			assert.Equal(t, len(tt.want), shared.Size())
			for _, c := range tt.want {
				assert.True(t, shared.Has(c), "missing %v", c)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	b := components.Bounds{MaxX: 3, MaxY: 3}

	assert.Equal(t, components.CauseWall, Classify(b, components.Coord{X: 4, Y: 0}, false))
	assert.Equal(t, components.CauseWall, Classify(b, components.Coord{X: -1, Y: 2}, true))
	assert.Equal(t, components.CauseHeadOn, Classify(b, components.Coord{X: 1, Y: 1}, true))
	assert.Equal(t, components.CauseTrail, Classify(b, components.Coord{X: 1, Y: 1}, false))
}

func TestAdvance(t *testing.T) {
	head := components.Head{Pos: components.Coord{X: 1, Y: 1}, Dir: components.Down}
	trail := components.NewTrail(2)

	Advance(&head, &trail)

	assert.Equal(t, components.Coord{X: 1, Y: 2}, head.Pos)
	assert.Equal(t, []components.Coord{{X: 1, Y: 1}}, trail.Cells())
}
