package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDirection_Opposite(t *testing.T) {
	tests := []struct {
		d, want Direction
	}{
		{Left, Right},
		{Right, Left},
		{Up, Down},
		{Down, Up},
	}
	for _, tt := range tests {
		t.Run(tt.d.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.d.Opposite())
			assert.Equal(t, Coord{}, tt.d.Delta().Add(tt.want.Delta()), "opposite deltas cancel")
		})
	}
}

func TestCoord_Step(t *testing.T) {
	c := Coord{X: 3, Y: 3}
	assert.Equal(t, Coord{X: 2, Y: 3}, c.Step(Left))
	assert.Equal(t, Coord{X: 4, Y: 3}, c.Step(Right))
	assert.Equal(t, Coord{X: 3, Y: 2}, c.Step(Up))
	assert.Equal(t, Coord{X: 3, Y: 4}, c.Step(Down))
}

func TestCoord_Less(t *testing.T) {
	assert.True(t, Coord{X: 5, Y: 0}.Less(Coord{X: 0, Y: 1}))
	assert.True(t, Coord{X: 0, Y: 1}.Less(Coord{X: 1, Y: 1}))
	assert.False(t, Coord{X: 1, Y: 1}.Less(Coord{X: 1, Y: 1}))
}

func TestBounds_Interior(t *testing.T) {
	b := Bounds{MinX: 0, MinY: 0, MaxX: 3, MaxY: 3}

	assert.Equal(t, 16, b.Area())
	assert.True(t, b.Contains(Coord{X: 3, Y: 3}))
	assert.False(t, b.Contains(Coord{X: 4, Y: 0}))
	assert.False(t, b.Contains(Coord{X: -1, Y: 2}))
	assert.Equal(t, 4, b.Width())
	assert.Equal(t, 4, b.Height())
}

func TestVitals_KillOnce(t *testing.T) {
	v := NewVitals()
	assert.True(t, v.Kill(4, CauseWall))
	assert.False(t, v.Kill(9, CauseTrail))

	assert.False(t, v.Alive)
	assert.Equal(t, int32(4), v.DiedAt)
	assert.Equal(t, CauseWall, v.Cause)
}

func TestParseColor(t *testing.T) {
	c, err := ParseColor(" Cyan ")
	assert.NoError(t, err)
	assert.Equal(t, ColorCyan, c)

	_, err = ParseColor("chartreuse")
	assert.Error(t, err)
}
