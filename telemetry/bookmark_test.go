package telemetry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/lightcycle/components"
)

func types(bookmarks []Bookmark) []BookmarkType {
	out := make([]BookmarkType, len(bookmarks))
	for i, b := range bookmarks {
		out[i] = b.Type
	}
	return out
}

func TestBookmarkDetector_HeadOnPileup(t *testing.T) {
	bd := NewBookmarkDetector(0)
	bd.Check(TickRecord{Tick: 1, Alive: 3}, nil)

	deaths := []DeathEvent{
		NewDeathEvent("m", 2, 0, "a", false, components.CauseHeadOn, components.Coord{X: 2, Y: 1}),
		NewDeathEvent("m", 2, 1, "b", false, components.CauseHeadOn, components.Coord{X: 2, Y: 1}),
	}
	got := bd.Check(TickRecord{Tick: 2, Alive: 1}, deaths)

	assert.Equal(t, []BookmarkType{BookmarkHeadOn, BookmarkPileup, BookmarkLastStanding}, types(got))
}

func TestBookmarkDetector_LastStandingOnce(t *testing.T) {
	bd := NewBookmarkDetector(0)
	bd.Check(TickRecord{Tick: 1, Alive: 2}, nil)

	trail := []DeathEvent{NewDeathEvent("m", 2, 1, "b", false, components.CauseTrail, components.Coord{})}
	require.Equal(t, []BookmarkType{BookmarkLastStanding}, types(bd.Check(TickRecord{Tick: 2, Alive: 1}, trail)))

	assert.Empty(t, bd.Check(TickRecord{Tick: 3, Alive: 1}, nil))
}

func TestBookmarkDetector_SoloArenaNeverLastStanding(t *testing.T) {
	bd := NewBookmarkDetector(0)
	for tick := int32(1); tick < 5; tick++ {
		assert.Empty(t, bd.Check(TickRecord{Tick: tick, Alive: 1}, nil))
	}
}

func TestBookmarkDetector_Marathon(t *testing.T) {
	bd := NewBookmarkDetector(3)

	assert.Empty(t, bd.Check(TickRecord{Tick: 2, Alive: 2}, nil))
	got := bd.Check(TickRecord{Tick: 3, Alive: 2}, nil)
	require.Len(t, got, 1)
	assert.Equal(t, BookmarkMarathon, got[0].Type)
	assert.Equal(t, int32(3), got[0].Tick)
	assert.Empty(t, bd.Check(TickRecord{Tick: 4, Alive: 2}, nil))
}
