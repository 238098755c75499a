package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gocarina/gocsv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/lightcycle/components"
	"github.com/pthm-cable/lightcycle/config"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	require.NoError(t, err)
	assert.Nil(t, om)

	// Every method tolerates the nil manager.
	assert.NoError(t, om.WriteTick(TickRecord{}))
	assert.NoError(t, om.WriteDeaths([]DeathEvent{{}}))
	assert.NoError(t, om.WriteMatch(MatchSummary{}))
	assert.NoError(t, om.Close())
	assert.Equal(t, "", om.Dir())
}

func TestOutputManager_WritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	om, err := NewOutputManager(dir)
	require.NoError(t, err)

	for tick := int32(1); tick <= 3; tick++ {
		require.NoError(t, om.WriteTick(TickRecord{MatchID: "m", Tick: tick, Alive: 2}))
	}
	require.NoError(t, om.WriteDeaths(nil))
	require.NoError(t, om.WriteDeaths([]DeathEvent{
		NewDeathEvent("m", 3, 1, "cycle-1", false, components.CauseTrail, components.Coord{X: 4, Y: 2}),
	}))
	require.NoError(t, om.WriteMatch(MatchSummary{MatchID: "m", Ticks: 3, Outcome: "won", Winner: 0}))

	cfg, err := config.Load("")
	require.NoError(t, err)
	require.NoError(t, om.WriteConfig(cfg))
	require.NoError(t, om.Close())

	var ticks []TickRecord
	require.NoError(t, gocsv.UnmarshalFile(mustOpen(t, filepath.Join(dir, "ticks.csv")), &ticks))
	require.Len(t, ticks, 3, "header written once")
	assert.Equal(t, int32(3), ticks[2].Tick)

	var deaths []DeathEvent
	require.NoError(t, gocsv.UnmarshalFile(mustOpen(t, filepath.Join(dir, "deaths.csv")), &deaths))
	require.Len(t, deaths, 1)
	assert.Equal(t, "trail", deaths[0].Cause)
	assert.Equal(t, 4, deaths[0].X)

	var matches []MatchSummary
	require.NoError(t, gocsv.UnmarshalFile(mustOpen(t, filepath.Join(dir, "matches.csv")), &matches))
	require.Len(t, matches, 1)
	assert.Equal(t, "won", matches[0].Outcome)

	assert.FileExists(t, filepath.Join(dir, "config.yaml"))
}

func mustOpen(t *testing.T, path string) *os.File {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { f.Close() })
	return f
}

func TestSnapshotSaveLoad(t *testing.T) {
	dir := t.TempDir()
	snapshot := &Snapshot{
		Version: SnapshotVersion,
		MatchID: "0d4c7a3e-5b1f-4c51-9a59-2f6a77f3c0de",
		Tick:    42,
		Bounds:  components.Bounds{MaxX: 19, MaxY: 9},
		Outcome: "running",
		Agents: []AgentState{{
			Slot:      0,
			Name:      "you",
			Human:     true,
			Color:     "cyan",
			Head:      components.Coord{X: 5, Y: 6},
			Direction: "up",
			Trail:     []components.Coord{{X: 5, Y: 8}, {X: 5, Y: 7}},
			TrailCap:  10,
			Alive:     true,
			DiedAt:    -1,
		}},
		Bookmark: &Bookmark{Type: BookmarkHeadOn, Tick: 42, Description: "test"},
	}

	path, err := SaveSnapshot(snapshot, dir)
	require.NoError(t, err)
	assert.Equal(t, "snapshot_0d4c7a3e_42_head_on.json", filepath.Base(path))

	loaded, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, snapshot, loaded)
}

func TestLoadSnapshot_VersionMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"version": 99}`), 0644))

	_, err := LoadSnapshot(path)
	assert.Error(t, err)
}
