package telemetry

import (
	"sort"

	"github.com/pthm-cable/lightcycle/components"
)

// LifetimeStats tracks one agent over a match.
type LifetimeStats struct {
	Slot      int
	Name      string
	Human     bool
	SpawnTick int32

	// SurvivalTicks counts the ticks the agent completed alive.
	SurvivalTicks int32
	Turns         int

	DeathTick int32
	Cause     components.DeathCause
}

// Alive reports whether no death has been recorded.
func (s *LifetimeStats) Alive() bool {
	return s.DeathTick < 0
}

// LifetimeTracker manages per-slot lifetime statistics.
type LifetimeTracker struct {
	stats map[int]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[int]*LifetimeStats),
	}
}

// Register creates lifetime stats for an agent entering the arena.
func (lt *LifetimeTracker) Register(slot int, name string, human bool, spawnTick int32) {
	lt.stats[slot] = &LifetimeStats{
		Slot:      slot,
		Name:      name,
		Human:     human,
		SpawnTick: spawnTick,
		DeathTick: -1,
	}
}

// Get returns the lifetime stats for a slot, or nil if not found.
func (lt *LifetimeTracker) Get(slot int) *LifetimeStats {
	return lt.stats[slot]
}

// RecordTurn counts a heading change.
func (lt *LifetimeTracker) RecordTurn(slot int) {
	if s := lt.stats[slot]; s != nil && s.Alive() {
		s.Turns++
	}
}

// RecordDeath stamps the death tick and cause. The death tick itself is not
// counted as survived. Later calls for the same slot are ignored.
func (lt *LifetimeTracker) RecordDeath(slot int, tick int32, cause components.DeathCause) {
	s := lt.stats[slot]
	if s == nil || !s.Alive() {
		return
	}
	s.DeathTick = tick
	s.Cause = cause
	if survived := tick - 1 - s.SpawnTick; survived > s.SurvivalTicks {
		s.SurvivalTicks = survived
	}
}

// Advance credits every live agent with surviving through tick.
func (lt *LifetimeTracker) Advance(tick int32) {
	for _, s := range lt.stats {
		if s.Alive() {
			s.SurvivalTicks = tick - s.SpawnTick
		}
	}
}

// All returns the tracked stats ordered by slot.
func (lt *LifetimeTracker) All() []*LifetimeStats {
	all := make([]*LifetimeStats, 0, len(lt.stats))
	for _, s := range lt.stats {
		all = append(all, s)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Slot < all[j].Slot })
	return all
}

// SurvivalTicks returns every agent's survival in slot order.
func (lt *LifetimeTracker) SurvivalTicks() []float64 {
	all := lt.All()
	out := make([]float64, len(all))
	for i, s := range all {
		out[i] = float64(s.SurvivalTicks)
	}
	return out
}

// Count returns the number of tracked agents.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
