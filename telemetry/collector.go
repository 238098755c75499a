package telemetry

import (
	"time"

	"github.com/pthm-cable/lightcycle/components"
)

// Collector accumulates the events of a single match and produces its
// MatchSummary.
type Collector struct {
	matchID string
	width   int
	height  int

	ticks             int32
	deathsByCause     map[components.DeathCause]int
	simultaneousTicks int

	lifetimes *LifetimeTracker
}

// NewCollector creates a collector for one match on a width x height arena.
func NewCollector(matchID string, width, height int) *Collector {
	return &Collector{
		matchID:       matchID,
		width:         width,
		height:        height,
		deathsByCause: make(map[components.DeathCause]int),
		lifetimes:     NewLifetimeTracker(),
	}
}

// MatchID returns the identifier stamped on every record.
func (c *Collector) MatchID() string {
	return c.matchID
}

// Lifetimes exposes the per-agent tracker.
func (c *Collector) Lifetimes() *LifetimeTracker {
	return c.lifetimes
}

// RecordTick folds one completed tick into the match totals and returns the
// ticks.csv row for it.
func (c *Collector) RecordTick(tick int32, alive int, deaths []DeathEvent, dur time.Duration) TickRecord {
	c.ticks = tick
	for _, d := range deaths {
		c.deathsByCause[d.DeathCause()]++
		c.lifetimes.RecordDeath(d.Slot, tick, d.DeathCause())
	}
	if len(deaths) > 1 {
		c.simultaneousTicks++
	}
	c.lifetimes.Advance(tick)

	return TickRecord{
		MatchID:    c.matchID,
		Tick:       tick,
		Alive:      alive,
		Deaths:     len(deaths),
		DurationUS: dur.Microseconds(),
	}
}

// Summary produces the MatchSummary. outcome and winner come from the arena.
func (c *Collector) Summary(outcome string, winner int) MatchSummary {
	mean, std, p10, p50, p90 := SurvivalStats(c.lifetimes.SurvivalTicks())

	turns := 0
	for _, s := range c.lifetimes.All() {
		turns += s.Turns
	}

	return MatchSummary{
		MatchID: c.matchID,
		Width:   c.width,
		Height:  c.height,
		Agents:  c.lifetimes.Count(),
		Ticks:   c.ticks,
		Outcome: outcome,
		Winner:  winner,

		WallDeaths:   c.deathsByCause[components.CauseWall],
		TrailDeaths:  c.deathsByCause[components.CauseTrail],
		HeadOnDeaths: c.deathsByCause[components.CauseHeadOn],
		KilledDeaths: c.deathsByCause[components.CauseKilled],

		SimultaneousTicks: c.simultaneousTicks,

		SurvivalMean: mean,
		SurvivalStd:  std,
		SurvivalP10:  p10,
		SurvivalP50:  p50,
		SurvivalP90:  p90,

		Turns: turns,
	}
}
