package main

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/pthm-cable/lightcycle/components"
	"github.com/pthm-cable/lightcycle/config"
	"github.com/pthm-cable/lightcycle/game"
	"github.com/pthm-cable/lightcycle/telemetry"
)

// Settings controls a tournament run.
type Settings struct {
	Matches   int
	Agents    int
	Seed      int64
	MinWidth  int
	MaxWidth  int
	MinHeight int
	MaxHeight int
	MaxTicks  int32
}

// Validate checks ranges before any match is built.
func (s Settings) Validate() error {
	switch {
	case s.Matches < 1:
		return fmt.Errorf("matches must be at least 1, got %d", s.Matches)
	case s.Agents < 2 || s.Agents > game.MaxAgents:
		return fmt.Errorf("agents must be in [2, %d], got %d", game.MaxAgents, s.Agents)
	case s.MinWidth < 2 || s.MinHeight < 2:
		return fmt.Errorf("arena must be at least 2x2, got %dx%d", s.MinWidth, s.MinHeight)
	case s.MaxWidth < s.MinWidth || s.MaxHeight < s.MinHeight:
		return fmt.Errorf("max arena size %dx%d below min %dx%d", s.MaxWidth, s.MaxHeight, s.MinWidth, s.MinHeight)
	case s.MaxTicks < 0:
		return fmt.Errorf("max ticks must not be negative, got %d", s.MaxTicks)
	}
	return nil
}

// Standings aggregates the results of all matches.
type Standings struct {
	Matches   []telemetry.MatchSummary
	Wins      []int // by slot
	Draws     int
	Unended   int
	Cancelled bool
}

// Tournament plays all-autopilot matches over seeded random arena sizes.
type Tournament struct {
	cfg      *config.Config
	settings Settings
	out      *telemetry.OutputManager
	perf     *telemetry.PerfCollector
	rng      *rand.Rand
}

// NewTournament creates a tournament. out and perf may be nil.
func NewTournament(cfg *config.Config, s Settings, out *telemetry.OutputManager, perf *telemetry.PerfCollector) *Tournament {
	return &Tournament{
		cfg:      cfg,
		settings: s,
		out:      out,
		perf:     perf,
		rng:      rand.New(rand.NewSource(s.Seed)),
	}
}

func (t *Tournament) nextBounds() components.Bounds {
	s := t.settings
	w := s.MinWidth + t.rng.Intn(s.MaxWidth-s.MinWidth+1)
	h := s.MinHeight + t.rng.Intn(s.MaxHeight-s.MinHeight+1)
	return components.Bounds{MaxX: w - 1, MaxY: h - 1}
}

// Run plays every match unless ctx is cancelled first.
func (t *Tournament) Run(ctx context.Context) (Standings, error) {
	st := Standings{Wins: make([]int, t.settings.Agents)}
	pacer := game.NewPacer(0, nil)

	for i := 0; i < t.settings.Matches; i++ {
		if ctx.Err() != nil {
			st.Cancelled = true
			break
		}

		a, err := game.NewConfiguredArena(t.cfg, t.nextBounds(), game.Lineup{
			NumAI: t.settings.Agents,
			Perf:  t.perf,
		})
		if err != nil {
			return st, fmt.Errorf("match %d: %w", i, err)
		}
		m := game.NewMatch(a, game.MatchOptions{
			Output:        t.out,
			LogEvery:      t.cfg.Telemetry.LogEvery,
			MarathonTicks: t.cfg.Telemetry.MarathonTicks,
			Snapshots:     t.cfg.Telemetry.Snapshots,
		})

		outcome := game.Run(ctx, m, pacer, t.settings.MaxTicks, nil)
		summary := m.Finish()
		st.Matches = append(st.Matches, summary)

		switch {
		case outcome == game.OutcomeRunning:
			st.Unended++
		case outcome == game.OutcomeDraw:
			st.Draws++
		case summary.Winner >= 0:
			st.Wins[summary.Winner]++
		}
	}
	return st, nil
}

// MatchLengths returns the tick count of every match played.
func (st Standings) MatchLengths() []float64 {
	out := make([]float64, len(st.Matches))
	for i, s := range st.Matches {
		out[i] = float64(s.Ticks)
	}
	return out
}
