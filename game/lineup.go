package game

import (
	"fmt"

	"github.com/pthm-cable/lightcycle/components"
	"github.com/pthm-cable/lightcycle/config"
	"github.com/pthm-cable/lightcycle/systems"
	"github.com/pthm-cable/lightcycle/telemetry"
)

// Lineup describes who rides in a configured arena.
type Lineup struct {
	NumAI int
	Human bool
	// Input feeds the human. Ignored without one.
	Input systems.InputSource
	// Perf receives tick phase timings. May be nil.
	Perf *telemetry.PerfCollector
}

// NewConfiguredArena builds an arena from cfg and places the lineup: the
// human first, in slot 0, then the autopilots.
func NewConfiguredArena(cfg *config.Config, bounds components.Bounds, l Lineup) (*Arena, error) {
	end, err := ParseEndCondition(cfg.Match.EndCondition)
	if err != nil {
		return nil, err
	}

	capacity := cfg.Agents.TrailCapacity
	if capacity == 0 {
		capacity = TrailCapacityFor(bounds, cfg.Agents.TrailFraction, cfg.Agents.MinTrail)
	}

	a, err := NewArena(bounds, Options{
		TrailCapacity: capacity,
		Penalty:       cfg.Steering.Penalty,
		EndCondition:  end,
		Input:         l.Input,
		Perf:          l.Perf,
	})
	if err != nil {
		return nil, err
	}

	if l.Human {
		if _, err := a.AddAgent(AgentSpec{
			Name:  cfg.Agents.HumanName,
			Color: cfg.Derived.HumanColor,
			Human: true,
		}); err != nil {
			return nil, fmt.Errorf("placing human: %w", err)
		}
	}
	for i := 0; i < l.NumAI; i++ {
		if _, err := a.AddAgent(AgentSpec{
			Name:  cfg.AIName(i),
			Color: cfg.AIColor(i),
		}); err != nil {
			return nil, fmt.Errorf("placing autopilot %d: %w", i, err)
		}
	}
	return a, nil
}
