// Package game owns the arena: its agents, the shared occupancy map and
// the tick that advances them.
package game

import (
	"errors"
	"fmt"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/lightcycle/components"
	"github.com/pthm-cable/lightcycle/systems"
	"github.com/pthm-cable/lightcycle/telemetry"
)

// MaxAgents is the number of start slots in the layout.
const MaxAgents = 4

var (
	// ErrArenaFull is returned when every start slot is taken.
	ErrArenaFull = errors.New("arena: all start slots are taken")
	// ErrArenaTooSmall is returned for arenas without distinct corners.
	ErrArenaTooSmall = errors.New("arena: interior must be at least 2x2")
)

// EndCondition decides when a match is over.
type EndCondition uint8

const (
	// EndAllDead runs until no agent is alive.
	EndAllDead EndCondition = iota
	// EndLastStanding stops once at most one agent is alive.
	EndLastStanding
)

// ParseEndCondition resolves a config value.
func ParseEndCondition(s string) (EndCondition, error) {
	switch s {
	case "", "all_dead":
		return EndAllDead, nil
	case "last_standing":
		return EndLastStanding, nil
	default:
		return EndAllDead, fmt.Errorf("unknown end condition %q", s)
	}
}

// Options configures a new arena.
type Options struct {
	TrailCapacity int
	// Penalty must be negative. Zero uses systems.DefaultPenalty.
	Penalty      int
	EndCondition EndCondition
	// Input feeds human agents. Nil leaves them on their current heading.
	Input systems.InputSource
	// Perf receives per-phase tick timings when set.
	Perf *telemetry.PerfCollector
}

// AgentSpec describes an agent to place in the next free slot.
type AgentSpec struct {
	Name  string
	Color components.Color
	Human bool
}

// Arena is the aggregate root. It exclusively owns the agents (entities in
// an ark world) and the occupancy map derived from them.
type Arena struct {
	world  *ecs.World
	bounds components.Bounds
	opts   Options

	agentMapper *ecs.Map4[components.Head, components.Trail, components.Vitals, components.Rider]
	headMap     *ecs.Map[components.Head]
	trailMap    *ecs.Map[components.Trail]
	vitalsMap   *ecs.Map[components.Vitals]
	riderMap    *ecs.Map[components.Rider]

	occupancy       *systems.OccupancyMap
	occupancySystem *systems.OccupancySystem

	// Slot-ordered roster; pilots[i] steers roster[i].
	roster []ecs.Entity
	pilots []systems.Pilot

	tick int32
}

// NewArena creates an empty arena over the inclusive interior bounds.
func NewArena(bounds components.Bounds, opts Options) (*Arena, error) {
	if bounds.Width() < 2 || bounds.Height() < 2 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrArenaTooSmall, bounds.Width(), bounds.Height())
	}
	if opts.TrailCapacity < 0 {
		return nil, fmt.Errorf("arena: negative trail capacity %d", opts.TrailCapacity)
	}
	switch {
	case opts.Penalty == 0:
		opts.Penalty = systems.DefaultPenalty
	case opts.Penalty > 0:
		return nil, fmt.Errorf("arena: steering penalty must be negative, got %d", opts.Penalty)
	}

	world := ecs.NewWorld()
	a := &Arena{
		world:       world,
		bounds:      bounds,
		opts:        opts,
		agentMapper: ecs.NewMap4[components.Head, components.Trail, components.Vitals, components.Rider](world),
		headMap:     ecs.NewMap[components.Head](world),
		trailMap:    ecs.NewMap[components.Trail](world),
		vitalsMap:   ecs.NewMap[components.Vitals](world),
		riderMap:    ecs.NewMap[components.Rider](world),
		occupancy:   systems.NewOccupancyMap(bounds),
	}
	a.occupancySystem = systems.NewOccupancySystem(world)
	return a, nil
}

// TrailCapacityFor sizes trails as a fraction of the field, measured as the
// product of the coordinate spans (width-1)*(height-1). The result is never
// below minimum.
func TrailCapacityFor(bounds components.Bounds, fraction float64, minimum int) int {
	span := (bounds.MaxX - bounds.MinX) * (bounds.MaxY - bounds.MinY)
	n := int(math.Round(float64(span) * fraction))
	if n < minimum {
		return minimum
	}
	return n
}

// AddAgent places an agent in the next free start slot and refreshes the
// occupancy map so the first decision sees it.
func (a *Arena) AddAgent(spec AgentSpec) (Agent, error) {
	slot := len(a.roster)
	if slot >= MaxAgents {
		return Agent{}, ErrArenaFull
	}

	head := startHead(a.bounds, slot)
	trail := components.NewTrail(a.opts.TrailCapacity)
	vitals := components.NewVitals()
	rider := components.Rider{
		Slot:  slot,
		Name:  spec.Name,
		Color: spec.Color,
		Human: spec.Human,
	}
	if rider.Name == "" {
		rider.Name = fmt.Sprintf("cycle-%d", slot)
	}

	entity := a.agentMapper.NewEntity(&head, &trail, &vitals, &rider)
	a.roster = append(a.roster, entity)
	a.pilots = append(a.pilots, a.pilotFor(spec.Human))

	a.occupancySystem.Update(a.occupancy)
	return Agent{arena: a, entity: entity, slot: slot}, nil
}

func (a *Arena) pilotFor(human bool) systems.Pilot {
	if human {
		return systems.HumanPilot{Input: a.opts.Input}
	}
	return systems.AutoPilot{Penalty: a.opts.Penalty}
}

// Bounds returns the interior bounds.
func (a *Arena) Bounds() components.Bounds {
	return a.bounds
}

// Occupancy returns the current snapshot. Callers must treat it as read-only.
func (a *Arena) Occupancy() *systems.OccupancyMap {
	return a.occupancy
}

// TickCount returns the number of completed ticks.
func (a *Arena) TickCount() int32 {
	return a.tick
}

// NumAgents returns how many agents were placed.
func (a *Arena) NumAgents() int {
	return len(a.roster)
}

// Agent returns the agent in slot i.
func (a *Arena) Agent(i int) Agent {
	return Agent{arena: a, entity: a.roster[i], slot: i}
}

// Agents returns every agent in slot order.
func (a *Arena) Agents() []Agent {
	out := make([]Agent, len(a.roster))
	for i := range a.roster {
		out[i] = a.Agent(i)
	}
	return out
}

// Human returns the human-controlled agent, if any.
func (a *Arena) Human() (Agent, bool) {
	for i, e := range a.roster {
		if a.riderMap.Get(e).Human {
			return a.Agent(i), true
		}
	}
	return Agent{}, false
}

// NumAlive returns the number of live agents.
func (a *Arena) NumAlive() int {
	n := 0
	for _, e := range a.roster {
		if a.vitalsMap.Get(e).Alive {
			n++
		}
	}
	return n
}
