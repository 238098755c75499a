package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/lightcycle/components"
	"github.com/pthm-cable/lightcycle/systems"
)

// Agent is a handle to one light cycle owned by an Arena. Handles are cheap
// values; all state lives in the arena's world.
type Agent struct {
	arena  *Arena
	entity ecs.Entity
	slot   int
}

// Slot returns the start slot index.
func (ag Agent) Slot() int { return ag.slot }

// Name returns the rider name.
func (ag Agent) Name() string { return ag.arena.riderMap.Get(ag.entity).Name }

// Color returns the display tag.
func (ag Agent) Color() components.Color { return ag.arena.riderMap.Get(ag.entity).Color }

// IsHuman reports whether the heading comes from external input.
func (ag Agent) IsHuman() bool { return ag.arena.riderMap.Get(ag.entity).Human }

// Position returns the head cell.
func (ag Agent) Position() components.Coord { return ag.arena.headMap.Get(ag.entity).Pos }

// Direction returns the current heading.
func (ag Agent) Direction() components.Direction { return ag.arena.headMap.Get(ag.entity).Dir }

// Trail returns a copy of the trail, oldest first.
func (ag Agent) Trail() []components.Coord { return ag.arena.trailMap.Get(ag.entity).Cells() }

// TrailCap returns the trail capacity.
func (ag Agent) TrailCap() int { return ag.arena.trailMap.Get(ag.entity).Cap() }

// Vitals returns a copy of the liveness record.
func (ag Agent) Vitals() components.Vitals { return *ag.arena.vitalsMap.Get(ag.entity) }

// IsAlive reports whether the agent is still riding.
func (ag Agent) IsAlive() bool { return ag.arena.vitalsMap.Get(ag.entity).Alive }

// SetDirection sets the heading for the next move. No reversal check.
func (ag Agent) SetDirection(d components.Direction) {
	ag.arena.headMap.Get(ag.entity).Dir = d
}

// Move pushes the current cell onto the trail and steps one cell. Dead
// agents do not move.
func (ag Agent) Move() {
	if !ag.IsAlive() {
		return
	}
	systems.Advance(ag.arena.headMap.Get(ag.entity), ag.arena.trailMap.Get(ag.entity))
}

// Decide runs the autonomous decision procedure against m.
func (ag Agent) Decide(m systems.Snapshot) components.Direction {
	head := ag.arena.headMap.Get(ag.entity)
	return systems.Steer(head.Pos, head.Dir, m, ag.arena.opts.Penalty)
}

// Kill marks the agent dead. Killing a dead agent changes nothing.
func (ag Agent) Kill() {
	ag.arena.vitalsMap.Get(ag.entity).Kill(ag.arena.tick, components.CauseKilled)
}
