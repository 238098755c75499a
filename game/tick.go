package game

import (
	"github.com/pthm-cable/lightcycle/components"
	"github.com/pthm-cable/lightcycle/systems"
	"github.com/pthm-cable/lightcycle/telemetry"
)

// Death describes one agent lost during a tick.
type Death struct {
	Slot  int
	Name  string
	Human bool
	Cause components.DeathCause
	Pos   components.Coord
}

// TickReport summarises one tick.
type TickReport struct {
	Tick   int32
	Alive  int
	Deaths []Death
}

// Tick advances the simulation one step in two phases so every decision
// sees the same snapshot:
//
//  1. every live agent picks a heading against last tick's map and moves;
//  2. the map is rebuilt, collisions are collected, then all colliding
//     agents die together.
func (a *Arena) Tick() TickReport {
	a.tick++
	a.startPhase(telemetry.PhaseDecideMove)
	a.decideAndMove()

	a.startPhase(telemetry.PhaseRebuild)
	a.occupancySystem.Update(a.occupancy)

	a.startPhase(telemetry.PhaseCollide)
	deaths := a.collide()

	return TickReport{
		Tick:   a.tick,
		Alive:  a.NumAlive(),
		Deaths: deaths,
	}
}

func (a *Arena) startPhase(phase telemetry.Phase) {
	if a.opts.Perf != nil {
		a.opts.Perf.StartPhase(phase)
	}
}

func (a *Arena) decideAndMove() {
	for i, e := range a.roster {
		if !a.vitalsMap.Get(e).Alive {
			continue
		}
		head := a.headMap.Get(e)
		head.Dir = a.pilots[i].Direct(head.Pos, head.Dir, a.occupancy)
		systems.Advance(head, a.trailMap.Get(e))
	}
}

// collide finds every live agent whose head is on a WALL cell or shares its
// cell with another live head, then kills them all at once. Discovery order
// does not affect the result.
func (a *Arena) collide() []Death {
	var live []int
	var heads []components.Coord
	for i, e := range a.roster {
		if !a.vitalsMap.Get(e).Alive {
			continue
		}
		live = append(live, i)
		heads = append(heads, a.headMap.Get(e).Pos)
	}

	shared := systems.SharedHeads(heads)

	var deaths []Death
	for k, i := range live {
		pos := heads[k]
		headOn := shared.Has(pos)
		if !headOn && !systems.HitsWall(a.occupancy, pos) {
			continue
		}
		rider := a.riderMap.Get(a.roster[i])
		deaths = append(deaths, Death{
			Slot:  i,
			Name:  rider.Name,
			Human: rider.Human,
			Cause: systems.Classify(a.bounds, pos, headOn),
			Pos:   pos,
		})
	}

	for _, d := range deaths {
		a.vitalsMap.Get(a.roster[d.Slot]).Kill(a.tick, d.Cause)
	}
	return deaths
}
