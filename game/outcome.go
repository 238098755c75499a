package game

// Outcome is the state of a match.
type Outcome uint8

const (
	OutcomeRunning Outcome = iota
	// OutcomeWon: one agent outlived everyone else. With a human rider it
	// means the human did.
	OutcomeWon
	// OutcomeLost: the human died while another agent survived it.
	OutcomeLost
	// OutcomeDraw: the last agents died in the same tick.
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRunning:
		return "running"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	case OutcomeDraw:
		return "draw"
	default:
		return "unknown"
	}
}

// Outcome reports the match state from the human's point of view, or from
// the field's when no human rides.
func (a *Arena) Outcome() Outcome {
	alive := a.NumAlive()
	if a.NumAgents() < 2 {
		if alive > 0 {
			return OutcomeRunning
		}
		return OutcomeLost
	}

	if human, ok := a.Human(); ok {
		switch {
		case human.IsAlive() && alive == 1:
			return OutcomeWon
		case human.IsAlive():
			return OutcomeRunning
		case alive > 0:
			return OutcomeLost
		case human.Vitals().DiedAt == a.lastDeathTick() && a.deathsAt(a.lastDeathTick()) > 1:
			return OutcomeDraw
		case human.Vitals().DiedAt == a.lastDeathTick():
			return OutcomeWon
		default:
			return OutcomeLost
		}
	}

	switch {
	case alive > 1:
		return OutcomeRunning
	case alive == 1:
		return OutcomeWon
	case a.deathsAt(a.lastDeathTick()) > 1:
		return OutcomeDraw
	default:
		return OutcomeWon
	}
}

// Winner returns the slot of the last agent standing, or -1.
func (a *Arena) Winner() int {
	if a.NumAgents() < 2 {
		return -1
	}
	winner := -1
	for i, e := range a.roster {
		if a.vitalsMap.Get(e).Alive {
			if winner >= 0 {
				return -1
			}
			winner = i
		}
	}
	if winner >= 0 {
		return winner
	}
	// Everyone is dead: a lone last casualty still outlived the rest.
	last := a.lastDeathTick()
	if a.deathsAt(last) != 1 {
		return -1
	}
	for i, e := range a.roster {
		if a.vitalsMap.Get(e).DiedAt == last {
			return i
		}
	}
	return -1
}

// Finished reports whether the configured end condition has been met.
func (a *Arena) Finished() bool {
	alive := a.NumAlive()
	if a.opts.EndCondition == EndLastStanding && a.NumAgents() > 1 {
		return alive <= 1
	}
	return alive == 0
}

func (a *Arena) lastDeathTick() int32 {
	last := int32(-1)
	for _, e := range a.roster {
		if v := a.vitalsMap.Get(e); !v.Alive && v.DiedAt > last {
			last = v.DiedAt
		}
	}
	return last
}

func (a *Arena) deathsAt(tick int32) int {
	n := 0
	for _, e := range a.roster {
		if v := a.vitalsMap.Get(e); !v.Alive && v.DiedAt == tick {
			n++
		}
	}
	return n
}
