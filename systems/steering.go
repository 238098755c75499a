package systems

import "github.com/pthm-cable/lightcycle/components"

// DefaultPenalty is the score applied to a reversed or blocked heading.
const DefaultPenalty = -50

// Scores returns the per-direction steering scores for an agent at pos
// heading dir. Every direction starts at zero; the reverse heading and any
// heading whose next cell is WALL/AGENT, or whose cell after that is AGENT,
// each receive penalty. A reversed heading that is also blocked gets it twice.
func Scores(pos components.Coord, dir components.Direction, m Snapshot, penalty int) [components.NumDirections]int {
	var scores [components.NumDirections]int
	scores[dir.Opposite()] += penalty

	for _, d := range components.Directions {
		one := pos.Step(d)
		two := one.Step(d)

		near := m.At(one)
		if near == components.CellWall || near == components.CellAgent || m.At(two) == components.CellAgent {
			scores[d] += penalty
		}
	}
	return scores
}

// Steer picks the heading with the strictly highest score, breaking ties in
// favour of the earliest entry in components.Directions. This is a greedy
// one-step lookahead and can still drive into dead ends.
func Steer(pos components.Coord, dir components.Direction, m Snapshot, penalty int) components.Direction {
	scores := Scores(pos, dir, m, penalty)

	best := components.Directions[0]
	for _, d := range components.Directions[1:] {
		if scores[d] > scores[best] {
			best = d
		}
	}
	return best
}
