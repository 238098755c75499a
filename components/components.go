// Package components defines ECS components for the arena.
package components

// CellState is the derived content of an occupancy map cell.
type CellState uint8

const (
	CellEmpty CellState = iota
	CellWall
	CellAgent
)

func (s CellState) String() string {
	switch s {
	case CellEmpty:
		return "empty"
	case CellWall:
		return "wall"
	case CellAgent:
		return "agent"
	default:
		return "unknown"
	}
}

// Head holds an agent's current cell and heading.
// Pos changes only when the agent moves; Dir only in the decision step.
type Head struct {
	Pos Coord
	Dir Direction
}

// DeathCause records what an agent ran into.
type DeathCause uint8

const (
	CauseNone   DeathCause = iota
	CauseWall              // border ring
	CauseTrail             // any agent's trail, including its own
	CauseHeadOn            // shared head cell with another live agent
	CauseKilled            // killed directly, outside collision resolution
)

func (c DeathCause) String() string {
	switch c {
	case CauseNone:
		return "none"
	case CauseWall:
		return "wall"
	case CauseTrail:
		return "trail"
	case CauseHeadOn:
		return "head_on"
	case CauseKilled:
		return "killed"
	default:
		return "unknown"
	}
}

// Vitals tracks liveness. Alive flips to false exactly once.
type Vitals struct {
	Alive  bool
	DiedAt int32 // tick of death, -1 while alive
	Cause  DeathCause
}

// NewVitals returns vitals for a freshly spawned agent.
func NewVitals() Vitals {
	return Vitals{Alive: true, DiedAt: -1}
}

// Kill marks the agent dead at tick. Later calls keep the first death.
func (v *Vitals) Kill(tick int32, cause DeathCause) bool {
	if !v.Alive {
		return false
	}
	v.Alive = false
	v.DiedAt = tick
	v.Cause = cause
	return true
}

// Rider is an agent's identity. Human never changes after spawn.
type Rider struct {
	Slot  int
	Name  string
	Color Color
	Human bool
}
