package systems

import "github.com/pthm-cable/lightcycle/components"

// Pilot chooses an agent's heading for the coming move.
// Implementations must not mutate the snapshot.
type Pilot interface {
	Direct(pos components.Coord, dir components.Direction, m Snapshot) components.Direction
}

// AutoPilot steers with the greedy lookahead.
type AutoPilot struct {
	Penalty int
}

// Direct implements Pilot.
func (p AutoPilot) Direct(pos components.Coord, dir components.Direction, m Snapshot) components.Direction {
	return Steer(pos, dir, m, p.Penalty)
}

// InputSource is a non-blocking source of directional input.
// Poll returns false immediately when no key is pending.
type InputSource interface {
	Poll() (components.Direction, bool)
}

// HumanPilot follows the most recent key. Without input the heading is kept.
// Reversal is not filtered out: turning back into the trail is fatal.
type HumanPilot struct {
	Input InputSource
}

// Direct implements Pilot.
func (p HumanPilot) Direct(_ components.Coord, dir components.Direction, _ Snapshot) components.Direction {
	if p.Input == nil {
		return dir
	}
	if d, ok := p.Input.Poll(); ok {
		return d
	}
	return dir
}

// KeyLatch keeps the most recent directional key until it is polled.
// It is only touched from the single simulation goroutine.
type KeyLatch struct {
	dir     components.Direction
	pending bool
}

// Press records d, replacing any key not yet consumed.
func (l *KeyLatch) Press(d components.Direction) {
	l.dir = d
	l.pending = true
}

// Poll implements InputSource and clears the latch.
func (l *KeyLatch) Poll() (components.Direction, bool) {
	if !l.pending {
		return 0, false
	}
	l.pending = false
	return l.dir, true
}
