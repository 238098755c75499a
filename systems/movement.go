package systems

import "github.com/pthm-cable/lightcycle/components"

// Advance moves head one cell along its heading, first pushing the vacated
// cell onto the trail. Liveness is the caller's concern.
func Advance(head *components.Head, trail *components.Trail) {
	trail.Push(head.Pos)
	head.Pos = head.Pos.Step(head.Dir)
}
