package game

import "github.com/pthm-cable/lightcycle/components"

// startHead returns the fixed start cell and heading for a slot: slot 0
// bottom-left heading right, slot 1 the opposite (top-right) corner heading
// left, then top-left heading right and bottom-right heading left.
func startHead(b components.Bounds, slot int) components.Head {
	switch slot {
	case 0:
		return components.Head{Pos: components.Coord{X: b.MinX, Y: b.MaxY}, Dir: components.Right}
	case 1:
		return components.Head{Pos: components.Coord{X: b.MaxX, Y: b.MinY}, Dir: components.Left}
	case 2:
		return components.Head{Pos: components.Coord{X: b.MinX, Y: b.MinY}, Dir: components.Right}
	default:
		return components.Head{Pos: components.Coord{X: b.MaxX, Y: b.MaxY}, Dir: components.Left}
	}
}
