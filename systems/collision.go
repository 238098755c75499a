package systems

import (
	"github.com/zyedidia/generic/mapset"

	"github.com/pthm-cable/lightcycle/components"
)

// HitsWall reports whether head sits on a WALL cell of the rebuilt map.
func HitsWall(m Snapshot, head components.Coord) bool {
	return m.At(head) == components.CellWall
}

// SharedHeads returns every coordinate occupied by more than one head.
func SharedHeads(heads []components.Coord) mapset.Set[components.Coord] {
	seen := mapset.New[components.Coord]()
	shared := mapset.New[components.Coord]()
	for _, h := range heads {
		if seen.Has(h) {
			shared.Put(h)
			continue
		}
		seen.Put(h)
	}
	return shared
}

// Classify names the cause for a head that collided. Leaving the interior
// wins over a head-on, which wins over running into a trail.
func Classify(bounds components.Bounds, head components.Coord, headOn bool) components.DeathCause {
	switch {
	case !bounds.Contains(head):
		return components.CauseWall
	case headOn:
		return components.CauseHeadOn
	default:
		return components.CauseTrail
	}
}
