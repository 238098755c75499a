package systems

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/lightcycle/components"
)

// Snapshot is a read-only view of cell occupancy.
type Snapshot interface {
	At(c components.Coord) components.CellState
}

// OccupancyMap stores the derived state of every interior cell plus the
// one-cell border ring, which is stored as WALL rather than bounds-checked.
// It is never authoritative: Rebuild recomputes it from agent state.
type OccupancyMap struct {
	bounds components.Bounds
	cells  []components.CellState
	stride int // ring-inclusive row width
}

// NewOccupancyMap creates an empty map with the border ring already marked.
func NewOccupancyMap(bounds components.Bounds) *OccupancyMap {
	stride := bounds.Width() + 2
	m := &OccupancyMap{
		bounds: bounds,
		cells:  make([]components.CellState, stride*(bounds.Height()+2)),
		stride: stride,
	}
	m.Begin()
	return m
}

// Bounds returns the interior covered by the map.
func (m *OccupancyMap) Bounds() components.Bounds {
	return m.bounds
}

func (m *OccupancyMap) index(c components.Coord) (int, bool) {
	gx := c.X - m.bounds.MinX + 1
	gy := c.Y - m.bounds.MinY + 1
	if gx < 0 || gx >= m.stride || gy < 0 || gy >= m.bounds.Height()+2 {
		return 0, false
	}
	return gy*m.stride + gx, true
}

// At returns the state of c. Cells beyond the border ring read as WALL.
func (m *OccupancyMap) At(c components.Coord) components.CellState {
	i, ok := m.index(c)
	if !ok {
		return components.CellWall
	}
	return m.cells[i]
}

// Begin runs the first two rebuild passes: every interior cell becomes
// EMPTY and the full border ring becomes WALL.
func (m *OccupancyMap) Begin() {
	b := m.bounds
	for y := b.MinY; y <= b.MaxY; y++ {
		for x := b.MinX; x <= b.MaxX; x++ {
			i, _ := m.index(components.Coord{X: x, Y: y})
			m.cells[i] = components.CellEmpty
		}
	}
	for x := b.MinX - 1; x <= b.MaxX+1; x++ {
		m.setWall(components.Coord{X: x, Y: b.MinY - 1})
		m.setWall(components.Coord{X: x, Y: b.MaxY + 1})
	}
	for y := b.MinY; y <= b.MaxY; y++ {
		m.setWall(components.Coord{X: b.MinX - 1, Y: y})
		m.setWall(components.Coord{X: b.MaxX + 1, Y: y})
	}
}

func (m *OccupancyMap) setWall(c components.Coord) {
	if i, ok := m.index(c); ok {
		m.cells[i] = components.CellWall
	}
}

// Stamp writes one agent into the map: trail cells become WALL, and for a
// live agent the head becomes AGENT unless the cell is already non-empty.
// A wall is never overwritten by an agent marker.
func (m *OccupancyMap) Stamp(head components.Coord, trail *components.Trail, alive bool) {
	trail.Each(m.setWall)
	if !alive {
		return
	}
	if i, ok := m.index(head); ok && m.cells[i] == components.CellEmpty {
		m.cells[i] = components.CellAgent
	}
}

// Count returns how many ring-inclusive cells hold state s.
func (m *OccupancyMap) Count(s components.CellState) int {
	n := 0
	for _, c := range m.cells {
		if c == s {
			n++
		}
	}
	return n
}

// OccupancySystem rebuilds an OccupancyMap from every agent in the world.
type OccupancySystem struct {
	filter *ecs.Filter3[components.Head, components.Trail, components.Vitals]
}

// NewOccupancySystem creates the rebuild system for w.
func NewOccupancySystem(w *ecs.World) *OccupancySystem {
	return &OccupancySystem{
		filter: ecs.NewFilter3[components.Head, components.Trail, components.Vitals](w),
	}
}

// Update fully rebuilds m. Dead agents still stamp their trails.
func (s *OccupancySystem) Update(m *OccupancyMap) {
	m.Begin()

	query := s.filter.Query()
	for query.Next() {
		head, trail, vitals := query.Get()
		m.Stamp(head.Pos, trail, vitals.Alive)
	}
}
