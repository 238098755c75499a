package components

// Coord identifies a single arena cell. Y grows downward, matching terminal rows.
type Coord struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Add returns the component-wise sum of two coordinates.
func (c Coord) Add(o Coord) Coord {
	return Coord{X: c.X + o.X, Y: c.Y + o.Y}
}

// Step returns the cell one unit away along d.
func (c Coord) Step(d Direction) Coord {
	return c.Add(d.Delta())
}

// Less orders coordinates row-major (Y first, then X).
func (c Coord) Less(o Coord) bool {
	if c.Y != o.Y {
		return c.Y < o.Y
	}
	return c.X < o.X
}

// Direction is a cardinal heading.
type Direction uint8

// Enumeration order matters: the steering tie-break prefers the lowest value.
const (
	Left Direction = iota
	Right
	Up
	Down
	NumDirections
)

// Directions lists every heading in tie-break order.
var Directions = [NumDirections]Direction{Left, Right, Up, Down}

var directionDeltas = [NumDirections]Coord{
	Left:  {X: -1, Y: 0},
	Right: {X: 1, Y: 0},
	Up:    {X: 0, Y: -1},
	Down:  {X: 0, Y: 1},
}

// Delta returns the unit offset for one step along d.
func (d Direction) Delta() Coord {
	if d >= NumDirections {
		return Coord{}
	}
	return directionDeltas[d]
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Right:
		return Left
	case Up:
		return Down
	case Down:
		return Up
	default:
		return d
	}
}

// Glyph is the head character drawn for an agent facing d.
func (d Direction) Glyph() rune {
	switch d {
	case Left:
		return '<'
	case Right:
		return '>'
	case Up:
		return '^'
	case Down:
		return 'v'
	default:
		return '?'
	}
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "unknown"
	}
}

// Bounds is the inclusive interior of the arena. The border ring lies one
// cell outside it on every side.
type Bounds struct {
	MinX int `json:"min_x" yaml:"min_x"`
	MinY int `json:"min_y" yaml:"min_y"`
	MaxX int `json:"max_x" yaml:"max_x"`
	MaxY int `json:"max_y" yaml:"max_y"`
}

// Width returns the number of interior columns.
func (b Bounds) Width() int { return b.MaxX - b.MinX + 1 }

// Height returns the number of interior rows.
func (b Bounds) Height() int { return b.MaxY - b.MinY + 1 }

// Area returns the number of interior cells.
func (b Bounds) Area() int { return b.Width() * b.Height() }

// Contains reports whether c lies in the interior.
func (b Bounds) Contains(c Coord) bool {
	return c.X >= b.MinX && c.X <= b.MaxX && c.Y >= b.MinY && c.Y <= b.MaxY
}
