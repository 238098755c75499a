package components

// Trail is a bounded FIFO of cells an agent has left behind.
// Once full, each push evicts the oldest cell.
type Trail struct {
	cells []Coord // ring storage, len == capacity
	start int     // index of the oldest cell
	size  int
}

// NewTrail creates an empty trail holding at most capacity cells.
func NewTrail(capacity int) Trail {
	if capacity < 0 {
		capacity = 0
	}
	return Trail{cells: make([]Coord, capacity)}
}

// Cap returns the trail capacity.
func (t *Trail) Cap() int { return len(t.cells) }

// Len returns the number of cells currently held.
func (t *Trail) Len() int { return t.size }

// Push appends c, evicting the oldest cell when the trail is full.
func (t *Trail) Push(c Coord) {
	n := len(t.cells)
	if n == 0 {
		return
	}
	if t.size == n {
		t.cells[t.start] = c
		t.start = (t.start + 1) % n
		return
	}
	t.cells[(t.start+t.size)%n] = c
	t.size++
}

// At returns the i-th cell, oldest first.
func (t *Trail) At(i int) Coord {
	return t.cells[(t.start+i)%len(t.cells)]
}

// Each calls fn for every cell, oldest first.
func (t *Trail) Each(fn func(Coord)) {
	for i := 0; i < t.size; i++ {
		fn(t.At(i))
	}
}

// Cells returns a copy of the trail, oldest first.
func (t *Trail) Cells() []Coord {
	out := make([]Coord, 0, t.size)
	t.Each(func(c Coord) { out = append(out, c) })
	return out
}
