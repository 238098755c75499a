// Package renderer turns arena state into terminal glyphs.
package renderer

import (
	"fmt"
	"strings"

	"github.com/pthm-cable/lightcycle/components"
	"github.com/pthm-cable/lightcycle/game"
)

// TrailGlyph marks every trail cell.
const TrailGlyph = 'o'

// Cell is one character of the arena.
type Cell struct {
	Glyph rune
	Color components.Color
	// Dim marks the remains of a dead agent.
	Dim bool
}

// Empty reports whether nothing is drawn in the cell.
func (c Cell) Empty() bool { return c.Glyph == 0 }

// Frame is a glyph grid covering the arena interior, row-major with (0,0)
// at the interior's top-left corner.
type Frame struct {
	Width, Height int
	cells         []Cell
}

// NewFrame creates an empty frame.
func NewFrame(width, height int) *Frame {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	return &Frame{Width: width, Height: height, cells: make([]Cell, width*height)}
}

// At returns the cell at frame coordinates, or an empty cell outside.
func (f *Frame) At(x, y int) Cell {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return Cell{}
	}
	return f.cells[y*f.Width+x]
}

// Set writes a cell; writes outside the frame are dropped.
func (f *Frame) Set(x, y int, c Cell) {
	if x < 0 || y < 0 || x >= f.Width || y >= f.Height {
		return
	}
	f.cells[y*f.Width+x] = c
}

// Compose draws the arena: every trail cell as 'o' in its owner's color,
// then live heads as direction glyphs. Dead heads are not drawn; their
// trails stay, dimmed.
func Compose(a *game.Arena) *Frame {
	b := a.Bounds()
	f := NewFrame(b.Width(), b.Height())
	agents := a.Agents()

	for _, ag := range agents {
		dim := !ag.IsAlive()
		col := ag.Color()
		for _, c := range ag.Trail() {
			f.Set(c.X-b.MinX, c.Y-b.MinY, Cell{Glyph: TrailGlyph, Color: col, Dim: dim})
		}
	}
	for _, ag := range agents {
		if !ag.IsAlive() {
			continue
		}
		p := ag.Position()
		f.Set(p.X-b.MinX, p.Y-b.MinY, Cell{Glyph: ag.Direction().Glyph(), Color: ag.Color()})
	}
	return f
}

// Lines returns the frame as plain text rows, blanks for empty cells.
func (f *Frame) Lines() []string {
	lines := make([]string, f.Height)
	var sb strings.Builder
	for y := 0; y < f.Height; y++ {
		sb.Reset()
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y)
			if c.Empty() {
				sb.WriteByte(' ')
				continue
			}
			sb.WriteRune(c.Glyph)
		}
		lines[y] = sb.String()
	}
	return lines
}

// HUD returns the status line shown under the arena.
func HUD(a *game.Arena) string {
	status := fmt.Sprintf("tick %d  alive %d/%d", a.TickCount(), a.NumAlive(), a.NumAgents())
	if human, ok := a.Human(); ok {
		state := "riding"
		if !human.IsAlive() {
			state = human.Vitals().Cause.String()
		}
		status += fmt.Sprintf("  %s: %s", human.Name(), state)
	}
	if o := a.Outcome(); o != game.OutcomeRunning {
		status += "  " + o.String()
	}
	return status
}
