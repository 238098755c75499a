package renderer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/pthm-cable/lightcycle/components"
)

// palette maps display tags to ANSI colors.
var palette = map[components.Color]lipgloss.Color{
	components.ColorWhite:   lipgloss.Color("15"),
	components.ColorCyan:    lipgloss.Color("14"),
	components.ColorYellow:  lipgloss.Color("11"),
	components.ColorMagenta: lipgloss.Color("13"),
	components.ColorGreen:   lipgloss.Color("10"),
	components.ColorRed:     lipgloss.Color("9"),
	components.ColorBlue:    lipgloss.Color("12"),
}

type styleKey struct {
	color components.Color
	dim   bool
}

// Theme styles frames for the terminal.
type Theme struct {
	styles map[styleKey]lipgloss.Style
	plain  lipgloss.Style
	HUD    lipgloss.Style
}

// NewTheme builds the default theme for r. A nil r uses lipgloss's default
// renderer on stdout.
func NewTheme(r *lipgloss.Renderer) *Theme {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	t := &Theme{
		styles: make(map[styleKey]lipgloss.Style, 2*len(palette)),
		plain:  r.NewStyle(),
		HUD:    r.NewStyle().Foreground(lipgloss.Color("244")),
	}
	for c, fg := range palette {
		t.styles[styleKey{c, false}] = r.NewStyle().Bold(true).Foreground(fg)
		t.styles[styleKey{c, true}] = r.NewStyle().Faint(true).Foreground(fg)
	}
	return t
}

func (t *Theme) style(c Cell) lipgloss.Style {
	if s, ok := t.styles[styleKey{c.Color, c.Dim}]; ok {
		return s
	}
	return t.plain
}

// Render returns the frame as styled rows joined by newlines. Runs of equal
// style are rendered together to keep escape sequences short.
func (t *Theme) Render(f *Frame) string {
	var out strings.Builder
	var run strings.Builder
	for y := 0; y < f.Height; y++ {
		if y > 0 {
			out.WriteByte('\n')
		}
		var runCell Cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if runCell.Empty() {
				out.WriteString(run.String())
			} else {
				out.WriteString(t.style(runCell).Render(run.String()))
			}
			run.Reset()
		}
		for x := 0; x < f.Width; x++ {
			c := f.At(x, y)
			if run.Len() > 0 && (c.Empty() != runCell.Empty() || c.Color != runCell.Color || c.Dim != runCell.Dim) {
				flush()
			}
			if run.Len() == 0 {
				runCell = c
			}
			if c.Empty() {
				run.WriteByte(' ')
			} else {
				run.WriteRune(c.Glyph)
			}
		}
		flush()
	}
	return out.String()
}
