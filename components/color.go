package components

import (
	"fmt"
	"strings"
)

// Color is a display-only tag. Simulation logic never reads it.
type Color uint8

const (
	ColorWhite Color = iota
	ColorCyan
	ColorYellow
	ColorMagenta
	ColorGreen
	ColorRed
	ColorBlue
)

var colorNames = map[Color]string{
	ColorWhite:   "white",
	ColorCyan:    "cyan",
	ColorYellow:  "yellow",
	ColorMagenta: "magenta",
	ColorGreen:   "green",
	ColorRed:     "red",
	ColorBlue:    "blue",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return "unknown"
}

// ParseColor resolves a color name (case-insensitive).
func ParseColor(name string) (Color, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for c, n := range colorNames {
		if n == name {
			return c, nil
		}
	}
	return ColorWhite, fmt.Errorf("unknown color %q", name)
}
