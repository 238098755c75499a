package ui

import "github.com/pthm-cable/lightcycle/components"

// keyDirections maps key names as bubbletea reports them to headings:
// arrows, WASD and vi keys.
var keyDirections = map[string]components.Direction{
	"left":  components.Left,
	"right": components.Right,
	"up":    components.Up,
	"down":  components.Down,
	"a":     components.Left,
	"d":     components.Right,
	"w":     components.Up,
	"s":     components.Down,
	"h":     components.Left,
	"l":     components.Right,
	"k":     components.Up,
	"j":     components.Down,
}

// KeyDirection resolves a steering key.
func KeyDirection(key string) (components.Direction, bool) {
	d, ok := keyDirections[key]
	return d, ok
}
