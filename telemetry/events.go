// Package telemetry provides match statistics, bookmarks, snapshots and CSV output.
package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/lightcycle/components"
)

// DeathEvent records one agent dying. Rows go to deaths.csv.
type DeathEvent struct {
	MatchID string `csv:"match_id"`
	Tick    int32  `csv:"tick"`
	Slot    int    `csv:"slot"`
	Name    string `csv:"name"`
	Human   bool   `csv:"human"`
	Cause   string `csv:"cause"`
	X       int    `csv:"x"`
	Y       int    `csv:"y"`

	cause components.DeathCause `csv:"-"`
}

// NewDeathEvent creates a death event.
func NewDeathEvent(matchID string, tick int32, slot int, name string, human bool, cause components.DeathCause, pos components.Coord) DeathEvent {
	return DeathEvent{
		MatchID: matchID,
		Tick:    tick,
		Slot:    slot,
		Name:    name,
		Human:   human,
		Cause:   cause.String(),
		X:       pos.X,
		Y:       pos.Y,
		cause:   cause,
	}
}

// DeathCause returns the typed cause.
func (e DeathEvent) DeathCause() components.DeathCause {
	return e.cause
}

// LogValue implements slog.LogValuer for structured logging.
func (e DeathEvent) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", int(e.Tick)),
		slog.Int("slot", e.Slot),
		slog.String("name", e.Name),
		slog.Bool("human", e.Human),
		slog.String("cause", e.Cause),
		slog.Int("x", e.X),
		slog.Int("y", e.Y),
	)
}

// TickRecord is one row of ticks.csv.
type TickRecord struct {
	MatchID    string `csv:"match_id"`
	Tick       int32  `csv:"tick"`
	Alive      int    `csv:"alive"`
	Deaths     int    `csv:"deaths"`
	DurationUS int64  `csv:"duration_us"`
}
