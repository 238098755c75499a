package game

import (
	"context"
	"log/slog"
)

// TickHook observes each tick after it completes.
type TickHook func(m *Match, report TickReport)

// Run drives the match until the arena is finished, maxTicks is reached
// (0 means no limit) or ctx is cancelled, then finishes the match. Ticks are
// strictly sequential and paced by p.
func Run(ctx context.Context, m *Match, p *Pacer, maxTicks int32, hook TickHook) Outcome {
	a := m.Arena()
	defer m.Finish()
	for {
		if err := ctx.Err(); err != nil {
			slog.Info("match_stopped", "match_id", m.ID(), "tick", a.TickCount(), "reason", err.Error())
			return a.Outcome()
		}

		start := p.Start()
		report := m.Step()
		if hook != nil {
			hook(m, report)
		}

		if a.Finished() || (maxTicks > 0 && a.TickCount() >= maxTicks) {
			return a.Outcome()
		}
		p.Wait(start)
	}
}
