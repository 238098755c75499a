package game

import "time"

// Clock supplies elapsed time and blocking sleep for tick pacing.
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// SystemClock is the wall clock. time.Time carries a monotonic reading, so
// Sub on two Now values is immune to wall-clock jumps.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// Sleep implements Clock.
func (SystemClock) Sleep(d time.Duration) { time.Sleep(d) }

// Pacer holds ticks to a fixed rate by sleeping whatever is left of the
// interval after a tick's work. An overrun tick skips the sleep; there is
// no catch-up, so sustained overruns slow the game down.
type Pacer struct {
	Interval time.Duration
	Clock    Clock
}

// NewPacer creates a pacer for rate ticks per second. A non-positive rate
// disables pacing.
func NewPacer(rate float64, clock Clock) *Pacer {
	if clock == nil {
		clock = SystemClock{}
	}
	var interval time.Duration
	if rate > 0 {
		interval = time.Duration(float64(time.Second) / rate)
	}
	return &Pacer{Interval: interval, Clock: clock}
}

// Start marks the beginning of a tick.
func (p *Pacer) Start() time.Time {
	return p.Clock.Now()
}

// Residual returns the time left in the interval after elapsed, never
// negative.
func (p *Pacer) Residual(elapsed time.Duration) time.Duration {
	if r := p.Interval - elapsed; r > 0 {
		return r
	}
	return 0
}

// Elapsed returns the time since start.
func (p *Pacer) Elapsed(start time.Time) time.Duration {
	return p.Clock.Now().Sub(start)
}

// Wait sleeps the residual of the tick begun at start and returns it.
func (p *Pacer) Wait(start time.Time) time.Duration {
	r := p.Residual(p.Elapsed(start))
	if r > 0 {
		p.Clock.Sleep(r)
	}
	return r
}
