package telemetry

import (
	"log/slog"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase is one timed step of a tick.
type Phase uint8

const (
	PhaseDecideMove Phase = iota // every live agent picks a heading and moves
	PhaseRebuild                 // occupancy map rebuild
	PhaseCollide                 // collision detection and kills
	PhaseTelemetry               // recording and CSV output
	NumPhases
)

var phaseNames = [NumPhases]string{
	PhaseDecideMove: "decide_move",
	PhaseRebuild:    "rebuild",
	PhaseCollide:    "collide",
	PhaseTelemetry:  "telemetry",
}

func (p Phase) String() string {
	if p < NumPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// PerfSample holds the timing of one tick.
type PerfSample struct {
	Tick   time.Duration
	Phases [NumPhases]time.Duration
}

// PerfCollector keeps the last windowSize tick samples in a ring and the
// interval between the last two terminal redraws.
type PerfCollector struct {
	now func() time.Time

	window []PerfSample
	next   int
	filled int

	open       bool
	current    PerfSample
	tickStart  time.Time
	phase      Phase
	phaseStart time.Time
	inPhase    bool

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over windowSize ticks.
// Non-positive sizes fall back to 10.
func NewPerfCollector(windowSize int) *PerfCollector {
	return newPerfCollector(windowSize, time.Now)
}

func newPerfCollector(windowSize int, now func() time.Time) *PerfCollector {
	if windowSize < 1 {
		windowSize = 10
	}
	return &PerfCollector{
		now:    now,
		window: make([]PerfSample, windowSize),
	}
}

// StartTick opens a new sample.
func (p *PerfCollector) StartTick() {
	p.open = true
	p.current = PerfSample{}
	p.tickStart = p.now()
	p.inPhase = false
}

// StartPhase closes the running phase and starts timing phase. Calls
// outside StartTick/EndTick are ignored, so a bare Arena.Tick records
// nothing.
func (p *PerfCollector) StartPhase(phase Phase) {
	if !p.open || phase >= NumPhases {
		return
	}
	now := p.now()
	p.closePhase(now)
	p.phase = phase
	p.phaseStart = now
	p.inPhase = true
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.current.Phases[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// EndTick closes the sample and stores it in the window.
func (p *PerfCollector) EndTick() {
	if !p.open {
		return
	}
	now := p.now()
	p.closePhase(now)
	p.current.Tick = now.Sub(p.tickStart)
	p.open = false

	p.window[p.next] = p.current
	p.next = (p.next + 1) % len(p.window)
	if p.filled < len(p.window) {
		p.filled++
	}
}

// RecordFrame marks a terminal redraw.
func (p *PerfCollector) RecordFrame() {
	now := p.now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarises the current window.
type PerfStats struct {
	Samples int

	AvgTick time.Duration
	MinTick time.Duration
	MaxTick time.Duration
	P95Tick time.Duration

	PhaseAvg [NumPhases]time.Duration
	PhasePct [NumPhases]float64 // share of the average tick, 0-100

	TicksPerSecond float64

	FrameDuration time.Duration
	FPS           float64
}

// Stats aggregates the window. Tick durations go through gonum for the mean
// and the 95th percentile.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{Samples: p.filled, FrameDuration: p.frame}
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return s
	}

	ticks := make([]float64, p.filled)
	var phaseSum [NumPhases]time.Duration
	for i, sample := range p.window[:p.filled] {
		ticks[i] = float64(sample.Tick)
		for ph, d := range sample.Phases {
			phaseSum[ph] += d
		}
	}
	sort.Float64s(ticks)

	s.AvgTick = time.Duration(stat.Mean(ticks, nil))
	s.MinTick = time.Duration(ticks[0])
	s.MaxTick = time.Duration(ticks[len(ticks)-1])
	s.P95Tick = time.Duration(stat.Quantile(0.95, stat.Empirical, ticks, nil))

	for ph, sum := range phaseSum {
		s.PhaseAvg[ph] = sum / time.Duration(p.filled)
		if s.AvgTick > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgTick) * 100
		}
	}
	if s.AvgTick > 0 {
		s.TicksPerSecond = float64(time.Second) / float64(s.AvgTick)
	}
	return s
}

// LogStats logs the window as a perf event.
func (s PerfStats) LogStats() {
	slog.Info("perf", "stats", s)
}

// LogValue implements slog.LogValuer for structured logging. Phases are
// logged in tick order; idle phases are left out.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("samples", s.Samples),
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("p95_tick_us", s.P95Tick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Int("ticks_per_sec", int(s.TicksPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for ph := Phase(0); ph < NumPhases; ph++ {
		if pct := s.PhasePct[ph]; pct >= 0.1 {
			attrs = append(attrs, slog.Float64(ph.String()+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one row of perf.csv.
type PerfStatsCSV struct {
	WindowEnd     int32   `csv:"window_end"`
	Samples       int     `csv:"samples"`
	AvgTickUS     int64   `csv:"avg_tick_us"`
	MinTickUS     int64   `csv:"min_tick_us"`
	MaxTickUS     int64   `csv:"max_tick_us"`
	P95TickUS     int64   `csv:"p95_tick_us"`
	TicksPerSec   float64 `csv:"ticks_per_sec"`
	FPS           float64 `csv:"fps"`
	DecideMovePct float64 `csv:"decide_move_pct"`
	RebuildPct    float64 `csv:"rebuild_pct"`
	CollidePct    float64 `csv:"collide_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the stats for the window ending at tick windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		Samples:       s.Samples,
		AvgTickUS:     s.AvgTick.Microseconds(),
		MinTickUS:     s.MinTick.Microseconds(),
		MaxTickUS:     s.MaxTick.Microseconds(),
		P95TickUS:     s.P95Tick.Microseconds(),
		TicksPerSec:   s.TicksPerSecond,
		FPS:           s.FPS,
		DecideMovePct: s.PhasePct[PhaseDecideMove],
		RebuildPct:    s.PhasePct[PhaseRebuild],
		CollidePct:    s.PhasePct[PhaseCollide],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}
