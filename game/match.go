package game

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/pthm-cable/lightcycle/components"
	"github.com/pthm-cable/lightcycle/telemetry"
)

// MatchOptions configures the telemetry kept around an arena.
type MatchOptions struct {
	// Output receives CSV rows and snapshots. Nil disables file output.
	Output *telemetry.OutputManager
	// LogEvery is the number of ticks between perf log lines; 0 never logs.
	LogEvery int32
	// MarathonTicks triggers a marathon bookmark; 0 disables it.
	MarathonTicks int32
	// Snapshots writes the board on every bookmark.
	Snapshots bool
}

// Match wraps an arena with an identity and its statistics.
type Match struct {
	id    string
	arena *Arena
	opts  MatchOptions

	collector *telemetry.Collector
	bookmarks *telemetry.BookmarkDetector
	headings  []components.Direction

	finished bool
	summary  telemetry.MatchSummary
}

// NewMatch starts tracking a fully populated arena. Agents added afterwards
// are not tracked.
func NewMatch(a *Arena, opts MatchOptions) *Match {
	m := &Match{
		id:        uuid.NewString(),
		arena:     a,
		opts:      opts,
		bookmarks: telemetry.NewBookmarkDetector(opts.MarathonTicks),
	}
	b := a.Bounds()
	m.collector = telemetry.NewCollector(m.id, b.Width(), b.Height())

	lifetimes := m.collector.Lifetimes()
	for _, ag := range a.Agents() {
		lifetimes.Register(ag.Slot(), ag.Name(), ag.IsHuman(), a.TickCount())
		m.headings = append(m.headings, ag.Direction())
	}

	slog.Info("match_start",
		"match_id", m.id,
		"width", b.Width(),
		"height", b.Height(),
		"agents", a.NumAgents(),
		"trail_cap", a.opts.TrailCapacity,
	)
	return m
}

// ID returns the match identifier stamped on every telemetry record.
func (m *Match) ID() string { return m.id }

// Arena returns the underlying arena.
func (m *Match) Arena() *Arena { return m.arena }

// Step runs one tick and records it.
func (m *Match) Step() TickReport {
	perf := m.arena.opts.Perf
	start := time.Now()
	if perf != nil {
		perf.StartTick()
	}

	report := m.arena.Tick()

	if perf != nil {
		perf.StartPhase(telemetry.PhaseTelemetry)
	}
	m.record(report, time.Since(start))

	if perf != nil {
		perf.EndTick()
		if m.opts.LogEvery > 0 && report.Tick%m.opts.LogEvery == 0 {
			stats := perf.Stats()
			stats.LogStats()
			m.writeErr("perf.csv", m.opts.Output.WritePerf(stats, report.Tick))
		}
	}
	return report
}

func (m *Match) record(report TickReport, dur time.Duration) {
	lifetimes := m.collector.Lifetimes()
	for i, ag := range m.arena.Agents() {
		if i >= len(m.headings) {
			break
		}
		if d := ag.Direction(); d != m.headings[i] {
			lifetimes.RecordTurn(i)
			m.headings[i] = d
		}
	}

	var deaths []telemetry.DeathEvent
	for _, d := range report.Deaths {
		ev := telemetry.NewDeathEvent(m.id, report.Tick, d.Slot, d.Name, d.Human, d.Cause, d.Pos)
		slog.Info("agent_died", "match_id", m.id, "death", ev)
		deaths = append(deaths, ev)
	}

	rec := m.collector.RecordTick(report.Tick, report.Alive, deaths, dur)
	m.writeErr("ticks.csv", m.opts.Output.WriteTick(rec))
	m.writeErr("deaths.csv", m.opts.Output.WriteDeaths(deaths))

	for _, b := range m.bookmarks.Check(rec, deaths) {
		b.LogBookmark()
		if m.opts.Snapshots {
			_, err := m.opts.Output.WriteSnapshot(m.Snapshot(&b))
			m.writeErr("snapshot", err)
		}
	}
}

// writeErr logs a failed telemetry write. The match keeps running.
func (m *Match) writeErr(what string, err error) {
	if err != nil {
		slog.Warn("telemetry_write_failed", "match_id", m.id, "file", what, "error", err)
	}
}

// Finish closes the match: the summary is logged and appended to
// matches.csv. Later calls return the same summary without writing again.
func (m *Match) Finish() telemetry.MatchSummary {
	if m.finished {
		return m.summary
	}
	m.finished = true
	m.summary = m.collector.Summary(m.arena.Outcome().String(), m.arena.Winner())
	m.summary.LogStats()
	m.writeErr("matches.csv", m.opts.Output.WriteMatch(m.summary))
	return m.summary
}

// Snapshot captures the board. b may be nil.
func (m *Match) Snapshot(b *telemetry.Bookmark) *telemetry.Snapshot {
	a := m.arena
	s := &telemetry.Snapshot{
		Version:  telemetry.SnapshotVersion,
		MatchID:  m.id,
		Tick:     a.TickCount(),
		Bounds:   a.Bounds(),
		Outcome:  a.Outcome().String(),
		Bookmark: b,
	}
	for _, ag := range a.Agents() {
		v := ag.Vitals()
		state := telemetry.AgentState{
			Slot:      ag.Slot(),
			Name:      ag.Name(),
			Human:     ag.IsHuman(),
			Color:     ag.Color().String(),
			Head:      ag.Position(),
			Direction: ag.Direction().String(),
			Trail:     ag.Trail(),
			TrailCap:  ag.TrailCap(),
			Alive:     v.Alive,
			DiedAt:    v.DiedAt,
		}
		if !v.Alive {
			state.Cause = v.Cause.String()
		}
		s.Agents = append(s.Agents, state)
	}
	return s
}
