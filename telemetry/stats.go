package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// MatchSummary holds the aggregated statistics for one finished match.
// Rows go to matches.csv.
type MatchSummary struct {
	MatchID string `csv:"match_id"`
	Width   int    `csv:"width"`
	Height  int    `csv:"height"`
	Agents  int    `csv:"agents"`
	Ticks   int32  `csv:"ticks"`
	Outcome string `csv:"outcome"`
	Winner  int    `csv:"winner"`

	// Deaths by cause
	WallDeaths   int `csv:"wall_deaths"`
	TrailDeaths  int `csv:"trail_deaths"`
	HeadOnDeaths int `csv:"head_on_deaths"`
	KilledDeaths int `csv:"killed_deaths"`

	// Ticks in which two or more agents died together
	SimultaneousTicks int `csv:"simultaneous_ticks"`

	// Survival distribution over agents, in ticks
	SurvivalMean float64 `csv:"survival_mean"`
	SurvivalStd  float64 `csv:"survival_std"`
	SurvivalP10  float64 `csv:"survival_p10"`
	SurvivalP50  float64 `csv:"survival_p50"`
	SurvivalP90  float64 `csv:"survival_p90"`

	Turns int `csv:"turns"`
}

// Percentile returns the empirical p-quantile of a sorted slice.
// p is clamped to [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	switch {
	case p < 0:
		p = 0
	case p > 1:
		p = 1
	}
	return stat.Quantile(p, stat.Empirical, sorted, nil)
}

// SurvivalStats calculates mean, std and percentiles from survival values.
// The standard deviation is the unbiased sample estimate and 0 for fewer
// than two values.
func SurvivalStats(values []float64) (mean, std, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)
	if n > 1 {
		std = stat.StdDev(values, nil)
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// TotalDeaths sums deaths over every cause.
func (s MatchSummary) TotalDeaths() int {
	return s.WallDeaths + s.TrailDeaths + s.HeadOnDeaths + s.KilledDeaths
}

// LogValue implements slog.LogValuer for structured logging.
func (s MatchSummary) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("match_id", s.MatchID),
		slog.Int("width", s.Width),
		slog.Int("height", s.Height),
		slog.Int("agents", s.Agents),
		slog.Int("ticks", int(s.Ticks)),
		slog.String("outcome", s.Outcome),
		slog.Int("winner", s.Winner),
		slog.Int("wall_deaths", s.WallDeaths),
		slog.Int("trail_deaths", s.TrailDeaths),
		slog.Int("head_on_deaths", s.HeadOnDeaths),
		slog.Int("killed_deaths", s.KilledDeaths),
		slog.Int("simultaneous_ticks", s.SimultaneousTicks),
		slog.Float64("survival_mean", s.SurvivalMean),
		slog.Float64("survival_std", s.SurvivalStd),
		slog.Float64("survival_p50", s.SurvivalP50),
		slog.Int("turns", s.Turns),
	)
}

// LogStats logs the summary as a match_over event.
func (s MatchSummary) LogStats() {
	slog.Info("match_over", "summary", s)
}
