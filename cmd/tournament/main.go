// Package main runs headless all-autopilot light cycle tournaments and
// reports survival statistics.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/akamensky/argparse"
	"github.com/joho/godotenv"

	"github.com/pthm-cable/lightcycle/config"
	"github.com/pthm-cable/lightcycle/telemetry"
)

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}

func main() {
	_ = godotenv.Load()

	parser := argparse.NewParser("tournament", "Headless all-autopilot light cycle matches")
	configPath := parser.String("c", "config", &argparse.Options{Default: os.Getenv("LIGHTCYCLE_CONFIG"), Help: "Config file, .yaml or .toml"})
	outputDir := parser.String("o", "output", &argparse.Options{Default: os.Getenv("LIGHTCYCLE_OUTPUT_DIR"), Help: "Output directory for CSV logs"})
	matches := parser.Int("n", "matches", &argparse.Options{Default: 100, Help: "Number of matches"})
	agents := parser.Int("a", "agents", &argparse.Options{Default: 4, Help: "Autopilots per match (2-4)"})
	seed := parser.Int("s", "seed", &argparse.Options{Default: 42, Help: "Seed for arena sizes"})
	minW := parser.Int("w", "min-width", &argparse.Options{Default: 20})
	maxW := parser.Int("W", "max-width", &argparse.Options{Default: 120})
	minH := parser.Int("y", "min-height", &argparse.Options{Default: 10})
	maxH := parser.Int("Y", "max-height", &argparse.Options{Default: 50})
	maxTicks := parser.Int("t", "max-ticks", &argparse.Options{Default: 5000, Help: "Tick cap per match (0 = unlimited)"})

	if err := parser.Parse(os.Args); err != nil {
		fmt.Fprint(os.Stderr, parser.Usage(err))
		os.Exit(1)
	}

	// Set up slog (JSON to stdout for structured logging)
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	settings := Settings{
		Matches:   *matches,
		Agents:    *agents,
		Seed:      int64(*seed),
		MinWidth:  *minW,
		MaxWidth:  *maxW,
		MinHeight: *minH,
		MaxHeight: *maxH,
		MaxTicks:  int32(*maxTicks),
	}
	if err := settings.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	dir := *outputDir
	if dir == "" {
		dir = cfg.Telemetry.OutputDir
	}
	out, err := telemetry.NewOutputManager(dir)
	if err != nil {
		slog.Error("failed to create output", "error", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Warn("telemetry_write_failed", "file", "config.yaml", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	start := time.Now()
	st, err := NewTournament(cfg, settings, out, perf).Run(ctx)
	if err != nil {
		slog.Error("tournament failed", "error", err)
		os.Exit(1)
	}

	report(st, time.Since(start))
	perf.Stats().LogStats()
}

func report(st Standings, elapsed time.Duration) {
	mean, std, p10, p50, p90 := telemetry.SurvivalStats(st.MatchLengths())
	slog.Info("tournament_over",
		"matches", len(st.Matches),
		"draws", st.Draws,
		"unended", st.Unended,
		"cancelled", st.Cancelled,
		"length_mean", mean,
		"length_std", std,
		"length_p10", p10,
		"length_p50", p50,
		"length_p90", p90,
	)

	fmt.Printf("\n%d matches in %s\n", len(st.Matches), formatDuration(elapsed))
	for slot, wins := range st.Wins {
		fmt.Printf("  slot %d: %d wins\n", slot, wins)
	}
	fmt.Printf("  draws: %d, unended: %d\n", st.Draws, st.Unended)
	fmt.Printf("  match length: mean %.1f ± %.1f ticks, p10/p50/p90 %.0f/%.0f/%.0f\n", mean, std, p10, p50, p90)
}
