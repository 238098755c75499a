package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/pthm-cable/lightcycle/components"
	"github.com/pthm-cable/lightcycle/config"
	"github.com/pthm-cable/lightcycle/game"
	"github.com/pthm-cable/lightcycle/systems"
	"github.com/pthm-cable/lightcycle/telemetry"
	"github.com/pthm-cable/lightcycle/ui"
)

const (
	minAI = 1
	maxAI = game.MaxAgents - 1
)

var (
	errUsage   = errors.New("usage: lightcycle [flags] num_ai")
	errTooFew  = fmt.Errorf("the minimum number of AI players is %d", minAI)
	errTooMany = fmt.Errorf("the maximum number of AI players is %d", maxAI)
)

// parseNumAI validates the single positional argument.
func parseNumAI(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errUsage
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, errUsage
	}
	switch {
	case n < minAI:
		return 0, errTooFew
	case n > maxAI:
		return 0, errTooMany
	}
	return n, nil
}

// options holds the parsed command line.
type options struct {
	configPath string
	outputDir  string
	logFile    string
	numAI      int
}

// parseArgs reads flags then the AI count. Flag defaults come from the
// environment. Any error means usage; the caller exits with status 1.
func parseArgs(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("lightcycle", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	fs.StringVar(&opts.configPath, "config", os.Getenv("LIGHTCYCLE_CONFIG"), "Path to config file, .yaml or .toml (empty = use defaults)")
	fs.StringVar(&opts.outputDir, "output-dir", os.Getenv("LIGHTCYCLE_OUTPUT_DIR"), "Output directory for CSV logs and config snapshot")
	fs.StringVar(&opts.logFile, "log-file", "lightcycle.log", "File receiving structured logs while the game owns the terminal")
	if err := fs.Parse(args); err != nil {
		return opts, errUsage
	}

	n, err := parseNumAI(fs.Args())
	if err != nil {
		return opts, err
	}
	opts.numAI = n
	return opts, nil
}

func main() {
	// A missing .env is fine; the environment only supplies flag defaults.
	_ = godotenv.Load()

	opts, err := parseArgs(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := run(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(opts options) error {
	if err := config.Init(opts.configPath); err != nil {
		return err
	}
	cfg := config.Cfg()

	// Set up slog (JSON to the log file; the terminal belongs to the game)
	f, err := os.OpenFile(opts.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer f.Close()
	slog.SetDefault(slog.New(slog.NewJSONHandler(f, nil)))
	slog.Info("config_loaded", "path", opts.configPath, "tick_rate", cfg.Game.TickRate, "num_ai", opts.numAI)

	outputDir := opts.outputDir
	if outputDir == "" {
		outputDir = cfg.Telemetry.OutputDir
	}
	out, err := telemetry.NewOutputManager(outputDir)
	if err != nil {
		return err
	}
	defer out.Close()
	if err := out.WriteConfig(cfg); err != nil {
		slog.Warn("telemetry_write_failed", "file", "config.yaml", "error", err)
	}

	perf := telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow)
	setup := func(bounds components.Bounds, input systems.InputSource) (*game.Match, error) {
		a, err := game.NewConfiguredArena(cfg, bounds, game.Lineup{
			NumAI: opts.numAI,
			Human: true,
			Input: input,
			Perf:  perf,
		})
		if err != nil {
			return nil, err
		}
		return game.NewMatch(a, game.MatchOptions{
			Output:        out,
			LogEvery:      cfg.Telemetry.LogEvery,
			MarathonTicks: cfg.Telemetry.MarathonTicks,
			Snapshots:     cfg.Telemetry.Snapshots,
		}), nil
	}

	model := ui.NewModel(cfg, setup, nil, perf)
	if _, err := tea.NewProgram(model, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("running terminal: %w", err)
	}
	if err := model.Err(); err != nil {
		return err
	}

	if m := model.Match(); m != nil {
		a := m.Arena()
		fmt.Printf("%s after %d ticks\n", a.Outcome(), a.TickCount())
	}
	return nil
}
