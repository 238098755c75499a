package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/lightcycle/config"
)

// csvFile appends records to one CSV file, writing the header once.
type csvFile struct {
	name          string
	f             *os.File
	headerWritten bool
}

func openCSV(dir, name string) (*csvFile, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvFile{name: name, f: f}, nil
}

func writeRecords[T any](c *csvFile, records []T) error {
	if !c.headerWritten {
		if err := gocsv.Marshal(records, c.f); err != nil {
			return fmt.Errorf("writing %s: %w", c.name, err)
		}
		c.headerWritten = true
		return nil
	}
	if err := gocsv.MarshalWithoutHeaders(records, c.f); err != nil {
		return fmt.Errorf("writing %s: %w", c.name, err)
	}
	return nil
}

// OutputManager handles structured match output with CSV logging.
type OutputManager struct {
	dir string

	ticks   *csvFile
	deaths  *csvFile
	matches *csvFile
	perf    *csvFile
}

// NewOutputManager creates a new output manager and initializes the output directory.
// Returns nil if dir is empty (output disabled).
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	files := []struct {
		dst  **csvFile
		name string
	}{
		{&om.ticks, "ticks.csv"},
		{&om.deaths, "deaths.csv"},
		{&om.matches, "matches.csv"},
		{&om.perf, "perf.csv"},
	}
	for _, spec := range files {
		c, err := openCSV(dir, spec.name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*spec.dst = c
	}

	return om, nil
}

// WriteConfig saves the current configuration as YAML.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	configPath := filepath.Join(om.dir, "config.yaml")
	return cfg.WriteYAML(configPath)
}

// WriteTick writes a per-tick record to ticks.csv.
func (om *OutputManager) WriteTick(rec TickRecord) error {
	if om == nil {
		return nil
	}
	return writeRecords(om.ticks, []TickRecord{rec})
}

// WriteDeaths writes death records to deaths.csv. An empty slice is a no-op.
func (om *OutputManager) WriteDeaths(deaths []DeathEvent) error {
	if om == nil || len(deaths) == 0 {
		return nil
	}
	return writeRecords(om.deaths, deaths)
}

// WriteMatch writes a finished match to matches.csv.
func (om *OutputManager) WriteMatch(summary MatchSummary) error {
	if om == nil {
		return nil
	}
	return writeRecords(om.matches, []MatchSummary{summary})
}

// WritePerf writes a performance stats record to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	return writeRecords(om.perf, []PerfStatsCSV{stats.ToCSV(windowEnd)})
}

// WriteSnapshot saves a board snapshot next to the CSV files.
func (om *OutputManager) WriteSnapshot(s *Snapshot) (string, error) {
	if om == nil || s == nil {
		return "", nil
	}
	return SaveSnapshot(s, filepath.Join(om.dir, "snapshots"))
}

// Dir returns the output directory path.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close flushes and closes all output files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}

	var firstErr error
	for _, c := range []*csvFile{om.ticks, om.deaths, om.matches, om.perf} {
		if c == nil {
			continue
		}
		if err := c.f.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
