// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/lightcycle/components"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Game      GameConfig      `yaml:"game" toml:"game"`
	Arena     ArenaConfig     `yaml:"arena" toml:"arena"`
	Agents    AgentsConfig    `yaml:"agents" toml:"agents"`
	Steering  SteeringConfig  `yaml:"steering" toml:"steering"`
	Match     MatchConfig     `yaml:"match" toml:"match"`
	Telemetry TelemetryConfig `yaml:"telemetry" toml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-" toml:"-"`
}

// GameConfig holds pacing parameters.
type GameConfig struct {
	TickRate   float64 `yaml:"tick_rate" toml:"tick_rate"`     // Ticks per second
	StartDelay float64 `yaml:"start_delay" toml:"start_delay"` // Seconds before the first tick
	MaxTicks   int32   `yaml:"max_ticks" toml:"max_ticks"`     // 0 = unlimited
}

// ArenaConfig holds the playing field dimensions. Zero width or height means
// the terminal decides.
type ArenaConfig struct {
	Width   int `yaml:"width" toml:"width"`
	Height  int `yaml:"height" toml:"height"`
	HUDRows int `yaml:"hud_rows" toml:"hud_rows"`
}

// AgentsConfig holds per-agent parameters.
type AgentsConfig struct {
	TrailFraction float64  `yaml:"trail_fraction" toml:"trail_fraction"`
	MinTrail      int      `yaml:"min_trail" toml:"min_trail"`
	TrailCapacity int      `yaml:"trail_capacity" toml:"trail_capacity"` // >0 overrides TrailFraction
	HumanColor    string   `yaml:"human_color" toml:"human_color"`
	AIColors      []string `yaml:"ai_colors" toml:"ai_colors"`
	HumanName     string   `yaml:"human_name" toml:"human_name"`
	AINames       []string `yaml:"ai_names" toml:"ai_names"`
}

// SteeringConfig holds the autopilot's scoring parameters.
type SteeringConfig struct {
	Penalty int `yaml:"penalty" toml:"penalty"`
}

// MatchConfig holds the end-of-match rule.
type MatchConfig struct {
	EndCondition string `yaml:"end_condition" toml:"end_condition"`
}

// TelemetryConfig holds statistics and output parameters.
type TelemetryConfig struct {
	OutputDir     string `yaml:"output_dir" toml:"output_dir"`
	PerfWindow    int    `yaml:"perf_window" toml:"perf_window"`
	LogEvery      int32  `yaml:"log_every" toml:"log_every"`
	MarathonTicks int32  `yaml:"marathon_ticks" toml:"marathon_ticks"`
	Snapshots     bool   `yaml:"snapshots" toml:"snapshots"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TickInterval time.Duration      // 1s / TickRate
	StartDelay   time.Duration      // Game.StartDelay as a duration
	HumanColor   components.Color   // parsed Agents.HumanColor
	AIColors     []components.Color // parsed Agents.AIColors
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML or TOML file, merging with embedded
// defaults. The format follows the file extension. If path is empty, only
// embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".toml":
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		case ".yaml", ".yml", "":
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parsing config file: %w", err)
			}
		default:
			return nil, fmt.Errorf("config file %s: unsupported format %q", path, ext)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects values the game cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Game.TickRate <= 0:
		return fmt.Errorf("config: game.tick_rate must be positive, got %v", c.Game.TickRate)
	case c.Game.StartDelay < 0:
		return fmt.Errorf("config: game.start_delay must not be negative, got %v", c.Game.StartDelay)
	case c.Game.MaxTicks < 0:
		return fmt.Errorf("config: game.max_ticks must not be negative, got %d", c.Game.MaxTicks)
	case c.Arena.Width < 0 || c.Arena.Height < 0:
		return fmt.Errorf("config: arena size must not be negative, got %dx%d", c.Arena.Width, c.Arena.Height)
	case c.Arena.HUDRows < 0:
		return fmt.Errorf("config: arena.hud_rows must not be negative, got %d", c.Arena.HUDRows)
	case c.Agents.TrailFraction < 0:
		return fmt.Errorf("config: agents.trail_fraction must not be negative, got %v", c.Agents.TrailFraction)
	case c.Agents.MinTrail < 0 || c.Agents.TrailCapacity < 0:
		return fmt.Errorf("config: trail sizes must not be negative")
	case c.Steering.Penalty >= 0:
		return fmt.Errorf("config: steering.penalty must be negative, got %d", c.Steering.Penalty)
	case c.Telemetry.PerfWindow < 0 || c.Telemetry.LogEvery < 0 || c.Telemetry.MarathonTicks < 0:
		return fmt.Errorf("config: telemetry counts must not be negative")
	}
	switch c.Match.EndCondition {
	case "", "all_dead", "last_standing":
	default:
		return fmt.Errorf("config: unknown match.end_condition %q", c.Match.EndCondition)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.TickInterval = time.Duration(float64(time.Second) / c.Game.TickRate)
	c.Derived.StartDelay = time.Duration(c.Game.StartDelay * float64(time.Second))

	human, err := components.ParseColor(c.Agents.HumanColor)
	if err != nil {
		return fmt.Errorf("config: agents.human_color: %w", err)
	}
	c.Derived.HumanColor = human

	c.Derived.AIColors = c.Derived.AIColors[:0]
	for i, name := range c.Agents.AIColors {
		col, err := components.ParseColor(name)
		if err != nil {
			return fmt.Errorf("config: agents.ai_colors[%d]: %w", i, err)
		}
		c.Derived.AIColors = append(c.Derived.AIColors, col)
	}
	if len(c.Derived.AIColors) == 0 {
		c.Derived.AIColors = []components.Color{components.ColorYellow}
	}
	return nil
}

// AIColor returns the color for the n-th autonomous agent, cycling through
// the configured palette.
func (c *Config) AIColor(n int) components.Color {
	return c.Derived.AIColors[n%len(c.Derived.AIColors)]
}

// AIName returns the configured name for the n-th autonomous agent, or ""
// to let the arena pick one.
func (c *Config) AIName(n int) string {
	if n < len(c.Agents.AINames) {
		return c.Agents.AINames[n]
	}
	return ""
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
