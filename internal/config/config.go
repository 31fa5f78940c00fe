// Package config exposes strongly typed application configuration structs loaded from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"joltshark-go/internal/derive"
	"joltshark-go/internal/engine"
	"joltshark-go/internal/exchange"
	"joltshark-go/internal/pulse"
	"joltshark-go/internal/scalar"
	"joltshark-go/internal/state"
	"joltshark-go/internal/strategy"
)

// Environment variables that override file settings.
const (
	EnvLogLevel     = "JOLTSHARK_LOG_LEVEL"
	EnvMetricsAddr  = "JOLTSHARK_METRICS_ADDR"
	EnvFeedProvider = "JOLTSHARK_FEED_PROVIDER"
	EnvJournalPath  = "JOLTSHARK_JOURNAL_PATH"
)

// App captures process-wide runtime settings such as name, environment, metrics, and logging levels.
type App struct {
	Name        string `yaml:"name"`
	Env         string `yaml:"env"`
	MetricsAddr string `yaml:"metrics_addr"`
	LogLevel    string `yaml:"log_level"`
}

// Feed selects the market data source.
type Feed struct {
	Provider   string   `yaml:"provider"`
	Symbols    []string `yaml:"symbols"`
	IntervalMs int      `yaml:"interval_ms"`
	BinanceURL string   `yaml:"binance_url"`
}

// Strategy specifies which policy is active along with its parameters.
type Strategy struct {
	Mode       string                            `yaml:"mode"`
	JoltLimit  float64                           `yaml:"jolt_limit"`
	Order      int                               `yaml:"order"`
	WindowSecs int                               `yaml:"window_secs"`
	Grid       strategy.GridConfig[float64]      `yaml:"grid"`
	TickRange  strategy.TickRangeConfig[float64] `yaml:"tick_range"`
}

// Event is a scheduled window in clock units (hours for a 24 period).
type Event struct {
	Name       string  `yaml:"name"`
	Start      float64 `yaml:"start"`
	End        float64 `yaml:"end"`
	BlendOuter float64 `yaml:"blend_outer"`
	BlendInner float64 `yaml:"blend_inner"`
}

// Schedule groups cyclic events on a clock of the given period.
type Schedule struct {
	Period float64 `yaml:"period"`
	Events []Event `yaml:"events"`
}

// Journal configures the optional JSONL decision journal.
type Journal struct {
	Path string `yaml:"path"`
}

// Config collects every configuration leaf for easy marshaling from YAML.
type Config struct {
	App      App      `yaml:"app"`
	Feed     Feed     `yaml:"feed"`
	Strategy Strategy `yaml:"strategy"`
	Schedule Schedule `yaml:"schedule"`
	Journal  Journal  `yaml:"journal"`
}

// Load reads a YAML file from disk, hydrates a Config struct and fills defaults.
func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var config Config
	if err := yaml.NewDecoder(file).Decode(&config); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	config.applyDefaults()
	return &config, nil
}

// Save persists a Config struct to disk as YAML.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// ApplyEnv loads .env files (best-effort, existing variables win) and applies
// JOLTSHARK_* overrides.
func (c *Config) ApplyEnv(envFiles ...string) {
	_ = godotenv.Load(envFiles...)
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.App.LogLevel = v
	}
	if v := os.Getenv(EnvMetricsAddr); v != "" {
		c.App.MetricsAddr = v
	}
	if v := os.Getenv(EnvFeedProvider); v != "" {
		c.Feed.Provider = v
	}
	if v := os.Getenv(EnvJournalPath); v != "" {
		c.Journal.Path = v
	}
}

func (c *Config) applyDefaults() {
	if c.App.LogLevel == "" {
		c.App.LogLevel = "info"
	}
	if c.Strategy.Mode == "" {
		c.Strategy.Mode = strategy.ModeGrid
	}
	if c.Strategy.Order == 0 {
		c.Strategy.Order = derive.DefaultOrder
	}
	if c.Schedule.Period == 0 {
		c.Schedule.Period = pulse.HoursPerDay
	}
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	mode, _ := strategy.NormalizeMode(c.Strategy.Mode)
	switch mode {
	case strategy.ModeGrid:
		if err := c.Strategy.Grid.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("strategy.grid: %w", err))
		}
	case strategy.ModeTickRange:
		if err := c.Strategy.TickRange.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("strategy.tick_range: %w", err))
		}
	default:
		errs = append(errs, fmt.Errorf("strategy.mode: unknown mode %q", c.Strategy.Mode))
	}
	if p := strings.ToLower(c.Feed.Provider); p != "" && p != exchange.ProviderStub && p != exchange.ProviderBinance {
		errs = append(errs, fmt.Errorf("feed.provider: unknown provider %q", c.Feed.Provider))
	}
	if c.Strategy.JoltLimit < 0 {
		errs = append(errs, errors.New("strategy.jolt_limit must not be negative"))
	}
	if c.Strategy.Order < 1 || c.Strategy.Order > state.MaxOrder {
		errs = append(errs, fmt.Errorf("strategy.order must be between 1 and %d", state.MaxOrder))
	}
	if !(c.Schedule.Period > 0) {
		errs = append(errs, errors.New("schedule.period must be positive"))
	}
	clock := c.Schedule.Clock()
	tau := scalar.Tau[float64]()
	seen := make(map[string]bool, len(c.Schedule.Events))
	for i, ev := range c.Schedule.Events {
		if c.Schedule.Period > 0 {
			// A zero-length window on the circle has no event angle to map onto.
			w := clock.Window(ev.Start, ev.End, ev.BlendOuter, ev.BlendInner)
			length := scalar.RemEuclid(ev.End-ev.Start, c.Schedule.Period)
			switch {
			case length == 0 || scalar.RemEuclid(w.End-w.Start, tau) == 0:
				errs = append(errs, fmt.Errorf("schedule.events[%d]: window must cover part of the period, not none or all of it", i))
			case 2*ev.BlendInner > length:
				errs = append(errs, fmt.Errorf("schedule.events[%d]: blend_inner margins overlap inside the window", i))
			}
		}
		if ev.Name == "" {
			errs = append(errs, fmt.Errorf("schedule.events[%d]: name is required", i))
		} else if seen[ev.Name] {
			errs = append(errs, fmt.Errorf("schedule.events[%d]: duplicate name %q", i, ev.Name))
		}
		seen[ev.Name] = true
		if ev.BlendOuter < 0 || ev.BlendInner < 0 {
			errs = append(errs, fmt.Errorf("schedule.events[%d]: blend margins must not be negative", i))
		}
	}
	return errors.Join(errs...)
}

// Params converts the strategy section for strategy.Build.
func (s Strategy) Params() strategy.Params {
	return strategy.Params{JoltLimit: s.JoltLimit, Grid: s.Grid, TickRange: s.TickRange}
}

// Windows converts scheduled events onto the τ circle, in configured order.
func (s Schedule) Windows() []engine.Event {
	clock := pulse.Clock[float64]{Period: s.Period}
	out := make([]engine.Event, 0, len(s.Events))
	for _, ev := range s.Events {
		out = append(out, engine.Event{
			Name:   ev.Name,
			Window: clock.Window(ev.Start, ev.End, ev.BlendOuter, ev.BlendInner),
		})
	}
	return out
}

// Clock returns the schedule clock.
func (s Schedule) Clock() pulse.Clock[float64] {
	return pulse.Clock[float64]{Period: s.Period}
}
