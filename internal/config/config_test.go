package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"joltshark-go/internal/pulse"
	"joltshark-go/internal/strategy"
)

func TestLoad(t *testing.T) {
	path := filepath.Join("testdata", "config.yaml")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.App.Name != "joltshark-test" {
		t.Fatalf("unexpected App.Name: %s", cfg.App.Name)
	}
	if cfg.App.LogLevel != "debug" {
		t.Fatalf("unexpected App.LogLevel: %s", cfg.App.LogLevel)
	}
	if cfg.Feed.Provider != "binance" || len(cfg.Feed.Symbols) != 1 || cfg.Feed.Symbols[0] != "SOLUSDT" {
		t.Fatalf("unexpected feed: %+v", cfg.Feed)
	}
	if cfg.Feed.IntervalMs != 250 {
		t.Fatalf("unexpected feed interval: %d", cfg.Feed.IntervalMs)
	}
	if cfg.Strategy.Mode != "tick_range" || cfg.Strategy.JoltLimit != 0.75 {
		t.Fatalf("unexpected strategy: %+v", cfg.Strategy)
	}
	if cfg.Strategy.Order != 4 {
		t.Fatalf("expected default order 4, got %d", cfg.Strategy.Order)
	}
	if cfg.Strategy.WindowSecs != 30 {
		t.Fatalf("unexpected window: %d", cfg.Strategy.WindowSecs)
	}
	if cfg.Strategy.Grid.Spacing != 2.5 || cfg.Strategy.Grid.UpperPrice != 120 {
		t.Fatalf("unexpected grid: %+v", cfg.Strategy.Grid)
	}
	tr := cfg.Strategy.TickRange
	if tr.TickLower != -1000 || tr.TickUpper != 1000 || tr.TickSpacing != 10 || tr.BasePrice != 140 {
		t.Fatalf("unexpected tick range: %+v", tr)
	}
	if cfg.Schedule.Period != pulse.HoursPerDay {
		t.Fatalf("expected default period 24, got %.2f", cfg.Schedule.Period)
	}
	if len(cfg.Schedule.Events) != 2 || cfg.Schedule.Events[0].Name != "us_open" || cfg.Schedule.Events[0].BlendInner != 0.25 {
		t.Fatalf("unexpected events: %+v", cfg.Schedule.Events)
	}
	if cfg.Journal.Path != "var/decisions.jsonl" {
		t.Fatalf("unexpected journal path: %s", cfg.Journal.Path)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "config.yaml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	cfg.Strategy.JoltLimit = 2
	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reload returned error: %v", err)
	}
	if reloaded.Strategy.JoltLimit != 2 || reloaded.Strategy.TickRange != cfg.Strategy.TickRange {
		t.Fatalf("round trip lost settings: %+v", reloaded.Strategy)
	}
	if err := Save(path, nil); err == nil {
		t.Fatalf("expected error saving nil config")
	}
}

func TestValidateReportsEveryProblem(t *testing.T) {
	cfg := &Config{
		Feed: Feed{Provider: "dexscreener"},
		Strategy: Strategy{
			Mode:      "grid",
			JoltLimit: -1,
			Order:     9,
			Grid:      strategy.GridConfig[float64]{Spacing: 0},
		},
		Schedule: Schedule{
			Period: 24,
			Events: []Event{{Name: "a", Start: 1, End: 2}, {Name: "a", Start: 1, End: 2, BlendOuter: -1}, {Start: 1, End: 2}},
		},
	}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"strategy.grid", "jolt_limit", "strategy.order", "feed.provider", "duplicate name", "blend margins", "name is required"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected %q in %q", want, msg)
		}
	}

	cfg = &Config{Strategy: Strategy{Mode: "martingale", Order: 4}, Schedule: Schedule{Period: 24}}
	if err := cfg.Validate(); err == nil || !strings.Contains(err.Error(), "unknown mode") {
		t.Fatalf("expected unknown mode error, got %v", err)
	}
}

func TestApplyEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	if err := os.WriteFile(envFile, []byte("JOLTSHARK_JOURNAL_PATH=/tmp/j.jsonl\nJOLTSHARK_LOG_LEVEL=error\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv(EnvJournalPath) })
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvFeedProvider, "stub")

	cfg := &Config{App: App{LogLevel: "info"}, Feed: Feed{Provider: "binance"}}
	cfg.ApplyEnv(envFile)

	if cfg.App.LogLevel != "warn" {
		t.Fatalf("expected process env to win over .env, got %s", cfg.App.LogLevel)
	}
	if cfg.Feed.Provider != "stub" {
		t.Fatalf("unexpected provider %s", cfg.Feed.Provider)
	}
	if cfg.Journal.Path != "/tmp/j.jsonl" {
		t.Fatalf("expected journal path from .env, got %s", cfg.Journal.Path)
	}
}

func TestScheduleWindows(t *testing.T) {
	s := Schedule{Period: 24, Events: []Event{{Name: "midday", Start: 10, End: 14}, {Name: "night", Start: 23, End: 1}}}
	events := s.Windows()
	if len(events) != 2 || events[0].Name != "midday" || events[1].Name != "night" {
		t.Fatalf("unexpected events %+v", events)
	}
	clock := s.Clock()
	x, _ := events[0].Window.Pulse(clock.Phase(12))
	if x > -0.999 {
		t.Fatalf("expected midday midpoint at (-1, 0), got x=%v", x)
	}
}

func TestStrategyParams(t *testing.T) {
	s := Strategy{Mode: "clmm", JoltLimit: 3, TickRange: strategy.TickRangeConfig[float64]{TickLower: 0, TickUpper: 10, TickSpacing: 1, BasePrice: 1}}
	p := strategy.Build(s.Mode, s.Params())
	if p.Name() != strategy.ModeTickRange {
		t.Fatalf("expected tick range policy, got %s", p.Name())
	}
}

func TestValidateRejectsDegenerateWindows(t *testing.T) {
	base := func(events ...Event) *Config {
		return &Config{
			Strategy: Strategy{Mode: "grid", Order: 4, Grid: strategy.GridConfig[float64]{Spacing: 1}},
			Schedule: Schedule{Period: 24, Events: events},
		}
	}
	cases := map[string]Event{
		"whole day":     {Name: "allday", Start: 0, End: 24, BlendOuter: 1, BlendInner: 1},
		"wrapped day":   {Name: "allday", Start: 6, End: 30},
		"empty window":  {Name: "empty", Start: 9, End: 9},
		"inner overlap": {Name: "short", Start: 10, End: 12, BlendInner: 1.5},
	}
	for name, ev := range cases {
		if err := base(ev).Validate(); err == nil || !strings.Contains(err.Error(), "schedule.events[0]") {
			t.Fatalf("%s: expected window error, got %v", name, err)
		}
	}

	ok := []Event{
		{Name: "night", Start: 23.5, End: 3.5, BlendOuter: 1, BlendInner: 1},
		{Name: "touching", Start: 10, End: 12, BlendInner: 1},
	}
	if err := base(ok...).Validate(); err != nil {
		t.Fatalf("unexpected error for valid windows: %v", err)
	}
}
