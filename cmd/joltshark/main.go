package main

import (
	"context"
	"errors"
	"flag"
	"os"
	ossignal "os/signal"
	"syscall"
	"time"

	"joltshark-go/internal/bridge"
	"joltshark-go/internal/config"
	"joltshark-go/internal/derive"
	"joltshark-go/internal/engine"
	"joltshark-go/internal/exchange"
	"joltshark-go/internal/execution"
	"joltshark-go/internal/journal"
	"joltshark-go/internal/market"
	"joltshark-go/internal/metrics"
	"joltshark-go/internal/strategy"
	"joltshark-go/internal/util"
)

func main() {
	cfgPath := flag.String("config", "internal/config/config.yaml", "path to config file")
	envFile := flag.String("env", ".env", "optional dotenv file")
	flag.Parse()

	log := util.NewLogger("info")

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	cfg.ApplyEnv(*envFile)
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	log = util.NewLogger(cfg.App.LogLevel).With().Str("app", cfg.App.Name).Str("env", cfg.App.Env).Logger()

	status := bridge.Nop()
	log.Info().Str("status", string(status)).Msg("bridge check")

	if cfg.App.MetricsAddr != "" {
		metrics.Serve(cfg.App.MetricsAddr, func() string { return string(bridge.Nop()) })
		log.Info().Str("addr", cfg.App.MetricsAddr).Msg("metrics up")
	}

	ctx, cancel := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var feedOpts []exchange.Option
	if cfg.Feed.IntervalMs > 0 {
		feedOpts = append(feedOpts, exchange.WithInterval(time.Duration(cfg.Feed.IntervalMs)*time.Millisecond))
	}
	if cfg.Feed.BinanceURL != "" {
		feedOpts = append(feedOpts, exchange.WithBinanceURL(cfg.Feed.BinanceURL))
	}
	feed := exchange.NewFeed(cfg.Feed.Provider, cfg.Feed.Symbols, util.Component(log, "feed"), feedOpts...)
	ticks := make(chan market.Tick, 1024)

	go func() {
		if err := feed.Run(ctx, ticks); err != nil && !errors.Is(err, context.Canceled) {
			log.Error().Err(err).Msg("feed stopped")
			cancel()
		}
	}()

	tracker := derive.NewTracker(cfg.Strategy.Order, time.Duration(cfg.Strategy.WindowSecs)*time.Second)
	policy := strategy.Build(cfg.Strategy.Mode, cfg.Strategy.Params())

	opts := []engine.Option{
		engine.WithClock(cfg.Schedule.Clock()),
		engine.WithEvents(cfg.Schedule.Windows()...),
		engine.WithSubmitter(execution.NewExecutor(util.Component(log, "execution"))),
	}
	if cfg.Journal.Path != "" {
		rec, err := journal.NewJSONLRecorder(cfg.Journal.Path)
		if err != nil {
			log.Fatal().Err(err).Msg("open journal")
		}
		defer func() {
			if err := rec.Err(); err != nil {
				log.Error().Err(err).Msg("journal write failed")
			}
			if n := rec.Skipped(); n > 0 {
				log.Warn().Int("skipped", n).Msg("journal entries could not be encoded")
			}
			_ = rec.Close()
		}()
		opts = append(opts, engine.WithRecorder(rec))
	}
	eng := engine.New(policy, tracker, util.Component(log, "engine"), opts...)

	log.Info().Str("policy", policy.Name()).Int("order", tracker.Order()).
		Int("events", len(cfg.Schedule.Events)).Msg("engine started")
	if err := eng.Run(ctx, ticks); err != nil && !errors.Is(err, context.Canceled) {
		log.Error().Err(err).Msg("engine stopped")
	}
	log.Info().Msg("shutting down")
}
