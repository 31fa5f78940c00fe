// Package exchange hosts market data feeds that produce ticks for the engine.
package exchange

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"joltshark-go/internal/market"
	"joltshark-go/internal/metrics"
)

const (
	// ProviderStub emits a deterministic oscillating price path (useful for tests/offline work).
	ProviderStub = "stub"
	// ProviderBinance streams live trades from Binance public websockets.
	ProviderBinance = "binance"
)

const (
	defaultInterval   = 500 * time.Millisecond
	defaultBinanceURL = "wss://stream.binance.com:9443/stream"

	stubBasePrice = 100.0
	stubAmplitude = 0.02
	stubPeriod    = 120
)

// Feed represents a pluggable market data stream implementation.
type Feed struct {
	provider   string
	symbols    []string
	log        zerolog.Logger
	interval   time.Duration
	binanceURL string
	mu         sync.RWMutex
}

// Option configures Feed construction parameters.
type Option func(*Feed)

// WithInterval overrides the cadence of the stub feed.
func WithInterval(d time.Duration) Option {
	return func(f *Feed) {
		if d > 0 {
			f.interval = d
		}
	}
}

// WithBinanceURL points the Binance feed at a different combined-stream endpoint.
func WithBinanceURL(url string) Option {
	return func(f *Feed) {
		if url != "" {
			f.binanceURL = strings.TrimSuffix(url, "/")
		}
	}
}

// NewFeed constructs a feed backed by the requested provider.
func NewFeed(provider string, symbols []string, log zerolog.Logger, opts ...Option) *Feed {
	if provider == "" {
		provider = ProviderStub
	}
	f := &Feed{
		provider:   strings.ToLower(provider),
		log:        log,
		interval:   defaultInterval,
		binanceURL: defaultBinanceURL,
	}
	f.SetSymbols(symbols)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// SetSymbols replaces the tracked symbol list (deduplicated, sorted for determinism).
func (f *Feed) SetSymbols(symbols []string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	unique := make(map[string]struct{}, len(symbols))
	for _, sym := range symbols {
		sym = strings.TrimSpace(sym)
		if sym == "" {
			continue
		}
		unique[sym] = struct{}{}
	}
	f.symbols = f.symbols[:0]
	for sym := range unique {
		f.symbols = append(f.symbols, sym)
	}
	sort.Strings(f.symbols)
}

func (f *Feed) snapshotSymbols() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]string, len(f.symbols))
	copy(out, f.symbols)
	return out
}

// Run pushes ticks onto the provided channel until the context is canceled.
func (f *Feed) Run(ctx context.Context, out chan<- market.Tick) error {
	switch f.provider {
	case ProviderBinance:
		return f.runBinance(ctx, out)
	default:
		return f.runStub(ctx, out)
	}
}

// StubPrice is the price the stub feed emits on step n.
func StubPrice(n int) float64 {
	return stubBasePrice * (1 + stubAmplitude*math.Sin(2*math.Pi*float64(n)/stubPeriod))
}

func (f *Feed) runStub(ctx context.Context, out chan<- market.Tick) error {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	step := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ts := <-ticker.C:
			px := StubPrice(step)
			step++
			for _, s := range f.snapshotSymbols() {
				tick := market.Tick{Symbol: s, Price: px, Size: 1, Side: 1, Ts: ts}
				select {
				case out <- tick:
					metrics.TicksTotal.WithLabelValues(s).Inc()
				case <-ctx.Done():
					return ctx.Err()
				}
			}
		}
	}
}
