// Package execution hands actionable policy decisions to the venue side.
package execution

import (
	"github.com/rs/zerolog"

	"joltshark-go/internal/metrics"
	"joltshark-go/internal/strategy"
)

// Executor implements a logger-backed submitter for policy decisions.
// Order placement itself belongs to the host application.
type Executor struct{ log zerolog.Logger }

// NewExecutor wraps a zerolog logger for decision submissions.
func NewExecutor(log zerolog.Logger) *Executor { return &Executor{log: log} }

// Submit logs the decision for symbol and counts it.
func (executor *Executor) Submit(symbol string, d strategy.Decision) error {
	metrics.SubmittedTotal.WithLabelValues(symbol, d.Action).Inc()
	ev := executor.log.Info().Str("sym", symbol).Str("policy", d.Policy).Str("action", d.Action)
	switch d.Action {
	case string(strategy.GridBuy), string(strategy.GridSell):
		ev = ev.Float64("px", d.Price)
	case string(strategy.Rebalance), string(strategy.AddLiquidity):
		ev = ev.Int32("tick_lower", d.TickLower).Int32("tick_upper", d.TickUpper)
	}
	if d.Amount != 0 {
		ev = ev.Float64("amount", d.Amount)
	}
	ev.Msg("submit command")
	return nil
}
