// Package engine runs the evaluation loop: each tick updates the derivative
// tracker, the active policy turns the resulting stack into a decision, and
// every scheduled event is sampled at the tick's clock phase.
package engine

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"joltshark-go/internal/derive"
	"joltshark-go/internal/journal"
	"joltshark-go/internal/market"
	"joltshark-go/internal/metrics"
	"joltshark-go/internal/pulse"
	"joltshark-go/internal/strategy"
)

// Event is a named window sampled on every tick.
type Event struct {
	Name   string
	Window pulse.Window[float64]
}

// Submitter receives actionable decisions.
type Submitter interface {
	Submit(symbol string, d strategy.Decision) error
}

// Engine wires a tracker, a policy and a schedule together.
type Engine struct {
	policy    strategy.Policy
	tracker   *derive.Tracker
	log       zerolog.Logger
	events    []Event
	phase     func(time.Time) float64
	submitter Submitter
	recorders []journal.Recorder
}

// Option configures Engine construction parameters.
type Option func(*Engine)

// WithEvents sets the schedule sampled on each tick.
func WithEvents(events ...Event) Option {
	return func(e *Engine) { e.events = append(e.events[:0], events...) }
}

// WithClock samples events at the tick time reduced on clock, in hours.
func WithClock(clock pulse.Clock[float64]) Option {
	return func(e *Engine) {
		if clock.Period > 0 {
			e.phase = func(ts time.Time) float64 { return clock.Phase(pulse.EpochHours(ts)) }
		}
	}
}

// WithSubmitter routes actionable decisions to s.
func WithSubmitter(s Submitter) Option {
	return func(e *Engine) { e.submitter = s }
}

// WithRecorder adds a journal recorder. May be repeated.
func WithRecorder(r journal.Recorder) Option {
	return func(e *Engine) {
		if r != nil {
			e.recorders = append(e.recorders, r)
		}
	}
}

// New builds an engine. Events default to none and the clock to 24 hours.
func New(policy strategy.Policy, tracker *derive.Tracker, log zerolog.Logger, opts ...Option) *Engine {
	e := &Engine{policy: policy, tracker: tracker, log: log}
	WithClock(pulse.Clock[float64]{Period: pulse.HoursPerDay})(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Handle evaluates a single tick.
func (e *Engine) Handle(tk market.Tick) journal.Entry {
	v := e.tracker.Observe(tk)
	d := e.policy.Evaluate(v)
	metrics.CommandsTotal.WithLabelValues(d.Policy, d.Action).Inc()
	if j, ok := v.Jolt(); ok {
		metrics.JoltAbs.WithLabelValues(tk.Symbol).Set(math.Abs(j))
	}

	phase := e.phase(tk.Ts)
	pulses := make([]journal.Pulse, 0, len(e.events))
	for _, ev := range e.events {
		x, y := ev.Window.Pulse(phase)
		metrics.EventPulse.WithLabelValues(ev.Name, "x").Set(x)
		metrics.EventPulse.WithLabelValues(ev.Name, "y").Set(y)
		pulses = append(pulses, journal.Pulse{Event: ev.Name, Region: ev.Window.Region(phase).String(), X: x, Y: y})
	}

	entry := journal.Entry{
		Symbol:      tk.Symbol,
		Ts:          tk.Ts,
		Derivatives: v.Values(),
		Decision:    d,
		Pulses:      pulses,
	}

	logEvent := e.log.Debug()
	if d.Actionable() {
		logEvent = e.log.Info()
	}
	logEvent.Str("sym", tk.Symbol).Str("policy", d.Policy).Str("action", d.Action).
		Floats64("derivatives", entry.Derivatives).Msg("policy decision")

	if d.Actionable() && e.submitter != nil {
		if err := e.submitter.Submit(tk.Symbol, d); err != nil {
			e.log.Error().Err(err).Str("sym", tk.Symbol).Msg("submit failed")
		}
	}
	for _, r := range e.recorders {
		r.Record(entry)
	}
	return entry
}

// Run handles ticks until the context is canceled or the channel closes.
func (e *Engine) Run(ctx context.Context, ticks <-chan market.Tick) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case tk, ok := <-ticks:
			if !ok {
				return nil
			}
			e.Handle(tk)
		}
	}
}
