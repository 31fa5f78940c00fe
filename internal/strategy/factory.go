// Package strategy turns derivative-stack readings into position commands.
//
// EvaluateGrid and EvaluateTickRange are the pure decision functions. Policy
// adapts them for the host loop, which works in float64 and needs a flat
// Decision for logging and journaling.
package strategy

import (
	"strings"
	"sync"

	"joltshark-go/internal/state"
)

const (
	ModeGrid      = "grid"
	ModeTickRange = "tick_range"
)

// Policy defines behaviour shared by the policy adapters used by the engine.
type Policy interface {
	Evaluate(v state.StateVector[float64]) Decision
	Name() string
}

// Decision is a flattened command suitable for logs, metrics and the journal.
type Decision struct {
	Policy    string  `json:"policy"`
	Action    string  `json:"action"`
	Price     float64 `json:"price,omitempty"`
	Level     float64 `json:"level,omitempty"`
	TickLower int32   `json:"tick_lower,omitempty"`
	TickUpper int32   `json:"tick_upper,omitempty"`
	Amount    float64 `json:"amount,omitempty"`
}

// Actionable reports whether the decision asks the executor to do anything.
func (d Decision) Actionable() bool {
	return d.Action != string(GridHold) && d.Action != string(GridWait)
}

// Params expresses tunable knobs required by policy constructors.
type Params struct {
	JoltLimit float64
	Grid      GridConfig[float64]
	TickRange TickRangeConfig[float64]
}

// NormalizeMode maps a configured mode or one of its aliases onto ModeGrid or
// ModeTickRange. An empty mode selects the grid.
func NormalizeMode(mode string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "", ModeGrid:
		return ModeGrid, true
	case ModeTickRange, "tickrange", "clmm":
		return ModeTickRange, true
	default:
		return "", false
	}
}

// Build returns a policy implementation matching the configured mode.
// Unknown modes fall back to the grid.
func Build(mode string, params Params) Policy {
	if m, _ := NormalizeMode(mode); m == ModeTickRange {
		return NewTickRangePolicy(params.TickRange, params.JoltLimit)
	}
	return NewGridPolicy(params.Grid, params.JoltLimit)
}

// GridPolicy evaluates a fixed grid configuration.
type GridPolicy struct {
	cfg       GridConfig[float64]
	joltLimit float64
}

// NewGridPolicy builds a grid policy with the given volatility cutoff.
func NewGridPolicy(cfg GridConfig[float64], joltLimit float64) *GridPolicy {
	return &GridPolicy{cfg: cfg, joltLimit: joltLimit}
}

// Name returns the identifier for logging.
func (p *GridPolicy) Name() string { return ModeGrid }

// Evaluate runs EvaluateGrid against the configured grid.
func (p *GridPolicy) Evaluate(v state.StateVector[float64]) Decision {
	cmd := EvaluateGrid(v, p.cfg, p.joltLimit)
	return Decision{Policy: p.Name(), Action: string(cmd.Action), Price: cmd.Price, Level: cmd.Level}
}

// TickRangePolicy tracks a live concentrated-liquidity range. The current tick
// follows the position reading, and a Rebalance moves the tracked range so the
// next reading is evaluated against the new bounds.
type TickRangePolicy struct {
	mu        sync.Mutex
	cfg       TickRangeConfig[float64]
	joltLimit float64
}

// NewTickRangePolicy builds a tick-range policy starting from cfg.
func NewTickRangePolicy(cfg TickRangeConfig[float64], joltLimit float64) *TickRangePolicy {
	return &TickRangePolicy{cfg: cfg, joltLimit: joltLimit}
}

// Name returns the identifier for logging.
func (p *TickRangePolicy) Name() string { return ModeTickRange }

// Range returns the currently tracked configuration.
func (p *TickRangePolicy) Range() TickRangeConfig[float64] {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

// Evaluate refreshes the current tick from the position reading, when present,
// and runs EvaluateTickRange.
func (p *TickRangePolicy) Evaluate(v state.StateVector[float64]) Decision {
	p.mu.Lock()
	defer p.mu.Unlock()

	if price, ok := v.Position(); ok {
		p.cfg.CurrentTick = p.cfg.TickAtPrice(price)
	}
	cmd := EvaluateTickRange(v, p.cfg, p.joltLimit)
	if cmd.Action == Rebalance {
		// Rounding a narrow range can collapse it; keep at least one spacing.
		if cmd.TickUpper <= cmd.TickLower {
			spacing := max(p.cfg.TickSpacing, 1)
			cmd.TickUpper = clampTick(int64(cmd.TickLower)+int64(spacing), int64(spacing))
			if cmd.TickUpper <= cmd.TickLower {
				cmd.TickLower = cmd.TickUpper - spacing
			}
		}
		p.cfg.TickLower, p.cfg.TickUpper = cmd.TickLower, cmd.TickUpper
	}
	return Decision{
		Policy:    p.Name(),
		Action:    string(cmd.Action),
		TickLower: cmd.TickLower,
		TickUpper: cmd.TickUpper,
		Amount:    cmd.Amount,
	}
}
