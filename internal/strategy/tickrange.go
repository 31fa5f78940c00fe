package strategy

import (
	"errors"
	"math"

	"joltshark-go/internal/risk"
	"joltshark-go/internal/scalar"
	"joltshark-go/internal/state"
)

// TickBase is the price ratio between adjacent ticks.
const TickBase = 1.0001

// TickRangeConfig is a concentrated-liquidity position over [TickLower, TickUpper)
// on the geometric grid price = BasePrice * 1.0001^tick.
type TickRangeConfig[T scalar.Scalar] struct {
	TickLower   int32 `yaml:"tick_lower"`
	TickUpper   int32 `yaml:"tick_upper"`
	TickSpacing int32 `yaml:"tick_spacing"`
	CurrentTick int32 `yaml:"current_tick"`
	BasePrice   T     `yaml:"base_price"`
}

// Validate checks range ordering and spacing.
func (c TickRangeConfig[T]) Validate() error {
	var errs []error
	if c.TickLower >= c.TickUpper {
		errs = append(errs, errors.New("tick_lower must be below tick_upper"))
	}
	if c.TickSpacing <= 0 {
		errs = append(errs, errors.New("tick_spacing must be positive"))
	} else if int64(c.TickUpper)-int64(c.TickLower) < int64(c.TickSpacing) {
		errs = append(errs, errors.New("tick range must be at least one tick_spacing wide"))
	}
	if !(c.BasePrice > 0) {
		errs = append(errs, errors.New("base_price must be positive"))
	}
	return errors.Join(errs...)
}

// IsInRange reports whether CurrentTick lies in [TickLower, TickUpper).
func (c TickRangeConfig[T]) IsInRange() bool {
	return c.CurrentTick >= c.TickLower && c.CurrentTick < c.TickUpper
}

// RoundTick snaps tick to the nearest multiple of TickSpacing, halves away from zero.
// Results past the int32 limits clamp to the outermost representable multiple.
func (c TickRangeConfig[T]) RoundTick(tick int32) int32 {
	return c.roundTick(int64(tick))
}

func (c TickRangeConfig[T]) roundTick(tick int64) int32 {
	spacing := int64(c.TickSpacing)
	if spacing <= 0 {
		return clampTick(tick, 1)
	}
	return clampTick(int64(math.Round(float64(tick)/float64(spacing)))*spacing, spacing)
}

// clampTick bounds tick to the int32 multiples of spacing.
func clampTick(tick, spacing int64) int32 {
	hi := math.MaxInt32 / spacing * spacing
	lo := math.MinInt32 / spacing * spacing
	switch {
	case tick > hi:
		return int32(hi)
	case tick < lo:
		return int32(lo)
	}
	return int32(tick)
}

// TickAtPrice returns the nearest tick for price. Prices that produce no
// representable tick (zero, negative, infinite) map to tick 0.
func (c TickRangeConfig[T]) TickAtPrice(price T) int32 {
	tick := math.Round(math.Log(float64(price)/float64(c.BasePrice)) / math.Log(TickBase))
	if !scalar.IsFinite(tick) || tick < math.MinInt32 || tick > math.MaxInt32 {
		return 0
	}
	return int32(tick)
}

// PriceAtTick returns BasePrice * 1.0001^tick.
func (c TickRangeConfig[T]) PriceAtTick(tick int32) T {
	return c.BasePrice * T(math.Pow(TickBase, float64(tick)))
}

// RangePosition returns where CurrentTick sits inside the range: 0 below it,
// 1 at or above TickUpper, linear in between.
func (c TickRangeConfig[T]) RangePosition() T {
	switch {
	case c.CurrentTick < c.TickLower:
		return 0
	case c.CurrentTick >= c.TickUpper:
		return 1
	}
	return T(c.CurrentTick-c.TickLower) / T(c.TickUpper-c.TickLower)
}

// TickRangeAction tags a TickRangeCommand.
type TickRangeAction string

const (
	AddLiquidity    TickRangeAction = "ADD_LIQUIDITY"
	RemoveLiquidity TickRangeAction = "REMOVE_LIQUIDITY"
	Rebalance       TickRangeAction = "REBALANCE"
	CollectFees     TickRangeAction = "COLLECT_FEES"
	RangeHold       TickRangeAction = "HOLD"
	RangeWait       TickRangeAction = "WAIT"
	RangeExit       TickRangeAction = "EXIT"
)

// TickRangeCommand is the tick-range policy output.
//
//	AddLiquidity     TickLower, TickUpper, Amount
//	RemoveLiquidity  Amount
//	Rebalance        TickLower, TickUpper (the new range)
//	others           no payload
type TickRangeCommand[T scalar.Scalar] struct {
	Action    TickRangeAction
	TickLower int32
	TickUpper int32
	Amount    T
}

// NewAddLiquidity returns an add-liquidity command over [lower, upper).
func NewAddLiquidity[T scalar.Scalar](lower, upper int32, amount T) TickRangeCommand[T] {
	return TickRangeCommand[T]{Action: AddLiquidity, TickLower: lower, TickUpper: upper, Amount: amount}
}

// NewRemoveLiquidity returns a remove-liquidity command.
func NewRemoveLiquidity[T scalar.Scalar](amount T) TickRangeCommand[T] {
	return TickRangeCommand[T]{Action: RemoveLiquidity, Amount: amount}
}

// EvaluateTickRange applies the jolt cutoff, then recentres an out-of-range
// position on CurrentTick with the same width, or holds.
func EvaluateTickRange[T scalar.Scalar](v state.StateVector[T], cfg TickRangeConfig[T], joltLimit T) TickRangeCommand[T] {
	if risk.JoltBreached(v, joltLimit) {
		return TickRangeCommand[T]{Action: RangeExit}
	}
	if cfg.IsInRange() {
		return TickRangeCommand[T]{Action: RangeHold}
	}
	current := int64(cfg.CurrentTick)
	half := (int64(cfg.TickUpper) - int64(cfg.TickLower)) / 2
	return TickRangeCommand[T]{
		Action:    Rebalance,
		TickLower: cfg.roundTick(current - half),
		TickUpper: cfg.roundTick(current + half),
	}
}
