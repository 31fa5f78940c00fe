package strategy

import (
	"errors"

	"joltshark-go/internal/risk"
	"joltshark-go/internal/scalar"
	"joltshark-go/internal/state"
)

// GridConfig describes an evenly spaced price grid anchored at BasePrice.
// LowerPrice < UpperPrice is expected but not enforced.
type GridConfig[T scalar.Scalar] struct {
	BasePrice  T `yaml:"base_price"`
	UpperPrice T `yaml:"upper_price"`
	LowerPrice T `yaml:"lower_price"`
	Spacing    T `yaml:"spacing"`
}

// Validate rejects a grid that cannot be indexed.
func (c GridConfig[T]) Validate() error {
	if !(c.Spacing > 0) {
		return errors.New("grid spacing must be positive")
	}
	return nil
}

// Index returns the fractional grid level of price relative to BasePrice.
func (c GridConfig[T]) Index(price T) T {
	return (price - c.BasePrice) / c.Spacing
}

// GridAction tags a GridCommand.
type GridAction string

const (
	GridBuy  GridAction = "BUY"
	GridSell GridAction = "SELL"
	GridHold GridAction = "HOLD"
	GridWait GridAction = "WAIT"
	GridExit GridAction = "EXIT"
)

// GridCommand is the grid policy output. Price is set for GridBuy and GridSell;
// Level carries the informational grid index on GridHold.
type GridCommand[T scalar.Scalar] struct {
	Action GridAction
	Price  T
	Level  T
}

// NewGridBuy returns a buy command at price.
func NewGridBuy[T scalar.Scalar](price T) GridCommand[T] {
	return GridCommand[T]{Action: GridBuy, Price: price}
}

// NewGridSell returns a sell command at price.
func NewGridSell[T scalar.Scalar](price T) GridCommand[T] {
	return GridCommand[T]{Action: GridSell, Price: price}
}

// EvaluateGrid applies the jolt cutoff, then holds when a position reading is
// available and waits otherwise.
func EvaluateGrid[T scalar.Scalar](v state.StateVector[T], cfg GridConfig[T], joltLimit T) GridCommand[T] {
	if risk.JoltBreached(v, joltLimit) {
		return GridCommand[T]{Action: GridExit}
	}
	price, ok := v.Position()
	if !ok {
		return GridCommand[T]{Action: GridWait}
	}
	return GridCommand[T]{Action: GridHold, Level: cfg.Index(price)}
}
