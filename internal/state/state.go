// Package state holds the derivative stack consumed by the position policies:
// a quantity followed by its successive time-derivatives.
package state

import (
	"errors"
	"fmt"

	"joltshark-go/internal/scalar"
)

// MaxOrder bounds how many derivative orders a StateVector can carry.
const MaxOrder = 8

var (
	// ErrTooManyOrders reports a construction with more than MaxOrder values.
	ErrTooManyOrders = errors.New("state: too many derivative orders")
	// ErrLengthMismatch reports arithmetic between vectors of different length.
	ErrLengthMismatch = errors.New("state: vector length mismatch")
)

// Derivative order indices with named accessors.
const (
	OrderPosition = iota
	OrderVelocity
	OrderAcceleration
	OrderJolt
)

// StateVector is a fixed-size, value-typed stack of position and derivatives.
// The backing array lives inline so copies never touch the heap.
type StateVector[T scalar.Scalar] struct {
	values [MaxOrder]T
	n      int
}

// New builds a vector from values ordered position, velocity, acceleration, jolt, ...
func New[T scalar.Scalar](values ...T) (StateVector[T], error) {
	var v StateVector[T]
	if len(values) > MaxOrder {
		return v, fmt.Errorf("%w: got %d, max %d", ErrTooManyOrders, len(values), MaxOrder)
	}
	v.n = copy(v.values[:], values)
	return v, nil
}

// MustNew is New that panics on error.
func MustNew[T scalar.Scalar](values ...T) StateVector[T] {
	v, err := New(values...)
	if err != nil {
		panic(err)
	}
	return v
}

// Len returns the number of derivative orders present.
func (v StateVector[T]) Len() int { return v.n }

// Derivative returns order n, or false when the vector does not carry it.
func (v StateVector[T]) Derivative(n int) (T, bool) {
	if n < 0 || n >= v.n {
		var zero T
		return zero, false
	}
	return v.values[n], true
}

func (v StateVector[T]) Position() (T, bool)     { return v.Derivative(OrderPosition) }
func (v StateVector[T]) Velocity() (T, bool)     { return v.Derivative(OrderVelocity) }
func (v StateVector[T]) Acceleration() (T, bool) { return v.Derivative(OrderAcceleration) }
func (v StateVector[T]) Jolt() (T, bool)         { return v.Derivative(OrderJolt) }

// Values copies the populated orders into a new slice.
func (v StateVector[T]) Values() []T {
	out := make([]T, v.n)
	copy(out, v.values[:v.n])
	return out
}

// Add returns the component-wise sum of v and o.
func (v StateVector[T]) Add(o StateVector[T]) (StateVector[T], error) {
	if v.n != o.n {
		return StateVector[T]{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, v.n, o.n)
	}
	out := StateVector[T]{n: v.n}
	for i := 0; i < v.n; i++ {
		out.values[i] = v.values[i] + o.values[i]
	}
	return out, nil
}

// Sub returns the component-wise difference v - o.
func (v StateVector[T]) Sub(o StateVector[T]) (StateVector[T], error) {
	if v.n != o.n {
		return StateVector[T]{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, v.n, o.n)
	}
	out := StateVector[T]{n: v.n}
	for i := 0; i < v.n; i++ {
		out.values[i] = v.values[i] - o.values[i]
	}
	return out, nil
}
