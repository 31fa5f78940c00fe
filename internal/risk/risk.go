// Package risk holds guard-rails shared by the position policies.
package risk

import (
	"joltshark-go/internal/scalar"
	"joltshark-go/internal/state"
)

// JoltBreached reports whether v carries a jolt term whose magnitude exceeds limit.
// A vector without a jolt term never breaches.
func JoltBreached[T scalar.Scalar](v state.StateVector[T], limit T) bool {
	j, ok := v.Jolt()
	return ok && limit < scalar.Abs(j)
}
