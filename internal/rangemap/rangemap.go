// Package rangemap remaps values between linear and circular intervals.
//
// Every function is total. Degenerate source intervals (hi == lo) and values
// outside a modular source interval are caller contract violations: they yield
// infinite, NaN or out-of-range results rather than errors.
package rangemap

import "joltshark-go/internal/scalar"

// Clamp returns max(lo, min(x, hi)). lo must not exceed hi for a meaningful result.
func Clamp[T scalar.Scalar](x, lo, hi T) T {
	return scalar.Max(lo, scalar.Min(x, hi))
}

// Normalize maps x from [lo, hi] onto [0, 1] without clamping.
func Normalize[T scalar.Scalar](x, lo, hi T) T {
	return (x - lo) / (hi - lo)
}

// NormalizeClamped is Normalize clamped into [0, 1].
func NormalizeClamped[T scalar.Scalar](x, lo, hi T) T {
	return Clamp(Normalize(x, lo, hi), 0, 1)
}

// Map affinely remaps x from [lo, hi] onto [blo, bhi].
func Map[T scalar.Scalar](x, lo, hi, blo, bhi T) T {
	return blo + Normalize(x, lo, hi)*(bhi-blo)
}

// MapClamped is Map clamped into [blo, bhi].
func MapClamped[T scalar.Scalar](x, lo, hi, blo, bhi T) T {
	return Clamp(Map(x, lo, hi, blo, bhi), blo, bhi)
}

// MapModular remaps x from the modular interval [lo, hi) of a circle with the
// given period onto [blo, bhi).
//
// x must lie inside [lo, hi) in modular space. Otherwise the offset exceeds the
// interval length and the result overshoots bhi.
func MapModular[T scalar.Scalar](x, period, lo, hi, blo, bhi T) T {
	length := scalar.RemEuclid(hi-lo, period)
	offset := scalar.RemEuclid(x-lo, period)
	return blo + offset/length*(bhi-blo)
}

// InModularRange reports whether v lies in the half-open interval [start, end)
// on a circle. When start > end the interval wraps through zero.
func InModularRange[T scalar.Scalar](v, start, end T) bool {
	if start <= end {
		return start <= v && v < end
	}
	return v < end || start <= v
}
