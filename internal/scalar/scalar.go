// Package scalar defines the numeric capability set shared by the range mapper,
// the event-pulse engine and the position policies.
//
// Any IEEE floating-point type satisfies Scalar. Go generics already supply the
// ordered field operations, the identities T(0)/T(1) and comparison; the helpers
// below add the sign, Euclidean remainder and trigonometric primitives. Adding a
// fixed-point type means widening the constraint and giving every helper a branch
// for it.
package scalar

import "math"

// Scalar is the constraint every numeric routine in this module is generic over.
type Scalar interface {
	~float32 | ~float64
}

// Pi returns π in T.
func Pi[T Scalar]() T { return T(math.Pi) }

// FracPi2 returns π/2 in T.
func FracPi2[T Scalar]() T { return T(math.Pi / 2) }

// Tau returns 2π in T.
func Tau[T Scalar]() T { return T(2 * math.Pi) }

// Abs returns |x|.
func Abs[T Scalar](x T) T {
	return T(math.Abs(float64(x)))
}

// Signum returns 1, -1 or 0 following the sign of x. NaN is returned unchanged.
func Signum[T Scalar](x T) T {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return x
	}
}

// Min returns the smaller of a and b.
func Min[T Scalar](a, b T) T {
	return T(math.Min(float64(a), float64(b)))
}

// Max returns the larger of a and b.
func Max[T Scalar](a, b T) T {
	return T(math.Max(float64(a), float64(b)))
}

// RemEuclid returns the least non-negative remainder of x modulo d.
// For a positive d the result lies in [0, d); a tiny negative x whose
// remainder rounds up to |d| folds to 0.
func RemEuclid[T Scalar](x, d T) T {
	r := math.Mod(float64(x), float64(d))
	if r < 0 {
		r += math.Abs(float64(d))
	}
	out := T(r)
	if out == Abs(d) {
		return 0
	}
	return out
}

// Sin returns sin(x).
func Sin[T Scalar](x T) T { return T(math.Sin(float64(x))) }

// Cos returns cos(x).
func Cos[T Scalar](x T) T { return T(math.Cos(float64(x))) }

// SinCos returns (sin(x), cos(x)).
func SinCos[T Scalar](x T) (T, T) {
	s, c := math.Sincos(float64(x))
	return T(s), T(c)
}

// Ln returns the natural logarithm of x.
func Ln[T Scalar](x T) T { return T(math.Log(float64(x))) }

// Pow returns x**y.
func Pow[T Scalar](x, y T) T { return T(math.Pow(float64(x), float64(y))) }

// IsFinite reports whether x is neither infinite nor NaN.
func IsFinite[T Scalar](x T) bool {
	f := float64(x)
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
