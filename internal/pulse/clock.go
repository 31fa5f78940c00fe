package pulse

import (
	"time"

	"joltshark-go/internal/rangemap"
	"joltshark-go/internal/scalar"
)

// HoursPerDay is the period of the wall clock used by DayPhase.
const HoursPerDay = 24

// Clock converts positions on a circular scale of the given Period (24 for
// hours of the day) to and from the τ circle used by Window.
type Clock[T scalar.Scalar] struct {
	Period T
}

// Phase reduces v into [0, Period) and maps it onto [0, τ).
func (c Clock[T]) Phase(v T) T {
	return c.Span(scalar.RemEuclid(v, c.Period))
}

// Span scales a clock length onto the τ circle without reducing it.
func (c Clock[T]) Span(v T) T {
	return rangemap.Map(v, 0, c.Period, 0, scalar.Tau[T]())
}

// Window builds a τ-circle window from clock-unit boundaries and margins.
func (c Clock[T]) Window(start, end, blendOuter, blendInner T) Window[T] {
	return Window[T]{
		Start:      c.Span(start),
		End:        c.Span(end),
		BlendOuter: c.Span(blendOuter),
		BlendInner: c.Span(blendInner),
	}
}

// DayPhase returns the UTC time of day of t in fractional hours, in [0, 24).
func DayPhase(t time.Time) float64 {
	t = t.UTC()
	midnight := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return t.Sub(midnight).Hours()
}

// EpochHours returns t as fractional hours since the Unix epoch. Reduced by a
// Clock with Period 24 it equals DayPhase.
func EpochHours(t time.Time) float64 {
	return float64(t.UnixNano()) / float64(time.Hour)
}
