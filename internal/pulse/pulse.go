// Package pulse turns a phase on a circle into a smooth "event activity" signal.
//
// A Window marks an event interval [Start, End) on a circle of circumference τ
// together with two blend margins. Outside the window, widened by BlendOuter,
// the signal sits at the neutral point (1, 0). Inside the event core it sweeps
// once around the unit circle as phase crosses the window. Across the margins
// it rotates by a quarter turn between the neutral point and the point the
// core would produce at its edge, so the output never jumps.
//
// Boundary points, all reduced modulo τ:
//
//	ta = Start - BlendOuter   blend-in begins
//	tb = Start + BlendInner   event core begins
//	tc = End - BlendInner     blend-out begins
//	td = End + BlendOuter     blend-out ends
//
// Regions are tested in the order blend-in [ta, tb), event [tb, tc),
// blend-out [tc, td); the first match wins. Everything else is neutral.
package pulse

import (
	"joltshark-go/internal/rangemap"
	"joltshark-go/internal/scalar"
)

// Region classifies a phase relative to a Window.
type Region int

const (
	Neutral Region = iota
	BlendIn
	Event
	BlendOut
)

func (r Region) String() string {
	switch r {
	case BlendIn:
		return "blend_in"
	case Event:
		return "event"
	case BlendOut:
		return "blend_out"
	default:
		return "neutral"
	}
}

// Window is an event interval on the τ circle with inner and outer blend margins.
// Start may exceed End, in which case the event wraps through zero.
type Window[T scalar.Scalar] struct {
	Start      T
	End        T
	BlendOuter T
	BlendInner T
}

// Bounds returns the four blend boundary points reduced into [0, τ).
func (w Window[T]) Bounds() (ta, tb, tc, td T) {
	tau := scalar.Tau[T]()
	ta = scalar.RemEuclid(w.Start-w.BlendOuter, tau)
	tb = scalar.RemEuclid(w.Start+w.BlendInner, tau)
	tc = scalar.RemEuclid(w.End-w.BlendInner, tau)
	td = scalar.RemEuclid(w.End+w.BlendOuter, tau)
	return ta, tb, tc, td
}

// Region reports which part of the window phase falls in. phase must be in [0, τ).
func (w Window[T]) Region(phase T) Region {
	ta, tb, tc, td := w.Bounds()
	switch {
	case rangemap.InModularRange(phase, ta, tb):
		return BlendIn
	case rangemap.InModularRange(phase, tb, tc):
		return Event
	case rangemap.InModularRange(phase, tc, td):
		return BlendOut
	default:
		return Neutral
	}
}

// Pulse returns the (x, y) point on the unit circle for phase. phase must be in [0, τ).
func (w Window[T]) Pulse(phase T) (x, y T) {
	tau := scalar.Tau[T]()
	ns, nc := scalar.SinCos(T(0))
	ta, tb, tc, td := w.Bounds()

	var s, c T
	switch w.Region(phase) {
	case BlendIn:
		theta := rangemap.MapModular(phase, tau, ta, tb, 0, scalar.FracPi2[T]())
		ts, tcos := scalar.SinCos(w.eventAngle(tb))
		s = CycleInterpolate(theta, ns, ts)
		c = CycleInterpolate(theta, nc, tcos)
	case Event:
		s, c = scalar.SinCos(w.eventAngle(phase))
	case BlendOut:
		theta := rangemap.MapModular(phase, tau, tc, td, 0, scalar.FracPi2[T]())
		ts, tcos := scalar.SinCos(w.eventAngle(tc))
		s = CycleInterpolate(theta, ts, ns)
		c = CycleInterpolate(theta, tcos, nc)
	default:
		s, c = ns, nc
	}
	return c, s
}

// eventAngle stretches [Start, End) onto a full turn.
func (w Window[T]) eventAngle(phase T) T {
	tau := scalar.Tau[T]()
	return rangemap.MapModular(phase, tau, w.Start, w.End, 0, tau)
}

// EventPulse evaluates Window{start, end, blendOuter, blendInner} at phase.
func EventPulse[T scalar.Scalar](phase, start, end, blendOuter, blendInner T) (x, y T) {
	return Window[T]{Start: start, End: end, BlendOuter: blendOuter, BlendInner: blendInner}.Pulse(phase)
}

// CycleInterpolate returns primary·cos(phase) + alternative·sin(phase).
//
// Over a full turn it walks +primary, +alternative, -primary, -alternative.
// Restricted to [0, π/2] it is a quarter-turn rotation from primary to alternative.
func CycleInterpolate[T scalar.Scalar](phase, primary, alternative T) T {
	s, c := scalar.SinCos(phase)
	return primary*c + alternative*s
}
