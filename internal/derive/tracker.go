// Package derive estimates price derivatives from a stream of ticks.
//
// For each symbol the tracker keeps the most recent samples, fits the
// interpolating polynomial through them and reads its derivatives at the
// latest sample. With n samples the output carries n orders, so the jolt term
// only appears once four samples are available. Time is measured in seconds.
package derive

import (
	"sync"
	"time"

	"joltshark-go/internal/market"
	"joltshark-go/internal/state"
)

// DefaultOrder tracks position through jolt.
const DefaultOrder = 4

// Tracker builds derivative stacks per symbol from incoming ticks.
type Tracker struct {
	order  int
	window time.Duration
	mu     sync.Mutex
	series map[string]*series
}

type sample struct {
	ts    time.Time
	price float64
}

type series struct {
	samples [state.MaxOrder]sample
	n       int
}

// NewTracker keeps up to order samples per symbol, dropping samples older than
// window relative to the latest one. A non-positive window keeps samples
// regardless of age.
func NewTracker(order int, window time.Duration) *Tracker {
	if order <= 0 {
		order = DefaultOrder
	}
	if order > state.MaxOrder {
		order = state.MaxOrder
	}
	return &Tracker{
		order:  order,
		window: window,
		series: make(map[string]*series),
	}
}

// Order returns the maximum number of derivative orders produced.
func (t *Tracker) Order() int { return t.order }

// Observe folds tk into its symbol's series and returns the current stack.
// Ticks older than the latest sample are ignored; a tick with the same
// timestamp replaces the latest price.
func (t *Tracker) Observe(tk market.Tick) state.StateVector[float64] {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := t.series[tk.Symbol]
	if s == nil {
		s = &series{}
		t.series[tk.Symbol] = s
	}
	s.append(sample{ts: tk.Ts, price: tk.Price}, t.order, t.window)
	return s.derivatives()
}

// Reset forgets the samples of symbol.
func (t *Tracker) Reset(symbol string) {
	t.mu.Lock()
	delete(t.series, symbol)
	t.mu.Unlock()
}

func (s *series) append(smp sample, order int, window time.Duration) {
	if s.n > 0 {
		last := &s.samples[s.n-1]
		if smp.ts.Before(last.ts) {
			return
		}
		if smp.ts.Equal(last.ts) {
			last.price = smp.price
			return
		}
	}
	if s.n == order {
		copy(s.samples[:], s.samples[1:s.n])
		s.n--
	}
	s.samples[s.n] = smp
	s.n++

	if window <= 0 {
		return
	}
	cutoff := smp.ts.Add(-window)
	idx := 0
	for idx < s.n-1 && !s.samples[idx].ts.After(cutoff) {
		idx++
	}
	if idx > 0 {
		copy(s.samples[:], s.samples[idx:s.n])
		s.n -= idx
	}
}

// derivatives evaluates the Newton interpolating polynomial through the
// samples and its derivatives at the latest sample.
func (s *series) derivatives() state.StateVector[float64] {
	n := s.n
	if n == 0 {
		return state.MustNew[float64]()
	}
	latest := s.samples[n-1].ts

	// Nodes ordered latest first, as offsets from the latest timestamp.
	var x, c [state.MaxOrder]float64
	for k := 0; k < n; k++ {
		smp := s.samples[n-1-k]
		x[k] = smp.ts.Sub(latest).Seconds()
		c[k] = smp.price
	}
	for j := 1; j < n; j++ {
		for k := n - 1; k >= j; k-- {
			c[k] = (c[k] - c[k-1]) / (x[k] - x[k-j])
		}
	}

	// Expand c0 + c1(u-x0) + c2(u-x0)(u-x1) + ... into powers of u.
	var coef, basis [state.MaxOrder]float64
	basis[0] = 1
	for k := 0; k < n; k++ {
		if k > 0 {
			for m := k; m >= 1; m-- {
				basis[m] = basis[m-1] - x[k-1]*basis[m]
			}
			basis[0] = -x[k-1] * basis[0]
		}
		for m := 0; m <= k; m++ {
			coef[m] += c[k] * basis[m]
		}
	}

	var out [state.MaxOrder]float64
	factorial := 1.0
	for m := 0; m < n; m++ {
		if m > 0 {
			factorial *= float64(m)
		}
		out[m] = factorial * coef[m]
	}
	return state.MustNew(out[:n]...)
}
