package state

import (
	"errors"
	"testing"
)

func TestAccessors(t *testing.T) {
	v := MustNew(100.0, 1.5, -0.25, 0.01)
	if p, ok := v.Position(); !ok || p != 100 {
		t.Fatalf("unexpected position %v %v", p, ok)
	}
	if vel, ok := v.Velocity(); !ok || vel != 1.5 {
		t.Fatalf("unexpected velocity %v %v", vel, ok)
	}
	if a, ok := v.Acceleration(); !ok || a != -0.25 {
		t.Fatalf("unexpected acceleration %v %v", a, ok)
	}
	if j, ok := v.Jolt(); !ok || j != 0.01 {
		t.Fatalf("unexpected jolt %v %v", j, ok)
	}
	if _, ok := v.Derivative(4); ok {
		t.Fatalf("expected order 4 to be absent")
	}
	if _, ok := v.Derivative(-1); ok {
		t.Fatalf("expected negative order to be absent")
	}
}

func TestShortVectorHasNoJolt(t *testing.T) {
	v := MustNew[float32](10, 1)
	if v.Len() != 2 {
		t.Fatalf("expected len 2, got %d", v.Len())
	}
	if _, ok := v.Jolt(); ok {
		t.Fatalf("expected jolt absent")
	}
	empty := MustNew[float64]()
	if _, ok := empty.Position(); ok {
		t.Fatalf("expected position absent on empty vector")
	}
}

func TestNewRejectsTooManyOrders(t *testing.T) {
	_, err := New(make([]float64, MaxOrder+1)...)
	if !errors.Is(err, ErrTooManyOrders) {
		t.Fatalf("expected ErrTooManyOrders, got %v", err)
	}
}

func TestAddSub(t *testing.T) {
	a := MustNew(1.0, 2.0, 3.0, 4.0)
	b := MustNew(0.5, 0.5, 0.5, 0.5)

	sum, err := a.Add(b)
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	want := []float64{1.5, 2.5, 3.5, 4.5}
	for i, w := range want {
		if got, _ := sum.Derivative(i); got != w {
			t.Fatalf("sum[%d]=%v want %v", i, got, w)
		}
	}

	diff, err := sum.Sub(b)
	if err != nil {
		t.Fatalf("Sub returned error: %v", err)
	}
	for i, w := range a.Values() {
		if got, _ := diff.Derivative(i); got != w {
			t.Fatalf("diff[%d]=%v want %v", i, got, w)
		}
	}
}

func TestAddLengthMismatch(t *testing.T) {
	_, err := MustNew(1.0, 2.0).Add(MustNew(1.0))
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
	_, err = MustNew(1.0).Sub(MustNew(1.0, 2.0))
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("expected ErrLengthMismatch, got %v", err)
	}
}

func TestValuesIsCopy(t *testing.T) {
	v := MustNew(1.0, 2.0)
	vals := v.Values()
	vals[0] = 99
	if p, _ := v.Position(); p != 1 {
		t.Fatalf("Values leaked backing storage")
	}
}
