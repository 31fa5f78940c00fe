package scalar

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemEuclidNonNegative(t *testing.T) {
	cases := []struct {
		x, d, want float64
	}{
		{7, 3, 1},
		{-1, 3, 2},
		{-3, 3, 0},
		{0, 24, 0},
		{25, 24, 1},
		{-0.5, 24, 23.5},
	}
	for _, tc := range cases {
		assert.InDelta(t, tc.want, RemEuclid(tc.x, tc.d), 1e-12, "RemEuclid(%v, %v)", tc.x, tc.d)
	}
}

func TestRemEuclidFloat32(t *testing.T) {
	got := RemEuclid(float32(-1), Tau[float32]())
	require.InDelta(t, float64(Tau[float32]()-1), float64(got), 1e-6)
}

func TestRemEuclidStaysBelowPeriod(t *testing.T) {
	tau := Tau[float64]()
	got := RemEuclid(-1e-17, tau)
	require.True(t, got >= 0 && got < tau, "RemEuclid(-1e-17, τ) = %v", got)
	require.Equal(t, 0.0, got)

	tau32 := Tau[float32]()
	got32 := RemEuclid(float32(-1e-9), tau32)
	require.True(t, got32 >= 0 && got32 < tau32, "float32 remainder %v", got32)
}

func TestSignumAndAbs(t *testing.T) {
	assert.Equal(t, 1.0, Signum(3.5))
	assert.Equal(t, -1.0, Signum(-0.1))
	assert.Equal(t, 0.0, Signum(0.0))
	assert.True(t, math.IsNaN(Signum(math.NaN())))
	assert.Equal(t, 2.5, Abs(-2.5))
}

func TestSinCosMatchesSeparateCalls(t *testing.T) {
	for _, x := range []float64{0, 0.3, FracPi2[float64](), Pi[float64](), 5} {
		s, c := SinCos(x)
		assert.InDelta(t, Sin(x), s, 1e-15)
		assert.InDelta(t, Cos(x), c, 1e-15)
	}
	s, c := SinCos(0.0)
	assert.Equal(t, 0.0, s)
	assert.Equal(t, 1.0, c)
}

func TestConstants(t *testing.T) {
	assert.Equal(t, 2*math.Pi, Tau[float64]())
	assert.InDelta(t, math.Pi/2, float64(FracPi2[float32]()), 1e-6)
	assert.Equal(t, 1.0, Min(1.0, 2.0))
	assert.Equal(t, 2.0, Max(1.0, 2.0))
}

func TestIsFinite(t *testing.T) {
	assert.True(t, IsFinite(1.0))
	assert.False(t, IsFinite(math.Inf(-1)))
	assert.False(t, IsFinite(math.NaN()))
}
