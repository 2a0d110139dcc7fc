package fft

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreq(t *testing.T) {
	tests := []struct {
		n    int
		want []float64
	}{
		{1, []float64{0}},
		{4, []float64{0, 0.25, -0.5, -0.25}},
		{5, []float64{0, 0.2, 0.4, -0.4, -0.2}},
	}

	for _, tt := range tests {
		got := Freq(tt.n)
		require.Len(t, got, tt.n)
		for i := range got {
			assert.InDelta(t, tt.want[i], got[i], 1e-15, "n=%d i=%d", tt.n, i)
		}
	}
}

func TestNewPlanRejectsEmpty(t *testing.T) {
	_, err := NewPlan(0, 4)
	require.Error(t, err)
}

func TestForwardImpulseIsFlat(t *testing.T) {
	p, err := NewPlan(4, 6)
	require.NoError(t, err)

	data := make([]complex128, 24)
	data[0] = 1
	p.Forward(data)

	for i, v := range data {
		assert.InDelta(t, 1.0, real(v), 1e-12, "index %d", i)
		assert.InDelta(t, 0.0, imag(v), 1e-12, "index %d", i)
	}
}

func TestForwardDCIsSum(t *testing.T) {
	p, err := NewPlan(3, 5)
	require.NoError(t, err)

	data := make([]complex128, 15)
	var sum complex128
	for i := range data {
		data[i] = complex(float64(i), -float64(i%3))
		sum += data[i]
	}
	p.Forward(data)

	assert.InDelta(t, 0.0, cmplx.Abs(data[0]-sum), 1e-9)
}

func TestRoundTrip(t *testing.T) {
	p, err := NewPlan(8, 6)
	require.NoError(t, err)

	orig := make([]complex128, 48)
	for i := range orig {
		orig[i] = complex(float64(i%7)-3, float64(i%5)*0.5)
	}
	data := make([]complex128, len(orig))
	copy(data, orig)

	p.Forward(data)
	p.Inverse(data)

	for i := range data {
		assert.InDelta(t, 0.0, cmplx.Abs(data[i]-orig[i]), 1e-9, "index %d", i)
	}
}
