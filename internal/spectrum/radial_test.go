package spectrum

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/cirrussky/internal/fbm"
	"github.com/MeKo-Tech/cirrussky/internal/field"
)

func TestFitSlopeExactPowerLaw(t *testing.T) {
	var bins []Bin
	for i := 1; i <= 20; i++ {
		k := float64(i) / 64
		bins = append(bins, Bin{K: k, Power: 5 * math.Pow(k, -3), Count: 1})
	}
	// zero power bins are ignored
	bins = append(bins, Bin{K: 0.4, Power: 0, Count: 1})

	slope, err := FitSlope(bins)
	require.NoError(t, err)
	assert.InDelta(t, -3.0, slope, 1e-9)
}

func TestFitSlopeTooFewBins(t *testing.T) {
	_, err := FitSlope([]Bin{{K: 0.1, Power: 1, Count: 1}})
	require.ErrorIs(t, err, ErrTooFewBins)
}

func TestRadialBins(t *testing.T) {
	f, err := fbm.Generate(rand.New(rand.NewSource(1)), field.Size{Rows: 32, Cols: 32}, 0.5)
	require.NoError(t, err)

	bins, err := Radial(f)
	require.NoError(t, err)
	require.NotEmpty(t, bins)

	for i := 1; i < len(bins); i++ {
		assert.Greater(t, bins[i].K, bins[i-1].K)
		assert.Positive(t, bins[i].Count)
	}
	assert.Less(t, bins[len(bins)-1].K, 0.5)
}

func TestEstimateHurstRecoversInput(t *testing.T) {
	size := field.Size{Rows: 128, Cols: 128}

	for _, h := range []float64{0.3, 0.7} {
		f, err := fbm.Generate(rand.New(rand.NewSource(21)), size, h)
		require.NoError(t, err)

		got, err := EstimateHurst(f)
		require.NoError(t, err)
		assert.InDelta(t, h, got, 0.2, "hurst %g", h)
	}
}

func TestEstimateHurstSmallField(t *testing.T) {
	f, err := field.FromData(field.Size{Rows: 2, Cols: 2}, []float64{0, 1, 1, 0})
	require.NoError(t, err)

	_, err = EstimateHurst(f)
	require.ErrorIs(t, err, ErrTooFewBins)
}
