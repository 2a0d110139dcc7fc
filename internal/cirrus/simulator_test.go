package cirrus

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/cirrussky/internal/fbm"
	"github.com/MeKo-Tech/cirrussky/internal/field"
)

func TestSimulateShape(t *testing.T) {
	tests := []struct {
		name   string
		size   field.Size
		params Params
	}{
		{"defaults", field.Size{Rows: 32, Cols: 32}, DefaultParams()},
		{"wide rough", field.Size{Rows: 16, Cols: 40}, Params{Hurst: 0.1, BeamFWHM: 0.5, NoiseLevel: 0.2}},
		{"no smoothing", field.Size{Rows: 20, Cols: 12}, Params{Hurst: 0.9, BeamFWHM: 0, NoiseLevel: 0.05}},
		{"perlin base", field.Size{Rows: 24, Cols: 24}, Params{Hurst: 0.7, BeamFWHM: 2, NoiseLevel: 0.01, Base: fbm.DefaultPerlin(0.7)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Simulate(rand.New(rand.NewSource(1)), tt.size, tt.params)
			require.NoError(t, err)

			rows, cols := f.Shape()
			assert.Equal(t, tt.size.Rows, rows)
			assert.Equal(t, tt.size.Cols, cols)
		})
	}
}

func TestSimulateWithoutNoiseStaysInUnitRange(t *testing.T) {
	size := field.Size{Rows: 32, Cols: 32}
	f, err := Simulate(rand.New(rand.NewSource(0)), size, Params{Hurst: 0.5, BeamFWHM: 1.0, NoiseLevel: 0})
	require.NoError(t, err)

	for i, v := range f.Data {
		require.GreaterOrEqual(t, v, 0.0, "sample %d", i)
		require.LessOrEqual(t, v, 1.0, "sample %d", i)
	}
	lo, hi := f.MinMax()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestSimulateNoiseLeavesUnitRange(t *testing.T) {
	size := field.Size{Rows: 64, Cols: 64}
	f, err := Simulate(rand.New(rand.NewSource(0)), size, Params{Hurst: 0.7, BeamFWHM: 3, NoiseLevel: 0.2})
	require.NoError(t, err)

	lo, hi := f.MinMax()
	assert.True(t, lo < 0 || hi > 1, "expected noise to push samples outside [0,1], got [%g,%g]", lo, hi)
}

func TestSimulateDeterministic(t *testing.T) {
	size := field.Size{Rows: 32, Cols: 32}
	p := Params{Hurst: 0.7, BeamFWHM: 2, NoiseLevel: 0.05}

	a, err := Simulate(rand.New(rand.NewSource(9)), size, p)
	require.NoError(t, err)
	b, err := Simulate(rand.New(rand.NewSource(9)), size, p)
	require.NoError(t, err)

	assert.Equal(t, a.Data, b.Data)
}

func TestLargerBeamIsSmoother(t *testing.T) {
	size := field.Size{Rows: 64, Cols: 64}

	prev := math.Inf(1)
	for _, beam := range []float64{0.5, 1, 2, 4} {
		f, err := Simulate(rand.New(rand.NewSource(4)), size, Params{Hurst: 0.7, BeamFWHM: beam, NoiseLevel: 0})
		require.NoError(t, err)

		r := f.Roughness()
		assert.Less(t, r, prev, "beam %g", beam)
		prev = r
	}
}

func TestSimulateLogNormalSkewsPositive(t *testing.T) {
	size := field.Size{Rows: 64, Cols: 64}
	rng := rand.New(rand.NewSource(12))

	base, err := fbm.Generate(rng, size, 0.7)
	require.NoError(t, err)
	smoothed, err := Smooth(base, 2)
	require.NoError(t, err)

	before := smoothed.Stats().Skew
	smoothed.Apply(math.Exp)
	require.NoError(t, smoothed.Normalize())

	assert.Greater(t, smoothed.Stats().Skew, before)
}

func TestSimulateValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	size := field.Size{Rows: 8, Cols: 8}

	_, err := Simulate(rng, size, Params{Hurst: 0.7, BeamFWHM: -1, NoiseLevel: 0})
	require.ErrorIs(t, err, ErrInvalidBeam)

	_, err = Simulate(rng, size, Params{Hurst: 0.7, BeamFWHM: 1, NoiseLevel: -0.1})
	require.ErrorIs(t, err, ErrInvalidNoise)

	_, err = Simulate(rng, size, Params{Hurst: math.NaN(), BeamFWHM: 1, NoiseLevel: 0})
	require.ErrorIs(t, err, fbm.ErrInvalidHurst)

	_, err = Simulate(rng, field.Size{Rows: 8, Cols: 0}, DefaultParams())
	require.ErrorIs(t, err, field.ErrInvalidDimension)
}
