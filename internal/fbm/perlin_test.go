package fbm

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MeKo-Tech/cirrussky/internal/field"
)

func TestPerlinGenerate(t *testing.T) {
	size := field.Size{Rows: 48, Cols: 32}

	f, err := DefaultPerlin(0.7).Generate(rand.New(rand.NewSource(11)), size)
	require.NoError(t, err)

	rows, cols := f.Shape()
	assert.Equal(t, 48, rows)
	assert.Equal(t, 32, cols)

	lo, hi := f.MinMax()
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 1.0, hi)
}

func TestPerlinDeterministic(t *testing.T) {
	size := field.Size{Rows: 24, Cols: 24}
	p := Perlin{Hurst: 0.5, Octaves: 4, Scale: 8}

	a, err := p.Generate(rand.New(rand.NewSource(2)), size)
	require.NoError(t, err)
	b, err := p.Generate(rand.New(rand.NewSource(2)), size)
	require.NoError(t, err)

	assert.Equal(t, a.Data, b.Data)
}

func TestPerlinValidation(t *testing.T) {
	rng := rand.New(rand.NewSource(0))
	size := field.Size{Rows: 8, Cols: 8}

	_, err := Perlin{Hurst: 0.5, Octaves: 0, Scale: 8}.Generate(rng, size)
	require.Error(t, err)

	_, err = Perlin{Hurst: 0.5, Octaves: 3, Scale: 0}.Generate(rng, size)
	require.Error(t, err)

	_, err = DefaultPerlin(0.5).Generate(rng, field.Size{Rows: -1, Cols: 8})
	require.ErrorIs(t, err, field.ErrInvalidDimension)
}
