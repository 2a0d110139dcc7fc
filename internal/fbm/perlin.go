package fbm

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/MeKo-Tech/cirrussky/internal/field"
)

// Perlin builds an fBm-like field from octave Perlin noise. Each octave
// doubles the frequency and scales the amplitude by 2^-Hurst.
type Perlin struct {
	Hurst   float64
	Octaves int32
	// Scale is the base wavelength in samples (larger = smoother).
	Scale float64
}

// DefaultPerlin returns a Perlin generator with 6 octaves over a 64-sample base wavelength.
func DefaultPerlin(hurst float64) Perlin {
	return Perlin{Hurst: hurst, Octaves: 6, Scale: 64}
}

func (p Perlin) Generate(rng *rand.Rand, size field.Size) (*field.Field, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	if err := validateHurst(p.Hurst); err != nil {
		return nil, err
	}
	if p.Octaves <= 0 {
		return nil, fmt.Errorf("perlin octaves must be positive, got %d", p.Octaves)
	}
	if p.Scale <= 0 {
		return nil, fmt.Errorf("perlin scale must be positive, got %g", p.Scale)
	}

	// alpha: amplitude divisor per octave, beta: frequency multiplier
	noise := perlin.NewPerlin(math.Pow(2, p.Hurst), 2.0, p.Octaves, rng.Int63())

	f, err := field.New(size)
	if err != nil {
		return nil, err
	}
	for r := 0; r < size.Rows; r++ {
		for c := 0; c < size.Cols; c++ {
			f.Set(r, c, noise.Noise2D(float64(c)/p.Scale, float64(r)/p.Scale))
		}
	}

	if err := f.Normalize(); err != nil {
		return nil, fmt.Errorf("perlin %s (hurst=%g): %w", size, p.Hurst, err)
	}
	return f, nil
}
