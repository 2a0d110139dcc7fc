package fbm

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/MeKo-Tech/cirrussky/internal/fft"
	"github.com/MeKo-Tech/cirrussky/internal/field"
)

var (
	// ErrInvalidHurst is returned for a NaN or infinite Hurst exponent.
	ErrInvalidHurst = errors.New("invalid hurst exponent")
	// ErrUnknownMethod is returned by NewGenerator for an unsupported method name.
	ErrUnknownMethod = errors.New("unknown fbm method")
)

// Method names accepted by NewGenerator.
const (
	MethodSpectral = "spectral"
	MethodPerlin   = "perlin"
)

// Generator produces a base field normalized to [0,1].
type Generator interface {
	Generate(rng *rand.Rand, size field.Size) (*field.Field, error)
}

// Spectral synthesizes fBm by shaping complex white noise with a power law
// in frequency space.
type Spectral struct {
	Hurst float64
}

func (s Spectral) Generate(rng *rand.Rand, size field.Size) (*field.Field, error) {
	return Generate(rng, size, s.Hurst)
}

// NewGenerator returns the generator registered under method.
func NewGenerator(method string, hurst float64) (Generator, error) {
	switch method {
	case MethodSpectral, "":
		return Spectral{Hurst: hurst}, nil
	case MethodPerlin:
		return DefaultPerlin(hurst), nil
	default:
		return nil, fmt.Errorf("%w: %q (want %s or %s)", ErrUnknownMethod, method, MethodSpectral, MethodPerlin)
	}
}

// Generate returns a 2D fractional Brownian motion field of the given size,
// normalized to [0,1]. Amplitudes follow k^-(H+1) and the DC component is
// removed. rng supplies the complex Gaussian noise.
func Generate(rng *rand.Rand, size field.Size, hurst float64) (*field.Field, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	if err := validateHurst(hurst); err != nil {
		return nil, err
	}

	f, err := synthesize(rng, size, hurst)
	if err != nil {
		return nil, err
	}
	if err := f.Normalize(); err != nil {
		return nil, fmt.Errorf("fbm %s (hurst=%g): %w", size, hurst, err)
	}
	return f, nil
}

// synthesize returns the real part of the inverse-transformed, power-law
// shaped noise before normalization.
func synthesize(rng *rand.Rand, size field.Size, hurst float64) (*field.Field, error) {
	scaling := powerLawScaling(size, hurst)

	n := size.Len()
	noise := make([]complex128, n)
	re := make([]float64, n)
	for i := range re {
		re[i] = rng.NormFloat64()
	}
	for i := range noise {
		noise[i] = complex(re[i], rng.NormFloat64()) * complex(scaling[i], 0)
	}

	plan, err := fft.NewPlan(size.Rows, size.Cols)
	if err != nil {
		return nil, err
	}
	plan.Inverse(noise)

	out := make([]float64, n)
	for i, v := range noise {
		out[i] = real(v)
	}
	return field.FromData(size, out)
}

// powerLawScaling returns (kx^2 + ky^2)^(-(H+1)/2) laid out row-major, with
// the zero-frequency bin set to 0.
func powerLawScaling(size field.Size, hurst float64) []float64 {
	ky := fft.Freq(size.Rows)
	kx := fft.Freq(size.Cols)
	exp := -(hurst + 1) / 2

	scaling := make([]float64, size.Len())
	for r, fy := range ky {
		for c, fx := range kx {
			k2 := fx*fx + fy*fy
			if r == 0 && c == 0 {
				k2 = 1
			}
			scaling[r*size.Cols+c] = math.Pow(k2, exp)
		}
	}
	scaling[0] = 0
	return scaling
}

func validateHurst(h float64) error {
	if math.IsNaN(h) || math.IsInf(h, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidHurst, h)
	}
	return nil
}
