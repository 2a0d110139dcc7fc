package cirrus

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"

	"github.com/MeKo-Tech/cirrussky/internal/fbm"
	"github.com/MeKo-Tech/cirrussky/internal/field"
)

var (
	// ErrInvalidBeam is returned for a negative or non-finite beam width.
	ErrInvalidBeam = errors.New("invalid beam width")
	// ErrInvalidNoise is returned for a negative or non-finite noise level.
	ErrInvalidNoise = errors.New("invalid noise level")
)

// Params define the cirrus simulation knobs.
type Params struct {
	Hurst float64
	// BeamFWHM is used directly as the Gaussian sigma in samples; it is not
	// converted from a full width at half maximum.
	BeamFWHM   float64
	NoiseLevel float64
	// Base overrides the base field generator. nil uses fbm.Spectral{Hurst}.
	Base fbm.Generator
}

// DefaultParams returns the library defaults.
func DefaultParams() Params {
	return Params{
		Hurst:      0.7,
		BeamFWHM:   5.0,
		NoiseLevel: 0.01,
	}
}

func (p Params) validate() error {
	if p.BeamFWHM < 0 || math.IsNaN(p.BeamFWHM) || math.IsInf(p.BeamFWHM, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidBeam, p.BeamFWHM)
	}
	if p.NoiseLevel < 0 || math.IsNaN(p.NoiseLevel) || math.IsInf(p.NoiseLevel, 0) {
		return fmt.Errorf("%w: %g", ErrInvalidNoise, p.NoiseLevel)
	}
	return nil
}

// Simulator runs the cirrus pipeline: base fBm, beam smoothing, log-normal
// skew and observational noise.
type Simulator struct {
	logger *slog.Logger
}

// NewSimulator returns a simulator that logs stage summaries to logger.
// A nil logger falls back to slog.Default().
func NewSimulator(logger *slog.Logger) *Simulator {
	return &Simulator{logger: logger}
}

// Simulate runs the pipeline with a default simulator.
func Simulate(rng *rand.Rand, size field.Size, p Params) (*field.Field, error) {
	return NewSimulator(nil).Simulate(rng, size, p)
}

// Simulate returns a simulated cirrus map. Without noise the result lies in
// [0,1]; additive noise may push samples outside that range.
func (s *Simulator) Simulate(rng *rand.Rand, size field.Size, p Params) (*field.Field, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	if err := p.validate(); err != nil {
		return nil, err
	}

	base := p.Base
	if base == nil {
		base = fbm.Spectral{Hurst: p.Hurst}
	}

	f, err := base.Generate(rng, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate base field: %w", err)
	}
	s.log().Debug("Generated base field", "size", size.String(), "hurst", p.Hurst, "roughness", f.Roughness())

	smoothed, err := Smooth(f, p.BeamFWHM)
	if err != nil {
		return nil, err
	}
	s.log().Debug("Applied beam smoothing", "sigma", p.BeamFWHM, "roughness", smoothed.Roughness())

	smoothed.Apply(math.Exp)
	if err := smoothed.Normalize(); err != nil {
		return nil, fmt.Errorf("log-normal transform: %w", err)
	}
	s.log().Debug("Applied log-normal transform", "skew", smoothed.Stats().Skew)

	addNoise(rng, smoothed, p.NoiseLevel)
	st := smoothed.Stats()
	s.log().Debug("Added observational noise", "noise_level", p.NoiseLevel, "min", st.Min, "max", st.Max)

	return smoothed, nil
}

// addNoise adds N(0, sigma) to every sample in row-major order. The draw is
// made even for sigma == 0 so the RNG advances identically for every level.
func addNoise(rng *rand.Rand, f *field.Field, sigma float64) {
	for i := range f.Data {
		f.Data[i] += rng.NormFloat64() * sigma
	}
}

func (s *Simulator) log() *slog.Logger {
	if s != nil && s.logger != nil {
		return s.logger
	}
	return slog.Default()
}
