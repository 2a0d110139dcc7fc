package cirrus

import (
	"fmt"
	"math"

	"github.com/MeKo-Tech/cirrussky/internal/fft"
	"github.com/MeKo-Tech/cirrussky/internal/field"
)

// Smooth convolves f with an isotropic Gaussian of standard deviation sigma
// (in samples) and returns a new field. The convolution is done in Fourier
// space with periodic boundaries. sigma == 0 returns an unmodified copy.
func Smooth(f *field.Field, sigma float64) (*field.Field, error) {
	if sigma < 0 || math.IsNaN(sigma) || math.IsInf(sigma, 0) {
		return nil, fmt.Errorf("%w: sigma %g", ErrInvalidBeam, sigma)
	}
	if sigma == 0 {
		return f.Clone(), nil
	}

	plan, err := fft.NewPlan(f.Rows, f.Cols)
	if err != nil {
		return nil, err
	}

	buf := make([]complex128, len(f.Data))
	for i, v := range f.Data {
		buf[i] = complex(v, 0)
	}
	plan.Forward(buf)

	ky := fft.Freq(f.Rows)
	kx := fft.Freq(f.Cols)
	c := -2 * math.Pi * math.Pi * sigma * sigma
	for r, fy := range ky {
		for col, fx := range kx {
			buf[r*f.Cols+col] *= complex(math.Exp(c*(fx*fx+fy*fy)), 0)
		}
	}
	plan.Inverse(buf)

	out := f.Clone()
	for i, v := range buf {
		out.Data[i] = real(v)
	}
	return out, nil
}
