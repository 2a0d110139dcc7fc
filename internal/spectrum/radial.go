// Package spectrum estimates the power-law slope of a field's spatial power
// spectrum.
package spectrum

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/MeKo-Tech/cirrussky/internal/fft"
	"github.com/MeKo-Tech/cirrussky/internal/field"
)

// ErrTooFewBins is returned when a spectrum has too few bins for a fit.
var ErrTooFewBins = errors.New("too few spectral bins")

// Bin is one annulus of the azimuthally averaged power spectrum.
type Bin struct {
	// K is the mean radial frequency of the annulus in cycles per sample.
	K     float64
	Power float64
	Count int
}

// Radial returns the azimuthally averaged power spectrum of f. Bins are one
// frequency step (1/min(rows, cols)) wide, the DC term is excluded and only
// annuli fully inside the Nyquist circle are kept.
func Radial(f *field.Field) ([]Bin, error) {
	plan, err := fft.NewPlan(f.Rows, f.Cols)
	if err != nil {
		return nil, err
	}

	// subtract the mean so DC leakage does not dominate the first bin
	mean := f.Stats().Mean
	buf := make([]complex128, len(f.Data))
	for i, v := range f.Data {
		buf[i] = complex(v-mean, 0)
	}
	plan.Forward(buf)

	n := min(f.Rows, f.Cols)
	nbins := n / 2
	sumK := make([]float64, nbins)
	sumP := make([]float64, nbins)
	counts := make([]int, nbins)

	ky := fft.Freq(f.Rows)
	kx := fft.Freq(f.Cols)
	for r, fy := range ky {
		for c, fx := range kx {
			k := math.Hypot(fx, fy)
			b := int(math.Round(k * float64(n)))
			if b == 0 || b >= nbins {
				continue
			}
			v := buf[r*f.Cols+c]
			sumK[b] += k
			sumP[b] += real(v)*real(v) + imag(v)*imag(v)
			counts[b]++
		}
	}

	bins := make([]Bin, 0, nbins)
	for b := 1; b < nbins; b++ {
		if counts[b] == 0 {
			continue
		}
		bins = append(bins, Bin{
			K:     sumK[b] / float64(counts[b]),
			Power: sumP[b] / float64(counts[b]),
			Count: counts[b],
		})
	}
	return bins, nil
}

// FitSlope fits log(P) = a + b*log(K) by least squares and returns b.
// Bins with zero power are skipped.
func FitSlope(bins []Bin) (float64, error) {
	xs := make([]float64, 0, len(bins))
	ys := make([]float64, 0, len(bins))
	for _, b := range bins {
		if b.Power <= 0 || b.K <= 0 {
			continue
		}
		xs = append(xs, math.Log(b.K))
		ys = append(ys, math.Log(b.Power))
	}
	if len(xs) < 2 {
		return 0, fmt.Errorf("%w: %d usable", ErrTooFewBins, len(xs))
	}

	_, slope := stat.LinearRegression(xs, ys, nil, false)
	return slope, nil
}

// EstimateHurst infers the Hurst exponent of a spectrally synthesized fBm
// field, whose power falls off as k^-(2H+2).
func EstimateHurst(f *field.Field) (float64, error) {
	bins, err := Radial(f)
	if err != nil {
		return 0, err
	}
	slope, err := FitSlope(bins)
	if err != nil {
		return 0, err
	}
	return HurstFromSlope(slope), nil
}

// HurstFromSlope converts a power-spectrum slope to a Hurst exponent.
func HurstFromSlope(slope float64) float64 {
	return -slope/2 - 1
}
