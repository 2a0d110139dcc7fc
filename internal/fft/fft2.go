// Package fft provides 2D complex transforms over row-major grids, built from
// gonum's 1D complex FFT applied to rows then columns.
package fft

import (
	"fmt"

	"gonum.org/v1/gonum/dsp/fourier"
)

// Freq returns the sample frequencies (cycles per sample) for an n-point
// transform with unit spacing:
//
//	[0, 1, ..., ceil(n/2)-1, -floor(n/2), ..., -1] / n
func Freq(n int) []float64 {
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		k := i
		if i >= (n+1)/2 {
			k = i - n
		}
		out[i] = float64(k) / float64(n)
	}
	return out
}

// Plan holds reusable 1D transforms for a rows x cols grid.
type Plan struct {
	rows   int
	cols   int
	rowFFT *fourier.CmplxFFT
	colFFT *fourier.CmplxFFT
	rowBuf []complex128
	colBuf []complex128
}

// NewPlan prepares transforms for a rows x cols grid.
func NewPlan(rows, cols int) (*Plan, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("fft plan requires positive dimensions, got %dx%d", rows, cols)
	}
	return &Plan{
		rows:   rows,
		cols:   cols,
		rowFFT: fourier.NewCmplxFFT(cols),
		colFFT: fourier.NewCmplxFFT(rows),
		rowBuf: make([]complex128, cols),
		colBuf: make([]complex128, rows),
	}, nil
}

// Forward replaces data with its unnormalized 2D DFT.
func (p *Plan) Forward(data []complex128) {
	p.transform(data, true)
}

// Inverse replaces data with its 2D inverse DFT, scaled by 1/(rows*cols) so
// that Inverse(Forward(x)) == x.
func (p *Plan) Inverse(data []complex128) {
	p.transform(data, false)
	scale := complex(1/float64(p.rows*p.cols), 0)
	for i := range data {
		data[i] *= scale
	}
}

func (p *Plan) transform(data []complex128, forward bool) {
	if len(data) != p.rows*p.cols {
		panic(fmt.Sprintf("fft: data length %d does not match %dx%d plan", len(data), p.rows, p.cols))
	}

	tmp := make([]complex128, max(p.rows, p.cols))

	// rows
	for r := 0; r < p.rows; r++ {
		row := data[r*p.cols : (r+1)*p.cols]
		copy(p.rowBuf, row)
		if forward {
			p.rowFFT.Coefficients(tmp[:p.cols], p.rowBuf)
		} else {
			p.rowFFT.Sequence(tmp[:p.cols], p.rowBuf)
		}
		copy(row, tmp[:p.cols])
	}

	// cols
	for c := 0; c < p.cols; c++ {
		for r := 0; r < p.rows; r++ {
			p.colBuf[r] = data[r*p.cols+c]
		}
		if forward {
			p.colFFT.Coefficients(tmp[:p.rows], p.colBuf)
		} else {
			p.colFFT.Sequence(tmp[:p.rows], p.colBuf)
		}
		for r := 0; r < p.rows; r++ {
			data[r*p.cols+c] = tmp[r]
		}
	}
}
