package field

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrInvalidDimension is returned when a grid has a non-positive dimension.
	ErrInvalidDimension = errors.New("invalid field dimension")
	// ErrDegenerateField is returned when a field cannot be min-max normalized
	// because it is constant or contains non-finite values.
	ErrDegenerateField = errors.New("degenerate field")
)

// Size holds grid dimensions as (rows, cols), i.e. (ny, nx).
type Size struct {
	Rows int
	Cols int
}

// Validate reports whether both dimensions are positive.
func (s Size) Validate() error {
	if s.Rows <= 0 || s.Cols <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimension, s.Rows, s.Cols)
	}
	return nil
}

// Len returns the number of samples in a grid of this size.
func (s Size) Len() int { return s.Rows * s.Cols }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.Rows, s.Cols) }

// Field is a 2D grid of real-valued samples stored row-major.
type Field struct {
	Rows int
	Cols int
	Data []float64
}

// New allocates a zero-valued field of the given size.
func New(size Size) (*Field, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	return &Field{
		Rows: size.Rows,
		Cols: size.Cols,
		Data: make([]float64, size.Len()),
	}, nil
}

// FromData wraps row-major data. len(data) must equal rows*cols.
func FromData(size Size, data []float64) (*Field, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	if len(data) != size.Len() {
		return nil, fmt.Errorf("%w: %d samples for %s grid", ErrInvalidDimension, len(data), size)
	}
	return &Field{Rows: size.Rows, Cols: size.Cols, Data: data}, nil
}

func (f *Field) Size() Size { return Size{Rows: f.Rows, Cols: f.Cols} }

// Shape returns (rows, cols).
func (f *Field) Shape() (int, int) { return f.Rows, f.Cols }

func (f *Field) idx(r, c int) int { return r*f.Cols + c }

func (f *Field) At(r, c int) float64 { return f.Data[f.idx(r, c)] }

func (f *Field) Set(r, c int, v float64) { f.Data[f.idx(r, c)] = v }

// Clone returns a deep copy.
func (f *Field) Clone() *Field {
	data := make([]float64, len(f.Data))
	copy(data, f.Data)
	return &Field{Rows: f.Rows, Cols: f.Cols, Data: data}
}

// Apply replaces every sample v with fn(v).
func (f *Field) Apply(fn func(float64) float64) {
	for i, v := range f.Data {
		f.Data[i] = fn(v)
	}
}

// MinMax returns the smallest and largest sample.
func (f *Field) MinMax() (float64, float64) {
	return floats.Min(f.Data), floats.Max(f.Data)
}

// Normalize rescales the field in place to [0,1] via (x-min)/(max-min).
// The extremes map to exactly 0 and 1.
func (f *Field) Normalize() error {
	if floats.HasNaN(f.Data) {
		return fmt.Errorf("%w: contains NaN", ErrDegenerateField)
	}
	lo, hi := f.MinMax()
	if math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return fmt.Errorf("%w: contains Inf", ErrDegenerateField)
	}
	if hi == lo {
		return fmt.Errorf("%w: constant value %g", ErrDegenerateField, lo)
	}

	span := hi - lo
	for i, v := range f.Data {
		f.Data[i] = (v - lo) / span
	}
	return nil
}

// Stats summarises the value distribution of a field.
type Stats struct {
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Skew   float64
}

// Stats computes summary statistics over all samples.
func (f *Field) Stats() Stats {
	lo, hi := f.MinMax()
	mean, std := stat.MeanStdDev(f.Data, nil)
	return Stats{
		Min:    lo,
		Max:    hi,
		Mean:   mean,
		StdDev: std,
		Skew:   stat.Skew(f.Data, nil),
	}
}

// Roughness is the variance of first differences along both axes divided by
// the variance of the field. Smoother fields have longer correlation lengths
// and therefore lower roughness. A constant field has roughness 0.
func (f *Field) Roughness() float64 {
	variance := stat.Variance(f.Data, nil)
	if variance == 0 || math.IsNaN(variance) {
		return 0
	}

	diffs := make([]float64, 0, 2*len(f.Data))
	for r := 0; r < f.Rows; r++ {
		for c := 1; c < f.Cols; c++ {
			diffs = append(diffs, f.At(r, c)-f.At(r, c-1))
		}
	}
	for r := 1; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			diffs = append(diffs, f.At(r, c)-f.At(r-1, c))
		}
	}
	if len(diffs) < 2 {
		return 0
	}
	return stat.Variance(diffs, nil) / variance
}
