package render

import (
	"errors"
	"fmt"
	"image/color"
	"sort"

	"github.com/mazznoer/colorgrad"
)

// ErrUnknownColormap is returned for a colormap name with no preset.
var ErrUnknownColormap = errors.New("unknown colormap")

const lutSize = 256

var colormaps = map[string]func() colorgrad.Gradient{
	"inferno": colorgrad.Inferno,
	"magma":   colorgrad.Magma,
	"plasma":  colorgrad.Plasma,
	"viridis": colorgrad.Viridis,
	"cividis": colorgrad.Cividis,
	"turbo":   colorgrad.Turbo,
}

// Colormaps lists the supported colormap names in sorted order.
func Colormaps() []string {
	names := make([]string, 0, len(colormaps))
	for name := range colormaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// lut is a sampled colormap, low values first.
type lut []color.NRGBA

func newLUT(name string) (lut, error) {
	preset, ok := colormaps[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (want one of %v)", ErrUnknownColormap, name, Colormaps())
	}

	cols := preset().Colors(lutSize)
	out := make(lut, len(cols))
	for i, c := range cols {
		out[i] = color.NRGBAModel.Convert(c).(color.NRGBA)
	}
	return out, nil
}

// at maps t in [0,1] to a color. Values outside are clamped.
func (l lut) at(t float64) color.NRGBA {
	if !(t > 0) {
		return l[0]
	}
	if t >= 1 {
		return l[len(l)-1]
	}
	return l[int(t*float64(len(l)-1)+0.5)]
}
