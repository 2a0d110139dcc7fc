package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/gift"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/MeKo-Tech/cirrussky/internal/field"
)

// Options control how a field is rendered.
type Options struct {
	Title    string
	Colormap string
	// Scale magnifies each sample to Scale x Scale pixels.
	Scale int
	// OriginLower places row 0 at the bottom of the image.
	OriginLower bool
	// Compression is one of default, speed, best, none.
	Compression string
}

// DefaultOptions returns the standard cirrus figure settings.
func DefaultOptions() Options {
	return Options{
		Title:       "Simulated Astronomical Cirrus",
		Colormap:    "inferno",
		Scale:       1,
		OriginLower: true,
		Compression: "default",
	}
}

const (
	padding     = 16
	titleHeight = 24
	barGap      = 16
	barWidth    = 16
	tickLength  = 4
	labelGap    = 3
	captionGap  = 18
	numTicks    = 5
	caption     = "Intensity"
)

var (
	face      = basicfont.Face7x13
	textColor = color.NRGBA{A: 255}
)

// layout holds the pixel rectangles of a figure.
type layout struct {
	canvas image.Rectangle
	title  image.Point // baseline origin
	plot   image.Rectangle
	bar    image.Rectangle
}

func newLayout(imgW, imgH int, title string, labelW int) layout {
	top := padding
	if title != "" {
		top += titleHeight
	}

	plot := image.Rect(padding, top, padding+imgW, top+imgH)
	barX := plot.Max.X + barGap
	bar := image.Rect(barX, top, barX+barWidth, top+imgH)

	right := max(bar.Max.X+tickLength+labelGap+labelW, barX+textWidth(caption))
	width := right + padding
	titleW := textWidth(title)
	width = max(width, padding+titleW+padding)
	height := plot.Max.Y + captionGap + padding

	titleX := plot.Min.X + (imgW-titleW)/2
	if titleX < padding {
		titleX = padding
	}
	return layout{
		canvas: image.Rect(0, 0, width, height),
		title:  image.Pt(titleX, padding+face.Ascent),
		plot:   plot,
		bar:    bar,
	}
}

// Plot renders f as a false-color figure with a title and a labelled colorbar.
// The color scale spans the field's minimum to maximum.
func Plot(f *field.Field, opts Options) (*image.NRGBA, error) {
	if f == nil || len(f.Data) == 0 {
		return nil, errors.New("field is empty")
	}
	if opts.Scale <= 0 {
		return nil, fmt.Errorf("scale must be positive, got %d", opts.Scale)
	}
	colors, err := newLUT(opts.Colormap)
	if err != nil {
		return nil, err
	}

	vmin, vmax := f.MinMax()
	img := fieldImage(f, colors, vmin, vmax, opts)

	ticks := tickValues(vmin, vmax)
	labelW := 0
	for _, v := range ticks {
		labelW = max(labelW, textWidth(formatTick(v)))
	}

	b := img.Bounds()
	lay := newLayout(b.Dx(), b.Dy(), opts.Title, labelW)

	canvas := image.NewNRGBA(lay.canvas)
	draw.Draw(canvas, canvas.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	gift.New().DrawAt(canvas, img, lay.plot.Min, gift.CopyOperator)
	gift.New().DrawAt(canvas, colorbar(colors, lay.bar.Dy()), lay.bar.Min, gift.CopyOperator)
	outline(canvas, lay.plot)
	outline(canvas, lay.bar)

	for i, v := range ticks {
		y := tickY(lay.bar, i)
		for x := lay.bar.Max.X; x < lay.bar.Max.X+tickLength; x++ {
			canvas.SetNRGBA(x, y, textColor)
		}
		drawText(canvas, formatTick(v), lay.bar.Max.X+tickLength+labelGap, y+face.Ascent/2)
	}
	drawText(canvas, caption, lay.bar.Min.X, lay.bar.Max.Y+captionGap-4)

	if opts.Title != "" {
		drawText(canvas, opts.Title, lay.title.X, lay.title.Y)
	}

	return canvas, nil
}

// fieldImage maps samples to colors, one pixel per sample, then applies the
// origin flip and magnification.
func fieldImage(f *field.Field, colors lut, vmin, vmax float64, opts Options) *image.NRGBA {
	src := image.NewNRGBA(image.Rect(0, 0, f.Cols, f.Rows))
	span := vmax - vmin
	for r := 0; r < f.Rows; r++ {
		for c := 0; c < f.Cols; c++ {
			t := 0.0
			if span > 0 {
				t = (f.At(r, c) - vmin) / span
			}
			src.SetNRGBA(c, r, colors.at(t))
		}
	}

	var filters []gift.Filter
	if opts.OriginLower {
		filters = append(filters, gift.FlipVertical())
	}
	if opts.Scale > 1 {
		filters = append(filters, gift.Resize(f.Cols*opts.Scale, f.Rows*opts.Scale, gift.NearestNeighborResampling))
	}
	if len(filters) == 0 {
		return src
	}

	g := gift.New(filters...)
	dst := image.NewNRGBA(g.Bounds(src.Bounds()))
	g.Draw(dst, src)
	return dst
}

// colorbar draws the colormap as a vertical strip, high values on top.
func colorbar(colors lut, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, barWidth, height))
	for y := 0; y < height; y++ {
		t := 1.0
		if height > 1 {
			t = 1 - float64(y)/float64(height-1)
		}
		c := colors.at(t)
		for x := 0; x < barWidth; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func tickValues(vmin, vmax float64) []float64 {
	ticks := make([]float64, numTicks)
	for i := range ticks {
		ticks[i] = vmin + (vmax-vmin)*float64(i)/float64(numTicks-1)
	}
	return ticks
}

// tickY returns the row of tick i; tick 0 (vmin) sits at the bottom.
func tickY(bar image.Rectangle, i int) int {
	h := bar.Dy() - 1
	return bar.Max.Y - 1 - int(math.Round(float64(h)*float64(i)/float64(numTicks-1)))
}

func formatTick(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func outline(dst *image.NRGBA, r image.Rectangle) {
	r = r.Inset(-1)
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.SetNRGBA(x, r.Min.Y, textColor)
		dst.SetNRGBA(x, r.Max.Y-1, textColor)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.SetNRGBA(r.Min.X, y, textColor)
		dst.SetNRGBA(r.Max.X-1, y, textColor)
	}
}

func drawText(dst draw.Image, s string, x, y int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(textColor),
		Face: face,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(s)
}

func textWidth(s string) int {
	return font.MeasureString(face, s).Ceil()
}
