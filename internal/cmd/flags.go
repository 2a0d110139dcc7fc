package cmd

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/cirrussky/internal/field"
	"github.com/MeKo-Tech/cirrussky/internal/render"
)

type flagBinding struct {
	key  string
	flag string
}

func bindFlags(cmd *cobra.Command, bindings []flagBinding) {
	for _, bf := range bindings {
		if err := viper.BindPFlag(bf.key, cmd.Flags().Lookup(bf.flag)); err != nil {
			panic(fmt.Sprintf("failed to bind flag %s: %v", bf.flag, err))
		}
	}
}

// addFieldFlags registers the flags shared by every command that synthesizes a field.
func addFieldFlags(cmd *cobra.Command, prefix string, defaultSize string) {
	cmd.Flags().String("size", defaultSize, "Map size in samples: NYxNX (e.g. \"512x256\") or N for a square map")
	cmd.Flags().Float64("hurst", 0.7, "Hurst exponent controlling spatial correlation (typically 0..1)")
	cmd.Flags().String("method", "spectral", "Base field method (spectral, perlin)")
	cmd.Flags().Int64("seed", 0, "Random seed (0 picks a time-based seed, which is logged)")

	bindFlags(cmd, []flagBinding{
		{prefix + ".size", "size"},
		{prefix + ".hurst", "hurst"},
		{prefix + ".method", "method"},
		{prefix + ".seed", "seed"},
	})
}

// addRenderFlags registers the flags controlling the output figure.
func addRenderFlags(cmd *cobra.Command, prefix string, defaultOutput, defaultTitle string) {
	defaults := render.DefaultOptions()
	cmd.Flags().StringP("output", "o", defaultOutput, "Output PNG path")
	cmd.Flags().String("title", defaultTitle, "Figure title (empty for none)")
	cmd.Flags().String("colormap", defaults.Colormap, "Colormap ("+strings.Join(render.Colormaps(), ", ")+")")
	cmd.Flags().Int("scale", defaults.Scale, "Pixel magnification per sample")
	cmd.Flags().Bool("origin-lower", defaults.OriginLower, "Place row 0 at the bottom of the image")
	cmd.Flags().String("png-compression", defaults.Compression, "PNG compression (default, speed, best, none)")

	bindFlags(cmd, []flagBinding{
		{prefix + ".output", "output"},
		{prefix + ".title", "title"},
		{prefix + ".colormap", "colormap"},
		{prefix + ".scale", "scale"},
		{prefix + ".origin_lower", "origin-lower"},
		{prefix + ".png_compression", "png-compression"},
	})
}

func renderOptions(prefix string) render.Options {
	return render.Options{
		Title:       viper.GetString(prefix + ".title"),
		Colormap:    viper.GetString(prefix + ".colormap"),
		Scale:       viper.GetInt(prefix + ".scale"),
		OriginLower: viper.GetBool(prefix + ".origin_lower"),
		Compression: viper.GetString(prefix + ".png_compression"),
	}
}

// parseSize parses "NYxNX" or "N" into a field size.
func parseSize(s string) (field.Size, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) > 2 {
		return field.Size{}, fmt.Errorf("expected NYxNX or N, got %q", s)
	}

	dims := make([]int, len(parts))
	for i, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return field.Size{}, fmt.Errorf("invalid dimension at position %d: %w", i, err)
		}
		dims[i] = v
	}

	size := field.Size{Rows: dims[0], Cols: dims[0]}
	if len(dims) == 2 {
		size.Cols = dims[1]
	}
	if err := size.Validate(); err != nil {
		return field.Size{}, err
	}
	return size, nil
}

// newRNG returns a generator for seed, substituting a time-based seed for 0.
func newRNG(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}
