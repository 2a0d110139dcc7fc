package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/cirrussky/internal/fbm"
	"github.com/MeKo-Tech/cirrussky/internal/render"
)

var fbmCmd = &cobra.Command{
	Use:   "fbm",
	Short: "Render a raw fractional Brownian motion field",
	Long:  "Generate a normalized fBm field without beam smoothing, skew or noise and write it as a false-color PNG.",
	RunE:  runFBM,
}

func init() {
	rootCmd.AddCommand(fbmCmd)

	addFieldFlags(fbmCmd, "fbm", "512x512")
	addRenderFlags(fbmCmd, "fbm", "fbm.png", "Fractional Brownian Motion")
}

func runFBM(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	size, err := parseSize(viper.GetString("fbm.size"))
	if err != nil {
		return fmt.Errorf("invalid size: %w", err)
	}
	hurst := viper.GetFloat64("fbm.hurst")
	method := viper.GetString("fbm.method")
	output := viper.GetString("fbm.output")

	gen, err := fbm.NewGenerator(method, hurst)
	if err != nil {
		return err
	}
	rng, seed := newRNG(viper.GetInt64("fbm.seed"))

	logger.Info("Generating fBm field", "size", size.String(), "hurst", hurst, "method", method, "seed", seed)

	f, err := gen.Generate(rng, size)
	if err != nil {
		return fmt.Errorf("failed to generate fbm: %w", err)
	}

	if err := render.WriteFile(output, f, renderOptions("fbm")); err != nil {
		return err
	}
	logger.Info("fBm field written", "path", output, "roughness", f.Roughness())
	return nil
}
