package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MeKo-Tech/cirrussky/internal/cirrus"
	"github.com/MeKo-Tech/cirrussky/internal/fbm"
	"github.com/MeKo-Tech/cirrussky/internal/render"
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Simulate and render a cirrus map",
	Long: `Generate an fBm base field, smooth it with a Gaussian beam, apply a log-normal
transform and additive Gaussian noise, then write a false-color PNG.

Note: --beam-fwhm is used directly as the Gaussian sigma in samples.`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	addFieldFlags(simulateCmd, "simulate", "512x512")
	simulateCmd.Flags().Float64("beam-fwhm", 10, "Telescope beam width in samples (used as the Gaussian sigma)")
	simulateCmd.Flags().Float64("noise-level", 0.05, "Standard deviation of the additive observational noise")
	addRenderFlags(simulateCmd, "simulate", "cirrus.png", render.DefaultOptions().Title)

	bindFlags(simulateCmd, []flagBinding{
		{"simulate.beam_fwhm", "beam-fwhm"},
		{"simulate.noise_level", "noise-level"},
	})
}

func runSimulate(cmd *cobra.Command, args []string) error {
	if logger == nil {
		initLogging()
	}

	size, err := parseSize(viper.GetString("simulate.size"))
	if err != nil {
		return fmt.Errorf("invalid size: %w", err)
	}
	hurst := viper.GetFloat64("simulate.hurst")
	method := viper.GetString("simulate.method")
	output := viper.GetString("simulate.output")
	opts := renderOptions("simulate")

	base, err := fbm.NewGenerator(method, hurst)
	if err != nil {
		return err
	}
	params := cirrus.Params{
		Hurst:      hurst,
		BeamFWHM:   viper.GetFloat64("simulate.beam_fwhm"),
		NoiseLevel: viper.GetFloat64("simulate.noise_level"),
		Base:       base,
	}

	rng, seed := newRNG(viper.GetInt64("simulate.seed"))

	logger.Info("Starting cirrus simulation",
		"size", size.String(),
		"hurst", params.Hurst,
		"beam_fwhm", params.BeamFWHM,
		"noise_level", params.NoiseLevel,
		"method", method,
		"seed", seed,
	)

	f, err := cirrus.NewSimulator(logger).Simulate(rng, size, params)
	if err != nil {
		return fmt.Errorf("failed to simulate cirrus: %w", err)
	}

	if err := render.WriteFile(output, f, opts); err != nil {
		return err
	}

	st := f.Stats()
	logger.Info("Cirrus map written",
		"path", output,
		"min", st.Min,
		"max", st.Max,
		"mean", st.Mean,
		"stddev", st.StdDev,
		"skew", st.Skew,
	)
	return nil
}
