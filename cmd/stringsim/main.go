package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/san-kum/stringsim/internal/config"
)

var (
	dataDir    string
	configFile string
	preset     string
	debug      bool

	// string and pluck overrides, applied after preset and config file
	length        float64
	tension       float64
	linearDensity float64
	modes         int
	damping       float64
	samples       int
	pluckAt       float64
	height        float64
	harmonic      int
	pickupAt      float64
	dt            float64
	duration      float64
	ceiling       float64
)

// flagTargets maps each override flag onto the config field it replaces.
var flagTargets = []struct {
	name  string
	apply func(c *config.Config)
}{
	{"length", func(c *config.Config) { c.String.Length = length }},
	{"tension", func(c *config.Config) { c.String.Tension = tension }},
	{"density", func(c *config.Config) { c.String.LinearDensity = linearDensity }},
	{"modes", func(c *config.Config) { c.String.Modes = modes }},
	{"damping", func(c *config.Config) { c.String.Damping = damping }},
	{"samples", func(c *config.Config) { c.String.Samples = samples }},
	{"pluck", func(c *config.Config) { c.Pluck.Position = pluckAt }},
	{"height", func(c *config.Config) { c.Pluck.Height = height }},
	{"harmonic", func(c *config.Config) { c.Pluck.Harmonic = harmonic }},
	{"pickup", func(c *config.Config) { c.Pickup.Position = pickupAt }},
	{"dt", func(c *config.Config) { c.Run.Dt = dt }},
	{"time", func(c *config.Config) { c.Run.Duration = duration }},
	{"ceiling", func(c *config.Config) { c.Run.Ceiling = ceiling }},
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "stringsim",
		Short:         "normal-mode string vibration lab",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger(debug)
		},
		RunE: runLive,
	}

	addLiveFlags(rootCmd)

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".stringsim", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "preset as instrument/name, e.g. guitar/high-e")
	pf.BoolVar(&debug, "debug", false, "debug logging")

	def := config.DefaultConfig()
	pf.Float64Var(&length, "length", def.String.Length, "string length (m)")
	pf.Float64Var(&tension, "tension", def.String.Tension, "tension (N)")
	pf.Float64Var(&linearDensity, "density", def.String.LinearDensity, "linear density (kg/m)")
	pf.IntVar(&modes, "modes", def.String.Modes, "number of modes")
	pf.Float64Var(&damping, "damping", def.String.Damping, "damping coefficient")
	pf.IntVar(&samples, "samples", def.String.Samples, "spatial samples")
	pf.Float64Var(&pluckAt, "pluck", def.Pluck.Position, "pluck position as a fraction of length")
	pf.Float64Var(&height, "height", def.Pluck.Height, "pluck height (m)")
	pf.IntVar(&harmonic, "harmonic", 0, "pluck a pure mode instead of a triangle")
	pf.Float64Var(&pickupAt, "pickup", def.Pickup.Position, "pickup position as a fraction of length")
	pf.Float64Var(&dt, "dt", def.Run.Dt, "timestep (s)")
	pf.Float64Var(&duration, "time", def.Run.Duration, "duration (s)")
	pf.Float64Var(&ceiling, "ceiling", def.Run.Ceiling, "auto-stop after this much simulated time (s)")

	rootCmd.AddCommand(
		newModesCmd(),
		newRunCmd(),
		newSweepCmd(),
		newScenarioCmd(),
		newCompareCmd(),
		newListCmd(),
		newPlotCmd(),
		newSpectrumCmd(),
		newRenderCmd(),
		newSVGCmd(),
		newExportCSVCmd(),
		newExportJSONCmd(),
		newPresetsCmd(),
		newInitConfigCmd(),
		newLiveCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func setupLogger(debug bool) {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if debug {
		opts.Level = slog.LevelDebug
		opts.AddSource = true
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
}

// loadConfig resolves preset, then config file, then explicitly set flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		instrument, name, ok := strings.Cut(preset, "/")
		if !ok {
			return nil, fmt.Errorf("preset must be instrument/name, got %q", preset)
		}
		p := config.GetPreset(instrument, name)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(instrument))
		}
		cfg = p
		slog.Debug("preset loaded", "preset", preset)
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		slog.Debug("config loaded", "path", configFile)
	}

	for _, f := range flagTargets {
		if cmd.Flags().Changed(f.name) {
			f.apply(cfg)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
