package config

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/stringsim/internal/sim"
	"github.com/san-kum/stringsim/internal/strmode"
)

const (
	DefaultLength        = 0.66
	DefaultTension       = 1000.0
	DefaultLinearDensity = 0.01
	DefaultModes         = 15
	DefaultDamping       = 0.01
	DefaultPluckRatio    = 0.2
	DefaultPluckHeight   = 0.05
	DefaultPickupRatio   = 0.1
	DefaultDt            = 5e-5
	DefaultDuration      = 1.0
	DefaultCeiling       = sim.DefaultCeiling
	DefaultFrameRate     = 30
	DefaultSampleRate    = 44100
	DefaultTheme         = "cyberpunk"
)

type Config struct {
	String StringConfig `yaml:"string"`
	Pluck  PluckConfig  `yaml:"pluck"`
	Pickup PickupConfig `yaml:"pickup"`
	Run    RunConfig    `yaml:"run"`
	View   ViewConfig   `yaml:"view"`
}

type StringConfig struct {
	Length        float64 `yaml:"length"`
	Tension       float64 `yaml:"tension"`
	LinearDensity float64 `yaml:"linear_density"`
	Modes         int     `yaml:"modes"`
	Damping       float64 `yaml:"damping"`
	Samples       int     `yaml:"samples"`
}

// Positions are fractions of the string length so that presets survive a
// change of scale length.
type PluckConfig struct {
	Position float64 `yaml:"position"`
	Height   float64 `yaml:"height"`
	// Harmonic, when set, plucks a pure mode instead of a triangle.
	Harmonic int `yaml:"harmonic"`
}

type PickupConfig struct {
	Position float64 `yaml:"position"`
}

type RunConfig struct {
	Dt         float64 `yaml:"dt"`
	Duration   float64 `yaml:"duration"`
	Ceiling    float64 `yaml:"ceiling"`
	SampleRate int     `yaml:"sample_rate"`
}

type ViewConfig struct {
	FrameRate int    `yaml:"fps"`
	Theme     string `yaml:"theme"`
}

func DefaultConfig() *Config {
	return &Config{
		String: StringConfig{
			Length:        DefaultLength,
			Tension:       DefaultTension,
			LinearDensity: DefaultLinearDensity,
			Modes:         DefaultModes,
			Damping:       DefaultDamping,
			Samples:       strmode.DefaultSamples,
		},
		Pluck: PluckConfig{
			Position: DefaultPluckRatio,
			Height:   DefaultPluckHeight,
		},
		Pickup: PickupConfig{Position: DefaultPickupRatio},
		Run: RunConfig{
			Dt:         DefaultDt,
			Duration:   DefaultDuration,
			Ceiling:    DefaultCeiling,
			SampleRate: DefaultSampleRate,
		},
		View: ViewConfig{
			FrameRate: DefaultFrameRate,
			Theme:     DefaultTheme,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks everything the model itself does not.
func (c *Config) Validate() error {
	if _, err := c.Params(); err != nil {
		return err
	}
	if c.Pluck.Harmonic < 0 {
		return fmt.Errorf("%w: pluck.harmonic must be >= 0", strmode.ErrInvalidParameter)
	}
	if c.Pluck.Harmonic == 0 && !(c.Pluck.Position > 0 && c.Pluck.Position < 1) {
		return fmt.Errorf("%w: pluck.position must lie in (0, 1), got %g", strmode.ErrInvalidParameter, c.Pluck.Position)
	}
	if !(c.Pickup.Position >= 0 && c.Pickup.Position <= 1) {
		return fmt.Errorf("%w: pickup.position must lie in [0, 1], got %g", strmode.ErrInvalidParameter, c.Pickup.Position)
	}
	if !positiveFinite(c.Run.Dt) || !positiveFinite(c.Run.Duration) {
		return fmt.Errorf("%w: run.dt and run.duration must be positive and finite", sim.ErrInvalidConfig)
	}
	if math.IsNaN(c.Run.Ceiling) || math.IsInf(c.Run.Ceiling, 0) {
		return fmt.Errorf("%w: run.ceiling must be finite", sim.ErrInvalidConfig)
	}
	if c.Run.Duration/c.Run.Dt > sim.MaxSteps {
		return fmt.Errorf("%w: run.duration/run.dt is too many steps", sim.ErrInvalidConfig)
	}
	if c.Run.SampleRate <= 0 {
		return fmt.Errorf("%w: run.sample_rate must be positive", sim.ErrInvalidConfig)
	}
	if c.String.Samples < 2 {
		return fmt.Errorf("%w: string.samples must be at least 2", strmode.ErrInvalidParameter)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func (c *Config) Params() (strmode.Params, error) {
	s := c.String
	return strmode.NewParams(s.Length, s.Tension, s.LinearDensity, s.Modes, s.Damping)
}

func (c *Config) Grid(p strmode.Params) strmode.Grid {
	return strmode.NewGrid(p, c.String.Samples)
}

// Shape builds the initial shape the config describes.
func (c *Config) Shape(p strmode.Params, g strmode.Grid) (strmode.Shape, error) {
	if c.Pluck.Harmonic > 0 {
		return strmode.ModeShape(p, g, c.Pluck.Harmonic, c.Pluck.Height)
	}
	return strmode.PluckShape(p, g, c.Pluck.Position*p.Length(), c.Pluck.Height)
}

// SimConfig converts the run section to absolute positions.
func (c *Config) SimConfig(p strmode.Params) sim.Config {
	probe := c.Pluck.Position
	if c.Pluck.Harmonic > 0 {
		probe = 0.5 / float64(c.Pluck.Harmonic)
	}
	return sim.Config{
		Dt:        c.Run.Dt,
		Duration:  c.Run.Duration,
		Probe:     probe * p.Length(),
		Pickup:    c.Pickup.Position * p.Length(),
		Ceiling:   c.Run.Ceiling,
		TrackPeak: true,
	}
}
