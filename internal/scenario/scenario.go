// Package scenario runs scripted batches of plucks described in YAML.
package scenario

import (
	"context"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/stringsim/internal/config"
	"github.com/san-kum/stringsim/internal/metrics"
	"github.com/san-kum/stringsim/internal/sim"
	"github.com/san-kum/stringsim/internal/strmode"
)

type Scenario struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Steps       []Step `yaml:"steps"`
}

// Step is one pluck. Unset overrides keep the preset (or default) value.
type Step struct {
	Preset   string   `yaml:"preset"`
	Tension  *float64 `yaml:"tension"`
	Damping  *float64 `yaml:"damping"`
	Modes    *int     `yaml:"modes"`
	Pluck    *float64 `yaml:"pluck"`
	Height   *float64 `yaml:"height"`
	Harmonic *int     `yaml:"harmonic"`
	Pickup   *float64 `yaml:"pickup"`
	Duration float64  `yaml:"duration"`
	SaveAs   string   `yaml:"save_as"`
}

// StepResult is everything needed to store or report a finished step.
type StepResult struct {
	Step       Step
	Name       string
	Config     *config.Config
	Params     strmode.Params
	Amplitudes strmode.Amplitudes
	SimConfig  sim.Config
	Result     *sim.Result
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(sc.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", sc.Name)
	}
	return &sc, nil
}

// Config resolves the step against its preset.
func (s Step) Config() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if s.Preset != "" {
		instrument, name, ok := strings.Cut(s.Preset, "/")
		if !ok {
			return nil, fmt.Errorf("preset must be instrument/name, got %q", s.Preset)
		}
		if cfg = config.GetPreset(instrument, name); cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s", s.Preset)
		}
	}

	set(&cfg.String.Tension, s.Tension)
	set(&cfg.String.Damping, s.Damping)
	set(&cfg.String.Modes, s.Modes)
	set(&cfg.Pluck.Position, s.Pluck)
	set(&cfg.Pluck.Height, s.Height)
	set(&cfg.Pluck.Harmonic, s.Harmonic)
	set(&cfg.Pickup.Position, s.Pickup)
	if s.Duration > 0 {
		cfg.Run.Duration = s.Duration
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func set[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

// Run executes the steps in order and stops at the first failure, returning
// the steps that completed.
func Run(ctx context.Context, sc *Scenario) ([]StepResult, error) {
	results := make([]StepResult, 0, len(sc.Steps))

	for i, step := range sc.Steps {
		res, err := runStep(ctx, step)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}
		res.Name = step.SaveAs
		if res.Name == "" {
			res.Name = fmt.Sprintf("%s-%d", sc.Name, i+1)
		}
		results = append(results, res)
	}

	return results, nil
}

func runStep(ctx context.Context, step Step) (StepResult, error) {
	cfg, err := step.Config()
	if err != nil {
		return StepResult{}, err
	}
	p, err := cfg.Params()
	if err != nil {
		return StepResult{}, err
	}
	g := cfg.Grid(p)
	shape, err := cfg.Shape(p, g)
	if err != nil {
		return StepResult{}, err
	}
	amps, err := strmode.Decompose(p, g, shape)
	if err != nil {
		return StepResult{}, err
	}

	simCfg := cfg.SimConfig(p)
	s := sim.New(p, g)
	for _, m := range metrics.Defaults() {
		s.AddMetric(m)
	}
	result, err := s.Run(ctx, shape, simCfg)
	if err != nil {
		return StepResult{}, err
	}

	return StepResult{
		Step:       step,
		Config:     cfg,
		Params:     p,
		Amplitudes: amps,
		SimConfig:  simCfg,
		Result:     result,
	}, nil
}
