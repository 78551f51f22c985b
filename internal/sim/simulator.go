package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/stringsim/internal/strmode"
)

// MaxSteps bounds Duration/Dt so the step count stays an exact int.
const MaxSteps = 1 << 53

// maxPrealloc caps the sample buffer reserved up front.
const maxPrealloc = 1 << 20

// Simulator drives a Player at a fixed step and records what a probe and a
// pickup see along the way.
type Simulator struct {
	params    strmode.Params
	grid      strmode.Grid
	metrics   []Metric
	observers []Observer
}

func New(p strmode.Params, g strmode.Grid) *Simulator {
	return &Simulator{
		params:    p,
		grid:      g,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

// Run plucks shape and steps the clock until Duration elapses, the player
// hits its ceiling or ctx is done.
func (s *Simulator) Run(ctx context.Context, shape strmode.Shape, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	pl := NewPlayer(s.params, s.grid)
	pl.SetCeiling(cfg.Ceiling)
	if err := pl.Pluck(shape); err != nil {
		return nil, err
	}

	horizon := cfg.Duration
	if cfg.Ceiling > 0 {
		horizon = math.Min(horizon, cfg.Ceiling)
	}
	steps := int(cfg.Duration/cfg.Dt + 0.5)
	result := &Result{
		Samples: make([]Sample, 0, min(int(horizon/cfg.Dt+0.5), maxPrealloc)+1),
		Metrics: make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	var frame []float64
	if cfg.TrackPeak {
		frame = make([]float64, s.grid.Len())
	}

	record := func() Sample {
		smp := Sample{
			Time:   pl.Elapsed(),
			Probe:  pl.DisplacementAt(cfg.Probe),
			Pickup: pl.PickupVelocity(cfg.Pickup),
			Energy: pl.Energy(),
		}
		if frame != nil {
			frame = pl.Frame(frame)
			for _, y := range frame {
				smp.Peak = math.Max(smp.Peak, math.Abs(y))
			}
		}
		for _, m := range s.metrics {
			m.Observe(smp)
		}
		for _, obs := range s.observers {
			obs.OnStep(smp)
		}
		result.Samples = append(result.Samples, smp)
		return smp
	}

	record()
	for i := 0; i < steps && pl.Status() == Running; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		pl.Advance(cfg.Dt)
		smp := record()
		result.StepsTaken++

		if math.IsNaN(smp.Probe) || math.IsInf(smp.Probe, 0) {
			return result, SimError{Time: smp.Time, Step: i, Message: "invalid displacement (NaN/Inf)"}
		}
	}
	result.Stopped = cfg.Ceiling > 0 && pl.Elapsed() >= cfg.Ceiling && result.StepsTaken < steps

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if !(cfg.Dt > 0) || math.IsInf(cfg.Dt, 0) {
		return fmt.Errorf("%w: dt must be positive and finite, got %g", ErrInvalidConfig, cfg.Dt)
	}
	if !(cfg.Duration > 0) || math.IsInf(cfg.Duration, 0) {
		return fmt.Errorf("%w: duration must be positive and finite, got %g", ErrInvalidConfig, cfg.Duration)
	}
	if math.IsNaN(cfg.Ceiling) {
		return fmt.Errorf("%w: ceiling is NaN", ErrInvalidConfig)
	}
	if cfg.Duration/cfg.Dt > MaxSteps {
		return fmt.Errorf("%w: %g steps exceeds the limit of %g", ErrInvalidConfig, cfg.Duration/cfg.Dt, float64(MaxSteps))
	}
	if cfg.Probe < 0 || cfg.Probe > s.params.Length() {
		return fmt.Errorf("%w: probe %g outside [0, %g]", ErrInvalidConfig, cfg.Probe, s.params.Length())
	}
	if cfg.Pickup < 0 || cfg.Pickup > s.params.Length() {
		return fmt.Errorf("%w: pickup %g outside [0, %g]", ErrInvalidConfig, cfg.Pickup, s.params.Length())
	}
	return nil
}
