package sim

import (
	"errors"
	"fmt"
)

// DefaultCeiling bounds how long a pluck rings before the player stops itself.
const DefaultCeiling = 10.0

// MinPluck is the smallest peak displacement that counts as a real pluck.
const MinPluck = 1e-9

var (
	// ErrNotPlucked indicates playback was requested with no amplitudes set.
	ErrNotPlucked = errors.New("sim: nothing plucked")

	// ErrInvalidConfig indicates a run configuration outside its valid range.
	ErrInvalidConfig = errors.New("sim: invalid run config")
)

type Status int

const (
	Idle Status = iota
	Running
)

func (s Status) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Sample is one recorded step of a run.
type Sample struct {
	Time   float64
	Probe  float64 // displacement at the probe position
	Pickup float64 // velocity at the pickup position
	Energy float64
	Peak   float64 // largest |y| along the string, when tracked
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Sample)
}

type Config struct {
	Dt        float64
	Duration  float64
	Probe     float64
	Pickup    float64
	Ceiling   float64
	TrackPeak bool
}

func DefaultConfig() Config {
	return Config{
		Dt:       5e-5,
		Duration: 1.0,
		Ceiling:  DefaultCeiling,
	}
}

type Result struct {
	Samples    []Sample
	Metrics    map[string]float64
	StepsTaken int
	Stopped    bool // the player reached its ceiling before Duration
}

// Times returns the sample times.
func (r *Result) Times() []float64 {
	return r.column(func(s Sample) float64 { return s.Time })
}

// PickupSignal returns the velocity trace at the pickup.
func (r *Result) PickupSignal() []float64 {
	return r.column(func(s Sample) float64 { return s.Pickup })
}

// ProbeSignal returns the displacement trace at the probe.
func (r *Result) ProbeSignal() []float64 {
	return r.column(func(s Sample) float64 { return s.Probe })
}

func (r *Result) column(f func(Sample) float64) []float64 {
	out := make([]float64, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = f(s)
	}
	return out
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.6f): %s", e.Step, e.Time, e.Message)
}
