package metrics

import (
	"math"

	"github.com/san-kum/stringsim/internal/sim"
)

// PeakDisplacement tracks the largest |y| seen at the probe.
type PeakDisplacement struct {
	peak float64
}

func NewPeakDisplacement() *PeakDisplacement { return &PeakDisplacement{} }

func (p *PeakDisplacement) Name() string { return "peak_displacement" }

func (p *PeakDisplacement) Observe(s sim.Sample) {
	p.peak = math.Max(p.peak, math.Abs(s.Probe))
}

func (p *PeakDisplacement) Value() float64 { return p.peak }
func (p *PeakDisplacement) Reset()         { p.peak = 0 }

// StringPeak is the largest |y| anywhere along the string. It needs runs
// with TrackPeak set and stays zero otherwise.
type StringPeak struct {
	peak float64
}

func NewStringPeak() *StringPeak { return &StringPeak{} }

func (p *StringPeak) Name() string { return "string_peak" }

func (p *StringPeak) Observe(s sim.Sample) {
	p.peak = math.Max(p.peak, s.Peak)
}

func (p *StringPeak) Value() float64 { return p.peak }
func (p *StringPeak) Reset()         { p.peak = 0 }

// PickupRMS is the root mean square of the pickup velocity.
type PickupRMS struct {
	sumSq   float64
	samples int
}

func NewPickupRMS() *PickupRMS { return &PickupRMS{} }

func (r *PickupRMS) Name() string { return "pickup_rms" }

func (r *PickupRMS) Observe(s sim.Sample) {
	r.sumSq += s.Pickup * s.Pickup
	r.samples++
}

func (r *PickupRMS) Value() float64 {
	if r.samples == 0 {
		return 0
	}
	return math.Sqrt(r.sumSq / float64(r.samples))
}

func (r *PickupRMS) Reset() {
	r.sumSq = 0
	r.samples = 0
}

// Defaults is the metric set attached to every CLI run.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewPeakDisplacement(),
		NewStringPeak(),
		NewPickupRMS(),
		NewEnergyDecay(),
		NewDecayTime(),
	}
}
