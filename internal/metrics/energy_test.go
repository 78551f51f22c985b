package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/stringsim/internal/sim"
	"github.com/san-kum/stringsim/internal/strmode"
)

func TestEnergyDecay(t *testing.T) {
	m := NewEnergyDecay()
	if m.Value() != 0 {
		t.Error("expected zero before any sample")
	}

	m.Observe(sim.Sample{Energy: 4})
	m.Observe(sim.Sample{Energy: 2})
	m.Observe(sim.Sample{Energy: 1})
	if math.Abs(m.Value()-0.25) > 1e-12 {
		t.Errorf("expected ratio 0.25, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestDecayTime(t *testing.T) {
	m := NewDecayTime()
	m.Observe(sim.Sample{Time: 0, Energy: 1})
	m.Observe(sim.Sample{Time: 1, Energy: 1e-3})
	if m.Value() != -1 {
		t.Errorf("expected -1 before a 60 dB drop, got %v", m.Value())
	}
	m.Observe(sim.Sample{Time: 2, Energy: 1e-6})
	m.Observe(sim.Sample{Time: 3, Energy: 1e-9})
	if m.Value() != 2 {
		t.Errorf("expected crossing at t=2, got %v", m.Value())
	}
}

func TestPeakAndRMS(t *testing.T) {
	peak := NewPeakDisplacement()
	rms := NewPickupRMS()
	for _, s := range []sim.Sample{{Probe: 0.1, Pickup: 3}, {Probe: -0.3, Pickup: -4}, {Probe: 0.2, Pickup: 0}} {
		peak.Observe(s)
		rms.Observe(s)
	}
	if peak.Value() != 0.3 {
		t.Errorf("peak = %v", peak.Value())
	}
	if want := math.Sqrt(25.0 / 3); math.Abs(rms.Value()-want) > 1e-12 {
		t.Errorf("rms = %v, want %v", rms.Value(), want)
	}

	sp := NewStringPeak()
	sp.Observe(sim.Sample{Probe: 0.5, Peak: 0.2})
	sp.Observe(sim.Sample{Peak: 0.4})
	if sp.Value() != 0.4 {
		t.Errorf("string peak = %v", sp.Value())
	}
	sp.Reset()
	if sp.Value() != 0 {
		t.Error("reset should clear the peak")
	}
}

func TestDefaultsOnRun(t *testing.T) {
	p, err := strmode.NewParams(0.66, 1000, 0.01, 15, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	g := strmode.NewGrid(p, 200)
	shape, _ := strmode.PluckShape(p, g, 0.2*p.Length(), 0.05)

	s := sim.New(p, g)
	for _, m := range Defaults() {
		s.AddMetric(m)
	}
	// The fundamental alone loses 60 dB by t = ln(1e6)/(2·d·ω_1), about 0.46 s.
	res, err := s.Run(context.Background(), shape, sim.Config{Dt: 1e-3, Duration: 1, Probe: 0.2 * p.Length(), Pickup: 0.1, Ceiling: 10, TrackPeak: true})
	if err != nil {
		t.Fatal(err)
	}

	if got := res.Metrics["string_peak"]; math.Abs(got-0.05) > 0.005 {
		t.Errorf("string_peak = %v", got)
	}
	if got := res.Metrics["energy_ratio"]; got <= 0 || got >= 1 {
		t.Errorf("energy_ratio = %v", got)
	}
	if got := res.Metrics["t60"]; got <= 0 || got > 0.5 {
		t.Errorf("t60 = %v", got)
	}
	if got := res.Metrics["peak_displacement"]; math.Abs(got-0.05) > 0.005 {
		t.Errorf("peak_displacement = %v", got)
	}
	if res.Metrics["pickup_rms"] <= 0 {
		t.Error("pickup_rms should be positive")
	}
}
