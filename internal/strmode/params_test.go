package strmode

import (
	"errors"
	"math"
	"testing"
)

func TestNewParams_Invalid(t *testing.T) {
	tests := []struct {
		name                     string
		length, tension, density float64
		modes                    int
		damping                  float64
	}{
		{"zero length", 0, 1000, 0.01, 15, 0.01},
		{"negative length", -1, 1000, 0.01, 15, 0.01},
		{"zero tension", 0.66, 0, 0.01, 15, 0.01},
		{"negative density", 0.66, 1000, -0.01, 15, 0.01},
		{"no modes", 0.66, 1000, 0.01, 0, 0.01},
		{"negative damping", 0.66, 1000, 0.01, 15, -0.1},
		{"NaN length", math.NaN(), 1000, 0.01, 15, 0.01},
		{"Inf tension", 0.66, math.Inf(1), 0.01, 15, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewParams(tt.length, tt.tension, tt.density, tt.modes, tt.damping)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
			var pe *ParamError
			if !errors.As(err, &pe) {
				t.Fatalf("expected *ParamError, got %T", err)
			}
		})
	}
}

func TestWaveSpeed(t *testing.T) {
	p := mustParams(t, 0.66, 1000, 0.01, 15, 0.01)
	if got := p.WaveSpeed(); math.Abs(got-math.Sqrt(1e5)) > 1e-9 {
		t.Errorf("WaveSpeed() = %v, want %v", got, math.Sqrt(1e5))
	}
}

func TestFrequencyOrdering(t *testing.T) {
	p := mustParams(t, 0.66, 1000, 0.01, 15, 0.01)
	f1 := p.Fundamental()
	want := p.WaveSpeed() / (2 * 0.66)
	if math.Abs(f1-want) > 1e-9 {
		t.Fatalf("f1 = %v, want %v", f1, want)
	}

	prev := 0.0
	for n, f := range p.Frequencies() {
		if f <= prev {
			t.Errorf("f_%d = %v not above f_%d = %v", n+1, f, n, prev)
		}
		if math.Abs(f-float64(n+1)*f1) > 1e-9*f {
			t.Errorf("f_%d = %v, want %v", n+1, f, float64(n+1)*f1)
		}
		if w := p.AngularFrequency(n + 1); math.Abs(w-2*math.Pi*f) > 1e-9*w {
			t.Errorf("ω_%d = %v, want %v", n+1, w, 2*math.Pi*f)
		}
		prev = f
	}
}

func TestWithRevalidates(t *testing.T) {
	p := mustParams(t, 0.66, 1000, 0.01, 15, 0.01)
	if _, err := p.WithDamping(-1); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("WithDamping(-1) error = %v", err)
	}
	if _, err := p.WithModes(0); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("WithModes(0) error = %v", err)
	}
	q, err := p.WithTension(4000)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(q.Fundamental()-2*p.Fundamental()) > 1e-9 {
		t.Errorf("quadrupling tension should double f1: %v vs %v", q.Fundamental(), p.Fundamental())
	}
}

func TestGrid(t *testing.T) {
	p := mustParams(t, 0.66, 1000, 0.01, 15, 0.01)
	g := NewGrid(p, DefaultSamples)
	if g.Len() != DefaultSamples {
		t.Fatalf("Len() = %d", g.Len())
	}
	xs := g.Positions()
	if xs[0] != 0 || xs[len(xs)-1] != 0.66 {
		t.Errorf("ends = %v, %v", xs[0], xs[len(xs)-1])
	}
	if math.Abs(g.Spacing()-0.66/float64(DefaultSamples-1)) > 1e-15 {
		t.Errorf("Spacing() = %v", g.Spacing())
	}
}

func TestGridMustMatchString(t *testing.T) {
	p := mustParams(t, 0.66, 1000, 0.01, 15, 0.01)
	short := mustParams(t, 0.33, 1000, 0.01, 15, 0.01)
	foreign := NewGrid(short, 100)
	shape, err := PluckShape(short, foreign, 0.1, 0.01)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		run  func() error
	}{
		{"pluck on empty grid", func() error { _, err := PluckShape(p, Grid{}, 0.2, 0.01); return err }},
		{"mode on empty grid", func() error { _, err := ModeShape(p, Grid{}, 1, 0.01); return err }},
		{"decompose on empty grid", func() error { _, err := Decompose(p, Grid{}, Shape{}); return err }},
		{"pluck on foreign grid", func() error { _, err := PluckShape(p, foreign, 0.2, 0.01); return err }},
		{"mode on foreign grid", func() error { _, err := ModeShape(p, foreign, 2, 0.01); return err }},
		{"decompose on foreign grid", func() error { _, err := Decompose(p, foreign, shape); return err }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
		})
	}
}

func mustParams(t testing.TB, length, tension, density float64, modes int, damping float64) Params {
	t.Helper()
	p, err := NewParams(length, tension, density, modes, damping)
	if err != nil {
		t.Fatalf("NewParams: %v", err)
	}
	return p
}
