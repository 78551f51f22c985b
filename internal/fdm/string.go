// Package fdm integrates the string with a finite-difference scheme. It is an
// independent reference for the modal model, not a replacement for it.
package fdm

import (
	"errors"
	"fmt"
	"math"

	"github.com/san-kum/stringsim/internal/strmode"
)

// ErrUnstable indicates the integration diverged, usually because dt is
// above the CFL limit for the chosen integrator.
var ErrUnstable = errors.New("fdm: integration unstable (state diverged)")

// State is [y_0..y_{N-1}, v_0..v_{N-1}].
type State []float64

func (s State) Clone() State {
	c := make(State, len(s))
	copy(c, s)
	return c
}

func (s State) IsValid() bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type System interface {
	Derive(x State, t float64) State
	StateDim() int
}

type Integrator interface {
	Step(sys System, x State, t, dt float64) State
}

// String is the semi-discrete wave equation y_tt = c²·y_xx - γ·y_t on N
// nodes with both ends clamped.
type String struct {
	n                int
	length, dx       float64
	tension, density float64
	c2, viscous      float64
}

// NewString discretises p on n nodes. viscous is the velocity damping rate
// γ in 1/s; a mode then decays as exp(-γt/2).
func NewString(p strmode.Params, n int, viscous float64) *String {
	if n < 3 {
		n = 3
	}
	return &String{
		n:       n,
		length:  p.Length(),
		dx:      p.Length() / float64(n-1),
		tension: p.Tension(),
		density: p.LinearDensity(),
		c2:      p.WaveSpeed() * p.WaveSpeed(),
		viscous: viscous,
	}
}

// MatchDamping returns the viscous rate that decays the fundamental as fast
// as the modal model does.
func MatchDamping(p strmode.Params) float64 {
	return 2 * p.Damping() * p.AngularFrequency(1)
}

func (s *String) Nodes() int       { return s.n }
func (s *String) StateDim() int    { return 2 * s.n }
func (s *String) Spacing() float64 { return s.dx }

// StableDt is the CFL limit dx/c.
func (s *String) StableDt() float64 { return s.dx / math.Sqrt(s.c2) }

func (s *String) Derive(x State, _ float64) State {
	n := s.n
	dx := make(State, 2*n)
	if len(x) < 2*n {
		return dx
	}
	h2 := s.dx * s.dx
	for i := 1; i < n-1; i++ {
		dx[i] = x[n+i]
		dx[n+i] = s.c2*(x[i-1]-2*x[i]+x[i+1])/h2 - s.viscous*x[n+i]
	}
	return dx
}

// Initial places shape at rest. The shape must have one value per node.
func (s *String) Initial(shape strmode.Shape) (State, error) {
	if len(shape) != s.n {
		return nil, fmt.Errorf("%w: shape has %d samples, solver has %d nodes", strmode.ErrInvalidParameter, len(shape), s.n)
	}
	x := make(State, 2*s.n)
	copy(x, shape)
	x[0], x[s.n-1] = 0, 0
	return x, nil
}

// Displacement returns the node positions part of x.
func (s *String) Displacement(x State) []float64 {
	out := make([]float64, s.n)
	copy(out, x[:s.n])
	return out
}

// Energy is kinetic plus stretching energy of the discrete string.
func (s *String) Energy(x State) float64 {
	n, ke, pe := s.n, 0.0, 0.0
	if len(x) < 2*n {
		return 0
	}
	for i := 0; i < n; i++ {
		v := x[n+i]
		ke += 0.5 * s.density * v * v * s.dx
		if i < n-1 {
			slope := (x[i+1] - x[i]) / s.dx
			pe += 0.5 * s.tension * slope * slope * s.dx
		}
	}
	return ke + pe
}

// Simulate steps x from t=0 to until with a fixed dt and returns the final
// state.
func Simulate(sys System, integ Integrator, x State, dt, until float64) (State, error) {
	if dt <= 0 || until < 0 {
		return nil, fmt.Errorf("%w: dt=%g until=%g", strmode.ErrInvalidParameter, dt, until)
	}
	steps := int(until/dt + 0.5)
	t := 0.0
	for i := 0; i < steps; i++ {
		x = integ.Step(sys, x, t, dt)
		t += dt
		if !x.IsValid() {
			return x, fmt.Errorf("%w at t=%.6f", ErrUnstable, t)
		}
	}
	return x, nil
}
