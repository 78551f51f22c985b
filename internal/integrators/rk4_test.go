package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/stringsim/internal/fdm"
)

// oscillator is y'' = -y packed as [y, v].
type oscillator struct{}

func (oscillator) Derive(x fdm.State, t float64) fdm.State {
	return fdm.State{x[1], -x[0]}
}

func (oscillator) StateDim() int { return 2 }

func integrate(integ fdm.Integrator, steps int, dt float64) fdm.State {
	x := fdm.State{1.0, 0.0}
	for i := 0; i < steps; i++ {
		x = integ.Step(oscillator{}, x, float64(i)*dt, dt)
	}
	return x
}

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name string
		tol  float64
	}{
		{"rk4", 1e-8},
		{"verlet", 1e-4},
		{"leapfrog", 1e-4},
		{"euler", 1e-1},
	}

	dt, steps := 0.01, 100
	wantX := math.Cos(float64(steps) * dt)
	wantV := -math.Sin(float64(steps) * dt)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			integ, err := ByName(tt.name)
			if err != nil {
				t.Fatal(err)
			}
			x := integrate(integ, steps, dt)
			if math.Abs(x[0]-wantX) > tt.tol {
				t.Errorf("position error too large: got %.8f, expected %.8f", x[0], wantX)
			}
			if math.Abs(x[1]-wantV) > tt.tol {
				t.Errorf("velocity error too large: got %.8f, expected %.8f", x[1], wantV)
			}
		})
	}
}

func TestSymplecticEnergy(t *testing.T) {
	for _, integ := range []fdm.Integrator{NewVerlet(), NewLeapfrog()} {
		x := integrate(integ, 100000, 0.05)
		e := 0.5 * (x[0]*x[0] + x[1]*x[1])
		if math.Abs(e-0.5) > 1e-3 {
			t.Errorf("%T: energy drifted to %v", integ, e)
		}
	}
}

func TestByName(t *testing.T) {
	if _, err := ByName("rk45"); err == nil {
		t.Error("expected error for unknown integrator")
	}
	names := Names()
	if len(names) != 4 || names[0] != "euler" {
		t.Errorf("Names() = %v", names)
	}
}
