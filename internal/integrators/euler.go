package integrators

import "github.com/san-kum/stringsim/internal/fdm"

// Euler is explicit first order. It gains energy on undamped oscillators and
// is kept only for comparison.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(sys fdm.System, x fdm.State, t, dt float64) fdm.State {
	dx := sys.Derive(x, t)
	result := make(fdm.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	return result
}
