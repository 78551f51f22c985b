package integrators

import "github.com/san-kum/stringsim/internal/fdm"

// Verlet and Leapfrog assume the state is laid out as [positions, velocities]
// with equal halves, which is what fdm.String uses.

// Verlet is velocity Verlet. The acceleration is re-evaluated at the new
// positions with the old velocities, so velocity damping is only first order.
type Verlet struct {
	scratch fdm.State
}

func NewVerlet() *Verlet {
	return &Verlet{}
}

func (v *Verlet) Step(sys fdm.System, x fdm.State, t, dt float64) fdm.State {
	n := len(x)
	half := n / 2
	if len(v.scratch) != n {
		v.scratch = make(fdm.State, n)
	}

	result := make(fdm.State, n)
	acc := sys.Derive(x, t)
	for i := 0; i < half; i++ {
		result[i] = x[i] + x[half+i]*dt + 0.5*acc[half+i]*dt*dt
		v.scratch[i] = result[i]
		v.scratch[half+i] = x[half+i]
	}

	accNew := sys.Derive(v.scratch, t+dt)
	for i := 0; i < half; i++ {
		result[half+i] = x[half+i] + 0.5*(acc[half+i]+accNew[half+i])*dt
	}
	return result
}

// Leapfrog is kick-drift-kick.
type Leapfrog struct {
	scratch fdm.State
}

func NewLeapfrog() *Leapfrog {
	return &Leapfrog{}
}

func (l *Leapfrog) Step(sys fdm.System, x fdm.State, t, dt float64) fdm.State {
	n := len(x)
	half := n / 2
	if len(l.scratch) != n {
		l.scratch = make(fdm.State, n)
	}

	result := make(fdm.State, n)
	acc := sys.Derive(x, t)
	for i := 0; i < half; i++ {
		l.scratch[half+i] = x[half+i] + 0.5*acc[half+i]*dt
	}
	for i := 0; i < half; i++ {
		result[i] = x[i] + l.scratch[half+i]*dt
		l.scratch[i] = result[i]
	}

	accNew := sys.Derive(l.scratch, t+dt)
	for i := 0; i < half; i++ {
		result[half+i] = l.scratch[half+i] + 0.5*accNew[half+i]*dt
	}
	return result
}
