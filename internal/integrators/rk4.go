package integrators

import "github.com/san-kum/stringsim/internal/fdm"

type RK4 struct {
	k1, k2, k3, k4 fdm.State
	scratch        fdm.State
}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) resize(n int) {
	if len(r.k1) == n {
		return
	}
	r.k1 = make(fdm.State, n)
	r.k2 = make(fdm.State, n)
	r.k3 = make(fdm.State, n)
	r.k4 = make(fdm.State, n)
	r.scratch = make(fdm.State, n)
}

// stage fills scratch with x + h·k and evaluates the derivative there.
func (r *RK4) stage(sys fdm.System, x, k, out fdm.State, t, h float64) {
	for i := range x {
		r.scratch[i] = x[i] + h*k[i]
	}
	copy(out, sys.Derive(r.scratch, t))
}

func (r *RK4) Step(sys fdm.System, x fdm.State, t, dt float64) fdm.State {
	n := len(x)
	r.resize(n)

	copy(r.k1, sys.Derive(x, t))
	r.stage(sys, x, r.k1, r.k2, t+dt/2, dt/2)
	r.stage(sys, x, r.k2, r.k3, t+dt/2, dt/2)
	r.stage(sys, x, r.k3, r.k4, t+dt, dt)

	result := make(fdm.State, n)
	dt6 := dt / 6
	for i := 0; i < n; i++ {
		result[i] = x[i] + dt6*(r.k1[i]+2*r.k2[i]+2*r.k3[i]+r.k4[i])
	}
	return result
}
