package integrators

import (
	"fmt"
	"sort"

	"github.com/san-kum/stringsim/internal/fdm"
)

var registry = map[string]func() fdm.Integrator{
	"euler":    func() fdm.Integrator { return NewEuler() },
	"rk4":      func() fdm.Integrator { return NewRK4() },
	"verlet":   func() fdm.Integrator { return NewVerlet() },
	"leapfrog": func() fdm.Integrator { return NewLeapfrog() },
}

// ByName returns a fresh integrator. Integrators keep scratch buffers and
// must not be shared between goroutines.
func ByName(name string) (fdm.Integrator, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
