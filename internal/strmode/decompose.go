package strmode

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/integrate"
)

// Amplitudes are Fourier sine coefficients. Index i belongs to mode i+1.
type Amplitudes []float64

// Mode returns the coefficient of the 1-based mode n, or 0 when out of range.
func (a Amplitudes) Mode(n int) float64 {
	if n < 1 || n > len(a) {
		return 0
	}
	return a[n-1]
}

// IsZero reports whether every coefficient is zero.
func (a Amplitudes) IsZero() bool {
	for _, v := range a {
		if v != 0 {
			return false
		}
	}
	return true
}

// Decompose projects shape onto sin(nπx/L) for n = 1..Modes using the
// trapezoid rule on the grid and the 2/L sine-series normalisation.
func Decompose(p Params, g Grid, s Shape) (Amplitudes, error) {
	if err := checkGrid(p, g); err != nil {
		return nil, err
	}
	if len(s) != g.Len() {
		return nil, fmt.Errorf("%w: shape has %d samples, grid has %d", ErrInvalidParameter, len(s), g.Len())
	}
	for i, v := range s {
		if !finite(v) {
			return nil, invalid(fmt.Sprintf("shape[%d]", i), v, "must be finite")
		}
	}

	amps := make(Amplitudes, p.modes)
	f := make([]float64, len(s))
	norm := 2 / p.length
	for n := 1; n <= p.modes; n++ {
		k := float64(n) * math.Pi / p.length
		for i, x := range g.xs {
			f[i] = s[i] * math.Sin(k*x)
		}
		amps[n-1] = norm * integrate.Trapezoidal(g.xs, f)
	}
	return amps, nil
}
