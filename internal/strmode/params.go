package strmode

import "math"

// Params holds the physical constants of one string. The zero value is not
// usable; build it with NewParams.
type Params struct {
	length        float64
	tension       float64
	linearDensity float64
	modes         int
	damping       float64
}

// NewParams validates and returns string parameters. Length, tension and
// linear density must be positive, modes at least 1 and damping non-negative.
func NewParams(length, tension, linearDensity float64, modes int, damping float64) (Params, error) {
	switch {
	case !positive(length):
		return Params{}, invalid("length", length, "must be positive")
	case !positive(tension):
		return Params{}, invalid("tension", tension, "must be positive")
	case !positive(linearDensity):
		return Params{}, invalid("linearDensity", linearDensity, "must be positive")
	case modes < 1:
		return Params{}, invalid("modes", float64(modes), "must be at least 1")
	case !finite(damping) || damping < 0:
		return Params{}, invalid("damping", damping, "must be non-negative")
	}
	return Params{
		length:        length,
		tension:       tension,
		linearDensity: linearDensity,
		modes:         modes,
		damping:       damping,
	}, nil
}

func (p Params) Length() float64        { return p.length }
func (p Params) Tension() float64       { return p.tension }
func (p Params) LinearDensity() float64 { return p.linearDensity }
func (p Params) Modes() int             { return p.modes }
func (p Params) Damping() float64       { return p.damping }

// WaveSpeed is sqrt(T/μ).
func (p Params) WaveSpeed() float64 {
	return math.Sqrt(p.tension / p.linearDensity)
}

// Frequency returns f_n = n·c/(2L) in Hz for the 1-based mode n.
func (p Params) Frequency(n int) float64 {
	return float64(n) * p.WaveSpeed() / (2 * p.length)
}

// AngularFrequency returns ω_n = 2π·f_n.
func (p Params) AngularFrequency(n int) float64 {
	return 2 * math.Pi * p.Frequency(n)
}

// Fundamental is the frequency of mode 1.
func (p Params) Fundamental() float64 { return p.Frequency(1) }

// Frequencies lists f_1..f_modes.
func (p Params) Frequencies() []float64 {
	fs := make([]float64, p.modes)
	for i := range fs {
		fs[i] = p.Frequency(i + 1)
	}
	return fs
}

func (p Params) WithDamping(d float64) (Params, error) {
	return NewParams(p.length, p.tension, p.linearDensity, p.modes, d)
}

func (p Params) WithModes(n int) (Params, error) {
	return NewParams(p.length, p.tension, p.linearDensity, n, p.damping)
}

func (p Params) WithTension(t float64) (Params, error) {
	return NewParams(p.length, t, p.linearDensity, p.modes, p.damping)
}

func positive(v float64) bool { return finite(v) && v > 0 }

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
