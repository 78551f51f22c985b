package strmode

import "math"

// mode caches the per-mode factors shared by every position at one instant.
type mode struct {
	k     float64 // nπ/L
	coeff float64
}

// displacementTerms folds amplitude, cos(ω_n t) and the decay envelope.
func displacementTerms(p Params, a Amplitudes, t float64) []mode {
	if t < 0 {
		t = 0
	}
	terms := make([]mode, 0, len(a))
	for i, amp := range a {
		if amp == 0 {
			continue
		}
		n := i + 1
		w := p.AngularFrequency(n)
		terms = append(terms, mode{
			k:     float64(n) * math.Pi / p.length,
			coeff: amp * math.Cos(w*t) * math.Exp(-p.damping*t*w),
		})
	}
	return terms
}

func sum(terms []mode, p Params, x float64) float64 {
	if x <= 0 || x >= p.length {
		return 0
	}
	y := 0.0
	for _, m := range terms {
		y += m.coeff * math.Sin(m.k*x)
	}
	return y
}

// Displacement evaluates the string at each position in xs at time t.
// Positions at or beyond the ends are exactly zero.
func Displacement(p Params, a Amplitudes, t float64, xs []float64) []float64 {
	return DisplacementInto(make([]float64, len(xs)), p, a, t, xs)
}

// DisplacementInto is Displacement writing into dst, which must be at least
// len(xs) long. It returns dst[:len(xs)].
func DisplacementInto(dst []float64, p Params, a Amplitudes, t float64, xs []float64) []float64 {
	terms := displacementTerms(p, a, t)
	dst = dst[:len(xs)]
	for i, x := range xs {
		dst[i] = sum(terms, p, x)
	}
	return dst
}

// DisplacementAt evaluates a single position.
func DisplacementAt(p Params, a Amplitudes, t, x float64) float64 {
	return sum(displacementTerms(p, a, t), p, x)
}

// VelocityAt is the time derivative of the oscillatory factor of each mode,
// summed at x. The derivative of the decay envelope is not included.
func VelocityAt(p Params, a Amplitudes, t, x float64) float64 {
	if t < 0 {
		t = 0
	}
	if x <= 0 || x >= p.length {
		return 0
	}
	v := 0.0
	for i, amp := range a {
		if amp == 0 {
			continue
		}
		n := i + 1
		w := p.AngularFrequency(n)
		k := float64(n) * math.Pi / p.length
		v -= amp * math.Sin(k*x) * w * math.Sin(w*t) * math.Exp(-p.damping*t*w)
	}
	return v
}

// ModalEnergy is the vibrational energy of the series at time t, with each
// mode taken at its envelope: Σ (μL/4)·ω_n²·a_n²·exp(-2dω_n t).
func ModalEnergy(p Params, a Amplitudes, t float64) float64 {
	if t < 0 {
		t = 0
	}
	e := 0.0
	scale := p.linearDensity * p.length / 4
	for i, amp := range a {
		w := p.AngularFrequency(i + 1)
		e += scale * w * w * amp * amp * math.Exp(-2*p.damping*w*t)
	}
	return e
}
