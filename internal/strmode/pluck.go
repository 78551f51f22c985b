package strmode

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Shape is a displacement per grid sample.
type Shape []float64

// Peak is the largest absolute displacement.
func (s Shape) Peak() float64 {
	if len(s) == 0 {
		return 0
	}
	return math.Max(floats.Max(s), -floats.Min(s))
}

// PluckShape builds the triangle a finger leaves behind: a straight ramp from
// the nut up to (position, height) and back down to the bridge.
func PluckShape(p Params, g Grid, position, height float64) (Shape, error) {
	if err := checkGrid(p, g); err != nil {
		return nil, err
	}
	if !finite(position) || position <= 0 || position >= p.length {
		return nil, invalid("pluckPosition", position, "must lie strictly inside (0, length)")
	}
	if !finite(height) {
		return nil, invalid("pluckHeight", height, "must be finite")
	}
	s := make(Shape, g.Len())
	right := p.length - position
	for i, x := range g.xs {
		if x <= position {
			s[i] = height * x / position
		} else {
			s[i] = height * (p.length - x) / right
		}
	}
	s[0], s[len(s)-1] = 0, 0
	return s, nil
}

// ModeShape is amplitude·sin(nπx/L) over the grid.
func ModeShape(p Params, g Grid, n int, amplitude float64) (Shape, error) {
	if err := checkGrid(p, g); err != nil {
		return nil, err
	}
	if n < 1 {
		return nil, invalid("mode", float64(n), "must be at least 1")
	}
	if !finite(amplitude) {
		return nil, invalid("amplitude", amplitude, "must be finite")
	}
	s := make(Shape, g.Len())
	k := float64(n) * math.Pi / p.length
	for i, x := range g.xs {
		s[i] = amplitude * math.Sin(k*x)
	}
	s[0], s[len(s)-1] = 0, 0
	return s, nil
}
