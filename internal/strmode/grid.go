package strmode

import "fmt"

// DefaultSamples is the grid size used by the CLI and live view.
const DefaultSamples = 500

// Grid is a fixed set of positions spaced evenly from 0 to L inclusive.
type Grid struct {
	xs []float64
	dx float64
}

// NewGrid samples the string at n points. n is raised to 2 if smaller.
func NewGrid(p Params, n int) Grid {
	if n < 2 {
		n = 2
	}
	xs := make([]float64, n)
	last := n - 1
	for i := 1; i < last; i++ {
		xs[i] = p.length * float64(i) / float64(last)
	}
	xs[0], xs[last] = 0, p.length
	return Grid{xs: xs, dx: p.length / float64(last)}
}

// Len is the number of samples.
func (g Grid) Len() int { return len(g.xs) }

// Spacing is L/(N-1).
func (g Grid) Spacing() float64 { return g.dx }

// Positions returns a copy of the sample positions.
func (g Grid) Positions() []float64 {
	out := make([]float64, len(g.xs))
	copy(out, g.xs)
	return out
}

// At returns the i-th position.
func (g Grid) At(i int) float64 { return g.xs[i] }

// checkGrid rejects grids that do not run from 0 to the string's length.
func checkGrid(p Params, g Grid) error {
	if g.Len() < 2 {
		return invalid("gridSamples", float64(g.Len()), "must be at least 2")
	}
	if first, last := g.At(0), g.At(g.Len()-1); first != 0 || last != p.length {
		return fmt.Errorf("%w: grid spans [%g, %g], string length is %g", ErrInvalidParameter, first, last, p.length)
	}
	return nil
}
