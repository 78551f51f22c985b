package sim

import (
	"github.com/san-kum/stringsim/internal/strmode"
)

// Player owns the mutable side of a simulation: the elapsed time and the
// amplitudes of the current pluck. The model itself stays pure.
type Player struct {
	params  strmode.Params
	grid    strmode.Grid
	xs      []float64
	shape   strmode.Shape
	amps    strmode.Amplitudes
	elapsed float64
	status  Status
	ceiling float64
}

func NewPlayer(p strmode.Params, g strmode.Grid) *Player {
	return &Player{
		params:  p,
		grid:    g,
		xs:      g.Positions(),
		ceiling: DefaultCeiling,
	}
}

func (pl *Player) Params() strmode.Params { return pl.params }
func (pl *Player) Grid() strmode.Grid     { return pl.grid }
func (pl *Player) Status() Status         { return pl.status }
func (pl *Player) Elapsed() float64       { return pl.elapsed }
func (pl *Player) Ceiling() float64       { return pl.ceiling }

// SetCeiling changes the auto-stop horizon. Zero or less disables it.
func (pl *Player) SetCeiling(c float64) { pl.ceiling = c }

// Amplitudes returns a copy of the amplitudes in effect.
func (pl *Player) Amplitudes() strmode.Amplitudes {
	if pl.amps == nil {
		return nil
	}
	out := make(strmode.Amplitudes, len(pl.amps))
	copy(out, pl.amps)
	return out
}

// Shape returns the last plucked shape.
func (pl *Player) Shape() strmode.Shape { return pl.shape }

// Pluck decomposes a new initial shape, rewinds to t=0 and starts playing
// unless the shape is flat.
func (pl *Player) Pluck(s strmode.Shape) error {
	amps, err := strmode.Decompose(pl.params, pl.grid, s)
	if err != nil {
		return err
	}
	pl.shape = append(strmode.Shape(nil), s...)
	pl.amps = amps
	pl.elapsed = 0
	if s.Peak() > MinPluck {
		pl.status = Running
	} else {
		pl.status = Idle
	}
	return nil
}

// PluckAt plucks a triangle at position with the given height.
func (pl *Player) PluckAt(position, height float64) error {
	s, err := strmode.PluckShape(pl.params, pl.grid, position, height)
	if err != nil {
		return err
	}
	return pl.Pluck(s)
}

// Play resumes from the current time.
func (pl *Player) Play() error {
	if pl.amps == nil || pl.amps.IsZero() {
		return ErrNotPlucked
	}
	if pl.ceiling > 0 && pl.elapsed >= pl.ceiling {
		pl.elapsed = 0
	}
	pl.status = Running
	return nil
}

// Pause stops the clock and keeps the current time.
func (pl *Player) Pause() { pl.status = Idle }

// Reset stops the clock and rewinds to the plucked shape.
func (pl *Player) Reset() {
	pl.status = Idle
	pl.elapsed = 0
}

// Advance moves the clock by dt while running and stops at the ceiling.
func (pl *Player) Advance(dt float64) Status {
	if pl.status != Running || dt <= 0 {
		return pl.status
	}
	pl.elapsed += dt
	if pl.ceiling > 0 && pl.elapsed >= pl.ceiling {
		pl.elapsed = pl.ceiling
		pl.status = Idle
	}
	return pl.status
}

// SetParams swaps the string constants and re-decomposes the last shape so
// that a change of mode count takes effect. The clock is kept.
func (pl *Player) SetParams(p strmode.Params) error {
	if p.Length() != pl.params.Length() {
		pl.grid = strmode.NewGrid(p, pl.grid.Len())
		pl.xs = pl.grid.Positions()
		pl.shape, pl.amps = nil, nil
		pl.status = Idle
		pl.elapsed = 0
		pl.params = p
		return nil
	}
	pl.params = p
	if pl.shape == nil {
		return nil
	}
	amps, err := strmode.Decompose(p, pl.grid, pl.shape)
	if err != nil {
		return err
	}
	pl.amps = amps
	return nil
}

// Frame writes the displacement over the grid into dst, growing it when too
// short. With nothing plucked the frame is flat.
func (pl *Player) Frame(dst []float64) []float64 {
	if cap(dst) < len(pl.xs) {
		dst = make([]float64, len(pl.xs))
	}
	dst = dst[:len(pl.xs)]
	if pl.amps == nil {
		for i := range dst {
			dst[i] = 0
		}
		return dst
	}
	return strmode.DisplacementInto(dst, pl.params, pl.amps, pl.elapsed, pl.xs)
}

// Positions returns the grid positions Frame is evaluated at.
func (pl *Player) Positions() []float64 { return pl.xs }

func (pl *Player) DisplacementAt(x float64) float64 {
	return strmode.DisplacementAt(pl.params, pl.amps, pl.elapsed, x)
}

// PickupVelocity is what a pickup at x senses right now.
func (pl *Player) PickupVelocity(x float64) float64 {
	return strmode.VelocityAt(pl.params, pl.amps, pl.elapsed, x)
}

func (pl *Player) Energy() float64 {
	return strmode.ModalEnergy(pl.params, pl.amps, pl.elapsed)
}
