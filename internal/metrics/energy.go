package metrics

import (
	"math"

	"github.com/san-kum/stringsim/internal/sim"
)

// EnergyDecay reports the final modal energy as a fraction of the first.
type EnergyDecay struct {
	name          string
	initialEnergy float64
	currentEnergy float64
	samples       int
}

func NewEnergyDecay() *EnergyDecay {
	return &EnergyDecay{name: "energy_ratio"}
}

func (e *EnergyDecay) Name() string { return e.name }

func (e *EnergyDecay) Observe(s sim.Sample) {
	if e.samples == 0 {
		e.initialEnergy = s.Energy
	}
	e.currentEnergy = s.Energy
	e.samples++
}

func (e *EnergyDecay) Value() float64 {
	if e.initialEnergy == 0 {
		return 0
	}
	return e.currentEnergy / e.initialEnergy
}

func (e *EnergyDecay) Reset() {
	e.initialEnergy = 0
	e.currentEnergy = 0
	e.samples = 0
}

// DecayTime is the first time the energy fell 60 dB below its start, or -1
// if it never did.
type DecayTime struct {
	name          string
	drop          float64
	initialEnergy float64
	crossed       float64
	samples       int
}

func NewDecayTime() *DecayTime {
	return &DecayTime{name: "t60", drop: math.Pow(10, -6), crossed: -1}
}

func (d *DecayTime) Name() string { return d.name }

func (d *DecayTime) Observe(s sim.Sample) {
	if d.samples == 0 {
		d.initialEnergy = s.Energy
	}
	d.samples++
	if d.crossed < 0 && d.initialEnergy > 0 && s.Energy <= d.initialEnergy*d.drop {
		d.crossed = s.Time
	}
}

func (d *DecayTime) Value() float64 { return d.crossed }

func (d *DecayTime) Reset() {
	d.initialEnergy = 0
	d.crossed = -1
	d.samples = 0
}
