package config

import "sort"

// Presets are grouped by instrument. String constants are typical published
// gauges at concert pitch.
var Presets = map[string]map[string]*Config{
	"guitar": {
		"high-e": preset(StringConfig{Length: 0.648, Tension: 73.0, LinearDensity: 0.000401, Modes: 20, Damping: 0.0005}, 0.2, 0.003, 0.1),
		"low-e":  preset(StringConfig{Length: 0.648, Tension: 76.0, LinearDensity: 0.00679, Modes: 25, Damping: 0.0008}, 0.2, 0.004, 0.1),
		"neck":   preset(StringConfig{Length: 0.648, Tension: 73.0, LinearDensity: 0.000401, Modes: 20, Damping: 0.0005}, 0.5, 0.003, 0.35),
	},
	"bass": {
		"e": preset(StringConfig{Length: 0.864, Tension: 135.0, LinearDensity: 0.0263, Modes: 20, Damping: 0.001}, 0.15, 0.006, 0.12),
	},
	"monochord": {
		"demo":   preset(StringConfig{Length: DefaultLength, Tension: DefaultTension, LinearDensity: DefaultLinearDensity, Modes: DefaultModes, Damping: DefaultDamping}, DefaultPluckRatio, DefaultPluckHeight, DefaultPickupRatio),
		"centre": preset(StringConfig{Length: DefaultLength, Tension: DefaultTension, LinearDensity: DefaultLinearDensity, Modes: 10, Damping: DefaultDamping}, 0.5, 0.01, 0.25),
		"harmonic": func() *Config {
			c := preset(StringConfig{Length: DefaultLength, Tension: DefaultTension, LinearDensity: DefaultLinearDensity, Modes: DefaultModes, Damping: DefaultDamping}, 0.5, 0.02, 0.125)
			c.Pluck.Harmonic = 2
			return c
		}(),
	},
}

func preset(s StringConfig, pluckAt, height, pickupAt float64) *Config {
	c := DefaultConfig()
	samples := c.String.Samples
	c.String = s
	c.String.Samples = samples
	c.Pluck = PluckConfig{Position: pluckAt, Height: height}
	c.Pickup = PickupConfig{Position: pickupAt}
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(instrument, name string) *Config {
	group, ok := Presets[instrument]
	if !ok {
		return nil
	}
	cfg, ok := group[name]
	if !ok {
		return nil
	}
	cp := *cfg
	return &cp
}

// ListPresets returns the preset names of an instrument, sorted.
func ListPresets(instrument string) []string {
	group, ok := Presets[instrument]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(group))
	for name := range group {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func Instruments() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
