// Package viz is the live terminal view of a plucked string.
//
// The string is drawn on a braille canvas (2x4 dots per cell) and advanced
// by a sim.Player on every tick. Simulated time runs slower than wall time by
// Options.TimeScale so individual cycles stay visible.
package viz
