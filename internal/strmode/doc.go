// Package strmode models a vibrating string fixed at both ends as a truncated
// sum of damped normal modes.
//
// The model is a set of pure functions over immutable values:
//
//   - [Params]: length, tension, linear density, mode count and damping
//   - [Grid]: evenly spaced sample positions from the nut (0) to the bridge (L)
//   - [Shape]: a displacement per grid sample at t = 0
//   - [Amplitudes]: Fourier sine coefficients, one per mode
//
// A pluck is decomposed once and then evaluated at any time and position:
//
//	p, _ := strmode.NewParams(0.66, 1000, 0.01, 15, 0.01)
//	g := strmode.NewGrid(p, strmode.DefaultSamples)
//	shape, _ := strmode.PluckShape(p, g, 0.2*p.Length(), 0.05)
//	amps, _ := strmode.Decompose(p, g, shape)
//	ys := strmode.Displacement(p, amps, t, g.Positions())
//
// # Damping
//
// Each mode decays as exp(-d·ω_n·t), so higher modes die out faster.
//
// # Velocity
//
// [VelocityAt] differentiates only the oscillatory factor of each mode and
// leaves the envelope alone. This is what a magnetic pickup senses, to the
// accuracy the model is used at.
package strmode
