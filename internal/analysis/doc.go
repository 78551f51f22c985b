// Package analysis looks at recorded pickup signals in the frequency domain.
//
//   - [NewSpectrum]: Hann-windowed magnitude spectrum of a real signal
//   - [Spectrum.Dominant]: strongest non-DC bin
//   - [Spectrum.Harmonics]: relative level of each multiple of a fundamental
//
// # Example
//
//	spec, _ := analysis.NewSpectrum(result.PickupSignal(), 1/cfg.Dt)
//	f, _ := spec.Dominant()
package analysis
