package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"github.com/mjibson/go-dsp/window"
	"gonum.org/v1/gonum/floats"
)

var ErrShortSignal = errors.New("analysis: signal too short for a spectrum")

// Spectrum holds magnitudes for bins 0..N/2 of a real signal.
type Spectrum struct {
	Mags       []float64
	Resolution float64 // Hz per bin
}

// NewSpectrum windows signal with a Hann window and takes its FFT.
func NewSpectrum(signal []float64, sampleRate float64) (*Spectrum, error) {
	n := len(signal)
	if n < 4 {
		return nil, ErrShortSignal
	}
	if sampleRate <= 0 {
		return nil, errors.New("analysis: sample rate must be positive")
	}

	x := make([]float64, n)
	copy(x, signal)
	window.Apply(x, window.Hann)

	bins := fft.FFTReal(x)
	mags := make([]float64, n/2+1)
	for i := range mags {
		mags[i] = cmplx.Abs(bins[i])
	}
	return &Spectrum{Mags: mags, Resolution: sampleRate / float64(n)}, nil
}

// Frequency of bin i.
func (s *Spectrum) Frequency(i int) float64 { return float64(i) * s.Resolution }

// Dominant returns the frequency and magnitude of the strongest bin above DC.
func (s *Spectrum) Dominant() (float64, float64) {
	if len(s.Mags) < 2 {
		return 0, 0
	}
	i := floats.MaxIdx(s.Mags[1:]) + 1
	return s.Frequency(i), s.Mags[i]
}

// MagnitudeAt returns the largest magnitude within one bin of f.
func (s *Spectrum) MagnitudeAt(f float64) float64 {
	c := int(math.Round(f / s.Resolution))
	best := 0.0
	for i := c - 1; i <= c+1; i++ {
		if i >= 0 && i < len(s.Mags) {
			best = math.Max(best, s.Mags[i])
		}
	}
	return best
}

// Harmonics returns the magnitude near n·f1 for n = 1..count, scaled so
// the strongest is 1. Harmonics beyond Nyquist are zero.
func (s *Spectrum) Harmonics(f1 float64, count int) []float64 {
	if count <= 0 {
		return nil
	}
	out := make([]float64, count)
	for n := 1; n <= count; n++ {
		out[n-1] = s.MagnitudeAt(float64(n) * f1)
	}
	if peak := floats.Max(out); peak > 0 {
		floats.Scale(1/peak, out)
	}
	return out
}

// Downsample keeps every k-th value, for plotting long traces.
func Downsample(data []float64, max int) []float64 {
	if max <= 0 || len(data) <= max {
		return data
	}
	k := (len(data) + max - 1) / max
	out := make([]float64, 0, max)
	for i := 0; i < len(data); i += k {
		out = append(out, data[i])
	}
	return out
}
