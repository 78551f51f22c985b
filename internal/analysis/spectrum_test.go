package analysis

import (
	"errors"
	"math"
	"testing"
)

func sine(freq, rate float64, n int, amp float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/rate)
	}
	return out
}

func TestDominant(t *testing.T) {
	tests := []struct {
		freq, rate float64
		n          int
	}{
		{100, 8000, 8000},
		{440, 44100, 4096},
		{1234, 20000, 5000},
	}
	for _, tt := range tests {
		spec, err := NewSpectrum(sine(tt.freq, tt.rate, tt.n, 1), tt.rate)
		if err != nil {
			t.Fatal(err)
		}
		f, mag := spec.Dominant()
		if math.Abs(f-tt.freq) > spec.Resolution {
			t.Errorf("sine at %v Hz: dominant %v Hz (resolution %v)", tt.freq, f, spec.Resolution)
		}
		if mag <= 0 {
			t.Errorf("sine at %v Hz: zero magnitude", tt.freq)
		}
	}
}

func TestHarmonics(t *testing.T) {
	rate, n := 8000.0, 8000
	sig := sine(200, rate, n, 1)
	for i, v := range sine(400, rate, n, 0.5) {
		sig[i] += v
	}
	spec, err := NewSpectrum(sig, rate)
	if err != nil {
		t.Fatal(err)
	}
	h := spec.Harmonics(200, 4)
	if math.Abs(h[0]-1) > 1e-9 {
		t.Errorf("h1 = %v, want 1", h[0])
	}
	if math.Abs(h[1]-0.5) > 0.02 {
		t.Errorf("h2 = %v, want ~0.5", h[1])
	}
	if h[2] > 0.01 || h[3] > 0.01 {
		t.Errorf("h3, h4 = %v, %v, want ~0", h[2], h[3])
	}
}

func TestNewSpectrum_Short(t *testing.T) {
	if _, err := NewSpectrum([]float64{1, 2}, 100); !errors.Is(err, ErrShortSignal) {
		t.Errorf("expected ErrShortSignal, got %v", err)
	}
	if _, err := NewSpectrum(make([]float64, 16), 0); err == nil {
		t.Error("expected error for zero sample rate")
	}
}

func TestDownsample(t *testing.T) {
	data := make([]float64, 1000)
	if got := Downsample(data, 100); len(got) != 100 {
		t.Errorf("len = %d, want 100", len(got))
	}
	if got := Downsample(data[:50], 100); len(got) != 50 {
		t.Errorf("short input should pass through, got %d", len(got))
	}
}
