package audio

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/san-kum/stringsim/internal/strmode"
)

const (
	SampleRate = 44100
	BitDepth   = 16

	// headroom is the peak level after normalisation.
	headroom = 0.9
)

// RenderPickup samples the pickup velocity at an audio rate.
// The output is normalised to a peak of 0.9 unless it is silent.
func RenderPickup(p strmode.Params, a strmode.Amplitudes, pickup float64, sampleRate int, seconds float64) ([]float64, error) {
	if sampleRate <= 0 {
		return nil, fmt.Errorf("audio: sample rate must be positive, got %d", sampleRate)
	}
	if seconds <= 0 {
		return nil, fmt.Errorf("audio: duration must be positive, got %g", seconds)
	}
	if pickup < 0 || pickup > p.Length() {
		return nil, fmt.Errorf("audio: pickup %g outside [0, %g]", pickup, p.Length())
	}

	n := int(seconds * float64(sampleRate))
	out := make([]float64, n)
	dt := 1 / float64(sampleRate)
	for i := range out {
		out[i] = strmode.VelocityAt(p, a, float64(i)*dt, pickup)
	}
	Normalize(out, headroom)
	return out, nil
}

// Normalize scales data in place so that its peak equals level.
func Normalize(data []float64, level float64) {
	peak := 0.0
	for _, v := range data {
		peak = math.Max(peak, math.Abs(v))
	}
	if peak == 0 {
		return
	}
	k := level / peak
	for i := range data {
		data[i] *= k
	}
}

// WriteWAV writes mono 16-bit PCM. Samples are clipped to [-1, 1].
func WriteWAV(path string, data []float64, sampleRate int) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(f, sampleRate, BitDepth, 1, 1)

	maxInt := float64(int(1)<<(BitDepth-1) - 1)
	ints := make([]int, len(data))
	for i, v := range data {
		ints[i] = int(math.Round(math.Max(-1, math.Min(1, v)) * maxInt))
	}
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			SampleRate:  sampleRate,
			NumChannels: 1,
		},
		Data:           ints,
		SourceBitDepth: BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return err
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// ReadWAV reads back a mono file written by WriteWAV.
func ReadWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, 0, fmt.Errorf("audio: %s is not a valid wav file", path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, err
	}
	scale := float64(int(1) << (int(dec.BitDepth) - 1))
	out := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		out[i] = float64(v) / scale
	}
	return out, int(dec.SampleRate), nil
}
