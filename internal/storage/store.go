package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/stringsim/internal/sim"
	"github.com/san-kum/stringsim/internal/strmode"
)

const (
	metaFile  = "metadata.json"
	traceFile = "trace.csv"
	modesFile = "modes.csv"
)

// ErrRunNotFound is returned by Load* for an unknown run id.
var ErrRunNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

func (s *Store) Dir() string { return s.baseDir }

type RunMetadata struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	Timestamp     time.Time          `json:"timestamp"`
	Length        float64            `json:"length"`
	Tension       float64            `json:"tension"`
	LinearDensity float64            `json:"linear_density"`
	Modes         int                `json:"modes"`
	Damping       float64            `json:"damping"`
	Fundamental   float64            `json:"fundamental"`
	PluckPosition float64            `json:"pluck_position"`
	PluckHeight   float64            `json:"pluck_height"`
	Harmonic      int                `json:"harmonic,omitempty"`
	Pickup        float64            `json:"pickup"`
	Probe         float64            `json:"probe"`
	Dt            float64            `json:"dt"`
	Duration      float64            `json:"duration"`
	Steps         int                `json:"steps"`
	Stopped       bool               `json:"stopped"`
	Metrics       map[string]float64 `json:"metrics"`
}

// Mode is one row of modes.csv.
type Mode struct {
	N         int     `json:"n"`
	Frequency float64 `json:"frequency"`
	Amplitude float64 `json:"amplitude"`
}

// NewMetadata fills the string and run fields of a RunMetadata. Pluck and
// naming fields are left to the caller.
func NewMetadata(name string, p strmode.Params, cfg sim.Config, result *sim.Result) RunMetadata {
	return RunMetadata{
		Name:          name,
		Length:        p.Length(),
		Tension:       p.Tension(),
		LinearDensity: p.LinearDensity(),
		Modes:         p.Modes(),
		Damping:       p.Damping(),
		Fundamental:   p.Fundamental(),
		Pickup:        cfg.Pickup,
		Probe:         cfg.Probe,
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		Steps:         result.StepsTaken,
		Stopped:       result.Stopped,
		Metrics:       result.Metrics,
	}
}

// ModeTable pairs each amplitude with its frequency.
func ModeTable(p strmode.Params, a strmode.Amplitudes) []Mode {
	modes := make([]Mode, len(a))
	freqs := p.Frequencies()
	for i, amp := range a {
		modes[i] = Mode{N: i + 1, Frequency: freqs[i], Amplitude: amp}
	}
	return modes
}

// Save writes a run directory and returns its id.
func (s *Store) Save(meta RunMetadata, modes []Mode, result *sim.Result) (string, error) {
	if meta.Name == "" {
		meta.Name = "run"
	}
	now := time.Now()
	runID := fmt.Sprintf("%s_%d", meta.Name, now.Unix())
	runDir := filepath.Join(s.baseDir, runID)
	for i := 2; exists(runDir); i++ {
		runID = fmt.Sprintf("%s_%d_%d", meta.Name, now.Unix(), i)
		runDir = filepath.Join(s.baseDir, runID)
	}

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now
	if err := writeFile(filepath.Join(runDir, metaFile), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	}); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, traceFile), func(w io.Writer) error {
		return WriteTrace(w, result.Samples)
	}); err != nil {
		return "", err
	}

	if err := writeFile(filepath.Join(runDir, modesFile), func(w io.Writer) error {
		return WriteModes(w, modes)
	}); err != nil {
		return "", err
	}

	return runID, nil
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			continue
		}
		runs = append(runs, *meta)
	}

	sort.SliceStable(runs, func(i, j int) bool {
		return runs[i].Timestamp.Before(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(s.path(runID, metaFile))
	if err != nil {
		return nil, notFound(runID, err)
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("run %s: %w", runID, err)
	}
	return &meta, nil
}

// LoadTrace reads trace.csv back into samples.
func (s *Store) LoadTrace(runID string) ([]sim.Sample, error) {
	records, err := s.readCSV(runID, traceFile)
	if err != nil {
		return nil, err
	}

	samples := make([]sim.Sample, 0, len(records))
	for _, record := range records {
		vals, ok := parseRow(record, 4)
		if !ok {
			continue
		}
		smp := sim.Sample{
			Time:   vals[0],
			Probe:  vals[1],
			Pickup: vals[2],
			Energy: vals[3],
		}
		if len(record) > 4 {
			if peak, err := strconv.ParseFloat(record[4], 64); err == nil {
				smp.Peak = peak
			}
		}
		samples = append(samples, smp)
	}
	return samples, nil
}

func (s *Store) LoadModes(runID string) ([]Mode, error) {
	records, err := s.readCSV(runID, modesFile)
	if err != nil {
		return nil, err
	}

	modes := make([]Mode, 0, len(records))
	for _, record := range records {
		vals, ok := parseRow(record, 3)
		if !ok {
			continue
		}
		modes = append(modes, Mode{N: int(vals[0]), Frequency: vals[1], Amplitude: vals[2]})
	}
	return modes, nil
}

// WriteTrace writes samples as CSV with a header row.
func WriteTrace(w io.Writer, samples []sim.Sample) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"time", "probe", "pickup", "energy", "peak"}); err != nil {
		return err
	}
	for _, s := range samples {
		row := []string{
			strconv.FormatFloat(s.Time, 'f', 6, 64),
			formatFloat(s.Probe),
			formatFloat(s.Pickup),
			formatFloat(s.Energy),
			formatFloat(s.Peak),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteModes(w io.Writer, modes []Mode) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"n", "frequency", "amplitude"}); err != nil {
		return err
	}
	for _, m := range modes {
		row := []string{strconv.Itoa(m.N), formatFloat(m.Frequency), formatFloat(m.Amplitude)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *Store) path(runID, name string) string {
	return filepath.Join(s.baseDir, runID, name)
}

func (s *Store) readCSV(runID, name string) ([][]string, error) {
	file, err := os.Open(s.path(runID, name))
	if err != nil {
		return nil, notFound(runID, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("run %s: %s: %w", runID, name, err)
	}
	if len(records) < 2 {
		return [][]string{}, nil
	}
	return records[1:], nil
}

func parseRow(record []string, n int) ([]float64, bool) {
	if len(record) < n {
		return nil, false
	}
	vals := make([]float64, n)
	for i := 0; i < n; i++ {
		v, err := strconv.ParseFloat(record[i], 64)
		if err != nil {
			return nil, false
		}
		vals[i] = v
	}
	return vals, true
}

// formatFloat keeps full precision for the small magnitudes a string
// produces.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func writeFile(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fn(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func notFound(runID string, err error) error {
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return err
}
