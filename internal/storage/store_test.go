package storage

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/san-kum/stringsim/internal/sim"
	"github.com/san-kum/stringsim/internal/strmode"
)

func testRun(t *testing.T) (RunMetadata, []Mode, *sim.Result) {
	t.Helper()
	p, err := strmode.NewParams(0.66, 1000, 0.01, 4, 0.01)
	if err != nil {
		t.Fatal(err)
	}
	result := &sim.Result{
		Samples: []sim.Sample{
			{Time: 0, Probe: 0.05, Pickup: 0, Energy: 1.5},
			{Time: 5e-5, Probe: 0.0499, Pickup: -0.0123456789, Energy: 1.49, Peak: 0.0501},
		},
		Metrics:    map[string]float64{"energy_ratio": 0.99},
		StepsTaken: 1,
	}
	cfg := sim.Config{Dt: 5e-5, Duration: 5e-5, Probe: 0.132, Pickup: 0.066}
	meta := NewMetadata("high-e", p, cfg, result)
	meta.PluckPosition = 0.132
	meta.PluckHeight = 0.05
	modes := ModeTable(p, strmode.Amplitudes{0.03, -0.01, 1e-12, 0.002})
	return meta, modes, result
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	meta, modes, result := testRun(t)
	runID, err := st.Save(meta, modes, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if !strings.HasPrefix(runID, "high-e_") {
		t.Errorf("unexpected run id %q", runID)
	}

	got, err := st.Load(runID)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if got.ID != runID || got.Modes != 4 || got.PluckHeight != 0.05 {
		t.Errorf("metadata mismatch: %+v", got)
	}
	if got.Metrics["energy_ratio"] != 0.99 {
		t.Errorf("expected energy_ratio 0.99, got %f", got.Metrics["energy_ratio"])
	}
	if math.Abs(got.Fundamental-meta.Fundamental) > 1e-9 {
		t.Errorf("fundamental %v, want %v", got.Fundamental, meta.Fundamental)
	}

	trace, err := st.LoadTrace(runID)
	if err != nil {
		t.Fatalf("load trace failed: %v", err)
	}
	if len(trace) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(trace))
	}
	if trace[1].Pickup != -0.0123456789 {
		t.Errorf("pickup lost precision: %v", trace[1].Pickup)
	}
	if trace[1].Peak != 0.0501 {
		t.Errorf("peak = %v, want 0.0501", trace[1].Peak)
	}

	gotModes, err := st.LoadModes(runID)
	if err != nil {
		t.Fatalf("load modes failed: %v", err)
	}
	if len(gotModes) != 4 || gotModes[2].N != 3 || gotModes[2].Amplitude != 1e-12 {
		t.Errorf("modes mismatch: %+v", gotModes)
	}
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	if err := st.Init(); err != nil {
		t.Fatalf("init failed: %v", err)
	}

	runs, err := st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 0 {
		t.Errorf("expected 0 runs, got %d", len(runs))
	}

	meta, modes, result := testRun(t)
	first, err := st.Save(meta, modes, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	second, err := st.Save(meta, modes, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if first == second {
		t.Errorf("run ids collided: %s", first)
	}

	runs, err = st.List()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(runs) != 2 {
		t.Errorf("expected 2 runs, got %d", len(runs))
	}
}

func TestStoreListMissingDir(t *testing.T) {
	st := New(filepath.Join(t.TempDir(), "absent"))
	runs, err := st.List()
	if err != nil || len(runs) != 0 {
		t.Errorf("List() = %v, %v", runs, err)
	}
}

func TestStoreFileStructure(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	meta, modes, result := testRun(t)
	runID, err := st.Save(meta, modes, result)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}

	for _, name := range []string{"metadata.json", "trace.csv", "modes.csv"} {
		if _, err := os.Stat(filepath.Join(dir, runID, name)); err != nil {
			t.Errorf("%s missing: %v", name, err)
		}
	}

	data, err := os.ReadFile(filepath.Join(dir, runID, "trace.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "time,probe,pickup,energy,peak\n") {
		t.Errorf("unexpected trace header: %q", strings.SplitN(string(data), "\n", 2)[0])
	}
}

func TestLoadUnknownRun(t *testing.T) {
	st := New(t.TempDir())
	if _, err := st.Load("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Load: expected ErrRunNotFound, got %v", err)
	}
	if _, err := st.LoadTrace("nope"); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("LoadTrace: expected ErrRunNotFound, got %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	meta, modes, result := testRun(t)
	var buf bytes.Buffer
	if err := ExportJSON(&buf, meta, modes, result.Samples); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if data.Meta.Name != "high-e" || len(data.Modes) != 4 || len(data.Samples) != 2 {
		t.Errorf("unexpected export: %+v", data)
	}
	if data.Samples[0].Energy != 1.5 {
		t.Errorf("energy = %v", data.Samples[0].Energy)
	}
}
