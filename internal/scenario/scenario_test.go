package scenario

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/stringsim/internal/strmode"
)

const twoSteps = `
name: pickup-check
description: same string, two pluck points
steps:
  - preset: guitar/high-e
    duration: 0.01
    save_as: bridge
    pluck: 0.1
  - preset: guitar/high-e
    duration: 0.01
    pluck: 0.5
    damping: 0.002
`

func TestParse(t *testing.T) {
	sc, err := Parse([]byte(twoSteps))
	if err != nil {
		t.Fatal(err)
	}
	if sc.Name != "pickup-check" || len(sc.Steps) != 2 {
		t.Fatalf("unexpected scenario: %+v", sc)
	}
	if sc.Steps[0].Pluck == nil || *sc.Steps[0].Pluck != 0.1 {
		t.Errorf("pluck override not parsed")
	}
	if sc.Steps[0].Damping != nil {
		t.Errorf("unset override should stay nil")
	}

	if _, err := Parse([]byte("name: empty\n")); err == nil {
		t.Error("expected error for scenario without steps")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scenario.yaml")
	if err := os.WriteFile(path, []byte(twoSteps), 0644); err != nil {
		t.Fatal(err)
	}
	sc, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Steps) != 2 {
		t.Errorf("expected 2 steps, got %d", len(sc.Steps))
	}
}

func TestStepConfig(t *testing.T) {
	damping := 0.002
	cfg, err := Step{Preset: "guitar/high-e", Damping: &damping, Duration: 0.5}.Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.String.Damping != damping || cfg.Run.Duration != 0.5 {
		t.Errorf("overrides not applied: %+v", cfg.String)
	}
	if cfg.String.Tension != 73.0 {
		t.Errorf("preset tension lost: %v", cfg.String.Tension)
	}

	bad := 1.5
	if _, err := (Step{Pluck: &bad}).Config(); !errors.Is(err, strmode.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
	if _, err := (Step{Preset: "guitar/nope"}).Config(); err == nil {
		t.Error("expected unknown preset error")
	}
	if _, err := (Step{Preset: "guitar"}).Config(); err == nil {
		t.Error("expected malformed preset error")
	}
}

func TestRun(t *testing.T) {
	sc, err := Parse([]byte(twoSteps))
	if err != nil {
		t.Fatal(err)
	}
	results, err := Run(context.Background(), sc)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Name != "bridge" || results[1].Name != "pickup-check-2" {
		t.Errorf("names: %q, %q", results[0].Name, results[1].Name)
	}

	// a centre pluck has no second mode, a bridge pluck does
	a0, a1 := results[0].Amplitudes, results[1].Amplitudes
	if math.Abs(a1.Mode(2)) > 1e-9*math.Abs(a1.Mode(1)) {
		t.Errorf("centre pluck excited mode 2: %v", a1.Mode(2))
	}
	if math.Abs(a0.Mode(2)) < 0.1*math.Abs(a0.Mode(1)) {
		t.Errorf("bridge pluck should excite mode 2: %v vs %v", a0.Mode(2), a0.Mode(1))
	}
	for _, r := range results {
		if r.Result.StepsTaken == 0 || len(r.Result.Metrics) == 0 {
			t.Errorf("%s: empty result", r.Name)
		}
	}
}

func TestRunStopsOnError(t *testing.T) {
	bad := -1
	sc := &Scenario{Name: "broken", Steps: []Step{
		{Preset: "monochord/demo", Duration: 0.001},
		{Preset: "monochord/demo", Modes: &bad},
	}}
	results, err := Run(context.Background(), sc)
	if err == nil {
		t.Fatal("expected error")
	}
	if len(results) != 1 {
		t.Errorf("expected the first step to complete, got %d results", len(results))
	}
}
