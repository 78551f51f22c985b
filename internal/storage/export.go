package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/stringsim/internal/sim"
)

type ExportData struct {
	Meta    RunMetadata  `json:"meta"`
	Modes   []Mode       `json:"modes"`
	Samples []sampleJSON `json:"samples"`
}

type sampleJSON struct {
	Time   float64 `json:"t"`
	Probe  float64 `json:"probe"`
	Pickup float64 `json:"pickup"`
	Energy float64 `json:"energy"`
}

// ExportJSON writes a whole run as one indented JSON document.
func ExportJSON(w io.Writer, meta RunMetadata, modes []Mode, samples []sim.Sample) error {
	data := ExportData{
		Meta:    meta,
		Modes:   modes,
		Samples: make([]sampleJSON, len(samples)),
	}
	for i, s := range samples {
		data.Samples[i] = sampleJSON{Time: s.Time, Probe: s.Probe, Pickup: s.Pickup, Energy: s.Energy}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
