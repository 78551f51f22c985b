package export

import (
	"strings"
	"testing"
)

func TestShapeToSVG(t *testing.T) {
	xs := []float64{0, 0.5, 1}
	ys := []float64{0, 0.2, 0}

	svg, err := ShapeToSVG(xs, ys, 200, 100, "#00ffff")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(svg, "<?xml") || !strings.HasSuffix(svg, "</svg>") {
		t.Error("not a complete svg document")
	}
	if !strings.Contains(svg, `stroke="#00ffff"`) {
		t.Error("stroke colour missing")
	}
	// ends on the centre line, peak above it
	if !strings.Contains(svg, "M0.0,50.0") || !strings.Contains(svg, "L200.0,50.0") {
		t.Errorf("ends not on the centre line: %s", svg)
	}
	if !strings.Contains(svg, "L100.0,4.5") {
		t.Errorf("peak not scaled to padded height: %s", svg)
	}
}

func TestShapeToSVGFlat(t *testing.T) {
	svg, err := ShapeToSVG([]float64{0, 1}, []float64{0, 0}, 10, 10, "red")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(svg, "M0.0,5.0 L10.0,5.0") {
		t.Errorf("flat string not drawn on centre line: %s", svg)
	}
}

func TestShapeToSVGErrors(t *testing.T) {
	tests := []struct {
		name   string
		xs, ys []float64
		w, h   int
	}{
		{"mismatch", []float64{0, 1}, []float64{0}, 10, 10},
		{"single point", []float64{0}, []float64{0}, 10, 10},
		{"zero size", []float64{0, 1}, []float64{0, 0}, 0, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ShapeToSVG(tt.xs, tt.ys, tt.w, tt.h, "red"); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestShapeToSVGEscapesStroke(t *testing.T) {
	svg, err := ShapeToSVG([]float64{0, 1}, []float64{0, 0}, 10, 10, `red" onload="alert(1)`)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(svg, `onload="`) {
		t.Errorf("stroke broke out of its attribute: %s", svg)
	}
	if !strings.Contains(svg, `stroke="red&#34; onload=&#34;alert(1)"`) {
		t.Errorf("stroke not escaped: %s", svg)
	}
}
