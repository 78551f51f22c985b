// Package export renders displacement frames as standalone SVG.
package export

import (
	"fmt"
	"html"
	"math"
	"strings"
)

const padding = 0.1

// ShapeToSVG draws ys over xs as a polyline. The vertical range is symmetric
// about zero so the rest position sits on the centre line, which is drawn in
// a muted colour.
func ShapeToSVG(xs, ys []float64, width, height int, stroke string) (string, error) {
	if len(xs) != len(ys) {
		return "", fmt.Errorf("export: %d positions but %d displacements", len(xs), len(ys))
	}
	if len(xs) < 2 {
		return "", fmt.Errorf("export: need at least 2 points, got %d", len(xs))
	}
	if width <= 0 || height <= 0 {
		return "", fmt.Errorf("export: invalid size %dx%d", width, height)
	}

	minX, maxX := xs[0], xs[len(xs)-1]
	rangeX := maxX - minX
	if rangeX == 0 {
		rangeX = 1
	}
	amp := 0.0
	for _, y := range ys {
		amp = math.Max(amp, math.Abs(y))
	}
	if amp == 0 {
		amp = 1
	}
	amp *= 1 + padding

	w, h := float64(width), float64(height)
	mid := h / 2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<line x1="0" y1="%.1f" x2="%d" y2="%.1f" stroke="#444466" stroke-dasharray="4 4"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, mid, width, mid, html.EscapeString(stroke))

	for i := range xs {
		x := (xs[i] - minX) / rangeX * w
		y := mid - ys[i]/amp*mid
		if i == 0 {
			fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String(), nil
}
