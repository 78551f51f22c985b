package viz

import (
	"strings"
	"testing"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if got := c.String(); got != "⠁⢀" {
		t.Errorf("String() = %q", got)
	}
	if !c.IsSet(0, 0) || c.IsSet(1, 0) {
		t.Error("IsSet mismatch")
	}
}

func TestCanvasLine(t *testing.T) {
	c := NewCanvas(4, 2)
	c.Line(0, 0, 7, 7)
	for i := 0; i < 8; i++ {
		if !c.IsSet(i, i) {
			t.Errorf("diagonal dot (%d,%d) missing", i, i)
		}
	}
}

func TestCanvasTrace(t *testing.T) {
	c := NewCanvas(10, 3)
	c.Trace([]float64{0, 1, 0}, 1)
	w, h := c.Dots()
	mid := (h - 1) / 2

	if !c.IsSet(0, mid) && !c.IsSet(0, mid+1) {
		t.Error("left end not on the centre line")
	}
	if !c.IsSet((w-1)/2, 0) {
		t.Error("peak should touch the top edge")
	}

	c.Clear()
	if strings.Trim(c.String(), "⠀\n") != "" {
		t.Error("Clear left dots behind")
	}
}
