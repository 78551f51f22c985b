package viz

import "strings"

const blank = '⠀'

// dotBits maps a dot at (row, col) inside a braille cell to its bit.
var dotBits = [4][2]rune{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of braille cells addressed in dot coordinates.
type Canvas struct {
	cols, rows int
	cells      [][]rune
}

func NewCanvas(cols, rows int) *Canvas {
	c := &Canvas{}
	c.Resize(cols, rows)
	return c
}

// Resize reallocates the grid and clears it. Sizes below one cell are
// raised to one.
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 1), max(rows, 1)
	c.cells = make([][]rune, c.rows)
	for i := range c.cells {
		c.cells[i] = make([]rune, c.cols)
	}
	c.Clear()
}

// Dots returns the drawable size in dots.
func (c *Canvas) Dots() (w, h int) { return c.cols * 2, c.rows * 4 }

func (c *Canvas) Cols() int { return c.cols }

func (c *Canvas) Clear() {
	for _, row := range c.cells {
		for j := range row {
			row[j] = blank
		}
	}
}

func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 || x >= c.cols*2 || y >= c.rows*4 {
		return
	}
	c.cells[y/4][x/2] |= dotBits[y%4][x%2]
}

func (c *Canvas) IsSet(x, y int) bool {
	if x < 0 || y < 0 || x >= c.cols*2 || y >= c.rows*4 {
		return false
	}
	return c.cells[y/4][x/2]&dotBits[y%4][x%2] != 0
}

// Line draws from (x0, y0) to (x1, y1) with Bresenham's algorithm.
func (c *Canvas) Line(x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), -abs(y1-y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

// Trace draws ys stretched across the full width. amp is the displacement
// that reaches the top or bottom edge; zero sits on the middle row of dots.
func (c *Canvas) Trace(ys []float64, amp float64) {
	if len(ys) < 2 || amp <= 0 {
		return
	}
	w, h := c.Dots()
	mid := float64(h-1) / 2
	toDot := func(i int) (int, int) {
		x := i * (w - 1) / (len(ys) - 1)
		y := int(mid - ys[i]/amp*mid + 0.5)
		return x, clamp(y, 0, h-1)
	}

	px, py := toDot(0)
	for i := 1; i < len(ys); i++ {
		x, y := toDot(i)
		if x == px && y == py {
			continue
		}
		c.Line(px, py, x, y)
		px, py = x, y
	}
}

// Column marks every other dot in a vertical line at dot column x.
func (c *Canvas) Column(x int) {
	_, h := c.Dots()
	for y := 0; y < h; y += 2 {
		c.Set(x, y)
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for i, row := range c.cells {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(string(row))
	}
	return b.String()
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
