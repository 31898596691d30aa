package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/dyadikos/internal/encoder"
	"github.com/verte-zerg/dyadikos/internal/geometry"
)

type cellKind int

const (
	cellEmpty cellKind = iota
	cellLine
	cellLineComplete
	cellPoint
	cellPointSelected
)

type cell struct {
	r    rune
	kind cellKind
}

// canvas is a character grid. Geometry runs in "units" where one column is
// one unit wide and one row is two units tall, so circles stay round on a
// terminal with tall cells.
type canvas struct {
	cols  int
	rows  int
	cells [][]cell
}

type styledRune struct {
	s     string
	width int
}

var pointLabels = []rune("0123456789AB")

func newCanvas(cols, rows int) *canvas {
	c := &canvas{cols: cols, rows: rows, cells: make([][]cell, rows)}
	for i := range c.cells {
		row := make([]cell, cols)
		for j := range row {
			row[j] = cell{r: ' '}
		}
		c.cells[i] = row
	}
	return c
}

// layoutPoints places the polygon inside a cols x rows canvas. The returned
// points are in canvas units with Y growing downward and index 0 at the top.
func layoutPoints(sides, cols, rows int, radiusFrac float64) ([]geometry.Point, error) {
	unitsW := float64(cols)
	unitsH := float64(rows * 2)
	radius := radiusFrac * math.Min(unitsW, unitsH)
	cx := (unitsW - 1) / 2
	cy := (unitsH - 1) / 2
	points, err := geometry.PointsOnCircle(sides, radius, cx, cy)
	if err != nil {
		return nil, err
	}
	for i := range points {
		points[i].Y = 2*cy - points[i].Y
	}
	return points, nil
}

func (c *canvas) cellFor(p geometry.Point) (int, int) {
	col := clampInt(int(math.Round(p.X)), 0, c.cols-1)
	row := clampInt(int(math.Round(p.Y/2)), 0, c.rows-1)
	return col, row
}

func (c *canvas) set(col, row int, r rune, kind cellKind) {
	if row < 0 || row >= c.rows || col < 0 || col >= c.cols {
		return
	}
	c.cells[row][col] = cell{r: r, kind: kind}
}

func (c *canvas) drawLine(from, to geometry.Point, kind cellKind) {
	glyph := lineGlyph(to.X-from.X, to.Y-from.Y)
	x0, y0 := c.cellFor(from)
	x1, y1 := c.cellFor(to)
	dx := absInt(x1 - x0)
	dy := -absInt(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0, glyph, kind)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func (c *canvas) drawPoint(p geometry.Point, selected bool) {
	col, row := c.cellFor(p)
	kind := cellPoint
	if selected {
		kind = cellPointSelected
	}
	c.set(col, row, pointLabel(p.Index), kind)
}

// drawBoard paints chords then points. Complete chords are painted after
// incomplete ones so shared cells show the highlight.
func (c *canvas) drawBoard(points []geometry.Point, lines []encoder.LineState, selected int) {
	for _, pass := range []bool{false, true} {
		for _, ls := range lines {
			if ls.Complete != pass {
				continue
			}
			if ls.Line.From >= len(points) || ls.Line.To >= len(points) {
				continue
			}
			kind := cellLine
			if ls.Complete {
				kind = cellLineComplete
			}
			c.drawLine(points[ls.Line.From], points[ls.Line.To], kind)
		}
	}
	for _, p := range points {
		c.drawPoint(p, p.Index == selected)
	}
}

func (c *canvas) render() string {
	lines := make([]string, 0, c.rows)
	for _, row := range c.cells {
		lines = append(lines, renderStyledRunes(c.styleRow(row)))
	}
	return strings.Join(lines, "\n")
}

// styleRow groups runs of equally styled cells and drops cells hidden behind
// wide glyphs.
func (c *canvas) styleRow(row []cell) []styledRune {
	out := make([]styledRune, 0, len(row))
	var run strings.Builder
	runKind := cellEmpty
	runWidth := 0
	flush := func() {
		if runWidth == 0 {
			return
		}
		out = append(out, styledRune{s: styleFor(runKind).Render(run.String()), width: runWidth})
		run.Reset()
		runWidth = 0
	}
	for col := 0; col < len(row); {
		cl := row[col]
		w := runewidth.RuneWidth(cl.r)
		if w < 1 {
			w = 1
		}
		if col+w > len(row) {
			cl = cell{r: ' '}
			w = 1
		}
		if cl.kind != runKind {
			flush()
			runKind = cl.kind
		}
		run.WriteRune(cl.r)
		runWidth += w
		col += w
	}
	flush()
	return out
}

func renderStyledRunes(runes []styledRune) string {
	var b strings.Builder
	for _, item := range runes {
		b.WriteString(item.s)
	}
	return b.String()
}

func styleFor(kind cellKind) lipgloss.Style {
	switch kind {
	case cellLine:
		return lineStyle
	case cellLineComplete:
		return lineCompleteStyle
	case cellPoint:
		return pointStyle
	case cellPointSelected:
		return pointSelectedStyle
	default:
		return emptyStyle
	}
}

func lineGlyph(dx, dy float64) rune {
	adx, ady := math.Abs(dx), math.Abs(dy)
	switch {
	case ady < 0.4*adx:
		return '─'
	case adx < 0.4*ady:
		return '│'
	case (dx > 0) == (dy > 0):
		return '╲'
	default:
		return '╱'
	}
}

func pointLabel(index int) rune {
	if index >= 0 && index < len(pointLabels) {
		return pointLabels[index]
	}
	return '•'
}

// labelIndex maps a typed key to a point index, or -1.
func labelIndex(s string, sides int) int {
	if runewidth.StringWidth(s) != 1 {
		return -1
	}
	r := []rune(strings.ToUpper(s))[0]
	for i, l := range pointLabels {
		if l == r && i < sides {
			return i
		}
	}
	return -1
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
