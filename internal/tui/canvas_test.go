package tui

import (
	"strings"
	"testing"

	"github.com/verte-zerg/dyadikos/internal/encoder"
	"github.com/verte-zerg/dyadikos/internal/geometry"
)

func TestLayoutPointsStartsAtTopClockwise(t *testing.T) {
	points, err := layoutPoints(4, 40, 20, 0.4)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if len(points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(points))
	}
	for i, p := range points[1:] {
		if points[0].Y >= p.Y {
			t.Fatalf("point 0 should be highest, point %d is at y=%.2f", i+1, p.Y)
		}
	}
	if points[1].X <= points[3].X {
		t.Fatalf("point 1 should be right of point 3: %.2f vs %.2f", points[1].X, points[3].X)
	}
	for _, p := range points {
		if p.X < 0 || p.X > 40 || p.Y < 0 || p.Y > 40 {
			t.Fatalf("point %d outside canvas: %+v", p.Index, p)
		}
	}
}

func TestLabelIndex(t *testing.T) {
	cases := []struct {
		in    string
		sides int
		want  int
	}{
		{"0", 4, 0},
		{"3", 4, 3},
		{"4", 4, -1},
		{"a", 12, 10},
		{"B", 12, 11},
		{"a", 9, -1},
		{"enter", 12, -1},
		{"", 12, -1},
	}
	for _, tc := range cases {
		if got := labelIndex(tc.in, tc.sides); got != tc.want {
			t.Fatalf("labelIndex(%q, %d) = %d, want %d", tc.in, tc.sides, got, tc.want)
		}
	}
}

func TestLineGlyph(t *testing.T) {
	cases := []struct {
		dx, dy float64
		want   rune
	}{
		{5, 0, '─'},
		{0, -5, '│'},
		{3, 3, '╲'},
		{-3, -3, '╲'},
		{3, -3, '╱'},
	}
	for _, tc := range cases {
		if got := lineGlyph(tc.dx, tc.dy); got != tc.want {
			t.Fatalf("lineGlyph(%.0f, %.0f) = %q, want %q", tc.dx, tc.dy, got, tc.want)
		}
	}
}

func TestDrawBoardRendersPointsAndChords(t *testing.T) {
	points, err := layoutPoints(6, 40, 20, 0.4)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	c := newCanvas(40, 20)
	lines := []encoder.LineState{
		{Line: geometry.Line{From: 0, To: 3}, Complete: false},
	}
	c.drawBoard(points, lines, 0)

	out := c.render()
	if got := len(strings.Split(out, "\n")); got != 20 {
		t.Fatalf("expected 20 rows, got %d", got)
	}
	for _, label := range []string{"0", "1", "2", "3", "4", "5"} {
		if !strings.Contains(out, label) {
			t.Fatalf("missing point label %s in:\n%s", label, out)
		}
	}
	if !strings.Contains(out, "│") {
		t.Fatalf("expected a vertical diameter in:\n%s", out)
	}

	col, row := c.cellFor(points[0])
	if c.cells[row][col].kind != cellPointSelected {
		t.Fatalf("selected point should be highlighted, got kind %d", c.cells[row][col].kind)
	}
}

func TestDrawBoardSkipsUnknownPoints(t *testing.T) {
	points, err := layoutPoints(4, 20, 10, 0.4)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	c := newCanvas(20, 10)
	c.drawBoard(points, []encoder.LineState{{Line: geometry.Line{From: 0, To: 9}}}, -1)
	for _, row := range c.cells {
		for _, cl := range row {
			if cl.kind == cellLine || cl.kind == cellLineComplete {
				t.Fatalf("chord to a missing point should not be drawn")
			}
		}
	}
}
