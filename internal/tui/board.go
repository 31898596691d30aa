package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/dyadikos/internal/catalog"
	"github.com/verte-zerg/dyadikos/internal/encoder"
	"github.com/verte-zerg/dyadikos/internal/geometry"
)

const (
	boardHeaderLines = 3
	boardFooterLines = 1
	minCanvasCols    = 12
	minCanvasRows    = 6

	// DefaultRadius is the polygon radius as a fraction of the shorter canvas side.
	DefaultRadius = 0.42
	// DefaultTolerance is the mouse hit radius in canvas units.
	DefaultTolerance = 2.5
)

type boardState int

const (
	boardPlaying boardState = iota
	boardNotFound
	boardLocked
)

// board is one attempt at one puzzle.
type board struct {
	puzzle    catalog.Puzzle
	state     boardState
	attempt   *encoder.Attempt
	selected  int
	notice    string
	radius    float64
	tolerance float64

	cols   int
	rows   int
	points []geometry.Point
}

func newBoard(p catalog.Puzzle, found, unlocked bool, radius, tolerance float64) *board {
	if radius <= 0 || radius > 0.5 {
		radius = DefaultRadius
	}
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	b := &board{
		puzzle:    p,
		selected:  -1,
		radius:    radius,
		tolerance: tolerance,
	}
	switch {
	case !found:
		b.state = boardNotFound
	case !unlocked:
		b.state = boardLocked
	default:
		b.attempt = encoder.NewAttempt(p.Sides, p.GoalNumber)
	}
	return b
}

func (b *board) playing() bool {
	return b.state == boardPlaying
}

func (b *board) solved() bool {
	return b.playing() && b.attempt.Solved()
}

// resize recomputes the point layout for a new terminal size.
func (b *board) resize(width, height int) {
	b.cols = width
	b.rows = height - boardHeaderLines - boardFooterLines
	b.points = nil
	if !b.playing() || b.cols < minCanvasCols || b.rows < minCanvasRows {
		return
	}
	points, err := layoutPoints(b.puzzle.Sides, b.cols, b.rows, b.radius)
	if err != nil {
		b.notice = err.Error()
		return
	}
	b.points = points
}

// pressLabel handles a typed point label. The first press selects a point,
// pressing it again clears the selection, and a second point draws the chord.
func (b *board) pressLabel(idx int) (encoder.Outcome, bool) {
	if !b.playing() || idx < 0 {
		return 0, false
	}
	switch b.selected {
	case -1:
		if b.attempt.Solved() {
			b.notice = "Solved. Press n for the next puzzle or r to play again."
			return encoder.OutcomeFrozen, false
		}
		b.selected = idx
		b.notice = fmt.Sprintf("From %c: pick the other end.", pointLabel(idx))
		return 0, false
	case idx:
		b.selected = -1
		b.notice = ""
		return 0, false
	default:
		from := b.selected
		b.selected = -1
		return b.connect(from, idx), true
	}
}

// press handles a mouse press or release on a canvas cell. A press selects a
// point (or finishes a click-click chord); a release on a different point
// finishes a drag.
func (b *board) press(col, row int, release bool) (encoder.Outcome, bool) {
	idx, ok := b.pointAt(col, row)
	if !ok {
		return 0, false
	}
	if release {
		if b.selected == -1 || b.selected == idx {
			return 0, false
		}
		return b.pressLabel(idx)
	}
	if b.selected == idx {
		return 0, false
	}
	return b.pressLabel(idx)
}

func (b *board) pointAt(col, row int) (int, bool) {
	if len(b.points) == 0 {
		return -1, false
	}
	p, ok := geometry.NearestPoint(b.points, float64(col), float64(row*2), b.tolerance)
	if !ok {
		return -1, false
	}
	return p.Index, true
}

func (b *board) connect(from, to int) encoder.Outcome {
	out, err := b.attempt.Connect(from, to)
	if err != nil {
		switch {
		case errors.Is(err, geometry.ErrSamePoint):
			b.notice = "Pick two different points."
		default:
			b.notice = err.Error()
		}
		return out
	}
	switch out {
	case encoder.OutcomeDuplicate:
		b.notice = fmt.Sprintf("%c-%c is already drawn.", pointLabel(from), pointLabel(to))
	case encoder.OutcomeFrozen:
		b.notice = "Solved. Press n for the next puzzle or r to play again."
	case encoder.OutcomeSolved:
		b.notice = ""
	default:
		d, _ := geometry.CyclicDistance(from, to, b.puzzle.Sides)
		b.notice = fmt.Sprintf("Drew %c-%c (distance %d, %d/%d drawn).",
			pointLabel(from), pointLabel(to), d, countAtDistance(b.attempt.Lines(), d, b.puzzle.Sides), geometry.ChordCount(b.puzzle.Sides, d))
	}
	return out
}

func (b *board) restart() {
	if !b.playing() {
		return
	}
	b.attempt.Reset()
	b.selected = -1
	b.notice = "Board cleared."
}

func (b *board) headerView() string {
	switch b.state {
	case boardNotFound:
		return padLines(titleStyle.Render("Puzzle not found."), boardHeaderLines)
	case boardLocked:
		return padLines(titleStyle.Render("This puzzle is locked."), boardHeaderLines)
	}
	total := catalog.PuzzleCountForSides(b.puzzle.Sides)
	title := titleStyle.Render(fmt.Sprintf("%s · Puzzle %d of %d", catalog.ShapeName(b.puzzle.Sides), b.puzzle.PuzzleNumber, total))

	width := catalog.BinarySlotCount(b.puzzle.Sides)
	value := b.attempt.Value()
	goal := goalStyle.Render(fmt.Sprintf("Goal %d", b.puzzle.GoalNumber))
	if b.attempt.Solved() {
		goal += " " + successStyle.Render("✓")
	}
	values := fmt.Sprintf("%s  %s   Now %s = %d",
		goal,
		mutedStyle.Render(encoder.BinaryString(b.puzzle.GoalNumber, width)),
		binaryStyle.Render(value.Binary),
		value.Decimal,
	)

	status := mutedStyle.Render(b.notice)
	if b.attempt.Solved() {
		status = successStyle.Render("Solved! ") + mutedStyle.Render("n: next puzzle  r: play again")
	}
	return strings.Join([]string{title, values, status}, "\n")
}

func (b *board) canvasView() string {
	if !b.playing() {
		return ""
	}
	if len(b.points) == 0 {
		return errorStyle.Render("Window too small to draw the board.")
	}
	c := newCanvas(b.cols, b.rows)
	c.drawBoard(b.points, b.attempt.LineStates(), b.selected)
	return c.render()
}

func countAtDistance(lines []geometry.Line, distance, sides int) int {
	n := 0
	for _, l := range lines {
		if d, err := geometry.CyclicDistance(l.From, l.To, sides); err == nil && d == distance {
			n++
		}
	}
	return n
}

func padLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	for len(lines) < n {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
