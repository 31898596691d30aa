// Package catalog generates the fixed puzzle list for every supported shape.
//
// A shape with B = sides/2 distinct chord lengths has one puzzle for every
// nonzero B-bit value; puzzle n asks for the value n.
package catalog

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
	"strings"
	"sync"

	"github.com/verte-zerg/dyadikos/internal/encoder"
	"github.com/verte-zerg/dyadikos/internal/geometry"
)

// ErrBadPuzzleID indicates an id that is not of the form "{sides}-{nnn}".
var ErrBadPuzzleID = errors.New("catalog: malformed puzzle id")

// ShapeLevel is one unlockable polygon size.
type ShapeLevel struct {
	Sides int
	Name  string
}

// Puzzle is one catalog entry.
type Puzzle struct {
	ID           string
	Sides        int
	PuzzleNumber int
	GoalNumber   int
	Description  string
}

var shapeLevels = []ShapeLevel{
	{Sides: 4, Name: "Square"},
	{Sides: 5, Name: "Pentagon"},
	{Sides: 6, Name: "Hexagon"},
	{Sides: 7, Name: "Heptagon"},
	{Sides: 8, Name: "Octagon"},
	{Sides: 9, Name: "Nonagon"},
	{Sides: 10, Name: "Decagon"},
	{Sides: 11, Name: "Hendecagon"},
	{Sides: 12, Name: "Dodecagon"},
}

var (
	allOnce sync.Once
	all     []Puzzle
	byID    map[string]int
)

// Shapes returns the ordered shape levels.
func Shapes() []ShapeLevel {
	out := make([]ShapeLevel, len(shapeLevels))
	copy(out, shapeLevels)
	return out
}

// ShapeIndex returns the position of sides in the shape order, or -1.
func ShapeIndex(sides int) int {
	for i, s := range shapeLevels {
		if s.Sides == sides {
			return i
		}
	}
	return -1
}

// ShapeName returns the display name of a shape.
func ShapeName(sides int) string {
	if i := ShapeIndex(sides); i >= 0 {
		return shapeLevels[i].Name
	}
	return fmt.Sprintf("%d-gon", sides)
}

// BinarySlotCount returns the number of bits a polygon can express.
func BinarySlotCount(sides int) int {
	return geometry.MaxDistance(sides)
}

// PuzzleCountForSides returns the number of nonzero values representable in
// BinarySlotCount(sides) bits. Polygons whose count does not fit an int have
// no puzzles.
func PuzzleCountForSides(sides int) int {
	b := BinarySlotCount(sides)
	if b <= 0 || b >= bits.UintSize-1 {
		return 0
	}
	return 1<<b - 1
}

// PuzzleID builds the id of puzzle n for a shape.
func PuzzleID(sides, n int) string {
	return fmt.Sprintf("%d-%03d", sides, n)
}

// ParsePuzzleID splits an id produced by PuzzleID. Only the canonical form
// is accepted: decimal digits on both sides, the number zero-padded to
// exactly three digits (more only when it needs them).
func ParsePuzzleID(id string) (sides, n int, err error) {
	left, right, ok := strings.Cut(id, "-")
	if !ok || !isDigits(left) || !isDigits(right) {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadPuzzleID, id)
	}
	sides, err = strconv.Atoi(left)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadPuzzleID, id)
	}
	n, err = strconv.Atoi(right)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadPuzzleID, id)
	}
	if PuzzleID(sides, n) != id {
		return 0, 0, fmt.Errorf("%w: %q", ErrBadPuzzleID, id)
	}
	return sides, n, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// PuzzlesForSides generates the puzzles of one shape in order.
func PuzzlesForSides(sides int) []Puzzle {
	count := PuzzleCountForSides(sides)
	puzzles := make([]Puzzle, 0, count)
	for n := 1; n <= count; n++ {
		puzzles = append(puzzles, newPuzzle(sides, n))
	}
	return puzzles
}

// PuzzleBySidesAndNumber finds puzzle n of a polygon. It is absent when n is
// outside [1, PuzzleCountForSides(sides)]. Only the requested entry is built.
func PuzzleBySidesAndNumber(sides, n int) (Puzzle, bool) {
	if n < 1 || n > PuzzleCountForSides(sides) {
		return Puzzle{}, false
	}
	return newPuzzle(sides, n), true
}

func newPuzzle(sides, n int) Puzzle {
	return Puzzle{
		ID:           PuzzleID(sides, n),
		Sides:        sides,
		PuzzleNumber: n,
		GoalNumber:   n,
		Description:  "Binary: " + encoder.BinaryString(n, BinarySlotCount(sides)),
	}
}

// Next returns the puzzle after p within the same shape.
func Next(p Puzzle) (Puzzle, bool) {
	return PuzzleBySidesAndNumber(p.Sides, p.PuzzleNumber+1)
}

func load() {
	allOnce.Do(func() {
		for _, s := range shapeLevels {
			all = append(all, PuzzlesForSides(s.Sides)...)
		}
		byID = make(map[string]int, len(all))
		for i, p := range all {
			byID[p.ID] = i
		}
	})
}

// All returns the full catalog in global order.
func All() []Puzzle {
	load()
	out := make([]Puzzle, len(all))
	copy(out, all)
	return out
}

// TotalPuzzles returns the size of the full catalog.
func TotalPuzzles() int {
	load()
	return len(all)
}

// PuzzleByIndex returns the puzzle at a global catalog index.
func PuzzleByIndex(i int) (Puzzle, bool) {
	load()
	if i < 0 || i >= len(all) {
		return Puzzle{}, false
	}
	return all[i], true
}

// IndexOf returns the global index of id, or -1.
func IndexOf(id string) int {
	load()
	if i, ok := byID[id]; ok {
		return i
	}
	return -1
}

// PuzzleByID looks up a puzzle in the full catalog.
func PuzzleByID(id string) (Puzzle, bool) {
	i := IndexOf(id)
	if i < 0 {
		return Puzzle{}, false
	}
	return all[i], true
}
