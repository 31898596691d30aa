// Package geometry places polygon vertices on a circle and measures chords
// between them.
package geometry

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrTooFewSides indicates a polygon with fewer than three vertices.
	ErrTooFewSides = errors.New("geometry: polygon needs at least 3 sides")
	// ErrSamePoint indicates a chord whose endpoints coincide.
	ErrSamePoint = errors.New("geometry: chord endpoints must differ")
	// ErrPointOutOfRange indicates a vertex index outside [0, sides).
	ErrPointOutOfRange = errors.New("geometry: point index out of range")
)

// Point is a vertex position on the polygon's circumscribed circle.
type Point struct {
	X     float64
	Y     float64
	Index int
}

// Line is an undirected chord between two vertex indices.
type Line struct {
	From int
	To   int
}

// Equal reports whether both lines join the same two vertices, in either order.
func (l Line) Equal(other Line) bool {
	return (l.From == other.From && l.To == other.To) ||
		(l.From == other.To && l.To == other.From)
}

// Normalize returns the line with From < To.
func (l Line) Normalize() Line {
	if l.From > l.To {
		return Line{From: l.To, To: l.From}
	}
	return l
}

func (l Line) String() string {
	return fmt.Sprintf("%d-%d", l.From, l.To)
}

// MaxDistance returns floor(sides/2), the number of distinct chord lengths.
func MaxDistance(sides int) int {
	if sides <= 0 {
		return 0
	}
	return sides / 2
}

// PointsOnCircle places sides points on a circle, index 0 at the top and
// proceeding clockwise.
func PointsOnCircle(sides int, radius, centerX, centerY float64) ([]Point, error) {
	if sides < 3 {
		return nil, ErrTooFewSides
	}
	slice := 2 * math.Pi / float64(sides)
	points := make([]Point, 0, sides)
	for i := 0; i < sides; i++ {
		angle := math.Pi/2 - float64(i)*slice
		points = append(points, Point{
			X:     centerX + radius*math.Cos(angle),
			Y:     centerY + radius*math.Sin(angle),
			Index: i,
		})
	}
	return points, nil
}

// ValidateLine checks that both endpoints are distinct vertices of the polygon.
func ValidateLine(l Line, sides int) error {
	if l.From < 0 || l.From >= sides || l.To < 0 || l.To >= sides {
		return fmt.Errorf("%w: %s with %d sides", ErrPointOutOfRange, l, sides)
	}
	if l.From == l.To {
		return ErrSamePoint
	}
	return nil
}

// CyclicDistance returns the minimum number of polygon edges between a and b.
func CyclicDistance(a, b, sides int) (int, error) {
	if err := ValidateLine(Line{From: a, To: b}, sides); err != nil {
		return 0, err
	}
	d := a - b
	if d < 0 {
		d = -d
	}
	return min(d, sides-d), nil
}

// AllChordsAtDistance lists every chord of the given length exactly once,
// normalized so that From < To. Chords that wrap past the last vertex, such
// as (0, 8) at distance 1 on a nonagon, are included: pairing i with
// i+distance and keeping only pairs whose first index is smaller would drop
// them and leave the distance class incomplete. A diameter
// (2*distance == sides) is reached from both of its endpoints and is only
// emitted from the smaller one.
func AllChordsAtDistance(sides, distance int) []Line {
	if distance < 1 || distance > MaxDistance(sides) {
		return nil
	}
	diameter := 2*distance == sides
	lines := make([]Line, 0, sides)
	for i := 0; i < sides; i++ {
		if diameter && i >= distance {
			break
		}
		lines = append(lines, Line{From: i, To: (i + distance) % sides}.Normalize())
	}
	return lines
}

// ChordCount returns how many chords share the given distance.
func ChordCount(sides, distance int) int {
	switch {
	case distance < 1 || distance > MaxDistance(sides):
		return 0
	case 2*distance == sides:
		return distance
	default:
		return sides
	}
}
