// Package encoder turns a set of drawn chords into the puzzle's binary value.
//
// Each chord length (distance) d owns bit d-1. A bit is set only once every
// chord of that length has been drawn.
package encoder

import (
	"strconv"
	"strings"

	"github.com/verte-zerg/dyadikos/internal/geometry"
)

// Value is the current reading of a board.
type Value struct {
	Binary  string
	Decimal int
}

// DistanceToBit maps a chord distance to its bit position.
func DistanceToBit(distance int) int {
	return distance - 1
}

// BitToDistance maps a bit position back to its chord distance.
func BitToDistance(bit int) int {
	return bit + 1
}

// IsDistanceComplete reports whether every chord of the given distance is in drawn.
func IsDistanceComplete(drawn []geometry.Line, distance, sides int) bool {
	if distance < 1 || distance > geometry.MaxDistance(sides) {
		return false
	}
	for _, want := range geometry.AllChordsAtDistance(sides, distance) {
		if !containsLine(drawn, want) {
			return false
		}
	}
	return true
}

// CompleteBitPositions returns the bit positions of all complete distances, ascending.
func CompleteBitPositions(drawn []geometry.Line, sides int) []int {
	var bits []int
	for d := 1; d <= geometry.MaxDistance(sides); d++ {
		if IsDistanceComplete(drawn, d, sides) {
			bits = append(bits, DistanceToBit(d))
		}
	}
	return bits
}

// CurrentValue renders the complete bit positions as a fixed-width binary
// string (most significant bit first) and its decimal value.
func CurrentValue(drawn []geometry.Line, sides int) Value {
	width := geometry.MaxDistance(sides)
	if width == 0 {
		return Value{Binary: "0"}
	}
	set := make([]bool, width)
	decimal := 0
	for _, bit := range CompleteBitPositions(drawn, sides) {
		set[bit] = true
		decimal += 1 << bit
	}
	var b strings.Builder
	b.Grow(width)
	for bit := width - 1; bit >= 0; bit-- {
		if set[bit] {
			b.WriteByte('1')
		} else {
			b.WriteByte('0')
		}
	}
	return Value{Binary: b.String(), Decimal: decimal}
}

// IsLineComplete reports whether the distance class of line is fully drawn.
// It only drives highlighting; goal checks go through HasReachedGoal.
func IsLineComplete(line geometry.Line, drawn []geometry.Line, sides int) bool {
	d, err := geometry.CyclicDistance(line.From, line.To, sides)
	if err != nil {
		return false
	}
	return IsDistanceComplete(drawn, d, sides)
}

// HasReachedGoal reports whether the board value equals goal exactly.
func HasReachedGoal(drawn []geometry.Line, goal, sides int) bool {
	return CurrentValue(drawn, sides).Decimal == goal
}

// RequiredDistances lists the distances whose bits are set in goal, ascending.
func RequiredDistances(goal, sides int) []int {
	var out []int
	for bit := 0; bit < geometry.MaxDistance(sides); bit++ {
		if goal&(1<<bit) != 0 {
			out = append(out, BitToDistance(bit))
		}
	}
	return out
}

// BinaryString formats n in base 2, left padded with zeros to width.
func BinaryString(n, width int) string {
	s := strconv.FormatInt(int64(n), 2)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

func containsLine(lines []geometry.Line, want geometry.Line) bool {
	for _, l := range lines {
		if l.Equal(want) {
			return true
		}
	}
	return false
}
