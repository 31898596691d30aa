package encoder

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/dyadikos/internal/geometry"
)

// ErrInvalidLine wraps geometry errors for chords that cannot be drawn.
var ErrInvalidLine = errors.New("encoder: invalid line")

// Outcome describes what happened to a connect request.
type Outcome int

const (
	// OutcomeAdded means the chord was drawn and the goal is not reached.
	OutcomeAdded Outcome = iota
	// OutcomeSolved means the chord was drawn and reached the goal.
	OutcomeSolved
	// OutcomeDuplicate means the chord was already drawn.
	OutcomeDuplicate
	// OutcomeFrozen means the attempt is solved and ignores further input.
	OutcomeFrozen
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAdded:
		return "added"
	case OutcomeSolved:
		return "solved"
	case OutcomeDuplicate:
		return "duplicate"
	case OutcomeFrozen:
		return "frozen"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// LineState pairs a drawn chord with whether its distance class is complete.
type LineState struct {
	Line     geometry.Line
	Complete bool
}

// Attempt owns the drawn set of one play-through of a puzzle. Once the goal
// is reached the board is frozen until Reset.
type Attempt struct {
	sides  int
	goal   int
	drawn  []geometry.Line
	solved bool
}

// NewAttempt starts an empty attempt for a polygon with the given goal.
func NewAttempt(sides, goal int) *Attempt {
	return &Attempt{sides: sides, goal: goal}
}

// Sides returns the polygon size.
func (a *Attempt) Sides() int { return a.sides }

// Goal returns the target decimal value.
func (a *Attempt) Goal() int { return a.goal }

// Solved reports whether the goal has been reached.
func (a *Attempt) Solved() bool { return a.solved }

// Connect draws the chord between two vertices.
func (a *Attempt) Connect(from, to int) (Outcome, error) {
	line := geometry.Line{From: from, To: to}
	if err := geometry.ValidateLine(line, a.sides); err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidLine, err)
	}
	if a.solved {
		return OutcomeFrozen, nil
	}
	if containsLine(a.drawn, line) {
		return OutcomeDuplicate, nil
	}
	a.drawn = append(a.drawn, line)
	if HasReachedGoal(a.drawn, a.goal, a.sides) {
		a.solved = true
		return OutcomeSolved, nil
	}
	return OutcomeAdded, nil
}

// Lines returns a copy of the drawn chords in drawing order.
func (a *Attempt) Lines() []geometry.Line {
	out := make([]geometry.Line, len(a.drawn))
	copy(out, a.drawn)
	return out
}

// LineStates returns the drawn chords with their completion flags.
func (a *Attempt) LineStates() []LineState {
	out := make([]LineState, 0, len(a.drawn))
	for _, l := range a.drawn {
		out = append(out, LineState{Line: l, Complete: IsLineComplete(l, a.drawn, a.sides)})
	}
	return out
}

// Value returns the current board reading.
func (a *Attempt) Value() Value {
	return CurrentValue(a.drawn, a.sides)
}

// Reset clears the drawn set and unfreezes the board.
func (a *Attempt) Reset() {
	a.drawn = nil
	a.solved = false
}
