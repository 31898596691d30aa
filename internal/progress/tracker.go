// Package progress tracks completed puzzles and derives what is unlocked.
//
// The Tracker's in-memory set is the source of truth. Persistence is
// best-effort and eventually consistent: load failures behave like an empty
// record and write failures are logged and dropped.
package progress

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/verte-zerg/dyadikos/internal/catalog"
)

// Persister loads and stores the completed set.
type Persister interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, ids []string) error
	Delete(ctx context.Context) error
}

// Logger receives persistence failures.
type Logger func(format string, args ...any)

// Status is the unlock state of a shape or puzzle.
type Status int

const (
	StatusLocked Status = iota
	StatusUnlocked
	StatusComplete
)

func (s Status) String() string {
	switch s {
	case StatusLocked:
		return "locked"
	case StatusUnlocked:
		return "unlocked"
	case StatusComplete:
		return "complete"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets where persistence failures are reported.
func WithLogger(logf Logger) Option {
	return func(t *Tracker) {
		if logf != nil {
			t.logf = logf
		}
	}
}

// WithSyncWrites applies writes on the caller's goroutine.
func WithSyncWrites() Option {
	return func(t *Tracker) {
		t.syncWrites = true
	}
}

// Tracker holds the completed-puzzle set for one session.
type Tracker struct {
	persister  Persister
	logf       Logger
	syncWrites bool
	writer     *writer

	mu           sync.RWMutex
	completed    map[string]struct{}
	hydrated     bool
	dirty        bool
	pendingReset bool
	subscribers  []func()
}

// New creates an empty, not yet hydrated Tracker.
func New(p Persister, opts ...Option) *Tracker {
	t := &Tracker{
		persister: p,
		logf:      logErrf,
		completed: map[string]struct{}{},
	}
	for _, opt := range opts {
		opt(t)
	}
	if !t.syncWrites {
		t.writer = newWriter(p, t.logf)
	}
	return t
}

// Hydrate loads the persisted record once. Ids marked complete before it
// finishes are kept; a reset issued before it finishes discards the record.
func (t *Tracker) Hydrate(ctx context.Context) {
	t.mu.RLock()
	done := t.hydrated
	t.mu.RUnlock()
	if done {
		return
	}

	ids, err := t.persister.Load(ctx)
	if err != nil {
		t.logf("failed to load progress: %v\n", err)
		ids = nil
	}

	t.mu.Lock()
	if t.hydrated {
		t.mu.Unlock()
		return
	}
	t.hydrated = true
	var ops []writeOp
	if t.pendingReset {
		ops = append(ops, writeOp{delete: true})
		if len(t.completed) > 0 {
			ops = append(ops, writeOp{ids: t.snapshotLocked()})
		}
	} else {
		for _, id := range ids {
			t.completed[id] = struct{}{}
		}
		if t.dirty {
			ops = append(ops, writeOp{ids: t.snapshotLocked()})
		}
	}
	t.dirty = false
	t.pendingReset = false
	for _, op := range ops {
		t.persist(op)
	}
	t.mu.Unlock()
	t.notify()
}

// Hydrated reports whether Hydrate has finished.
func (t *Tracker) Hydrated() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.hydrated
}

// MarkPuzzleComplete adds id to the completed set. Repeated calls are no-ops.
func (t *Tracker) MarkPuzzleComplete(id string) {
	t.mu.Lock()
	if _, ok := t.completed[id]; ok {
		t.mu.Unlock()
		return
	}
	t.completed[id] = struct{}{}
	if t.hydrated {
		t.persist(writeOp{ids: t.snapshotLocked()})
	} else {
		t.dirty = true
	}
	t.mu.Unlock()
	t.notify()
}

// ResetProgress empties the completed set and deletes the persisted record.
func (t *Tracker) ResetProgress() {
	t.mu.Lock()
	t.completed = map[string]struct{}{}
	if t.hydrated {
		t.persist(writeOp{delete: true})
	} else {
		t.pendingReset = true
		t.dirty = false
	}
	t.mu.Unlock()
	t.notify()
}

// Subscribe registers fn to run after every change to the completed set.
func (t *Tracker) Subscribe(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.subscribers = append(t.subscribers, fn)
}

// Close waits for pending writes.
func (t *Tracker) Close(ctx context.Context) error {
	if t.writer == nil {
		return nil
	}
	return t.writer.close(ctx)
}

// Completed returns the completed ids, sorted.
func (t *Tracker) Completed() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.snapshotLocked()
}

// IsPuzzleComplete reports whether id has been completed.
func (t *Tracker) IsPuzzleComplete(id string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.completed[id]
	return ok
}

// CompletedCount returns how many puzzles of a shape are complete.
func (t *Tracker) CompletedCount(sides int) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	total := catalog.PuzzleCountForSides(sides)
	count := 0
	for id := range t.completed {
		s, n, err := catalog.ParsePuzzleID(id)
		if err == nil && s == sides && n >= 1 && n <= total {
			count++
		}
	}
	return count
}

// IsShapeComplete reports whether every puzzle of a shape is complete. A
// shape without puzzles is never complete.
func (t *Tracker) IsShapeComplete(sides int) bool {
	total := catalog.PuzzleCountForSides(sides)
	return total > 0 && t.CompletedCount(sides) == total
}

// IsShapeUnlocked reports whether a shape is playable: the first shape
// always is, later ones once the preceding shape is complete. Sizes outside
// the shape list are treated as unlocked.
func (t *Tracker) IsShapeUnlocked(sides int) bool {
	i := catalog.ShapeIndex(sides)
	if i <= 0 {
		return true
	}
	return t.IsShapeComplete(catalog.Shapes()[i-1].Sides)
}

// IsPuzzleUnlocked reports whether puzzle n of a shape is playable. Puzzles
// unlock one after another inside an unlocked shape.
func (t *Tracker) IsPuzzleUnlocked(sides, n int) bool {
	if !t.IsShapeUnlocked(sides) {
		return false
	}
	if n <= 1 {
		return true
	}
	return t.IsPuzzleComplete(catalog.PuzzleID(sides, n-1))
}

// PuzzleStatus combines unlock and completion state for one puzzle.
func (t *Tracker) PuzzleStatus(sides, n int) Status {
	switch {
	case t.IsPuzzleComplete(catalog.PuzzleID(sides, n)):
		return StatusComplete
	case t.IsPuzzleUnlocked(sides, n):
		return StatusUnlocked
	default:
		return StatusLocked
	}
}

// ShapeStatus combines unlock and completion state for one shape.
func (t *Tracker) ShapeStatus(sides int) Status {
	switch {
	case t.IsShapeComplete(sides):
		return StatusComplete
	case t.IsShapeUnlocked(sides):
		return StatusUnlocked
	default:
		return StatusLocked
	}
}

func (t *Tracker) snapshotLocked() []string {
	ids := make([]string, 0, len(t.completed))
	for id := range t.completed {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// persist must be called with t.mu held so writes are queued in the same
// order the set changed.
func (t *Tracker) persist(op writeOp) {
	if t.syncWrites {
		apply(context.Background(), t.persister, t.logf, op)
		return
	}
	t.writer.enqueue(op)
}

func (t *Tracker) notify() {
	t.mu.RLock()
	subs := append([]func(){}, t.subscribers...)
	t.mu.RUnlock()
	for _, fn := range subs {
		fn()
	}
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
