package progress

import (
	"context"
	"sync"
)

type writeOp struct {
	ids    []string
	delete bool
}

// writer persists snapshots on its own goroutine. Only the newest pending
// snapshot is kept: every op carries the full state, so older ones are stale.
type writer struct {
	persister Persister
	logf      Logger

	mu      sync.Mutex
	pending *writeOp
	closed  bool
	wake    chan struct{}
	done    chan struct{}
}

func newWriter(p Persister, logf Logger) *writer {
	w := &writer{
		persister: p,
		logf:      logf,
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	go w.run()
	return w
}

func (w *writer) enqueue(op writeOp) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	w.pending = &op
	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *writer) run() {
	defer close(w.done)
	for range w.wake {
		for {
			w.mu.Lock()
			op := w.pending
			w.pending = nil
			w.mu.Unlock()
			if op == nil {
				break
			}
			apply(context.Background(), w.persister, w.logf, *op)
		}
	}
}

// close stops accepting writes and waits until pending ones are applied or
// ctx ends.
func (w *writer) close(ctx context.Context) error {
	w.mu.Lock()
	if !w.closed {
		w.closed = true
		close(w.wake)
	}
	w.mu.Unlock()
	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func apply(ctx context.Context, p Persister, logf Logger, op writeOp) {
	if op.delete {
		if err := p.Delete(ctx); err != nil {
			logf("failed to delete progress: %v\n", err)
		}
		return
	}
	if err := p.Save(ctx, op.ids); err != nil {
		logf("failed to save progress: %v\n", err)
	}
}
