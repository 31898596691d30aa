package stats

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/verte-zerg/dyadikos/internal/catalog"
	"github.com/verte-zerg/dyadikos/internal/model"
	"github.com/verte-zerg/dyadikos/internal/progress"
	"github.com/verte-zerg/dyadikos/internal/store"
)

func TestBuildReport(t *testing.T) {
	dir := t.TempDir()
	st, err := store.Open(filepath.Join(dir, "dyadikos.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})

	ctx := context.Background()
	tr := progress.New(progress.NewKVPersister(st), progress.WithSyncWrites())
	tr.Hydrate(ctx)

	ids := []string{"4-001", "4-002", "4-003", "5-001"}
	for i, id := range ids {
		tr.MarkPuzzleComplete(id)
		sides, n, err := catalog.ParsePuzzleID(id)
		if err != nil {
			t.Fatalf("parse %s: %v", id, err)
		}
		err = st.RecordCompletion(ctx, model.Completion{
			PuzzleID:     id,
			Sides:        sides,
			PuzzleNumber: n,
			CompletedAt:  time.Unix(int64(i)*60, 0).UTC(),
		})
		if err != nil {
			t.Fatalf("record %s: %v", id, err)
		}
	}

	report, err := BuildReport(ctx, st, tr, 2)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if report.Completed != 4 {
		t.Fatalf("expected 4 completed, got %d", report.Completed)
	}
	if report.Total != 175 {
		t.Fatalf("expected 175 puzzles, got %d", report.Total)
	}
	if len(report.Shapes) != len(catalog.Shapes()) {
		t.Fatalf("expected %d shapes, got %d", len(catalog.Shapes()), len(report.Shapes))
	}
	if !report.Shapes[1].Unlocked || report.Shapes[2].Unlocked {
		t.Fatalf("unexpected unlock flags: %+v", report.Shapes[:3])
	}
	if report.Shapes[0].Completed != 3 || report.Shapes[1].Completed != 1 {
		t.Fatalf("unexpected counts: %+v", report.Shapes[:2])
	}
	if len(report.Recent) != 2 || report.Recent[0].PuzzleID != "5-001" || report.Recent[1].PuzzleID != "4-003" {
		t.Fatalf("unexpected recent completions: %+v", report.Recent)
	}

	noHistory, err := BuildReport(ctx, st, tr, 0)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if noHistory.Recent != nil {
		t.Fatalf("expected no history, got %+v", noHistory.Recent)
	}
}
