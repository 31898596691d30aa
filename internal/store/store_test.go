package store_test

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/verte-zerg/dyadikos/internal/model"
	"github.com/verte-zerg/dyadikos/internal/progress"
	"github.com/verte-zerg/dyadikos/internal/store"
)

func openStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "nested", "dyadikos.db")
	st, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st, dbPath
}

func TestKeyValue(t *testing.T) {
	st, _ := openStore(t)
	ctx := context.Background()

	if _, ok, err := st.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}
	if err := st.Set(ctx, "k", "one"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := st.Set(ctx, "k", "two"); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	v, ok, err := st.Get(ctx, "k")
	if err != nil || !ok || v != "two" {
		t.Fatalf("unexpected get: %q %v %v", v, ok, err)
	}
	if err := st.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := st.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete missing: %v", err)
	}
	if _, ok, _ := st.Get(ctx, "k"); ok {
		t.Fatalf("expected key removed")
	}
}

func TestCompletions(t *testing.T) {
	st, _ := openStore(t)
	ctx := context.Background()

	base := time.Unix(1_700_000_000, 0).UTC()
	for i, id := range []string{"4-001", "4-002", "4-003"} {
		c := model.Completion{
			PuzzleID:     id,
			Sides:        4,
			PuzzleNumber: i + 1,
			CompletedAt:  base.Add(time.Duration(i) * time.Minute),
		}
		if err := st.RecordCompletion(ctx, c); err != nil {
			t.Fatalf("record: %v", err)
		}
	}
	// first completion time wins
	if err := st.RecordCompletion(ctx, model.Completion{PuzzleID: "4-001", Sides: 4, PuzzleNumber: 1, CompletedAt: base.Add(time.Hour)}); err != nil {
		t.Fatalf("record again: %v", err)
	}

	all, err := st.ListCompletions(ctx, 0)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 completions, got %d", len(all))
	}
	if all[0].PuzzleID != "4-003" || all[2].PuzzleID != "4-001" {
		t.Fatalf("unexpected order: %+v", all)
	}
	if !all[2].CompletedAt.Equal(base) {
		t.Fatalf("expected original completion time, got %v", all[2].CompletedAt)
	}

	recent, err := st.ListCompletions(ctx, 2)
	if err != nil || len(recent) != 2 {
		t.Fatalf("expected 2 recent completions, got %d (%v)", len(recent), err)
	}

	if err := st.ClearCompletions(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if left, _ := st.ListCompletions(ctx, 0); len(left) != 0 {
		t.Fatalf("expected empty history, got %d", len(left))
	}
}

func TestProgressSurvivesReopen(t *testing.T) {
	st, dbPath := openStore(t)
	ctx := context.Background()

	tr := progress.New(progress.NewKVPersister(st), progress.WithSyncWrites())
	tr.Hydrate(ctx)
	tr.MarkPuzzleComplete("4-001")
	tr.MarkPuzzleComplete("4-002")

	raw, ok, err := st.Get(ctx, progress.StorageKey)
	if err != nil || !ok {
		t.Fatalf("expected persisted record: %v", err)
	}
	if raw != `["4-001","4-002"]` {
		t.Fatalf("unexpected record: %s", raw)
	}
	if err := st.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := store.Open(dbPath)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() {
		_ = reopened.Close()
	}()
	again := progress.New(progress.NewKVPersister(reopened), progress.WithSyncWrites())
	again.Hydrate(ctx)
	if got := again.Completed(); !reflect.DeepEqual(got, []string{"4-001", "4-002"}) {
		t.Fatalf("unexpected hydrated set: %v", got)
	}

	again.ResetProgress()
	if _, ok, _ := reopened.Get(ctx, progress.StorageKey); ok {
		t.Fatalf("expected record deleted after reset")
	}
}
