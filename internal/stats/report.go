// Package stats builds the progress report printed by the progress command.
package stats

import (
	"context"
	"fmt"

	"github.com/verte-zerg/dyadikos/internal/catalog"
	"github.com/verte-zerg/dyadikos/internal/model"
	"github.com/verte-zerg/dyadikos/internal/progress"
	"github.com/verte-zerg/dyadikos/internal/store"
)

// Report contains precomputed data for progress rendering.
type Report struct {
	Shapes    []model.ShapeProgress
	Completed int
	Total     int
	Recent    []model.Completion
}

// BuildReport summarizes the tracker per shape and loads the most recent
// completions from the store. recent <= 0 skips the history.
func BuildReport(ctx context.Context, st *store.Store, tr *progress.Tracker, recent int) (Report, error) {
	var r Report
	for _, s := range catalog.Shapes() {
		sp := model.ShapeProgress{
			Sides:     s.Sides,
			Name:      s.Name,
			Completed: tr.CompletedCount(s.Sides),
			Total:     catalog.PuzzleCountForSides(s.Sides),
			Unlocked:  tr.IsShapeUnlocked(s.Sides),
		}
		r.Completed += sp.Completed
		r.Total += sp.Total
		r.Shapes = append(r.Shapes, sp)
	}
	if recent <= 0 {
		return r, nil
	}
	completions, err := st.ListCompletions(ctx, recent)
	if err != nil {
		return Report{}, fmt.Errorf("failed to list completions: %w", err)
	}
	r.Recent = completions
	return r, nil
}
