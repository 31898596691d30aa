package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"

	"github.com/verte-zerg/dyadikos/internal/catalog"
	"github.com/verte-zerg/dyadikos/internal/encoder"
	"github.com/verte-zerg/dyadikos/internal/progress"
)

type shapeItem struct {
	shape     catalog.ShapeLevel
	status    progress.Status
	completed int
	total     int
}

func (i shapeItem) Title() string {
	return fmt.Sprintf("%s (%d)", i.shape.Name, i.shape.Sides)
}

func (i shapeItem) Description() string {
	switch i.status {
	case progress.StatusLocked:
		return "Locked · complete the previous shape"
	case progress.StatusComplete:
		return fmt.Sprintf("Complete · %d/%d", i.completed, i.total)
	default:
		return fmt.Sprintf("%d/%d solved", i.completed, i.total)
	}
}

func (i shapeItem) FilterValue() string {
	return i.shape.Name
}

func shapeItems(tr *progress.Tracker) []list.Item {
	shapes := catalog.Shapes()
	items := make([]list.Item, 0, len(shapes))
	for _, s := range shapes {
		items = append(items, shapeItem{
			shape:     s,
			status:    tr.ShapeStatus(s.Sides),
			completed: tr.CompletedCount(s.Sides),
			total:     catalog.PuzzleCountForSides(s.Sides),
		})
	}
	return items
}

func newShapeList(tr *progress.Tracker) list.Model {
	l := list.New(shapeItems(tr), list.NewDefaultDelegate(), 0, 0)
	l.Title = "dyadikos"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return l
}

func puzzleColumns() []table.Column {
	return []table.Column{
		{Title: "#", Width: 4},
		{Title: "Goal", Width: 6},
		{Title: "Binary", Width: 8},
		{Title: "Status", Width: 10},
	}
}

func puzzleRows(tr *progress.Tracker, sides int) []table.Row {
	puzzles := catalog.PuzzlesForSides(sides)
	rows := make([]table.Row, 0, len(puzzles))
	width := catalog.BinarySlotCount(sides)
	for _, p := range puzzles {
		rows = append(rows, table.Row{
			fmt.Sprintf("%d", p.PuzzleNumber),
			fmt.Sprintf("%d", p.GoalNumber),
			encoder.BinaryString(p.GoalNumber, width),
			tr.PuzzleStatus(sides, p.PuzzleNumber).String(),
		})
	}
	return rows
}

func newPuzzleTable() table.Model {
	t := table.New(
		table.WithColumns(puzzleColumns()),
		table.WithFocused(true),
	)
	styles := table.DefaultStyles()
	styles.Selected = styles.Selected.Foreground(goalStyle.GetForeground()).Bold(true)
	t.SetStyles(styles)
	return t
}
