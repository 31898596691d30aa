// Package tui provides the Bubble Tea puzzle interface.
package tui

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/dyadikos/internal/catalog"
	"github.com/verte-zerg/dyadikos/internal/encoder"
	"github.com/verte-zerg/dyadikos/internal/model"
	"github.com/verte-zerg/dyadikos/internal/progress"
)

type screen int

const (
	screenShapes screen = iota
	screenPuzzles
	screenBoard
)

// Recorder keeps the completion history.
type Recorder interface {
	RecordCompletion(ctx context.Context, c model.Completion) error
}

// Model implements the Bubble Tea puzzle UI.
type Model struct {
	config   model.Config
	tracker  *progress.Tracker
	recorder Recorder
	logf     progress.Logger
	now      func() time.Time

	screen  screen
	shapes  list.Model
	puzzles table.Model
	sides   int
	board   *board
	help    help.Model
	notice  string

	width  int
	height int
}

// NewModel constructs the puzzle UI. recorder and logf may be nil.
func NewModel(cfg model.Config, tracker *progress.Tracker, recorder Recorder, logf progress.Logger) *Model {
	if logf == nil {
		logf = logErrf
	}
	m := &Model{
		config:   cfg,
		tracker:  tracker,
		recorder: recorder,
		logf:     logf,
		now:      time.Now,
		shapes:   newShapeList(tracker),
		puzzles:  newPuzzleTable(),
		help:     help.New(),
	}
	tracker.Subscribe(m.refreshMenus)

	switch {
	case cfg.Puzzle != "":
		m.openPuzzleID(cfg.Puzzle)
	case cfg.Shape != 0:
		m.openShape(cfg.Shape)
	}
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		switch m.screen {
		case screenBoard:
			return m.updateBoard(msg)
		case screenPuzzles:
			return m.updatePuzzles(msg)
		default:
			return m.updateShapes(msg)
		}
	case tea.MouseMsg:
		if m.screen == screenBoard && m.config.Mouse {
			m.handleMouse(msg)
		}
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	switch m.screen {
	case screenBoard:
		return strings.Join([]string{
			m.board.headerView(),
			m.board.canvasView(),
			m.help.View(boardKeys),
		}, "\n")
	case screenPuzzles:
		solved := m.tracker.CompletedCount(m.sides)
		title := titleStyle.Render(fmt.Sprintf("%s · %d/%d solved", catalog.ShapeName(m.sides), solved, catalog.PuzzleCountForSides(m.sides)))
		return strings.Join([]string{title, m.puzzles.View(), m.footer(menuKeys)}, "\n")
	default:
		return m.shapes.View() + "\n" + m.footer(menuKeys)
	}
}

func (m *Model) footer(keys help.KeyMap) string {
	if m.notice != "" {
		return errorStyle.Render(m.notice)
	}
	return footerStyle.Render(m.help.View(keys))
}

func (m *Model) updateLayout() {
	m.help.Width = m.width
	m.shapes.SetSize(m.width, max(m.height-1, 1))
	m.puzzles.SetHeight(max(m.height-3, 1))
	if m.board != nil {
		m.board.resize(m.width, m.height)
	}
}

func (m *Model) updateShapes(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, menuKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, menuKeys.Open):
		item, ok := m.shapes.SelectedItem().(shapeItem)
		if !ok {
			return m, nil
		}
		if item.status == progress.StatusLocked {
			m.notice = fmt.Sprintf("%s is locked. Complete the previous shape to unlock it.", item.shape.Name)
			return m, nil
		}
		m.openShape(item.shape.Sides)
		return m, nil
	}
	m.notice = ""
	var cmd tea.Cmd
	m.shapes, cmd = m.shapes.Update(msg)
	return m, cmd
}

func (m *Model) updatePuzzles(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, menuKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, menuKeys.Back):
		m.notice = ""
		m.screen = screenShapes
		return m, nil
	case key.Matches(msg, menuKeys.Open):
		n := m.puzzles.Cursor() + 1
		if !m.tracker.IsPuzzleUnlocked(m.sides, n) {
			m.notice = fmt.Sprintf("Puzzle %d is locked. Solve puzzle %d first.", n, n-1)
			return m, nil
		}
		m.openPuzzle(m.sides, n)
		return m, nil
	}
	m.notice = ""
	var cmd tea.Cmd
	m.puzzles, cmd = m.puzzles.Update(msg)
	return m, cmd
}

func (m *Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	b := m.board
	switch {
	case key.Matches(msg, boardKeys.Quit):
		return m, tea.Quit
	case key.Matches(msg, boardKeys.Back):
		if b.selected != -1 {
			b.selected = -1
			b.notice = ""
			return m, nil
		}
		m.leaveBoard()
		return m, nil
	case key.Matches(msg, boardKeys.Restart):
		b.restart()
		return m, nil
	case key.Matches(msg, boardKeys.Next):
		if b.solved() {
			m.nextPuzzle()
		}
		return m, nil
	case key.Matches(msg, boardKeys.Point):
		if b.playing() {
			out, drawn := b.pressLabel(labelIndex(msg.String(), b.puzzle.Sides))
			if drawn {
				m.afterConnect(out)
			}
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleMouse(msg tea.MouseMsg) {
	var release bool
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return
		}
	case tea.MouseActionRelease:
		release = true
	default:
		return
	}
	row := msg.Y - boardHeaderLines
	out, drawn := m.board.press(msg.X, row, release)
	if drawn {
		m.afterConnect(out)
	}
}

func (m *Model) afterConnect(out encoder.Outcome) {
	if out != encoder.OutcomeSolved {
		return
	}
	p := m.board.puzzle
	m.tracker.MarkPuzzleComplete(p.ID)
	if m.recorder == nil {
		return
	}
	err := m.recorder.RecordCompletion(context.Background(), model.Completion{
		PuzzleID:     p.ID,
		Sides:        p.Sides,
		PuzzleNumber: p.PuzzleNumber,
		CompletedAt:  m.now(),
	})
	if err != nil {
		m.logf("failed to record completion: %v\n", err)
	}
}

func (m *Model) openShape(sides int) {
	if catalog.ShapeIndex(sides) < 0 {
		m.board = nil
		m.screen = screenShapes
		m.notice = fmt.Sprintf("There is no %s level.", catalog.ShapeName(sides))
		return
	}
	m.sides = sides
	m.board = nil
	m.notice = ""
	m.puzzles.SetRows(puzzleRows(m.tracker, sides))
	m.puzzles.SetCursor(firstOpenPuzzle(m.tracker, sides))
	m.screen = screenPuzzles
	if i := catalog.ShapeIndex(sides); i >= 0 {
		m.shapes.Select(i)
	}
}

func (m *Model) openPuzzle(sides, n int) {
	p, found := catalog.PuzzleBySidesAndNumber(sides, n)
	found = found && catalog.ShapeIndex(sides) >= 0
	unlocked := found && m.tracker.IsPuzzleUnlocked(sides, n)
	if found {
		m.sides = sides
	}
	m.notice = ""
	m.board = newBoard(p, found, unlocked, m.config.Radius, m.config.Tolerance)
	m.board.resize(m.width, m.height)
	m.screen = screenBoard
}

func (m *Model) openPuzzleID(id string) {
	sides, n, err := catalog.ParsePuzzleID(id)
	if err != nil {
		m.board = newBoard(catalog.Puzzle{}, false, false, m.config.Radius, m.config.Tolerance)
		m.screen = screenBoard
		return
	}
	m.openPuzzle(sides, n)
}

func (m *Model) nextPuzzle() {
	if next, ok := catalog.Next(m.board.puzzle); ok {
		m.openPuzzle(next.Sides, next.PuzzleNumber)
		return
	}
	m.openShape(m.board.puzzle.Sides)
}

func (m *Model) leaveBoard() {
	if m.board.state == boardNotFound || catalog.ShapeIndex(m.board.puzzle.Sides) < 0 {
		m.board = nil
		m.screen = screenShapes
		return
	}
	m.openShape(m.board.puzzle.Sides)
}

func (m *Model) refreshMenus() {
	m.shapes.SetItems(shapeItems(m.tracker))
	if catalog.ShapeIndex(m.sides) >= 0 {
		m.puzzles.SetRows(puzzleRows(m.tracker, m.sides))
	}
}

// firstOpenPuzzle returns the row of the first unlocked, unsolved puzzle.
func firstOpenPuzzle(tr *progress.Tracker, sides int) int {
	count := catalog.PuzzleCountForSides(sides)
	for n := 1; n <= count; n++ {
		if tr.PuzzleStatus(sides, n) == progress.StatusUnlocked {
			return n - 1
		}
	}
	return 0
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
