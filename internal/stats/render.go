package stats

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/verte-zerg/dyadikos/internal/model"
)

const (
	barFull             = "█"
	barEmpty            = "░"
	minBarWidth         = 5
	maxBarWidth         = 40
	reservedWidth       = 40
	timeLayout          = "2006-01-02 15:04"
	colorGreen          = "\x1b[32m"
	colorDim            = "\x1b[2m"
	colorReset          = "\x1b[0m"
	terminalWidthBackup = 80
)

// RenderOptions controls report output.
type RenderOptions struct {
	Width      int
	ForceColor bool
}

// RenderReport writes the per-shape table and the recent completions.
func RenderReport(w io.Writer, r Report, opts RenderOptions) error {
	width := opts.Width
	if width <= 0 {
		width = terminalWidth()
	}
	barWidth := BarWidthFor(width)
	useColor := shouldUseColor(w, opts.ForceColor)

	if _, err := fmt.Fprintf(w, "Solved %d of %d puzzles\n\n", r.Completed, r.Total); err != nil {
		return err
	}

	cols := []column{{title: "Shape"}, {title: "Sides", right: true}, {title: "Progress"}, {title: "Solved", right: true}, {title: "State"}}
	rows := make([][]string, 0, len(r.Shapes))
	for _, s := range r.Shapes {
		rows = append(rows, []string{
			s.Name,
			fmt.Sprintf("%d", s.Sides),
			renderBar(s.Completed, s.Total, barWidth),
			fmt.Sprintf("%d/%d", s.Completed, s.Total),
			shapeState(s),
		})
	}
	lines := alignRows(cols, rows)
	for i, line := range lines {
		if useColor && i > 0 {
			line = colorize(line, r.Shapes[i-1])
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	if len(r.Recent) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "\nRecent completions"); err != nil {
		return err
	}
	recentRows := make([][]string, 0, len(r.Recent))
	for _, c := range r.Recent {
		recentRows = append(recentRows, []string{c.PuzzleID, c.CompletedAt.Local().Format(timeLayout)})
	}
	for _, line := range alignRows([]column{{}, {}}, recentRows) {
		if _, err := fmt.Fprintln(w, "  "+line); err != nil {
			return err
		}
	}
	return nil
}

type column struct {
	title string
	right bool
}

// alignRows pads each cell to the widest entry of its column, measured in
// terminal cells. A title row is emitted when any column has a title.
func alignRows(cols []column, rows [][]string) []string {
	widths := make([]int, len(cols))
	hasTitle := false
	for i, c := range cols {
		widths[i] = runewidth.StringWidth(c.title)
		hasTitle = hasTitle || c.title != ""
	}
	for _, row := range rows {
		for i := range cols {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
			}
		}
	}

	out := make([]string, 0, len(rows)+1)
	line := func(cells func(i int) string) string {
		parts := make([]string, len(cols))
		for i, c := range cols {
			cell := cells(i)
			gap := strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell))
			if c.right {
				parts[i] = gap + cell
			} else {
				parts[i] = cell + gap
			}
		}
		return strings.TrimRight(strings.Join(parts, "  "), " ")
	}
	if hasTitle {
		out = append(out, line(func(i int) string { return cols[i].title }))
	}
	for _, row := range rows {
		out = append(out, line(func(i int) string {
			if i < len(row) {
				return row[i]
			}
			return ""
		}))
	}
	return out
}

// BarWidthFor computes a bar width that fits the table within totalWidth.
func BarWidthFor(totalWidth int) int {
	w := totalWidth - reservedWidth
	if w < minBarWidth {
		return minBarWidth
	}
	if w > maxBarWidth {
		return maxBarWidth
	}
	return w
}

func renderBar(done, total, width int) string {
	filled := 0
	if total > 0 {
		filled = done * width / total
	}
	filled = min(max(filled, 0), width)
	return strings.Repeat(barFull, filled) + strings.Repeat(barEmpty, width-filled)
}

func shapeState(s model.ShapeProgress) string {
	switch {
	case s.Total > 0 && s.Completed == s.Total:
		return "complete"
	case s.Unlocked:
		return "open"
	default:
		return "locked"
	}
}

func colorize(line string, s model.ShapeProgress) string {
	switch shapeState(s) {
	case "complete":
		return colorGreen + line + colorReset
	case "locked":
		return colorDim + line + colorReset
	default:
		return line
	}
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}
