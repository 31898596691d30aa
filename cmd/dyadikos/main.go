// Package main provides the CLI entrypoint for dyadikos.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/dyadikos/internal/catalog"
	"github.com/verte-zerg/dyadikos/internal/config"
	"github.com/verte-zerg/dyadikos/internal/model"
	"github.com/verte-zerg/dyadikos/internal/progress"
	"github.com/verte-zerg/dyadikos/internal/stats"
	"github.com/verte-zerg/dyadikos/internal/store"
	"github.com/verte-zerg/dyadikos/internal/tui"
)

const (
	defaultMouse        = true
	defaultRecent       = 5
	defaultCloseTimeout = 2 * time.Second
)

var (
	dbPath  string
	logPath string

	playShape     int
	playPuzzle    string
	playMouse     bool
	playRadius    float64
	playTolerance float64

	puzzlesSides int

	progressRecent int
	progressColor  bool

	resetYes bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "dyadikos",
		Short:         "Binary polygon puzzles in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "progress database path")
	rootCmd.PersistentFlags().StringVar(&logPath, "log", "", "append persistence errors to this file")

	rootCmd.Flags().IntVar(&playShape, "shape", 0, "open the puzzle list of a shape (number of sides)")
	rootCmd.Flags().StringVar(&playPuzzle, "puzzle", "", "open a puzzle directly, e.g. 6-003")
	rootCmd.Flags().BoolVar(&playMouse, "mouse", defaultMouse, "enable mouse input on the board")
	rootCmd.Flags().Float64Var(&playRadius, "radius", tui.DefaultRadius, "polygon radius as a fraction of the shorter side (0-0.5]")
	rootCmd.Flags().Float64Var(&playTolerance, "tolerance", tui.DefaultTolerance, "mouse hit radius in cells")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newPuzzlesCmd())
	rootCmd.AddCommand(newProgressCmd())
	rootCmd.AddCommand(newResetCmd())

	return rootCmd
}

// loadPlayConfig merges defaults, the config file, the environment and flags.
// Later sources win; an explicitly set flag always wins.
func loadPlayConfig(cmd *cobra.Command) (model.Config, error) {
	envCfg, err := config.LoadEnv()
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load environment: %w", err)
	}
	fileCfg, err := config.LoadConfig(envCfg.ResolveConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}

	applyStringConfig(cmd, "db", &dbPath, fileCfg.Game.DBPath)
	applyIntConfig(cmd, "shape", &playShape, fileCfg.Game.Shape)
	applyStringConfig(cmd, "puzzle", &playPuzzle, fileCfg.Game.Puzzle)
	applyBoolConfig(cmd, "mouse", &playMouse, fileCfg.Game.Mouse)
	applyFloatConfig(cmd, "radius", &playRadius, fileCfg.Board.Radius)
	applyFloatConfig(cmd, "tolerance", &playTolerance, fileCfg.Board.Tolerance)

	applyStringConfig(cmd, "db", &dbPath, envCfg.DBPath)
	applyStringConfig(cmd, "log", &logPath, envCfg.LogPath)
	applyBoolConfig(cmd, "mouse", &playMouse, envCfg.Mouse)

	cfg := model.Config{
		DBPath:    dbPath,
		Shape:     playShape,
		Puzzle:    strings.TrimSpace(playPuzzle),
		Mouse:     playMouse,
		Radius:    playRadius,
		Tolerance: playTolerance,
		LogPath:   logPath,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadPlayConfig(cmd)
	if err != nil {
		return err
	}

	logf, closeLog, err := openLog(cfg.LogPath)
	if err != nil {
		return err
	}
	defer closeLog()

	st, tracker, err := openProgress(cmd.Context(), cfg.DBPath, logf)
	if err != nil {
		return err
	}
	defer closeProgress(st, tracker)

	m := tui.NewModel(cfg, tracker, st, logf)
	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	program := tea.NewProgram(m, opts...)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// openLog routes persistence errors to a file while the TUI owns the
// terminal. Without a path they are dropped.
func openLog(path string) (progress.Logger, func(), error) {
	if path == "" {
		return func(string, ...any) {}, func() {}, nil
	}
	f, err := tea.LogToFile(path, "dyadikos")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log: %w", err)
	}
	closeLog := func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}
	return log.Printf, closeLog, nil
}

func openProgress(ctx context.Context, path string, logf progress.Logger) (*store.Store, *progress.Tracker, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open db: %w", err)
	}
	tracker := progress.New(progress.NewKVPersister(st), progress.WithLogger(logf))
	tracker.Hydrate(ctx)
	return st, tracker, nil
}

func closeProgress(st *store.Store, tracker *progress.Tracker) {
	ctx, cancel := context.WithTimeout(context.Background(), defaultCloseTimeout)
	defer cancel()
	if err := tracker.Close(ctx); err != nil {
		logErrf("failed to flush progress: %v\n", err)
	}
	if err := st.Close(); err != nil {
		logErrf("failed to close db: %v\n", err)
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	envCfg, err := config.LoadEnv()
	if err != nil {
		return fmt.Errorf("failed to load environment: %w", err)
	}
	path := envCfg.ResolveConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newPuzzlesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "puzzles",
		Short: "List puzzles and their status",
		Args:  cobra.NoArgs,
		RunE:  runPuzzlesCmd,
	}
	cmd.Flags().IntVar(&puzzlesSides, "sides", 0, "only list puzzles of this shape")
	return cmd
}

func runPuzzlesCmd(cmd *cobra.Command, _ []string) error {
	var puzzles []catalog.Puzzle
	if puzzlesSides != 0 {
		if catalog.ShapeIndex(puzzlesSides) < 0 {
			return fmt.Errorf("--sides must be between 4 and 12")
		}
		puzzles = catalog.PuzzlesForSides(puzzlesSides)
	} else {
		puzzles = catalog.All()
	}

	st, tracker, err := openProgress(cmd.Context(), dbPath, logErrf)
	if err != nil {
		return err
	}
	defer closeProgress(st, tracker)

	return writePuzzles(cmd.OutOrStdout(), puzzles, tracker)
}

func writePuzzles(w io.Writer, puzzles []catalog.Puzzle, tracker *progress.Tracker) error {
	for _, p := range puzzles {
		status := tracker.PuzzleStatus(p.Sides, p.PuzzleNumber)
		if _, err := fmt.Fprintf(w, "%-7s %-10s goal %-3d %s\n", p.ID, status, p.GoalNumber, p.Description); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newProgressCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Show progress per shape",
		Args:  cobra.NoArgs,
		RunE:  runProgressCmd,
	}
	cmd.Flags().IntVar(&progressRecent, "recent", defaultRecent, "number of recent completions to show")
	cmd.Flags().BoolVar(&progressColor, "color", false, "force colored output")
	return cmd
}

func runProgressCmd(cmd *cobra.Command, _ []string) error {
	if progressRecent < 0 {
		return fmt.Errorf("--recent must be >= 0")
	}
	st, tracker, err := openProgress(cmd.Context(), dbPath, logErrf)
	if err != nil {
		return err
	}
	defer closeProgress(st, tracker)

	report, err := stats.BuildReport(cmd.Context(), st, tracker, progressRecent)
	if err != nil {
		return err
	}
	return stats.RenderReport(cmd.OutOrStdout(), report, stats.RenderOptions{ForceColor: progressColor})
}

func newResetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget all completed puzzles",
		Args:  cobra.NoArgs,
		RunE:  runResetCmd,
	}
	cmd.Flags().BoolVar(&resetYes, "yes", false, "do not ask for confirmation")
	return cmd
}

func runResetCmd(cmd *cobra.Command, _ []string) error {
	if !resetYes {
		ok, err := confirm(cmd.InOrStdin(), cmd.ErrOrStderr(), "Reset all progress? [y/N] ")
		if err != nil {
			return err
		}
		if !ok {
			logErrln("Reset cancelled.")
			return nil
		}
	}

	st, tracker, err := openProgress(cmd.Context(), dbPath, logErrf)
	if err != nil {
		return err
	}
	defer closeProgress(st, tracker)

	tracker.ResetProgress()
	if err := st.ClearCompletions(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear completion history: %w", err)
	}
	logErrln("Progress reset.")
	return nil
}

func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	if _, err := fmt.Fprint(out, prompt); err != nil {
		return false, fmt.Errorf("failed to write prompt: %w", err)
	}
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("failed to read answer: %w", err)
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes", nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# dyadikos configuration
# Uncomment a value to enable it. Environment variables (DYADIKOS_DB,
# DYADIKOS_MOUSE, DYADIKOS_LOG) override the file; CLI flags override both.

[game]
# db = %q
# shape = 4               # Open the puzzle list of this shape on start
# puzzle = "4-001"        # Open this puzzle on start
# mouse = %t            # Mouse input on the board

[board]
# radius = %.2f           # Polygon radius as a fraction of the shorter side (0-0.5]
# tolerance = %.1f         # Mouse hit radius in cells
`,
		config.DefaultDBPath(),
		defaultMouse,
		tui.DefaultRadius,
		tui.DefaultTolerance,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.DBPath == "" {
		return fmt.Errorf("--db must not be empty")
	}
	if cfg.Shape != 0 && catalog.ShapeIndex(cfg.Shape) < 0 {
		return fmt.Errorf("--shape must be between 4 and 12")
	}
	if cfg.Radius <= 0 || cfg.Radius > 0.5 {
		return fmt.Errorf("--radius must be between 0 and 0.5")
	}
	if cfg.Tolerance <= 0 {
		return fmt.Errorf("--tolerance must be > 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
