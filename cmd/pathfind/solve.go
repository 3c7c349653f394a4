package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-pathfind/internal/config"
	"github.com/vovakirdan/tui-pathfind/internal/maps"
	"github.com/vovakirdan/tui-pathfind/internal/registry"
	"github.com/vovakirdan/tui-pathfind/internal/runner"
	"github.com/vovakirdan/tui-pathfind/internal/search"
	"github.com/vovakirdan/tui-pathfind/internal/world"
)

var (
	flagOut      string
	flagScale    int
	flagMaxSteps int
	flagNoRecord bool
)

var solveCmd = &cobra.Command{
	Use:   "solve <map>",
	Short: "Solve a map and print the result",
	Long: `Run a search to the end without animation and print the outcome, the
path and the grid with the search overlay.

<map> is a file path or the ID of a map in the maps directory.

Overlay legend:
  S start   G goal   # wall   . open
  o visited   + frontier   * path

Exit status is 2 when the goal cannot be reached and 3 when the step
limit stops the search.

Examples:
  pathfind solve maps/maze.txt
  pathfind solve ring --strategy bfs --shape torus
  pathfind solve maze.png --out solved.png --scale 4`,
	Args: cobra.ExactArgs(1),
	Run:  runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Write the final overlay as a PNG image")
	solveCmd.Flags().IntVar(&flagScale, "scale", 0, "Pixels per cell in the PNG (default from config)")
	solveCmd.Flags().IntVar(&flagMaxSteps, "max-steps", -1, "Stop after this many expansions (0 = unlimited)")
	solveCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not record the run in the history")
}

func runSolve(cmd *cobra.Command, args []string) {
	settings := loadSettings()
	if flagMaxSteps >= 0 {
		settings.Search.MaxSteps = flagMaxSteps
	}
	m := openMap(args[0], settings)

	code, err := solve(os.Stdout, m, settings, newLogger(os.Stderr))
	if err != nil {
		fail("%v", err)
	}
	if code != 0 {
		os.Exit(code)
	}
}

// solve runs m to the end, prints the outcome to w and returns the exit
// status. The run database is closed before solve returns.
func solve(w io.Writer, m maps.Map, settings config.Config, logger *log.Logger) (int, error) {
	kind := shapeKind(m, settings)
	opts := runner.Options{
		MapID:    m.ID,
		Strategy: settings.Search.Strategy,
		Engine:   registry.Options{Reopen: settings.Search.AStar.ReopenClosed},
		MaxSteps: settings.Search.MaxSteps,
		Logger:   logger,
	}
	if !flagNoRecord {
		if store := openStore(settings, logger); store != nil {
			defer store.Close()
			opts.Recorder = store
		}
	}

	r, err := runner.New(m.GraphWith(kind), opts)
	if err != nil {
		return 1, err
	}

	st, runErr := r.RunToEnd()
	stats := m.Stats()
	out := r.Outcome()

	fmt.Fprintf(w, "Map:       %s (%dx%d, %s)\n", m.Title(), stats.Width, stats.Height, kind)
	fmt.Fprintf(w, "Strategy:  %s\n", r.Strategy())
	if out.Reason != "" {
		fmt.Fprintf(w, "Status:    %s (%s)\n", out.Status, out.Reason)
	} else {
		fmt.Fprintf(w, "Status:    %s\n", out.Status)
	}
	fmt.Fprintf(w, "Expanded:  %d\n", out.Steps)
	fmt.Fprintf(w, "Visited:   %d\n", out.Visited)
	if st.Status == search.Finished {
		fmt.Fprintf(w, "Path:      %d moves\n", st.Moves())
		fmt.Fprintf(w, "           %s\n", formatPath(st.Route()))
	}
	fmt.Fprintln(w)
	fmt.Fprint(w, r.Project().RenderASCII())

	if id := r.RunID(); id != "" {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Recorded run %s\n", id)
	}

	if flagOut != "" {
		scale := settings.Bitmap.Scale
		if flagScale > 0 {
			scale = flagScale
		}
		if err := writePNG(flagOut, r, scale, settings.Bitmap); err != nil {
			return 1, err
		}
		fmt.Fprintf(w, "Wrote %s\n", flagOut)
	}

	switch {
	case errors.Is(runErr, runner.ErrStepLimit):
		return 3, nil
	case st.Status == search.Failed:
		return 2, nil
	}
	return 0, nil
}

// formatPath renders a route as "(0,0) -> (1,1) -> ...".
func formatPath(route []world.Position) string {
	parts := make([]string, len(route))
	for i, p := range route {
		parts[i] = p.String()
	}
	return strings.Join(parts, " -> ")
}
