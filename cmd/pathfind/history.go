package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pathfind/internal/platform/tui"
	"github.com/vovakirdan/tui-pathfind/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
	flagRunID string
	flagClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [map]",
	Short: "Show recorded runs",
	Long: `Show the runs recorded by solve, watch and the SSH server, newest
first. In a terminal an interactive table is shown; use --plain for text
output.

Examples:
  pathfind history
  pathfind history ring --plain
  pathfind history --id 0f8fad5b-d9cb-469f-a165-70867728950e
  pathfind history ring --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print plain text instead of the interactive table")
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 20, "Number of runs to print with --plain")
	historyCmd.Flags().StringVar(&flagRunID, "id", "", "Show a single run")
	historyCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the recorded runs (of the map, if given)")
}

func runHistory(cmd *cobra.Command, args []string) {
	settings := loadSettings()
	mapID := ""
	if len(args) == 1 {
		mapID = args[0]
	}

	if err := history(settings.Storage.DBPath, mapID); err != nil {
		fail("%v", err)
	}
}

// history opens the run database at dbPath and shows or clears its runs.
func history(dbPath, mapID string) error {
	store, err := storage.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	defer store.Close()

	switch {
	case flagClear:
		n, err := store.ClearRuns(mapID)
		if err != nil {
			return err
		}
		fmt.Printf("Deleted %d runs.\n", n)
		return nil

	case flagRunID != "":
		return showRun(store, flagRunID)

	case !flagPlain && term.IsTerminal(int(os.Stdout.Fd())):
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, mapID, width, height)

	default:
		return printHistory(store, mapID)
	}
}

// showRun prints one run in full.
func showRun(store *storage.Store, id string) error {
	r, err := store.RunByID(id)
	if err != nil {
		return err
	}
	if r == nil {
		return fmt.Errorf("no run with id %q", id)
	}

	fmt.Printf("Run:       %s\n", r.ID)
	fmt.Printf("Date:      %s\n", r.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Printf("Map:       %s (%s)\n", r.MapID, r.Shape)
	fmt.Printf("Strategy:  %s\n", r.Strategy)
	if r.Reason != "" {
		fmt.Printf("Status:    %s (%s)\n", r.Status, r.Reason)
	} else {
		fmt.Printf("Status:    %s\n", r.Status)
	}
	if r.Finished() {
		fmt.Printf("Path:      %d moves\n", r.PathLen)
	}
	fmt.Printf("Expanded:  %d\n", r.Steps)
	fmt.Printf("Visited:   %d\n", r.Visited)
	return nil
}

// printHistory prints recent runs and per-strategy totals as text.
func printHistory(store *storage.Store, mapID string) error {
	var runs []storage.Run
	var err error
	if mapID == "" {
		runs, err = store.RecentRuns(flagLimit)
	} else {
		runs, err = store.RunsForMap(mapID, flagLimit)
	}
	if err != nil {
		return err
	}

	title := "all maps"
	if mapID != "" {
		title = mapID
	}
	fmt.Printf("Run history - %s\n", title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'pathfind solve <map>' to record one!")
		return nil
	}

	rows := make([][]string, len(runs))
	for i, r := range runs {
		rows[i] = tui.RunRow(r)
	}
	printTable(tui.HistoryColumns, rows)

	stats, err := store.StrategyStats(mapID)
	if err != nil {
		return err
	}
	fmt.Println()
	rows = make([][]string, len(stats))
	for i, s := range stats {
		best := "-"
		if s.BestPath >= 0 {
			best = fmt.Sprintf("%d", s.BestPath)
		}
		rows[i] = []string{
			s.Strategy,
			fmt.Sprintf("%d", s.Runs),
			fmt.Sprintf("%d", s.Finished),
			best,
			fmt.Sprintf("%.1f", s.AvgSteps),
			fmt.Sprintf("%.1f", s.AvgVisited),
		}
	}
	printTable([]string{"Strategy", "Runs", "Found", "Best", "Avg steps", "Avg visited"}, rows)

	if mapID == "" {
		return nil
	}
	best, err := store.BestRun(mapID, "")
	if err != nil {
		return err
	}
	if best != nil {
		fmt.Println()
		fmt.Printf("Best: %s, %d moves in %d steps (run %s)\n", best.Strategy, best.PathLen, best.Steps, best.ID)
	}
	return nil
}
