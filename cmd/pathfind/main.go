// pathfind animates grid pathfinding strategies in the terminal.
//
// Usage:
//
//	pathfind list [dir]      - List maps and strategies
//	pathfind solve <map>     - Solve a map and print the result
//	pathfind watch [map]     - Watch a search step by step
//	pathfind history [map]   - Show recorded runs
//	pathfind serve           - Start SSH server for remote viewing
//
// Global flags:
//
//	--strategy <id>  - Search strategy: bfs, greedy, astar
//	--shape <kind>   - Force the grid shape: rectangle, torus
//	--config <path>  - Path to a config YAML
//	--db <path>      - Run history database
//	--maps <dir>     - Maps directory
//	--fps <rate>     - Animation frame rate
//	--verbose        - Debug logging
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
	"github.com/vovakirdan/tui-pathfind/internal/storage"
	"github.com/vovakirdan/tui-pathfind/internal/world"
)

var (
	// Global flags
	flagStrategy string
	flagShape    string
	flagConfig   string
	flagDBPath   string
	flagMapsDir  string
	flagFPS      int
	flagVerbose  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pathfind",
	Short: "Pathfind - watch search strategies explore a grid",
	Long: `Pathfind runs breadth-first, greedy best-first and A* searches over
grid maps and shows how each one explores the grid.

Available commands:
  list     - Show maps and strategies
  solve    - Solve a map without animation
  watch    - Animate a search in the terminal
  history  - Show recorded runs
  serve    - Start SSH server for remote viewing

Examples:
  pathfind list ./maps
  pathfind solve maze.txt --strategy bfs
  pathfind watch ring --shape torus
  pathfind history ring
  pathfind serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStrategy, "strategy", "", "Search strategy (bfs, greedy, astar)")
	rootCmd.PersistentFlags().StringVar(&flagShape, "shape", "", "Grid shape (rectangle, torus); default is the map's own")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagMapsDir, "maps", "", "Directory to look up map IDs in")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Animation frames per second")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log every search step")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadSettings loads the config file and applies the global flags.
func loadSettings() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fail("%v", err)
	}

	if flagStrategy != "" {
		cfg.Search.Strategy = flagStrategy
	}
	if flagShape != "" {
		cfg.Search.Shape = flagShape
	}
	if flagDBPath != "" {
		cfg.Storage.DBPath = flagDBPath
	}
	if flagMapsDir != "" {
		cfg.Server.MapsDir = flagMapsDir
	}
	if err := cfg.Validate(); err != nil {
		fail("%v", err)
	}
	if flagFPS > 0 {
		cfg.Visualizer.FPS = flagFPS
	}

	if !registry.Exists(cfg.Search.Strategy) {
		fail("unknown strategy %q (available: %s)", cfg.Search.Strategy, strings.Join(registry.IDs(), ", "))
	}
	return cfg
}

// newLogger creates the command logger writing to w.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "pathfind",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// newLoader creates a map loader using the configured bitmap colours.
func newLoader(root string, cfg config.Config) *maps.Loader {
	loader := maps.NewLoader(root)
	palette, err := cfg.Bitmap.Palette()
	if err != nil {
		fail("%v", err)
	}
	loader.Palette = palette
	return loader
}

// openMap loads a map by file path or by ID from the maps directory.
func openMap(ref string, cfg config.Config) maps.Map {
	m, err := newLoader(cfg.Server.MapsDir, cfg).Resolve(ref)
	if errors.Is(err, maps.ErrNotFound) {
		fmt.Fprintf(os.Stderr, "Error: unknown map %q\n", ref)
		fmt.Fprintln(os.Stderr, "Run 'pathfind list' to see available maps.")
		os.Exit(1)
	}
	if err != nil {
		fail("%v", err)
	}
	return m
}

// shapeKind returns the shape to search m with.
func shapeKind(m maps.Map, cfg config.Config) world.ShapeKind {
	if cfg.Search.Shape == "" {
		return m.Shape
	}
	// Validated by loadSettings.
	kind, _ := world.ParseShapeKind(cfg.Search.Shape)
	return kind
}

// openStore opens the run database. Without one, runs are not recorded.
func openStore(cfg config.Config, logger *log.Logger) *storage.Store {
	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		logger.Warn("run history disabled", "error", err)
		return nil
	}
	return store
}

// printTable prints rows under headers in aligned columns.
func printTable(headers []string, rows [][]string) {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	printRow := func(cells []string) {
		var b strings.Builder
		b.WriteString(" ")
		for i, cell := range cells {
			fmt.Fprintf(&b, " %-*s", widths[i], cell)
		}
		fmt.Println(strings.TrimRight(b.String(), " "))
	}

	printRow(headers)
	dashes := make([]string, len(headers))
	for i, h := range headers {
		dashes[i] = strings.Repeat("-", len(h))
	}
	printRow(dashes)
	for _, row := range rows {
		printRow(row)
	}
}
