package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-pathfind/internal/config"
	"github.com/vovakirdan/tui-pathfind/internal/core"
	"github.com/vovakirdan/tui-pathfind/internal/maps"
	"github.com/vovakirdan/tui-pathfind/internal/platform/tui"
	"github.com/vovakirdan/tui-pathfind/internal/registry"
	"github.com/vovakirdan/tui-pathfind/internal/runner"
)

var (
	flagPace    string
	flagLogFile string
)

var watchCmd = &cobra.Command{
	Use:   "watch [map]",
	Short: "Watch a search step by step",
	Long: `Animate a search in the terminal. Without a map, a menu lists the
maps in the maps directory.

Controls:
  Space      - Pause / resume
  Right/N    - Single step
  S          - Save a snapshot
  R          - Restore the snapshot
  X          - Restart
  +/-        - Faster / slower
  Tab        - Next strategy
  ?          - All keys
  Q/Ctrl+C   - Quit

Pace presets:
  slow     - 5 frames per second, one step per frame
  normal   - 20 frames per second, one step per frame
  fast     - 30 frames per second, four steps per frame
  instant  - run to the end on the first frame

Examples:
  pathfind watch
  pathfind watch maps/maze.txt --strategy greedy
  pathfind watch ring --shape torus --pace fast`,
	Args: cobra.MaximumNArgs(1),
	Run:  runWatch,
}

func init() {
	watchCmd.Flags().StringVar(&flagPace, "pace", "", "Pace preset: slow, normal, fast, instant")
	watchCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while the visualizer runs")
}

func runWatch(cmd *cobra.Command, args []string) {
	settings := loadSettings()
	if flagPace != "" {
		p, err := config.ParsePace(flagPace)
		if err != nil {
			fail("%v", err)
		}
		config.ApplyPace(&settings.Visualizer, p)
		if flagFPS > 0 {
			settings.Visualizer.FPS = flagFPS
		}
	}

	// The visualizer owns the terminal, so logs go to a file or nowhere.
	var logOut io.Writer = io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fail("cannot open log file: %v", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut)

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}
	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: settings.Visualizer.FPS,
	}

	var m *maps.Map
	if len(args) == 1 {
		opened := openMap(args[0], settings)
		m = &opened
	}
	if err := watch(m, settings, logger, cfg); err != nil {
		fail("%v", err)
	}
}

// watch runs the visualizer for m, or the map menu when m is nil. The run
// database is closed before watch returns.
func watch(m *maps.Map, settings config.Config, logger *log.Logger, cfg core.RuntimeConfig) error {
	store := openStore(settings, logger)
	if store != nil {
		defer store.Close()
	}

	if m == nil {
		session := tui.Session{
			Store:    store,
			Loader:   newLoader(settings.Server.MapsDir, settings),
			Settings: settings,
			Logger:   logger,
		}
		return tui.RunSession(session, cfg)
	}

	opts := runner.Options{
		MapID:    m.ID,
		Strategy: settings.Search.Strategy,
		Engine:   registry.Options{Reopen: settings.Search.AStar.ReopenClosed},
		MaxSteps: settings.Search.MaxSteps,
		Logger:   logger,
	}
	if store != nil {
		opts.Recorder = store
	}

	r, err := runner.New(m.GraphWith(shapeKind(*m, settings)), opts)
	if err != nil {
		return err
	}

	if err := tui.Run(r, m.Title(), settings.Visualizer, cfg); err != nil {
		return err
	}

	out := r.Outcome()
	fmt.Printf("%s on %s: %s after %d steps", out.Strategy, out.MapID, out.Status, out.Steps)
	if out.PathLen >= 0 {
		fmt.Printf(", path of %d moves", out.PathLen)
	}
	fmt.Println()
	if id := r.RunID(); id != "" {
		fmt.Printf("Recorded run %s\n", id)
	}
	return nil
}
