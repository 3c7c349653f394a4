// Package runner drives a search engine on behalf of the CLI and the
// visualizer: it steps the engine, keeps a rewind snapshot, enforces the
// step budget, logs progress and records the outcome of each attempt.
package runner

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-pathfind/internal/display"
	"github.com/vovakirdan/tui-pathfind/internal/registry"
	"github.com/vovakirdan/tui-pathfind/internal/search"
	"github.com/vovakirdan/tui-pathfind/internal/storage"
)

// ErrStepLimit is returned by RunToEnd when the step budget runs out before
// the search ends.
var ErrStepLimit = errors.New("step limit reached")

// StatusAborted is recorded for runs stopped by the step budget.
const StatusAborted = "Aborted"

// Recorder persists run outcomes. *storage.Store satisfies it.
type Recorder interface {
	SaveRun(r storage.Run) (string, error)
}

// Options configures a Runner.
type Options struct {
	MapID    string
	Strategy string
	Engine   registry.Options
	MaxSteps int // 0 = unlimited

	// Logger receives progress and outcome messages. Nil discards them.
	Logger *log.Logger

	// Recorder stores outcomes. Nil disables recording.
	Recorder Recorder
}

// Runner owns one engine at a time over a fixed graph.
type Runner struct {
	graph    *search.Graph
	opts     Options
	engine   search.Engine
	snapshot search.Engine
	recorded bool
	runID    string
	log      *log.Logger
}

// New creates a runner and builds the configured strategy.
func New(graph *search.Graph, opts Options) (*Runner, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	r := &Runner{
		graph: graph,
		opts:  opts,
		log:   opts.Logger.With("map", opts.MapID),
	}
	if err := r.SetStrategy(opts.Strategy); err != nil {
		return nil, err
	}
	return r, nil
}

// Graph returns the graph being searched.
func (r *Runner) Graph() *search.Graph {
	return r.graph
}

// Engine returns the current engine.
func (r *Runner) Engine() search.Engine {
	return r.engine
}

// Strategy returns the ID of the current strategy.
func (r *Runner) Strategy() string {
	return r.opts.Strategy
}

// State returns the engine's state.
func (r *Runner) State() search.State {
	return r.engine.State()
}

// RunID returns the ID under which the outcome was recorded, if any.
func (r *Runner) RunID() string {
	return r.runID
}

// LimitReached reports whether the step budget is spent while the search
// is still going.
func (r *Runner) LimitReached() bool {
	return r.opts.MaxSteps > 0 &&
		r.engine.Expanded() >= r.opts.MaxSteps &&
		!r.engine.State().Over()
}

// Done reports whether stepping can make further progress.
func (r *Runner) Done() bool {
	return r.engine.State().Over() || r.LimitReached()
}

// SetStrategy replaces the engine with a fresh one of the given strategy.
// The snapshot is discarded.
func (r *Runner) SetStrategy(id string) error {
	e, err := registry.Create(id, r.graph, r.opts.Engine)
	if err != nil {
		return fmt.Errorf("runner: %w", err)
	}
	r.opts.Strategy = id
	r.engine = e
	r.reset()
	r.log.Debug("strategy selected", "strategy", id)
	return nil
}

// Restart starts the current strategy over. The snapshot is discarded.
func (r *Runner) Restart() {
	// The strategy already passed validation, so creation cannot fail.
	if err := r.SetStrategy(r.opts.Strategy); err != nil {
		r.log.Error("restart failed", "error", err)
	}
}

func (r *Runner) reset() {
	r.snapshot = nil
	r.recorded = false
	r.runID = ""
}

// Step advances the engine by one expansion unless it is done.
func (r *Runner) Step() search.State {
	if r.Done() {
		return r.engine.State()
	}

	st := r.engine.Step()
	if r.log.GetLevel() <= log.DebugLevel {
		cur, _ := r.engine.Current()
		r.log.Debug("step",
			"n", r.engine.Expanded(),
			"current", cur,
			"frontier", len(r.engine.Frontier()),
			"visited", len(r.engine.Visited()),
		)
	}

	if st.Over() || r.LimitReached() {
		r.finish()
	}
	return st
}

// StepN advances the engine by up to n expansions.
func (r *Runner) StepN(n int) search.State {
	for i := 0; i < n && !r.Done(); i++ {
		r.Step()
	}
	return r.engine.State()
}

// RunToEnd steps until the search ends or the step budget runs out, in
// which case ErrStepLimit is returned with the in-progress state.
func (r *Runner) RunToEnd() (search.State, error) {
	for !r.Done() {
		r.Step()
	}
	if r.LimitReached() {
		return r.engine.State(), ErrStepLimit
	}
	return r.engine.State(), nil
}

// Save snapshots the engine for a later Restore.
func (r *Runner) Save() {
	r.snapshot = r.engine.Clone()
	r.log.Debug("snapshot saved", "expanded", r.snapshot.Expanded())
}

// HasSnapshot reports whether Restore has something to rewind to.
func (r *Runner) HasSnapshot() bool {
	return r.snapshot != nil
}

// Restore rewinds the engine to the last snapshot. The snapshot is kept so
// that it can be restored again. Returns false if there is none.
func (r *Runner) Restore() bool {
	if r.snapshot == nil {
		return false
	}
	r.engine = r.snapshot.Clone()
	r.log.Debug("snapshot restored", "expanded", r.engine.Expanded())
	return true
}

// Project renders the engine's marks over the grid.
func (r *Runner) Project() *display.Buffer {
	return display.Project(r.graph.Grid(), r.engine)
}

// Outcome describes the current attempt as a history record.
func (r *Runner) Outcome() storage.Run {
	st := r.engine.State()
	run := storage.Run{
		ID:       r.runID,
		MapID:    r.opts.MapID,
		Strategy: r.opts.Strategy,
		Shape:    r.graph.Shape().Kind.String(),
		Status:   st.Status.String(),
		Reason:   st.Reason,
		PathLen:  st.Moves(),
		Steps:    r.engine.Expanded(),
		Visited:  len(r.engine.Visited()),
	}
	if !st.Over() && r.LimitReached() {
		run.Status = StatusAborted
		run.Reason = ErrStepLimit.Error()
	}
	return run
}

// finish logs and records the outcome once per attempt. A restored snapshot
// that runs to the end again is not recorded a second time.
func (r *Runner) finish() {
	if r.recorded {
		return
	}
	r.recorded = true

	out := r.Outcome()
	switch out.Status {
	case search.Finished.String():
		r.log.Info("path found",
			"strategy", out.Strategy,
			"moves", out.PathLen,
			"expanded", out.Steps,
			"visited", out.Visited,
		)
	default:
		r.log.Warn("no path",
			"strategy", out.Strategy,
			"reason", out.Reason,
			"expanded", out.Steps,
			"visited", out.Visited,
		)
	}

	if r.opts.Recorder == nil {
		return
	}
	id, err := r.opts.Recorder.SaveRun(out)
	if err != nil {
		r.log.Error("could not record run", "error", err)
		return
	}
	r.runID = id
}
