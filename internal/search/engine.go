package search

import (
	"maps"

	"github.com/vovakirdan/tui-pathfind/internal/world"
)

// Engine is the common contract of all search strategies.
type Engine interface {
	// Name returns the strategy identifier (e.g., "bfs").
	Name() string

	// Step expands at most one node and returns the resulting state.
	// Once the state is terminal, Step is a no-op.
	Step() State

	// State returns the current state without advancing.
	State() State

	// Visited returns every position ever enqueued, in discovery order.
	Visited() []world.Position

	// Frontier returns the positions waiting to be expanded, in the order
	// the engine would expand them.
	Frontier() []world.Position

	// Current returns the position expanded by the last Step.
	Current() (world.Position, bool)

	// Expanded returns how many nodes have been taken off the frontier.
	Expanded() int

	// Clone returns a deep copy that can be stepped independently.
	Clone() Engine
}

// tracker holds the bookkeeping shared by every strategy: status, the
// insert-once visited set and the predecessor map.
type tracker struct {
	state    State
	visited  map[world.Position]bool
	order    []world.Position
	pred     map[world.Position]world.Position
	current  world.Position
	expanded int
	started  bool
}

func newTracker(starts []Node) tracker {
	t := tracker{
		visited: make(map[world.Position]bool, len(starts)),
		pred:    make(map[world.Position]world.Position),
	}
	for _, s := range starts {
		t.visit(s.ID())
	}
	return t
}

// visit adds p to the visited set. It returns false if p was already there.
func (t *tracker) visit(p world.Position) bool {
	if t.visited[p] {
		return false
	}
	t.visited[p] = true
	t.order = append(t.order, p)
	return true
}

// take records p as the node being expanded by the current step.
func (t *tracker) take(p world.Position) {
	t.current = p
	t.expanded++
	t.started = true
	t.state.Status = InProgress
}

// reach finishes the search at goal.
func (t *tracker) reach(goal world.Position) State {
	t.state = finished(BuildPath(t.pred, goal))
	return t.state
}

// exhaust fails the search.
func (t *tracker) exhaust() State {
	t.state = unreachable()
	return t.state
}

// State returns the current state.
func (t *tracker) State() State {
	return t.state
}

// Visited returns a copy of the visited positions in discovery order.
func (t *tracker) Visited() []world.Position {
	return append([]world.Position(nil), t.order...)
}

// Current returns the last expanded position.
func (t *tracker) Current() (world.Position, bool) {
	return t.current, t.started
}

// Expanded returns the number of expanded nodes.
func (t *tracker) Expanded() int {
	return t.expanded
}

// Predecessors returns a copy of the predecessor map.
func (t *tracker) Predecessors() map[world.Position]world.Position {
	return maps.Clone(t.pred)
}

// clone returns a deep copy of the tracker.
func (t *tracker) clone() tracker {
	c := *t
	c.state = t.state.clone()
	c.visited = maps.Clone(t.visited)
	c.pred = maps.Clone(t.pred)
	c.order = append([]world.Position(nil), t.order...)
	return c
}

// Mark pairs a position with the overlay tag a renderer should draw.
type Mark struct {
	Pos world.Position
	Tag world.Field
}

// Marks lists the engine's overlay annotations: visited positions, then the
// frontier, then the current node, then the path once finished. Later marks
// take precedence when projected onto a display.
func Marks(e Engine) []Mark {
	visited := e.Visited()
	frontier := e.Frontier()
	st := e.State()

	marks := make([]Mark, 0, len(visited)+len(frontier)+len(st.Path)+1)
	for _, p := range visited {
		marks = append(marks, Mark{Pos: p, Tag: world.Visited})
	}
	for _, p := range frontier {
		marks = append(marks, Mark{Pos: p, Tag: world.Frontier})
	}
	if cur, ok := e.Current(); ok && !st.Over() {
		marks = append(marks, Mark{Pos: cur, Tag: world.Current})
	}
	if st.Status == Finished {
		for _, p := range st.Path {
			marks = append(marks, Mark{Pos: p, Tag: world.Path})
		}
	}
	return marks
}

// Run steps e until it reaches a terminal state or limit steps have been
// taken. A limit of zero or less means no limit.
func Run(e Engine, limit int) State {
	for i := 0; limit <= 0 || i < limit; i++ {
		if st := e.Step(); st.Over() {
			return st
		}
	}
	return e.State()
}
