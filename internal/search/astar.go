package search

import (
	"maps"

	"github.com/vovakirdan/tui-pathfind/internal/world"
)

// AStar is an A* search with unit move cost, ordered by f = g + h.
//
// A neighbour is relaxed whenever a cheaper g is found: its scores and
// predecessor are updated and it is pushed again. Superseded queue entries
// are discarded when popped.
//
// With reopening enabled (the default) a node already expanded is expanded
// again after its g improves, so the costs of its successors are corrected
// too. This repairs an inconsistent heuristic that never overestimates. It
// does not repair one that overestimates: the goal is accepted when it is
// popped, so a longer path can still win. Rounded Euclidean distance
// overestimates on diagonals ((2,2) rounds to 3 for a 2-move trip), so A*
// paths over a Graph heuristic are not guaranteed to be shortest. Use BFS
// for that. With reopening disabled an expanded node is never expanded again.
type AStar struct {
	tracker
	queue     queue
	goal      world.Position
	heuristic Heuristic
	gScore    map[world.Position]int
	fScore    map[world.Position]int
	closed    map[world.Position]bool
	reopen    bool
}

var _ Engine = (*AStar)(nil)

// AStarOption configures an AStar search.
type AStarOption func(*AStar)

// WithReopen controls whether expanded nodes are expanded again when a
// cheaper path to them is found.
func WithReopen(reopen bool) AStarOption {
	return func(a *AStar) { a.reopen = reopen }
}

// NewAStar creates an A* search towards goal.
func NewAStar(starts []Node, goal world.Position, h Heuristic, opts ...AStarOption) *AStar {
	a := &AStar{
		tracker:   newTracker(starts),
		goal:      goal,
		heuristic: h,
		gScore:    make(map[world.Position]int),
		fScore:    make(map[world.Position]int),
		closed:    make(map[world.Position]bool),
		reopen:    true,
	}
	for _, opt := range opts {
		opt(a)
	}
	for _, s := range starts {
		id := s.ID()
		if _, seen := a.gScore[id]; seen {
			continue
		}
		a.gScore[id] = 0
		a.fScore[id] = h(id, goal)
		a.queue.push(s, a.fScore[id], 0)
	}
	return a
}

// Name returns "astar".
func (a *AStar) Name() string {
	return "astar"
}

// Reopen reports whether expanded nodes may be expanded again.
func (a *AStar) Reopen() bool {
	return a.reopen
}

// GScore returns the best known cost from a start to p.
func (a *AStar) GScore(p world.Position) (int, bool) {
	g, ok := a.gScore[p]
	return g, ok
}

// FScore returns the last f score recorded for p.
func (a *AStar) FScore(p world.Position) (int, bool) {
	f, ok := a.fScore[p]
	return f, ok
}

// live reports whether a queued entry still describes the best known route
// to its node and may be expanded.
func (a *AStar) live(e entry) bool {
	id := e.node.ID()
	if e.g > a.gScore[id] {
		return false
	}
	if a.closed[id] && !a.reopen {
		return false
	}
	return true
}

// Step expands the queued node with the lowest f score.
func (a *AStar) Step() State {
	if a.state.Over() {
		return a.state
	}

	var e entry
	for {
		if a.queue.len() == 0 {
			return a.exhaust()
		}
		e = a.queue.pop()
		if a.live(e) {
			break
		}
	}

	current := e.node
	id := current.ID()
	a.take(id)
	a.closed[id] = true

	if current.IsGoal() {
		return a.reach(id)
	}

	for _, next := range current.Neighbours() {
		nid := next.ID()
		tentative := a.gScore[id] + 1
		if g, known := a.gScore[nid]; known && tentative >= g {
			continue
		}
		a.gScore[nid] = tentative
		a.fScore[nid] = tentative + a.heuristic(nid, a.goal)
		a.queue.push(next, a.fScore[nid], tentative)
		a.visit(nid)
		a.pred[nid] = id
	}
	return a.state
}

// Frontier returns the positions that would still be expanded, in order.
func (a *AStar) Frontier() []world.Position {
	entries := a.queue.ordered()
	out := make([]world.Position, 0, len(entries))
	seen := make(map[world.Position]bool, len(entries))
	for _, e := range entries {
		id := e.node.ID()
		if seen[id] || !a.live(e) {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}

// Clone returns a deep copy of the search.
func (a *AStar) Clone() Engine {
	return &AStar{
		tracker:   a.tracker.clone(),
		queue:     a.queue.clone(),
		goal:      a.goal,
		heuristic: a.heuristic,
		gScore:    maps.Clone(a.gScore),
		fScore:    maps.Clone(a.fScore),
		closed:    maps.Clone(a.closed),
		reopen:    a.reopen,
	}
}
