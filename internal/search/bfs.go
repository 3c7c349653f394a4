package search

import "github.com/vovakirdan/tui-pathfind/internal/world"

// BFS is a breadth-first search. Positions are marked visited when they are
// enqueued, so each is expanded at most once and the first path found is
// the shortest in moves.
type BFS struct {
	tracker
	frontier []Node
}

var _ Engine = (*BFS)(nil)

// NewBFS creates a breadth-first search seeded with the start nodes.
func NewBFS(starts []Node) *BFS {
	b := &BFS{tracker: newTracker(starts)}
	b.frontier = append(b.frontier, starts...)
	return b
}

// Name returns "bfs".
func (b *BFS) Name() string {
	return "bfs"
}

// Step expands the node at the front of the queue.
func (b *BFS) Step() State {
	if b.state.Over() {
		return b.state
	}
	if len(b.frontier) == 0 {
		return b.exhaust()
	}

	current := b.frontier[0]
	b.frontier[0] = nil
	b.frontier = b.frontier[1:]
	b.take(current.ID())

	if current.IsGoal() {
		return b.reach(current.ID())
	}

	for _, next := range current.Neighbours() {
		if !b.visit(next.ID()) {
			continue
		}
		b.frontier = append(b.frontier, next)
		b.pred[next.ID()] = current.ID()
	}
	return b.state
}

// Frontier returns the queued positions, front first.
func (b *BFS) Frontier() []world.Position {
	out := make([]world.Position, len(b.frontier))
	for i, n := range b.frontier {
		out[i] = n.ID()
	}
	return out
}

// Clone returns a deep copy of the search.
func (b *BFS) Clone() Engine {
	return &BFS{
		tracker:  b.tracker.clone(),
		frontier: append([]Node(nil), b.frontier...),
	}
}
