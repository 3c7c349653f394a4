package search

import "github.com/vovakirdan/tui-pathfind/internal/world"

// Greedy is a best-first search ordered by heuristic distance to a single
// goal. Like BFS it never re-queues a visited position, trading path
// optimality for fewer expansions.
type Greedy struct {
	tracker
	queue     queue
	goal      world.Position
	heuristic Heuristic
}

var _ Engine = (*Greedy)(nil)

// NewGreedy creates a greedy best-first search towards goal.
func NewGreedy(starts []Node, goal world.Position, h Heuristic) *Greedy {
	g := &Greedy{
		tracker:   newTracker(starts),
		goal:      goal,
		heuristic: h,
	}
	for _, s := range starts {
		g.queue.push(s, h(s.ID(), goal), 0)
	}
	return g
}

// Name returns "greedy".
func (g *Greedy) Name() string {
	return "greedy"
}

// Step expands the queued node closest to the goal.
func (g *Greedy) Step() State {
	if g.state.Over() {
		return g.state
	}
	if g.queue.len() == 0 {
		return g.exhaust()
	}

	current := g.queue.pop().node
	g.take(current.ID())

	if current.IsGoal() {
		return g.reach(current.ID())
	}

	for _, next := range current.Neighbours() {
		if !g.visit(next.ID()) {
			continue
		}
		g.queue.push(next, g.heuristic(next.ID(), g.goal), 0)
		g.pred[next.ID()] = current.ID()
	}
	return g.state
}

// Frontier returns the queued positions in expansion order.
func (g *Greedy) Frontier() []world.Position {
	entries := g.queue.ordered()
	out := make([]world.Position, len(entries))
	for i, e := range entries {
		out[i] = e.node.ID()
	}
	return out
}

// Clone returns a deep copy of the search.
func (g *Greedy) Clone() Engine {
	return &Greedy{
		tracker:   g.tracker.clone(),
		queue:     g.queue.clone(),
		goal:      g.goal,
		heuristic: g.heuristic,
	}
}
