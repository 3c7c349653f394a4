package search

import "github.com/vovakirdan/tui-pathfind/internal/world"

// Node is the capability set every strategy works with.
type Node interface {
	// ID returns the node's position, used as the identity and dedup key.
	ID() world.Position

	// IsGoal reports whether the node is a search target.
	IsGoal() bool

	// Neighbours returns the nodes reachable in one move, in topology order.
	Neighbours() []Node
}

// Heuristic estimates the remaining cost between two positions.
type Heuristic func(from, to world.Position) int

// Graph binds a read-only grid to a world shape and produces nodes for it.
// All nodes created by a graph share its grid.
type Graph struct {
	grid  *world.Grid
	shape world.Shape
}

// NewGraph creates a graph over grid using the adjacency rule of shape.
func NewGraph(grid *world.Grid, shape world.Shape) *Graph {
	return &Graph{grid: grid, shape: shape}
}

// Grid returns the underlying grid.
func (g *Graph) Grid() *world.Grid {
	return g.grid
}

// Shape returns the world shape.
func (g *Graph) Shape() world.Shape {
	return g.shape
}

// Node returns the node at position p.
func (g *Graph) Node(p world.Position) GridNode {
	return GridNode{pos: p, graph: g}
}

// Starts returns a node for every Start cell, in row-major order.
func (g *Graph) Starts() []Node {
	starts := g.grid.Starts()
	nodes := make([]Node, len(starts))
	for i, p := range starts {
		nodes[i] = g.Node(p)
	}
	return nodes
}

// Goal returns the first Goal cell in row-major order.
func (g *Graph) Goal() (world.Position, bool) {
	goals := g.grid.Goals()
	if len(goals) == 0 {
		return world.Position{}, false
	}
	return goals[0], true
}

// Heuristic returns the shape's distance estimate.
func (g *Graph) Heuristic() Heuristic {
	return g.shape.Distance
}

// GridNode is a position on a graph's grid.
// Two grid nodes are equal when their positions are equal.
type GridNode struct {
	pos   world.Position
	graph *Graph
}

// ID returns the node's position.
func (n GridNode) ID() world.Position {
	return n.pos
}

// IsGoal reports whether the grid tags this position as Goal.
func (n GridNode) IsGoal() bool {
	return n.graph.grid.At(n.pos) == world.Goal
}

// Neighbours returns the shape's candidate moves that land on traversable
// cells. This is the only place topology and passability meet.
func (n GridNode) Neighbours() []Node {
	moves := n.graph.shape.Moves(n.pos)
	out := make([]Node, 0, len(moves))
	for _, m := range moves {
		if !n.graph.grid.At(m).Traversable() {
			continue
		}
		out = append(out, n.graph.Node(m))
	}
	return out
}
