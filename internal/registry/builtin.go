package registry

import "github.com/vovakirdan/tui-pathfind/internal/search"

func init() {
	Register("bfs", Strategy{
		Title:       "Breadth-first",
		Description: "FIFO frontier, shortest path in moves",
		New: func(g *search.Graph, _ Options) search.Engine {
			return search.NewBFS(g.Starts())
		},
	})

	Register("greedy", Strategy{
		Title:       "Greedy best-first",
		Description: "frontier ordered by estimated distance to goal",
		SingleGoal:  true,
		New: func(g *search.Graph, _ Options) search.Engine {
			goal, _ := g.Goal()
			return search.NewGreedy(g.Starts(), goal, g.Heuristic())
		},
	})

	Register("astar", Strategy{
		Title:       "A*",
		Description: "frontier ordered by cost so far plus estimate",
		SingleGoal:  true,
		New: func(g *search.Graph, opts Options) search.Engine {
			goal, _ := g.Goal()
			return search.NewAStar(g.Starts(), goal, g.Heuristic(), search.WithReopen(opts.Reopen))
		},
	})
}
