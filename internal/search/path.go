package search

import "github.com/vovakirdan/tui-pathfind/internal/world"

// BuildPath walks the predecessor map back from goal and returns
// [goal, pred(goal), pred(pred(goal)), ...], stopping at the first position
// without a predecessor (a start position).
func BuildPath(pred map[world.Position]world.Position, goal world.Position) []world.Position {
	path := []world.Position{goal}
	last := goal
	for {
		prev, ok := pred[last]
		if !ok {
			return path
		}
		path = append(path, prev)
		last = prev
	}
}

// Reverse returns a reversed copy of path.
func Reverse(path []world.Position) []world.Position {
	if path == nil {
		return nil
	}
	out := make([]world.Position, len(path))
	for i, p := range path {
		out[len(path)-1-i] = p
	}
	return out
}
