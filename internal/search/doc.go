// Package search implements resumable graph searches over a grid world.
//
// Three strategies share one abstraction:
//
//   - BFS: FIFO frontier, shortest path in moves.
//   - Greedy: best-first by heuristic distance to the goal.
//   - AStar: best-first by path cost plus heuristic distance.
//
// Every engine is an explicit state machine advanced by Step. Each call
// expands at most one node, so a driver can render the visited set and the
// frontier between calls, stop at any point, or take a deep copy with Clone
// to rewind later. Engines do no I/O and start no goroutines; an engine is
// owned by a single driver and is not safe for concurrent use.
package search
