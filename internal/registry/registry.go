// Package registry provides a global registry for search strategies.
// Strategies register themselves in init() functions, allowing the CLI and
// the visualizer to discover and instantiate them by name.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-pathfind/internal/search"
	"github.com/vovakirdan/tui-pathfind/internal/world"
)

// Options tunes engine construction.
type Options struct {
	// Reopen lets A* expand a node again after finding a cheaper path to it.
	Reopen bool
}

// DefaultOptions returns the options used when none are configured.
func DefaultOptions() Options {
	return Options{Reopen: true}
}

// Factory builds an engine over a graph.
// The graph is assumed to have passed the strategy's preconditions.
type Factory func(g *search.Graph, opts Options) search.Engine

// Strategy describes a registered search strategy.
type Strategy struct {
	// Title is a human-readable name (e.g., "Breadth-first").
	Title string

	// Description is a one-line summary shown in listings.
	Description string

	// SingleGoal requires the grid to contain exactly one goal, because
	// the strategy's heuristic needs a concrete target.
	SingleGoal bool

	// New builds a fresh engine.
	New Factory
}

// StrategyInfo contains metadata about a registered strategy.
type StrategyInfo struct {
	ID          string
	Title       string
	Description string
}

var (
	strategies = make(map[string]Strategy)
	mu         sync.RWMutex
)

// Register adds a strategy to the registry.
// Panics if a strategy with the same ID is already registered.
func Register(id string, s Strategy) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := strategies[id]; exists {
		panic(fmt.Sprintf("registry: strategy %q already registered", id))
	}
	if s.New == nil {
		panic(fmt.Sprintf("registry: strategy %q has no factory", id))
	}
	strategies[id] = s
}

// List returns information about all registered strategies, sorted by ID.
func List() []StrategyInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]StrategyInfo, 0, len(strategies))
	for id, s := range strategies {
		result = append(result, StrategyInfo{
			ID:          id,
			Title:       s.Title,
			Description: s.Description,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// IDs returns the registered strategy IDs, sorted.
func IDs() []string {
	list := List()
	ids := make([]string, len(list))
	for i, s := range list {
		ids[i] = s.ID
	}
	return ids
}

// Create validates the graph against the strategy's preconditions and
// builds a new engine.
// Returns an error if the ID is unknown or the grid is unusable.
func Create(id string, g *search.Graph, opts Options) (search.Engine, error) {
	mu.RLock()
	s, ok := strategies[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown strategy %q", id)
	}
	if err := world.Validate(g.Grid(), s.SingleGoal); err != nil {
		return nil, fmt.Errorf("registry: %s: %w", id, err)
	}

	return s.New(g, opts), nil
}

// Exists checks if a strategy with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := strategies[id]
	return ok
}

// Next returns the registered ID after id in sorted order, wrapping around.
// An unknown id yields the first strategy.
func Next(id string) string {
	ids := IDs()
	if len(ids) == 0 {
		return id
	}
	for i, cur := range ids {
		if cur == id {
			return ids[(i+1)%len(ids)]
		}
	}
	return ids[0]
}
