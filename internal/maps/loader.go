// Package maps provides map loading from directories of text, YAML and
// bitmap files.
// This package depends on world and search but neither depends on maps.
package maps

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/vovakirdan/tui-pathfind/internal/maps/formats"
	"github.com/vovakirdan/tui-pathfind/internal/search"
	"github.com/vovakirdan/tui-pathfind/internal/world"
)

// ErrNotFound is returned when no map has the requested ID.
var ErrNotFound = errors.New("map not found")

// Map represents a complete map definition.
type Map struct {
	ID       string
	Name     string
	Shape    world.ShapeKind
	Grid     *world.Grid
	Metadata map[string]string
	FilePath string
}

// Title returns the display name, falling back to the ID.
func (m *Map) Title() string {
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}

// Graph builds a search graph over a private copy of the map's grid using
// the map's own shape.
func (m *Map) Graph() *search.Graph {
	return m.GraphWith(m.Shape)
}

// GraphWith builds a search graph with an explicit shape.
func (m *Map) GraphWith(kind world.ShapeKind) *search.Graph {
	g := m.Grid.Clone()
	return search.NewGraph(g, world.ShapeFor(kind, g))
}

// Stats summarises the map's grid.
func (m *Map) Stats() world.GridStats {
	return world.ComputeGridStats(m.Grid)
}

// Loader handles loading maps from a directory.
type Loader struct {
	Root    string
	Palette formats.Palette
}

// NewLoader creates a new map loader using the default bitmap palette.
func NewLoader(root string) *Loader {
	return &Loader{Root: root, Palette: formats.DefaultPalette()}
}

// LoadAll recursively scans and loads all map files.
// Files that fail to parse are skipped.
// Returns maps sorted by ID for deterministic ordering.
func (l *Loader) LoadAll() ([]Map, error) {
	var maps []Map

	err := filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		if !IsSupported(path) {
			return nil
		}

		m, err := l.LoadFile(path)
		if err != nil {
			// Skip invalid files
			return nil
		}

		maps = append(maps, m)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.Slice(maps, func(i, j int) bool {
		return maps[i].ID < maps[j].ID
	})

	return maps, nil
}

// LoadFile loads a single map file. Maps without an ID are named after
// the file.
func (l *Loader) LoadFile(path string) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Map{}, fmt.Errorf("reading file %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	parsed, err := formats.Parse(data, ext, l.Palette)
	if err != nil {
		return Map{}, fmt.Errorf("parsing file %s: %w", path, err)
	}

	id := parsed.ID
	if id == "" {
		id = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return Map{
		ID:       id,
		Name:     parsed.Name,
		Shape:    parsed.Shape,
		Grid:     parsed.Grid,
		Metadata: parsed.Metadata,
		FilePath: path,
	}, nil
}

// LoadByID loads a specific map by ID.
func (l *Loader) LoadByID(id string) (Map, error) {
	maps, err := l.LoadAll()
	if err != nil {
		return Map{}, err
	}

	for _, m := range maps {
		if m.ID == id {
			return m, nil
		}
	}

	return Map{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// ListIDs returns all map IDs in sorted order.
func (l *Loader) ListIDs() ([]string, error) {
	maps, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(maps))
	for i, m := range maps {
		ids[i] = m.ID
	}
	return ids, nil
}

// Resolve loads ref as a file path if such a file exists, and otherwise
// looks it up by ID under Root.
func (l *Loader) Resolve(ref string) (Map, error) {
	if info, err := os.Stat(ref); err == nil && !info.IsDir() {
		return l.LoadFile(ref)
	}
	return l.LoadByID(ref)
}

// IsSupported reports whether path has a map file extension.
func IsSupported(path string) bool {
	return slices.Contains(formats.FormatExtensions(), strings.ToLower(filepath.Ext(path)))
}
