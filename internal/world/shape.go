package world

import (
	"fmt"
	"math"
	"strings"
)

// ShapeKind selects the adjacency rule of a world.
type ShapeKind uint8

const (
	// KindRectangle has hard borders: moves leaving the grid do not exist.
	KindRectangle ShapeKind = iota
	// KindTorus wraps both axes around.
	KindTorus
)

// String returns the lowercase name used in configs and map files.
func (k ShapeKind) String() string {
	switch k {
	case KindRectangle:
		return "rectangle"
	case KindTorus:
		return "torus"
	default:
		return "unknown"
	}
}

// Shape is the adjacency and distance rule of a world. It is chosen once per
// search and never changes during it.
type Shape struct {
	Kind   ShapeKind
	Width  int
	Height int
}

// Rectangle returns a bounded shape of the given size.
func Rectangle(w, h int) Shape {
	return Shape{Kind: KindRectangle, Width: w, Height: h}
}

// Torus returns a wrap-around shape of the given size.
func Torus(w, h int) Shape {
	return Shape{Kind: KindTorus, Width: w, Height: h}
}

// ShapeFor builds a shape of the given kind sized to the grid.
func ShapeFor(kind ShapeKind, g *Grid) Shape {
	return Shape{Kind: kind, Width: g.W, Height: g.H}
}

// ParseShapeKind parses "rectangle"/"rect" or "torus" (case-insensitive).
func ParseShapeKind(s string) (ShapeKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "rectangle", "rect":
		return KindRectangle, nil
	case "torus", "wrap":
		return KindTorus, nil
	default:
		return KindRectangle, fmt.Errorf("world: unknown shape %q", s)
	}
}

// String returns a description such as "torus 4x3".
func (s Shape) String() string {
	return fmt.Sprintf("%s %dx%d", s.Kind, s.Width, s.Height)
}

// Moves returns the candidate neighbour positions of p, generated in the
// order N, NE, E, SE, S, SW, W, NW.
//
// For a rectangle, candidates outside the bounds are dropped. For a torus
// every candidate is wrapped, so the result always has eight entries, with
// repeats when a dimension is 2 or less.
func (s Shape) Moves(p Position) []Position {
	moves := make([]Position, 0, len(Directions))
	for _, d := range Directions {
		if next, ok := s.adjust(p.Step(d)); ok {
			moves = append(moves, next)
		}
	}
	return moves
}

// adjust fits a raw candidate into the shape, reporting false when the
// candidate does not exist.
func (s Shape) adjust(p Position) (Position, bool) {
	switch s.Kind {
	case KindTorus:
		if s.Width <= 0 || s.Height <= 0 {
			return p, false
		}
		return P(wrap(p.X, s.Width), wrap(p.Y, s.Height)), true
	default:
		if p.X < 0 || p.X >= s.Width || p.Y < 0 || p.Y >= s.Height {
			return p, false
		}
		return p, true
	}
}

// wrap reduces c modulo dim into [0, dim).
func wrap(c, dim int) int {
	return ((c % dim) + dim) % dim
}

// Distance estimates the distance between two positions: Euclidean distance
// rounded to the nearest integer. On a torus each axis offset is first
// reduced to the shorter way around.
//
// Distance is only ever used as a heuristic; a move always costs 1.
func (s Shape) Distance(a, b Position) int {
	dx := abs(a.X - b.X)
	dy := abs(a.Y - b.Y)
	if s.Kind == KindTorus {
		dx = min(dx, s.Width-dx)
		dy = min(dy, s.Height-dy)
	}
	return int(math.Round(math.Hypot(float64(dx), float64(dy))))
}

// abs returns the absolute value of an integer.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
