// Package display projects a search onto a grid of overlay tags and renders
// it as text, into a core.Screen, or as an image.
package display

import (
	"strings"

	"github.com/vovakirdan/tui-pathfind/internal/search"
	"github.com/vovakirdan/tui-pathfind/internal/world"
)

// Buffer is a copy of a grid's world tags with search overlays applied.
// It is owned by the caller and never shared with an engine.
type Buffer struct {
	W, H  int
	cells []world.Field
}

// NewBuffer copies the world tags of g.
func NewBuffer(g *world.Grid) *Buffer {
	return &Buffer{
		W:     g.W,
		H:     g.H,
		cells: append([]world.Field(nil), g.Cells...),
	}
}

// Project copies g and overlays the engine's current marks.
func Project(g *world.Grid, e search.Engine) *Buffer {
	b := NewBuffer(g)
	b.Apply(search.Marks(e))
	return b
}

// rank orders overlay tags; a mark only replaces a tag of lower or equal rank.
func rank(f world.Field) int {
	switch f {
	case world.Visited:
		return 1
	case world.Frontier:
		return 2
	case world.Current:
		return 3
	case world.Path:
		return 4
	default:
		return 0
	}
}

// fixed reports whether f is a world tag that overlays never replace.
func fixed(f world.Field) bool {
	return f == world.Start || f == world.Goal || f == world.Impassable
}

// Apply overlays marks. Start, Goal and Impassable cells keep their tags;
// elsewhere Path beats Current beats Frontier beats Visited.
func (b *Buffer) Apply(marks []search.Mark) {
	for _, m := range marks {
		i, ok := b.index(m.Pos)
		if !ok {
			continue
		}
		cur := b.cells[i]
		if fixed(cur) || rank(m.Tag) < rank(cur) {
			continue
		}
		b.cells[i] = m.Tag
	}
}

func (b *Buffer) index(p world.Position) (int, bool) {
	if p.X < 0 || p.X >= b.W || p.Y < 0 || p.Y >= b.H {
		return 0, false
	}
	return p.Y*b.W + p.X, true
}

// At returns the tag at p, or Impassable out of bounds.
func (b *Buffer) At(p world.Position) world.Field {
	i, ok := b.index(p)
	if !ok {
		return world.Impassable
	}
	return b.cells[i]
}

// Count returns the number of cells tagged f.
func (b *Buffer) Count(f world.Field) int {
	n := 0
	for _, c := range b.cells {
		if c == f {
			n++
		}
	}
	return n
}

// Rows renders each row with the tag characters.
func (b *Buffer) Rows() []string {
	rows := make([]string, b.H)
	var sb strings.Builder
	for y := 0; y < b.H; y++ {
		sb.Reset()
		for x := 0; x < b.W; x++ {
			sb.WriteRune(b.cells[y*b.W+x].Char())
		}
		rows[y] = sb.String()
	}
	return rows
}

// RenderASCII renders the buffer as newline-terminated rows.
func (b *Buffer) RenderASCII() string {
	return strings.Join(b.Rows(), "\n") + "\n"
}
