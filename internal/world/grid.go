package world

// Grid is the world map as a rectangular array of fields.
// Cells are stored in row-major order: index = y*W + x.
//
// A grid is filled by a loader and must not be modified once a search has
// started; every node of a search shares the same *Grid.
type Grid struct {
	W     int     // Width of the grid
	H     int     // Height of the grid
	Cells []Field // Flat array of cells, length W*H
}

// NewGrid creates a grid of the given size with every cell Passable.
func NewGrid(w, h int) *Grid {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &Grid{
		W:     w,
		H:     h,
		Cells: make([]Field, w*h),
	}
}

// index converts a position to a flat array index.
func (g *Grid) index(p Position) int {
	return p.Y*g.W + p.X
}

// InBounds returns true if the position lies inside the grid.
func (g *Grid) InBounds(p Position) bool {
	return p.X >= 0 && p.X < g.W && p.Y >= 0 && p.Y < g.H
}

// At returns the field at the given position.
// Out-of-bounds positions read as Impassable.
func (g *Grid) At(p Position) Field {
	if !g.InBounds(p) {
		return Impassable
	}
	return g.Cells[g.index(p)]
}

// Set assigns the field at the given position. Out-of-bounds writes are
// ignored. Intended for loaders building a grid.
func (g *Grid) Set(p Position, f Field) {
	if g.InBounds(p) {
		g.Cells[g.index(p)] = f
	}
}

// Positions returns every position of the grid, ordered by row then column.
func (g *Grid) Positions() []Position {
	ps := make([]Position, 0, g.W*g.H)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			ps = append(ps, P(x, y))
		}
	}
	return ps
}

// Find returns all positions tagged with f in row-major order.
func (g *Grid) Find(f Field) []Position {
	var ps []Position
	for i, c := range g.Cells {
		if c == f {
			ps = append(ps, P(i%g.W, i/g.W))
		}
	}
	return ps
}

// Starts returns the positions tagged Start.
func (g *Grid) Starts() []Position {
	return g.Find(Start)
}

// Goals returns the positions tagged Goal.
func (g *Grid) Goals() []Position {
	return g.Find(Goal)
}

// Count returns the number of cells tagged with f.
func (g *Grid) Count(f Field) int {
	n := 0
	for _, c := range g.Cells {
		if c == f {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	cells := make([]Field, len(g.Cells))
	copy(cells, g.Cells)
	return &Grid{
		W:     g.W,
		H:     g.H,
		Cells: cells,
	}
}

// Equal returns true if two grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H {
		return false
	}
	for i, c := range g.Cells {
		if c != other.Cells[i] {
			return false
		}
	}
	return true
}
