package world

import (
	"fmt"
	"strings"
)

// FromRows builds a grid from text rows using the map alphabet:
// 'S' start, 'G' goal, '#' wall, '.' or ' ' passable.
// Short rows are padded with passable cells to the widest row.
func FromRows(rows []string) (*Grid, error) {
	w := 0
	for _, r := range rows {
		if n := len([]rune(r)); n > w {
			w = n
		}
	}
	g := NewGrid(w, len(rows))
	for y, r := range rows {
		for x, ch := range []rune(r) {
			f, ok := ParseField(ch)
			if !ok {
				return nil, fmt.Errorf("world: invalid cell %q at (%d,%d)", ch, x, y)
			}
			g.Set(P(x, y), f)
		}
	}
	return g, nil
}

// MustFromRows is like FromRows but panics on error. Intended for tests and
// built-in fixtures.
func MustFromRows(rows ...string) *Grid {
	g, err := FromRows(rows)
	if err != nil {
		panic(err)
	}
	return g
}

// Rows renders the grid's world tags back into text rows.
func (g *Grid) Rows() []string {
	rows := make([]string, g.H)
	var sb strings.Builder
	for y := 0; y < g.H; y++ {
		sb.Reset()
		for x := 0; x < g.W; x++ {
			sb.WriteRune(g.At(P(x, y)).Char())
		}
		rows[y] = sb.String()
	}
	return rows
}
