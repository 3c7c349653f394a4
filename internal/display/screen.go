package display

import (
	"github.com/vovakirdan/tui-pathfind/internal/core"
	"github.com/vovakirdan/tui-pathfind/internal/world"
)

// fieldColors maps tags to screen colors.
var fieldColors = map[world.Field]core.Color{
	world.Passable:   core.ColorDarkGray,
	world.Impassable: core.ColorBlue,
	world.Start:      core.ColorBrightGreen,
	world.Goal:       core.ColorBrightRed,
	world.Visited:    core.ColorGray,
	world.Frontier:   core.ColorYellow,
	world.Path:       core.ColorBrightWhite,
	world.Current:    core.ColorMagenta,
}

// FieldColor returns the screen color of a tag.
func FieldColor(f world.Field) core.Color {
	return fieldColors[f]
}

// Draw renders the part of the buffer starting at origin into area.
// Cells beyond the buffer are left untouched.
func (b *Buffer) Draw(s *core.Screen, area core.Rect, origin world.Position) {
	for dy := 0; dy < area.H; dy++ {
		y := origin.Y + dy
		if y >= b.H {
			break
		}
		for dx := 0; dx < area.W; dx++ {
			x := origin.X + dx
			if x >= b.W {
				break
			}
			f := b.cells[y*b.W+x]
			s.SetColored(area.X+dx, area.Y+dy, f.Char(), FieldColor(f))
		}
	}
}

// Origin returns the top-left buffer position to draw so that focus stays
// visible in an area of the given size.
func (b *Buffer) Origin(area core.Rect, focus world.Position) world.Position {
	return world.P(
		core.ScrollOffset(b.W, area.W, focus.X),
		core.ScrollOffset(b.H, area.H, focus.Y),
	)
}
