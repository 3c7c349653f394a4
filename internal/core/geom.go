// Package core provides the terminal-independent drawing surface shared by
// the renderers and the visualizer. It has no Bubble Tea dependency, so
// everything drawn into a Screen can be tested as plain text.
package core

// Rect is an axis-aligned area of the screen.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Clamp restricts a value to be within [lo, hi].
func Clamp(val, lo, hi int) int {
	if val < lo {
		return lo
	}
	if val > hi {
		return hi
	}
	return val
}

// ScrollOffset returns the first visible index of a window of size visible
// over total items, positioned so that focus stays in view and roughly
// centred. The result is always within [0, total-visible].
func ScrollOffset(total, visible, focus int) int {
	if visible >= total {
		return 0
	}
	return Clamp(focus-visible/2, 0, total-visible)
}
