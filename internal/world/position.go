// Package world provides the grid substrate searched by the engines:
// positions, per-cell fields, and the adjacency/distance rules of a world
// shape. It has no dependencies outside the standard library so that search
// logic stays pure and testable.
package world

import "fmt"

// Position is a cell coordinate on the grid.
// X increases to the right, Y increases downward (screen coordinates).
type Position struct {
	X int
	Y int
}

// P is a convenience constructor for Position.
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns a new Position offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Step returns the position one move away in the given direction.
// The result is not adjusted for any world shape.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return p.Add(dx, dy)
}

// Direction is one of the eight compass moves.
type Direction uint8

// Directions are declared clockwise starting from North. Neighbour
// generation relies on this order.
const (
	DirN Direction = iota
	DirNE
	DirE
	DirSE
	DirS
	DirSW
	DirW
	DirNW
)

// Directions lists all compass directions in generation order.
var Directions = [8]Direction{DirN, DirNE, DirE, DirSE, DirS, DirSW, DirW, DirNW}

// String returns the compass abbreviation of the direction.
func (d Direction) String() string {
	switch d {
	case DirN:
		return "N"
	case DirNE:
		return "NE"
	case DirE:
		return "E"
	case DirSE:
		return "SE"
	case DirS:
		return "S"
	case DirSW:
		return "SW"
	case DirW:
		return "W"
	case DirNW:
		return "NW"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for one move in this direction.
// North decreases Y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case DirN:
		return 0, -1
	case DirNE:
		return 1, -1
	case DirE:
		return 1, 0
	case DirSE:
		return 1, 1
	case DirS:
		return 0, 1
	case DirSW:
		return -1, 1
	case DirW:
		return -1, 0
	case DirNW:
		return -1, -1
	default:
		return 0, 0
	}
}
