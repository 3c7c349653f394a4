package world

// Field is the semantic tag of a single grid cell.
//
// Start, Goal, Passable and Impassable describe the world itself.
// Visited, Frontier, Path and Current are overlay tags used only by display
// buffers; search engines never write them into a grid.
type Field uint8

const (
	Passable Field = iota
	Impassable
	Start
	Goal
	Visited
	Frontier
	Path
	Current
)

// String returns the name of the field.
func (f Field) String() string {
	switch f {
	case Passable:
		return "Passable"
	case Impassable:
		return "Impassable"
	case Start:
		return "Start"
	case Goal:
		return "Goal"
	case Visited:
		return "Visited"
	case Frontier:
		return "Frontier"
	case Path:
		return "Path"
	case Current:
		return "Current"
	default:
		return "Unknown"
	}
}

// Traversable reports whether a search may move through the cell.
func (f Field) Traversable() bool {
	return f != Impassable
}

// IsOverlay reports whether the tag is a search annotation rather than part
// of the world definition.
func (f Field) IsOverlay() bool {
	switch f {
	case Visited, Frontier, Path, Current:
		return true
	}
	return false
}

// Char returns the map-file character for the field.
func (f Field) Char() rune {
	switch f {
	case Passable:
		return '.'
	case Impassable:
		return '#'
	case Start:
		return 'S'
	case Goal:
		return 'G'
	case Visited:
		return 'o'
	case Frontier:
		return '+'
	case Path:
		return '*'
	case Current:
		return '@'
	default:
		return '?'
	}
}

// ParseField converts a map-file character into a world field.
// Only world tags are accepted; overlay characters are rejected.
func ParseField(r rune) (Field, bool) {
	switch r {
	case '.', ' ':
		return Passable, true
	case '#':
		return Impassable, true
	case 'S', 's':
		return Start, true
	case 'G', 'g':
		return Goal, true
	default:
		return Passable, false
	}
}
