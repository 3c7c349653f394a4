// Package formats provides pluggable map file format parsers.
package formats

import (
	"fmt"

	"github.com/vovakirdan/tui-pathfind/internal/world"
)

// Map represents a parsed map ready for use.
// ID and Name may be empty when the format carries no header; the loader
// fills them from the file name.
type Map struct {
	ID       string
	Name     string
	Shape    world.ShapeKind
	Grid     *world.Grid
	Metadata map[string]string
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".txt", ".map", ".yaml", ".yml", ".png", ".bmp"}
}

// Parse routes data to the parser registered for ext.
func Parse(data []byte, ext string, palette Palette) (Map, error) {
	switch ext {
	case ".txt", ".map":
		return ParseText(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".png":
		return ParsePNG(data, palette)
	case ".bmp":
		return ParseBMP(data, palette)
	default:
		return Map{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
