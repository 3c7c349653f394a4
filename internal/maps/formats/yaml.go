package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pathfind/internal/world"
)

// YAMLMap represents the YAML structure for a map file.
// Rows use the same alphabet as the text format.
type YAMLMap struct {
	ID       string            `yaml:"id"`
	Name     string            `yaml:"name"`
	Shape    string            `yaml:"shape,omitempty"`
	Rows     []string          `yaml:"rows"`
	Metadata map[string]string `yaml:"metadata,omitempty"`
}

// ParseYAML parses a YAML map file.
func ParseYAML(data []byte) (Map, error) {
	var ym YAMLMap
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return Map{}, fmt.Errorf("yaml unmarshal: %w", err)
	}
	if len(ym.Rows) == 0 {
		return Map{}, fmt.Errorf("yaml map has no rows")
	}

	kind, err := world.ParseShapeKind(ym.Shape)
	if err != nil {
		return Map{}, err
	}

	grid, err := world.FromRows(ym.Rows)
	if err != nil {
		return Map{}, err
	}

	return Map{
		ID:       ym.ID,
		Name:     ym.Name,
		Shape:    kind,
		Grid:     grid,
		Metadata: ym.Metadata,
	}, nil
}

// EncodeYAML renders a map as YAML.
func EncodeYAML(m Map) ([]byte, error) {
	ym := YAMLMap{
		ID:       m.ID,
		Name:     m.Name,
		Rows:     m.Grid.Rows(),
		Metadata: m.Metadata,
	}
	if m.Shape != world.KindRectangle {
		ym.Shape = m.Shape.String()
	}
	return yaml.Marshal(ym)
}
