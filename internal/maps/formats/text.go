package formats

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-pathfind/internal/world"
)

// ParseText parses the plain text map format:
//
//	# name: Spiral
//	# shape: torus
//	S..#
//	.#.#
//	...G
//
// Leading lines of the form "# key: value" are header fields; ':' never
// appears in a grid row, so a row of walls is not mistaken for a header.
// Known keys are id, name and shape; others are kept as metadata.
// Blank lines before and after the grid are ignored.
func ParseText(data []byte) (Map, error) {
	m := Map{Metadata: make(map[string]string)}

	var rows []string
	inGrid := false
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")

		if !inGrid {
			if strings.TrimSpace(line) == "" {
				continue
			}
			if key, value, ok := headerField(line); ok {
				if err := m.setField(key, value); err != nil {
					return Map{}, err
				}
				continue
			}
			inGrid = true
		}
		rows = append(rows, line)
	}
	if err := sc.Err(); err != nil {
		return Map{}, fmt.Errorf("reading text map: %w", err)
	}

	for len(rows) > 0 && strings.TrimSpace(rows[len(rows)-1]) == "" {
		rows = rows[:len(rows)-1]
	}
	if len(rows) == 0 {
		return Map{}, fmt.Errorf("text map has no rows")
	}

	grid, err := world.FromRows(rows)
	if err != nil {
		return Map{}, err
	}
	m.Grid = grid
	return m, nil
}

// headerField splits a "# key: value" line.
func headerField(line string) (key, value string, ok bool) {
	rest, found := strings.CutPrefix(line, "#")
	if !found {
		return "", "", false
	}
	key, value, found = strings.Cut(rest, ":")
	if !found {
		return "", "", false
	}
	return strings.ToLower(strings.TrimSpace(key)), strings.TrimSpace(value), true
}

// setField stores a header field on the map.
func (m *Map) setField(key, value string) error {
	switch key {
	case "id":
		m.ID = value
	case "name":
		m.Name = value
	case "shape":
		kind, err := world.ParseShapeKind(value)
		if err != nil {
			return err
		}
		m.Shape = kind
	default:
		m.Metadata[key] = value
	}
	return nil
}

// EncodeText renders a map in the plain text format.
func EncodeText(m Map) []byte {
	var b bytes.Buffer
	if m.ID != "" {
		fmt.Fprintf(&b, "# id: %s\n", m.ID)
	}
	if m.Name != "" {
		fmt.Fprintf(&b, "# name: %s\n", m.Name)
	}
	if m.Shape != world.KindRectangle {
		fmt.Fprintf(&b, "# shape: %s\n", m.Shape)
	}
	for _, row := range m.Grid.Rows() {
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return b.Bytes()
}
