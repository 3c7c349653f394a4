package maps

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-pathfind/internal/maps/formats"
	"github.com/vovakirdan/tui-pathfind/internal/search"
	"github.com/vovakirdan/tui-pathfind/internal/world"
)

func TestLoaderLoadAll(t *testing.T) {
	loader := NewLoader("testdata")

	maps, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	var ids []string
	for _, m := range maps {
		ids = append(ids, m.ID)
	}
	want := []string{"corridor", "open", "ring", "spiral", "walled"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("ids = %v, want %v", ids, want)
	}
}

func TestLoaderIDFromFileName(t *testing.T) {
	loader := NewLoader("testdata")

	m, err := loader.LoadByID("open")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if m.Name != "Open Field" {
		t.Errorf("Name = %q", m.Name)
	}
	if m.Title() != "Open Field" {
		t.Errorf("Title() = %q", m.Title())
	}
	if m.FilePath != filepath.Join("testdata", "open.txt") {
		t.Errorf("FilePath = %q", m.FilePath)
	}
	if st := m.Stats(); st.Width != 5 || st.Height != 5 || st.Starts != 1 || st.Goals != 1 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestLoaderLoadByIDNotFound(t *testing.T) {
	_, err := NewLoader("testdata").LoadByID("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestLoaderResolve(t *testing.T) {
	loader := NewLoader("testdata")

	byPath, err := loader.Resolve(filepath.Join("testdata", "ring.map"))
	if err != nil {
		t.Fatalf("Resolve(path) failed: %v", err)
	}
	if byPath.ID != "ring" || byPath.Shape != world.KindTorus {
		t.Errorf("Resolve(path) = %s %v", byPath.ID, byPath.Shape)
	}

	byID, err := loader.Resolve("corridor")
	if err != nil {
		t.Fatalf("Resolve(id) failed: %v", err)
	}
	if byID.Grid.W != 8 || byID.Grid.H != 3 {
		t.Errorf("corridor is %dx%d", byID.Grid.W, byID.Grid.H)
	}
}

func TestLoaderBitmap(t *testing.T) {
	dir := t.TempDir()
	grid := world.MustFromRows("S.#", "..G")

	f, err := os.Create(filepath.Join(dir, "tiny.png"))
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, formats.EncodeImage(grid, formats.DefaultPalette())); err != nil {
		t.Fatal(err)
	}
	f.Close()

	m, err := NewLoader(dir).LoadByID("tiny")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if !m.Grid.Equal(grid) {
		t.Errorf("grid = %v", m.Grid.Rows())
	}
}

func TestMapGraphShape(t *testing.T) {
	loader := NewLoader("testdata")
	ring, err := loader.LoadByID("ring")
	if err != nil {
		t.Fatal(err)
	}

	torus := search.Run(search.NewBFS(ring.Graph().Starts()), 0)
	if torus.Status != search.Finished || torus.Moves() != 1 {
		t.Errorf("ring as torus: %v", torus)
	}

	rect := search.Run(search.NewBFS(ring.GraphWith(world.KindRectangle).Starts()), 0)
	if rect.Status != search.Failed {
		t.Errorf("ring as rectangle: %v", rect)
	}
}

func TestMapGraphCopiesGrid(t *testing.T) {
	m, err := NewLoader("testdata").LoadByID("open")
	if err != nil {
		t.Fatal(err)
	}
	g := m.Graph()
	g.Grid().Set(world.P(1, 1), world.Impassable)
	if m.Grid.At(world.P(1, 1)) != world.Passable {
		t.Error("graph grid should be independent of the map")
	}
}

func TestIsSupported(t *testing.T) {
	tests := map[string]bool{
		"a.txt":  true,
		"a.MAP":  true,
		"a.yml":  true,
		"a.png":  true,
		"a.bmp":  true,
		"a.md":   false,
		"noext":  false,
		"a.json": false,
	}
	for path, want := range tests {
		if got := IsSupported(path); got != want {
			t.Errorf("IsSupported(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestLoaderMissingRoot(t *testing.T) {
	if _, err := NewLoader(filepath.Join(t.TempDir(), "nope")).LoadAll(); err == nil {
		t.Error("expected error for missing root")
	}
}
