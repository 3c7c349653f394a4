package main

import (
	"fmt"
	"os"

	"github.com/vovakirdan/tui-pathfind/internal/config"
	"github.com/vovakirdan/tui-pathfind/internal/runner"
)

// writePNG saves the runner's overlay to path.
func writePNG(path string, r *runner.Runner, scale int, colours config.BitmapConfig) error {
	palette, err := colours.Palette()
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", path, err)
	}
	if err := r.Project().EncodePNG(f, scale, palette); err != nil {
		f.Close()
		return fmt.Errorf("cannot encode %s: %w", path, err)
	}
	return f.Close()
}
