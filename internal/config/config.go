// Package config provides YAML-based configuration loading and pace
// presets for the pathfinding visualizer.
package config

import (
	"time"

	"github.com/vovakirdan/tui-pathfind/internal/maps/formats"
)

// Config is the complete application configuration.
type Config struct {
	Search     SearchConfig     `yaml:"search"`
	Visualizer VisualizerConfig `yaml:"visualizer"`
	Bitmap     BitmapConfig     `yaml:"bitmap"`
	Storage    StorageConfig    `yaml:"storage"`
	Server     ServerConfig     `yaml:"server"`
}

// SearchConfig selects and tunes the search strategy.
type SearchConfig struct {
	Strategy string      `yaml:"strategy"` // "bfs", "greedy" or "astar"
	Shape    string      `yaml:"shape"`    // "rectangle" or "torus"; overrides the map's own
	AStar    AStarConfig `yaml:"astar"`
	MaxSteps int         `yaml:"max_steps"` // 0 = unlimited
}

// AStarConfig contains A*-specific options.
type AStarConfig struct {
	ReopenClosed bool `yaml:"reopen_closed"`
}

// VisualizerConfig controls animation speed.
type VisualizerConfig struct {
	FPS          int        `yaml:"fps"`
	StepsPerTick int        `yaml:"steps_per_tick"`
	Pace         PacePreset `yaml:"pace"` // overrides fps/steps_per_tick when set
}

// BitmapConfig maps bitmap pixel colours to cell tags.
// Colours are "#rrggbb" strings.
type BitmapConfig struct {
	Start string `yaml:"start"`
	Goal  string `yaml:"goal"`
	Wall  string `yaml:"wall"`
	Scale int    `yaml:"scale"` // pixels per cell when exporting images
}

// Palette parses the configured colours.
func (b BitmapConfig) Palette() (formats.Palette, error) {
	return formats.NewPalette(b.Start, b.Goal, b.Wall)
}

// StorageConfig locates the run history database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"`
}

// ServerConfig configures the SSH server.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
	MapsDir     string        `yaml:"maps_dir"`
}
