package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/pathfind.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Search: SearchConfig{
			Strategy: "astar",
			AStar: AStarConfig{
				ReopenClosed: true,
			},
		},
		Visualizer: VisualizerConfig{
			FPS:          20,
			StepsPerTick: 1,
		},
		Bitmap: BitmapConfig{
			Start: "#00ff00",
			Goal:  "#ff0000",
			Wall:  "#0000ff",
			Scale: 8,
		},
		Storage: StorageConfig{
			DBPath: "~/.pathfind/runs.db",
		},
		Server: ServerConfig{
			Address:     ":2222",
			HostKey:     ".ssh/pathfind_ed25519",
			IdleTimeout: 10 * time.Minute,
			MapsDir:     "maps",
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
