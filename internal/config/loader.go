package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/tui-pathfind/internal/world"
)

// FileName is the configuration file looked up in the config directories.
const FileName = "pathfind.yaml"

// Load loads the configuration.
// Search order: customPath -> ~/.pathfind/configs/pathfind.yaml ->
// ./configs/pathfind.yaml -> embedded default -> DefaultConfig.
// Fields missing from the file keep their default values.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	if cfg, err := Parse(defaultYAML); err == nil {
		return cfg, nil
	}
	return DefaultConfig(), nil // Fallback to hardcoded if embed fails
}

// Parse decodes YAML on top of DefaultConfig and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks enumerated values and applies the pace preset.
func (c *Config) Validate() error {
	if _, err := world.ParseShapeKind(c.Search.Shape); err != nil {
		return err
	}
	if c.Search.MaxSteps < 0 {
		return fmt.Errorf("config: max_steps must not be negative")
	}
	if _, err := c.Bitmap.Palette(); err != nil {
		return fmt.Errorf("config: bitmap: %w", err)
	}
	if c.Visualizer.Pace != "" {
		p, err := ParsePace(string(c.Visualizer.Pace))
		if err != nil {
			return err
		}
		ApplyPace(&c.Visualizer, p)
	}
	if c.Visualizer.FPS <= 0 {
		c.Visualizer.FPS = DefaultConfig().Visualizer.FPS
	}
	if c.Visualizer.StepsPerTick <= 0 {
		c.Visualizer.StepsPerTick = 1
	}
	if c.Bitmap.Scale <= 0 {
		c.Bitmap.Scale = DefaultConfig().Bitmap.Scale
	}
	return nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".pathfind", "configs", filename)
}
