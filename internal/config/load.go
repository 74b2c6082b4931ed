package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	// Start with defaults
	cfg := Default()

	// Try to load from file (explicit path takes priority)
	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
	}

	// Apply CLI flags (highest priority)
	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Physics.Radius <= 0 || c.Physics.Radius >= 0.5:
		return fmt.Errorf("physics.radius must be in (0, 0.5), got %v", c.Physics.Radius)
	case c.Physics.Gravity >= 0:
		return fmt.Errorf("physics.gravity must be negative, got %v", c.Physics.Gravity)
	case c.Physics.GroundTolerance <= 0:
		return fmt.Errorf("physics.ground_tolerance must be positive, got %v", c.Physics.GroundTolerance)
	case c.World.SizeX < 0 || c.World.SizeY < 0:
		return fmt.Errorf("world size must not be negative, got %dx%d", c.World.SizeX, c.World.SizeY)
	case c.Saves.File == "":
		return fmt.Errorf("saves.file must not be empty")
	}
	return nil
}

// SavePath returns the full path of the configured world save. When
// compression is on, the file gets a .zst suffix.
func (c *Config) SavePath() string {
	name := c.Saves.File
	if c.Saves.Compress && filepath.Ext(name) != ".zst" {
		name += ".zst"
	}
	return filepath.Join(c.Saves.Dir, name)
}

// findConfigFile looks for config in standard locations.
func findConfigFile() string {
	candidates := []string{
		"./config.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "BlockWorld")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "BlockWorld")
	default: // Linux and others
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "blockworld")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "blockworld")
	}
}

// loadFromFile loads config from a YAML file, merging with existing values.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}
