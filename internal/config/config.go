// Package config handles game configuration loading and management.
package config

// Config holds all game settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Physics  PhysicsConfig  `yaml:"physics"`
	World    WorldConfig    `yaml:"world"`
	Saves    SavesConfig    `yaml:"saves"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and camera settings.
type GraphicsConfig struct {
	Width            int     `yaml:"width"`
	Height           int     `yaml:"height"`
	Fullscreen       bool    `yaml:"fullscreen"`
	VSync            bool    `yaml:"vsync"`
	FPSLimit         int     `yaml:"fps_limit"`
	FOV              float32 `yaml:"fov"`               // vertical field of view, degrees
	MouseSensitivity float32 `yaml:"mouse_sensitivity"` // degrees per pixel
}

// PhysicsConfig holds player movement tuning.
type PhysicsConfig struct {
	Speed           float32    `yaml:"speed"`
	JumpForce       float32    `yaml:"jump_force"`
	Gravity         float32    `yaml:"gravity"`
	Radius          float32    `yaml:"radius"`
	GroundTolerance float32    `yaml:"ground_tolerance"`
	PushPasses      int        `yaml:"push_passes"`
	Spawn           [3]float32 `yaml:"spawn"`
}

// WorldConfig holds world generation and editing settings.
type WorldConfig struct {
	SizeX        int     `yaml:"size_x"`
	SizeY        int     `yaml:"size_y"`
	GroundHeight int     `yaml:"ground_height"`
	GrassDepth   int     `yaml:"grass_depth"`
	StoneDepth   int     `yaml:"stone_depth"`
	DefaultType  string  `yaml:"default_type"` // block type selected at start
	Reach        float32 `yaml:"reach"`        // pick distance, 0 = unlimited
}

// SavesConfig holds world save settings.
type SavesConfig struct {
	Dir      string `yaml:"dir"`
	File     string `yaml:"file"`
	Compress bool   `yaml:"compress"` // write zstd (.zst) saves
}

// MetricsConfig holds the Prometheus endpoint setting.
type MetricsConfig struct {
	Listen string `yaml:"listen"` // e.g. "127.0.0.1:9090"; empty disables
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:            1280,
			Height:           720,
			Fullscreen:       false,
			VSync:            true,
			FPSLimit:         0,
			FOV:              90,
			MouseSensitivity: 0.1,
		},
		Physics: PhysicsConfig{
			Speed:           5.0,
			JumpForce:       7.0,
			Gravity:         -19.6,
			Radius:          0.3,
			GroundTolerance: 0.1,
			PushPasses:      4,
			Spawn:           [3]float32{0, 0, 2},
		},
		World: WorldConfig{
			SizeX:        10,
			SizeY:        10,
			GroundHeight: 0,
			GrassDepth:   1,
			StoneDepth:   2,
			DefaultType:  "stone",
		},
		Saves: SavesConfig{
			Dir:  "saves",
			File: "world_save.json",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
