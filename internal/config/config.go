// Package config handles simulator configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/lightfall/internal/engine/lighting"
	"github.com/Faultbox/lightfall/internal/engine/rendermode"
)

// Config holds all settings.
type Config struct {
	Graphics   GraphicsConfig   `yaml:"graphics"`
	Simulation SimulationConfig `yaml:"simulation"`
	Assets     AssetsConfig     `yaml:"assets"`
	Audio      AudioConfig      `yaml:"audio"`
	Debug      DebugConfig      `yaml:"debug"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Fullscreen bool       `yaml:"fullscreen"`
	VSync      bool       `yaml:"vsync"`
	RenderMode string     `yaml:"render_mode"` // forward or deferred
	Wireframe  bool       `yaml:"wireframe"`
	ClearColor [3]float32 `yaml:"clear_color"`

	Sun lighting.Sun `yaml:"sun"`
}

// SimulationConfig holds gameplay tuning.
type SimulationConfig struct {
	MouseSensitivity  float32      `yaml:"mouse_sensitivity"`
	EnemyStopDistance float32      `yaml:"enemy_stop_distance"`
	Gravity           float32      `yaml:"gravity"`
	GroundHeight      float32      `yaml:"ground_height"`
	FrictionThreshold float32      `yaml:"friction_threshold"`
	LightLaunchSpeed  float32      `yaml:"light_launch_speed"`
	LightEnergy       float32      `yaml:"light_energy"`
	LightPalette      [][3]float32 `yaml:"light_palette"`
	CameraOffset      [3]float32   `yaml:"camera_offset"`
}

// AssetsConfig holds asset locations. Relative paths resolve against Root.
type AssetsConfig struct {
	Root          string `yaml:"root"`
	Scene         string `yaml:"scene"` // layout YAML under Root; empty uses the built-in scene
	GroundTexture string `yaml:"ground_texture"`
	ShaderDir     string `yaml:"shader_dir"` // empty uses embedded shaders without hot reload
	ScreenshotDir string `yaml:"screenshot_dir"`
}

// AudioConfig holds audio settings.
type AudioConfig struct {
	MasterVolume float32 `yaml:"master_volume"`
	SFXVolume    float32 `yaml:"sfx_volume"`
	Muted        bool    `yaml:"muted"`
	SpawnCue     string  `yaml:"spawn_cue"`
	LandCue      string  `yaml:"land_cue"`
}

// DebugConfig holds developer toggles.
type DebugConfig struct {
	ShowFPS bool `yaml:"show_fps"`
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
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      false,
			RenderMode: rendermode.Forward.String(),
			ClearColor: [3]float32{0.05, 0.05, 0.08},
			Sun:        lighting.DefaultSun(),
		},
		Simulation: SimulationConfig{
			MouseSensitivity:  0.002,
			EnemyStopDistance: 8,
			Gravity:           -9.81,
			GroundHeight:      -10,
			FrictionThreshold: 0.01,
			LightLaunchSpeed:  10,
			LightEnergy:       60,
			LightPalette: [][3]float32{
				{1, 0.85, 0.6},
				{0.5, 0.7, 1},
				{1, 0.4, 0.3},
				{0.4, 1, 0.5},
			},
			CameraOffset: [3]float32{0, 5, -20},
		},
		Assets: AssetsConfig{
			Root:          "assets",
			GroundTexture: "textures/ground.png",
			ScreenshotDir: "screenshots",
		},
		Audio: AudioConfig{
			MasterVolume: 0.8,
			SFXVolume:    0.8,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Mode parses the configured render mode.
func (g GraphicsConfig) Mode() (rendermode.Mode, error) {
	return rendermode.Parse(g.RenderMode)
}

// Validate reports settings the simulator cannot start with.
func (c *Config) Validate() error {
	if c.Graphics.Width <= 0 || c.Graphics.Height <= 0 {
		return fmt.Errorf("graphics: invalid size %dx%d", c.Graphics.Width, c.Graphics.Height)
	}
	if _, err := c.Graphics.Mode(); err != nil {
		return fmt.Errorf("graphics: %w", err)
	}
	if c.Simulation.MouseSensitivity < 0 {
		return fmt.Errorf("simulation: negative mouse_sensitivity")
	}
	tune := c.Simulation
	for _, f := range []struct {
		name  string
		value float32
	}{
		{"light_energy", tune.LightEnergy},
		{"enemy_stop_distance", tune.EnemyStopDistance},
		{"friction_threshold", tune.FrictionThreshold},
		{"light_launch_speed", tune.LightLaunchSpeed},
	} {
		if f.value < 0 {
			return fmt.Errorf("simulation: negative %s", f.name)
		}
	}
	return nil
}
