package config

import (
	"flag"
	"path/filepath"

	"github.com/Faultbox/lightfall/internal/engine/rendermode"
)

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagWindowed   = flag.Bool("windowed", false, "Run in windowed mode")
	flagFullscreen = flag.Bool("fullscreen", false, "Run in fullscreen mode")
	flagWidth      = flag.Int("width", 0, "Window width")
	flagHeight     = flag.Int("height", 0, "Window height")
	flagDeferred   = flag.Bool("deferred", false, "Start in deferred render mode")
	flagScene      = flag.String("scene", "", "Scene layout YAML, relative to the working directory")
	flagShaders    = flag.String("shaders", "", "Shader source directory, watched for edits")
	flagWrite      = flag.String("write-config", "", "Write the resolved config to this path (- for stdout) and exit")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// WriteConfigPath returns the -write-config target, if any.
func WriteConfigPath() string {
	return *flagWrite
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
		cfg.Debug.ShowFPS = true
	}
	if *flagWindowed {
		cfg.Graphics.Fullscreen = false
	}
	if *flagFullscreen {
		cfg.Graphics.Fullscreen = true
	}
	if *flagWidth > 0 {
		cfg.Graphics.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Graphics.Height = *flagHeight
	}
	if *flagDeferred {
		cfg.Graphics.RenderMode = rendermode.Deferred.String()
	}
	if *flagScene != "" {
		// Command-line paths are relative to the working directory.
		cfg.Assets.Scene = *flagScene
		if abs, err := filepath.Abs(*flagScene); err == nil {
			cfg.Assets.Scene = abs
		}
	}
	if *flagShaders != "" {
		cfg.Assets.ShaderDir = *flagShaders
	}
}
