// Package game implements the main frame loop and wires the simulator's
// subsystems together.
package game

import (
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/lightfall/internal/config"
	"github.com/Faultbox/lightfall/internal/engine/audio"
	"github.com/Faultbox/lightfall/internal/engine/camera"
	"github.com/Faultbox/lightfall/internal/engine/debug"
	"github.com/Faultbox/lightfall/internal/engine/input"
	"github.com/Faultbox/lightfall/internal/engine/renderer"
	"github.com/Faultbox/lightfall/internal/engine/shader/shaders"
	"github.com/Faultbox/lightfall/internal/engine/texture"
	"github.com/Faultbox/lightfall/internal/engine/window"
	"github.com/Faultbox/lightfall/internal/game/sim"
	"github.com/Faultbox/lightfall/internal/logger"
	"github.com/Faultbox/lightfall/internal/scene"
)

// Title is the window title before the GL implementation is known.
const Title = "Lightfall"

// Game is the main simulator instance.
type Game struct {
	cfg     *config.Config
	running bool

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	store  *scene.Store
	engine *sim.Engine
	state  *sim.State
	clock  *sim.Clock

	audio       *audio.Manager
	watcher     *shaders.Watcher
	screenshots *debug.Screenshots
}

// New creates the window, renderer and scene.
func New(cfg *config.Config) (*Game, error) {
	logger.Info("initializing game",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("mode", cfg.Graphics.RenderMode),
	)

	g := &Game{
		cfg:         cfg,
		input:       input.New(),
		engine:      sim.New(cfg.Simulation.SimConfig()),
		screenshots: debug.NewScreenshots(cfg.Assets.ScreenshotDir, "lightfall"),
	}

	// Create window (this also creates OpenGL context)
	var err error
	g.window, err = window.New(window.Config{
		Title:         Title,
		Width:         cfg.Graphics.Width,
		Height:        cfg.Graphics.Height,
		Fullscreen:    cfg.Graphics.Fullscreen,
		VSync:         cfg.Graphics.VSync,
		RelativeMouse: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	if err := g.initRenderer(); err != nil {
		g.Close()
		return nil, err
	}
	if err := g.initScene(); err != nil {
		g.Close()
		return nil, err
	}
	g.initAudio()

	logger.Info("game initialized successfully")
	return g, nil
}

// initRenderer must run after the window, since the GL context must exist.
func (g *Game) initRenderer() error {
	mode, err := g.cfg.Graphics.Mode()
	if err != nil {
		return err
	}

	var src shaders.Source
	if dir := g.cfg.Assets.ShaderDir; dir != "" {
		src = shaders.Dir(dir)
		if g.watcher, err = shaders.Watch(dir); err != nil {
			logger.Warn("shader hot reload disabled", zap.String("dir", dir), zap.Error(err))
		}
	}

	width, height := g.window.GetSize()
	g.renderer, err = renderer.New(renderer.Config{
		Width:         width,
		Height:        height,
		Mode:          mode,
		Wireframe:     g.cfg.Graphics.Wireframe,
		Shaders:       src,
		GroundTexture: g.loadGroundTexture(),
		GroundHeight:  g.cfg.Simulation.GroundHeight,
		ClearColor:    g.cfg.Graphics.ClearColor,
		Sun:           g.cfg.Graphics.Sun,
	})
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}
	g.window.SetTitle(fmt.Sprintf("%s | %s", Title, g.renderer.Title()))
	return nil
}

// loadGroundTexture returns nil when the texture is unavailable so the
// renderer falls back to a checkerboard.
func (g *Game) loadGroundTexture() *image.RGBA {
	path := g.cfg.Assets.Resolve(g.cfg.Assets.GroundTexture)
	if path == "" {
		return nil
	}
	img, err := texture.Load(path)
	if err != nil {
		logger.Warn("ground texture unavailable, using checkerboard", zap.Error(err))
		return nil
	}
	return img
}

func (g *Game) initScene() error {
	layout := scene.DefaultLayout()
	if path := g.cfg.Assets.Resolve(g.cfg.Assets.Scene); path != "" {
		var err error
		if layout, err = scene.LoadLayout(path); err != nil {
			return err
		}
	}

	g.store = scene.New(scene.RootedLoader(g.cfg.Assets.Root), renderer.MeshUploader{})
	populated, err := g.store.Populate(layout, g.renderer.Programs())
	if err != nil {
		return fmt.Errorf("failed to populate scene: %w", err)
	}

	width, height := g.window.GetSize()
	g.state = sim.NewState(g.store, populated, camera.New(width, height))
	return nil
}

// initAudio leaves g.audio nil when audio is muted or unavailable.
func (g *Game) initAudio() {
	ac := g.cfg.Audio
	if ac.Muted || (ac.SpawnCue == "" && ac.LandCue == "") {
		return
	}

	m := audio.New()
	m.SetMasterVolume(float64(ac.MasterVolume))
	m.SetSFXVolume(float64(ac.SFXVolume))
	for cue, path := range map[audio.Cue]string{audio.CueSpawn: ac.SpawnCue, audio.CueLand: ac.LandCue} {
		if err := m.LoadCue(cue, g.cfg.Assets.Resolve(path)); err != nil {
			logger.Warn("audio cue unavailable", zap.Error(err))
		}
	}
	if err := m.Init(); err != nil {
		logger.Warn("audio disabled", zap.Error(err))
		return
	}
	g.audio = m
}

// Run starts the main loop and returns when the window closes.
func (g *Game) Run() error {
	g.running = true
	g.clock = sim.NewClock()

	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting game loop")

	for g.running {
		// 1. Process input
		g.window.PollEvents(g.input)
		g.handleEvents()
		if !g.running {
			break
		}

		// 2. Simulate
		g.state.Time = g.clock.Tick()
		events := g.engine.Step(g.state, g.input.Intent())
		g.playCues(events)

		// 3. Render
		g.reloadShaders()
		g.renderer.Render(g.store, g.state.Camera)
		if g.input.IsKeyPressed(input.KeyF12) {
			g.captureScreenshot()
		}

		// 4. Present (swap buffers)
		g.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			if g.cfg.Debug.ShowFPS {
				logger.Info("fps",
					zap.Int("count", frameCount),
					zap.Float32("dt_ms", g.state.Time.Delta*1000),
					zap.Int("lights", g.store.Lights().Count))
			}
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	return nil
}

// handleEvents applies window and toggle keys. Movement keys are read
// through the input intent.
func (g *Game) handleEvents() {
	if g.input.ShouldQuit() || g.input.IsKeyPressed(input.KeyEscape) {
		g.running = false
		return
	}
	if w, h, ok := g.input.Resized(); ok {
		g.renderer.Resize(w, h)
		g.state.Camera.SetViewport(w, h)
	}
	if g.input.IsKeyPressed(input.KeyK) {
		g.renderer.ToggleWireframe()
	}
	if g.input.IsKeyPressed(input.KeyM) {
		g.renderer.ToggleMode()
	}
	if g.input.IsKeyPressed(input.KeyF3) {
		if logger.Level() == "debug" {
			base := g.cfg.Logging.Level
			if base == "debug" {
				base = "info"
			}
			logger.SetLevel(base)
		} else {
			logger.SetLevel("debug")
		}
		logger.Info("log level changed", zap.String("level", logger.Level()))
	}
}

func (g *Game) playCues(ev sim.Events) {
	if g.audio == nil {
		return
	}
	if len(ev.Spawned) > 0 {
		if err := g.audio.Play(audio.CueSpawn); err != nil {
			logger.Debug("spawn cue failed", zap.Error(err))
		}
	}
	if len(ev.Grounded) > 0 {
		if err := g.audio.Play(audio.CueLand); err != nil {
			logger.Debug("land cue failed", zap.Error(err))
		}
	}
}

func (g *Game) reloadShaders() {
	if g.watcher == nil {
		return
	}
	for _, name := range g.watcher.Drain() {
		if err := g.renderer.Reload(name); err != nil {
			logger.Error("shader reload failed, keeping previous program",
				zap.String("program", name), zap.Error(err))
		}
	}
}

func (g *Game) captureScreenshot() {
	pixels, w, h := g.renderer.ReadPixels()
	path, err := g.screenshots.Save(pixels, w, h)
	if err != nil {
		logger.Error("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// Close cleans up game resources.
func (g *Game) Close() {
	logger.Info("closing game")

	if g.watcher != nil {
		g.watcher.Close()
	}
	if g.audio != nil {
		g.audio.Close()
	}
	if g.store != nil {
		g.store.Destroy()
	}
	if g.renderer != nil {
		g.renderer.Close()
	}
	if g.window != nil {
		g.window.Close()
	}
}
