// Package renderer draws the scene with OpenGL through either a forward
// or a deferred pipeline.
package renderer

import (
	"fmt"
	"image"
	"image/color"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/lightfall/internal/engine/camera"
	"github.com/Faultbox/lightfall/internal/engine/framebuffer"
	"github.com/Faultbox/lightfall/internal/engine/lighting"
	"github.com/Faultbox/lightfall/internal/engine/rendermode"
	"github.com/Faultbox/lightfall/internal/engine/shader"
	"github.com/Faultbox/lightfall/internal/engine/shader/shaders"
	"github.com/Faultbox/lightfall/internal/engine/texture"
	"github.com/Faultbox/lightfall/internal/logger"
	"github.com/Faultbox/lightfall/internal/scene"
	"github.com/Faultbox/lightfall/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int

	Mode      rendermode.Mode
	Wireframe bool

	// Shaders defaults to the embedded sources.
	Shaders shaders.Source

	// GroundTexture is tiled across the ground plane at GroundHeight.
	GroundTexture *image.RGBA
	GroundHeight  float32

	Sun lighting.Sun

	ClearColor [3]float32
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	library   *shader.Library
	modes     *rendermode.Machine[*framebuffer.GBuffer]
	ground    *ground
	emptyVAO  uint32
	wireframe bool

	forward  *shader.Program
	gbuffer  *shader.Program
	lighting *shader.Program
	groundP  *shader.Program

	title string
}

// frame holds per-frame values shared by every pass.
type frame struct {
	view, projection math.Mat4
	cameraPos        math.Vec3
	sunDirection     math.Vec3
	lights           scene.LightUniforms
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	if cfg.Shaders == nil {
		cfg.Shaders = shaders.Embedded()
	}

	r := &Renderer{
		config:    cfg,
		library:   shader.NewLibrary(cfg.Shaders),
		wireframe: cfg.Wireframe,
		title:     fmt.Sprintf("%s - %s", rendererName, version),
	}

	if err := r.loadPrograms(); err != nil {
		r.library.Destroy()
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	// The lighting pass draws from gl_VertexID but core profile still
	// requires a bound VAO.
	gl.GenVertexArrays(1, &r.emptyVAO)

	if cfg.GroundTexture == nil {
		cfg.GroundTexture = texture.Checker(256, 8, color.RGBA{90, 90, 90, 255}, color.RGBA{60, 60, 60, 255})
	}
	r.ground = newGround(cfg.GroundTexture, cfg.GroundHeight)

	r.modes = rendermode.New(framebuffer.NewGBuffer, int32(cfg.Width), int32(cfg.Height))
	r.modes.SetMode(cfg.Mode)

	return r, nil
}

func (r *Renderer) loadPrograms() error {
	load := func(name string, uniforms ...string) (*shader.Program, error) {
		p, err := r.library.Load(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create shader program: %w", err)
		}
		p.Expect(uniforms...)
		return p, nil
	}

	var err error
	if r.forward, err = load(shaders.Forward, "projection", "view", "model", "cameraPos", "tint", "unlit",
		"sunDirection", "ambient", "sunStrength", "lightPositions", "lightIntensities", "lightCount"); err != nil {
		return err
	}
	if r.gbuffer, err = load(shaders.GBuffer, "projection", "view", "model", "tint", "unlit"); err != nil {
		return err
	}
	if r.lighting, err = load(shaders.Lighting, "gPosition", "gNormal", "gAlbedoSpec", "cameraPos",
		"sunDirection", "ambient", "sunStrength", "lightPositions", "lightIntensities", "lightCount"); err != nil {
		return err
	}
	if r.groundP, err = load(shaders.Ground, "projection", "view", "model", "groundTexture",
		"sunDirection", "ambient", "sunStrength"); err != nil {
		return err
	}
	return nil
}

// Programs returns the program names scene meshes should be created with.
func (r *Renderer) Programs() scene.Programs {
	return scene.Programs{
		Forward:  scene.ProgramID(shaders.Forward),
		Deferred: scene.ProgramID(shaders.GBuffer),
	}
}

// Title describes the GL implementation, suitable for the window title.
func (r *Renderer) Title() string {
	return r.title
}

// Mode returns the active render mode.
func (r *Renderer) Mode() rendermode.Mode {
	return r.modes.Mode()
}

// SetMode switches between forward and deferred rendering.
func (r *Renderer) SetMode(m rendermode.Mode) {
	r.modes.SetMode(m)
}

// ToggleMode flips the render mode.
func (r *Renderer) ToggleMode() {
	r.modes.Toggle()
}

// ToggleWireframe flips polygon fill mode for scene geometry.
func (r *Renderer) ToggleWireframe() {
	r.wireframe = !r.wireframe
	logger.Info("wireframe toggled", zap.Bool("enabled", r.wireframe))
}

// Wireframe reports whether wireframe drawing is on.
func (r *Renderer) Wireframe() bool {
	return r.wireframe
}

// Reload recompiles a named program from the shader source. The old
// program stays in use when compilation fails.
func (r *Renderer) Reload(name string) error {
	return r.library.Reload(name)
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.modes.Close()
	if r.ground != nil {
		r.ground.destroy()
	}
	if r.emptyVAO != 0 {
		gl.DeleteVertexArrays(1, &r.emptyVAO)
	}
	r.library.Destroy()
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	r.modes.Resize(int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Render draws the scene from cam using the active mode. When deferred
// targets could not be allocated the frame is only cleared.
func (r *Renderer) Render(s *scene.Store, cam *camera.Camera) {
	f := frame{
		view:         cam.View(),
		projection:   cam.Projection(),
		cameraPos:    cam.Position,
		sunDirection: r.config.Sun.Direction(),
		lights:       s.LightUniforms(),
	}

	r.clearDefault()
	if !r.modes.Usable() {
		return
	}

	switch r.modes.Mode() {
	case rendermode.Forward:
		r.renderForward(s, f)
	case rendermode.Deferred:
		gb, _ := r.modes.Target()
		r.renderDeferred(s, f, gb)
	}

	r.setPolygonMode(false)
	gl.BindVertexArray(0)
}

func (r *Renderer) clearDefault() {
	c := r.config.ClearColor
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
	gl.ClearColor(c[0], c[1], c[2], 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

func (r *Renderer) setPolygonMode(wire bool) {
	if wire {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
	} else {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}
}

func setCamera(p *shader.Program, f frame) {
	p.SetMat4("projection", f.projection)
	p.SetMat4("view", f.view)
}

func (r *Renderer) setSun(p *shader.Program, f frame) {
	p.SetVec3("sunDirection", f.sunDirection)
	p.SetFloat("ambient", r.config.Sun.Ambient)
	p.SetFloat("sunStrength", r.config.Sun.Strength)
}

func setLights(p *shader.Program, f frame) {
	p.SetVec3("cameraPos", f.cameraPos)
	p.SetVec3Array("lightPositions", f.lights.Positions, f.lights.Count)
	p.SetVec3Array("lightIntensities", f.lights.Intensities, f.lights.Count)
	p.SetInt("lightCount", f.lights.Count)
}

// drawObjects draws every visible object's meshes with the program
// picked by variant. Meshes whose program is not loaded are skipped.
func (r *Renderer) drawObjects(s *scene.Store, variant func(*scene.Mesh) scene.ProgramID) {
	var current *shader.Program
	for i := range s.Objects() {
		obj := s.Object(scene.ObjectIndex(i))
		if obj.Hidden {
			continue
		}
		model := obj.Transform.Matrix()
		for _, mi := range obj.Meshes {
			mesh := s.Mesh(mi)
			p := r.library.Get(string(variant(mesh)))
			if p == nil {
				continue
			}
			if p != current {
				p.Use()
				current = p
			}
			p.SetMat4("model", model)
			p.SetVec3("tint", obj.Tint)
			p.SetBool("unlit", obj.Unlit)
			drawMesh(mesh.Buffers)
		}
	}
}

func (r *Renderer) drawGround(f frame) {
	r.groundP.Use()
	setCamera(r.groundP, f)
	setLights(r.groundP, f)
	r.setSun(r.groundP, f)
	r.groundP.SetMat4("model", r.ground.model)
	r.groundP.SetInt("groundTexture", 0)
	r.ground.draw()
}

func (r *Renderer) renderForward(s *scene.Store, f frame) {
	r.setPolygonMode(r.wireframe)

	r.forward.Use()
	setCamera(r.forward, f)
	setLights(r.forward, f)
	r.setSun(r.forward, f)
	r.drawObjects(s, func(m *scene.Mesh) scene.ProgramID { return m.Forward })

	r.drawGround(f)
}

func (r *Renderer) renderDeferred(s *scene.Store, f frame, gb *framebuffer.GBuffer) {
	// Geometry pass.
	gb.Bind()
	r.setPolygonMode(r.wireframe)
	r.gbuffer.Use()
	setCamera(r.gbuffer, f)
	r.drawObjects(s, func(m *scene.Mesh) scene.ProgramID { return m.Deferred })
	gb.Unbind()

	// Lighting pass over a full-screen triangle.
	r.setPolygonMode(false)
	gl.Viewport(0, 0, int32(r.config.Width), int32(r.config.Height))
	gl.Disable(gl.DEPTH_TEST)
	r.lighting.Use()
	r.lighting.SetInt("gPosition", framebuffer.TargetPosition)
	r.lighting.SetInt("gNormal", framebuffer.TargetNormal)
	r.lighting.SetInt("gAlbedoSpec", framebuffer.TargetAlbedoSpec)
	setLights(r.lighting, f)
	r.setSun(r.lighting, f)
	gb.BindTextures()
	gl.BindVertexArray(r.emptyVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.Enable(gl.DEPTH_TEST)

	// Forward-drawn ground, depth-tested against the geometry pass.
	gb.BlitDepth()
	r.setPolygonMode(r.wireframe)
	r.drawGround(f)
}

// ReadPixels returns the default framebuffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() (pixels []byte, width, height int) {
	width, height = r.config.Width, r.config.Height
	pixels = make([]byte, width*height*4)
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, 0)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	return pixels, width, height
}
