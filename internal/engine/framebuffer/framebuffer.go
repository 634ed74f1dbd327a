// Package framebuffer provides the deferred renderer's G-buffer.
package framebuffer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// G-buffer color attachments, in attachment order.
const (
	TargetPosition   = iota // RGBA16F world position, w=1 where covered
	TargetNormal            // RGBA16F world normal, w=1 for unlit
	TargetAlbedoSpec        // RGBA8 albedo rgb, specular a
	targetCount
)

// GBuffer is a framebuffer with three color targets and a shared depth
// renderbuffer.
type GBuffer struct {
	fbo      uint32
	textures [targetCount]uint32
	depthRBO uint32
	width    int32
	height   int32
}

// NewGBuffer allocates a G-buffer. An incomplete framebuffer is released
// and reported as an error.
func NewGBuffer(width, height int32) (*GBuffer, error) {
	gb := &GBuffer{
		width:  max(width, 1),
		height: max(height, 1),
	}
	if err := gb.create(); err != nil {
		return nil, fmt.Errorf("creating G-buffer: %w", err)
	}
	return gb, nil
}

func (gb *GBuffer) create() error {
	gl.GenFramebuffers(1, &gb.fbo)
	gl.BindFramebuffer(gl.FRAMEBUFFER, gb.fbo)

	gl.GenTextures(targetCount, &gb.textures[0])
	attachments := make([]uint32, targetCount)
	for i, tex := range gb.textures {
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gb.allocTarget(i)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		attachments[i] = gl.COLOR_ATTACHMENT0 + uint32(i)
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, attachments[i], gl.TEXTURE_2D, tex, 0)
	}
	gl.DrawBuffers(targetCount, &attachments[0])

	gl.GenRenderbuffers(1, &gb.depthRBO)
	gl.BindRenderbuffer(gl.RENDERBUFFER, gb.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, gb.width, gb.height)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, gb.depthRBO)

	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		gb.Destroy()
		return fmt.Errorf("framebuffer incomplete: 0x%x", status)
	}
	return nil
}

// allocTarget (re)allocates storage for the bound target texture.
func (gb *GBuffer) allocTarget(i int) {
	if i == TargetAlbedoSpec {
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, gb.width, gb.height, 0, gl.RGBA, gl.UNSIGNED_BYTE, nil)
		return
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F, gb.width, gb.height, 0, gl.RGBA, gl.FLOAT, nil)
}

// Bind makes the G-buffer the render target and clears it.
func (gb *GBuffer) Bind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, gb.fbo)
	gl.Viewport(0, 0, gb.width, gb.height)
	gl.ClearColor(0, 0, 0, 0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Unbind restores the default framebuffer.
func (gb *GBuffer) Unbind() {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// BindTextures binds the three targets to texture units 0, 1 and 2.
func (gb *GBuffer) BindTextures() {
	for i, tex := range gb.textures {
		gl.ActiveTexture(gl.TEXTURE0 + uint32(i))
		gl.BindTexture(gl.TEXTURE_2D, tex)
	}
}

// BlitDepth copies the G-buffer depth into the default framebuffer so
// forward draws afterwards are occluded correctly.
func (gb *GBuffer) BlitDepth() {
	gl.BindFramebuffer(gl.READ_FRAMEBUFFER, gb.fbo)
	gl.BindFramebuffer(gl.DRAW_FRAMEBUFFER, 0)
	gl.BlitFramebuffer(0, 0, gb.width, gb.height, 0, 0, gb.width, gb.height, gl.DEPTH_BUFFER_BIT, gl.NEAREST)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

// Size returns the G-buffer dimensions.
func (gb *GBuffer) Size() (width, height int32) {
	return gb.width, gb.height
}

// Resize reallocates target storage if the dimensions changed.
func (gb *GBuffer) Resize(width, height int32) {
	width, height = max(width, 1), max(height, 1)
	if width == gb.width && height == gb.height {
		return
	}
	gb.width, gb.height = width, height

	for i, tex := range gb.textures {
		gl.BindTexture(gl.TEXTURE_2D, tex)
		gb.allocTarget(i)
	}
	gl.BindRenderbuffer(gl.RENDERBUFFER, gb.depthRBO)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, gb.width, gb.height)
}

// Destroy releases all OpenGL resources.
func (gb *GBuffer) Destroy() {
	if gb.fbo != 0 {
		gl.DeleteFramebuffers(1, &gb.fbo)
		gb.fbo = 0
	}
	if gb.textures[0] != 0 {
		gl.DeleteTextures(targetCount, &gb.textures[0])
		gb.textures = [targetCount]uint32{}
	}
	if gb.depthRBO != 0 {
		gl.DeleteRenderbuffers(1, &gb.depthRBO)
		gb.depthRBO = 0
	}
}
