package renderer

import (
	"image"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/lightfall/pkg/math"
)

const (
	groundExtent = 1000
	groundRepeat = 100
)

// ground is a textured quad on the XZ plane drawn with the forward
// ground program in both render modes.
type ground struct {
	vao, vbo uint32
	texture  uint32
	model    math.Mat4
}

func newGround(img *image.RGBA, height float32) *ground {
	// x, y, z, u, v
	verts := []float32{
		-1, 0, -1, 0, 0,
		1, 0, -1, groundRepeat, 0,
		1, 0, 1, groundRepeat, groundRepeat,
		-1, 0, -1, 0, 0,
		1, 0, 1, groundRepeat, groundRepeat,
		-1, 0, 1, 0, groundRepeat,
	}

	g := &ground{
		model: math.TRS(math.Vec3{Y: height}, math.QuatIdentity(), math.Vec3{X: groundExtent, Y: 1, Z: groundExtent}),
	}

	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)
	gl.GenBuffers(1, &g.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, unsafe.Pointer(&verts[0]), gl.STATIC_DRAW)
	gl.VertexAttribPointer(attribPosition, 3, gl.FLOAT, false, 5*4, nil)
	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointer(attribTexCoord, 2, gl.FLOAT, false, 5*4, unsafe.Pointer(uintptr(3*4)))
	gl.EnableVertexAttribArray(attribTexCoord)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	g.texture = uploadTexture(img)
	return g
}

func uploadTexture(img *image.RGBA) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA,
		int32(img.Bounds().Dx()), int32(img.Bounds().Dy()),
		0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&img.Pix[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return id
}

func (g *ground) draw() {
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, g.texture)
	gl.BindVertexArray(g.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

func (g *ground) destroy() {
	gl.DeleteTextures(1, &g.texture)
	gl.DeleteBuffers(1, &g.vbo)
	gl.DeleteVertexArrays(1, &g.vao)
}
