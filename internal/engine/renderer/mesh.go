package renderer

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/lightfall/internal/logger"
	"github.com/Faultbox/lightfall/internal/scene"
)

// Vertex attribute locations shared by every mesh program.
const (
	attribPosition = 0
	attribNormal   = 1
	attribTexCoord = 1
)

// MeshUploader creates GPU buffers for scene geometry. Positions and
// normals share one vertex buffer, back to back, with indices in an
// element buffer.
type MeshUploader struct{}

// Upload implements scene.Uploader. It needs a current GL context.
func (MeshUploader) Upload(positions, normals []float32, indices []uint32) (scene.MeshBuffers, error) {
	if len(positions) == 0 {
		return scene.MeshBuffers{}, errors.New("mesh has no vertices")
	}
	if len(indices) == 0 {
		return scene.MeshBuffers{}, errors.New("mesh has no faces")
	}

	b := scene.MeshBuffers{
		VertexBytes: len(positions) * 4,
		NormalBytes: len(normals) * 4,
		IndexCount:  int32(len(indices)),
	}

	gl.GenVertexArrays(1, &b.VAO)
	gl.BindVertexArray(b.VAO)

	gl.GenBuffers(1, &b.VertexBuffer)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.VertexBuffer)
	gl.BufferData(gl.ARRAY_BUFFER, b.VertexBytes+b.NormalBytes, nil, gl.STATIC_DRAW)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, b.VertexBytes, unsafe.Pointer(&positions[0]))
	if b.NormalBytes > 0 {
		gl.BufferSubData(gl.ARRAY_BUFFER, b.VertexBytes, b.NormalBytes, unsafe.Pointer(&normals[0]))
	}

	gl.GenBuffers(1, &b.IndexBuffer)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, b.IndexBuffer)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(attribPosition, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(attribPosition)
	gl.VertexAttribPointer(attribNormal, 3, gl.FLOAT, false, 3*4, unsafe.Pointer(uintptr(b.VertexBytes)))
	gl.EnableVertexAttribArray(attribNormal)

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	if code := gl.GetError(); code != gl.NO_ERROR {
		MeshUploader{}.Release(b)
		return scene.MeshBuffers{}, fmt.Errorf("mesh upload: GL error 0x%x", code)
	}

	logger.Debug("mesh uploaded",
		zap.Uint32("vao", b.VAO),
		zap.Int("vertexBytes", b.VertexBytes),
		zap.Int32("indices", b.IndexCount))
	return b, nil
}

// Release implements scene.Uploader.
func (MeshUploader) Release(b scene.MeshBuffers) {
	if b.IndexBuffer != 0 {
		gl.DeleteBuffers(1, &b.IndexBuffer)
	}
	if b.VertexBuffer != 0 {
		gl.DeleteBuffers(1, &b.VertexBuffer)
	}
	if b.VAO != 0 {
		gl.DeleteVertexArrays(1, &b.VAO)
	}
}

func drawMesh(b scene.MeshBuffers) {
	gl.BindVertexArray(b.VAO)
	gl.DrawElements(gl.TRIANGLES, b.IndexCount, gl.UNSIGNED_INT, nil)
}
