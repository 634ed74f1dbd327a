package scene

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/lightfall/internal/logger"
	"github.com/Faultbox/lightfall/pkg/formats"
)

// ProgramID names a linked shader program in the renderer's library.
type ProgramID string

// MeshBuffers are the GPU handles of an uploaded mesh. The vertex buffer
// holds all positions followed by all normals.
type MeshBuffers struct {
	VAO          uint32
	VertexBuffer uint32
	IndexBuffer  uint32
	VertexBytes  int
	NormalBytes  int
	IndexCount   int32
}

// Mesh is immutable geometry plus its GPU buffers and shader variants.
type Mesh struct {
	Path     string
	Geometry *formats.OBJ
	Buffers  MeshBuffers
	Forward  ProgramID
	Deferred ProgramID
}

// Uploader moves geometry into GPU buffers.
type Uploader interface {
	Upload(positions, normals []float32, indices []uint32) (MeshBuffers, error)
	Release(MeshBuffers)
}

// GetOrCreateMesh returns the mesh for path, loading and uploading it on
// first use. Later calls with the same path return the same index without
// touching the file or the GPU.
func (s *Store) GetOrCreateMesh(path string, forward, deferred ProgramID) (MeshIndex, error) {
	if idx, ok := s.byPath[path]; ok {
		return idx, nil
	}

	geom, err := s.load(path)
	if err != nil {
		return 0, fmt.Errorf("load mesh: %w", err)
	}
	for _, w := range geom.Warnings {
		logger.Warn("ignoring geometry line",
			zap.String("path", path),
			zap.Int("line", w.Line),
			zap.String("text", w.Text),
			zap.NamedError("reason", w.Err))
	}

	vertexCount := len(geom.Vertices)
	if len(geom.Normals) != vertexCount {
		logger.Warn("normal count does not match vertex count",
			zap.String("path", path),
			zap.Int("vertices", vertexCount),
			zap.Int("normals", len(geom.Normals)))
	}

	buffers, err := s.uploader.Upload(geom.FlatVertices(), geom.FlatNormals(vertexCount), geom.Indices())
	if err != nil {
		return 0, fmt.Errorf("upload mesh %s: %w", path, err)
	}

	s.meshes = append(s.meshes, Mesh{
		Path:     path,
		Geometry: geom,
		Buffers:  buffers,
		Forward:  forward,
		Deferred: deferred,
	})
	idx := MeshIndex(len(s.meshes) - 1)
	s.byPath[path] = idx

	logger.Debug("mesh loaded",
		zap.String("path", path),
		zap.Int("index", int(idx)),
		zap.Int("vertices", vertexCount),
		zap.Int("faces", len(geom.Faces)))

	return idx, nil
}
