// Package scene holds the flat object table, the deduplicated mesh table
// and the fixed-capacity light arrays shared by simulation and rendering.
package scene

import (
	"go.uber.org/zap"

	"github.com/Faultbox/lightfall/internal/logger"
	"github.com/Faultbox/lightfall/pkg/formats"
	"github.com/Faultbox/lightfall/pkg/math"
)

// ObjectIndex is a stable handle into the object table.
type ObjectIndex int

// MeshIndex is a stable handle into the mesh table.
type MeshIndex int

// Object is a named, transformed instance of one or more meshes.
type Object struct {
	Name      string
	Transform Transform
	Meshes    []MeshIndex

	// Tint is added to the shaded base color.
	Tint math.Vec3
	// Unlit bypasses lighting (light markers).
	Unlit bool
	// Hidden objects are simulated but never drawn.
	Hidden bool
}

// GeometryLoader reads mesh geometry for a path.
type GeometryLoader func(path string) (*formats.OBJ, error)

// Store owns every object and mesh. Objects and meshes are append-only,
// so indices stay valid for the lifetime of the store.
type Store struct {
	objects []Object
	meshes  []Mesh
	byPath  map[string]MeshIndex
	lights  Lights

	load     GeometryLoader
	uploader Uploader
}

// New creates an empty store.
func New(load GeometryLoader, uploader Uploader) *Store {
	if load == nil {
		load = formats.LoadOBJ
	}
	return &Store{
		byPath:   make(map[string]MeshIndex),
		load:     load,
		uploader: uploader,
	}
}

// AddObject appends an object and returns its handle.
func (s *Store) AddObject(obj Object) ObjectIndex {
	s.objects = append(s.objects, obj)
	return ObjectIndex(len(s.objects) - 1)
}

// Object returns a pointer to the object for in-place mutation.
func (s *Store) Object(i ObjectIndex) *Object {
	return &s.objects[i]
}

// Objects returns the object table.
func (s *Store) Objects() []Object {
	return s.objects
}

// Mesh returns a mesh by handle.
func (s *Store) Mesh(i MeshIndex) *Mesh {
	return &s.meshes[i]
}

// Meshes returns the mesh table.
func (s *Store) Meshes() []Mesh {
	return s.meshes
}

// Lights returns the light arrays.
func (s *Store) Lights() *Lights {
	return &s.lights
}

// Destroy releases GPU buffers of every mesh.
func (s *Store) Destroy() {
	for i := range s.meshes {
		s.uploader.Release(s.meshes[i].Buffers)
		s.meshes[i].Buffers = MeshBuffers{}
	}
	logger.Debug("scene destroyed",
		zap.Int("objects", len(s.objects)),
		zap.Int("meshes", len(s.meshes)))
}
