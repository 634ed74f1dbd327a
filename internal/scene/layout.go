package scene

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/lightfall/internal/logger"
	"github.com/Faultbox/lightfall/pkg/formats"
	"github.com/Faultbox/lightfall/pkg/math"
)

// Layout describes the initial contents of a scene.
type Layout struct {
	Player      ActorLayout    `yaml:"player"`
	Enemies     []ActorLayout  `yaml:"enemies"`
	Statues     []ObjectLayout `yaml:"statues"`
	Grids       []GridLayout   `yaml:"grids"`
	LightMarker MarkerLayout   `yaml:"light_marker"`
}

// ObjectLayout places one object.
type ObjectLayout struct {
	Name     string         `yaml:"name"`
	Meshes   []string       `yaml:"meshes"`
	Position [3]float32     `yaml:"position"`
	Rotation RotationLayout `yaml:"rotation"`
	Scale    [3]float32     `yaml:"scale"`
	Tint     [3]float32     `yaml:"tint"`
	Hidden   bool           `yaml:"hidden"`
}

// ActorLayout is an object that moves on its own.
type ActorLayout struct {
	ObjectLayout `yaml:",inline"`
	Speed        float32 `yaml:"speed"`
}

// RotationLayout is an axis-angle rotation. A zero axis means none.
type RotationLayout struct {
	Axis    [3]float32 `yaml:"axis"`
	Degrees float32    `yaml:"degrees"`
}

// GridLayout instances one mesh over a regular XZ grid.
type GridLayout struct {
	Name    string     `yaml:"name"`
	Mesh    string     `yaml:"mesh"`
	Origin  [3]float32 `yaml:"origin"`
	Columns int        `yaml:"columns"`
	Rows    int        `yaml:"rows"`
	Spacing float32    `yaml:"spacing"`
	Scale   float32    `yaml:"scale"`
	Tint    [3]float32 `yaml:"tint"`
}

// MarkerLayout is the mesh drawn at each light.
type MarkerLayout struct {
	Mesh  string  `yaml:"mesh"`
	Scale float32 `yaml:"scale"`
}

// Programs names the shader variants assigned to scene meshes.
type Programs struct {
	Forward  ProgramID
	Deferred ProgramID
}

// Actor is a populated moving object.
type Actor struct {
	Object ObjectIndex
	Speed  float32
}

// Populated holds the handles created by Populate.
type Populated struct {
	Player      Actor
	Enemies     []Actor
	Marker      MeshIndex
	MarkerScale float32
}

// DefaultLayout returns the built-in demo scene.
func DefaultLayout() Layout {
	return Layout{
		Player: ActorLayout{
			ObjectLayout: ObjectLayout{
				Name:   "player",
				Meshes: []string{"models/cube.obj", "models/pyramid.obj"},
				Scale:  [3]float32{2, 1, 4},
				Tint:   [3]float32{0, 0.3, 0},
				Hidden: true,
			},
			Speed: 20,
		},
		Enemies: []ActorLayout{
			{ObjectLayout: ObjectLayout{
				Name:     "enemy",
				Meshes:   []string{"models/pyramid.obj"},
				Position: [3]float32{40, 0, 40},
				Scale:    [3]float32{3, 3, 3},
				Tint:     [3]float32{0.8, 0.2, 0.2},
			}, Speed: 8},
		},
		Statues: []ObjectLayout{
			{Name: "red statue", Meshes: []string{"models/octahedron.obj"}, Position: [3]float32{15, 0, 15},
				Scale: [3]float32{5, 5, 5}, Tint: [3]float32{0.8, 0, 0}},
			{Name: "yellow statue", Meshes: []string{"models/cube.obj"}, Position: [3]float32{-15, 0, -15},
				Scale: [3]float32{4, 4, 4}, Tint: [3]float32{0.8, 0.8, 0}},
			{Name: "cyan statue", Meshes: []string{"models/pyramid.obj"}, Position: [3]float32{-15, 0, 15},
				Scale: [3]float32{5, 5, 5}, Tint: [3]float32{0, 0.8, 0.8}},
		},
		Grids: []GridLayout{
			{Name: "cube field", Mesh: "models/cube.obj", Origin: [3]float32{-495, -9, 60},
				Columns: 100, Rows: 100, Spacing: 10, Scale: 1, Tint: [3]float32{0.1, 0.1, 0.15}},
		},
		LightMarker: MarkerLayout{Mesh: "models/octahedron.obj", Scale: 0.5},
	}
}

// LoadLayout reads a layout from a YAML file.
func LoadLayout(path string) (Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Layout{}, fmt.Errorf("read layout: %w", err)
	}
	var l Layout
	if err := yaml.Unmarshal(data, &l); err != nil {
		return Layout{}, fmt.Errorf("parse layout %s: %w", path, err)
	}
	if len(l.Player.Meshes) == 0 {
		return Layout{}, fmt.Errorf("layout %s: player has no meshes", path)
	}
	if l.LightMarker.Mesh == "" {
		return Layout{}, fmt.Errorf("layout %s: light_marker.mesh is required", path)
	}
	return l, nil
}

// RootedLoader resolves mesh paths relative to root.
func RootedLoader(root string) GeometryLoader {
	return func(path string) (*formats.OBJ, error) {
		return formats.LoadOBJ(filepath.Join(root, path))
	}
}

// Populate creates every object described by the layout.
func (s *Store) Populate(l Layout, p Programs) (Populated, error) {
	var out Populated

	player, err := s.place(l.Player.ObjectLayout, p)
	if err != nil {
		return out, fmt.Errorf("player: %w", err)
	}
	out.Player = Actor{Object: player, Speed: l.Player.Speed}

	for _, e := range l.Enemies {
		idx, err := s.place(e.ObjectLayout, p)
		if err != nil {
			return out, fmt.Errorf("enemy %q: %w", e.Name, err)
		}
		out.Enemies = append(out.Enemies, Actor{Object: idx, Speed: e.Speed})
	}

	for _, st := range l.Statues {
		if _, err := s.place(st, p); err != nil {
			return out, fmt.Errorf("statue %q: %w", st.Name, err)
		}
	}

	for _, g := range l.Grids {
		if err := s.placeGrid(g, p); err != nil {
			return out, fmt.Errorf("grid %q: %w", g.Name, err)
		}
	}

	out.Marker, err = s.GetOrCreateMesh(l.LightMarker.Mesh, p.Forward, p.Deferred)
	if err != nil {
		return out, fmt.Errorf("light marker: %w", err)
	}
	out.MarkerScale = l.LightMarker.Scale
	if out.MarkerScale == 0 {
		out.MarkerScale = 1
	}

	logger.Info("scene populated",
		zap.Int("objects", len(s.objects)),
		zap.Int("meshes", len(s.meshes)),
		zap.Int("enemies", len(out.Enemies)))

	return out, nil
}

func (s *Store) place(o ObjectLayout, p Programs) (ObjectIndex, error) {
	meshes := make([]MeshIndex, 0, len(o.Meshes))
	for _, path := range o.Meshes {
		idx, err := s.GetOrCreateMesh(path, p.Forward, p.Deferred)
		if err != nil {
			return 0, err
		}
		meshes = append(meshes, idx)
	}

	t := NewTransform()
	t.Position = math.Vec3From(o.Position)
	if o.Scale != ([3]float32{}) {
		t.Scale = math.Vec3From(o.Scale)
	}
	if axis := math.Vec3From(o.Rotation.Axis); axis.Length() > 0 {
		t.Rotation = math.QuatFromAxisAngle(axis.Normalize(), math.Radians(o.Rotation.Degrees))
	}

	return s.AddObject(Object{
		Name:      o.Name,
		Transform: t,
		Meshes:    meshes,
		Tint:      math.Vec3From(o.Tint),
		Hidden:    o.Hidden,
	}), nil
}

// placeGrid requests the mesh once per cell; the cache keeps it a single entry.
func (s *Store) placeGrid(g GridLayout, p Programs) error {
	scale := g.Scale
	if scale == 0 {
		scale = 1
	}
	origin := math.Vec3From(g.Origin)
	for row := 0; row < g.Rows; row++ {
		for col := 0; col < g.Columns; col++ {
			mesh, err := s.GetOrCreateMesh(g.Mesh, p.Forward, p.Deferred)
			if err != nil {
				return err
			}
			t := NewTransform()
			t.Position = origin.Add(math.Vec3{X: float32(col) * g.Spacing, Z: float32(row) * g.Spacing})
			t.Scale = math.Vec3{X: scale, Y: scale, Z: scale}
			s.AddObject(Object{
				Name:      g.Name,
				Transform: t,
				Meshes:    []MeshIndex{mesh},
				Tint:      math.Vec3From(g.Tint),
			})
		}
	}
	return nil
}
