package shader

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/lightfall/internal/logger"
	"github.com/Faultbox/lightfall/pkg/math"
)

// Program is a linked program with cached uniform locations. The ID may
// be swapped by a reload; holders of the pointer see the new program.
type Program struct {
	Name string
	ID   uint32

	locs     map[string]int32
	expected map[string]bool
	warned   map[string]bool
}

func newProgram(name string, id uint32) *Program {
	return &Program{
		Name:     name,
		ID:       id,
		locs:     make(map[string]int32),
		expected: make(map[string]bool),
		warned:   make(map[string]bool),
	}
}

// Expect marks uniforms the renderer relies on. Setting one that the
// program does not declare is logged once.
func (p *Program) Expect(names ...string) {
	for _, n := range names {
		p.expected[n] = true
	}
}

// Use binds the program.
func (p *Program) Use() {
	gl.UseProgram(p.ID)
}

// Uniform returns the cached location of name, -1 when absent.
func (p *Program) Uniform(name string) int32 {
	if loc, ok := p.locs[name]; ok {
		return loc
	}
	loc := GetUniform(p.ID, name)
	p.locs[name] = loc
	if loc < 0 && p.expected[name] && !p.warned[name] {
		p.warned[name] = true
		logger.Warn("expected uniform missing",
			zap.String("program", p.Name),
			zap.String("uniform", name))
	}
	return loc
}

// SetMat4 sets a mat4 uniform.
func (p *Program) SetMat4(name string, m math.Mat4) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.UniformMatrix4fv(loc, 1, false, m.Ptr())
	}
}

// SetVec3 sets a vec3 uniform.
func (p *Program) SetVec3(name string, v math.Vec3) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform3f(loc, v.X, v.Y, v.Z)
	}
}

// SetVec3Array sets count vec3 entries from packed xyz data.
func (p *Program) SetVec3Array(name string, data []float32, count int32) {
	if count == 0 {
		return
	}
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform3fv(loc, count, &data[0])
	}
}

// SetFloat sets a float uniform.
func (p *Program) SetFloat(name string, v float32) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform1f(loc, v)
	}
}

// SetInt sets an int or sampler uniform.
func (p *Program) SetInt(name string, v int32) {
	if loc := p.Uniform(name); loc >= 0 {
		gl.Uniform1i(loc, v)
	}
}

// SetBool sets a bool uniform declared as int.
func (p *Program) SetBool(name string, v bool) {
	var i int32
	if v {
		i = 1
	}
	p.SetInt(name, i)
}

// swap replaces the GL program and drops cached locations.
func (p *Program) swap(id uint32) {
	gl.DeleteProgram(p.ID)
	p.ID = id
	clear(p.locs)
	clear(p.warned)
}
