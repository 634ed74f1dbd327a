package shader

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/lightfall/internal/engine/shader/shaders"
	"github.com/Faultbox/lightfall/internal/logger"
)

// Library compiles programs by name from a source and keeps them for
// lookup and reload.
type Library struct {
	src      shaders.Source
	programs map[string]*Program
}

// NewLibrary creates an empty library reading from src.
func NewLibrary(src shaders.Source) *Library {
	return &Library{
		src:      src,
		programs: make(map[string]*Program),
	}
}

// Load compiles and links the named program. Loading a name twice
// returns the existing program.
func (l *Library) Load(name string) (*Program, error) {
	if p, ok := l.programs[name]; ok {
		return p, nil
	}
	id, err := l.build(name)
	if err != nil {
		return nil, err
	}
	p := newProgram(name, id)
	l.programs[name] = p
	logger.Debug("shader program loaded", zap.String("name", name), zap.Uint32("id", id))
	return p, nil
}

// Get returns a loaded program or nil.
func (l *Library) Get(name string) *Program {
	return l.programs[name]
}

// Reload recompiles a loaded program in place. On failure the previous
// program stays active.
func (l *Library) Reload(name string) error {
	p, ok := l.programs[name]
	if !ok {
		return nil
	}
	id, err := l.build(name)
	if err != nil {
		return err
	}
	p.swap(id)
	logger.Info("shader program reloaded", zap.String("name", name), zap.Uint32("id", id))
	return nil
}

func (l *Library) build(name string) (uint32, error) {
	vert, frag, err := l.src.Read(name)
	if err != nil {
		return 0, fmt.Errorf("shader %s: %w", name, err)
	}
	id, err := CompileProgram(vert, frag)
	if err != nil {
		return 0, fmt.Errorf("shader %s: %w", name, err)
	}
	return id, nil
}

// Destroy deletes every program.
func (l *Library) Destroy() {
	for name, p := range l.programs {
		gl.DeleteProgram(p.ID)
		delete(l.programs, name)
	}
}
