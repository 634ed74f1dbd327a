// Package shaders provides GLSL sources, embedded or read from disk,
// and a watcher that reports edited programs.
package shaders

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Program names shipped with the renderer.
const (
	Forward  = "forward"  // lit meshes, forward path
	GBuffer  = "gbuffer"  // mesh attributes into the G-buffer
	Lighting = "lighting" // full-screen deferred lighting
	Ground   = "ground"   // textured ground quad
)

// Names lists every shipped program.
var Names = []string{Forward, GBuffer, Lighting, Ground}

//go:embed *.vert *.frag
var embedded embed.FS

// Source reads the vertex and fragment text of a named program.
type Source interface {
	Read(name string) (vertex, fragment string, err error)
}

// Embedded returns the sources compiled into the binary.
func Embedded() Source {
	return fsSource{fsys: embedded}
}

// Dir returns sources read from dir on every call, so edits are picked
// up by a reload.
func Dir(dir string) Source {
	return fsSource{fsys: os.DirFS(dir), dir: dir}
}

type fsSource struct {
	fsys fs.FS
	dir  string
}

func (s fsSource) Read(name string) (string, string, error) {
	vert, err := fs.ReadFile(s.fsys, name+".vert")
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", filepath.Join(s.dir, name+".vert"), err)
	}
	frag, err := fs.ReadFile(s.fsys, name+".frag")
	if err != nil {
		return "", "", fmt.Errorf("read %s: %w", filepath.Join(s.dir, name+".frag"), err)
	}
	return string(vert), string(frag), nil
}
