package shaders

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"
)

func TestEmbeddedHasEveryProgram(t *testing.T) {
	src := Embedded()
	for _, name := range Names {
		vert, frag, err := src.Read(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if !strings.HasPrefix(vert, "#version 410 core") || !strings.HasPrefix(frag, "#version 410 core") {
			t.Errorf("%s: sources should target GLSL 4.10 core", name)
		}
	}
}

func TestEmbeddedUniformContract(t *testing.T) {
	tests := []struct {
		program  string
		uniforms []string
	}{
		{Forward, []string{"projection", "view", "model", "cameraPos", "tint", "unlit", "sunDirection", "ambient", "sunStrength",
			"lightPositions", "lightIntensities", "lightCount"}},
		{GBuffer, []string{"projection", "view", "model", "tint", "unlit"}},
		{Lighting, []string{"gPosition", "gNormal", "gAlbedoSpec", "cameraPos", "sunDirection", "ambient", "sunStrength",
			"lightPositions", "lightIntensities", "lightCount"}},
		{Ground, []string{"projection", "view", "model", "groundTexture", "sunDirection", "ambient", "sunStrength"}},
	}
	for _, tt := range tests {
		t.Run(tt.program, func(t *testing.T) {
			vert, frag, err := Embedded().Read(tt.program)
			if err != nil {
				t.Fatal(err)
			}
			all := vert + frag
			for _, u := range tt.uniforms {
				if !strings.Contains(all, " "+u) {
					t.Errorf("uniform %q not declared", u)
				}
			}
		})
	}
}

func TestDirSource(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, "custom.vert"), []byte("vertex"), 0644)
	os.WriteFile(filepath.Join(dir, "custom.frag"), []byte("fragment"), 0644)

	vert, frag, err := Dir(dir).Read("custom")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if vert != "vertex" || frag != "fragment" {
		t.Errorf("Read = %q, %q", vert, frag)
	}

	if _, _, err := Dir(dir).Read("missing"); err == nil {
		t.Error("expected error for missing program")
	}
}

func TestProgramName(t *testing.T) {
	tests := []struct {
		path string
		want string
		ok   bool
	}{
		{"/a/b/forward.frag", "forward", true},
		{"lighting.vert", "lighting", true},
		{"notes.txt", "", false},
		{"forward.frag~", "", false},
	}
	for _, tt := range tests {
		got, ok := programName(tt.path)
		if got != tt.want || ok != tt.ok {
			t.Errorf("programName(%q) = %q, %v; want %q, %v", tt.path, got, ok, tt.want, tt.ok)
		}
	}
}

func TestWatcherReportsEdits(t *testing.T) {
	dir := t.TempDir()
	w, err := Watch(dir)
	if err != nil {
		t.Fatalf("Watch failed: %v", err)
	}
	defer w.Close()

	if got := w.Drain(); got != nil {
		t.Fatalf("expected no changes, got %v", got)
	}

	os.WriteFile(filepath.Join(dir, "ground.frag"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(dir, "readme.md"), []byte("x"), 0644)

	deadline := time.Now().Add(3 * time.Second)
	var got []string
	for time.Now().Before(deadline) {
		if got = w.Drain(); got != nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if !slices.Equal(got, []string{"ground"}) {
		t.Errorf("Drain() = %v, want [ground]", got)
	}
}
