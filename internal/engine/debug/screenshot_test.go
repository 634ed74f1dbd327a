package debug

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestFlipRows(t *testing.T) {
	// 1x2: bottom row red, top row blue in GL order.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img := FlipRows(pixels, 1, 2)
	if got := img.RGBAAt(0, 0); got != (color.RGBA{0, 0, 255, 255}) {
		t.Errorf("top = %v, want blue", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("bottom = %v, want red", got)
	}
}

func TestScreenshotsFilename(t *testing.T) {
	s := NewScreenshots("shots", "lightfall")
	s.now = func() time.Time { return time.Date(2024, 3, 1, 12, 30, 45, 0, time.UTC) }
	want := filepath.Join("shots", "lightfall_2024-03-01_12-30-45.000.png")
	if got := s.Filename(); got != want {
		t.Errorf("Filename() = %q, want %q", got, want)
	}
}

func TestScreenshotsSave(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s := NewScreenshots(dir, "shot")

	path, err := s.Save(make([]byte, 2*2*4), 2, 2)
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !strings.HasPrefix(path, dir) {
		t.Errorf("path %q not under %q", path, dir)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode saved PNG: %v", err)
	}
	if img.Bounds().Dx() != 2 || img.Bounds().Dy() != 2 {
		t.Errorf("size = %v", img.Bounds())
	}
}

func TestScreenshotsSaveSizeMismatch(t *testing.T) {
	s := NewScreenshots(t.TempDir(), "shot")
	if _, err := s.Save(make([]byte, 3), 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}
