package audio

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// testWAV builds a mono 16-bit PCM WAV with n silent samples.
func testWAV(n int) []byte {
	var b bytes.Buffer
	dataLen := uint32(n * 2)
	b.WriteString("RIFF")
	binary.Write(&b, binary.LittleEndian, 36+dataLen)
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	binary.Write(&b, binary.LittleEndian, uint32(16))
	binary.Write(&b, binary.LittleEndian, uint16(1))     // PCM
	binary.Write(&b, binary.LittleEndian, uint16(1))     // channels
	binary.Write(&b, binary.LittleEndian, uint32(44100)) // sample rate
	binary.Write(&b, binary.LittleEndian, uint32(88200)) // byte rate
	binary.Write(&b, binary.LittleEndian, uint16(2))     // block align
	binary.Write(&b, binary.LittleEndian, uint16(16))    // bits
	b.WriteString("data")
	binary.Write(&b, binary.LittleEndian, dataLen)
	b.Write(make([]byte, dataLen))
	return b.Bytes()
}

func TestVolumeConversion(t *testing.T) {
	tests := []struct {
		vol float64
		min float64
		max float64
	}{
		{1.0, -0.01, 0.01},
		{0.5, -1.01, -0.99},
		{0.25, -2.01, -1.99},
		{0.0, -100, -10},
	}

	for _, tt := range tests {
		g := volumeToGain(tt.vol)
		if g < tt.min || g > tt.max {
			t.Errorf("volumeToGain(%f) = %f, want between %f and %f", tt.vol, g, tt.min, tt.max)
		}
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		v, min, max, want float64
	}{
		{0.5, 0, 1, 0.5},
		{-1, 0, 1, 0},
		{2, 0, 1, 1},
		{0, 0, 1, 0},
		{1, 0, 1, 1},
	}

	for _, tt := range tests {
		got := clamp(tt.v, tt.min, tt.max)
		if got != tt.want {
			t.Errorf("clamp(%f, %f, %f) = %f, want %f", tt.v, tt.min, tt.max, got, tt.want)
		}
	}
}

func TestNewManager(t *testing.T) {
	m := New()
	if m.IsInitialized() {
		t.Error("new manager should not be initialized")
	}
	if m.GetMasterVolume() != 1.0 {
		t.Errorf("default master volume = %f, want 1.0", m.GetMasterVolume())
	}
	if m.GetSFXVolume() != 1.0 {
		t.Errorf("default SFX volume = %f, want 1.0", m.GetSFXVolume())
	}
}

func TestSetVolume(t *testing.T) {
	m := New()

	m.SetMasterVolume(0.5)
	if m.GetMasterVolume() != 0.5 {
		t.Errorf("master volume = %f, want 0.5", m.GetMasterVolume())
	}
	m.SetMasterVolume(2.0)
	if m.GetMasterVolume() != 1.0 {
		t.Errorf("master volume = %f, want 1.0 (clamped)", m.GetMasterVolume())
	}
	m.SetSFXVolume(-1.0)
	if m.GetSFXVolume() != 0.0 {
		t.Errorf("sfx volume = %f, want 0.0 (clamped)", m.GetSFXVolume())
	}
}

func TestLoadCueData(t *testing.T) {
	m := New()
	if err := m.LoadCueData(CueSpawn, testWAV(100)); err != nil {
		t.Fatalf("LoadCueData failed: %v", err)
	}
	if !m.HasCue(CueSpawn) {
		t.Error("spawn cue should be loaded")
	}
	if m.HasCue(CueLand) {
		t.Error("land cue should not be loaded")
	}
	if err := m.LoadCueData(CueLand, []byte("not a wav")); err == nil {
		t.Error("expected decode error")
	}
}

func TestLoadCue(t *testing.T) {
	m := New()
	if err := m.LoadCue(CueLand, ""); err != nil {
		t.Errorf("empty path should be a silent cue, got %v", err)
	}
	if err := m.LoadCue(CueLand, filepath.Join(t.TempDir(), "missing.wav")); err == nil {
		t.Error("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "land.wav")
	if err := os.WriteFile(path, testWAV(10), 0644); err != nil {
		t.Fatal(err)
	}
	if err := m.LoadCue(CueLand, path); err != nil {
		t.Fatalf("LoadCue failed: %v", err)
	}
	if !m.HasCue(CueLand) {
		t.Error("land cue should be loaded")
	}
}

func TestPlayBeforeInit(t *testing.T) {
	m := New()
	m.LoadCueData(CueSpawn, testWAV(10))
	if err := m.Play(CueSpawn); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Play before Init = %v, want ErrNotInitialized", err)
	}
}
