// Package audio plays short sound cues for simulation events.
package audio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/gopxl/beep/v2/wav"
	"go.uber.org/zap"

	"github.com/Faultbox/lightfall/internal/logger"
)

// DefaultSampleRate is the default sample rate for audio playback.
const DefaultSampleRate = beep.SampleRate(44100)

// Cue names a sound played in response to a simulation event.
type Cue string

// Known cues.
const (
	CueSpawn Cue = "spawn"
	CueLand  Cue = "land"
)

// ErrNotInitialized is returned when playing before Init.
var ErrNotInitialized = errors.New("audio not initialized")

// Manager decodes cues once and mixes them on the speaker.
type Manager struct {
	mu sync.RWMutex

	initialized bool
	sampleRate  beep.SampleRate

	masterVolume float64
	sfxVolLevel  float64

	cues  map[Cue]*beep.Buffer
	mixer *beep.Mixer
}

// New creates a new audio manager.
func New() *Manager {
	return &Manager{
		sampleRate:   DefaultSampleRate,
		masterVolume: 1.0,
		sfxVolLevel:  1.0,
		cues:         make(map[Cue]*beep.Buffer),
		mixer:        &beep.Mixer{},
	}
}

// Init opens the speaker.
func (m *Manager) Init() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		return nil
	}

	if err := speaker.Init(m.sampleRate, m.sampleRate.N(time.Second/30)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(m.mixer)

	m.initialized = true
	return nil
}

// Close shuts down the audio system.
func (m *Manager) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.initialized {
		speaker.Clear()
		speaker.Close()
	}
	m.initialized = false
}

// IsInitialized returns whether the audio system is initialized.
func (m *Manager) IsInitialized() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.initialized
}

// SetMasterVolume sets the master volume (0.0 to 1.0).
func (m *Manager) SetMasterVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.masterVolume = clamp(vol, 0, 1)
}

// SetSFXVolume sets the cue volume (0.0 to 1.0).
func (m *Manager) SetSFXVolume(vol float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sfxVolLevel = clamp(vol, 0, 1)
}

// GetMasterVolume returns the master volume.
func (m *Manager) GetMasterVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.masterVolume
}

// GetSFXVolume returns the cue volume.
func (m *Manager) GetSFXVolume() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sfxVolLevel
}

// volumeToGain converts a 0-1 volume to a base-2 gain exponent for
// effects.Volume: 1 is unity, 0.5 is -1 (about -6dB).
func volumeToGain(vol float64) float64 {
	if vol <= 0 {
		return -10
	}
	return math.Log2(vol)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// LoadCue decodes a WAV file and stores it under cue. An empty path
// leaves the cue silent.
func (m *Manager) LoadCue(cue Cue, path string) error {
	if path == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read cue %s: %w", cue, err)
	}
	if err := m.LoadCueData(cue, data); err != nil {
		return fmt.Errorf("cue %s (%s): %w", cue, path, err)
	}
	logger.Debug("audio cue loaded", zap.String("cue", string(cue)), zap.String("path", path))
	return nil
}

// LoadCueData decodes WAV data into memory for repeated playback.
func (m *Manager) LoadCueData(cue Cue, data []byte) error {
	streamer, format, err := wav.Decode(io.NopCloser(bytes.NewReader(data)))
	if err != nil {
		return fmt.Errorf("decode wav: %w", err)
	}
	defer streamer.Close()

	buf := beep.NewBuffer(format)
	buf.Append(streamer)

	m.mu.Lock()
	m.cues[cue] = buf
	m.mu.Unlock()
	return nil
}

// HasCue reports whether cue has sound data.
func (m *Manager) HasCue(cue Cue) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cues[cue] != nil
}

// Play mixes cue into the output. Cues without data are ignored.
func (m *Manager) Play(cue Cue) error {
	m.mu.RLock()
	initialized := m.initialized
	buf := m.cues[cue]
	vol := m.masterVolume * m.sfxVolLevel
	rate := m.sampleRate
	m.mu.RUnlock()

	if !initialized {
		return ErrNotInitialized
	}
	if buf == nil {
		return nil
	}

	var s beep.Streamer = buf.Streamer(0, buf.Len())
	if buf.Format().SampleRate != rate {
		s = beep.Resample(4, buf.Format().SampleRate, rate, s)
	}

	speaker.Lock()
	m.mixer.Add(&effects.Volume{
		Streamer: s,
		Base:     2,
		Volume:   volumeToGain(vol),
		Silent:   vol <= 0,
	})
	speaker.Unlock()
	return nil
}
