package audio

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	SampleRate = 44100
	Channels   = 2
)

// Manager owns the named sound registry and the mixer, and bridges the
// mixer stream to the platform audio device. When the device never starts
// (disabled by flag or unavailable) every Play returns an inert handle and
// the game runs silent; audio is never a fatal failure.
type Manager struct {
	mixer  *Mixer
	sounds map[string]*Sample

	player  *audio.Player
	started bool
}

func NewManager() *Manager {
	return &Manager{
		mixer:  NewMixer(Channels),
		sounds: make(map[string]*Sample),
	}
}

// Start attaches the mixer to the ebiten audio context. The context is
// process-global; Start must be called at most once.
func (m *Manager) Start() error {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(SampleRate)
	}
	player, err := ctx.NewPlayer(m.mixer)
	if err != nil {
		return fmt.Errorf("create mixer player: %w", err)
	}
	m.player = player
	m.player.Play()
	m.started = true
	return nil
}

// Register adds a named sample. Registering over an existing name keeps
// the first registration, matching load-once cache behavior.
func (m *Manager) Register(name string, sample *Sample) {
	if sample == nil || len(sample.Data) == 0 {
		return
	}
	if _, ok := m.sounds[name]; ok {
		return
	}
	m.sounds[name] = sample
}

// Play starts the named sound. Unknown names and a stopped device both
// degrade to an inert handle.
func (m *Manager) Play(name string, volume float64, loop bool, lowPass float64) Handle {
	if !m.started {
		return Handle{}
	}
	s, ok := m.sounds[name]
	if !ok {
		log.Printf("audio: sound %q not registered", name)
		return Handle{}
	}
	return m.mixer.Play(s, volume, loop, lowPass)
}

func (m *Manager) SetGlobalVolume(v float64) {
	m.mixer.SetVolume(v)
}

// Mixer exposes the underlying mixer, mainly for tests.
func (m *Manager) Mixer() *Mixer {
	return m.mixer
}
