package obj

import (
	"image/color"

	"github.com/milk9111/memoryparasite/audio"
	"github.com/milk9111/memoryparasite/particles"
	"github.com/milk9111/memoryparasite/physics"
)

// ParticleSink is the fire-and-forget VFX consumer. Satisfied by
// particles.System; tests pass a no-op.
type ParticleSink interface {
	Emit(pos physics.Vec2, count int, col color.NRGBA, opts particles.Options)
}

// AudioSink issues sound triggers. Satisfied by audio.Manager; an inert
// handle comes back when audio is disabled.
type AudioSink interface {
	Play(name string, volume float64, loop bool, lowPass float64) audio.Handle
}

// NopParticles and NopAudio are the do-nothing sinks.
type NopParticles struct{}

func (NopParticles) Emit(physics.Vec2, int, color.NRGBA, particles.Options) {}

type NopAudio struct{}

func (NopAudio) Play(string, float64, bool, float64) audio.Handle { return audio.Handle{} }
