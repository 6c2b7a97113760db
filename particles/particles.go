package particles

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/memoryparasite/physics"
)

// Options tunes an emission burst. Zero values fall back to the defaults
// the callers almost always want.
type Options struct {
	SpeedMin, SpeedMax float64
	LifeMin, LifeMax   float64
}

type particle struct {
	pos  physics.Vec2
	vel  physics.Vec2
	life float64
	maxL float64
	col  color.NRGBA
	size float64
}

// System is a fire-and-forget particle pool. Emit may be called from any
// update code; there is no ordering guarantee relative to rendering.
type System struct {
	particles []particle
	rng       *rand.Rand
}

func NewSystem() *System {
	return &System{rng: rand.New(rand.NewSource(rand.Int63()))}
}

func (s *System) Emit(pos physics.Vec2, count int, col color.NRGBA, opts Options) {
	if s == nil {
		return
	}
	if opts.SpeedMax <= 0 {
		opts.SpeedMin, opts.SpeedMax = 50, 200
	}
	if opts.LifeMax <= 0 {
		opts.LifeMin, opts.LifeMax = 0.4, 1.0
	}

	for i := 0; i < count; i++ {
		angle := s.rng.Float64() * 2 * math.Pi
		speed := opts.SpeedMin + s.rng.Float64()*(opts.SpeedMax-opts.SpeedMin)
		life := opts.LifeMin + s.rng.Float64()*(opts.LifeMax-opts.LifeMin)
		s.particles = append(s.particles, particle{
			pos:  pos,
			vel:  physics.Vec2{X: math.Cos(angle) * speed, Y: math.Sin(angle) * speed},
			life: life,
			maxL: life,
			col:  col,
			size: 1.5 + s.rng.Float64()*2.5,
		})
	}
}

func (s *System) Update(dt float64) {
	if s == nil {
		return
	}
	kept := s.particles[:0]
	for _, p := range s.particles {
		p.life -= dt
		if p.life <= 0 {
			continue
		}
		p.vel.Y += 60 * dt // light downward drift
		p.pos = p.pos.Add(p.vel.Scale(dt))
		kept = append(kept, p)
	}
	s.particles = kept
}

func (s *System) Count() int {
	if s == nil {
		return 0
	}
	return len(s.particles)
}

func (s *System) Draw(screen *ebiten.Image) {
	if s == nil {
		return
	}
	for _, p := range s.particles {
		c := p.col
		fade := p.life / p.maxL
		c.A = uint8(float64(c.A) * fade)
		vector.DrawFilledCircle(screen, float32(p.pos.X), float32(p.pos.Y), float32(p.size), c, false)
	}
}
