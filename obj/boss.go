package obj

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/milk9111/memoryparasite/common"
	"github.com/milk9111/memoryparasite/levels"
	"github.com/milk9111/memoryparasite/particles"
	"github.com/milk9111/memoryparasite/physics"
)

// Attack kinds are tagged structs rather than a single bag of optional
// fields; each kind carries exactly its own payload.

// TrailGlyph is one character of an arrow's matrix-rain trail.
type TrailGlyph struct {
	Pos  physics.Vec2
	Char string
	Life float64
}

// Arrow is a directed boss projectile. It may pass through exactly one
// platform (losing half its speed) and explodes on the second distinct
// platform it enters. PenetratingID remembers the platform currently being
// passed through so straddling one rect doesn't count twice; it is cleared
// once the overlap ends.
type Arrow struct {
	Pos, Vel physics.Vec2
	T        float64
	Trail    []TrailGlyph

	Penetrated    bool
	PenetratingID int // platform ID, 0 when not inside one
}

// NoiseRay is a timed line-segment attack aimed near the player.
type NoiseRay struct {
	Start, End  physics.Vec2
	Timer, MaxT float64
}

var trailChars = []string{"0", "1", "x", "f", "a", "7", "!", "&"}

// Boss is the parasite. Active unless frozen (timer suspends scheduling
// and movement, not in-flight attacks) or dead (terminal).
type Boss struct {
	MaxHP float64
	HP    float64

	// Rage rises as HP falls and with every hit taken; it scales attack
	// cadence, projectile speed, and glitch duration. Always in [0,1].
	Rage      float64
	RageBoost float64

	FreezeTimer float64
	IsDead      bool

	R    float64
	Body *physics.RigidBody

	AnimT       float64
	Attacks     []*Arrow
	NoiseRays   []*NoiseRay
	attackTimer float64

	world *physics.World
	rng   *rand.Rand
}

func NewBoss(world *physics.World, pos physics.Vec2) *Boss {
	body := physics.NewBody(pos)
	body.Mass = 10.0
	body.Drag = 0.1
	body.Restitution = 0.5
	world.AddBody(body)

	return &Boss{
		MaxHP:       300,
		HP:          300,
		RageBoost:   0.1,
		R:           60,
		Body:        body,
		attackTimer: 2.0,
		world:       world,
		rng:         rand.New(rand.NewSource(rand.Int63())),
	}
}

// Freeze suspends the boss and bleeds off accumulated rage; freezing is
// the player's de-escalation tool.
func (b *Boss) Freeze(duration float64) {
	b.FreezeTimer = duration
	b.RageBoost -= 0.4
	if b.RageBoost < -0.5 {
		b.RageBoost = -0.5
	}
}

// Update advances the boss one step and returns whether the player's dash
// connected this frame.
func (b *Boss) Update(dt float64, player *Player, parts ParticleSink, audio AudioSink) bool {
	if b.IsDead {
		return false
	}

	if b.FreezeTimer > 0 {
		b.FreezeTimer -= dt
		return false
	}

	b.AnimT += dt

	hpRage := (1.0 - b.HP/b.MaxHP) * 1.2
	b.Rage = common.Clamp01(hpRage + b.RageBoost)

	if b.RageBoost > 0.1 {
		b.RageBoost -= 0.03 * dt
	}

	// Floating drift along a Lissajous target, chased by force.
	target := physics.Vec2{
		X: 640 + math.Sin(b.AnimT*0.5)*400,
		Y: 200 + math.Cos(b.AnimT*0.8)*100,
	}
	toTarget := target.Sub(b.Body.Position)
	b.Body.ApplyForce(toTarget.Scale(5.0))

	b.attackTimer -= dt * (1.0 + b.Rage)
	if b.attackTimer <= 0 {
		b.triggerAttack(player, audio)
		b.attackTimer = (1.0 + b.rng.Float64()*1.5) / (1.0 + b.Rage*1.5)
	}

	b.updateArrows(dt, player, parts, audio)
	b.updateNoiseRays(dt, player)

	hit := false
	if player.IsDashing {
		if b.Body.Position.Sub(player.Body.Position).Length() < b.R+25 {
			b.HP -= 15
			b.RageBoost += 0.12
			hit = true

			parts.Emit(b.Body.Position, 30, color.NRGBA{R: 255, A: 255},
				particles.Options{SpeedMin: 100, SpeedMax: 400})

			kb := b.Body.Position.Sub(player.Body.Position).Normalized().Scale(600)
			b.Body.Velocity = b.Body.Velocity.Add(kb)

			if b.HP <= 0 {
				b.IsDead = true
				parts.Emit(b.Body.Position, 100, color.NRGBA{R: 255, G: 255, B: 255, A: 255},
					particles.Options{SpeedMin: 200, SpeedMax: 600})
			}
		}
	}

	return hit
}

func (b *Boss) updateArrows(dt float64, player *Player, parts ParticleSink, audio AudioSink) {
	kept := b.Attacks[:0]
	for _, atk := range b.Attacks {
		atk.Pos = atk.Pos.Add(atk.Vel.Scale(dt))
		atk.T += dt

		if b.rng.Float64() < 0.4 {
			atk.Trail = append(atk.Trail, TrailGlyph{
				Pos:  atk.Pos,
				Char: trailChars[b.rng.Intn(len(trailChars))],
				Life: 0.6,
			})
		}
		liveTrail := atk.Trail[:0]
		for _, t := range atk.Trail {
			t.Life -= dt
			if t.Life > 0 {
				liveTrail = append(liveTrail, t)
			}
		}
		atk.Trail = liveTrail

		if atk.Pos.Sub(player.Body.Position).Length() < 30 {
			b.applyGlitch(player, parts, audio)
			b.explodeArrow(atk, parts, audio)
			continue
		}
		if atk.Pos.X < -100 || atk.Pos.X > 1380 || atk.Pos.Y < -100 || atk.Pos.Y > 820 {
			continue
		}
		kept = append(kept, atk)
	}
	b.Attacks = kept
}

func (b *Boss) updateNoiseRays(dt float64, player *Player) {
	kept := b.NoiseRays[:0]
	for _, ray := range b.NoiseRays {
		ray.Timer -= dt
		if ray.Timer <= 0 {
			continue
		}
		dist := distPointToSegment(player.Body.Position, ray.Start, ray.End)
		if dist < player.Cfg.R+15 {
			player.Memory -= 8.0 * dt
		}
		kept = append(kept, ray)
	}
	b.NoiseRays = kept
}

func (b *Boss) triggerAttack(player *Player, audio AudioSink) {
	rnd := b.rng.Float64()
	atkSpeed := 600 + b.Rage*600

	switch {
	case rnd < 0.5:
		// Bit arrow straight at the player.
		dir := player.Body.Position.Sub(b.Body.Position).Normalized()
		b.Attacks = append(b.Attacks, &Arrow{
			Pos: b.Body.Position,
			Vel: dir.Scale(atkSpeed),
		})
		audio.Play("hitWall", 0.5, false, 0)
	case rnd < 0.8:
		// Noise ray aimed near the player with jitter.
		end := player.Body.Position.Add(physics.Vec2{
			X: b.rng.Float64()*300 - 150,
			Y: b.rng.Float64()*300 - 150,
		})
		b.NoiseRays = append(b.NoiseRays, &NoiseRay{
			Start: b.Body.Position,
			End:   end,
			Timer: 0.8 + b.Rage,
			MaxT:  0.8 + b.Rage,
		})
		audio.Play("noise", 0.4, false, 0)
	default:
		// Cluster shot: five arrows fanned around the player direction.
		baseDir := player.Body.Position.Sub(b.Body.Position).Normalized()
		baseAngle := math.Atan2(baseDir.Y, baseDir.X)
		for i := -2; i <= 2; i++ {
			angle := baseAngle + float64(i)*0.3
			vel := physics.Vec2{X: math.Cos(angle), Y: math.Sin(angle)}.Scale(atkSpeed * 0.8)
			b.Attacks = append(b.Attacks, &Arrow{Pos: b.Body.Position, Vel: vel})
		}
		audio.Play("shock", 0.6, false, 0)
	}
}

func (b *Boss) applyGlitch(player *Player, parts ParticleSink, audio AudioSink) {
	effects := []string{"size", "flip", "color", "teleport"}
	effect := effects[b.rng.Intn(len(effects))]
	player.GlitchEffectTimer = 2.5 + b.Rage*2.5

	switch effect {
	case "size":
		if b.rng.Float64() < 0.5 {
			player.GlitchSizeFactor = 0.4
		} else {
			player.GlitchSizeFactor = 2.5
		}
	case "flip":
		player.GlitchFlipY = true
	case "color":
		player.GlitchColor = &color.NRGBA{
			R: uint8(50 + b.rng.Intn(206)),
			G: uint8(50 + b.rng.Intn(206)),
			B: uint8(50 + b.rng.Intn(206)),
			A: 255,
		}
	case "teleport":
		player.Body.Position = player.Body.Position.Add(physics.Vec2{
			X: b.rng.Float64()*600 - 300,
			Y: b.rng.Float64()*600 - 300,
		})
		parts.Emit(player.Body.Position, 25, color.NRGBA{R: 255, B: 255, A: 255}, particles.Options{})
	}

	audio.Play("shock", 0.7, false, 0)
	parts.Emit(player.Body.Position, 20, color.NRGBA{G: 255, A: 255}, particles.Options{})
}

func (b *Boss) explodeArrow(atk *Arrow, parts ParticleSink, audio AudioSink) {
	parts.Emit(atk.Pos, 25, color.NRGBA{R: 50, G: 255, B: 50, A: 255},
		particles.Options{SpeedMin: 50, SpeedMax: 300, LifeMin: 0.6, LifeMax: 1.2})
	parts.Emit(atk.Pos, 15, color.NRGBA{R: 150, G: 150, B: 150, A: 120},
		particles.Options{SpeedMin: 20, SpeedMax: 80, LifeMin: 1.0, LifeMax: 2.5})
	audio.Play("hitWall", 0.4, false, 0)

	for i, a := range b.Attacks {
		if a == atk {
			b.Attacks = append(b.Attacks[:i], b.Attacks[i+1:]...)
			break
		}
	}
}

// CheckPlatformHits walks every in-flight arrow against the visible
// platforms. First platform entered: penetrate (half speed, remember the
// platform ID). Second distinct platform while penetrated: explode.
func (b *Boss) CheckPlatformHits(platforms []*levels.Platform, parts ParticleSink, audio AudioSink) {
	for _, atk := range append([]*Arrow(nil), b.Attacks...) {
		for _, p := range platforms {
			inside := p.X < atk.Pos.X && atk.Pos.X < p.X+p.W &&
				p.Y < atk.Pos.Y && atk.Pos.Y < p.Y+p.H

			if inside {
				if atk.PenetratingID == p.ID {
					continue
				}
				if !atk.Penetrated {
					atk.Penetrated = true
					atk.PenetratingID = p.ID
					atk.Vel = atk.Vel.Scale(0.5)
					parts.Emit(atk.Pos, 5, color.NRGBA{R: 150, G: 255, B: 150, A: 255},
						particles.Options{SpeedMin: 20, SpeedMax: 100})
				} else {
					b.explodeArrow(atk, parts, audio)
				}
				break
			}

			// Left the platform we were passing through.
			if atk.PenetratingID == p.ID {
				atk.PenetratingID = 0
			}
		}
	}
}

// NoiseRayHits reports whether any active ray is currently on the player.
func (b *Boss) NoiseRayHits(player *Player) bool {
	for _, ray := range b.NoiseRays {
		if distPointToSegment(player.Body.Position, ray.Start, ray.End) < player.Cfg.R+10 {
			return true
		}
	}
	return false
}

func distPointToSegment(p, a, bb physics.Vec2) float64 {
	l2 := a.Sub(bb).LengthSquared()
	if l2 == 0 {
		return p.Sub(a).Length()
	}
	t := common.Clamp(p.Sub(a).Dot(bb.Sub(a))/l2, 0, 1)
	projection := a.Add(bb.Sub(a).Scale(t))
	return p.Sub(projection).Length()
}
