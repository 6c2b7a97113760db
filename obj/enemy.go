package obj

import (
	"image/color"
	"math"

	"github.com/milk9111/memoryparasite/collision"
	"github.com/milk9111/memoryparasite/levels"
	"github.com/milk9111/memoryparasite/particles"
	"github.com/milk9111/memoryparasite/physics"
)

const (
	ghostRadius   = 20.0
	ghostDamage   = 20.0
	ghostSpeed    = 150.0
	ghostMaxVel   = 250.0
	dissolveAfter = 0.5
)

// Enemy is a roaming lost ghost: chase the player, wobble, and either
// dissolve when dashed through or report contact damage.
type Enemy struct {
	Body *physics.RigidBody
	R    float64
	HP   int
	Dmg  float64

	SpawnPos physics.Vec2
	AnimT    float64
	Speed    float64

	IsDissolving bool
	DissolveT    float64
}

// DamageEvent is one frame of non-lethal contact with the player.
type DamageEvent struct {
	Amount float64
	Pos    physics.Vec2
}

// FrameEvents aggregates what happened this step for the game loop to
// apply (memory damage, screen effects, boss feedback).
type FrameEvents struct {
	Damage   []DamageEvent
	NoiseHit bool
	BossHit  bool
}

// Manager owns the ghosts and the boss.
type Manager struct {
	Enemies []*Enemy
	Boss    *Boss

	phys *physics.World
	coll *collision.World
}

func NewManager(phys *physics.World, coll *collision.World) *Manager {
	return &Manager{phys: phys, coll: coll}
}

func (m *Manager) SpawnLostGhost(pos physics.Vec2) {
	body := physics.NewBody(pos)
	body.Mass = 0.5
	body.Drag = 0.05
	body.Restitution = 0.5
	m.phys.AddBody(body)
	m.coll.AddCircle(body, ghostRadius)

	m.Enemies = append(m.Enemies, &Enemy{
		Body:     body,
		R:        ghostRadius,
		HP:       1,
		Dmg:      ghostDamage,
		SpawnPos: pos,
		Speed:    ghostSpeed,
	})
}

func (m *Manager) SpawnBoss(pos physics.Vec2) {
	m.Boss = NewBoss(m.phys, pos)
	m.coll.AddCircle(m.Boss.Body, m.Boss.R)
}

// ResetForDeath despawns every ghost (and the boss unless kept), removing
// their bodies from the physics world.
func (m *Manager) ResetForDeath(keepBoss bool) {
	for _, e := range m.Enemies {
		m.phys.RemoveBody(e.Body)
		m.coll.RemoveBody(e.Body)
	}
	m.Enemies = nil
	if m.Boss != nil && !keepBoss {
		m.phys.RemoveBody(m.Boss.Body)
		m.coll.RemoveBody(m.Boss.Body)
		m.Boss = nil
	}
}

// KillAll dissolves every ghost and freezes the boss for two seconds.
func (m *Manager) KillAll(parts ParticleSink) {
	for _, e := range m.Enemies {
		if !e.IsDissolving {
			e.IsDissolving = true
			parts.Emit(e.Body.Position, 15, color.NRGBA{R: 100, G: 200, B: 255, A: 255},
				particles.Options{SpeedMin: 50, SpeedMax: 150})
		}
	}
	if m.Boss != nil {
		m.Boss.Freeze(2.0)
	}
}

// Update steps the boss and every ghost, returning the frame's aggregated
// events. The level provides the platform list the boss projectiles are
// checked against.
func (m *Manager) Update(dt float64, player *Player, level *levels.Level, parts ParticleSink, audio AudioSink) FrameEvents {
	var res FrameEvents

	if m.Boss != nil {
		if m.Boss.Update(dt, player, parts, audio) {
			res.BossHit = true
		}

		if m.Boss.IsDead {
			m.phys.RemoveBody(m.Boss.Body)
			m.coll.RemoveBody(m.Boss.Body)
			m.Boss = nil
		} else {
			if m.Boss.NoiseRayHits(player) {
				res.NoiseHit = true
			}
			visible := level.VisiblePlatforms(player.MemPercent(), player.Fragments)
			m.Boss.CheckPlatformHits(visible, parts, audio)
		}
	}

	playerPos := player.Body.Position
	playerRadius := player.Width() / 2
	lethal := player.IsDashing

	kept := m.Enemies[:0]
	for _, e := range m.Enemies {
		if e.IsDissolving {
			e.DissolveT += dt
			if e.DissolveT > dissolveAfter {
				m.phys.RemoveBody(e.Body)
				m.coll.RemoveBody(e.Body)
				continue
			}
			kept = append(kept, e)
			continue
		}

		e.AnimT += dt * 4

		toPlayer := playerPos.Sub(e.Body.Position)
		if toPlayer.Length() > 0 {
			dir := toPlayer.Normalized()
			wobble := physics.Vec2{X: math.Sin(e.AnimT), Y: math.Cos(e.AnimT)}.Scale(50)
			e.Body.ApplyForce(dir.Scale(e.Speed).Add(wobble).Scale(5.0))
		}

		if e.Body.Velocity.Length() > ghostMaxVel {
			e.Body.Velocity = e.Body.Velocity.Normalized().Scale(ghostMaxVel)
		}

		info := collision.CircleVsCircle(e.Body.Position, e.R, playerPos, playerRadius)
		if info.Hit {
			if lethal {
				e.IsDissolving = true
				parts.Emit(e.Body.Position, 20, color.NRGBA{R: 200, G: 200, B: 255, A: 150},
					particles.Options{SpeedMin: 50, SpeedMax: 300})
			} else {
				res.Damage = append(res.Damage, DamageEvent{Amount: e.Dmg, Pos: e.Body.Position})
			}
		}

		kept = append(kept, e)
	}
	m.Enemies = kept

	return res
}
