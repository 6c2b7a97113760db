package obj

import (
	"image/color"
	"math/rand"

	"github.com/milk9111/memoryparasite/common"
	"github.com/milk9111/memoryparasite/levels"
	"github.com/milk9111/memoryparasite/physics"
)

// PlayerState labels the animation-facing state of the controller.
type PlayerState int

const (
	PlayerIdle PlayerState = iota
	PlayerRunning
	PlayerJumping
	PlayerDashing
)

// PlayerConfig is the controller tuning. Collider size is the sprite-space
// box scaled up at construction.
type PlayerConfig struct {
	R      float64
	Speed  float64
	Jump   float64
	MaxMem float64

	ColWidth  float64
	ColHeight float64

	DashSpeed    float64
	DashDuration float64
	DashCooldown float64
}

func DefaultPlayerConfig() PlayerConfig {
	return PlayerConfig{
		R:            16,
		Speed:        300,
		Jump:         700,
		MaxMem:       100,
		ColWidth:     7,
		ColHeight:    9.5,
		DashSpeed:    800,
		DashDuration: 0.2,
		DashCooldown: 0.8,
	}
}

// Input is one frame of player intent, decoupled from the real input
// device so the controller is testable headless.
type Input struct {
	Left, Right bool
	Jump        bool
	Dash        bool
}

// StateEvents reports frame events the game layer reacts to (screen
// shake, sounds, memory penalties).
type StateEvents struct {
	HeadBang bool
}

// Player is the memory-driven platformer controller. Memory doubles as
// health: it decays ambiently, drains faster on corrupted ground, and its
// fraction scales movement.
type Player struct {
	Body *physics.RigidBody
	Cfg  PlayerConfig

	Scale         float64
	State         PlayerState
	Grounded      bool
	FacingRight   bool
	Memory        float64
	Fragments     int
	WeightEnabled bool

	IsDashing    bool
	DashTimer    float64
	DashCooldown float64

	// Glitch side effects applied by the boss.
	GlitchSizeFactor  float64
	GlitchFlipY       bool
	GlitchColor       *color.NRGBA
	GlitchEffectTimer float64

	input Input
}

func NewPlayer(world *physics.World, startPos physics.Vec2) *Player {
	body := physics.NewBody(startPos)
	body.Drag = 0
	body.Restitution = 0
	world.AddBody(body)

	cfg := DefaultPlayerConfig()
	const scale = 6.0
	cfg.ColWidth *= scale
	cfg.ColHeight *= scale

	return &Player{
		Body:             body,
		Cfg:              cfg,
		Scale:            scale,
		FacingRight:      true,
		Memory:           cfg.MaxMem,
		GlitchSizeFactor: 1.0,
	}
}

func (p *Player) Width() float64  { return p.Cfg.ColWidth }
func (p *Player) Height() float64 { return p.Cfg.ColHeight }

func (p *Player) MemPercent() float64 {
	return common.Clamp01(p.Memory / p.Cfg.MaxMem)
}

// HandleInput latches this frame's intent. A dash starts here so a
// buffered press isn't lost to cooldown ordering.
func (p *Player) HandleInput(in Input) {
	if in.Dash && p.DashCooldown <= 0 {
		p.IsDashing = true
		p.DashTimer = p.Cfg.DashDuration
		p.DashCooldown = p.Cfg.DashCooldown
	}
	p.input = in
}

// UpdateVelocity drives the dash state machine and the grounded movement
// model. Corruption above 0.1 randomly reverses input for a frame.
func (p *Player) UpdateVelocity(dt, corruption float64) {
	if p.DashCooldown > 0 {
		p.DashCooldown -= dt
	}

	if p.IsDashing {
		p.DashTimer -= dt
		if p.FacingRight {
			p.Body.Velocity.X = p.Cfg.DashSpeed
		} else {
			p.Body.Velocity.X = -p.Cfg.DashSpeed
		}
		p.Body.Velocity.Y = 0
		if p.DashTimer <= 0 {
			p.IsDashing = false
		}
		return
	}

	memFactor := 1.0 - p.MemPercent()
	memPercent := p.MemPercent()
	actualSpeed := p.Cfg.Speed * (1.0 + memFactor*0.5)

	moveDir := 0.0
	if p.input.Left {
		moveDir--
	}
	if p.input.Right {
		moveDir++
	}

	if corruption > 0.1 && rand.Float64() < corruption*0.05 {
		moveDir = -moveDir
	}

	if moveDir != 0 {
		p.Body.Velocity.X = moveDir * actualSpeed
		p.FacingRight = moveDir > 0
	} else {
		p.Body.Velocity.X *= 0.8
		if p.Body.Velocity.X < 5 && p.Body.Velocity.X > -5 {
			p.Body.Velocity.X = 0
		}
	}

	if p.input.Jump && p.Grounded {
		jumpForce := p.Cfg.Jump
		if p.WeightEnabled {
			if memPercent > 0.8 {
				jumpForce *= 0.7 // heavy
			} else if memPercent < 0.3 {
				jumpForce *= 1.3 // light
			}
		}
		p.Body.Velocity.Y = -jumpForce
		p.Grounded = false
	}

	gravity := common.Gravity
	if p.WeightEnabled && memPercent < 0.3 {
		gravity *= 0.5 // floaty fall
	}
	p.Body.Velocity.Y += gravity * dt
	if p.Body.Velocity.Y > 800 {
		p.Body.Velocity.Y = 800
	}
}

// UpdateState resolves the player box against visible level geometry,
// decays memory, and expires glitch effects.
func (p *Player) UpdateState(dt float64, level *levels.Level, corruption float64) StateEvents {
	var events StateEvents

	var hitCeiling bool
	p.Grounded, hitCeiling = level.ResolveCollision(
		p.Body, p.Width(), p.Height(), p.MemPercent(), corruption, p.Fragments,
	)
	if hitCeiling {
		events.HeadBang = true
	}

	p.updateAnimState()
	p.Memory -= 1.0 * dt

	if p.GlitchEffectTimer > 0 {
		p.GlitchEffectTimer -= dt
		if p.GlitchEffectTimer <= 0 {
			p.GlitchSizeFactor = 1.0
			p.GlitchFlipY = false
			p.GlitchColor = nil
		}
	}

	return events
}

func (p *Player) updateAnimState() {
	switch {
	case p.IsDashing:
		p.State = PlayerDashing
	case !p.Grounded:
		p.State = PlayerJumping
	case p.Body.Velocity.X > 10 || p.Body.Velocity.X < -10:
		p.State = PlayerRunning
	default:
		p.State = PlayerIdle
	}
}
