package physics

// RigidBody is a linear-only point mass. There is no torque or angular
// state; platformer bodies are axis-aligned by construction.
type RigidBody struct {
	Position     Vec2
	Velocity     Vec2
	Acceleration Vec2

	Mass        float64
	Drag        float64 // per-step exponential damping factor, [0,1)
	Restitution float64 // bounciness, [0,1]
	IsStatic    bool
}

// NewBody returns a dynamic body at pos with sane defaults.
func NewBody(pos Vec2) *RigidBody {
	return &RigidBody{
		Position:    pos,
		Mass:        1.0,
		Drag:        0.01,
		Restitution: 0.8,
	}
}

// ApplyForce accumulates into acceleration for the next Update. Forces do
// not persist across steps; callers re-apply every frame.
func (b *RigidBody) ApplyForce(force Vec2) {
	if b.IsStatic {
		return
	}
	b.Acceleration = b.Acceleration.Add(force.Scale(1.0 / b.Mass))
}

// ApplyImpulse changes velocity immediately.
func (b *RigidBody) ApplyImpulse(impulse Vec2) {
	if b.IsStatic {
		return
	}
	b.Velocity = b.Velocity.Add(impulse.Scale(1.0 / b.Mass))
}

// Update integrates one step (semi-implicit Euler). Static bodies are
// skipped entirely, so their position and velocity never change.
//
// Drag is a flat exponential damping, not proportional to v^2; the
// gameplay tuning depends on that.
func (b *RigidBody) Update(dt float64) {
	if b.IsStatic {
		return
	}

	b.Velocity = b.Velocity.Scale(1.0 - b.Drag)
	b.Velocity = b.Velocity.Add(b.Acceleration.Scale(dt))
	b.Position = b.Position.Add(b.Velocity.Scale(dt))

	b.Acceleration = Vec2{}
}
