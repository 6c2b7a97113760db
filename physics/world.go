package physics

// World owns the set of simulated bodies. Single-threaded; the game loop
// is the only caller.
type World struct {
	Gravity Vec2
	bodies  []*RigidBody
}

func NewWorld(gravity Vec2) *World {
	return &World{Gravity: gravity}
}

func (w *World) AddBody(b *RigidBody) {
	if b == nil {
		return
	}
	w.bodies = append(w.bodies, b)
}

// RemoveBody drops a body from the tracked set. Removal is explicit: a
// despawned object must be removed here or it keeps integrating.
func (w *World) RemoveBody(b *RigidBody) {
	for i, body := range w.bodies {
		if body == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			return
		}
	}
}

func (w *World) Bodies() []*RigidBody {
	return w.bodies
}

// Step applies gravity to every non-static body and integrates. dt is
// wall-clock seconds and is not clamped here; the caller owns sub-step
// policy.
func (w *World) Step(dt float64) {
	for _, b := range w.bodies {
		if !b.IsStatic {
			b.ApplyForce(w.Gravity.Scale(b.Mass))
		}
		b.Update(dt)
	}
}

// ConstrainToBounds keeps a circular body inside a rectangle, reflecting
// velocity with the body's restitution on each wall.
func (w *World) ConstrainToBounds(b *RigidBody, radius, minX, minY, maxX, maxY float64) {
	if b == nil {
		return
	}
	if b.Position.X-radius < minX {
		b.Position.X = minX + radius
		b.Velocity.X *= -b.Restitution
	}
	if b.Position.X+radius > maxX {
		b.Position.X = maxX - radius
		b.Velocity.X *= -b.Restitution
	}
	if b.Position.Y-radius < minY {
		b.Position.Y = minY + radius
		b.Velocity.Y *= -b.Restitution
	}
	if b.Position.Y+radius > maxY {
		b.Position.Y = maxY - radius
		b.Velocity.Y *= -b.Restitution
	}
}
