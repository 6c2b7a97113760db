package collision

import (
	"github.com/milk9111/memoryparasite/physics"
)

// StaticRect is a piece of level geometry as seen by the resolver: a plain
// axis-aligned rectangle by top-left corner. The level layer owns the real
// platform records and hands over already-filtered lists per query.
type StaticRect struct {
	X, Y, W, H float64
}

// ResolveRectVsStatic snaps a dynamic box (centered on body.Position) out
// of static world geometry. The Y pass runs entirely before the X pass to
// keep the box from sticking diagonally at tile seams, and the padding
// narrows the perpendicular-axis test so grazing the seam between two
// flush platforms doesn't catch both. Within a pass, rects apply in list
// order; the last one wins.
//
// Returns (grounded, hitCeiling). Each flag is set only when the snap
// actually cancelled velocity in that direction.
func ResolveRectVsStatic(body *physics.RigidBody, width, height float64, staticRects []StaticRect, padding, epsilon float64) (grounded, hitCeiling bool) {
	if body == nil {
		return false, false
	}

	padX := min(padding, width*0.4)
	padY := min(padding, height*0.4)

	// Pass 1: vertical.
	for _, r := range staticRects {
		px := body.Position.X - width/2
		py := body.Position.Y - height/2

		if px+padX < r.X+r.W && px+width-padX > r.X {
			if py < r.Y+r.H && py+height > r.Y {
				overlapTop := (py + height) - r.Y
				overlapBottom := (r.Y + r.H) - py

				if overlapTop < overlapBottom {
					// Closer to the platform top: rest on it.
					body.Position.Y = r.Y - height/2 - epsilon
					if body.Velocity.Y > 0 {
						body.Velocity.Y = 0
						grounded = true
					}
				} else {
					body.Position.Y = r.Y + r.H + height/2 + epsilon
					if body.Velocity.Y < 0 {
						body.Velocity.Y = 0
						hitCeiling = true
					}
				}
			}
		}
	}

	// Pass 2: horizontal, against the possibly-updated Y position.
	for _, r := range staticRects {
		px := body.Position.X - width/2
		py := body.Position.Y - height/2

		if py+padY < r.Y+r.H && py+height-padY > r.Y {
			if px < r.X+r.W && px+width > r.X {
				overlapLeft := (px + width) - r.X
				overlapRight := (r.X + r.W) - px

				if overlapLeft < overlapRight {
					body.Position.X = r.X - width/2 - epsilon
					if body.Velocity.X > 0 {
						body.Velocity.X = 0
					}
				} else {
					body.Position.X = r.X + r.W + width/2 + epsilon
					if body.Velocity.X < 0 {
						body.Velocity.X = 0
					}
				}
			}
		}
	}

	return grounded, hitCeiling
}

// Resolve separates two overlapping bodies and applies an impulse along
// the contact normal. A static body never moves; the other body absorbs
// the full separation. Already-separating pairs get no impulse.
func Resolve(bodyA, bodyB *physics.RigidBody, info Info) {
	if !info.Hit || bodyA == nil || bodyB == nil {
		return
	}

	switch {
	case bodyA.IsStatic:
		bodyB.Position = bodyB.Position.Add(info.Normal.Scale(info.Depth))
	case bodyB.IsStatic:
		bodyA.Position = bodyA.Position.Sub(info.Normal.Scale(info.Depth))
	default:
		half := info.Depth / 2
		bodyA.Position = bodyA.Position.Sub(info.Normal.Scale(half))
		bodyB.Position = bodyB.Position.Add(info.Normal.Scale(half))
	}

	relVel := bodyB.Velocity.Sub(bodyA.Velocity)
	velAlongNormal := relVel.Dot(info.Normal)
	if velAlongNormal > 0 {
		return
	}

	e := min(bodyA.Restitution, bodyB.Restitution)

	var invMassA, invMassB float64
	if !bodyA.IsStatic {
		invMassA = 1.0 / bodyA.Mass
	}
	if !bodyB.IsStatic {
		invMassB = 1.0 / bodyB.Mass
	}

	j := -(1 + e) * velAlongNormal / (invMassA + invMassB)

	impulse := info.Normal.Scale(j)
	if !bodyA.IsStatic {
		bodyA.Velocity = bodyA.Velocity.Sub(impulse.Scale(invMassA))
	}
	if !bodyB.IsStatic {
		bodyB.Velocity = bodyB.Velocity.Add(impulse.Scale(invMassB))
	}
}
