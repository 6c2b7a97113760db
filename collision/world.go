package collision

import (
	"github.com/milk9111/memoryparasite/physics"
)

type circleCollider struct {
	body   *physics.RigidBody
	radius float64
}

type rectCollider struct {
	body          *physics.RigidBody
	width, height float64
}

// World registers colliders bound to rigid bodies and resolves every
// overlapping pair once per step. All-pairs is O(n^2+m^2+nm), fine for a
// handful of enemies and projectiles; a broad-phase grid would slot in
// behind CheckAndResolve if the counts ever grow.
type World struct {
	circles []circleCollider
	rects   []rectCollider
}

func NewWorld() *World {
	return &World{}
}

func (w *World) AddCircle(body *physics.RigidBody, radius float64) {
	w.circles = append(w.circles, circleCollider{body: body, radius: radius})
}

func (w *World) AddRect(body *physics.RigidBody, width, height float64) {
	w.rects = append(w.rects, rectCollider{body: body, width: width, height: height})
}

// RemoveBody drops every collider bound to the body.
func (w *World) RemoveBody(body *physics.RigidBody) {
	circles := w.circles[:0]
	for _, c := range w.circles {
		if c.body != body {
			circles = append(circles, c)
		}
	}
	w.circles = circles

	rects := w.rects[:0]
	for _, r := range w.rects {
		if r.body != body {
			rects = append(rects, r)
		}
	}
	w.rects = rects
}

// CheckAndResolve runs the three narrow-phase sweeps and resolves each hit
// immediately.
func (w *World) CheckAndResolve() {
	for i, a := range w.circles {
		for j, b := range w.circles {
			if i >= j {
				continue
			}
			info := CircleVsCircle(a.body.Position, a.radius, b.body.Position, b.radius)
			Resolve(a.body, b.body, info)
		}
	}

	for _, c := range w.circles {
		for _, r := range w.rects {
			rx := r.body.Position.X - r.width/2
			ry := r.body.Position.Y - r.height/2
			info := CircleVsRect(c.body.Position, c.radius, rx, ry, r.width, r.height)
			Resolve(c.body, r.body, info)
		}
	}

	for i, a := range w.rects {
		for j, b := range w.rects {
			if i >= j {
				continue
			}
			ax := a.body.Position.X - a.width/2
			ay := a.body.Position.Y - a.height/2
			bx := b.body.Position.X - b.width/2
			by := b.body.Position.Y - b.height/2
			info := RectVsRect(ax, ay, a.width, a.height, bx, by, b.width, b.height)
			Resolve(a.body, b.body, info)
		}
	}
}
