package collision

import (
	"github.com/milk9111/memoryparasite/physics"
)

// Info is the transient result of a narrow-phase test. Normal points from
// shape A toward shape B. Produced fresh per test, never retained.
type Info struct {
	Hit    bool
	Normal physics.Vec2
	Depth  float64
	Point  physics.Vec2
}

// CircleVsCircle tests two circles. Exactly touching circles and exactly
// coincident centers are both non-hits; a coincident pair has no usable
// normal.
func CircleVsCircle(posA physics.Vec2, radiusA float64, posB physics.Vec2, radiusB float64) Info {
	diff := posB.Sub(posA)
	dist := diff.Length()
	minDist := radiusA + radiusB

	if dist >= minDist || dist == 0 {
		return Info{}
	}

	normal := diff.Normalized()
	return Info{
		Hit:    true,
		Normal: normal,
		Depth:  minDist - dist,
		Point:  posA.Add(normal.Scale(radiusA)),
	}
}

// CircleVsRect tests a circle against an axis-aligned rectangle given by
// its top-left corner and size.
//
// When the center lies strictly inside the rectangle the closest-point
// distance is zero and no normal can be derived from it, so the circle is
// pushed toward the nearest of the four edges. The edge comparison order
// is left, right, top, bottom with first-minimum-wins; gameplay-visible
// behavior (boss projectiles escaping platforms) depends on this exact
// order, so keep it. Depth in that branch is radius + edge distance: the
// resolver must move the center a full radius past the surface, not just
// onto it.
func CircleVsRect(circlePos physics.Vec2, radius, rectX, rectY, rectW, rectH float64) Info {
	closestX := max(rectX, min(circlePos.X, rectX+rectW))
	closestY := max(rectY, min(circlePos.Y, rectY+rectH))
	closest := physics.Vec2{X: closestX, Y: closestY}

	diff := circlePos.Sub(closest)
	dist := diff.Length()

	if dist >= radius {
		return Info{}
	}

	if dist == 0 {
		dl := circlePos.X - rectX
		dr := (rectX + rectW) - circlePos.X
		dt := circlePos.Y - rectY
		db := (rectY + rectH) - circlePos.Y

		minP := min(dl, dr, dt, db)

		var normal physics.Vec2
		var depth float64
		switch {
		case minP == dl:
			normal = physics.Vec2{X: -1}
			depth = radius + dl
		case minP == dr:
			normal = physics.Vec2{X: 1}
			depth = radius + dr
		case minP == dt:
			normal = physics.Vec2{Y: -1}
			depth = radius + dt
		default:
			normal = physics.Vec2{Y: 1}
			depth = radius + db
		}

		return Info{Hit: true, Normal: normal, Depth: depth, Point: closest}
	}

	return Info{
		Hit:    true,
		Normal: diff.Normalized(),
		Depth:  radius - dist,
		Point:  closest,
	}
}

// RectVsRect tests two axis-aligned rectangles and resolves along the axis
// of smaller overlap. The comparison is strict, so an exact tie always
// resolves on Y.
func RectVsRect(ax, ay, aw, ah, bx, by, bw, bh float64) Info {
	overlapX := min(ax+aw, bx+bw) - max(ax, bx)
	overlapY := min(ay+ah, by+bh) - max(ay, by)

	if overlapX <= 0 || overlapY <= 0 {
		return Info{}
	}

	if overlapX < overlapY {
		normal := physics.Vec2{X: -1}
		if ax < bx {
			normal.X = 1
		}
		return Info{Hit: true, Normal: normal, Depth: overlapX}
	}

	normal := physics.Vec2{Y: -1}
	if ay < by {
		normal.Y = 1
	}
	return Info{Hit: true, Normal: normal, Depth: overlapY}
}
