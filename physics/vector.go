package physics

import "math"

// Vec2 is a plain 2D vector. Value semantics throughout; methods never
// mutate the receiver.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{v.X - o.X, v.Y - o.Y}
}

func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

func (v Vec2) Dot(o Vec2) float64 {
	return v.X*o.X + v.Y*o.Y
}

func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Normalized returns the unit vector, or the zero vector when the length
// is zero. Degenerate inputs are steady-state here (coincident bodies), so
// this never divides by zero.
func (v Vec2) Normalized() Vec2 {
	ln := v.Length()
	if ln == 0 {
		return Vec2{}
	}
	return Vec2{v.X / ln, v.Y / ln}
}

func (v Vec2) Neg() Vec2 {
	return Vec2{-v.X, -v.Y}
}
