package model

import "math"

// Vec2 is a position on the world plane. Value type, passed by value.
type Vec2 struct {
	X float64
	Y float64
}

// Add returns the component-wise sum.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns the component-wise difference.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns the vector multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Length returns the vector magnitude.
func (v Vec2) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y)
}

// LengthSquared avoids the sqrt for comparisons on hot paths.
func (v Vec2) LengthSquared() float64 {
	return v.X*v.X + v.Y*v.Y
}

// Distance returns the distance to another point.
func (v Vec2) Distance(o Vec2) float64 {
	return v.Sub(o).Length()
}

// DistanceSquared returns the squared distance to another point.
func (v Vec2) DistanceSquared(o Vec2) float64 {
	return v.Sub(o).LengthSquared()
}

// Normalized returns the unit vector, or the zero vector unchanged.
func (v Vec2) Normalized() Vec2 {
	l := v.Length()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{X: v.X / l, Y: v.Y / l}
}

// MoveToward returns a position stepped from v toward target by at most
// maxStep, never overshooting.
func (v Vec2) MoveToward(target Vec2, maxStep float64) Vec2 {
	delta := target.Sub(v)
	dist := delta.Length()
	if dist <= maxStep || dist == 0 {
		return target
	}
	return v.Add(delta.Scale(maxStep / dist))
}
