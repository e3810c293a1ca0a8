package vec

import "math"

// Vec2 is a 2D vector value. All operations return new values and never
// mutate the receiver.
type Vec2 struct {
	X, Y float64
}

func New(x, y float64) Vec2 { return Vec2{x, y} }

func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

func (v Vec2) Neg() Vec2 { return Vec2{-v.X, -v.Y} }

func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Cross returns the scalar z component of the 3D cross product.
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// Normalize returns the unit vector pointing in the direction of v.
// A zero-length vector normalizes to the zero vector, so callers in hot
// loops never need a divide-by-zero guard.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return Vec2{}
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotate returns v rotated counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	s, c := math.Sincos(angle)
	return Vec2{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Perp returns v rotated 90 degrees counter-clockwise.
func (v Vec2) Perp() Vec2 { return Vec2{-v.Y, v.X} }

func (v Vec2) IsValid() bool {
	return !math.IsNaN(v.X) && !math.IsInf(v.X, 0) &&
		!math.IsNaN(v.Y) && !math.IsInf(v.Y, 0)
}

func Dist(a, b Vec2) float64 { return b.Sub(a).Len() }
