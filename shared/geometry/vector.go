// Package geometry holds the 2D primitives shared by the wire schema and the
// client model. It has no dependencies on ebiten so it builds headless.
package geometry

import "math"

// Vector is a point or direction in world space.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func NewVector(x, y float64) Vector {
	return Vector{X: x, Y: y}
}

func (v Vector) Add(o Vector) Vector {
	return Vector{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vector) Sub(o Vector) Vector {
	return Vector{X: v.X - o.X, Y: v.Y - o.Y}
}

func (v Vector) Scale(s float64) Vector {
	return Vector{X: v.X * s, Y: v.Y * s}
}

// Len returns the magnitude of v.
func (v Vector) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Dist returns the distance between v and o.
func (v Vector) Dist(o Vector) float64 {
	return v.Sub(o).Len()
}

// Angle returns the direction of v in radians.
func (v Vector) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Rotate returns v rotated by theta radians around the origin.
func (v Vector) Rotate(theta float64) Vector {
	sin, cos := math.Sincos(theta)
	return Vector{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// FromPolar builds a vector of length r pointing at theta.
func FromPolar(theta, r float64) Vector {
	sin, cos := math.Sincos(theta)
	return Vector{X: cos * r, Y: sin * r}
}
