// Package core provides fundamental types shared by the pet engine and the
// platform layers. It has no external dependencies (no Bubble Tea, no SQL) so
// simulation code stays pure and testable.
package core

import "math"

// Vec2 is a 2D vector in desktop pixel space. Y grows downward.
type Vec2 struct {
	X, Y float64
}

// V is shorthand for constructing a Vec2.
func V(x, y float64) Vec2 {
	return Vec2{X: x, Y: y}
}

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 {
	return Vec2{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v multiplied by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{X: v.X * s, Y: v.Y * s}
}

// Len returns the Euclidean length of v.
func (v Vec2) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Bounds are the axis-aligned limits a pet's position may occupy.
// They are expressed in position space: a pet standing on the floor has
// Position.Y == Floor, a pet against the right wall has Position.X == Right.
type Bounds struct {
	Left    float64
	Right   float64
	Ceiling float64
	Floor   float64
}

// Width returns the horizontal extent of the bounds.
func (b Bounds) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of the bounds.
func (b Bounds) Height() float64 {
	return b.Floor - b.Ceiling
}

// Clamp restricts a value to be within [min, max].
func Clamp(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}

// Max returns the larger of two integers.
func Max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
