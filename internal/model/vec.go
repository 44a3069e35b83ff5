package model

import "math"

// Vec3 represents a point or direction in world space.
// Value type, passed by value (immutable).
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// NewVec3 creates a Vec3 with the given coordinates.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Scale returns v scaled by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// WithY returns a new Vec3 with Y replaced (immutable pattern).
func (v Vec3) WithY(y float64) Vec3 {
	v.Y = y
	return v
}

// HorizontalDistanceSquared returns the squared distance to other on the XZ
// plane (no sqrt for performance). Combat range checks and target selection
// ignore height.
func (v Vec3) HorizontalDistanceSquared(other Vec3) float64 {
	dx := v.X - other.X
	dz := v.Z - other.Z
	return dx*dx + dz*dz
}

// HorizontalDistance returns the distance to other on the XZ plane.
func (v Vec3) HorizontalDistance(other Vec3) float64 {
	return math.Sqrt(v.HorizontalDistanceSquared(other))
}

// HorizontalDirectionTo returns the unit vector pointing from v to other on
// the XZ plane. Returns the zero vector when the points coincide.
func (v Vec3) HorizontalDirectionTo(other Vec3) Vec3 {
	dx := other.X - v.X
	dz := other.Z - v.Z
	dist := math.Sqrt(dx*dx + dz*dz)
	if dist == 0 {
		return Vec3{}
	}
	return Vec3{X: dx / dist, Z: dz / dist}
}
