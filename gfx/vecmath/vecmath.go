// Package vecmath holds the small value-type vectors used by the renderer.
//
// Vectors are plain values: every operation returns a new vector and none of
// them allocate.
package vecmath

import "math"

// Vec3 is a 3D vector.
//
// When a Vec3 carries a rotation, X is pitch, Y is yaw and Z is roll.
type Vec3 struct {
	X, Y, Z float64
}

// Vec2 is a screen-space coordinate in pixels.
type Vec2 struct {
	X, Y float64
}

func V3(x, y, z float64) Vec3 { return Vec3{X: x, Y: y, Z: z} }
func V2(x, y float64) Vec2    { return Vec2{X: x, Y: y} }

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Mul multiplies v and o component by component.
func (v Vec3) Mul(o Vec3) Vec3 { return Vec3{v.X * o.X, v.Y * o.Y, v.Z * o.Z} }

func (v Vec3) Dot(o Vec3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

// Lerp returns the point at parameter t on the segment from v to o.
func (v Vec3) Lerp(o Vec3, t float64) Vec3 { return v.Add(o.Sub(v).Scale(t)) }

// RotateY rotates v about the up axis so that a camera with yaw rad ends up
// looking down +Z.
func (v Vec3) RotateY(rad float64) Vec3 {
	s, c := math.Sincos(rad)
	return Vec3{
		X: v.X*c - v.Z*s,
		Y: v.Y,
		Z: v.X*s + v.Z*c,
	}
}

// RotateX rotates v about the right axis. Positive angles tilt the view up.
func (v Vec3) RotateX(rad float64) Vec3 {
	s, c := math.Sincos(rad)
	return Vec3{
		X: v.X,
		Y: v.Y*c - v.Z*s,
		Z: v.Y*s + v.Z*c,
	}
}

// Finite reports whether no component is NaN or infinite.
func (v Vec3) Finite() bool { return finite(v.X) && finite(v.Y) && finite(v.Z) }

func finite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
