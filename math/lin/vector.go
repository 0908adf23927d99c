// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// Vector provides the 3 element vector math needed for ray tracing: camera
// and primitive geometry, shading normals, and linear RGB radiance.

import "math"

// Vec3 is a 3 element vector. Depending on context it is used as a point,
// a direction, or a linear RGB color.
type Vec3 struct {
	X float32
	Y float32
	Z float32
}

// Zero is the additive identity vector.
var Zero = Vec3{}

// One is the vector with all components set to 1.
var One = Vec3{X: 1, Y: 1, Z: 1}

// V3 is a convenience constructor for a Vec3.
func V3(x, y, z float32) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// Splat returns a vector with all three components set to s.
func Splat(s float32) Vec3 { return Vec3{X: s, Y: s, Z: s} }

// Eq (==) returns true if every element of v has the same value as the
// corresponding element of a.
func (v Vec3) Eq(a Vec3) bool { return v.X == a.X && v.Y == a.Y && v.Z == a.Z }

// Aeq (~=) almost-equals returns true if every element of v is close enough
// to the corresponding element of a that the difference does not matter.
func (v Vec3) Aeq(a Vec3) bool { return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) && Aeq(v.Z, a.Z) }

// Add (+) returns the sum of v and a.
func (v Vec3) Add(a Vec3) Vec3 { return Vec3{v.X + a.X, v.Y + a.Y, v.Z + a.Z} }

// Sub (-) returns v minus a.
func (v Vec3) Sub(a Vec3) Vec3 { return Vec3{v.X - a.X, v.Y - a.Y, v.Z - a.Z} }

// Mul returns the componentwise product of v and a. Used for tinting
// radiance by a surface color.
func (v Vec3) Mul(a Vec3) Vec3 { return Vec3{v.X * a.X, v.Y * a.Y, v.Z * a.Z} }

// Div returns the componentwise quotient of v by a.
func (v Vec3) Div(a Vec3) Vec3 { return Vec3{v.X / a.X, v.Y / a.Y, v.Z / a.Z} }

// Scale (*) returns v with every element multiplied by s.
func (v Vec3) Scale(s float32) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Neg (-) returns the negation of v.
func (v Vec3) Neg() Vec3 { return Vec3{-v.X, -v.Y, -v.Z} }

// Abs returns v with every element replaced by its absolute value.
func (v Vec3) Abs() Vec3 { return Vec3{Abs32(v.X), Abs32(v.Y), Abs32(v.Z)} }

// Min returns the componentwise minimum of v and a.
func (v Vec3) Min(a Vec3) Vec3 { return Vec3{Min(v.X, a.X), Min(v.Y, a.Y), Min(v.Z, a.Z)} }

// Max returns the componentwise maximum of v and a.
func (v Vec3) Max(a Vec3) Vec3 { return Vec3{Max(v.X, a.X), Max(v.Y, a.Y), Max(v.Z, a.Z)} }

// Dot returns the dot product of v and a.
func (v Vec3) Dot(a Vec3) float32 { return v.X*a.X + v.Y*a.Y + v.Z*a.Z }

// Cross returns the cross product of v and a: a vector perpendicular to
// both inputs following the right hand rule.
func (v Vec3) Cross(a Vec3) Vec3 {
	return Vec3{
		v.Y*a.Z - v.Z*a.Y,
		v.Z*a.X - v.X*a.Z,
		v.X*a.Y - v.Y*a.X,
	}
}

// Len returns the length (magnitude) of v.
func (v Vec3) Len() float32 { return float32(math.Sqrt(float64(v.Dot(v)))) }

// LenSqr returns the squared length of v, avoiding the square root.
func (v Vec3) LenSqr() float32 { return v.Dot(v) }

// Unit returns v scaled to unit length. v is returned unchanged if its
// length is zero.
func (v Vec3) Unit() Vec3 {
	length := v.Len()
	if length == 0 {
		return v
	}
	return v.Scale(1 / length)
}

// Lerp returns the linear interpolation between v and a at the given
// fraction, which is expected to be in [0, 1] but is not clamped.
func (v Vec3) Lerp(a Vec3, fraction float32) Vec3 {
	return Vec3{
		Lerp(v.X, a.X, fraction),
		Lerp(v.Y, a.Y, fraction),
		Lerp(v.Z, a.Z, fraction),
	}
}

// MaxComponent returns the largest of the three components of v.
func (v Vec3) MaxComponent() float32 { return Max(v.X, Max(v.Y, v.Z)) }

// MaxAxis returns 0, 1, or 2 for the component of v (by absolute value)
// with the largest magnitude, ties broken x > y > z.
func (v Vec3) MaxAxis() int {
	ax, ay, az := Abs32(v.X), Abs32(v.Y), Abs32(v.Z)
	switch {
	case ax >= ay && ax >= az:
		return 0
	case ay >= az:
		return 1
	default:
		return 2
	}
}

// Axis returns the component of v selected by axis (0=x, 1=y, 2=z).
func (v Vec3) Axis(axis int) float32 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

// Reflect returns v reflected about the unit normal n, following the
// convention reflect(d, n) = d - 2*(d.n)*n.
func (v Vec3) Reflect(n Vec3) Vec3 {
	return v.Sub(n.Scale(2 * v.Dot(n)))
}

// IsZero returns true if every component of v is exactly zero.
func (v Vec3) IsZero() bool { return v.X == 0 && v.Y == 0 && v.Z == 0 }
