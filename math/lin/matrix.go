// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// Matrix provides the 4x4 homogeneous transform used to place primitives,
// lights, and the camera in world space.
//
// Conforming to the conventions of the rest of this package, Mat4 is laid
// out Row-Major with explicitly addressable fields:
//
//	[Xx, Xy, Xz, Xw]  X-Axis
//	[Yx, Yy, Yz, Yw]  Y-Axis
//	[Zx, Zy, Zz, Zw]  Z-Axis
//	[Wx, Wy, Wz, Ww]  Translation, Ww == 1 for an affine transform.
//
// A point (x, y, z, 1) multiplied through a transform matrix produces:
//
//	x' = x*Xx + y*Yx + z*Zx + Wx
//	y' = x*Xy + y*Yy + z*Zy + Wy
//	z' = x*Xz + y*Yz + z*Zz + Wz
import "math"

// Mat4 is a 4x4 matrix used as a homogeneous transform.
type Mat4 struct {
	Xx, Xy, Xz, Xw float32
	Yx, Yy, Yz, Yw float32
	Zx, Zy, Zz, Zw float32
	Wx, Wy, Wz, Ww float32
}

// Identity4 returns the 4x4 identity matrix.
func Identity4() Mat4 {
	return Mat4{
		Xx: 1, Yy: 1, Zz: 1, Ww: 1,
	}
}

// Translate4 returns a transform that translates by (x, y, z).
func Translate4(x, y, z float32) Mat4 {
	m := Identity4()
	m.Wx, m.Wy, m.Wz = x, y, z
	return m
}

// Scale4 returns a transform that scales by (x, y, z).
func Scale4(x, y, z float32) Mat4 {
	m := Identity4()
	m.Xx, m.Yy, m.Zz = x, y, z
	return m
}

// RotateAxisAngle4 returns a transform that rotates by angle radians
// around the given axis, following the right hand rule. The axis need
// not be normalized.
func RotateAxisAngle4(axis Vec3, angle float32) Mat4 {
	a := axis.Unit()
	s, c := float32(math.Sin(float64(angle))), float32(math.Cos(float64(angle)))
	t := 1 - c

	m := Identity4()
	m.Xx = t*a.X*a.X + c
	m.Xy = t*a.X*a.Y + s*a.Z
	m.Xz = t*a.X*a.Z - s*a.Y

	m.Yx = t*a.X*a.Y - s*a.Z
	m.Yy = t*a.Y*a.Y + c
	m.Yz = t*a.Y*a.Z + s*a.X

	m.Zx = t*a.X*a.Z + s*a.Y
	m.Zy = t*a.Y*a.Z - s*a.X
	m.Zz = t*a.Z*a.Z + c
	return m
}

// Mult returns the matrix product m*r. With row vectors (v' = v * m * r)
// the receiver's transform is applied to a vector first and r's second.
func (m Mat4) Mult(r Mat4) Mat4 {
	return Mat4{
		Xx: m.Xx*r.Xx + m.Xy*r.Yx + m.Xz*r.Zx + m.Xw*r.Wx,
		Xy: m.Xx*r.Xy + m.Xy*r.Yy + m.Xz*r.Zy + m.Xw*r.Wy,
		Xz: m.Xx*r.Xz + m.Xy*r.Yz + m.Xz*r.Zz + m.Xw*r.Wz,
		Xw: m.Xx*r.Xw + m.Xy*r.Yw + m.Xz*r.Zw + m.Xw*r.Ww,

		Yx: m.Yx*r.Xx + m.Yy*r.Yx + m.Yz*r.Zx + m.Yw*r.Wx,
		Yy: m.Yx*r.Xy + m.Yy*r.Yy + m.Yz*r.Zy + m.Yw*r.Wy,
		Yz: m.Yx*r.Xz + m.Yy*r.Yz + m.Yz*r.Zz + m.Yw*r.Wz,
		Yw: m.Yx*r.Xw + m.Yy*r.Yw + m.Yz*r.Zw + m.Yw*r.Ww,

		Zx: m.Zx*r.Xx + m.Zy*r.Yx + m.Zz*r.Zx + m.Zw*r.Wx,
		Zy: m.Zx*r.Xy + m.Zy*r.Yy + m.Zz*r.Zy + m.Zw*r.Wy,
		Zz: m.Zx*r.Xz + m.Zy*r.Yz + m.Zz*r.Zz + m.Zw*r.Wz,
		Zw: m.Zx*r.Xw + m.Zy*r.Yw + m.Zz*r.Zw + m.Zw*r.Ww,

		Wx: m.Wx*r.Xx + m.Wy*r.Yx + m.Wz*r.Zx + m.Ww*r.Wx,
		Wy: m.Wx*r.Xy + m.Wy*r.Yy + m.Wz*r.Zy + m.Ww*r.Wy,
		Wz: m.Wx*r.Xz + m.Wy*r.Yz + m.Wz*r.Zz + m.Ww*r.Wz,
		Ww: m.Wx*r.Xw + m.Wy*r.Yw + m.Wz*r.Zw + m.Ww*r.Ww,
	}
}

// Transpose returns the transpose of m.
func (m Mat4) Transpose() Mat4 {
	return Mat4{
		Xx: m.Xx, Xy: m.Yx, Xz: m.Zx, Xw: m.Wx,
		Yx: m.Xy, Yy: m.Yy, Yz: m.Zy, Yw: m.Wy,
		Zx: m.Xz, Zy: m.Yz, Zz: m.Zz, Zw: m.Wz,
		Wx: m.Xw, Wy: m.Yw, Wz: m.Zw, Ww: m.Ww,
	}
}

// elements returns m as a 16 element row-major array for cofactor math.
func (m Mat4) elements() [16]float32 {
	return [16]float32{
		m.Xx, m.Xy, m.Xz, m.Xw,
		m.Yx, m.Yy, m.Yz, m.Yw,
		m.Zx, m.Zy, m.Zz, m.Zw,
		m.Wx, m.Wy, m.Wz, m.Ww,
	}
}

func fromElements(e [16]float32) Mat4 {
	return Mat4{
		Xx: e[0], Xy: e[1], Xz: e[2], Xw: e[3],
		Yx: e[4], Yy: e[5], Yz: e[6], Yw: e[7],
		Zx: e[8], Zy: e[9], Zz: e[10], Zw: e[11],
		Wx: e[12], Wy: e[13], Wz: e[14], Ww: e[15],
	}
}

// Invert returns the inverse of m using cofactor expansion. Every
// primitive, light, and camera transform is built once during scene build
// and inverted at most a handful of times, so this general (if not the
// fastest possible) implementation is adequate. m is assumed invertible;
// scene transforms built from translate/rotate/scale are never singular.
func (m Mat4) Invert() Mat4 {
	e := m.elements()
	var inv [16]float32

	inv[0] = e[5]*e[10]*e[15] - e[5]*e[11]*e[14] - e[9]*e[6]*e[15] + e[9]*e[7]*e[14] + e[13]*e[6]*e[11] - e[13]*e[7]*e[10]
	inv[4] = -e[4]*e[10]*e[15] + e[4]*e[11]*e[14] + e[8]*e[6]*e[15] - e[8]*e[7]*e[14] - e[12]*e[6]*e[11] + e[12]*e[7]*e[10]
	inv[8] = e[4]*e[9]*e[15] - e[4]*e[11]*e[13] - e[8]*e[5]*e[15] + e[8]*e[7]*e[13] + e[12]*e[5]*e[11] - e[12]*e[7]*e[9]
	inv[12] = -e[4]*e[9]*e[14] + e[4]*e[10]*e[13] + e[8]*e[5]*e[14] - e[8]*e[6]*e[13] - e[12]*e[5]*e[10] + e[12]*e[6]*e[9]

	inv[1] = -e[1]*e[10]*e[15] + e[1]*e[11]*e[14] + e[9]*e[2]*e[15] - e[9]*e[3]*e[14] - e[13]*e[2]*e[11] + e[13]*e[3]*e[10]
	inv[5] = e[0]*e[10]*e[15] - e[0]*e[11]*e[14] - e[8]*e[2]*e[15] + e[8]*e[3]*e[14] + e[12]*e[2]*e[11] - e[12]*e[3]*e[10]
	inv[9] = -e[0]*e[9]*e[15] + e[0]*e[11]*e[13] + e[8]*e[1]*e[15] - e[8]*e[3]*e[13] - e[12]*e[1]*e[11] + e[12]*e[3]*e[9]
	inv[13] = e[0]*e[9]*e[14] - e[0]*e[10]*e[13] - e[8]*e[1]*e[14] + e[8]*e[2]*e[13] + e[12]*e[1]*e[10] - e[12]*e[2]*e[9]

	inv[2] = e[1]*e[6]*e[15] - e[1]*e[7]*e[14] - e[5]*e[2]*e[15] + e[5]*e[3]*e[14] + e[13]*e[2]*e[7] - e[13]*e[3]*e[6]
	inv[6] = -e[0]*e[6]*e[15] + e[0]*e[7]*e[14] + e[4]*e[2]*e[15] - e[4]*e[3]*e[14] - e[12]*e[2]*e[7] + e[12]*e[3]*e[6]
	inv[10] = e[0]*e[5]*e[15] - e[0]*e[7]*e[13] - e[4]*e[1]*e[15] + e[4]*e[3]*e[13] + e[12]*e[1]*e[7] - e[12]*e[3]*e[5]
	inv[14] = -e[0]*e[5]*e[14] + e[0]*e[6]*e[13] + e[4]*e[1]*e[14] - e[4]*e[2]*e[13] - e[12]*e[1]*e[6] + e[12]*e[2]*e[5]

	inv[3] = -e[1]*e[6]*e[11] + e[1]*e[7]*e[10] + e[5]*e[2]*e[11] - e[5]*e[3]*e[10] - e[9]*e[2]*e[7] + e[9]*e[3]*e[6]
	inv[7] = e[0]*e[6]*e[11] - e[0]*e[7]*e[10] - e[4]*e[2]*e[11] + e[4]*e[3]*e[10] + e[8]*e[2]*e[7] - e[8]*e[3]*e[6]
	inv[11] = -e[0]*e[5]*e[11] + e[0]*e[7]*e[9] + e[4]*e[1]*e[11] - e[4]*e[3]*e[9] - e[8]*e[1]*e[7] + e[8]*e[3]*e[5]
	inv[15] = e[0]*e[5]*e[10] - e[0]*e[6]*e[9] - e[4]*e[1]*e[10] + e[4]*e[2]*e[9] + e[8]*e[1]*e[6] - e[8]*e[2]*e[5]

	det := e[0]*inv[0] + e[1]*inv[4] + e[2]*inv[8] + e[3]*inv[12]
	if det == 0 {
		return Identity4()
	}
	invDet := 1 / det
	for i := range inv {
		inv[i] *= invDet
	}
	return fromElements(inv)
}

// TransformPoint applies m to the point p, including translation.
func (m Mat4) TransformPoint(p Vec3) Vec3 {
	return Vec3{
		X: p.X*m.Xx + p.Y*m.Yx + p.Z*m.Zx + m.Wx,
		Y: p.X*m.Xy + p.Y*m.Yy + p.Z*m.Zy + m.Wy,
		Z: p.X*m.Xz + p.Y*m.Yz + p.Z*m.Zz + m.Wz,
	}
}

// TransformDirection applies m to the direction d, ignoring translation.
func (m Mat4) TransformDirection(d Vec3) Vec3 {
	return Vec3{
		X: d.X*m.Xx + d.Y*m.Yx + d.Z*m.Zx,
		Y: d.X*m.Xy + d.Y*m.Yy + d.Z*m.Zy,
		Z: d.X*m.Xz + d.Y*m.Yz + d.Z*m.Zz,
	}
}
