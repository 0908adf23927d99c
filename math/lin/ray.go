// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// Ray is a parametric ray: origin + t*direction. Direction is expected to
// be unit length; callers that build a Ray from unnormalized input should
// call Unit() on the direction first.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// NewRay returns a ray with a normalized direction.
func NewRay(origin, dir Vec3) Ray {
	return Ray{Origin: origin, Dir: dir.Unit()}
}

// At returns the point on the ray at distance t.
func (r Ray) At(t float32) Vec3 {
	return r.Origin.Add(r.Dir.Scale(t))
}

// Transform returns a new ray with the origin transformed as a point and
// the direction transformed as a vector and renormalized.
func (r Ray) Transform(m Mat4) Ray {
	return Ray{
		Origin: m.TransformPoint(r.Origin),
		Dir:    m.TransformDirection(r.Dir).Unit(),
	}
}
