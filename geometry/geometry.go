// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package geometry holds the intersectable primitives: spheres and
// triangles, each wrapped by a Primitive that carries the world transform
// and material. All intersection math happens in object space; Primitive
// handles the transform in and out.
package geometry

import (
	"github.com/galvanizedlogic/muon/material"
	"github.com/galvanizedlogic/muon/math/lin"
)

// Vertex is a mesh vertex: a position and a shading normal. Position is
// always set; Normal is only meaningful for triangles loaded with
// computeVertexNormals.
type Vertex struct {
	Position lin.Vec3
	Normal   lin.Vec3
}

// Hit is the result of a successful ray-primitive intersection, expressed
// in world space.
type Hit struct {
	Distance float32
	Position lin.Vec3
	Normal   lin.Vec3
	Prim     *Primitive
}

// shape is the object-space intersection capability implemented by Sphere
// and Triangle.
type shape interface {
	intersect(r lin.Ray) (t float32, normal lin.Vec3, ok bool)
	bounds() lin.Bounds3
}

// Primitive wraps a Sphere or Triangle with its world transform and
// material. LightID is the index of the owning Light in the scene's light
// table, or -1 if this primitive is not part of an area light; the
// integrator uses it to recognize a BRDF-sampled ray that found a light
// (spec.md §4.4, §4.7 MIS).
type Primitive struct {
	Transform             lin.Mat4
	InvTransform          lin.Mat4
	InvTransposeTransform lin.Mat4
	Material              *material.Material
	LightID               int
	shape                 shape
}

// NewPrimitive wraps s with the given world transform. The caller supplies
// the forward transform; Primitive derives and caches its inverse and
// inverse-transpose once, at scene-build time.
func NewPrimitive(s shape, transform lin.Mat4, mat *material.Material) *Primitive {
	inv := transform.Invert()
	return &Primitive{
		Transform:             transform,
		InvTransform:          inv,
		InvTransposeTransform: inv.Transpose(),
		Material:              mat,
		LightID:               -1,
		shape:                 s,
	}
}

// ObjectBounds returns the AABB of the primitive in its own object space.
func (p *Primitive) ObjectBounds() lin.Bounds3 { return p.shape.bounds() }

// WorldBounds returns the AABB of the primitive in world space. Triangle
// overrides the default (transform each of object_bounds' corners) by
// transforming its three vertices directly, which produces a materially
// tighter box.
func (p *Primitive) WorldBounds() lin.Bounds3 {
	if tri, ok := p.shape.(*Triangle); ok {
		b := lin.PointBounds3(p.Transform.TransformPoint(tri.V0.Position))
		b = b.UnionPoint(p.Transform.TransformPoint(tri.V1.Position))
		b = b.UnionPoint(p.Transform.TransformPoint(tri.V2.Position))
		return b
	}
	return p.ObjectBounds().Transform(p.Transform)
}

// Intersect transforms r into object space, tests it against the
// underlying shape, and transforms a hit back into world space.
func (p *Primitive) Intersect(r lin.Ray) (Hit, bool) {
	objRay := r.Transform(p.InvTransform)
	t, n, ok := p.shape.intersect(objRay)
	if !ok {
		return Hit{}, false
	}
	objPos := objRay.At(t)
	worldPos := p.Transform.TransformPoint(objPos)
	worldNormal := p.InvTransposeTransform.TransformDirection(n).Unit()
	dist := worldPos.Sub(r.Origin).Len()
	return Hit{Distance: dist, Position: worldPos, Normal: worldNormal, Prim: p}, true
}

// intersectEpsilon guards near-grazing triangle/ray tests against the
// floating point noise spec.md §4.1 calls out ("reject when |n·ray.dir| < ε").
const intersectEpsilon = 1e-6
