// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package geometry

import "github.com/galvanizedlogic/muon/math/lin"

// Triangle is a flat or Phong-interpolated triangle in object space.
// UseVertexNormals selects barycentric interpolation of the three vertex
// normals (set when the scene requested computeVertexNormals); otherwise
// shading uses the cached, normalized face normal.
type Triangle struct {
	V0, V1, V2       Vertex
	UseVertexNormals bool

	faceNormal lin.Vec3 // cached, unnormalized: (v1-v0) x (v2-v0)
	nLenSqr    float32  // cached dot(faceNormal, faceNormal)
}

// NewTriangle caches the unnormalized face normal once at construction.
func NewTriangle(v0, v1, v2 Vertex, useVertexNormals bool) *Triangle {
	n := v1.Position.Sub(v0.Position).Cross(v2.Position.Sub(v0.Position))
	return &Triangle{
		V0: v0, V1: v1, V2: v2,
		UseVertexNormals: useVertexNormals,
		faceNormal:       n,
		nLenSqr:          n.Dot(n),
	}
}

func (tr *Triangle) bounds() lin.Bounds3 {
	b := lin.PointBounds3(tr.V0.Position)
	b = b.UnionPoint(tr.V1.Position)
	b = b.UnionPoint(tr.V2.Position)
	return b
}

// intersect implements the Möller-style geometric test of spec.md §4.1.
func (tr *Triangle) intersect(r lin.Ray) (float32, lin.Vec3, bool) {
	n := tr.faceNormal
	denom := r.Dir.Dot(n)
	if denom < intersectEpsilon && denom > -intersectEpsilon {
		return 0, lin.Vec3{}, false
	}
	t := n.Dot(tr.V0.Position.Sub(r.Origin)) / denom
	if t < 0 {
		return 0, lin.Vec3{}, false
	}
	p := r.At(t)

	c0 := tr.V1.Position.Sub(tr.V0.Position).Cross(p.Sub(tr.V0.Position))
	c1 := tr.V2.Position.Sub(tr.V1.Position).Cross(p.Sub(tr.V1.Position))
	c2 := tr.V0.Position.Sub(tr.V2.Position).Cross(p.Sub(tr.V2.Position))

	d0, d1, d2 := n.Dot(c0), n.Dot(c1), n.Dot(c2)
	if d0 < 0 || d1 < 0 || d2 < 0 {
		return 0, lin.Vec3{}, false
	}

	if !tr.UseVertexNormals || tr.nLenSqr == 0 {
		return t, n.Unit(), true
	}
	w2, w0, w1 := d0/tr.nLenSqr, d1/tr.nLenSqr, d2/tr.nLenSqr
	interpolated := tr.V0.Normal.Scale(w0).Add(tr.V1.Normal.Scale(w1)).Add(tr.V2.Normal.Scale(w2))
	return t, interpolated.Unit(), true
}
