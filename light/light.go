// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package light holds the three light variants (directional, point, quad
// area light) and the ShadingInfo query every integrator uses to shade
// against them.
package light

import "github.com/galvanizedlogic/muon/math/lin"

// Kind selects which light variant a Light holds.
type Kind int

const (
	Directional Kind = iota
	Point
	Quad
)

// ShadingInfo is what a Light reports at a query position: its color, the
// unit direction from the point toward the light, the distance to it
// (+Inf for directional lights), and, for area lights, the light's area.
type ShadingInfo struct {
	Color    lin.Vec3
	Dir      lin.Vec3
	Distance float32
	Area     float32
}

// Light is a tagged union over the three variants spec.md §4.4 names.
// Only the fields relevant to Kind are meaningful.
type Light struct {
	Kind  Kind
	Color lin.Vec3

	// Directional
	Direction lin.Vec3 // the direction light travels; direction-to-light is its negation

	// Point
	Position lin.Vec3
	Atten    lin.Vec3 // (constant, linear, quadratic)

	// Quad
	Corner, Edge0, Edge1 lin.Vec3
	normal               lin.Vec3 // cached edge1 x edge0
	area                 float32
}

// NewQuad returns a quad area light spanning corner+edge0 and corner+edge1.
func NewQuad(corner, edge0, edge1, color lin.Vec3) *Light {
	n := edge1.Cross(edge0)
	return &Light{
		Kind:   Quad,
		Color:  color,
		Corner: corner, Edge0: edge0, Edge1: edge1,
		normal: n.Unit(),
		area:   edge0.Cross(edge1).Len(),
	}
}

// Area returns the light's surface area (0 for non-area lights).
func (l *Light) Area() float32 { return l.area }

// Normal returns the quad's plane normal (undefined for non-quad lights).
func (l *Light) Normal() lin.Vec3 { return l.normal }

// ShadingAt reports the light's contribution as seen from p.
func (l *Light) ShadingAt(p lin.Vec3) ShadingInfo {
	switch l.Kind {
	case Directional:
		return ShadingInfo{Color: l.Color, Dir: l.Direction.Scale(-1).Unit(), Distance: lin.Inf}
	case Point:
		d := l.Position.Sub(p)
		dist := d.Len()
		c, lAtt, q := l.Atten.X, l.Atten.Y, l.Atten.Z
		atten := c + lAtt*dist + q*dist*dist
		color := l.Color
		if atten > 0 {
			color = l.Color.Scale(1 / atten)
		}
		return ShadingInfo{Color: color, Dir: d.Scale(1 / dist), Distance: dist}
	default: // Quad
		center := l.Corner.Add(l.Edge0.Scale(0.5)).Add(l.Edge1.Scale(0.5))
		d := center.Sub(p)
		dist := d.Len()
		return ShadingInfo{Color: l.Color, Dir: d.Scale(1 / dist), Distance: dist, Area: l.area}
	}
}

// SamplePoint returns a point on the quad at stratum (i,j) of a
// sqrtN x sqrtN grid, offset by (u,v) in [0,1)^2 within that stratum.
// sqrtN = 1 for unstratified sampling.
func (l *Light) SamplePoint(i, j, sqrtN int, u, v float32) lin.Vec3 {
	n := float32(sqrtN)
	pu := (float32(i) + u) / n
	pv := (float32(j) + v) / n
	return l.Corner.Add(l.Edge0.Scale(pu)).Add(l.Edge1.Scale(pv))
}

// IntersectQuad tests r against the light's quad plane, for the MIS PDF
// lookup of spec.md §4.4: the quad plane is (p-corner).normal = 0; reject
// parallel rays; parameterize by (u,v) along the edges and require
// 0 < u < |edge0|, 0 < v < |edge1|.
func (l *Light) IntersectQuad(r lin.Ray) (t float32, ok bool) {
	denom := r.Dir.Dot(l.normal)
	if denom > -1e-6 && denom < 1e-6 {
		return 0, false
	}
	t = l.Corner.Sub(r.Origin).Dot(l.normal) / denom
	if t < 0 {
		return 0, false
	}
	p := r.At(t)
	rel := p.Sub(l.Corner)
	e0Len, e1Len := l.Edge0.Len(), l.Edge1.Len()
	u := rel.Dot(l.Edge0.Unit())
	v := rel.Dot(l.Edge1.Unit())
	if u <= 0 || u >= e0Len || v <= 0 || v >= e1Len {
		return 0, false
	}
	return t, true
}
