// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package geometry

import (
	"math"

	"github.com/galvanizedlogic/muon/math/lin"
)

// Sphere is centered at Center with the given Radius, in object space.
type Sphere struct {
	Center lin.Vec3
	Radius float32
}

func sqrt32(x float32) float32 { return float32(math.Sqrt(float64(x))) }

func (s *Sphere) bounds() lin.Bounds3 {
	r := lin.Splat(s.Radius)
	return lin.Bounds3{Min: s.Center.Sub(r), Max: s.Center.Add(r)}
}

// intersect solves (o-c+t*d).(o-c+t*d) = r^2, spec.md §4.1.
func (s *Sphere) intersect(r lin.Ray) (float32, lin.Vec3, bool) {
	oc := r.Origin.Sub(s.Center)
	b := r.Dir.Dot(oc)
	c := oc.Dot(oc) - s.Radius*s.Radius
	delta := b*b - c
	if delta < 0 {
		return 0, lin.Vec3{}, false
	}
	sq := sqrt32(delta)
	t := -b - sq
	if t < 0 {
		t = -b + sq
	}
	if t < 0 {
		return 0, lin.Vec3{}, false
	}
	p := r.At(t)
	n := p.Sub(s.Center).Scale(1 / s.Radius)
	return t, n, true
}
