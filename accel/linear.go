// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package accel

import (
	"github.com/galvanizedlogic/muon/geometry"
	"github.com/galvanizedlogic/muon/math/lin"
)

// Linear is the brute-force accelerator: a flat scan of every primitive.
// Grounded on original_source/muon/acceleration.h's Linear variant; kept as
// a first-class type because spec.md §8 scenario 3 requires it as the
// regression oracle for BVH correctness.
type Linear struct {
	prims  []*geometry.Primitive
	bounds lin.Bounds3
}

// NewLinear builds a Linear accelerator over prims (no reordering).
func NewLinear(prims []*geometry.Primitive) *Linear {
	b := lin.EmptyBounds3()
	for _, p := range prims {
		b = b.Union(p.WorldBounds())
	}
	return &Linear{prims: prims, bounds: b}
}

func (l *Linear) Bounds() lin.Bounds3 { return l.bounds }

func (l *Linear) Intersect(r lin.Ray, ws *Workspace) (geometry.Hit, bool) {
	best, found := geometry.Hit{}, false
	closest := lin.Inf
	for _, p := range l.prims {
		ws.PrimitiveTests++
		if hit, ok := p.Intersect(r); ok && hit.Distance < closest {
			best, found, closest = hit, true, hit.Distance
		}
	}
	return best, found
}

func (l *Linear) IntersectAny(r lin.Ray, maxDist float32, ws *Workspace) bool {
	for _, p := range l.prims {
		ws.PrimitiveTests++
		if hit, ok := p.Intersect(r); ok && hit.Distance > 0 && hit.Distance < maxDist {
			return true
		}
	}
	return false
}
