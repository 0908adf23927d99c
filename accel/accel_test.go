// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package accel

import (
	"testing"

	"github.com/galvanizedlogic/muon/geometry"
	"github.com/galvanizedlogic/muon/material"
	"github.com/galvanizedlogic/muon/math/lin"
)

func gridSpheres(n int) []*geometry.Primitive {
	prims := make([]*geometry.Primitive, 0, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			s := &geometry.Sphere{Center: lin.Zero, Radius: 0.4}
			transform := lin.Translate4(float32(i)*2, float32(j)*2, 0)
			prims = append(prims, geometry.NewPrimitive(s, transform, &material.Material{}))
		}
	}
	return prims
}

func checkInvariants(t *testing.T, b *BVH) {
	t.Helper()
	seen := make(map[int]bool)
	var walk func(idx int)
	walk = func(idx int) {
		n := b.nodes[idx]
		if n.count > 0 {
			for i := n.start; i < n.start+n.count; i++ {
				if seen[int(i)] {
					t.Errorf("primitive %d referenced by two leaves", i)
				}
				seen[int(i)] = true
			}
			return
		}
		left, right := b.nodes[n.left], b.nodes[n.right]
		if n.bounds.Min.X > left.bounds.Min.X+1e-4 || n.bounds.Min.X > right.bounds.Min.X+1e-4 {
			t.Errorf("internal node bounds do not enclose children: %v vs %v/%v", n.bounds, left.bounds, right.bounds)
		}
		walk(int(n.left))
		walk(int(n.right))
	}
	walk(0)
	if len(seen) != len(b.prims) {
		t.Errorf("expected every primitive covered by exactly one leaf, got %d of %d", len(seen), len(b.prims))
	}
}

func TestBVHInvariantsAllStrategies(t *testing.T) {
	prims := gridSpheres(4)
	for _, strat := range []Strategy{Uniform, Midpoint, SAH} {
		b := Build(prims, strat)
		checkInvariants(t, b)
	}
}

func TestBVHMatchesLinear(t *testing.T) {
	prims := gridSpheres(5)
	linear := NewLinear(prims)
	bvh := Build(prims, SAH)

	ws1, ws2 := &Workspace{}, &Workspace{}
	r := lin.NewRay(lin.V3(4, 4, 10), lin.V3(0, 0, -1))
	hitLin, okLin := linear.Intersect(r, ws1)
	hitBVH, okBVH := bvh.Intersect(r, ws2)
	if okLin != okBVH {
		t.Fatalf("linear hit=%v bvh hit=%v mismatch", okLin, okBVH)
	}
	if okLin && !hitLin.Position.Aeq(hitBVH.Position) {
		t.Errorf("linear position %v != bvh position %v", hitLin.Position, hitBVH.Position)
	}
}

func TestBVHAnyHit(t *testing.T) {
	prims := gridSpheres(3)
	bvh := Build(prims, Midpoint)
	ws := &Workspace{}
	hit := lin.NewRay(lin.V3(0, 0, 10), lin.V3(0, 0, -1))
	if !bvh.IntersectAny(hit, lin.Inf, ws) {
		t.Error("expected any-hit to find a sphere")
	}
	miss := lin.NewRay(lin.V3(100, 100, 10), lin.V3(0, 0, -1))
	if bvh.IntersectAny(miss, lin.Inf, ws) {
		t.Error("expected any-hit to find nothing far from the grid")
	}
}

func TestEmptyBVH(t *testing.T) {
	b := Build(nil, SAH)
	ws := &Workspace{}
	r := lin.NewRay(lin.Zero, lin.V3(0, 0, -1))
	if _, ok := b.Intersect(r, ws); ok {
		t.Error("expected an empty BVH to report no hits")
	}
}
