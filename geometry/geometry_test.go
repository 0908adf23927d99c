// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package geometry

import (
	"testing"

	"github.com/galvanizedlogic/muon/material"
	"github.com/galvanizedlogic/muon/math/lin"
)

func TestSphereIntersectFromOutside(t *testing.T) {
	s := &Sphere{Center: lin.Zero, Radius: 1}
	p := NewPrimitive(s, lin.Identity4(), &material.Material{})
	r := lin.NewRay(lin.V3(0, 0, 5), lin.V3(0, 0, -1))
	hit, ok := p.Intersect(r)
	if !ok {
		t.Fatal("expected a hit")
	}
	if !hit.Position.Aeq(lin.V3(0, 0, 1)) {
		t.Errorf("expected hit position {0 0 1}, got %v", hit.Position)
	}
	if !hit.Normal.Aeq(lin.V3(0, 0, 1)) {
		t.Errorf("expected outward normal {0 0 1}, got %v", hit.Normal)
	}
}

func TestSphereIntersectFromInside(t *testing.T) {
	s := &Sphere{Center: lin.Zero, Radius: 1}
	p := NewPrimitive(s, lin.Identity4(), &material.Material{})
	r := lin.NewRay(lin.Zero, lin.V3(1, 0, 0))
	if _, ok := p.Intersect(r); !ok {
		t.Fatal("expected ray from inside the sphere to hit the far side")
	}
}

func TestSphereMiss(t *testing.T) {
	s := &Sphere{Center: lin.Zero, Radius: 1}
	p := NewPrimitive(s, lin.Identity4(), &material.Material{})
	r := lin.NewRay(lin.V3(5, 5, 5), lin.V3(1, 0, 0))
	if _, ok := p.Intersect(r); ok {
		t.Error("expected a miss")
	}
}

func TestTriangleIntersectCenter(t *testing.T) {
	tri := NewTriangle(
		Vertex{Position: lin.V3(-1, -1, 0)},
		Vertex{Position: lin.V3(1, -1, 0)},
		Vertex{Position: lin.V3(0, 1, 0)},
		false,
	)
	p := NewPrimitive(tri, lin.Identity4(), &material.Material{})
	r := lin.NewRay(lin.V3(0, -1.0/3.0, 5), lin.V3(0, 0, -1))
	hit, ok := p.Intersect(r)
	if !ok {
		t.Fatal("expected ray through the triangle's center to hit")
	}
	if !hit.Position.Aeq(lin.V3(0, -1.0/3.0, 0)) {
		t.Errorf("unexpected hit position %v", hit.Position)
	}
}

func TestTriangleMissOutsideEdge(t *testing.T) {
	tri := NewTriangle(
		Vertex{Position: lin.V3(-1, -1, 0)},
		Vertex{Position: lin.V3(1, -1, 0)},
		Vertex{Position: lin.V3(0, 1, 0)},
		false,
	)
	p := NewPrimitive(tri, lin.Identity4(), &material.Material{})
	r := lin.NewRay(lin.V3(5, 5, 5), lin.V3(0, 0, -1))
	if _, ok := p.Intersect(r); ok {
		t.Error("expected a ray outside every edge to miss")
	}
}

func TestTriangleVertexNormalInterpolation(t *testing.T) {
	tri := NewTriangle(
		Vertex{Position: lin.V3(-1, -1, 0), Normal: lin.V3(0, 0, 1)},
		Vertex{Position: lin.V3(1, -1, 0), Normal: lin.V3(0, 0, 1)},
		Vertex{Position: lin.V3(0, 1, 0), Normal: lin.V3(1, 0, 0)},
		true,
	)
	p := NewPrimitive(tri, lin.Identity4(), &material.Material{})
	r := lin.NewRay(lin.V3(0, 1, 5), lin.V3(0, 0, -1))
	hit, ok := p.Intersect(r)
	if !ok {
		t.Fatal("expected a hit at the apex")
	}
	if hit.Normal.X <= 0 {
		t.Errorf("expected interpolated normal near the apex to lean toward {1 0 0}, got %v", hit.Normal)
	}
}

func TestWorldBoundsContainsTransformedHit(t *testing.T) {
	s := &Sphere{Center: lin.Zero, Radius: 1}
	transform := lin.Scale4(2, 2, 2).Mult(lin.Translate4(5, 0, 0))
	p := NewPrimitive(s, transform, &material.Material{})
	wb := p.WorldBounds()
	r := lin.NewRay(lin.V3(5, 0, 10), lin.V3(0, 0, -1))
	hit, ok := p.Intersect(r)
	if !ok {
		t.Fatal("expected a hit")
	}
	if hit.Position.X < wb.Min.X || hit.Position.X > wb.Max.X ||
		hit.Position.Y < wb.Min.Y || hit.Position.Y > wb.Max.Y ||
		hit.Position.Z < wb.Min.Z || hit.Position.Z > wb.Max.Z {
		t.Errorf("hit position %v outside world bounds %v", hit.Position, wb)
	}
}

func TestTriangleWorldBoundsTighterThanObjectBoundsTransform(t *testing.T) {
	tri := NewTriangle(
		Vertex{Position: lin.V3(-1, -1, 0)},
		Vertex{Position: lin.V3(1, -1, 0)},
		Vertex{Position: lin.V3(0, 1, 0)},
		false,
	)
	p := NewPrimitive(tri, lin.RotateAxisAngle4(lin.V3(0, 0, 1), lin.Pi/4), &material.Material{})
	tight := p.WorldBounds()
	loose := p.ObjectBounds().Transform(p.Transform)
	if tight.SurfaceArea() > loose.SurfaceArea() {
		t.Errorf("expected triangle-specific world bounds (%v) to not exceed the generic AABB transform (%v)", tight, loose)
	}
}
