// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

import "testing"

func TestEmptyBoundsIsUnionIdentity(t *testing.T) {
	b := EmptyBounds3().UnionPoint(V3(1, 2, 3))
	if got := b.Min; got != V3(1, 2, 3) {
		t.Errorf("expected min {1 2 3}, got %v", got)
	}
	if got := b.Max; got != V3(1, 2, 3) {
		t.Errorf("expected max {1 2 3}, got %v", got)
	}
}

func TestUnionPoint(t *testing.T) {
	b := PointBounds3(V3(0, 0, 0)).UnionPoint(V3(2, -1, 3))
	if got := b.Min; got != V3(0, -1, 0) {
		t.Errorf("expected min {0 -1 0}, got %v", got)
	}
	if got := b.Max; got != V3(2, 0, 3) {
		t.Errorf("expected max {2 0 3}, got %v", got)
	}
}

func TestUnionBoxes(t *testing.T) {
	a := Bounds3{Min: V3(0, 0, 0), Max: V3(1, 1, 1)}
	b := Bounds3{Min: V3(-1, 2, 0), Max: V3(0, 3, 5)}
	u := a.Union(b)
	if got := u.Min; got != V3(-1, 0, 0) {
		t.Errorf("expected min {-1 0 0}, got %v", got)
	}
	if got := u.Max; got != V3(1, 3, 5) {
		t.Errorf("expected max {1 3 5}, got %v", got)
	}
}

func TestSurfaceArea(t *testing.T) {
	b := Bounds3{Min: V3(0, 0, 0), Max: V3(1, 2, 3)}
	want := float32(2 * (1*2 + 1*3 + 2*3))
	if got := b.SurfaceArea(); !Aeq(got, want) {
		t.Errorf("expected surface area %f, got %f", want, got)
	}
}

func TestBoundsMaxAxis(t *testing.T) {
	b := Bounds3{Min: V3(0, 0, 0), Max: V3(1, 5, 2)}
	if got := b.MaxAxis(); got != 1 {
		t.Errorf("expected max axis 1, got %d", got)
	}
}

func TestTransformAABB(t *testing.T) {
	b := Bounds3{Min: V3(-1, -1, -1), Max: V3(1, 1, 1)}
	m := RotateAxisAngle4(V3(0, 0, 1), Pi/4)
	out := b.Transform(m)
	// A 45 degree rotation of a unit cube about z roughly doubles the
	// footprint along x and y relative to the diagonal.
	if out.Min.X >= -1 || out.Max.X <= 1 {
		t.Errorf("expected rotated AABB to grow in x, got %v", out)
	}
	if !Aeq(out.Min.Z, -1) || !Aeq(out.Max.Z, 1) {
		t.Errorf("expected z extent unchanged by z-axis rotation, got %v", out)
	}
}

func TestSlabHitsCenteredBox(t *testing.T) {
	b := Bounds3{Min: V3(-1, -1, -1), Max: V3(1, 1, 1)}
	r := NewRay(V3(-5, 0, 0), V3(1, 0, 0))
	tMin, tMax, ok := b.Slab(r)
	if !ok {
		t.Fatal("expected ray through origin to hit the box")
	}
	if !Aeq(tMin, 4) || !Aeq(tMax, 6) {
		t.Errorf("expected tMin=4 tMax=6, got tMin=%f tMax=%f", tMin, tMax)
	}
}

func TestSlabMisses(t *testing.T) {
	b := Bounds3{Min: V3(-1, -1, -1), Max: V3(1, 1, 1)}
	r := NewRay(V3(-5, 5, 0), V3(1, 0, 0))
	if _, _, ok := b.Slab(r); ok {
		t.Error("expected parallel offset ray to miss the box")
	}
}

func TestHitRespectsDistanceCap(t *testing.T) {
	b := Bounds3{Min: V3(-1, -1, -1), Max: V3(1, 1, 1)}
	r := NewRay(V3(-5, 0, 0), V3(1, 0, 0))
	if b.Hit(r, 3) {
		t.Error("expected box beyond the distance cap to not register as a hit")
	}
	if !b.Hit(r, 10) {
		t.Error("expected box within the distance cap to register as a hit")
	}
}

func TestHitBehindRayMisses(t *testing.T) {
	b := Bounds3{Min: V3(-1, -1, -1), Max: V3(1, 1, 1)}
	r := NewRay(V3(5, 0, 0), V3(1, 0, 0))
	if b.Hit(r, Inf) {
		t.Error("expected box entirely behind the ray origin to miss")
	}
}

func TestHitFromInsideBox(t *testing.T) {
	b := Bounds3{Min: V3(-1, -1, -1), Max: V3(1, 1, 1)}
	r := NewRay(V3(0, 0, 0), V3(1, 0, 0))
	if !b.Hit(r, Inf) {
		t.Error("expected ray originating inside the box to hit")
	}
}
