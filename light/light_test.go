// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package light

import (
	"testing"

	"github.com/galvanizedlogic/muon/math/lin"
)

func TestDirectionalShadingHasInfiniteDistance(t *testing.T) {
	l := &Light{Kind: Directional, Color: lin.V3(1, 1, 1), Direction: lin.V3(0, -1, 0)}
	info := l.ShadingAt(lin.Zero)
	if info.Distance != lin.Inf {
		t.Errorf("expected infinite distance, got %f", info.Distance)
	}
	if !info.Dir.Aeq(lin.V3(0, 1, 0)) {
		t.Errorf("expected direction-to-light {0 1 0}, got %v", info.Dir)
	}
}

func TestPointLightAttenuation(t *testing.T) {
	l := &Light{Kind: Point, Color: lin.V3(1, 1, 1), Position: lin.V3(0, 10, 0), Atten: lin.V3(1, 0, 0.1)}
	info := l.ShadingAt(lin.Zero)
	want := float32(1) / (1 + 0.1*100)
	if !lin.Aeq(info.Color.X, want) {
		t.Errorf("expected attenuated color %f, got %f", want, info.Color.X)
	}
}

func TestQuadIntersectionInsideAndOutside(t *testing.T) {
	q := NewQuad(lin.V3(-1, 5, -1), lin.V3(2, 0, 0), lin.V3(0, 0, 2), lin.V3(1, 1, 1))
	hit := lin.NewRay(lin.V3(0, 0, 0), lin.V3(0, 1, 0))
	if _, ok := q.IntersectQuad(hit); !ok {
		t.Error("expected a ray straight up through the quad's center to hit")
	}
	miss := lin.NewRay(lin.V3(10, 0, 10), lin.V3(0, 1, 0))
	if _, ok := q.IntersectQuad(miss); ok {
		t.Error("expected a ray outside the quad's footprint to miss")
	}
}

func TestQuadAreaMatchesEdgeCrossProduct(t *testing.T) {
	q := NewQuad(lin.Zero, lin.V3(2, 0, 0), lin.V3(0, 3, 0), lin.One)
	if !lin.Aeq(q.Area(), 6) {
		t.Errorf("expected area 6, got %f", q.Area())
	}
}
