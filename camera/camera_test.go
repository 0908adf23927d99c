// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package camera

import (
	"testing"

	"github.com/galvanizedlogic/muon/math/lin"
)

func TestCastRayThroughCenterLooksAtLookAt(t *testing.T) {
	c := New(lin.V3(0, 0, 5), lin.Zero, lin.V3(0, 1, 0), 90, 100, 100)
	r := c.CastRay(50, 50)
	want := lin.V3(0, 0, -1)
	if !r.Dir.Aeq(want) {
		t.Errorf("expected center ray direction %v, got %v", want, r.Dir)
	}
}

func TestCastRayTopLeftLeansUpLeft(t *testing.T) {
	c := New(lin.V3(0, 0, 5), lin.Zero, lin.V3(0, 1, 0), 90, 100, 100)
	r := c.CastRay(0, 0)
	if r.Dir.X >= 0 || r.Dir.Y <= 0 {
		t.Errorf("expected top-left ray to lean left and up, got %v", r.Dir)
	}
}

func TestCastRayIsNormalized(t *testing.T) {
	c := New(lin.V3(1, 2, 5), lin.Zero, lin.V3(0, 1, 0), 60, 200, 100)
	r := c.CastRay(37, 82)
	if !lin.Aeq(r.Dir.Len(), 1) {
		t.Errorf("expected unit-length direction, got length %f", r.Dir.Len())
	}
}
