// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package accel

import (
	"github.com/galvanizedlogic/muon/geometry"
	"github.com/galvanizedlogic/muon/math/lin"
)

// Accelerator is implemented by Linear and BVH: the two closed variants of
// spec.md §9 "Acceleration {Linear, BVH}".
type Accelerator interface {
	Bounds() lin.Bounds3
	Intersect(r lin.Ray, ws *Workspace) (geometry.Hit, bool)
	IntersectAny(r lin.Ray, maxDist float32, ws *Workspace) bool
}

var (
	_ Accelerator = (*Linear)(nil)
	_ Accelerator = (*BVH)(nil)
)
