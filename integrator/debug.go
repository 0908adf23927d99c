// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package integrator

import (
	"math/rand"

	"github.com/galvanizedlogic/muon/accel"
	"github.com/galvanizedlogic/muon/math/lin"
)

// normalsIntegrator visualizes hit normals, spec.md §4.7.
type normalsIntegrator struct{ base }

func (n *normalsIntegrator) Trace(r lin.Ray) lin.Vec3 {
	if depthExceeds(n.sc, 0) {
		return lin.Zero
	}
	hit, ok := n.intersect(r, 0)
	if !ok {
		return lin.Zero
	}
	return hit.Normal.Scale(0.5).Add(lin.Splat(0.5))
}

func (n *normalsIntegrator) Clone(rng *rand.Rand) Integrator {
	return &normalsIntegrator{base{sc: n.sc, ws: &accel.Workspace{}}}
}

// depthIntegrator visualizes hit distance, spec.md §4.7.
type depthIntegrator struct{ base }

func (d *depthIntegrator) Trace(r lin.Ray) lin.Vec3 {
	if depthExceeds(d.sc, 0) {
		return lin.Zero
	}
	hit, ok := d.intersect(r, 0)
	if !ok {
		return lin.Zero
	}
	gray := 1 / (1 + hit.Distance)
	return lin.Splat(gray)
}

func (d *depthIntegrator) Clone(rng *rand.Rand) Integrator {
	return &depthIntegrator{base{sc: d.sc, ws: &accel.Workspace{}}}
}

// albedoIntegrator visualizes material diffuse color, spec.md §4.7.
type albedoIntegrator struct{ base }

func (a *albedoIntegrator) Trace(r lin.Ray) lin.Vec3 {
	if depthExceeds(a.sc, 0) {
		return lin.Zero
	}
	hit, ok := a.intersect(r, 0)
	if !ok {
		return lin.Zero
	}
	return hit.Prim.Material.Diffuse
}

func (a *albedoIntegrator) Clone(rng *rand.Rand) Integrator {
	return &albedoIntegrator{base{sc: a.sc, ws: &accel.Workspace{}}}
}
