// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package integrator

import (
	"math"
	"math/rand"

	"github.com/galvanizedlogic/muon/accel"
	"github.com/galvanizedlogic/muon/light"
	"github.com/galvanizedlogic/muon/math/lin"
)

func acos32(x float32) float32 {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}
	return float32(math.Acos(float64(x)))
}

// analyticDirectIntegrator computes exact Lambertian irradiance from each
// quad light by the closed-form polygonal integral of spec.md §4.7. Point
// and directional lights contribute nothing; visibility is ignored.
type analyticDirectIntegrator struct{ base }

func (a *analyticDirectIntegrator) Trace(r lin.Ray) lin.Vec3 {
	if depthExceeds(a.sc, 0) {
		return lin.Zero
	}
	hit, ok := a.intersect(r, 0)
	if !ok {
		return lin.Zero
	}
	mat := hit.Prim.Material
	n := hit.Normal
	color := mat.Emission
	for _, lgt := range a.sc.Lights {
		if lgt.Kind != light.Quad {
			continue
		}
		color = color.Add(mat.Diffuse.Scale(1 / lin.Pi).Mul(quadIrradiance(lgt, hit.Position, n)))
	}
	return color
}

// quadIrradiance returns L_i * (Phi . n) for the quad light lgt as seen
// from p, per spec.md §4.7's analytic polygon formula.
func quadIrradiance(lgt *light.Light, p, n lin.Vec3) lin.Vec3 {
	corners := [4]lin.Vec3{
		lgt.Corner,
		lgt.Corner.Add(lgt.Edge0),
		lgt.Corner.Add(lgt.Edge0).Add(lgt.Edge1),
		lgt.Corner.Add(lgt.Edge1),
	}
	var u [4]lin.Vec3
	for i, c := range corners {
		u[i] = c.Sub(p).Unit()
	}
	phi := lin.Zero
	for i := 0; i < 4; i++ {
		j := (i + 1) % 4
		theta := acos32(u[i].Dot(u[j]))
		gamma := u[i].Cross(u[j])
		if gamma.IsZero() {
			continue
		}
		phi = phi.Add(gamma.Unit().Scale(theta))
	}
	phi = phi.Scale(0.5)
	return lgt.Color.Scale(maxf(phi.Dot(n), 0))
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func (a *analyticDirectIntegrator) Clone(rng *rand.Rand) Integrator {
	return &analyticDirectIntegrator{base{sc: a.sc, ws: &accel.Workspace{}}}
}
