// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package integrator

import (
	"math"
	"math/rand"

	"github.com/galvanizedlogic/muon/accel"
	"github.com/galvanizedlogic/muon/geometry"
	"github.com/galvanizedlogic/muon/math/lin"
)

func pow32(x, y float32) float32 { return float32(math.Pow(float64(x), float64(y))) }

// raytracerIntegrator is the classic Blinn-Phong integrator, spec.md §4.7.
type raytracerIntegrator struct{ base }

func (rt *raytracerIntegrator) Trace(r lin.Ray) lin.Vec3 {
	return rt.trace(r, 0)
}

func (rt *raytracerIntegrator) trace(r lin.Ray, depth int) lin.Vec3 {
	if depthExceeds(rt.sc, depth) {
		return lin.Zero
	}
	hit, ok := rt.intersect(r, depth)
	if !ok {
		return lin.Zero
	}
	return rt.shade(hit, r.Dir, depth)
}

func (rt *raytracerIntegrator) shade(hit geometry.Hit, rayDir lin.Vec3, depth int) lin.Vec3 {
	mat := hit.Prim.Material
	n := hit.Normal
	wo := rayDir.Scale(-1)
	color := rt.sc.Ambient.Add(mat.Ambient).Add(mat.Emission)

	shadowOrigin := hit.Position.Add(n.Scale(selfShadowEpsilon))
	for _, lgt := range rt.sc.Lights {
		info := lgt.ShadingAt(hit.Position)
		nl := n.Dot(info.Dir)
		if nl <= 0 {
			continue
		}
		shadowRay := lin.NewRay(shadowOrigin, info.Dir)
		if rt.sc.Accel.IntersectAny(shadowRay, info.Distance-selfShadowEpsilon, rt.ws) {
			continue
		}
		h := info.Dir.Add(wo).Unit()
		contribution := mat.Diffuse.Scale(nl)
		if nh := n.Dot(h); nh > 0 && mat.Shininess > 0 {
			contribution = contribution.Add(mat.Specular.Scale(pow32(nh, mat.Shininess)))
		}
		color = color.Add(info.Color.Mul(contribution))
	}

	if mat.Specular.MaxComponent() > 0 {
		reflectDir := rayDir.Reflect(n)
		reflected := rt.trace(lin.NewRay(shadowOrigin, reflectDir), depth+1)
		color = color.Add(mat.Specular.Mul(reflected))
	}
	return color
}

func (rt *raytracerIntegrator) Clone(rng *rand.Rand) Integrator {
	return &raytracerIntegrator{base{sc: rt.sc, ws: &accel.Workspace{}}}
}
