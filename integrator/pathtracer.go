// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package integrator

import (
	"math/rand"

	"github.com/galvanizedlogic/muon/accel"
	"github.com/galvanizedlogic/muon/geometry"
	"github.com/galvanizedlogic/muon/light"
	"github.com/galvanizedlogic/muon/material"
	"github.com/galvanizedlogic/muon/math/lin"
	"github.com/galvanizedlogic/muon/scene"
)

// pathTracerIntegrator is the full Monte Carlo integrator of spec.md §4.7:
// next-event estimation (optionally combined with BRDF sampling via MIS),
// cosine/uniform/BRDF importance sampling for the indirect bounce, and
// Russian Roulette termination.
type pathTracerIntegrator struct {
	base
	rng *rand.Rand
}

func (pt *pathTracerIntegrator) Trace(r lin.Ray) lin.Vec3 {
	return pt.trace(r, lin.One, 0)
}

func (pt *pathTracerIntegrator) trace(r lin.Ray, throughput lin.Vec3, depth int) lin.Vec3 {
	if depthExceeds(pt.sc, depth) {
		return lin.Zero
	}
	hit, ok := pt.intersect(r, depth)
	if !ok {
		return lin.Zero
	}
	return pt.shade(hit, r.Dir, throughput, depth)
}

func (pt *pathTracerIntegrator) shade(hit geometry.Hit, rayDir, throughput lin.Vec3, depth int) lin.Vec3 {
	if depth < pt.sc.MinDepth {
		return pt.indirectTerm(hit, rayDir, throughput, depth)
	}
	color := pt.emissionTerm(hit, rayDir, throughput, depth)
	color = color.Add(pt.directTerm(hit, rayDir, throughput, depth))
	color = color.Add(pt.indirectTerm(hit, rayDir, throughput, depth))
	return color
}

// emissionTerm accounts for a surface's own emission. With NEE enabled, a
// bounce vertex (depth>0) already had its light contribution counted by the
// previous vertex's neeSample, so counting it again here would double it;
// only the primary-ray hit (depth==0) or a non-NEE path picks it up here.
func (pt *pathTracerIntegrator) emissionTerm(hit geometry.Hit, rayDir, throughput lin.Vec3, depth int) lin.Vec3 {
	if pt.sc.NextEventEstimation != scene.NEEOff && depth > 0 {
		return lin.Zero
	}
	mat := hit.Prim.Material
	wo := rayDir.Scale(-1)
	if hit.Normal.Dot(wo) < 0 {
		return lin.Zero
	}
	return throughput.Mul(mat.Emission)
}

func (pt *pathTracerIntegrator) directTerm(hit geometry.Hit, rayDir, throughput lin.Vec3, depth int) lin.Vec3 {
	switch pt.sc.NextEventEstimation {
	case scene.NEEOn:
		return pt.neeSample(hit, rayDir, throughput)
	case scene.NEEMIS:
		return pt.neeSample(hit, rayDir, throughput).Add(pt.brdfSampleDirect(hit, rayDir, throughput, depth))
	default:
		return lin.Zero
	}
}

// neeSample draws light_samples candidates from every quad light (stratified
// over a sqrt(light_samples)xsqrt(light_samples) grid when light_stratify is
// set) and sums their shadow-tested contributions; each point or
// directional light adds a single shadow-tested evaluation.
// spec.md §4.7 "Direct term: Next event estimation".
func (pt *pathTracerIntegrator) neeSample(hit geometry.Hit, rayDir, throughput lin.Vec3) lin.Vec3 {
	mat := hit.Prim.Material
	brdf := mat.BRDF()
	n := hit.Normal
	shadowOrigin := hit.Position.Add(n.Scale(selfShadowEpsilon))

	total := lin.Zero
	nSamples := pt.sc.LightSamples
	if nSamples < 1 {
		nSamples = 1
	}

	for _, lgt := range pt.sc.Lights {
		if lgt.Kind != light.Quad {
			info := lgt.ShadingAt(hit.Position)
			nl := n.Dot(info.Dir)
			if nl <= 0 {
				continue
			}
			shadowRay := lin.NewRay(shadowOrigin, info.Dir)
			if pt.sc.Accel.IntersectAny(shadowRay, info.Distance-selfShadowEpsilon, pt.ws) {
				continue
			}
			total = total.Add(info.Color.Mul(brdf.Eval(info.Dir, rayDir, n)).Scale(nl))
			continue
		}

		sqrtN := 1
		if pt.sc.LightStratify {
			sqrtN = isqrt(nSamples)
		}
		sum := lin.Zero
		for s := 0; s < nSamples; s++ {
			i, j := 0, 0
			if sqrtN > 1 {
				i, j = s%sqrtN, (s/sqrtN)%sqrtN
			}
			u, v := pt.rng.Float32(), pt.rng.Float32()
			p := lgt.SamplePoint(i, j, sqrtN, u, v)
			p = p.Sub(lgt.Normal().Scale(selfShadowEpsilon))
			toLight := p.Sub(hit.Position)
			r2 := toLight.LenSqr()
			dist := toLight.Len()
			l := toLight.Scale(1 / dist)

			nl := n.Dot(l)
			nll := lgt.Normal().Dot(l)
			if nl <= 0 || nll <= 0 {
				continue
			}
			shadowRay := lin.NewRay(hit.Position.Add(n.Scale(selfShadowEpsilon)), l)
			if pt.sc.Accel.IntersectAny(shadowRay, dist-selfShadowEpsilon, pt.ws) {
				continue
			}
			geomTerm := nl * nll / r2
			sum = sum.Add(brdf.Eval(l, rayDir, n).Scale(geomTerm))
		}
		scaleFactor := lgt.Area() / float32(nSamples)
		total = total.Add(lgt.Color.Mul(sum).Scale(scaleFactor))
	}
	return throughput.Mul(total)
}

// brdfSampleDirect is NEEMIS's complementary BRDF-sampled light estimator:
// sample a direction from the surface's own BRDF, trace one ray (no
// recursion) and, if it lands on a light-carrying primitive, weight its
// contribution by the power heuristic against the NEE pdf for that same
// direction, per spec.md §4.7.
func (pt *pathTracerIntegrator) brdfSampleDirect(hit geometry.Hit, rayDir, throughput lin.Vec3, depth int) lin.Vec3 {
	mat := hit.Prim.Material
	brdf := mat.BRDF()
	n := hit.Normal

	wi := brdf.Sample(rayDir, n, pt.rng)
	if n.Dot(wi) <= 0 {
		return lin.Zero
	}
	shadowOrigin := hit.Position.Add(n.Scale(selfShadowEpsilon))
	r := lin.NewRay(shadowOrigin, wi)
	lightHit, ok := pt.sc.Accel.Intersect(r, pt.ws)
	pt.countRay(depth + 1)
	if !ok || lightHit.Prim.LightID < 0 {
		return lin.Zero
	}
	lgt := pt.sc.Lights[lightHit.Prim.LightID]

	brdfPdf := brdf.PDF(wi, rayDir, n)
	neePdf := pt.neePDF(hit.Position, wi)
	weight := powerHeuristic(brdfPdf, neePdf)
	return throughput.Mul(lgt.Color).Scale(weight)
}

// neePDF returns the NEE solid-angle pdf of sampling direction wi from p,
// averaged over the scene's area lights: each contributing light's pdf is
// r^2 / (area * |n_l . wi|), converting its uniform-area density to solid
// angle; a light the ray does not actually hit contributes 0. The sum is
// divided by the total number of area lights, matching neeSample's uniform
// per-light weighting.
func (pt *pathTracerIntegrator) neePDF(p, wi lin.Vec3) float32 {
	var sum float32
	count := 0
	for _, lgt := range pt.sc.Lights {
		if lgt.Kind != light.Quad {
			continue
		}
		count++
		t, ok := lgt.IntersectQuad(lin.NewRay(p, wi))
		if !ok {
			continue
		}
		hitPos := p.Add(wi.Scale(t))
		r2 := hitPos.Sub(p).LenSqr()
		cosAtLight := lgt.Normal().Dot(wi)
		if cosAtLight <= 0 {
			continue
		}
		sum += r2 / (lgt.Area() * cosAtLight)
	}
	if count == 0 {
		return 0
	}
	return sum / float32(count)
}

// indirectTerm samples the next bounce direction per sc.Importance, applies
// Russian Roulette if enabled, and recurses. Returns zero for a direction
// that samples below the horizon or is terminated by roulette.
func (pt *pathTracerIntegrator) indirectTerm(hit geometry.Hit, rayDir, throughput lin.Vec3, depth int) lin.Vec3 {
	mat := hit.Prim.Material
	brdf := mat.BRDF()
	n := hit.Normal

	var wi lin.Vec3
	var nextThroughput lin.Vec3

	switch pt.sc.Importance {
	case scene.ImportanceHemisphere:
		wi = material.SampleUniformHemisphere(n, pt.rng)
		if n.Dot(wi) <= 0 {
			return lin.Zero
		}
		eval := brdf.Eval(wi, rayDir, n)
		nextThroughput = throughput.Mul(eval).Scale(lin.Pix2 * maxf(n.Dot(wi), 0))
	case scene.ImportanceCosine:
		wi = material.SampleCosineHemisphere(n, pt.rng)
		if n.Dot(wi) <= 0 {
			return lin.Zero
		}
		eval := brdf.Eval(wi, rayDir, n)
		nextThroughput = throughput.Mul(eval).Scale(lin.Pi)
	default: // ImportanceBRDF
		wi = brdf.Sample(rayDir, n, pt.rng)
		if n.Dot(wi) <= 0 {
			return lin.Zero
		}
		pdf := brdf.PDF(wi, rayDir, n)
		if pdf <= 0 {
			return lin.Zero
		}
		eval := brdf.Eval(wi, rayDir, n)
		nextThroughput = throughput.Mul(eval).Scale(maxf(n.Dot(wi), 0) / pdf)
	}

	if pt.sc.RussianRoulette {
		p := nextThroughput.MaxComponent()
		if p > 1 {
			p = 1
		}
		if p <= 0 || pt.rng.Float32() > p {
			return lin.Zero
		}
		nextThroughput = nextThroughput.Scale(1 / p)
	}

	origin := hit.Position.Add(n.Scale(selfShadowEpsilon))
	return pt.trace(lin.NewRay(origin, wi), nextThroughput, depth+1)
}

func (pt *pathTracerIntegrator) Clone(rng *rand.Rand) Integrator {
	return &pathTracerIntegrator{base: base{sc: pt.sc, ws: &accel.Workspace{}}, rng: rng}
}

// isqrt returns floor(sqrt(n)), at least 1, for building a stratification
// grid out of a light_samples count.
func isqrt(n int) int {
	if n < 1 {
		return 1
	}
	r := 1
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
