// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package material

import "github.com/galvanizedlogic/muon/math/lin"

// ggxBRDF is the GGX microfacet model, spec.md §4.3. Diffuse term is
// k_d/pi; the specular term models a rough dielectric/conductor surface
// via a Fresnel term F, a shadowing-masking term G and a normal
// distribution term D.
type ggxBRDF struct {
	mat *Material

	reflectiveness float32 // memoized; -1 means uncomputed
}

// reflectiveFraction is the sampling split t between the specular and
// diffuse lobes. A minimum of 0.25 is retained even for fully matte
// materials so the Fresnel grazing effect is still sampled; t=1 only when
// both diffuse and specular are exactly zero (spec.md §4.3).
func (b *ggxBRDF) reflectiveFraction() float32 {
	if b.reflectiveness < 0 {
		avgS, avgD := avg3(b.mat.Specular), avg3(b.mat.Diffuse)
		switch {
		case avgS <= 0 && avgD <= 0:
			b.reflectiveness = 1
		default:
			b.reflectiveness = max32(avgS/(avgS+avgD), 0.25)
		}
	}
	return b.reflectiveness
}

func ggxD(cosThetaH, alpha float32) float32 {
	if cosThetaH <= 0 {
		return 0
	}
	cos2 := cosThetaH * cosThetaH
	tan2 := (1 - cos2) / cos2
	a2 := alpha * alpha
	denom := lin.Pi * cos2 * cos2 * (a2 + tan2) * (a2 + tan2)
	if denom <= 0 {
		return 0
	}
	return a2 / denom
}

func ggxG1(cosThetaV, alpha float32) float32 {
	if cosThetaV <= 0 {
		return 0
	}
	tan2 := (1 - cosThetaV*cosThetaV) / (cosThetaV * cosThetaV)
	return 2 / (1 + sqrt32(1+alpha*alpha*tan2))
}

func (b *ggxBRDF) Sample(rayDir, normal lin.Vec3, rng Rand) lin.Vec3 {
	t := b.reflectiveFraction()
	if rng.Float32() < t {
		alpha := b.mat.Roughness
		xi1, xi2 := rng.Float32(), rng.Float32()
		theta := atan32(alpha * sqrt32(xi1) / sqrt32(max32(1-xi1, 1e-7)))
		phi := 2 * lin.Pi * xi2
		x := sin32(theta) * cos32(phi)
		y := sin32(theta) * sin32(phi)
		z := cos32(theta)
		h := alignToAxis(lin.V3(x, y, z), normal)
		return rayDir.Reflect(h)
	}
	return cosineSampleHemisphere(normal, rng)
}

func (b *ggxBRDF) halfVector(wi, rayDir lin.Vec3) lin.Vec3 {
	wo := rayDir.Scale(-1)
	return wi.Add(wo).Unit()
}

func (b *ggxBRDF) PDF(wi, rayDir, normal lin.Vec3) float32 {
	t := b.reflectiveFraction()
	h := b.halfVector(wi, rayDir)
	cosPDF := max32(normal.Dot(wi), 0) / lin.Pi
	d := ggxD(normal.Dot(h), b.mat.Roughness)
	hw := h.Dot(wi)
	var specPDF float32
	if hw > 0 {
		specPDF = d * max32(normal.Dot(h), 0) / (4 * hw)
	}
	return (1-t)*cosPDF + t*specPDF
}

func (b *ggxBRDF) Eval(wi, rayDir, normal lin.Vec3) lin.Vec3 {
	wo := rayDir.Scale(-1)
	nwi := normal.Dot(wi)
	nwo := normal.Dot(wo)
	diffTerm := b.mat.Diffuse.Scale(1 / lin.Pi)
	if nwi <= 0 || nwo <= 0 {
		return diffTerm
	}
	h := b.halfVector(wi, rayDir)
	d := ggxD(normal.Dot(h), b.mat.Roughness)
	g := ggxG1(nwi, b.mat.Roughness) * ggxG1(nwo, b.mat.Roughness)
	schlick := pow32(max32(1-wi.Dot(h), 0), 5)
	fresnel := b.mat.Specular.Add(lin.One.Sub(b.mat.Specular).Scale(schlick))
	specTerm := fresnel.Scale(g * d / (4 * nwi * nwo))
	return diffTerm.Add(specTerm)
}
