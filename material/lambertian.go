// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package material

import "github.com/galvanizedlogic/muon/math/lin"

// BRDF is the interface every reflectance model implements. Directions
// follow the convention documented in spec.md §9: rayDir points toward the
// surface (the incoming ray's own direction, not negated); wi is the
// sampled incident direction, pointing away from the surface, above the
// horizon.
type BRDF interface {
	Sample(rayDir, normal lin.Vec3, rng Rand) lin.Vec3
	PDF(wi, rayDir, normal lin.Vec3) float32
	Eval(wi, rayDir, normal lin.Vec3) lin.Vec3
}

// lambertianBRDF is f(w_i, w_o) = k_d / pi.
type lambertianBRDF struct {
	mat *Material
}

func (b *lambertianBRDF) Sample(rayDir, normal lin.Vec3, rng Rand) lin.Vec3 {
	return cosineSampleHemisphere(normal, rng)
}

func (b *lambertianBRDF) PDF(wi, rayDir, normal lin.Vec3) float32 {
	return max32(normal.Dot(wi), 0) / lin.Pi
}

func (b *lambertianBRDF) Eval(wi, rayDir, normal lin.Vec3) lin.Vec3 {
	return b.mat.Diffuse.Scale(1 / lin.Pi)
}
