// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package material

import "github.com/galvanizedlogic/muon/math/lin"

// alignToAxis rotates a z-axis-centered sample s so its z aligns with w.
// spec.md §4.3 "Frame rotation".
func alignToAxis(s, w lin.Vec3) lin.Vec3 {
	a := lin.V3(0, 1, 0)
	if w.Y > 0.9 || w.Y < -0.9 {
		a = lin.V3(1, 0, 0)
	}
	u := a.Cross(w).Unit()
	v := w.Cross(u).Unit()
	return u.Scale(s.X).Add(v.Scale(s.Y)).Add(w.Scale(s.Z))
}

// cosineSampleHemisphere draws a direction above n weighted by cos(theta)/pi,
// using the Malley-style disk-to-hemisphere projection.
func cosineSampleHemisphere(n lin.Vec3, rng Rand) lin.Vec3 {
	u1, u2 := rng.Float32(), rng.Float32()
	r := sqrt32(u1)
	phi := 2 * lin.Pi * u2
	x := r * cos32(phi)
	y := r * sin32(phi)
	z := sqrt32(max32(0, 1-u1))
	return alignToAxis(lin.V3(x, y, z), n)
}

// SampleCosineHemisphere is the exported form of cosineSampleHemisphere,
// used by the PathTracer's "cosine" importance-sampling mode (spec.md
// §4.7 Indirect term) independent of any particular BRDF.
func SampleCosineHemisphere(n lin.Vec3, rng Rand) lin.Vec3 {
	return cosineSampleHemisphere(n, rng)
}

// SampleUniformHemisphere draws a direction above n with uniform solid
// angle density 1/(2*pi), for the PathTracer's "hemisphere" mode.
func SampleUniformHemisphere(n lin.Vec3, rng Rand) lin.Vec3 {
	u1, u2 := rng.Float32(), rng.Float32()
	z := u1
	r := sqrt32(max32(0, 1-z*z))
	phi := 2 * lin.Pi * u2
	x := r * cos32(phi)
	y := r * sin32(phi)
	return alignToAxis(lin.V3(x, y, z), n)
}
