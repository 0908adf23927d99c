// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package material

import "github.com/galvanizedlogic/muon/math/lin"

// phongBRDF is the energy-conserving modified Phong model, spec.md §4.3:
//   f(w_i, w_o) = k_d/pi + k_s*(s+2)/(2*pi) * max(r.w_i, 0)^s
type phongBRDF struct {
	mat *Material

	reflectiveness float32 // memoized; -1 means uncomputed
}

func avg3(v lin.Vec3) float32 { return (v.X + v.Y + v.Z) / 3 }

func (b *phongBRDF) reflectiveFraction() float32 {
	if b.reflectiveness < 0 {
		avgS, avgD := avg3(b.mat.Specular), avg3(b.mat.Diffuse)
		total := avgS + avgD
		if total <= 0 {
			b.reflectiveness = 0
		} else {
			b.reflectiveness = avgS / total
		}
	}
	return b.reflectiveness
}

func (b *phongBRDF) Sample(rayDir, normal lin.Vec3, rng Rand) lin.Vec3 {
	t := b.reflectiveFraction()
	if rng.Float32() < t {
		r := rayDir.Reflect(normal)
		xi1, xi2 := rng.Float32(), rng.Float32()
		s := b.mat.Shininess
		theta := acos32(pow32(xi1, 1/(s+1)))
		phi := 2 * lin.Pi * xi2
		x := sin32(theta) * cos32(phi)
		y := sin32(theta) * sin32(phi)
		z := cos32(theta)
		return alignToAxis(lin.V3(x, y, z), r)
	}
	return cosineSampleHemisphere(normal, rng)
}

func (b *phongBRDF) PDF(wi, rayDir, normal lin.Vec3) float32 {
	t := b.reflectiveFraction()
	r := rayDir.Reflect(normal)
	s := b.mat.Shininess
	cosPDF := max32(normal.Dot(wi), 0) / lin.Pi
	specPDF := (s + 1) / (2 * lin.Pi) * pow32(max32(r.Dot(wi), 0), s)
	return (1-t)*cosPDF + t*specPDF
}

func (b *phongBRDF) Eval(wi, rayDir, normal lin.Vec3) lin.Vec3 {
	r := rayDir.Reflect(normal)
	s := b.mat.Shininess
	spec := max32(r.Dot(wi), 0)
	specTerm := b.mat.Specular.Scale((s + 2) / (2 * lin.Pi) * pow32(spec, s))
	diffTerm := b.mat.Diffuse.Scale(1 / lin.Pi)
	return diffTerm.Add(specTerm)
}
