// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package material holds surface shading parameters and the BRDF models
// (Lambertian, modified Phong, GGX microfacet) that sample and evaluate
// them.
package material

import "github.com/galvanizedlogic/muon/math/lin"

// Kind selects which BRDF a Material uses.
type Kind int

const (
	Lambertian Kind = iota
	Phong
	GGX
)

// Material is the surface shading data attached to a Primitive. Ambient,
// Diffuse, Specular and Emission are linear RGB; Shininess and Roughness
// feed the Phong and GGX BRDFs respectively.
type Material struct {
	Ambient  lin.Vec3
	Diffuse  lin.Vec3
	Specular lin.Vec3
	Emission lin.Vec3
	Shininess float32
	Roughness float32
	Kind      Kind

	brdf BRDF
}

// BRDF returns the material's BRDF, constructing it from Kind on first use.
// Built lazily because the scene parser mutates material fields
// (copy-on-write, spec.md §6) up until the primitive referencing it is
// emitted; the BRDF's cached state (e.g. memoized reflectiveness) would
// otherwise go stale.
func (m *Material) BRDF() BRDF {
	if m.brdf == nil {
		switch m.Kind {
		case Phong:
			m.brdf = &phongBRDF{mat: m, reflectiveness: -1}
		case GGX:
			m.brdf = &ggxBRDF{mat: m, reflectiveness: -1}
		default:
			m.brdf = &lambertianBRDF{mat: m}
		}
	}
	return m.brdf
}

// Copy returns a copy of m suitable for the scene parser's copy-on-write
// material semantics: later edits to the returned Material never affect m,
// and vice versa. The BRDF cache is intentionally not copied so the clone
// rebuilds it (and its cached reflectiveness) against its own field values.
func (m *Material) Copy() *Material {
	clone := *m
	clone.brdf = nil
	return &clone
}
