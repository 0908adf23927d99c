// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package integrator implements the light-transport strategies: three
// debug visualizers (Normals, Depth, Albedo), the classic Blinn-Phong
// Raytracer, the polygonal-Lambert AnalyticDirect integrator, and the full
// Monte Carlo PathTracer with NEE, MIS and Russian Roulette.
package integrator

import (
	"math/rand"

	"github.com/galvanizedlogic/muon/accel"
	"github.com/galvanizedlogic/muon/geometry"
	"github.com/galvanizedlogic/muon/math/lin"
	"github.com/galvanizedlogic/muon/scene"
	"github.com/galvanizedlogic/muon/stats"
)

// selfShadowEpsilon offsets a hit position along its normal before casting
// a shadow or reflection/bounce ray, avoiding self-intersection at t≈0.
const selfShadowEpsilon = 1e-4

// Integrator is implemented by every variant of spec.md §9's closed
// Integrator sum. One instance is built per worker thread via Clone so
// each owns its own RNG and traversal workspace (spec.md §5).
type Integrator interface {
	// Trace returns the radiance seen along r.
	Trace(r lin.Ray) lin.Vec3
	// Clone returns a fresh instance sharing the same immutable scene but
	// owning its own RNG and Workspace.
	Clone(rng *rand.Rand) Integrator
	// Stats returns this instance's accumulated trace counters.
	Stats() stats.Counters
}

// New builds the prototype integrator selected by sc.Integrator. The
// prototype itself is never traced from directly; each worker calls
// Clone to get its own thread-local instance.
func New(sc *scene.Scene) Integrator {
	base := base{sc: sc, ws: &accel.Workspace{}}
	switch sc.Integrator {
	case scene.Depth:
		return &depthIntegrator{base: base}
	case scene.Albedo:
		return &albedoIntegrator{base: base}
	case scene.Raytracer:
		return &raytracerIntegrator{base: base}
	case scene.AnalyticDirect:
		return &analyticDirectIntegrator{base: base}
	case scene.PathTracer:
		return &pathTracerIntegrator{base: base, rng: rand.New(rand.NewSource(sc.Seed))}
	default:
		return &normalsIntegrator{base: base}
	}
}

// base holds the fields every integrator variant needs: the immutable
// scene, a traversal workspace, and the ray-count counters of spec.md
// §4.7 "Ray counting".
type base struct {
	sc *scene.Scene
	ws *accel.Workspace

	primaryRays, secondaryRays uint64
}

func (b *base) countRay(depth int) {
	if depth == 0 {
		b.primaryRays++
	} else {
		b.secondaryRays++
	}
}

func (b *base) Stats() stats.Counters {
	return stats.Counters{
		PrimaryRays:    b.primaryRays,
		SecondaryRays:  b.secondaryRays,
		PrimitiveTests: b.ws.PrimitiveTests,
		NodeVisits:     b.ws.NodeVisits,
	}
}

// depthExceeds implements spec.md §4.7's depth cap: NEE shortens the
// effective limit by 1 because it already accounts for direct light at the
// next vertex.
func depthExceeds(sc *scene.Scene, depth int) bool {
	if sc.MaxDepth == -1 {
		return false
	}
	limit := sc.MaxDepth
	if sc.NextEventEstimation != scene.NEEOff {
		limit--
	}
	return depth > limit
}

// intersect wraps the scene's accelerator with the shared ray-count bump.
// Callers must check depthExceeds themselves before calling this (spec.md
// §4.7 lists the depth cap ahead of ray counting).
func (b *base) intersect(r lin.Ray, depth int) (geometry.Hit, bool) {
	b.countRay(depth)
	return b.sc.Accel.Intersect(r, b.ws)
}

// powerHeuristic is the β=2 MIS weight of spec.md §4.7.
func powerHeuristic(a, b float32) float32 {
	a2, b2 := a*a, b*b
	if a2+b2 == 0 {
		return 0
	}
	return a2 / (a2 + b2)
}
