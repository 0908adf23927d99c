// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package scene holds the immutable scene graph (geometry, lights, camera,
// materials, acceleration structure) built by the scene-file parser, plus
// the render-affecting settings a scene file can declare.
package scene

import (
	"github.com/galvanizedlogic/muon/accel"
	"github.com/galvanizedlogic/muon/camera"
	"github.com/galvanizedlogic/muon/geometry"
	"github.com/galvanizedlogic/muon/light"
	"github.com/galvanizedlogic/muon/math/lin"
)

// NEEMode selects the direct-lighting strategy of the PathTracer,
// spec.md §4.7.
type NEEMode int

const (
	NEEOff NEEMode = iota
	NEEOn
	NEEMIS
)

// ImportanceMode selects the PathTracer's indirect-bounce sampling
// strategy, spec.md §4.7 "Indirect term".
type ImportanceMode int

const (
	ImportanceHemisphere ImportanceMode = iota
	ImportanceCosine
	ImportanceBRDF
)

// IntegratorKind selects which integrator renders the scene, spec.md §4.7.
type IntegratorKind int

const (
	Normals IntegratorKind = iota
	Depth
	Albedo
	Raytracer
	AnalyticDirect
	PathTracer
)

// Scene is the fully built, immutable scene graph consumed by the render
// driver (spec.md §2, §6 "Interface consumed from parser"). Every field is
// set once during parsing and never mutated during rendering.
type Scene struct {
	Primitives []*geometry.Primitive
	Lights     []*light.Light
	Accel      accel.Accelerator
	Camera     *camera.Camera
	Ambient    lin.Vec3
	Attenuation lin.Vec3 // (constant, linear, quadratic), applies to point lights

	Width, Height int
	Output        string

	Integrator IntegratorKind
	MaxDepth   int // -1 means unbounded
	MinDepth   int
	Gamma      float32
	Seed       int64

	PixelSamples       int
	LightSamples       int
	LightStratify      bool
	NextEventEstimation NEEMode
	RussianRoulette    bool
	Importance         ImportanceMode
}

// Bounds returns the world-space bounds of the whole scene.
func (s *Scene) Bounds() lin.Bounds3 { return s.Accel.Bounds() }
