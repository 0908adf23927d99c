// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/image/bmp"

	"github.com/galvanizedlogic/muon/accel"
	"github.com/galvanizedlogic/muon/camera"
	"github.com/galvanizedlogic/muon/geometry"
	"github.com/galvanizedlogic/muon/light"
	"github.com/galvanizedlogic/muon/material"
	"github.com/galvanizedlogic/muon/math/lin"
)

// Options configures how Parse builds the final Accelerator; everything
// else about the scene comes from the scene file itself.
type Options struct {
	Acceleration      string // "linear" or "bvh" (default)
	PartitionStrategy string // "uniform", "midpoint" (default), or "sah"
}

// parser holds the mutable state threaded through a single scene-file read:
// the transform stack, the vertex/vertex-normal tables of the mesh
// currently being built, and the copy-on-write "current material".
type parser struct {
	logger *slog.Logger

	xforms []lin.Mat4 // transform stack; xforms[len-1] is current

	mat *material.Material // current material; copy-on-write

	verts             []geometry.Vertex
	computeVertNormal bool

	ambient     lin.Vec3
	attenuation lin.Vec3

	prims  []*geometry.Primitive
	lights []*light.Light

	width, height int
	output        string
	integrator    IntegratorKind
	maxDepth      int
	minDepth      int
	gamma         float32
	seed          int64

	pixelSamples  int
	lightSamples  int
	lightStratify bool
	nee           NEEMode
	rr            bool
	importance    ImportanceMode

	camEye, camLook, camUp lin.Vec3
	camFovY                float32
}

// Parse reads a scene text file (spec.md §6) and returns a fully built,
// immutable Scene. Malformed lines log a warning and are skipped; the only
// fatal error is an I/O failure reading r.
func Parse(r io.Reader, opts Options, logger *slog.Logger) (*Scene, error) {
	if logger == nil {
		logger = slog.Default()
	}
	p := &parser{
		logger:     logger,
		xforms:     []lin.Mat4{lin.Identity4()},
		mat:        &material.Material{},
		maxDepth:   -1,
		minDepth:   0,
		gamma:      1,
		seed:       1,
		pixelSamples: 1,
		lightSamples: 1,
		output:       "out.png",
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := p.parseLine(line); err != nil {
			logger.Warn("malformed scene line, skipping", "line", lineNo, "text", line, "error", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scene: reading input: %w", err)
	}

	if p.computeVertNormal {
		normalizeVertices(p.verts)
	}

	var accelerator accel.Accelerator
	switch strings.ToLower(opts.Acceleration) {
	case "linear":
		accelerator = accel.NewLinear(p.prims)
	default:
		strategy := parseStrategy(opts.PartitionStrategy)
		accelerator = accel.Build(p.prims, strategy)
	}

	cam := camera.New(p.camEye, p.camLook, p.camUp, p.camFovY, p.width, p.height)

	return &Scene{
		Primitives:  p.prims,
		Lights:      p.lights,
		Accel:       accelerator,
		Camera:      cam,
		Ambient:     p.ambient,
		Attenuation: p.attenuation,

		Width: p.width, Height: p.height,
		Output: p.output,

		Integrator: p.integrator,
		MaxDepth:   p.maxDepth,
		MinDepth:   p.minDepth,
		Gamma:      p.gamma,
		Seed:       p.seed,

		PixelSamples:        p.pixelSamples,
		LightSamples:        p.lightSamples,
		LightStratify:       p.lightStratify,
		NextEventEstimation: p.nee,
		RussianRoulette:     p.rr,
		Importance:          p.importance,
	}, nil
}

func parseStrategy(s string) accel.Strategy {
	switch strings.ToLower(s) {
	case "uniform":
		return accel.Uniform
	case "sah":
		return accel.SAH
	default:
		return accel.Midpoint
	}
}

func normalizeVertices(verts []geometry.Vertex) {
	for i, v := range verts {
		if !v.Normal.IsZero() {
			verts[i].Normal = v.Normal.Unit()
		}
	}
}

// top returns the transform currently in effect.
func (p *parser) top() lin.Mat4 { return p.xforms[len(p.xforms)-1] }

func (p *parser) setTop(m lin.Mat4) { p.xforms[len(p.xforms)-1] = m }

// parseLine dispatches a single non-empty, non-comment scene line to its
// command handler, spec.md §6's command table.
func (p *parser) parseLine(line string) error {
	fields := strings.Fields(line)
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "size":
		return p.cmdSize(args)
	case "maxdepth":
		return p.cmdMaxDepth(args)
	case "mindepth":
		return p.cmdMinDepth(args)
	case "output":
		return p.cmdOutput(args)
	case "gamma":
		return p.cmdGamma(args)
	case "seed":
		return p.cmdSeed(args)
	case "integrator":
		return p.cmdIntegrator(args)
	case "pixelsamples":
		return p.cmdPixelSamples(args)
	case "lightsamples":
		return p.cmdLightSamples(args)
	case "lightstratify":
		return p.cmdLightStratify(args)
	case "nee":
		return p.cmdNEE(args)
	case "russianroulette":
		return p.cmdRussianRoulette(args)
	case "importance":
		return p.cmdImportance(args)
	case "camera":
		return p.cmdCamera(args)
	case "maxverts", "maxvertnorms":
		return p.cmdMaxCount(args)
	case "mesh", "meshstart", "meshend":
		return nil // delimiters only; vertex indices are global across the file
	case "load":
		return p.cmdLoad(args)
	case "vertex":
		return p.cmdVertex(args)
	case "vertexnormal":
		return p.cmdVertexNormal(args)
	case "computevertexnormals":
		p.computeVertNormal = true
		return nil
	case "sphere":
		return p.cmdSphere(args)
	case "tri":
		return p.cmdTri(args, false)
	case "trinormal":
		return p.cmdTri(args, true)
	case "translate":
		return p.cmdTranslate(args)
	case "rotate":
		return p.cmdRotate(args)
	case "scale":
		return p.cmdScale(args)
	case "pushtransform":
		p.xforms = append(p.xforms, p.top())
		return nil
	case "poptransform":
		if len(p.xforms) <= 1 {
			return fmt.Errorf("popTransform: stack underflow")
		}
		p.xforms = p.xforms[:len(p.xforms)-1]
		return nil
	case "directional":
		return p.cmdDirectional(args)
	case "point":
		return p.cmdPoint(args)
	case "quad":
		return p.cmdQuad(args)
	case "attenuation":
		return p.cmdAttenuation(args)
	case "ambient":
		return p.cmdSceneAmbient(args)
	case "diffuse":
		return p.cmdDiffuse(args)
	case "specular":
		return p.cmdSpecular(args)
	case "emission":
		return p.cmdEmission(args)
	case "shininess":
		return p.cmdShininess(args)
	case "roughness":
		return p.cmdRoughness(args)
	case "brdf":
		return p.cmdBRDF(args)
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func floats(args []string, n int) ([]float32, error) {
	if len(args) < n {
		return nil, fmt.Errorf("expected %d numeric arguments, got %d", n, len(args))
	}
	out := make([]float32, n)
	for i := 0; i < n; i++ {
		f, err := strconv.ParseFloat(args[i], 32)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i, err)
		}
		out[i] = float32(f)
	}
	return out, nil
}

func vec3(args []string) (lin.Vec3, error) {
	f, err := floats(args, 3)
	if err != nil {
		return lin.Zero, err
	}
	return lin.V3(f[0], f[1], f[2]), nil
}

func (p *parser) cmdSize(args []string) error {
	f, err := floats(args, 2)
	if err != nil {
		return err
	}
	p.width, p.height = int(f[0]), int(f[1])
	return nil
}

func (p *parser) cmdMaxDepth(args []string) error {
	f, err := floats(args, 1)
	if err != nil {
		return err
	}
	p.maxDepth = int(f[0])
	return nil
}

func (p *parser) cmdMinDepth(args []string) error {
	f, err := floats(args, 1)
	if err != nil {
		return err
	}
	p.minDepth = int(f[0])
	return nil
}

func (p *parser) cmdOutput(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("expected a path")
	}
	p.output = args[0]
	return nil
}

func (p *parser) cmdGamma(args []string) error {
	f, err := floats(args, 1)
	if err != nil {
		return err
	}
	p.gamma = f[0]
	return nil
}

func (p *parser) cmdSeed(args []string) error {
	f, err := floats(args, 1)
	if err != nil {
		return err
	}
	p.seed = int64(f[0])
	return nil
}

func (p *parser) cmdIntegrator(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("expected an integrator name")
	}
	switch strings.ToLower(args[0]) {
	case "normals":
		p.integrator = Normals
	case "depth":
		p.integrator = Depth
	case "albedo":
		p.integrator = Albedo
	case "raytracer":
		p.integrator = Raytracer
	case "analyticdirect":
		p.integrator = AnalyticDirect
	case "pathtracer":
		p.integrator = PathTracer
	default:
		return fmt.Errorf("unknown integrator %q", args[0])
	}
	return nil
}

func (p *parser) cmdPixelSamples(args []string) error {
	f, err := floats(args, 1)
	if err != nil {
		return err
	}
	p.pixelSamples = int(f[0])
	return nil
}

func (p *parser) cmdLightSamples(args []string) error {
	f, err := floats(args, 1)
	if err != nil {
		return err
	}
	p.lightSamples = int(f[0])
	return nil
}

func (p *parser) cmdLightStratify(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("expected true/false")
	}
	p.lightStratify = strings.EqualFold(args[0], "true")
	return nil
}

func (p *parser) cmdNEE(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("expected off/on/mis")
	}
	switch strings.ToLower(args[0]) {
	case "off":
		p.nee = NEEOff
	case "on":
		p.nee = NEEOn
	case "mis":
		p.nee = NEEMIS
	default:
		return fmt.Errorf("unknown nee mode %q", args[0])
	}
	return nil
}

func (p *parser) cmdRussianRoulette(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("expected true/false")
	}
	p.rr = strings.EqualFold(args[0], "true")
	return nil
}

func (p *parser) cmdImportance(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("expected hemisphere/cosine/brdf")
	}
	switch strings.ToLower(args[0]) {
	case "hemisphere":
		p.importance = ImportanceHemisphere
	case "cosine":
		p.importance = ImportanceCosine
	case "brdf":
		p.importance = ImportanceBRDF
	default:
		return fmt.Errorf("unknown importance mode %q", args[0])
	}
	return nil
}

func (p *parser) cmdCamera(args []string) error {
	f, err := floats(args, 10)
	if err != nil {
		return err
	}
	p.camEye = lin.V3(f[0], f[1], f[2])
	p.camLook = lin.V3(f[3], f[4], f[5])
	p.camUp = lin.V3(f[6], f[7], f[8])
	p.camFovY = f[9]
	return nil
}

// cmdMaxCount parses maxverts/maxvertnorms: validated but otherwise a no-op
// (SPEC_FULL.md supplement 3) since Go's slices grow as needed.
func (p *parser) cmdMaxCount(args []string) error {
	f, err := floats(args, 1)
	if err != nil {
		return err
	}
	if f[0] < 0 {
		return fmt.Errorf("negative count")
	}
	return nil
}

func (p *parser) cmdVertex(args []string) error {
	v, err := vec3(args)
	if err != nil {
		return err
	}
	p.verts = append(p.verts, geometry.Vertex{Position: v})
	return nil
}

func (p *parser) cmdVertexNormal(args []string) error {
	f, err := floats(args, 6)
	if err != nil {
		return err
	}
	p.verts = append(p.verts, geometry.Vertex{
		Position: lin.V3(f[0], f[1], f[2]),
		Normal:   lin.V3(f[3], f[4], f[5]),
	})
	return nil
}

func (p *parser) cmdSphere(args []string) error {
	f, err := floats(args, 4)
	if err != nil {
		return err
	}
	sph := &geometry.Sphere{Center: lin.V3(f[0], f[1], f[2]), Radius: f[3]}
	prim := geometry.NewPrimitive(sph, p.top(), p.mat)
	p.prims = append(p.prims, prim)
	return nil
}

// cmdTri looks up three already-declared vertex indices and emits a
// Triangle primitive, accumulating face normals onto shared vertices when
// computeVertexNormals is active (SPEC_FULL.md supplement 2).
func (p *parser) cmdTri(args []string, useVertexNormals bool) error {
	f, err := floats(args, 3)
	if err != nil {
		return err
	}
	i0, i1, i2 := int(f[0]), int(f[1]), int(f[2])
	if i0 < 0 || i1 < 0 || i2 < 0 || i2 >= len(p.verts) || i1 >= len(p.verts) || i0 >= len(p.verts) {
		return fmt.Errorf("vertex index out of range")
	}
	v0, v1, v2 := p.verts[i0], p.verts[i1], p.verts[i2]

	if p.computeVertNormal {
		faceNormal := v1.Position.Sub(v0.Position).Cross(v2.Position.Sub(v0.Position))
		p.verts[i0].Normal = p.verts[i0].Normal.Add(faceNormal)
		p.verts[i1].Normal = p.verts[i1].Normal.Add(faceNormal)
		p.verts[i2].Normal = p.verts[i2].Normal.Add(faceNormal)
		v0, v1, v2 = p.verts[i0], p.verts[i1], p.verts[i2]
	}

	tri := geometry.NewTriangle(v0, v1, v2, useVertexNormals || p.computeVertNormal)
	prim := geometry.NewPrimitive(tri, p.top(), p.mat)
	p.prims = append(p.prims, prim)
	return nil
}

func (p *parser) cmdTranslate(args []string) error {
	v, err := vec3(args)
	if err != nil {
		return err
	}
	p.setTop(p.top().Mult(lin.Translate4(v.X, v.Y, v.Z)))
	return nil
}

func (p *parser) cmdRotate(args []string) error {
	f, err := floats(args, 4)
	if err != nil {
		return err
	}
	axis := lin.V3(f[0], f[1], f[2])
	p.setTop(p.top().Mult(lin.RotateAxisAngle4(axis, lin.Rad(f[3]))))
	return nil
}

func (p *parser) cmdScale(args []string) error {
	v, err := vec3(args)
	if err != nil {
		return err
	}
	p.setTop(p.top().Mult(lin.Scale4(v.X, v.Y, v.Z)))
	return nil
}

func (p *parser) cmdDirectional(args []string) error {
	f, err := floats(args, 6)
	if err != nil {
		return err
	}
	p.lights = append(p.lights, &light.Light{
		Kind:      light.Directional,
		Direction: lin.V3(f[0], f[1], f[2]),
		Color:     lin.V3(f[3], f[4], f[5]),
	})
	return nil
}

func (p *parser) cmdPoint(args []string) error {
	f, err := floats(args, 6)
	if err != nil {
		return err
	}
	p.lights = append(p.lights, &light.Light{
		Kind:     light.Point,
		Position: lin.V3(f[0], f[1], f[2]),
		Color:    lin.V3(f[3], f[4], f[5]),
		Atten:    p.attenuation,
	})
	return nil
}

// cmdQuad builds a quad area light and adds its two constituent triangles
// to the primitive list (emission = light color), back-pointing to the
// light via LightID so the PathTracer can recognize a BRDF-sampled ray
// that found it (spec.md §4.4).
func (p *parser) cmdQuad(args []string) error {
	f, err := floats(args, 12)
	if err != nil {
		return err
	}
	corner := lin.V3(f[0], f[1], f[2])
	edge0 := lin.V3(f[3], f[4], f[5])
	edge1 := lin.V3(f[6], f[7], f[8])
	color := lin.V3(f[9], f[10], f[11])

	lgt := light.NewQuad(corner, edge0, edge1, color)
	lightID := len(p.lights)
	p.lights = append(p.lights, lgt)

	emissive := p.mat.Copy()
	emissive.Emission = color

	v0 := geometry.Vertex{Position: corner}
	v1 := geometry.Vertex{Position: corner.Add(edge0)}
	v2 := geometry.Vertex{Position: corner.Add(edge0).Add(edge1)}
	v3 := geometry.Vertex{Position: corner.Add(edge1)}

	t0 := geometry.NewPrimitive(geometry.NewTriangle(v0, v1, v2, false), p.top(), emissive)
	t1 := geometry.NewPrimitive(geometry.NewTriangle(v0, v2, v3, false), p.top(), emissive)
	t0.LightID, t1.LightID = lightID, lightID
	p.prims = append(p.prims, t0, t1)
	return nil
}

func (p *parser) cmdAttenuation(args []string) error {
	v, err := vec3(args)
	if err != nil {
		return err
	}
	p.attenuation = v
	return nil
}

func (p *parser) cmdSceneAmbient(args []string) error {
	v, err := vec3(args)
	if err != nil {
		return err
	}
	p.ambient = v
	return nil
}

// mutate returns the parser's current material for in-place edit, cloning
// it first so earlier primitives referencing the old value are unaffected
// (spec.md §6 copy-on-write material semantics).
func (p *parser) mutate() *material.Material {
	p.mat = p.mat.Copy()
	return p.mat
}

func (p *parser) cmdDiffuse(args []string) error {
	v, err := vec3(args)
	if err != nil {
		return err
	}
	p.mutate().Diffuse = v
	return nil
}

func (p *parser) cmdSpecular(args []string) error {
	v, err := vec3(args)
	if err != nil {
		return err
	}
	p.mutate().Specular = v
	return nil
}

func (p *parser) cmdEmission(args []string) error {
	v, err := vec3(args)
	if err != nil {
		return err
	}
	p.mutate().Emission = v
	return nil
}

func (p *parser) cmdShininess(args []string) error {
	f, err := floats(args, 1)
	if err != nil {
		return err
	}
	p.mutate().Shininess = f[0]
	return nil
}

func (p *parser) cmdRoughness(args []string) error {
	f, err := floats(args, 1)
	if err != nil {
		return err
	}
	p.mutate().Roughness = f[0]
	return nil
}

// cmdLoad inlines another scene file's commands into the current parser
// state (spec.md §6 "external-file load"), sharing the transform stack,
// vertex table, and current material so an included file can add geometry
// under the includer's transform.
func (p *parser) cmdLoad(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("expected a path")
	}
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("load %s: %w", args[0], err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if err := p.parseLine(line); err != nil {
			p.logger.Warn("malformed line in loaded file", "file", args[0], "line", lineNo, "text", line, "error", err)
		}
	}
	p.scanCompanionSwatch(args[0])
	return scanner.Err()
}

// scanCompanionSwatch looks for a BMP swatch alongside a loaded mesh file
// (same base name, .bmp extension) and decodes it, logging its dimensions.
// Muon has no texture Non-goal per spec.md §1, so the pixels are discarded
// rather than sampled; this only confirms the mesh's declared texture
// reference is a real, decodable image (SPEC_FULL.md DOMAIN STACK item 3).
func (p *parser) scanCompanionSwatch(meshPath string) {
	swatchPath := strings.TrimSuffix(meshPath, filepath.Ext(meshPath)) + ".bmp"
	f, err := os.Open(swatchPath)
	if err != nil {
		return
	}
	defer f.Close()
	img, err := bmp.Decode(f)
	if err != nil {
		p.logger.Warn("companion texture swatch is not a decodable BMP", "file", swatchPath, "error", err)
		return
	}
	b := img.Bounds()
	p.logger.Info("decoded companion texture swatch (not sampled)", "file", swatchPath, "width", b.Dx(), "height", b.Dy())
}

func (p *parser) cmdBRDF(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("expected lambertian/phong/ggx")
	}
	switch strings.ToLower(args[0]) {
	case "lambertian":
		p.mutate().Kind = material.Lambertian
	case "phong":
		p.mutate().Kind = material.Phong
	case "ggx":
		p.mutate().Kind = material.GGX
	default:
		return fmt.Errorf("unknown brdf %q", args[0])
	}
	return nil
}
