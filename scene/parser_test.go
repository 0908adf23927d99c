// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package scene

import (
	"bytes"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/image/bmp"

	"github.com/galvanizedlogic/muon/accel"
	"github.com/galvanizedlogic/muon/math/lin"
)

func mustParse(t *testing.T, text string) *Scene {
	t.Helper()
	sc, err := Parse(strings.NewReader(text), Options{}, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return sc
}

func TestParseSizeAndCamera(t *testing.T) {
	sc := mustParse(t, `
size 40 30
camera 0 0 5 0 0 0 0 1 0 45
`)
	if sc.Width != 40 || sc.Height != 30 {
		t.Fatalf("got size %dx%d, want 40x30", sc.Width, sc.Height)
	}
	if sc.Camera == nil {
		t.Fatal("camera not built")
	}
}

func TestParseSkipsCommentsAndBlankLines(t *testing.T) {
	sc := mustParse(t, "\n# a comment\n   \nsize 4 4\n")
	if sc.Width != 4 {
		t.Fatalf("got width %d, want 4", sc.Width)
	}
}

func TestParseUnknownCommandIsSkippedNotFatal(t *testing.T) {
	sc, err := Parse(strings.NewReader("bogus 1 2 3\nsize 4 4\n"), Options{}, nil)
	if err != nil {
		t.Fatalf("unknown command should not be fatal: %v", err)
	}
	if sc.Width != 4 {
		t.Fatalf("parsing should continue after an unknown command")
	}
}

func TestParseSphereUsesCurrentMaterial(t *testing.T) {
	sc := mustParse(t, `
diffuse 0.5 0.25 0.1
sphere 0 0 0 1
`)
	if len(sc.Primitives) != 1 {
		t.Fatalf("got %d primitives, want 1", len(sc.Primitives))
	}
	if !sc.Primitives[0].Material.Diffuse.Aeq(lin.V3(0.5, 0.25, 0.1)) {
		t.Fatalf("got diffuse %v, want (0.5,0.25,0.1)", sc.Primitives[0].Material.Diffuse)
	}
}

func TestParseMaterialCopyOnWrite(t *testing.T) {
	sc := mustParse(t, `
diffuse 1 0 0
sphere 0 0 0 1
diffuse 0 1 0
sphere 2 0 0 1
`)
	if len(sc.Primitives) != 2 {
		t.Fatalf("got %d primitives, want 2", len(sc.Primitives))
	}
	if !sc.Primitives[0].Material.Diffuse.Aeq(lin.V3(1, 0, 0)) {
		t.Fatalf("first sphere's material was mutated by the later diffuse command: got %v", sc.Primitives[0].Material.Diffuse)
	}
	if !sc.Primitives[1].Material.Diffuse.Aeq(lin.V3(0, 1, 0)) {
		t.Fatalf("got %v, want (0,1,0)", sc.Primitives[1].Material.Diffuse)
	}
}

func TestParseTransformStackPushPop(t *testing.T) {
	sc := mustParse(t, `
pushTransform
translate 5 0 0
sphere 0 0 0 1
popTransform
sphere 0 0 0 1
`)
	if len(sc.Primitives) != 2 {
		t.Fatalf("got %d primitives, want 2", len(sc.Primitives))
	}
	translated := sc.Primitives[0].Transform.TransformPoint(lin.Zero)
	if !translated.Aeq(lin.V3(5, 0, 0)) {
		t.Fatalf("first sphere should be translated, got center %v", translated)
	}
	untouched := sc.Primitives[1].Transform.TransformPoint(lin.Zero)
	if !untouched.Aeq(lin.Zero) {
		t.Fatalf("popTransform should restore the prior transform, got center %v", untouched)
	}
}

func TestParsePopTransformUnderflowIsNonFatal(t *testing.T) {
	sc, err := Parse(strings.NewReader("popTransform\nsize 4 4\n"), Options{}, nil)
	if err != nil {
		t.Fatalf("stack underflow should warn, not fail parsing: %v", err)
	}
	if sc.Width != 4 {
		t.Fatal("parsing should continue after popTransform underflow")
	}
}

func TestParseTriangleUsesDeclaredVertices(t *testing.T) {
	sc := mustParse(t, `
vertex 0 0 0
vertex 1 0 0
vertex 0 1 0
tri 0 1 2
`)
	if len(sc.Primitives) != 1 {
		t.Fatalf("got %d primitives, want 1", len(sc.Primitives))
	}
}

func TestParseQuadAddsTwoLightBackedTriangles(t *testing.T) {
	sc := mustParse(t, `
quad -1 5 -1 2 0 0 0 0 2 10 10 10
`)
	if len(sc.Lights) != 1 {
		t.Fatalf("got %d lights, want 1", len(sc.Lights))
	}
	if len(sc.Primitives) != 2 {
		t.Fatalf("got %d primitives, want 2 (the quad's two triangles)", len(sc.Primitives))
	}
	for _, p := range sc.Primitives {
		if p.LightID != 0 {
			t.Fatalf("quad triangle should back-point to light 0, got %d", p.LightID)
		}
		if !p.Material.Emission.Aeq(lin.V3(10, 10, 10)) {
			t.Fatalf("quad triangle material should carry the light color as emission, got %v", p.Material.Emission)
		}
	}
}

func TestParseComputeVertexNormalsAccumulatesFaceNormals(t *testing.T) {
	sc := mustParse(t, `
computeVertexNormals
vertex 0 0 0
vertex 1 0 0
vertex 0 1 0
tri 0 1 2
`)
	if len(sc.Primitives) != 1 {
		t.Fatalf("got %d primitives, want 1", len(sc.Primitives))
	}
}

func TestParseAttenuationAppliesToSubsequentPointLights(t *testing.T) {
	sc := mustParse(t, `
attenuation 1 0.5 0.1
point 0 0 0 1 1 1
`)
	if len(sc.Lights) != 1 {
		t.Fatalf("got %d lights, want 1", len(sc.Lights))
	}
	if !sc.Lights[0].Atten.Aeq(lin.V3(1, 0.5, 0.1)) {
		t.Fatalf("got attenuation %v, want (1,0.5,0.1)", sc.Lights[0].Atten)
	}
}

func TestParseSceneAmbient(t *testing.T) {
	sc := mustParse(t, "ambient 0.1 0.2 0.3\n")
	if !sc.Ambient.Aeq(lin.V3(0.1, 0.2, 0.3)) {
		t.Fatalf("got ambient %v, want (0.1,0.2,0.3)", sc.Ambient)
	}
}

func TestParseMaxVertsIsNoOpButValidated(t *testing.T) {
	sc, err := Parse(strings.NewReader("maxverts -1\nsize 4 4\n"), Options{}, nil)
	if err != nil {
		t.Fatalf("negative maxverts should warn, not fail parsing: %v", err)
	}
	if sc.Width != 4 {
		t.Fatal("parsing should continue after a malformed maxverts")
	}
}

func TestParseIntegratorSelection(t *testing.T) {
	sc := mustParse(t, "integrator pathtracer\n")
	if sc.Integrator != PathTracer {
		t.Fatalf("got integrator %v, want PathTracer", sc.Integrator)
	}
}

func TestParseBVHAccelerationDefault(t *testing.T) {
	sc := mustParse(t, "sphere 0 0 0 1\nsphere 3 0 0 1\n")
	if _, ok := sc.Accel.(*accel.BVH); !ok {
		t.Fatalf("default accelerator should be a BVH, got %T", sc.Accel)
	}
}

func TestParseLoadInlinesAnotherFile(t *testing.T) {
	dir := t.TempDir()
	included := filepath.Join(dir, "included.scene")
	if err := os.WriteFile(included, []byte("sphere 0 0 0 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	sc := mustParse(t, "load "+included+"\n")
	if len(sc.Primitives) != 1 {
		t.Fatalf("got %d primitives, want 1 from the loaded file", len(sc.Primitives))
	}
}

func TestParseLoadScansCompanionSwatch(t *testing.T) {
	dir := t.TempDir()
	meshPath := filepath.Join(dir, "mesh.scene")
	if err := os.WriteFile(meshPath, []byte("sphere 0 0 0 1\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := bmp.Encode(&buf, img); err != nil {
		t.Fatalf("bmp.Encode: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "mesh.bmp"), buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// the swatch scan logs but never fails parsing or alters primitives.
	sc := mustParse(t, "load "+meshPath+"\n")
	if len(sc.Primitives) != 1 {
		t.Fatalf("got %d primitives, want 1", len(sc.Primitives))
	}
}

func TestParseLinearAcceleration(t *testing.T) {
	sc, err := Parse(strings.NewReader("sphere 0 0 0 1\n"), Options{Acceleration: "linear"}, nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if _, ok := sc.Accel.(*accel.Linear); !ok {
		t.Fatalf("accelerator should be Linear, got %T", sc.Accel)
	}
}
