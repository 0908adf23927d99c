// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package film accumulates per-sample HDR radiance into a pixel grid and
// writes it out as an 8-bit PNG after gamma correction and clamping.
package film

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/galvanizedlogic/muon/math/lin"
)

// ErrOutOfBounds is returned by AddSample for a pixel coordinate outside
// the film's dimensions; spec.md §7 treats this as a programmer error (a
// sampler bug), not a runtime condition callers should recover from.
var ErrOutOfBounds = errors.New("film: pixel coordinate out of bounds")

// Film is the per-pixel HDR radiance accumulator. Pixel writes are never
// locked: tiles partition the image so no two threads ever write the same
// pixel (spec.md §5).
type Film struct {
	width, height int
	pixels        []lin.Vec3
}

// New returns a zeroed Film of the given dimensions.
func New(width, height int) *Film {
	return &Film{width: width, height: height, pixels: make([]lin.Vec3, width*height)}
}

// AddSample accumulates radiance into pixel (x, y). Multiple samples for
// the same pixel simply sum; Write divides by pixelSamples.
func (f *Film) AddSample(x, y int, radiance lin.Vec3) error {
	if x < 0 || x >= f.width || y < 0 || y >= f.height {
		return fmt.Errorf("film.AddSample: %w: (%d, %d) not in %dx%d", ErrOutOfBounds, x, y, f.width, f.height)
	}
	idx := y*f.width + x
	f.pixels[idx] = f.pixels[idx].Add(radiance)
	return nil
}

// Write divides every pixel by pixelSamples, applies gamma correction and
// [0,1] clamping, and encodes the result as an 8-bit RGB PNG at path.
func (f *Film) Write(path string, gamma float32, pixelSamples int) error {
	img := image.NewRGBA(image.Rect(0, 0, f.width, f.height))
	invGamma := 1 / gamma
	invSamples := float32(1)
	if pixelSamples > 0 {
		invSamples = 1 / float32(pixelSamples)
	}
	for y := 0; y < f.height; y++ {
		for x := 0; x < f.width; x++ {
			v := f.pixels[y*f.width+x].Scale(invSamples)
			r := toByte(v.X, invGamma)
			g := toByte(v.Y, invGamma)
			b := toByte(v.Z, invGamma)
			img.Set(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
		}
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("film.Write: could not create %s: %w", path, err)
	}
	defer out.Close()
	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("film.Write: could not encode %s: %w", path, err)
	}
	return nil
}

func toByte(channel, invGamma float32) uint8 {
	tonemapped := float32(math.Pow(float64(lin.Clamp(channel, 0, 1)), float64(invGamma)))
	return uint8(lin.Clamp(tonemapped, 0, 1) * 255)
}
