// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package sampler

import "math"

// Sample is a sub-pixel position in continuous image coordinates.
type Sample struct {
	X, Y float32
}

// PixelSamples returns n sub-pixel positions for pixel (x, y). The first
// sample is always the pixel center (backwards-compatibility with
// pre-multi-sample renders, spec.md §4.6); the rest are drawn uniformly
// from [x, x+1) x [y, y+1) using rng.
func PixelSamples(x, y, n int, rng Rand) []Sample {
	samples := make([]Sample, n)
	samples[0] = Sample{X: float32(x) + 0.5, Y: float32(y) + 0.5}
	for i := 1; i < n; i++ {
		samples[i] = Sample{
			X: guardUpperBound(float32(x)+rng.Float32(), float32(x+1)),
			Y: guardUpperBound(float32(y)+rng.Float32(), float32(y+1)),
		}
	}
	return samples
}

// Rand is the uniform [0,1) draw the sampler needs.
type Rand interface {
	Float32() float32
}

// guardUpperBound steps v one ULP toward -Inf if it landed exactly on the
// next integer, per spec.md §4.6's rounding guard.
func guardUpperBound(v, bound float32) float32 {
	if v == bound {
		return math.Nextafter32(v, float32(math.Inf(-1)))
	}
	return v
}
