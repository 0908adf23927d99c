// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package camera implements the pinhole camera model: given a pixel (or
// sub-pixel) coordinate, cast a world-space ray from the eye through it.
package camera

import (
	"math"

	"github.com/galvanizedlogic/muon/math/lin"
)

// Camera is a pinhole camera, spec.md §4.5.
type Camera struct {
	eye              lin.Vec3
	width, height    float32
	tanFovX, tanFovY float32
	u, v, w          lin.Vec3
}

// New builds a Camera looking from eye toward lookAt, with fovY in degrees.
func New(eye, lookAt, up lin.Vec3, fovY float32, width, height int) *Camera {
	tanY := tan32(lin.Rad(fovY) / 2)
	tanX := tanY * float32(width) / float32(height)

	w := eye.Sub(lookAt).Unit()
	u := up.Cross(w).Unit()
	v := w.Cross(u)

	return &Camera{
		eye: eye, width: float32(width), height: float32(height),
		tanFovX: tanX, tanFovY: tanY,
		u: u, v: v, w: w,
	}
}

// CastRay returns the ray from eye through pixel coordinate (x, y). x and y
// may be sub-pixel (e.g. x+0.5, y+0.37) per spec.md §4.6's sampler.
func (c *Camera) CastRay(x, y float32) lin.Ray {
	halfW, halfH := c.width/2, c.height/2
	alpha := c.tanFovX * (x - halfW) / halfW
	beta := c.tanFovY * (halfH - y) / halfH
	dir := c.u.Scale(alpha).Add(c.v.Scale(beta)).Sub(c.w).Unit()
	return lin.NewRay(c.eye, dir)
}

func tan32(x float32) float32 { return float32(math.Tan(float64(x))) }
