// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package lin

// Bounds3 is an axis-aligned bounding box. The empty box (the identity for
// Union) has Min = +Inf and Max = -Inf on every axis.
type Bounds3 struct {
	Min Vec3
	Max Vec3
}

// EmptyBounds3 returns the empty bounding box.
func EmptyBounds3() Bounds3 {
	return Bounds3{Min: Splat(Inf), Max: Splat(-Inf)}
}

// PointBounds3 returns the degenerate bounding box containing only p.
func PointBounds3(p Vec3) Bounds3 {
	return Bounds3{Min: p, Max: p}
}

// UnionPoint returns b expanded to also contain p.
func (b Bounds3) UnionPoint(p Vec3) Bounds3 {
	return Bounds3{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Union returns the smallest bounding box containing both b and o.
func (b Bounds3) Union(o Bounds3) Bounds3 {
	return Bounds3{Min: b.Min.Min(o.Min), Max: b.Max.Max(o.Max)}
}

// Dimensions returns the extent of the box along each axis.
func (b Bounds3) Dimensions() Vec3 { return b.Max.Sub(b.Min) }

// Centroid returns the midpoint of the box.
func (b Bounds3) Centroid() Vec3 { return b.Min.Add(b.Max).Scale(0.5) }

// SurfaceArea returns the total surface area of the box. The empty box
// returns +Inf (its extents are -Inf on every axis); a single-point box
// returns 0.
func (b Bounds3) SurfaceArea() float32 {
	d := b.Dimensions()
	return 2 * (d.X*d.Y + d.X*d.Z + d.Y*d.Z)
}

// MaxAxis returns 0, 1, or 2 for the longest dimension, ties broken
// x > y > z.
func (b Bounds3) MaxAxis() int { return b.Dimensions().MaxAxis() }

// Corner returns one of the 8 corners of the box, selected by the low 3
// bits of i (bit 0 = x, bit 1 = y, bit 2 = z; 0 selects Min, 1 selects Max).
func (b Bounds3) Corner(i int) Vec3 {
	x := b.Min.X
	if i&1 != 0 {
		x = b.Max.X
	}
	y := b.Min.Y
	if i&2 != 0 {
		y = b.Max.Y
	}
	z := b.Min.Z
	if i&4 != 0 {
		z = b.Max.Z
	}
	return Vec3{X: x, Y: y, Z: z}
}

// Transform returns the AABB of the 8 transformed corners of b.
func (b Bounds3) Transform(m Mat4) Bounds3 {
	out := PointBounds3(m.TransformPoint(b.Corner(0)))
	for i := 1; i < 8; i++ {
		out = out.UnionPoint(m.TransformPoint(b.Corner(i)))
	}
	return out
}

// Slab intersects ray against b, returning the entry and exit distances.
// ok is false when there is no overlap between the per-axis windows.
// Division by a zero direction component is intentional: it produces ±Inf,
// which propagates correctly through the subsequent min/max.
func (b Bounds3) Slab(r Ray) (tMin, tMax float32, ok bool) {
	tMin, tMax = 0, Inf
	origin, dir := [3]float32{r.Origin.X, r.Origin.Y, r.Origin.Z}, [3]float32{r.Dir.X, r.Dir.Y, r.Dir.Z}
	bmin, bmax := [3]float32{b.Min.X, b.Min.Y, b.Min.Z}, [3]float32{b.Max.X, b.Max.Y, b.Max.Z}
	for axis := 0; axis < 3; axis++ {
		axisMin := (bmin[axis] - origin[axis]) / dir[axis]
		axisMax := (bmax[axis] - origin[axis]) / dir[axis]
		if axisMin > axisMax {
			axisMin, axisMax = axisMax, axisMin
		}
		tMin = Max(tMin, axisMin)
		tMax = Min(tMax, axisMax)
		if tMin > tMax {
			return tMin, tMax, false
		}
	}
	return tMin, tMax, true
}

// Hit reports whether ray intersects b within the distance cap tCap. An
// origin inside the box counts as a hit (tMax > 0 even when tMin < 0).
func (b Bounds3) Hit(r Ray, tCap float32) bool {
	_, tMax, ok := b.Slab(r)
	if !ok {
		return false
	}
	tMin, _, _ := b.Slab(r)
	return tMax > 0 && tMin < tCap
}
