// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package accel

import (
	"sort"

	"github.com/galvanizedlogic/muon/geometry"
	"github.com/galvanizedlogic/muon/math/lin"
)

// Strategy selects the BVH partition heuristic used at every internal
// node, spec.md §4.2.
type Strategy int

const (
	Uniform Strategy = iota
	Midpoint
	SAH
)

// kBox is the SAH traversal cost constant, spec.md §4.2.
const kBox = 0.125

// saBuckets is the number of SAH buckets (and saBuckets-1 candidate
// splits), spec.md §4.2.
const saBuckets = 12

type bvhNode struct {
	bounds     lin.Bounds3
	start      int32 // leaf: index into BVH.prims
	count      int32 // leaf: primitive count; 0 marks an internal node
	axis       int8
	left, right int32
}

// BVH is a binary bounding-volume hierarchy over a reordered primitive
// array, spec.md §3 "BVH node" / §4.2.
type BVH struct {
	prims    []*geometry.Primitive
	nodes    []bvhNode
	strategy Strategy
}

type primInfo struct {
	index    int
	bounds   lin.Bounds3
	centroid lin.Vec3
}

// Build constructs a BVH over prims using the given partition strategy.
// prims is not mutated; the BVH owns its own reordered copy.
func Build(prims []*geometry.Primitive, strategy Strategy) *BVH {
	n := len(prims)
	info := make([]primInfo, n)
	for i, p := range prims {
		b := p.WorldBounds()
		info[i] = primInfo{index: i, bounds: b, centroid: b.Centroid()}
	}
	nodes := make([]bvhNode, 0, 2*n)
	if n > 0 {
		buildRange(info, 0, n, strategy, &nodes)
	}
	ordered := make([]*geometry.Primitive, n)
	for i, inf := range info {
		ordered[i] = prims[inf.index]
	}
	return &BVH{prims: ordered, nodes: nodes, strategy: strategy}
}

func unionBounds(info []primInfo, start, end int) lin.Bounds3 {
	b := lin.EmptyBounds3()
	for i := start; i < end; i++ {
		b = b.Union(info[i].bounds)
	}
	return b
}

func centroidBounds(info []primInfo, start, end int) lin.Bounds3 {
	b := lin.EmptyBounds3()
	for i := start; i < end; i++ {
		b = b.UnionPoint(info[i].centroid)
	}
	return b
}

// buildRange recursively builds the subtree over info[start:end), appending
// nodes to *nodes, and returns the index of the subtree's root node.
func buildRange(info []primInfo, start, end int, strategy Strategy, nodes *[]bvhNode) int {
	idx := len(*nodes)
	*nodes = append(*nodes, bvhNode{})

	if end-start == 1 {
		(*nodes)[idx] = bvhNode{bounds: info[start].bounds, start: int32(start), count: 1}
		return idx
	}

	cb := centroidBounds(info, start, end)
	axis := cb.MaxAxis()

	mid, leaf := partition(info, start, end, axis, cb, strategy)
	if leaf {
		(*nodes)[idx] = bvhNode{bounds: unionBounds(info, start, end), start: int32(start), count: int32(end - start)}
		return idx
	}

	left := buildRange(info, start, mid, strategy, nodes)
	right := buildRange(info, mid, end, strategy, nodes)
	b := (*nodes)[left].bounds.Union((*nodes)[right].bounds)
	(*nodes)[idx] = bvhNode{bounds: b, axis: int8(axis), left: int32(left), right: int32(right)}
	return idx
}

// partition splits info[start:end) by the requested strategy, returning
// the split index and whether the range should be a leaf instead (SAH
// only). Midpoint and SAH fall back to Uniform on a degenerate partition.
func partition(info []primInfo, start, end int, axis int, cb lin.Bounds3, strategy Strategy) (mid int, leaf bool) {
	switch strategy {
	case Midpoint:
		if m, ok := partitionMidpoint(info, start, end, axis, cb); ok {
			return m, false
		}
	case SAH:
		if m, isLeaf, ok := partitionSAH(info, start, end, axis, cb); ok {
			return m, isLeaf
		}
	}
	return partitionUniform(info, start, end, axis), false
}

func partitionUniform(info []primInfo, start, end int, axis int) int {
	s := info[start:end]
	sort.Slice(s, func(i, j int) bool { return s[i].centroid.Axis(axis) < s[j].centroid.Axis(axis) })
	return start + (end-start)/2
}

func partitionMidpoint(info []primInfo, start, end int, axis int, cb lin.Bounds3) (int, bool) {
	pivot := (cb.Min.Axis(axis) + cb.Max.Axis(axis)) / 2
	i, j := start, end-1
	for i <= j {
		for i <= j && info[i].centroid.Axis(axis) < pivot {
			i++
		}
		for i <= j && info[j].centroid.Axis(axis) >= pivot {
			j--
		}
		if i < j {
			info[i], info[j] = info[j], info[i]
			i++
			j--
		}
	}
	if i == start || i == end {
		return 0, false
	}
	return i, true
}

type sahBucket struct {
	count  int
	bounds lin.Bounds3
}

func partitionSAH(info []primInfo, start, end int, axis int, cb lin.Bounds3) (mid int, leaf bool, ok bool) {
	n := end - start
	extentMin, extentMax := cb.Min.Axis(axis), cb.Max.Axis(axis)
	extent := extentMax - extentMin

	buckets := make([]sahBucket, saBuckets)
	for i := range buckets {
		buckets[i].bounds = lin.EmptyBounds3()
	}
	bucketOf := func(c float32) int {
		if extent == 0 {
			return 0
		}
		b := int(saBuckets * (c - extentMin) / extent)
		if b >= saBuckets {
			b = saBuckets - 1
		}
		if b < 0 {
			b = 0
		}
		return b
	}
	for i := start; i < end; i++ {
		b := bucketOf(info[i].centroid.Axis(axis))
		buckets[b].count++
		buckets[b].bounds = buckets[b].bounds.Union(info[i].bounds)
	}

	nodeSA := unionBounds(info, start, end).SurfaceArea()

	bestCost := lin.Inf
	bestSplit := -1
	for split := 0; split < saBuckets-1; split++ {
		lBounds, rBounds := lin.EmptyBounds3(), lin.EmptyBounds3()
		lCount, rCount := 0, 0
		for i := 0; i <= split; i++ {
			if buckets[i].count > 0 {
				lBounds = lBounds.Union(buckets[i].bounds)
				lCount += buckets[i].count
			}
		}
		for i := split + 1; i < saBuckets; i++ {
			if buckets[i].count > 0 {
				rBounds = rBounds.Union(buckets[i].bounds)
				rCount += buckets[i].count
			}
		}
		cost := float32(kBox)
		if nodeSA > 0 {
			cost += (float32(lCount)*lBounds.SurfaceArea() + float32(rCount)*rBounds.SurfaceArea()) / nodeSA
		}
		if cost < bestCost {
			bestCost, bestSplit = cost, split
		}
	}

	if bestCost > float32(n) {
		return 0, true, true
	}

	i, j := start, end-1
	for i <= j {
		for i <= j && bucketOf(info[i].centroid.Axis(axis)) <= bestSplit {
			i++
		}
		for i <= j && bucketOf(info[j].centroid.Axis(axis)) > bestSplit {
			j--
		}
		if i < j {
			info[i], info[j] = info[j], info[i]
			i++
			j--
		}
	}
	if i == start || i == end {
		return 0, false, false
	}
	return i, false, true
}

func (b *BVH) Bounds() lin.Bounds3 {
	if len(b.nodes) == 0 {
		return lin.EmptyBounds3()
	}
	return b.nodes[0].bounds
}

// Intersect performs an iterative closest-hit DFS, spec.md §4.2.
func (b *BVH) Intersect(r lin.Ray, ws *Workspace) (geometry.Hit, bool) {
	if len(b.nodes) == 0 {
		return geometry.Hit{}, false
	}
	var firstChild [3]int32
	for axis := 0; axis < 3; axis++ {
		if r.Dir.Axis(axis) < 0 {
			firstChild[axis] = 1
		}
	}

	ws.reset()
	ws.push(0)
	best, found := geometry.Hit{}, false
	closest := lin.Inf

	for {
		idx, ok := ws.pop()
		if !ok {
			break
		}
		node := &b.nodes[idx]
		ws.NodeVisits++
		if !node.bounds.Hit(r, closest) {
			continue
		}
		if node.count > 0 {
			for i := node.start; i < node.start+node.count; i++ {
				ws.PrimitiveTests++
				if hit, ok := b.prims[i].Intersect(r); ok && hit.Distance < closest {
					best, found, closest = hit, true, hit.Distance
				}
			}
			continue
		}
		near, far := node.left, node.right
		if firstChild[node.axis] == 1 {
			near, far = node.right, node.left
		}
		ws.push(far)
		ws.push(near)
	}
	return best, found
}

// IntersectAny performs an iterative any-hit DFS with a fixed distance cap,
// spec.md §4.2.
func (b *BVH) IntersectAny(r lin.Ray, maxDist float32, ws *Workspace) bool {
	if len(b.nodes) == 0 {
		return false
	}
	ws.reset()
	ws.push(0)
	for {
		idx, ok := ws.pop()
		if !ok {
			return false
		}
		node := &b.nodes[idx]
		ws.NodeVisits++
		if !node.bounds.Hit(r, maxDist) {
			continue
		}
		if node.count > 0 {
			for i := node.start; i < node.start+node.count; i++ {
				ws.PrimitiveTests++
				if hit, ok := b.prims[i].Intersect(r); ok && hit.Distance > 0 && hit.Distance < maxDist {
					ws.reset()
					return true
				}
			}
			continue
		}
		ws.push(node.left)
		ws.push(node.right)
	}
}
