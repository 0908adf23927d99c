// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package accel holds the two acceleration structures Muon can traverse
// against (a flat Linear scan and a BVH with three build strategies) plus
// the per-thread Workspace their traversal needs.
package accel

// stackDepth is the fixed capacity of a Workspace's traversal stack.
// spec.md §9: "never grows beyond 2*depth(tree)... adequate for N up to
// ~2^20 primitives."
const stackDepth = 64

// Workspace is per-thread scratch for BVH traversal: the explicit DFS
// stack and trace counters. Created once per worker, reused for every ray
// (spec.md §3 "Workspace").
type Workspace struct {
	stack    [stackDepth]int32
	sp       int
	NodeVisits      uint64
	PrimitiveTests  uint64
}

func (w *Workspace) reset() { w.sp = 0 }

func (w *Workspace) push(node int32) {
	if w.sp >= stackDepth {
		panic("accel: BVH traversal stack overflow")
	}
	w.stack[w.sp] = node
	w.sp++
}

func (w *Workspace) pop() (int32, bool) {
	if w.sp == 0 {
		return 0, false
	}
	w.sp--
	return w.stack[w.sp], true
}
