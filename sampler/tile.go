// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package sampler partitions the image into tiles, hands tiles out to
// workers through a concurrent-safe queue, and generates sub-pixel sample
// positions within a pixel.
package sampler

import "sync"

// Tile is a horizontal slice of the image, full width, covering rows
// [Y, Y+Height). Tiles partition the image with no overlap (spec.md §3).
type Tile struct {
	Index  int
	X      int
	Y      int
	Width  int
	Height int
}

// PartitionTiles splits an image of the given dimensions into horizontal
// tiles per spec.md §4.6: num_tiles = clamp(max(totalSamples/50000,
// 3*parallelism), 1, height); the leftover height%num_tiles rows are
// appended to the first tile.
func PartitionTiles(width, height, totalSamples, parallelism int) []Tile {
	numTiles := totalSamples / 50000
	if 3*parallelism > numTiles {
		numTiles = 3 * parallelism
	}
	if numTiles < 1 {
		numTiles = 1
	}
	if numTiles > height {
		numTiles = height
	}

	rowsPer := height / numTiles
	leftover := height % numTiles

	tiles := make([]Tile, 0, numTiles)
	y := 0
	for i := 0; i < numTiles; i++ {
		h := rowsPer
		if i == 0 {
			h += leftover
		}
		tiles = append(tiles, Tile{Index: i, X: 0, Y: y, Width: width, Height: h})
		y += h
	}
	return tiles
}

// Queue is a FIFO of tiles with a concurrent-safe Take operation. Every
// worker goroutine shares one Queue; tile hand-off is the only
// cross-thread coordination point during rendering (spec.md §5).
type Queue struct {
	mu    sync.Mutex
	tiles []Tile
	next  int
}

// NewQueue returns a Queue that will hand out tiles in order.
func NewQueue(tiles []Tile) *Queue {
	return &Queue{tiles: tiles}
}

// Take removes and returns the next tile, or ok=false once drained.
func (q *Queue) Take() (Tile, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.next >= len(q.tiles) {
		return Tile{}, false
	}
	t := q.tiles[q.next]
	q.next++
	return t, true
}
