// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package sampler

import (
	"math/rand"
	"testing"
)

func TestPartitionTilesCoversWholeImage(t *testing.T) {
	tiles := PartitionTiles(64, 100, 500000, 4)
	total := 0
	for i, tile := range tiles {
		if tile.Width != 64 {
			t.Errorf("tile %d: expected full width 64, got %d", i, tile.Width)
		}
		total += tile.Height
	}
	if total != 100 {
		t.Errorf("expected tiles to cover all 100 rows, got %d", total)
	}
}

func TestPartitionTilesClampsToHeight(t *testing.T) {
	tiles := PartitionTiles(10, 4, 100000000, 64)
	if len(tiles) != 4 {
		t.Errorf("expected clamp to height 4, got %d tiles", len(tiles))
	}
}

func TestPartitionTilesAtLeastOne(t *testing.T) {
	tiles := PartitionTiles(10, 10, 0, 0)
	if len(tiles) != 1 {
		t.Errorf("expected at least 1 tile, got %d", len(tiles))
	}
}

func TestFirstSampleIsPixelCenter(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	samples := PixelSamples(3, 4, 5, rng)
	if samples[0].X != 3.5 || samples[0].Y != 4.5 {
		t.Errorf("expected first sample at pixel center, got %v", samples[0])
	}
}

func TestSubsequentSamplesStayInPixel(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	samples := PixelSamples(0, 0, 100, rng)
	for _, s := range samples[1:] {
		if s.X < 0 || s.X >= 1 || s.Y < 0 || s.Y >= 1 {
			t.Errorf("sample %v escaped pixel bounds", s)
		}
	}
}

func TestTileQueueDrains(t *testing.T) {
	tiles := PartitionTiles(10, 10, 0, 1)
	q := NewQueue(tiles)
	count := 0
	for {
		if _, ok := q.Take(); !ok {
			break
		}
		count++
	}
	if count != len(tiles) {
		t.Errorf("expected to drain %d tiles, got %d", len(tiles), count)
	}
	if _, ok := q.Take(); ok {
		t.Error("expected a drained queue to stay empty")
	}
}
