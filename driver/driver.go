// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package driver runs the tile-parallel render of a built scene: it
// partitions the image into tiles, spawns the configured number of worker
// goroutines (one per processor by default), and has each worker clone the scene's prototype integrator,
// drain the shared tile queue, and accumulate radiance into a Film.
//
// The worker pool is grounded on the teacher's eg/rt.go rtrace.render: a
// channel hands work to a fixed pool of goroutines synchronized by a
// sync.WaitGroup. Here the channel is package sampler's Queue (tiles
// instead of rows) and the accumulator is a film.Film instead of
// rt.go's *image.NRGBA. Unlike rt.go's unsynchronized rt.sampleCalls++
// across goroutines, per-worker stats are folded into a shared total
// under a mutex once each worker drains (spec.md §4.6 "aggregates its
// trace stats into the shared stats object").
package driver

import (
	"fmt"
	"log/slog"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"github.com/galvanizedlogic/muon/film"
	"github.com/galvanizedlogic/muon/integrator"
	"github.com/galvanizedlogic/muon/sampler"
	"github.com/galvanizedlogic/muon/scene"
	"github.com/galvanizedlogic/muon/stats"
)

// Driver renders one built *scene.Scene.
type Driver struct {
	sc  *scene.Scene
	cfg Config
}

// New returns a Driver for sc, configured by attrs.
func New(sc *scene.Scene, attrs ...Attr) *Driver {
	cfg := configDefaults
	for _, attr := range attrs {
		attr(&cfg)
	}
	return &Driver{sc: sc, cfg: cfg}
}

// Render partitions sc's image into tiles, renders every pixel of every
// tile, and returns the filled Film along with the aggregated trace
// counters. Tiles are the only cross-goroutine coordination point; no two
// workers ever touch the same pixel, so Film.AddSample needs no locking
// (spec.md §5).
func (d *Driver) Render(logger *slog.Logger) (*film.Film, stats.Counters, error) {
	sc := d.sc
	if sc.Camera == nil {
		return nil, stats.Counters{}, fmt.Errorf("driver.Render: scene has no camera")
	}

	procs := d.cfg.parallelism
	if procs <= 0 {
		procs = runtime.NumCPU()
	}

	f := film.New(sc.Width, sc.Height)
	totalSamples := sc.Width * sc.Height * sc.PixelSamples
	tiles := sampler.PartitionTiles(sc.Width, sc.Height, totalSamples, procs)
	queue := sampler.NewQueue(tiles)
	proto := integrator.New(sc)

	var wg sync.WaitGroup
	var mu sync.Mutex
	total := stats.Counters{}

	start := time.Now()
	wg.Add(procs)
	for w := 0; w < procs; w++ {
		go func(workerID int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(sc.Seed + int64(workerID)))
			in := proto.Clone(rng)
			for {
				tile, ok := queue.Take()
				if !ok {
					break
				}
				renderTile(sc, in, f, tile, rng)
			}
			mu.Lock()
			total.Add(in.Stats())
			mu.Unlock()
		}(w)
	}
	wg.Wait()
	elapsed := time.Since(start)

	if logger != nil {
		logger.Info("render complete", "elapsed", elapsed.String(), "tiles", len(tiles), "workers", procs)
		if d.cfg.stats {
			total.Log(logger)
		}
	}
	return f, total, nil
}

// renderTile fills every pixel of tile in f, casting sc.PixelSamples
// sub-pixel rays per pixel through in (spec.md §4.6).
func renderTile(sc *scene.Scene, in integrator.Integrator, f *film.Film, tile sampler.Tile, rng *rand.Rand) {
	n := sc.PixelSamples
	if n < 1 {
		n = 1
	}
	for y := tile.Y; y < tile.Y+tile.Height; y++ {
		for x := tile.X; x < tile.X+tile.Width; x++ {
			for _, s := range sampler.PixelSamples(x, y, n, rng) {
				ray := sc.Camera.CastRay(s.X, s.Y)
				radiance := in.Trace(ray)
				if err := f.AddSample(x, y, radiance); err != nil {
					// spec.md §7: an out-of-bounds film write is a sampler
					// bug, not a condition the renderer can recover from.
					panic(err)
				}
			}
		}
	}
}
