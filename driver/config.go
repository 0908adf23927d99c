// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package driver

// config.go reduces the driver.New API footprint using functional options,
// following the teacher's root config.go pattern (vu.Attr / vu.Size /
// vu.Title).

// Config holds the render driver's own tunables: everything about how the
// work is split across goroutines and what gets logged, as opposed to
// scene content (which lives in *scene.Scene, already fixed by the time
// driver.New is called).
type Config struct {
	parallelism int
	stats       bool
}

// configDefaults matches spec.md §4.6: one worker per logical CPU, stats
// off unless requested.
var configDefaults = Config{
	parallelism: 0, // 0 means runtime.NumCPU() at render time
	stats:       false,
}

// Attr is an optional driver.New attribute, in the teacher's vu.Attr style.
//
//	d := driver.New(sc,
//	    driver.Parallelism(8),
//	    driver.Stats(true),
//	)
type Attr func(*Config)

// Parallelism sets the number of worker goroutines. n<=0 falls back to
// runtime.NumCPU().
func Parallelism(n int) Attr {
	return func(c *Config) { c.parallelism = n }
}

// Stats turns on end-of-render stats logging (spec.md §4.6 "aggregates
// its trace stats into the shared stats object").
func Stats(on bool) Attr {
	return func(c *Config) { c.stats = on }
}
