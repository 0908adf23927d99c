// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

// Package stats aggregates per-worker trace counters into a single report,
// grounded on original_source/muon/stats.h (SPEC_FULL.md supplement 5).
package stats

import "log/slog"

// Counters holds the ray and intersection counts a worker tracks during
// rendering.
type Counters struct {
	PrimaryRays    uint64
	SecondaryRays  uint64
	ShadowRays     uint64
	PrimitiveTests uint64
	NodeVisits     uint64
}

// Add folds o's counts into c. Called once per worker at tile-queue drain
// (spec.md §4.6 "aggregates its trace stats into the shared stats object").
func (c *Counters) Add(o Counters) {
	c.PrimaryRays += o.PrimaryRays
	c.SecondaryRays += o.SecondaryRays
	c.ShadowRays += o.ShadowRays
	c.PrimitiveTests += o.PrimitiveTests
	c.NodeVisits += o.NodeVisits
}

// Log writes one line per counter at Info level.
func (c Counters) Log(logger *slog.Logger) {
	logger.Info("render stats", "primary_rays", c.PrimaryRays)
	logger.Info("render stats", "secondary_rays", c.SecondaryRays)
	logger.Info("render stats", "shadow_rays", c.ShadowRays)
	logger.Info("render stats", "primitive_tests", c.PrimitiveTests)
	logger.Info("render stats", "node_visits", c.NodeVisits)
}
