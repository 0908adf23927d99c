// Copyright © 2013-2015 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package stats

import "testing"

func TestAddAccumulates(t *testing.T) {
	var total Counters
	total.Add(Counters{PrimaryRays: 10, PrimitiveTests: 3})
	total.Add(Counters{PrimaryRays: 5, NodeVisits: 2})
	if total.PrimaryRays != 15 {
		t.Errorf("expected 15 primary rays, got %d", total.PrimaryRays)
	}
	if total.PrimitiveTests != 3 || total.NodeVisits != 2 {
		t.Errorf("unexpected totals: %+v", total)
	}
}
