// planner/cache_test.go
// Copyright(c) 2025 hplanner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import "testing"

func TestSubFlightCacheGetPutRoundTrip(t *testing.T) {
	c := newSubFlightCache(4)

	if _, ok := c.get(1); ok {
		t.Fatalf("expected a miss on an empty cache")
	}

	want := Waypoints{{Lon: 1, Lat: 2}, {Lon: 3, Lat: 4}}
	c.put(1, want)

	got, ok := c.get(1)
	if !ok {
		t.Fatalf("expected a hit after put")
	}
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSubFlightCacheEvictsBeyondSize(t *testing.T) {
	c := newSubFlightCache(1)
	c.put(1, Waypoints{{Lon: 0, Lat: 0}})
	c.put(2, Waypoints{{Lon: 1, Lat: 1}})

	if _, ok := c.get(1); ok {
		t.Errorf("expected task 1 to have been evicted by an LRU of size 1")
	}
	if _, ok := c.get(2); !ok {
		t.Errorf("expected task 2 to still be cached")
	}
}

func TestNewSubFlightCacheClampsNonPositiveSize(t *testing.T) {
	c := newSubFlightCache(0)
	c.put(1, Waypoints{{Lon: 0, Lat: 0}})
	if _, ok := c.get(1); !ok {
		t.Errorf("expected a size-0 request to be clamped to at least 1 entry")
	}
}
