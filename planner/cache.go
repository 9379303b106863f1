// planner/cache.go
// Copyright(c) 2025 hplanner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// subFlightCache stores each task's full sub-flight keyed by task,
// backed by an LRU sized to the task count. Planner.Reset creates a
// fresh cache for every problem, so entries never outlive one problem
// and every task's sub-flight fits; later Iterate calls reuse them.
type subFlightCache struct {
	cache *lru.Cache[TaskID, Waypoints]
}

func newSubFlightCache(size int) *subFlightCache {
	if size < 1 {
		size = 1
	}
	c, err := lru.New[TaskID, Waypoints](size)
	if err != nil {
		// Only returns an error for size <= 0, which we've just ruled out.
		panic(err)
	}
	return &subFlightCache{cache: c}
}

func (c *subFlightCache) get(id TaskID) (Waypoints, bool) {
	return c.cache.Get(id)
}

func (c *subFlightCache) put(id TaskID, wps Waypoints) {
	c.cache.Add(id, wps)
}
