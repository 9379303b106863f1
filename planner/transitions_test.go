// planner/transitions_test.go
// Copyright(c) 2025 hplanner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	"math"
	"testing"

	"github.com/mmp-successor/hplanner/geo"
)

type failingIntermediatePlanner struct{}

func (failingIntermediatePlanner) Plan(geo.Position, geo.Orientation, geo.Position, geo.Orientation, []geo.Polygon) (Waypoints, bool) {
	return nil, false
}

func TestTransitionDurationInfiniteOnFailure(t *testing.T) {
	tr := planTransition(failingIntermediatePlanner{}, geo.Position{}, 0, geo.Position{Lon: 1}, 0, nil)
	if tr.OK {
		t.Fatalf("expected OK=false")
	}
	if !math.IsInf(tr.Duration(), 1) {
		t.Errorf("expected +Inf duration for a failed transition, got %v", tr.Duration())
	}
}

func TestTransitionDurationMatchesWaypointsOnSuccess(t *testing.T) {
	tr := planTransition(PhonyIntermediatePlanner{}, geo.Position{Lon: 0, Lat: 0}, 0, geo.Position{Lon: 0.01, Lat: 0}, 0, nil)
	if !tr.OK {
		t.Fatalf("expected OK=true")
	}
	if tr.Duration() != tr.Waypoints.Duration() {
		t.Errorf("got %v, want %v", tr.Duration(), tr.Waypoints.Duration())
	}
}

func TestBuildStartTransitionsOnePerArea(t *testing.T) {
	areas := []Area{
		{ID: 1},
		{ID: 2},
	}
	endpoints := map[AreaID]AreaEndpoints{
		1: {Start: geo.Position{Lon: 0, Lat: 0}},
		2: {Start: geo.Position{Lon: 1, Lat: 1}},
	}

	result := buildStartTransitions(geo.Position{Lon: -1, Lat: -1}, 0, areas, endpoints, nil, PhonyIntermediatePlanner{})

	if len(result) != 2 {
		t.Fatalf("got %d transitions, want 2", len(result))
	}
	for _, area := range areas {
		if _, ok := result[area.ID]; !ok {
			t.Errorf("missing transition for area %v", area.ID)
		}
	}
}
