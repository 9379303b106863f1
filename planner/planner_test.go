// planner/planner_test.go
// Copyright(c) 2025 hplanner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	"reflect"
	"testing"

	"github.com/mmp-successor/hplanner/geo"
)

func rectArea(id AreaID, minLon, minLat, maxLon, maxLat float64, tasks ...Task) Area {
	return Area{
		ID: id,
		GeoPoly: geo.Polygon{
			{Lon: minLon, Lat: minLat},
			{Lon: minLon, Lat: maxLat},
			{Lon: maxLon, Lat: maxLat},
			{Lon: maxLon, Lat: minLat},
		},
		Tasks: tasks,
	}
}

// TestPlannerSingleTaskEndToEnd covers one area, one task, start
// outside the area. Reset and Iterate must succeed and the published
// path must be non-empty.
func TestPlannerSingleTaskEndToEnd(t *testing.T) {
	problem := &Problem{
		StartingPosition:    geo.Position{Lon: -1, Lat: -1},
		StartingOrientation: 0,
		Areas: []Area{
			rectArea(1, 0, 0, 0.01, 0.01, Task{ID: 0, Type: "Flyover", Name: "survey-1"}),
		},
	}

	p := New(PhonyIntermediatePlanner{}, LawnmowerSubFlightPlanner{}, nil)
	if err := p.Reset(problem); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if err := p.Iterate(); err != nil {
		t.Fatalf("Iterate: %v", err)
	}

	path := p.BestFlightSoFar()
	if len(path) == 0 {
		t.Fatalf("expected a non-empty path")
	}
}

// TestPlannerNoFlyZoneExcludesTasksAndAddsObstacle checks that a task
// tagged No-Fly Zone contributes zero scheduled tasks and one obstacle.
func TestPlannerNoFlyZoneExcludesTasksAndAddsObstacle(t *testing.T) {
	problem := &Problem{
		StartingPosition: geo.Position{Lon: -1, Lat: -1},
		Areas: []Area{
			rectArea(1, 0, 0, 0.01, 0.01, Task{ID: 0, Type: "Flyover"}),
			rectArea(2, 1, 1, 1.01, 1.01, Task{ID: 1, Type: NoFlyZoneTaskType}),
		},
	}

	p := New(PhonyIntermediatePlanner{}, LawnmowerSubFlightPlanner{}, nil)
	if err := p.Reset(problem); err != nil {
		t.Fatalf("Reset: %v", err)
	}

	if len(p.tasks) != 1 {
		t.Fatalf("got %d scheduled tasks, want 1 (no-fly task excluded)", len(p.tasks))
	}
	if len(p.obstacles) != 1 {
		t.Fatalf("got %d obstacles, want 1", len(p.obstacles))
	}

	if err := p.Iterate(); err != nil {
		t.Fatalf("Iterate: %v", err)
	}
}

// TestPlannerEmptyProblemPublishesEmptyPath covers the case where no
// non-obstacle tasks remain: the iteration is skipped and an empty
// path is published.
func TestPlannerEmptyProblemPublishesEmptyPath(t *testing.T) {
	problem := &Problem{
		StartingPosition: geo.Position{Lon: 0, Lat: 0},
		Areas: []Area{
			rectArea(1, 0, 0, 1, 1, Task{ID: 0, Type: NoFlyZoneTaskType}),
		},
	}

	p := New(nil, nil, nil)
	if err := p.Reset(problem); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	if err := p.Iterate(); err != nil {
		t.Fatalf("Iterate: %v", err)
	}
	if path := p.BestFlightSoFar(); path != nil {
		t.Errorf("expected an empty path, got %d waypoints", len(path))
	}
}

// TestPlannerDeterminism checks that two independent planners given the
// same Problem produce identical output paths.
func TestPlannerDeterminism(t *testing.T) {
	problem := &Problem{
		StartingPosition: geo.Position{Lon: -1, Lat: -1},
		Areas: []Area{
			rectArea(1, 0, 0, 0.01, 0.01, Task{ID: 0, Type: "Flyover"}),
			rectArea(2, 0.02, 0.02, 0.03, 0.03, Task{ID: 1, Type: "Sampling"}),
		},
	}

	run := func() Waypoints {
		p := New(PhonyIntermediatePlanner{}, LawnmowerSubFlightPlanner{}, nil)
		if err := p.Reset(problem); err != nil {
			t.Fatalf("Reset: %v", err)
		}
		if err := p.Iterate(); err != nil {
			t.Fatalf("Iterate: %v", err)
		}
		return p.BestFlightSoFar()
	}

	a, b := run(), run()
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two runs over an identical Problem produced different paths")
	}
}

// TestPlannerNewDefaultsCollaborators checks that nil collaborators
// passed to New fall back to the default implementations rather than
// leaving the Planner unusable.
func TestPlannerNewDefaultsCollaborators(t *testing.T) {
	p := New(nil, nil, nil)
	if p.Intermediate == nil {
		t.Errorf("expected a default IntermediatePlanner")
	}
	if p.SubFlight == nil {
		t.Errorf("expected a default SubFlightPlanner")
	}
}

func TestPlannerResetWithNilProblemClearsState(t *testing.T) {
	p := New(nil, nil, nil)
	if err := p.Reset(nil); err != nil {
		t.Fatalf("Reset(nil): %v", err)
	}
	if len(p.tasks) != 0 {
		t.Errorf("expected no tasks after Reset(nil)")
	}
}
