// planner/transitions.go
// Copyright(c) 2025 hplanner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	"math"

	"github.com/mmp-successor/hplanner/geo"
)

// Transition is a waypoint list connecting two oriented positions,
// together with whether the intermediate planner actually succeeded.
// A failed transition still carries a (possibly empty) waypoint list
// so reconstruction has something to splice in, but its Duration()
// is infinite so the schedule search treats the move as unusable
// rather than mistaking a failure for a free transition.
type Transition struct {
	Waypoints Waypoints
	OK        bool
}

// Duration returns the transition's time cost in seconds, or +Inf if
// the underlying intermediate-planner call failed.
func (t Transition) Duration() float64 {
	if !t.OK {
		return math.Inf(1)
	}
	return t.Waypoints.Duration()
}

func planTransition(ip IntermediatePlanner, start geo.Position, startAngle geo.Orientation, end geo.Position, endAngle geo.Orientation, obstacles []geo.Polygon) Transition {
	wps, ok := ip.Plan(start, startAngle, end, endAngle, obstacles)
	return Transition{Waypoints: wps, OK: ok}
}

// buildStartTransitions invokes planner once per distinct area (not
// once per task) to connect the global start to that area's entry
// point, caching the result by area.
func buildStartTransitions(
	startPos geo.Position,
	startOrientation geo.Orientation,
	areas []Area,
	endpoints map[AreaID]AreaEndpoints,
	obstacles []geo.Polygon,
	ip IntermediatePlanner,
) map[AreaID]Transition {
	result := make(map[AreaID]Transition, len(areas))
	for _, area := range areas {
		if _, done := result[area.ID]; done {
			continue
		}
		ep := endpoints[area.ID]
		result[area.ID] = planTransition(ip, startPos, startOrientation, ep.Start, ep.Orientation, obstacles)
	}
	return result
}
