// planner/subflight.go
// Copyright(c) 2025 hplanner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	"math"

	"github.com/mmp-successor/hplanner/geo"
)

// SubFlightPlanner is the pluggable capability that fills a task's
// area with a servicing waypoint list, entering at entry (heading
// entryOrientation). Real implementations (coverage planners tuned per
// task kind) are external collaborators; only their output is consumed
// here.
type SubFlightPlanner interface {
	Plan(task Task, area Area, entry geo.Position, entryOrientation geo.Orientation) (Waypoints, bool)
}

// LawnmowerSubFlightPlanner produces a boustrophedon ("lawnmower")
// coverage pattern of area's bounding rectangle, entering at entry and
// sampled every WaypointSpacing metres. This is the minimal default
// sub-flight provider so the module is runnable end-to-end without an
// external, task-kind-tuned coverage planner.
type LawnmowerSubFlightPlanner struct {
	// LaneSpacing is the distance in metres between adjacent coverage
	// lanes. Zero selects 5*WaypointSpacing.
	LaneSpacing float64
}

func (l LawnmowerSubFlightPlanner) Plan(task Task, area Area, entry geo.Position, entryOrientation geo.Orientation) (Waypoints, bool) {
	laneSpacing := l.LaneSpacing
	if laneSpacing <= 0 {
		laneSpacing = 5 * WaypointSpacing
	}

	rect := area.GeoPoly.BoundingRect()
	if rect.Width() == 0 && rect.Height() == 0 {
		return Waypoints{entry}, true
	}

	lonPerMeter := geo.DegreesLonPerMeter(rect.Center().Lat)
	latPerMeter := geo.DegreesLatPerMeter(rect.Center().Lat)

	widthMeters := rect.Width() / math.Max(lonPerMeter, 1e-30)
	heightMeters := rect.Height() / math.Max(latPerMeter, 1e-30)
	if widthMeters < 0 {
		widthMeters = -widthMeters
	}
	if heightMeters < 0 {
		heightMeters = -heightMeters
	}

	numLanes := int(heightMeters/laneSpacing) + 1

	wps := Waypoints{entry}
	cur := entry
	goingRight := true
	for lane := 0; lane < numLanes; lane++ {
		laneLat := rect.MinLat + float64(lane)*laneSpacing*latPerMeter
		var laneEnd geo.Position
		if goingRight {
			laneEnd = geo.Position{Lon: rect.MaxLon, Lat: laneLat}
		} else {
			laneEnd = geo.Position{Lon: rect.MinLon, Lat: laneLat}
		}

		laneStart := geo.Position{Lon: cur.Lon, Lat: laneLat}
		if lane > 0 {
			wps = appendSampledSegment(wps, cur, laneStart)
		}
		wps = appendSampledSegment(wps, laneStart, laneEnd)

		cur = laneEnd
		goingRight = !goingRight
	}

	return wps, true
}

func appendSampledSegment(wps Waypoints, from, to geo.Position) Waypoints {
	lonPerMeter := geo.DegreesLonPerMeter(from.Lat)
	latPerMeter := geo.DegreesLatPerMeter(from.Lat)
	dx := 0.0
	dy := 0.0
	if lonPerMeter != 0 {
		dx = (to.Lon - from.Lon) / lonPerMeter
	}
	if latPerMeter != 0 {
		dy = (to.Lat - from.Lat) / latPerMeter
	}
	meters := math.Hypot(dx, dy)
	if meters == 0 {
		return wps
	}

	heading := geo.HeadingTo(from, to)
	n := int(meters/WaypointSpacing) + 1
	for i := 1; i <= n; i++ {
		wps = append(wps, geo.Offset(from, heading, math.Min(float64(i)*WaypointSpacing, meters)))
	}
	return wps
}
