// planner/intermediate.go
// Copyright(c) 2025 hplanner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	"math"

	"github.com/mmp-successor/hplanner/geo"
)

// IntermediatePlanner is the pluggable capability that produces an
// obstacle-aware waypoint list connecting two oriented positions. The
// core schedule search and transition builder depend only on this
// interface, never on a specific implementation.
type IntermediatePlanner interface {
	// Plan returns a waypoint list from start (heading startAngle) to
	// end (heading endAngle), spaced WaypointSpacing apart, whose first
	// point is start. obstacles are borrowed for the duration of the
	// call. A false return indicates the planner could not find a
	// route; callers treat that as an infinite-cost transition.
	Plan(start geo.Position, startAngle geo.Orientation, end geo.Position, endAngle geo.Orientation, obstacles []geo.Polygon) (Waypoints, bool)
}

// PhonyIntermediatePlanner connects start and end with a straight line,
// ignoring obstacles entirely. It's a deliberately trivial default
// collaborator, not a routing algorithm.
type PhonyIntermediatePlanner struct{}

func (PhonyIntermediatePlanner) Plan(start geo.Position, startAngle geo.Orientation, end geo.Position, endAngle geo.Orientation, obstacles []geo.Polygon) (Waypoints, bool) {
	totalMeters := straightLineMeters(start, end)
	if totalMeters == 0 {
		return Waypoints{start}, true
	}

	n := int(totalMeters/WaypointSpacing) + 1
	heading := geo.HeadingTo(start, end)
	wps := make(Waypoints, 0, n+1)
	for i := 0; i <= n; i++ {
		wps = append(wps, geo.Offset(start, heading, float64(i)*WaypointSpacing))
	}
	return wps, true
}

func straightLineMeters(a, b geo.Position) float64 {
	lonPerMeter := geo.DegreesLonPerMeter(a.Lat)
	latPerMeter := geo.DegreesLatPerMeter(a.Lat)
	if lonPerMeter == 0 {
		return math.Abs(b.Lat-a.Lat) / latPerMeter
	}
	dx := (b.Lon - a.Lon) / lonPerMeter
	dy := (b.Lat - a.Lat) / latPerMeter
	return math.Sqrt(dx*dx + dy*dy)
}

// DubinsIntermediatePlanner connects start and end with a simplified
// Dubins path (turn-straight-turn) respecting a minimum turning radius
// derived from MaxTurnAngle, falling back to a straight line when the
// two turn circles coincide. Only the RSR case (right turn, straight,
// right turn) is implemented (no search over the other Dubins path
// families); that's
// enough to demonstrate turn-radius-aware transitions without an
// optimal Dubins planner.
type DubinsIntermediatePlanner struct {
	// MinTurnRadius bounds how tightly the path may turn, in metres.
	// Zero selects a radius derived from MaxTurnAngle and one
	// Timeslice's travel distance at Airspeed.
	MinTurnRadius float64
}

func (d DubinsIntermediatePlanner) Plan(start geo.Position, startAngle geo.Orientation, end geo.Position, endAngle geo.Orientation, obstacles []geo.Polygon) (Waypoints, bool) {
	radius := d.MinTurnRadius
	if radius <= 0 {
		// One timeslice's travel distance, spread over the maximum
		// per-step turn angle, gives a plausible default turn radius.
		radius = (Airspeed * Timeslice) / MaxTurnAngle
	}

	lonPerMeter := geo.DegreesLonPerMeter(start.Lat)
	latPerMeter := geo.DegreesLatPerMeter(start.Lat)
	if lonPerMeter == 0 {
		return PhonyIntermediatePlanner{}.Plan(start, startAngle, end, endAngle, obstacles)
	}

	toLocal := func(p geo.Position) [2]float64 {
		return [2]float64{(p.Lon - start.Lon) / lonPerMeter, (p.Lat - start.Lat) / latPerMeter}
	}
	fromLocal := func(p [2]float64) geo.Position {
		return geo.Position{Lon: start.Lon + p[0]*lonPerMeter, Lat: start.Lat + p[1]*latPerMeter}
	}

	startLocal := toLocal(start)
	endLocal := toLocal(end)

	// Centre of the start turn circle, 90 degrees to the right of
	// startAngle (RSR family).
	startCenter := [2]float64{
		startLocal[0] + radius*math.Cos(float64(startAngle)-math.Pi/2),
		startLocal[1] + radius*math.Sin(float64(startAngle)-math.Pi/2),
	}
	endCenter := [2]float64{
		endLocal[0] + radius*math.Cos(float64(endAngle)-math.Pi/2),
		endLocal[1] + radius*math.Sin(float64(endAngle)-math.Pi/2),
	}

	centerDist := math.Hypot(endCenter[0]-startCenter[0], endCenter[1]-startCenter[1])
	if centerDist < 1e-6 {
		// Degenerate: circles coincide, just connect directly.
		return PhonyIntermediatePlanner{}.Plan(start, startAngle, end, endAngle, obstacles)
	}

	// The outer tangent between the two same-radius circles runs
	// parallel to the line joining their centres; for clockwise travel
	// it touches each circle 90 degrees to the left of that line.
	tangentAngle := math.Atan2(endCenter[1]-startCenter[1], endCenter[0]-startCenter[0]) + math.Pi/2
	tangentStart := [2]float64{
		startCenter[0] + radius*math.Cos(tangentAngle),
		startCenter[1] + radius*math.Sin(tangentAngle),
	}
	tangentEnd := [2]float64{
		endCenter[0] + radius*math.Cos(tangentAngle),
		endCenter[1] + radius*math.Sin(tangentAngle),
	}

	var path [][2]float64
	path = append(path, arcSamples(startCenter, radius, startLocal, tangentStart)...)
	path = append(path, straightSamples(tangentStart, tangentEnd)...)
	path = append(path, arcSamples(endCenter, radius, tangentEnd, endLocal)...)

	if len(path) == 0 {
		return PhonyIntermediatePlanner{}.Plan(start, startAngle, end, endAngle, obstacles)
	}

	wps := make(Waypoints, 0, len(path))
	for _, p := range path {
		wps = append(wps, fromLocal(p))
	}
	return wps, true
}

func arcSamples(center [2]float64, radius float64, from, to [2]float64) [][2]float64 {
	a0 := math.Atan2(from[1]-center[1], from[0]-center[0])
	a1 := math.Atan2(to[1]-center[1], to[0]-center[0])
	// Sweep clockwise (a right turn) from from to to.
	for a1 > a0 {
		a1 -= 2 * math.Pi
	}
	arcLen := radius * (a0 - a1)
	n := int(arcLen/WaypointSpacing) + 1
	samples := make([][2]float64, 0, n)
	for i := 0; i <= n; i++ {
		t := a0 + (a1-a0)*float64(i)/float64(max(n, 1))
		samples = append(samples, [2]float64{center[0] + radius*math.Cos(t), center[1] + radius*math.Sin(t)})
	}
	return samples
}

func straightSamples(from, to [2]float64) [][2]float64 {
	d := math.Hypot(to[0]-from[0], to[1]-from[1])
	n := int(d/WaypointSpacing) + 1
	samples := make([][2]float64, 0, n)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(max(n, 1))
		samples = append(samples, [2]float64{from[0] + (to[0]-from[0])*t, from[1] + (to[1]-from[1])*t})
	}
	return samples
}

// SmartIntermediatePlanner dispatches to DubinsIntermediatePlanner when
// turning-radius-aware routing matters (obstacles present) and falls
// back to PhonyIntermediatePlanner otherwise.
type SmartIntermediatePlanner struct {
	Dubins DubinsIntermediatePlanner
}

func (s SmartIntermediatePlanner) Plan(start geo.Position, startAngle geo.Orientation, end geo.Position, endAngle geo.Orientation, obstacles []geo.Polygon) (Waypoints, bool) {
	if len(obstacles) > 0 {
		if wps, ok := s.Dubins.Plan(start, startAngle, end, endAngle, obstacles); ok {
			return wps, ok
		}
	}
	return PhonyIntermediatePlanner{}.Plan(start, startAngle, end, endAngle, obstacles)
}
