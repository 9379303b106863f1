// planner/endpoints.go
// Copyright(c) 2025 hplanner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	"math"

	"github.com/mmp-successor/hplanner/geo"
)

// AreaEndpoints holds the chosen start/end boundary points and start
// heading for one Area.
type AreaEndpoints struct {
	Start       geo.Position
	End         geo.Position
	Orientation geo.Orientation
}

// selectAreaEndpoints computes AreaEndpoints for every area in areas,
// picking the chord nearest the polygon's diameter and orienting the
// start toward the side closer to avgCentre.
func selectAreaEndpoints(areas []Area) map[AreaID]AreaEndpoints {
	result := make(map[AreaID]AreaEndpoints, len(areas))
	if len(areas) == 0 {
		return result
	}

	avgCentre := geo.Position{}
	for _, area := range areas {
		c := area.GeoPoly.BoundingRect().Center()
		avgCentre.Lon += c.Lon
		avgCentre.Lat += c.Lat
	}
	avgCentre.Lon /= float64(len(areas))
	avgCentre.Lat /= float64(len(areas))

	const divisions = 100.0
	for _, area := range areas {
		rect := area.GeoPoly.BoundingRect()
		center := rect.Center()

		if rect.Width() == 0 && rect.Height() == 0 {
			result[area.ID] = AreaEndpoints{Start: center, End: center, Orientation: 0}
			continue
		}

		step := math.Max(rect.Width(), rect.Height()) / divisions
		if step == 0 {
			step = 1e-9
		}

		mostDistance := -math.MaxFloat64
		var bestA, bestB geo.Position

		for angleDeg := 0; angleDeg < 179; angleDeg++ {
			// Recommended convention (see DESIGN.md): degrees -> radians
			// the usual way, not the source's inverted factor.
			theta := float64(angleDeg) * math.Pi / 180.0
			dir := [2]float64{math.Cos(theta), math.Sin(theta)}

			pos := walkToBoundary(area.GeoPoly, center, dir, step, 1)
			neg := walkToBoundary(area.GeoPoly, center, dir, step, -1)

			d := geo.LLA2XYZ(pos).DistanceSquared(geo.LLA2XYZ(neg))
			if d > mostDistance {
				mostDistance = d
				bestA, bestB = pos, neg
			}
		}

		start, end := bestB, bestA
		if geo.ManhattanDistance(bestA, avgCentre) < geo.ManhattanDistance(bestB, avgCentre) {
			start, end = bestA, bestB
		}

		result[area.ID] = AreaEndpoints{
			Start:       start,
			End:         end,
			Orientation: geo.HeadingTo(start, end),
		}
	}

	return result
}

// walkToBoundary steps outward from center along dir*sign in increments
// of step until leaving poly, returning the first point outside it.
func walkToBoundary(poly geo.Polygon, center geo.Position, dir [2]float64, step float64, sign float64) geo.Position {
	for count := 0; ; count++ {
		trial := geo.Position{
			Lon: center.Lon + sign*dir[0]*step*float64(count),
			Lat: center.Lat + sign*dir[1]*step*float64(count),
		}
		if !poly.Contains(trial) {
			return trial
		}
	}
}
