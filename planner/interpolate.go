// planner/interpolate.go
// Copyright(c) 2025 hplanner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	"math"

	"github.com/mmp-successor/hplanner/geo"
)

// Interpolate maps a time offset t along waypoint list p to a
// (position, orientation) pair. startingOrientation is returned for
// single-point paths. ok is false only for an empty
// path or a negative t; interpolating past the path's end is a
// soft/non-fatal condition (warn is non-empty) that still returns the
// best-effort last-segment extrapolation.
func Interpolate(p Waypoints, startingOrientation geo.Orientation, t float64) (pos geo.Position, orient geo.Orientation, warn string, ok bool) {
	if len(p) == 0 {
		return geo.Position{}, 0, "", false
	}
	if t < 0 {
		return geo.Position{}, 0, "", false
	}
	if len(p) == 1 {
		return p[0], startingOrientation, "", true
	}

	timeSoFar := 0.0
	for i := 1; i < len(p); i++ {
		cur, last := p[i], p[i-1]
		intervalDistance := WaypointSpacing
		timeSoFar = float64(i) * intervalDistance / Airspeed

		if timeSoFar >= t || i == len(p)-1 {
			lonPerMeter := geo.DegreesLonPerMeter(cur.Lat)
			latPerMeter := geo.DegreesLatPerMeter(cur.Lat)
			lastTime := timeSoFar - intervalDistance/Airspeed

			var ratio float64
			if timeSoFar == lastTime {
				ratio = 0
			} else {
				ratio = (t - lastTime) / (timeSoFar - lastTime)
			}

			dx, dy := 0.0, 0.0
			if lonPerMeter != 0 {
				dx = (cur.Lon - last.Lon) / lonPerMeter
			}
			if latPerMeter != 0 {
				dy = (cur.Lat - last.Lat) / latPerMeter
			}
			n := math.Hypot(dx, dy)
			if n > 0 {
				dx, dy = dx/n, dy/n
			}

			distToGo := WaypointSpacing * ratio
			pos = geo.Position{
				Lon: last.Lon + distToGo*dx*lonPerMeter,
				Lat: last.Lat + distToGo*dy*latPerMeter,
			}
			orient = geo.Orientation(math.Atan2(dy, dx))
			break
		}
	}

	if timeSoFar < t {
		warn = "interpolation requested past end of path; returning last-segment extrapolation"
	}
	return pos, orient, warn, true
}
