// planner/reconstruct.go
// Copyright(c) 2025 hplanner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

// reconstructPath walks the schedule pairwise, splicing in start
// transitions, context-switch transitions, and sub-flight slices.
func reconstructPath(
	sched *scheduleResult,
	tasks []Task,
	taskArea func(TaskID) AreaID,
	subFlights []Waypoints,
	startTransitions map[AreaID]Transition,
) Waypoints {
	states := sched.states
	if len(states) == 0 {
		return nil
	}

	origin := states[0]
	prev := origin

	var path Waypoints
	for _, cur := range states[1:] {
		i, ok := sched.lastAxis[cur.key]
		if !ok {
			continue
		}
		task := tasks[i]

		switch {
		case prev.Equal(origin):
			path = append(path, startTransitions[taskArea(task.ID)].Waypoints...)
		default:
			if pj, ok := sched.lastAxis[prev.key]; !ok || pj != i {
				path = append(path, sched.transition[cur.key].Waypoints...)
			}
		}

		path = append(path, pathPortion(subFlights[i], prev.Dim[i], cur.Dim[i])...)
		prev = cur
	}

	return path
}

// pathPortion returns the slice of path corresponding to the
// closed-open time interval [startTime, endTime), sampled at
// WaypointSpacing/Airspeed per index.
func pathPortion(path Waypoints, startTime, endTime float64) Waypoints {
	startIdx := int(startTime * Airspeed / WaypointSpacing)
	endIdx := int(endTime * Airspeed / WaypointSpacing)

	if startIdx < 0 {
		startIdx = 0
	}
	if endIdx > len(path) {
		endIdx = len(path)
	}
	if startIdx >= endIdx {
		return nil
	}
	return append(Waypoints(nil), path[startIdx:endIdx]...)
}
