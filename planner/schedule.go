// planner/schedule.go
// Copyright(c) 2025 hplanner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	"container/heap"
	"fmt"

	"github.com/mmp-successor/hplanner/geo"
)

// PlanningError reports a core planning failure distinct from ordinary
// I/O errors.
type PlanningError struct {
	Reason string
}

func (e *PlanningError) Error() string { return "planning failed: " + e.Reason }

// scheduleEntry is one item on the search frontier.
type scheduleEntry struct {
	cost  float64
	state ProgressState
	seq   int // insertion order, for deterministic tie-breaking
}

// frontier is a min-priority queue ordered by cost, ties broken by
// insertion order, implemented with container/heap. No package in the
// retrieved example corpus supplies a priority queue or ordered
// multimap, so this uses the standard library the way an idiomatic Go
// program would (see DESIGN.md).
type frontier []scheduleEntry

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].cost != f[j].cost {
		return f[i].cost < f[j].cost
	}
	return f[i].seq < f[j].seq
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)   { *f = append(*f, x.(scheduleEntry)) }
func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// scheduleResult is the outcome of the schedule search: the ordered
// sequence of ProgressStates from origin to goal, plus the auxiliary
// tables path reconstruction needs.
type scheduleResult struct {
	states    []ProgressState
	lastAxis  map[string]int
	transition map[string]Transition // keyed by ProgressState.key, only for context switches
}

// buildSchedule runs the Dijkstra-like best-first search over
// N-dimensional progress-time space, one dimension per scheduled task.
//
// taskTimes[i] is T_i, the duration of tasks[i]'s sub-flight.
// subFlights[i] and subFlightEntryOrientation[i] are used to interpolate
// the UAV's pose mid-task when computing a context-switch transition.
// startTransitions is keyed by area ID and prices the first move from
// the origin into a task's area.
func buildSchedule(
	tasks []Task,
	taskArea func(TaskID) AreaID,
	taskTimes []float64,
	subFlights []Waypoints,
	subFlightEntryOrientation []geo.Orientation,
	startTransitions map[AreaID]Transition,
	obstacles []geo.Polygon,
	ip IntermediatePlanner,
	log interface {
		Debugf(string, ...any)
	},
) (*scheduleResult, error) {
	n := len(tasks)
	origin := NewProgressState(make([]float64, n))
	goal := NewProgressState(append([]float64(nil), taskTimes...))

	if log != nil {
		log.Debugf("schedule from %v to %v", origin.Dim, goal.Dim)
	}

	parent := map[string]ProgressState{}
	lastAxis := map[string]int{}
	transitionMemo := map[string]Transition{}
	closed := map[string]bool{}

	f := &frontier{}
	heap.Init(f)
	seq := 0
	heap.Push(f, scheduleEntry{cost: 0, state: origin, seq: seq})
	seq++
	closed[origin.key] = true

	var schedule []ProgressState

	for f.Len() > 0 {
		entry := heap.Pop(f).(scheduleEntry)
		state := entry.state

		if log != nil {
			log.Debugf("at %v with cost %v", state.Dim, entry.cost)
		}

		if state.Equal(goal) {
			cur := state
			for {
				schedule = append([]ProgressState{cur}, schedule...)
				p, ok := parent[cur.key]
				if !ok {
					break
				}
				cur = p
			}
			break
		}

		for i := 0; i < n; i++ {
			next := state.Advance(i, taskTimes[i])
			if closed[next.key] {
				continue
			}
			closed[next.key] = true
			parent[next.key] = state
			lastAxis[next.key] = i

			cost := state.ManhattanDistanceTo(goal)

			if lj, hasPrev := lastAxis[state.key]; !hasPrev {
				cost += startTransitions[taskArea(tasks[i].ID)].Duration()
			} else if lj == i {
				cost += 0
			} else {
				prevTask := lj
				startPos, startPose, _, _ := Interpolate(subFlights[prevTask], subFlightEntryOrientation[prevTask], state.Dim[prevTask])
				endPos, endPose, _, _ := Interpolate(subFlights[i], subFlightEntryOrientation[i], state.Dim[i])

				tr := planTransition(ip, startPos, startPose, endPos, endPose, obstacles)
				cost += tr.Duration()
				transitionMemo[next.key] = tr
			}

			heap.Push(f, scheduleEntry{cost: cost, state: next, seq: seq})
			seq++
		}
	}

	if len(schedule) == 0 || !schedule[len(schedule)-1].Equal(goal) {
		return nil, &PlanningError{Reason: fmt.Sprintf("frontier exhausted without reaching goal %v", goal.Dim)}
	}

	return &scheduleResult{states: schedule, lastAxis: lastAxis, transition: transitionMemo}, nil
}
