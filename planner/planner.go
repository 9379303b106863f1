// planner/planner.go
// Copyright(c) 2025 hplanner contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package planner

import (
	"github.com/brunoga/deep"
	"github.com/mmp-successor/hplanner/geo"
	"github.com/mmp-successor/hplanner/log"
)

// Planner is the hierarchical planner. It owns every derived table
// (area endpoints, start transitions, sub-flights, the schedule). Reset
// clears them and each Iterate call rebuilds them, except that a task's
// sub-flight is planned once per Reset and then served from
// subFlightCache on later Iterate calls.
type Planner struct {
	Intermediate IntermediatePlanner
	SubFlight    SubFlightPlanner
	Log          *log.Logger

	problem *Problem

	tasks     []Task
	taskArea  map[TaskID]AreaID
	obstacles []geo.Polygon

	// scheduledAreas is the subset of problem.Areas with at least one
	// non-obstacle task: the ones the endpoint selector and transition
	// builder need to consider.
	scheduledAreas []Area

	endpoints        map[AreaID]AreaEndpoints
	startTransitions map[AreaID]Transition
	subFlights       map[TaskID]Waypoints
	subFlightCache   *subFlightCache

	bestFlightSoFar Waypoints
}

// New constructs a Planner with the given pluggable collaborators. A
// nil SubFlight defaults to LawnmowerSubFlightPlanner{}, and a nil
// Intermediate defaults to PhonyIntermediatePlanner{}.
func New(intermediate IntermediatePlanner, subFlight SubFlightPlanner, logger *log.Logger) *Planner {
	if intermediate == nil {
		intermediate = PhonyIntermediatePlanner{}
	}
	if subFlight == nil {
		subFlight = LawnmowerSubFlightPlanner{}
	}
	return &Planner{Intermediate: intermediate, SubFlight: subFlight, Log: logger}
}

// BestFlightSoFar returns the most recently published path. It is
// unchanged by an iteration that fails (search exhaustion).
func (p *Planner) BestFlightSoFar() Waypoints { return p.bestFlightSoFar }

// Reset rebuilds the task/area/obstacle tables from problem and clears
// every derived table. The incoming Problem is deep-copied so the core
// never aliases the caller's Area/Task/Polygon slices: obstacle
// polygons must stay read-only for the duration of an iteration even
// if the caller mutates its own copies between calls.
func (p *Planner) Reset(problem *Problem) error {
	p.tasks = nil
	p.taskArea = map[TaskID]AreaID{}
	p.obstacles = nil
	p.endpoints = nil
	p.startTransitions = nil
	p.subFlights = map[TaskID]Waypoints{}

	if problem == nil {
		return nil
	}

	snapshot, err := deep.Copy(problem)
	if err != nil {
		return err
	}
	p.problem = snapshot

	var areas []Area
	for _, area := range p.problem.Areas {
		var keptTasks []Task
		isObstacle := false
		for _, task := range area.Tasks {
			if task.Type == NoFlyZoneTaskType {
				isObstacle = true
				continue
			}
			keptTasks = append(keptTasks, task)
			p.tasks = append(p.tasks, task)
			p.taskArea[task.ID] = area.ID
		}
		if isObstacle {
			p.obstacles = append(p.obstacles, area.GeoPoly)
		}
		if len(keptTasks) > 0 {
			a := area
			a.Tasks = keptTasks
			areas = append(areas, a)
		}
	}

	p.subFlightCache = newSubFlightCache(max(len(p.tasks), 1))
	p.scheduledAreas = areas

	return nil
}

// Iterate runs one full planning pass: endpoints, start transitions,
// sub-flights, the schedule search, and path reconstruction. On
// success it publishes the new path to BestFlightSoFar. On a
// *PlanningError (the search frontier exhausted without reaching the
// goal) BestFlightSoFar is left untouched and the error is returned to
// the caller.
func (p *Planner) Iterate() error {
	if p.problem == nil || len(p.tasks) == 0 {
		p.bestFlightSoFar = nil
		return nil
	}

	areaByID := make(map[AreaID]Area, len(p.scheduledAreas))
	for _, a := range p.scheduledAreas {
		areaByID[a.ID] = a
	}

	p.endpoints = selectAreaEndpoints(p.scheduledAreas)
	p.startTransitions = buildStartTransitions(
		p.problem.StartingPosition,
		p.problem.StartingOrientation,
		p.scheduledAreas,
		p.endpoints,
		p.obstacles,
		p.Intermediate,
	)

	n := len(p.tasks)
	subFlights := make([]Waypoints, n)
	entryOrientation := make([]geo.Orientation, n)
	taskTimes := make([]float64, n)

	for i, task := range p.tasks {
		area := areaByID[p.taskArea[task.ID]]
		ep := p.endpoints[area.ID]
		entryOrientation[i] = ep.Orientation

		wps, cached := p.subFlightCache.get(task.ID)
		if !cached {
			var ok bool
			wps, ok = p.SubFlight.Plan(task, area, ep.Start, ep.Orientation)
			if !ok {
				wps = Waypoints{ep.Start}
			}
			p.subFlightCache.put(task.ID, wps)
		}

		subFlights[i] = wps
		taskTimes[i] = wps.Duration()
		p.subFlights[task.ID] = wps
	}

	sched, err := buildSchedule(
		p.tasks,
		func(id TaskID) AreaID { return p.taskArea[id] },
		taskTimes,
		subFlights,
		entryOrientation,
		p.startTransitions,
		p.obstacles,
		p.Intermediate,
		p.Log,
	)
	if err != nil {
		return err
	}

	p.bestFlightSoFar = reconstructPath(
		sched,
		p.tasks,
		func(id TaskID) AreaID { return p.taskArea[id] },
		subFlights,
		p.startTransitions,
	)
	return nil
}
