package ppr

import (
	"errors"

	"github.com/steersuite/crowdsim/geometry"
	"github.com/steersuite/crowdsim/planning"
)

// LongTermPhase computes the coarse waypoint route toward the current
// goal. With a NavGrid configured on the module, it first runs
// planning.Reachable as a cheap unweighted connectivity check — cheaper
// than a full A* search — and falls back to a direct waypoint at the goal
// if the grid has no path at all, before A*-searching the grid
// (planning.FindPath, the same solver the rest of the corpus's navigation
// code uses) and downsampling the resulting cell path into waypoints spaced
// roughly NextWaypointDistance apart, capped at MaxNumWaypoints. Without a
// NavGrid it degrades to a single waypoint at the goal itself, leaving
// obstacle avoidance entirely to the reactive phase.
func LongTermPhase(a *Agent) error {
	goal := a.CurrentGoal()
	if goal == nil {
		return nil
	}

	nav := a.module.navGrid
	if nav == nil {
		a.SetWaypoints([]geometry.Point2{goal.Target})
		a.SetMidTermPath(nil)

		return nil
	}

	startID := nav.WorldToVertex(a.Position())
	goalID := nav.WorldToVertex(goal.Target)

	if reachable, err := planning.Reachable(nav.Graph, startID, goalID); err == nil && !reachable {
		a.SetWaypoints([]geometry.Point2{goal.Target})
		a.SetMidTermPath(nil)

		return nil
	}

	path, _, err := planning.FindPath(nav.Graph, startID, goalID)
	if err != nil {
		if errors.Is(err, planning.ErrNoPath) {
			a.SetWaypoints([]geometry.Point2{goal.Target})
			a.SetMidTermPath(nil)

			return nil
		}

		return err
	}

	points := make([]geometry.Point2, len(path))
	for i, id := range path {
		points[i] = nav.VertexToWorld(id)
	}

	a.SetMidTermPath(points)
	a.SetWaypoints(downsampleWaypoints(points, a.module.params.NextWaypointDistance, a.module.params.MaxNumWaypoints))

	return nil
}

// downsampleWaypoints picks every point at least minSpacing past the last
// chosen one, always keeping the final point, capped at maxCount entries.
func downsampleWaypoints(points []geometry.Point2, minSpacing float64, maxCount int) []geometry.Point2 {
	if len(points) == 0 {
		return nil
	}

	waypoints := []geometry.Point2{points[0]}
	last := points[0]
	for _, p := range points[1:] {
		if p.Sub(last).Len() >= minSpacing {
			waypoints = append(waypoints, p)
			last = p
		}
	}

	final := points[len(points)-1]
	if waypoints[len(waypoints)-1] != final {
		waypoints = append(waypoints, final)
	}

	if maxCount > 0 && len(waypoints) > maxCount {
		waypoints = append(waypoints[:maxCount-1], final)
	}

	return waypoints
}
