package ppr

import "github.com/steersuite/crowdsim/obstaclebsp"

// ShortTermPhase picks the furthest point along the mid-term path that is
// still directly visible from the agent's current position (classic
// "string pulling"), and sets it as the local steering target. With no
// mid-term path it falls back to the next waypoint, and with neither it
// leaves LocalTarget unchanged.
func ShortTermPhase(a *Agent, obstacleTree *obstaclebsp.Tree) {
	path := a.MidTermPath()
	if len(path) == 0 {
		if wps := a.Waypoints(); len(wps) > 0 {
			a.SetLocalTarget(wps[0])
		}

		return
	}

	pos := a.Position()
	target := path[len(path)-1]
	for i := len(path) - 1; i >= 0; i-- {
		if obstacleTree == nil || obstacleTree.Visible(pos, path[i], a.Radius()) {
			target = path[i]

			break
		}
	}

	a.SetLocalTarget(target)
}
