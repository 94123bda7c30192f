package orca

import (
	"github.com/steersuite/crowdsim/agent"
	"github.com/steersuite/crowdsim/geometry"
	"github.com/steersuite/crowdsim/kdtree"
	"github.com/steersuite/crowdsim/obstaclebsp"
)

// steerableElement adapts agent.Steerable to kdtree.Element so the agent
// spatial index can be built directly over the engine's registered agents.
type steerableElement struct{ agent.Steerable }

func (s steerableElement) ElementID() string { return s.ID() }

// BuildAgentIndex indexes every enabled element of agents for neighbour
// queries this frame (spec.md §4.2: rebuilt from scratch every tick).
func BuildAgentIndex(agents []agent.Steerable) *kdtree.Tree {
	elements := make([]kdtree.Element, 0, len(agents))
	for _, a := range agents {
		if !a.Enabled() {
			continue
		}
		elements = append(elements, steerableElement{a})
	}

	return kdtree.Build(elements, kdtree.DefaultMaxLeafSize)
}

// AgentNeighbors returns up to maxNeighbors of self's closest enabled
// neighbours within neighborDist, converted to the decoupled NeighborInfo
// shape ComputeAgentLines consumes.
func AgentNeighbors(index *kdtree.Tree, self agent.Steerable, maxNeighbors int, neighborDist float64) []NeighborInfo {
	found := index.KNearest(self.Position(), maxNeighbors, neighborDist*neighborDist, self.ID())
	out := make([]NeighborInfo, len(found))
	for i, n := range found {
		se := n.Element.(steerableElement)
		out[i] = NeighborInfo{Position: se.Position(), Velocity: se.Velocity(), Radius: se.Radius()}
	}

	return out
}

// ObstacleNeighbors returns every obstacle segment within range of pos,
// the squared range spec.md §4.4 gives as (timeHorizonObst*maxSpeed+radius)^2.
func ObstacleNeighbors(tree *obstaclebsp.Tree, pos geometry.Point2, timeHorizonObst, maxSpeed, radius float64) []obstaclebsp.ObstacleNeighbor {
	if tree == nil {
		return nil
	}
	reach := timeHorizonObst*maxSpeed + radius

	return tree.NeighborsWithinRange(pos, reach*reach)
}
