package ppr

import (
	"github.com/steersuite/crowdsim/agent"
	"github.com/steersuite/crowdsim/kdtree"
)

// steerableElement adapts agent.Steerable to kdtree.Element, identical in
// shape to orca's own adapter: each domain package builds its own agent
// index rather than sharing one, since each tunes its own query radius and
// neighbour cap.
type steerableElement struct {
	agent.Steerable
}

func (s steerableElement) ElementID() string { return s.ID() }

// BuildAgentIndex indexes every enabled agent by position for this
// package's own perceptive-phase queries.
func BuildAgentIndex(agents []agent.Steerable) *kdtree.Tree {
	elements := make([]kdtree.Element, 0, len(agents))
	for _, a := range agents {
		if !a.Enabled() {
			continue
		}
		elements = append(elements, steerableElement{a})
	}

	return kdtree.Build(elements, 8)
}

// Neighbors returns up to maxNeighbors nearby enabled agents within
// queryRadius, excluding self, as NeighborInfo snapshots.
func Neighbors(index *kdtree.Tree, self agent.Steerable, maxNeighbors int, queryRadius float64) []NeighborInfo {
	if index == nil {
		return nil
	}

	found := index.KNearest(self.Position(), maxNeighbors, queryRadius*queryRadius, self.ID())

	out := make([]NeighborInfo, 0, len(found))
	for _, n := range found {
		se, ok := n.Element.(steerableElement)
		if !ok {
			continue
		}
		out = append(out, NeighborInfo{
			ID:       se.ID(),
			Position: se.Position(),
			Velocity: se.Velocity(),
			Forward:  se.Forward(),
			Radius:   se.Radius(),
		})
	}

	return out
}
