package ppr

import "github.com/steersuite/crowdsim/geometry"

// PredictivePhase refreshes the agent's threat tracker from its current
// perceptive-phase neighbour snapshot, classifying and timing every
// predicted close approach. See ComputeThreats and Tracker in threat.go for
// the mechanics; this is the pipeline's entry point for that stage.
func PredictivePhase(tracker *Tracker, dt float64, pos, vel, forward geometry.Vector2, radius float64, neighbors []NeighborInfo, params Parameters) {
	threats := ComputeThreats(pos, vel, forward, radius, neighbors, params)
	tracker.Update(dt, threats)
}
