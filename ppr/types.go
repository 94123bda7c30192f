package ppr

import "github.com/steersuite/crowdsim/geometry"

// epsilon is this package's tolerance for near-zero relative speed checks,
// mirroring orca's own epsilon constant.
const epsilon = 1e-5

// NeighborInfo is the perceptive phase's snapshot of one nearby agent:
// enough to predict a threat and to steer around it, without requiring a
// reference back to the live Steerable.
type NeighborInfo struct {
	ID       string
	Position geometry.Point2
	Velocity geometry.Vector2
	Forward  geometry.Vector2
	Radius   float64
}
