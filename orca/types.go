package orca

import "github.com/steersuite/crowdsim/geometry"

// epsilon mirrors original_source/rvo2AI's RVO_EPSILON, used by the linear
// program's near-parallel and near-zero-discriminant checks.
const epsilon = 1e-5

// Line is an ORCA half-plane constraint: the set of permitted velocities
// satisfying it lies to the left of the directed line through Point along
// Direction (spec.md §4.4 "oriented so the allowed velocities lie to its
// left").
type Line struct {
	Point     geometry.Point2
	Direction geometry.Vector2
}

// NeighborInfo is the minimal per-agent-neighbour state ORCA's agent-line
// construction needs, decoupled from agent.Steerable so this package
// never imports the agent package.
type NeighborInfo struct {
	Position geometry.Point2
	Velocity geometry.Vector2
	Radius   float64
}

// Parameters is the rvo_* behaviour parameter set spec.md §6 names,
// parsed from the string-keyed option map the same way ped_* parses for
// PPR.
type Parameters struct {
	NeighborDistance     float64
	TimeHorizon          float64
	MaxSpeed             float64
	PreferredSpeed       float64
	TimeHorizonObstacles float64
	MaxNeighbors         int
	NextWaypointDistance float64
}

// DefaultParameters mirrors original_source/rvo2AI/include/RVO2D_Parameters.h's
// compiled-in defaults.
func DefaultParameters() Parameters {
	return Parameters{
		NeighborDistance:     10.0,
		TimeHorizon:          2.0,
		MaxSpeed:             1.33,
		PreferredSpeed:       1.33,
		TimeHorizonObstacles: 2.0,
		MaxNeighbors:         10,
		NextWaypointDistance: 5,
	}
}
