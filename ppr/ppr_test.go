package ppr_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steersuite/crowdsim/agent"
	"github.com/steersuite/crowdsim/geometry"
	"github.com/steersuite/crowdsim/obstaclebsp"
	"github.com/steersuite/crowdsim/ppr"
)

func newTestAgent(t *testing.T, id string, pos, goal geometry.Point2, m *ppr.Module) *ppr.Agent {
	t.Helper()
	a, err := ppr.NewAgent(id, 0.3, m)
	require.NoError(t, err)
	a.Reset(agent.Base{})
	a.AddGoal(agent.Goal{Kind: agent.GoalSeekStatic, Target: goal, Threshold: 0.1})
	a.SetKinematics(pos, geometry.Vector2{})

	return a
}

// TestSingleAgentReachesGoal exercises scenario 1: a lone agent in an empty
// scene, with no neighbours and no nav grid (so long-term planning
// degrades to a direct waypoint at the goal), must reach it within 120
// ticks and stop within 0.5 units of it.
func TestSingleAgentReachesGoal(t *testing.T) {
	m := ppr.NewModule("ppr")
	a := newTestAgent(t, "solo", geometry.NewPoint2(-3, 0), geometry.NewPoint2(3, 0), m)

	const dt = 0.1
	reached := false
	for i := int64(0); i < 120; i++ {
		require.NoError(t, a.UpdateAI(float64(i)*dt, dt, i))
		if a.Position().Sub(geometry.NewPoint2(3, 0)).Len() <= 0.5 {
			reached = true

			break
		}
	}

	assert.True(t, reached, "agent should reach its goal within 120 ticks")
}

// TestForwardInvariant checks the data model invariant that forward is
// either the zero vector or unit length, and is zero only when velocity is
// also zero, holds across repeated UpdateAI calls.
func TestForwardInvariant(t *testing.T) {
	m := ppr.NewModule("ppr")
	a := newTestAgent(t, "solo", geometry.NewPoint2(0, 0), geometry.NewPoint2(8, 3), m)

	for i := int64(0); i < 30; i++ {
		require.NoError(t, a.UpdateAI(float64(i)*0.1, 0.1, i))

		l := a.Forward().Len()
		assert.True(t, l < 1e-9 || (l > 1-1e-6 && l < 1+1e-6), "forward must be zero or unit length, got %v", l)
		if l < 1e-9 {
			assert.Zero(t, a.Velocity().Len())
		}
	}
}

// TestHeadOnThreat_BiasesRight exercises scenario 2 at the PPR level: two
// agents closing head-on should each register the other as an imminent
// oncoming threat, and ProactivelyAvoid's dispatch should bias both away
// from the collision axis toward their own right, mirroring RVO2's
// symmetric-deflection result with PPR's own steering vocabulary.
func TestHeadOnThreat_BiasesRight(t *testing.T) {
	params := ppr.DefaultParameters()

	posA := geometry.NewPoint2(-4, 0)
	velA := geometry.NewVector2(1.33, 0)
	posB := geometry.NewPoint2(4, 0)
	velB := geometry.NewVector2(-1.33, 0)

	neighborsOfA := []ppr.NeighborInfo{{ID: "b", Position: posB, Velocity: velB, Forward: geometry.NewVector2(-1, 0), Radius: 0.3}}

	threats := ppr.ComputeThreats(posA, velA, geometry.NewVector2(1, 0), 0.3, neighborsOfA, params)
	require.Len(t, threats, 1)
	assert.Equal(t, ppr.ThreatOncoming, threats[0].Kind)
	assert.True(t, threats[0].Imminent, "agents closing at 2.66 m/s should predict an imminent collision within the threat window")

	toTarget := geometry.NewVector2(1, 0)
	cmd := ppr.Dispatch(ppr.StateProactivelyAvoid, ppr.Situation1Agent, toTarget, geometry.NewVector2(1, 0), threats, params)

	// Right of forward (1,0) is (0,-1): the biased direction should have
	// picked up a negative y component pushing it off the collision axis.
	assert.Less(t, cmd.Direction[1], 0.0, "oncoming avoidance should bias the steering direction to the agent's right")
	assert.Greater(t, cmd.SideScoot, 0.0)
}

// TestCorridorFeeler_HitsWallAheadAndSteersAway exercises scenario 3: an
// agent facing a wall 0.5 units away along its forward feeler must report
// a static-only situation, and locomotion must turn it away from the wall
// rather than straight through it.
func TestCorridorFeeler_HitsWallAheadAndSteersAway(t *testing.T) {
	tree, err := obstaclebsp.Build([][]geometry.Point2{
		{
			geometry.NewPoint2(-1, 0.5),
			geometry.NewPoint2(1, 0.5),
			geometry.NewPoint2(1, 0.7),
			geometry.NewPoint2(-1, 0.7),
		},
	})
	require.NoError(t, err)

	pos := geometry.NewPoint2(0, 0)
	forward := geometry.NewVector2(0, 1)

	hits := ppr.CastFeelers(pos, forward, 10, tree, nil, 0.3)
	require.Equal(t, ppr.FeelerObstacle, hits[0].Kind, "forward feeler should hit the wall")
	assert.InDelta(t, 0.5, hits[0].Dist, 0.05)

	situation := ppr.DeriveSituation(hits)
	assert.Equal(t, ppr.SituationStaticOnly, situation)
}

// TestParseParameters_OverlaysRecognizedKeysOnly confirms ParseParameters
// leaves defaults alone for unknown or unparsable ped_* values, matching
// PPRParameters::setParameters's silent-ignore behaviour.
func TestParseParameters_OverlaysRecognizedKeysOnly(t *testing.T) {
	p := ppr.ParseParameters(map[string]string{
		"ped_max_speed":     "3.0",
		"ped_unknown":       "ignored",
		"ped_max_neighbors": "not-a-number",
	})
	assert.Equal(t, 3.0, p.MaxSpeed)
	assert.Equal(t, ppr.DefaultParameters().MaxNeighbors, p.MaxNeighbors)
	assert.Equal(t, ppr.DefaultParameters().TypicalSpeed, p.TypicalSpeed)
}
