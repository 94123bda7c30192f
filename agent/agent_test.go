package agent_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steersuite/crowdsim/agent"
	"github.com/steersuite/crowdsim/geometry"
)

func TestNew_RejectsNonPositiveRadius(t *testing.T) {
	_, err := agent.New("a1", 0, 10, 10)
	assert.ErrorIs(t, err, agent.ErrZeroRadius)
}

func TestAdvanceGoal_DisablesOnEmptyQueue(t *testing.T) {
	b, err := agent.New("a1", 0.5, 10, 10)
	require.NoError(t, err)
	b.Reset(*b)
	b.Enabled()

	ok := b.AdvanceGoal()
	assert.False(t, ok)
	assert.False(t, b.Enabled())
}

func TestAdvanceGoal_PopsFIFO(t *testing.T) {
	b, err := agent.New("a1", 0.5, 10, 10)
	require.NoError(t, err)
	b.Reset(*b)
	first := agent.Goal{Kind: agent.GoalSeekStatic, Target: geometry.NewPoint2(1, 0), Threshold: 0.1}
	second := agent.Goal{Kind: agent.GoalSeekStatic, Target: geometry.NewPoint2(2, 0), Threshold: 0.1}
	b.AddGoal(first)
	b.AddGoal(second)

	require.True(t, b.AdvanceGoal())
	assert.Equal(t, first.Target, b.CurrentGoal().Target)
	require.True(t, b.AdvanceGoal())
	assert.Equal(t, second.Target, b.CurrentGoal().Target)
	assert.False(t, b.AdvanceGoal())
}

func TestSetKinematics_KeepsForwardWhenVelocityZero(t *testing.T) {
	b, err := agent.New("a1", 0.5, 10, 10)
	require.NoError(t, err)
	b.SetKinematics(geometry.NewPoint2(0, 0), geometry.NewVector2(1, 0))
	assert.Equal(t, geometry.NewVector2(1, 0), b.Forward())

	b.SetKinematics(geometry.NewPoint2(1, 0), geometry.NewVector2(0, 0))
	assert.Equal(t, geometry.NewVector2(1, 0), b.Forward(), "forward must not reset to zero when velocity is momentarily zero")
}

func TestGoalReached_Box(t *testing.T) {
	g := agent.Goal{
		Kind: agent.GoalBoxRegion,
		Box:  geometry.NewAABB(geometry.NewPoint2(-1, -1), geometry.NewPoint2(1, 1)),
	}
	assert.True(t, g.Reached(geometry.NewPoint2(0, 0), 0.1))
	assert.False(t, g.Reached(geometry.NewPoint2(10, 10), 0.1))
}
