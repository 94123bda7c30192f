package orca

import (
	"context"

	"github.com/steersuite/crowdsim/agent"
	"github.com/steersuite/crowdsim/geometry"
	"github.com/steersuite/crowdsim/kdtree"
	"github.com/steersuite/crowdsim/telemetry"
)

// Agent is a Steerable whose UpdateAI is the ORCA/RVO2 velocity solve:
// compute a preferred velocity toward the current goal, build half-plane
// constraints from obstacle and agent neighbours, then solve the 2-D
// linear program for the velocity closest to preferred that satisfies all
// of them. It owns no steering state beyond agent.Base; everything it
// needs this frame was placed there by its Module's PreprocessFrame.
type Agent struct {
	*agent.Base
	module *Module
}

// NewAgent constructs a disabled Agent bound to the module that will keep
// its neighbour lists current; callers enable it via Reset the same way
// every Steerable kind does.
func NewAgent(id string, radius float64, m *Module) (*Agent, error) {
	base, err := agent.New(id, radius, m.params.MaxNeighbors, 10)
	if err != nil {
		return nil, err
	}

	return &Agent{Base: base, module: m}, nil
}

// UpdateAI advances the goal queue, computes the ORCA-constrained new
// velocity, and integrates position, mirroring
// RVO2DAgent::updateAI/computeNewVelocity.
func (a *Agent) UpdateAI(simTime, dt float64, frame int64) error {
	if !a.Enabled() {
		return nil
	}

	goal := a.CurrentGoal()
	if goal == nil || goal.Reached(a.Position(), a.Radius()) {
		if !a.AdvanceGoal() {
			return nil
		}
		goal = a.CurrentGoal()
	}

	params := a.module.params
	prefVel := preferredVelocity(a.Position(), goal.Target, params.PreferredSpeed)

	obstacleNeighbors := a.ObstacleNeighbors()
	obstacleLines := ComputeObstacleLines(a.module.ObstacleTree(), obstacleNeighbors, a.Position(), a.Velocity(), a.Radius(), params.TimeHorizonObstacles)

	agentLines := ComputeAgentLines(a.Position(), a.Velocity(), a.Radius(), neighborInfos(a.Neighbors()), params.TimeHorizon, dt)

	lines := make([]Line, 0, len(obstacleLines)+len(agentLines))
	lines = append(lines, obstacleLines...)
	lines = append(lines, agentLines...)

	newVel, failIdx := LinearProgram2(lines, params.MaxSpeed, prefVel, false)
	if failIdx < len(lines) {
		if a.module.StatsEnabled() {
			telemetry.RecordLPRetry(context.Background(), a.ID(), failIdx)
		}
		newVel = LinearProgram3(lines, len(obstacleLines), failIdx, params.MaxSpeed, newVel)
	}

	newPos := a.Position().Add(newVel.Mul(dt))
	a.SetKinematics(newPos, newVel)

	return nil
}

// preferredVelocity points at unit speed toward target, scaled to speed,
// or the zero vector when already at the target.
func preferredVelocity(pos, target geometry.Point2, speed float64) geometry.Vector2 {
	dir, ok := geometry.SafeNormalize(target.Sub(pos))
	if !ok {
		return geometry.Vector2{}
	}

	return dir.Mul(speed)
}

func neighborInfos(neighbors []kdtree.Neighbor) []NeighborInfo {
	out := make([]NeighborInfo, 0, len(neighbors))
	for _, n := range neighbors {
		se, ok := n.Element.(steerableElement)
		if !ok {
			continue
		}
		out = append(out, NeighborInfo{Position: se.Position(), Velocity: se.Velocity(), Radius: se.Radius()})
	}

	return out
}

var _ agent.Steerable = (*Agent)(nil)
