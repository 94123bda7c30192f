package ppr

import (
	"context"
	"time"

	"github.com/steersuite/crowdsim/agent"
	"github.com/steersuite/crowdsim/geometry"
	"github.com/steersuite/crowdsim/telemetry"
)

// Agent is a Steerable running the full six-phase predictive-reactive
// pipeline each tick: cognitive (goal bookkeeping), long/mid/short-term
// planning (each on its own dynamically-adjusted schedule), perceptive
// (neighbour snapshot, refreshed by Module.PreprocessFrame), predictive
// (threat-list maintenance) and reactive (steering state machine and
// feelers), finishing with locomotion's clamped-force integration.
type Agent struct {
	*agent.Base
	module *Module

	neighbors []NeighborInfo
	tracker   Tracker
	state     SteeringState

	longTerm  *PhaseSchedule
	midTerm   *PhaseSchedule
	shortTerm *PhaseSchedule
}

// NewAgent constructs a disabled Agent bound to m, with every phase
// schedule starting at a one-frame period (tightened or relaxed over time
// by AdjustPeriod as the scene plays out).
func NewAgent(id string, radius float64, m *Module) (*Agent, error) {
	base, err := agent.New(id, radius, m.params.MaxNeighbors, 10)
	if err != nil {
		return nil, err
	}

	return &Agent{
		Base:      base,
		module:    m,
		longTerm:  NewPhaseSchedule(30),
		midTerm:   NewPhaseSchedule(10),
		shortTerm: NewPhaseSchedule(1),
	}, nil
}

// Neighbors returns this agent's most recent perceptive-phase snapshot.
func (a *Agent) Neighbors() []NeighborInfo { return a.neighbors }

// SteeringState returns the agent's persisted reactive steering state.
func (a *Agent) SteeringState() SteeringState { return a.state }

// UpdateAI runs the pipeline: cognitive, then long/mid/short-term planning
// on their own schedules, then predictive and reactive every tick, then
// locomotion.
func (a *Agent) UpdateAI(simTime, dt float64, frame int64) error {
	if !a.Enabled() {
		return nil
	}

	var outcome PhaseOutcome
	a.timePhase("cognitive", func() { outcome = CognitivePhase(a) })
	if outcome.Done {
		return nil
	}

	if outcome.NeedsLongTerm || a.longTerm.Due(frame) {
		var longErr error
		a.timePhase("longterm", func() { longErr = LongTermPhase(a) })
		if longErr != nil {
			return longErr
		}
		a.longTerm.MarkRun(frame)
	}

	if a.midTerm.Due(frame) {
		a.timePhase("midterm", func() { MidTermPhase(a) })
		a.midTerm.MarkRun(frame)
	}

	if a.shortTerm.Due(frame) {
		a.timePhase("shortterm", func() { ShortTermPhase(a, a.module.ObstacleTree()) })
		a.shortTerm.MarkRun(frame)
	}

	params := a.module.params

	// Predictive threat timing depends on accumulating dt every tick for
	// the clear-path hysteresis, so unlike long/mid/short-term planning it
	// always runs rather than on its own relaxable schedule.
	a.timePhase("predictive", func() {
		PredictivePhase(&a.tracker, dt, a.Position(), a.Velocity(), a.Forward(), a.Radius(), a.neighbors, params)
	})

	var cmd SteeringCommand
	a.timePhase("reactive", func() {
		toTarget, ok := geometry.SafeNormalize(a.LocalTarget().Sub(a.Position()))
		if !ok {
			toTarget = a.Forward()
		}

		facingCos := a.Forward().Dot(toTarget)
		a.state = NextSteeringState(a.state, facingCos, &a.tracker, params)

		feelerLen := clamp(a.Velocity().Len()*params.ReactiveAnticipationFactor, params.FeelerMinLength, params.FeelerMaxLength)
		hits := CastFeelers(a.Position(), a.Forward(), feelerLen, a.module.ObstacleTree(), a.neighbors, a.Radius())
		situation := DeriveSituation(hits)

		hit := situation != SituationNoThreats || CountImminent(a.tracker.Threats()) > 0
		a.shortTerm.AdjustPeriod(hit, a.Velocity().Len(), params.TypicalSpeed, 1, 20)
		a.midTerm.AdjustPeriod(hit, a.Velocity().Len(), params.TypicalSpeed, 5, 60)

		cmd = Dispatch(a.state, situation, toTarget, a.Forward(), a.tracker.Threats(), params)
	})

	var newPos geometry.Point2
	var newVel geometry.Vector2
	a.timePhase("locomotion", func() { newPos, newVel = Integrate(a.Position(), a.Velocity(), a.Forward(), cmd, dt, params) })
	a.SetKinematics(newPos, newVel)

	return nil
}

// timePhase runs fn, recording its wall-clock duration under name through
// telemetry when the owning module's stats option is enabled; otherwise it
// just runs fn.
func (a *Agent) timePhase(name string, fn func()) {
	if !a.module.StatsEnabled() {
		fn()

		return
	}

	start := time.Now()
	fn()
	telemetry.RecordPhaseDuration(context.Background(), name, float64(time.Since(start).Microseconds())/1000.0)
}

var _ agent.Steerable = (*Agent)(nil)
