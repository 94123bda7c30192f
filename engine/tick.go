package engine

import (
	"context"

	"github.com/steersuite/crowdsim/agent"
	"github.com/steersuite/crowdsim/telemetry"
)

// LoadSimulation advances Ready -> LoadingSimulation -> SimulationLoaded,
// calling InitializeSimulation on every loaded module in registration
// order. A module's InitializeSimulation typically spawns its agents and
// registers its obstacles via CreateAgent/AddObstacle.
func (e *Engine) LoadSimulation() error {
	if e.state != StateReady {
		return ErrInvalidLifecycleTransition
	}
	if err := e.transition(StateLoadingSimulation); err != nil {
		return err
	}
	for _, name := range e.moduleOrder {
		if err := e.modules[name].mod.InitializeSimulation(); err != nil {
			_ = e.transition(StateReady)

			return err
		}
	}
	e.frame = 0
	e.simTime = 0
	e.stop = false

	return e.transition(StateSimulationLoaded)
}

// PreprocessSimulation advances SimulationLoaded -> PreprocessingSimulation
// -> SimulationReadyForUpdate, calling PreprocessSimulation on every
// module. This is the last point obstacles may be added before the tick
// loop starts consulting the obstacle tree (§4.2).
func (e *Engine) PreprocessSimulation() error {
	if e.state != StateSimulationLoaded {
		return ErrInvalidLifecycleTransition
	}
	if err := e.transition(StatePreprocessingSimulation); err != nil {
		return err
	}
	for _, name := range e.moduleOrder {
		if err := e.modules[name].mod.PreprocessSimulation(); err != nil {
			_ = e.transition(StateReady)

			return err
		}
	}

	return e.transition(StateSimulationReadyForUpdate)
}

// Update runs one tick of spec.md §4.1's loop:
//  1. advance the real clock (always, even while paused)
//  2. if pausedOnly, return without advancing sim time
//  3. advance sim time and frame counter by the fixed timestep
//  4. PreprocessFrame on every module, in registration order
//  5. UpdateAI on every agent, in registration order
//  6. PostprocessFrame on every module, in registration order
//  7. decide continue/stop from the controller and frame budget
//
// Update is only legal from SimulationReadyForUpdate; it returns
// ErrInvalidLifecycleTransition otherwise (scenario: calling Update before
// PreprocessSimulation).
func (e *Engine) Update(pausedOnly bool) (bool, error) {
	if e.state != StateSimulationReadyForUpdate {
		return false, ErrInvalidLifecycleTransition
	}
	_ = e.clock.Now() // advance/observe the real clock every tick, paused or not

	if pausedOnly {
		return true, nil
	}

	if err := e.transition(StateUpdatingSimulation); err != nil {
		return false, err
	}

	e.simTime += e.fixedTimestep
	e.frame++
	simSeconds := e.simTime.Seconds()
	dtSeconds := e.fixedTimestep.Seconds()

	for _, name := range e.moduleOrder {
		if err := e.modules[name].mod.PreprocessFrame(simSeconds, dtSeconds, e.frame); err != nil {
			e.logger.Warn("module preprocess-frame failed", "module", name, "error", err)
		}
	}

	for _, id := range e.agentOrder {
		a := e.agents[id]
		if !a.Enabled() {
			continue
		}
		if err := a.UpdateAI(simSeconds, dtSeconds, e.frame); err != nil {
			e.logger.Warn("agent update failed", "agent", id, "error", err)
		}
	}

	for _, name := range e.moduleOrder {
		if err := e.modules[name].mod.PostprocessFrame(simSeconds, dtSeconds, e.frame); err != nil {
			e.logger.Warn("module postprocess-frame failed", "module", name, "error", err)
		}
	}

	if e.statsEnabled {
		telemetry.RecordTicksPerSecond(context.Background(), e.Stats().RealFPS)
	}

	budgetExhausted := e.frameBudget > 0 && e.frame >= e.frameBudget
	shouldStop := e.controller.ShouldStop() || budgetExhausted
	if shouldStop {
		e.stop = true
		if e.statsEnabled && budgetExhausted {
			telemetry.RecordFrameBudgetExhausted(context.Background(), e.frame)
		}

		return false, e.transition(StateSimulationNoMoreUpdatesAllowed)
	}

	return true, e.transition(StateSimulationReadyForUpdate)
}

// PostprocessSimulation advances SimulationReadyForUpdate or
// SimulationNoMoreUpdatesAllowed -> PostprocessingSimulation ->
// SimulationFinished, calling PostprocessSimulation on every module.
func (e *Engine) PostprocessSimulation() error {
	if e.state != StateSimulationReadyForUpdate && e.state != StateSimulationNoMoreUpdatesAllowed {
		return ErrInvalidLifecycleTransition
	}
	if err := e.transition(StatePostprocessingSimulation); err != nil {
		return err
	}
	for _, name := range e.moduleOrder {
		if err := e.modules[name].mod.PostprocessSimulation(); err != nil {
			e.logger.Warn("module postprocess-simulation failed", "module", name, "error", err)
		}
	}

	return e.transition(StateSimulationFinished)
}

// UnloadSimulation advances SimulationFinished -> UnloadingSimulation ->
// Ready, calling CleanupSimulation on every module in reverse registration
// order and clearing the agent/obstacle registries.
func (e *Engine) UnloadSimulation() error {
	if e.state != StateSimulationFinished {
		return ErrInvalidLifecycleTransition
	}
	if err := e.transition(StateUnloadingSimulation); err != nil {
		return err
	}
	for i := len(e.moduleOrder) - 1; i >= 0; i-- {
		name := e.moduleOrder[i]
		if err := e.modules[name].mod.CleanupSimulation(); err != nil {
			e.logger.Warn("module cleanup-simulation failed", "module", name, "error", err)
		}
	}
	e.agents = make(map[string]agent.Steerable)
	e.agentOrder = nil
	e.agentOwner = make(map[string]string)
	e.obstaclePolygons = nil
	e.obstacleOwner = nil
	e.obstacleTree = nil

	return e.transition(StateReady)
}

// Stopped reports whether the most recent Update requested termination.
func (e *Engine) Stopped() bool { return e.stop }
