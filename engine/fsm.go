package engine

import (
	"fmt"

	"github.com/steersuite/crowdsim/core"
	"github.com/steersuite/crowdsim/dfs"
)

// State is one node of the engine's lifecycle automaton (§3 data model).
type State int

const (
	StateNew State = iota
	StateInitializing
	StateReady
	StateLoadingModule
	StateUnloadingModule
	StateLoadingSimulation
	StateSimulationLoaded
	StatePreprocessingSimulation
	StateSimulationReadyForUpdate
	StateUpdatingSimulation
	StateSimulationNoMoreUpdatesAllowed
	StatePostprocessingSimulation
	StateSimulationFinished
	StateUnloadingSimulation
	StateCleaningUp
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateLoadingModule:
		return "loading-module"
	case StateUnloadingModule:
		return "unloading-module"
	case StateLoadingSimulation:
		return "loading-simulation"
	case StateSimulationLoaded:
		return "simulation-loaded"
	case StatePreprocessingSimulation:
		return "preprocessing-simulation"
	case StateSimulationReadyForUpdate:
		return "simulation-ready-for-update"
	case StateUpdatingSimulation:
		return "updating-simulation"
	case StateSimulationNoMoreUpdatesAllowed:
		return "simulation-no-more-updates-allowed"
	case StatePostprocessingSimulation:
		return "postprocessing-simulation"
	case StateSimulationFinished:
		return "simulation-finished"
	case StateUnloadingSimulation:
		return "unloading-simulation"
	case StateCleaningUp:
		return "cleaning-up"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// transitions is the fixed, enumerated edge set spec.md §3 requires.
// Loading/unloading a module is a round trip back to Ready because module
// operations are legal both before and after a simulation is loaded.
var transitions = map[State][]State{
	StateNew:                            {StateInitializing},
	StateInitializing:                   {StateReady},
	StateReady:                          {StateLoadingModule, StateUnloadingModule, StateLoadingSimulation, StateCleaningUp},
	StateLoadingModule:                  {StateReady},
	StateUnloadingModule:                {StateReady},
	StateLoadingSimulation:              {StateSimulationLoaded, StateReady},
	StateSimulationLoaded:               {StatePreprocessingSimulation},
	StatePreprocessingSimulation:        {StateSimulationReadyForUpdate, StateReady},
	StateSimulationReadyForUpdate:       {StateUpdatingSimulation, StatePostprocessingSimulation},
	StateUpdatingSimulation:             {StateSimulationReadyForUpdate, StateSimulationNoMoreUpdatesAllowed},
	StateSimulationNoMoreUpdatesAllowed: {StatePostprocessingSimulation},
	StatePostprocessingSimulation:       {StateSimulationFinished},
	StateSimulationFinished:             {StateUnloadingSimulation},
	StateUnloadingSimulation:            {StateReady},
	StateCleaningUp:                     {StateFinished},
	StateFinished:                       nil,
}

// canTransition reports whether the fixed edge set permits from -> to.
func canTransition(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}

	return false
}

// init validates the transition table once at package load: every state
// reachable from StateNew via the declared edges, and every edge target is
// itself a declared state. This reuses dfs's directed-reachability walk
// (the same traversal dfs/cycle.go builds on for cycle detection) instead
// of hand-rolling a second graph walk, generalized here from "detect a
// cycle" to "confirm full reachability of a fixed table".
func init() {
	g := core.NewGraph(core.WithDirected(true))
	for s := StateNew; s <= StateFinished; s++ {
		if err := g.AddVertex(s.String()); err != nil {
			panic(fmt.Sprintf("engine: fsm table: %v", err))
		}
	}
	for from, tos := range transitions {
		for _, to := range tos {
			if _, err := g.AddEdge(from.String(), to.String(), 0); err != nil {
				panic(fmt.Sprintf("engine: fsm table: %v", err))
			}
		}
	}

	result, err := dfs.DFS(g, StateNew.String())
	if err != nil {
		panic(fmt.Sprintf("engine: fsm table: %v", err))
	}
	if len(result.Order) != int(StateFinished)+1 {
		panic("engine: fsm table declares a state unreachable from StateNew")
	}
}
