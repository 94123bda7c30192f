package orca

import (
	"strconv"

	"github.com/steersuite/crowdsim/engine"
	"github.com/steersuite/crowdsim/kdtree"
	"github.com/steersuite/crowdsim/obstaclebsp"
)

// neighborSetter is the subset of agent.Base's API the module needs to push
// this frame's perceptive-phase results into an agent, without requiring
// every Steerable implementation to carry it.
type neighborSetter interface {
	MaxNeighbors() int
	MaxObstacleNeighbors() int
	SetNeighbors(n []kdtree.Neighbor)
	SetObstacleNeighbors(n []obstaclebsp.ObstacleNeighbor)
}

// Module is the engine.Module driving ORCA local avoidance: each frame it
// rebuilds the agent spatial index and refreshes every participating
// agent's neighbour lists before UpdateAI runs, mirroring
// RVO2DAgent::computeNeighbors being called once per agent per tick in the
// original, just hoisted to a single pass the module performs up front.
type Module struct {
	name   string
	eng    *engine.Engine
	params Parameters

	agentIndex   *kdtree.Tree
	statsEnabled bool
}

// NewModule constructs an unconfigured Module; Init wires it to an engine
// and parses its rvo_* parameters from options.
func NewModule(name string) *Module {
	return &Module{name: name, params: DefaultParameters()}
}

func (m *Module) Name() string                 { return m.name }
func (m *Module) Dependencies() []string       { return nil }
func (m *Module) Conflicts() []string          { return nil }
func (m *Module) Finish() error                { return nil }
func (m *Module) InitializeSimulation() error  { return nil }
func (m *Module) PreprocessSimulation() error  { return nil }
func (m *Module) PostprocessSimulation() error { return nil }
func (m *Module) CleanupSimulation() error     { return nil }

func (m *Module) Init(options map[string]string, eng *engine.Engine) error {
	m.eng = eng
	m.params = ParseParameters(options)
	if v, ok := options["stats"]; ok {
		m.statsEnabled, _ = strconv.ParseBool(v)
	}
	if v, ok := options["allstats"]; ok {
		if b, _ := strconv.ParseBool(v); b {
			m.statsEnabled = true
		}
	}

	return nil
}

// StatsEnabled reports whether the "stats"/"allstats" configuration
// options (§6) were set truthy for this module.
func (m *Module) StatsEnabled() bool { return m.statsEnabled }

// Parameters returns the module's current behaviour parameters, read by
// each Agent it owns.
func (m *Module) Parameters() Parameters { return m.params }

// PreprocessFrame rebuilds the agent spatial index over every enabled
// agent the engine tracks, then refreshes each agent-neighbour and
// obstacle-neighbour list, per spec.md §4.2's "rebuilt from scratch every
// tick" perceptive-phase description.
func (m *Module) PreprocessFrame(simTime, dt float64, frame int64) error {
	agents := m.eng.Agents()
	m.agentIndex = BuildAgentIndex(agents)
	obstacleTree := m.eng.ObstacleTree()

	for _, a := range agents {
		if !a.Enabled() {
			continue
		}
		ns, ok := a.(neighborSetter)
		if !ok {
			continue
		}

		ns.SetNeighbors(m.agentIndex.KNearest(a.Position(), ns.MaxNeighbors(), m.params.NeighborDistance*m.params.NeighborDistance, a.ID()))
		ns.SetObstacleNeighbors(ObstacleNeighbors(obstacleTree, a.Position(), m.params.TimeHorizonObstacles, m.params.MaxSpeed, a.Radius()))
	}

	return nil
}

func (m *Module) PostprocessFrame(simTime, dt float64, frame int64) error { return nil }

// ObstacleTree exposes the engine's current obstacle BSP to agents built by
// this module, so Agent.UpdateAI doesn't need its own reference to the
// engine.
func (m *Module) ObstacleTree() *obstaclebsp.Tree { return m.eng.ObstacleTree() }

var _ engine.Module = (*Module)(nil)
