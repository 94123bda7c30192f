package ppr

import (
	"strconv"

	"github.com/steersuite/crowdsim/engine"
	"github.com/steersuite/crowdsim/kdtree"
	"github.com/steersuite/crowdsim/obstaclebsp"
)

// Module is the engine.Module driving every ppr.Agent's perceptive phase:
// once per frame it rebuilds its own agent k-d tree (separate from orca's,
// since PPR tunes QueryRadius/neighbour caps independently from ORCA's
// NeighborDistance/MaxNeighbors) and refreshes each Agent's neighbour
// snapshot. Unlike orca.Module, it does not write to agent.Base's shared
// Neighbors/ObstacleNeighbors fields: those belong to whichever avoidance
// module an agent uses for local collision response, and a ppr.Agent may
// run standalone or alongside an orca.Module driving the same Steerables.
// Keeping PPR's perceptive cache on *Agent itself means the two modules
// never fight over Base's shared storage.
type Module struct {
	name       string
	eng        *engine.Engine
	params       Parameters
	agentIndex   *kdtree.Tree
	navGrid      *NavGrid
	statsEnabled bool
}

// NewModule constructs a ppr.Module with default parameters.
func NewModule(name string) *Module {
	return &Module{name: name, params: DefaultParameters()}
}

// SetNavGrid configures the long/mid-term planning surface. Without one,
// LongTermPhase degrades to a direct waypoint at the goal.
func (m *Module) SetNavGrid(nav *NavGrid) { m.navGrid = nav }

// Parameters returns the module's current behaviour parameters.
func (m *Module) Parameters() Parameters { return m.params }

func (m *Module) Name() string                 { return m.name }
func (m *Module) Dependencies() []string       { return nil }
func (m *Module) Conflicts() []string          { return nil }
func (m *Module) Finish() error                { return nil }
func (m *Module) InitializeSimulation() error  { return nil }
func (m *Module) PreprocessSimulation() error  { return nil }
func (m *Module) PostprocessSimulation() error { return nil }
func (m *Module) CleanupSimulation() error     { return nil }

// Init stores the owning engine and overlays ped_* options onto defaults.
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

// ObstacleTree delegates to the owning engine's obstacle BSP.
func (m *Module) ObstacleTree() *obstaclebsp.Tree {
	if m.eng == nil {
		return nil
	}

	return m.eng.ObstacleTree()
}

// PreprocessFrame rebuilds the PPR agent index and refreshes every
// ppr.Agent's perceptive-phase neighbour snapshot.
func (m *Module) PreprocessFrame(simTime, dt float64, frame int64) error {
	if m.eng == nil {
		return nil
	}

	agents := m.eng.Agents()
	m.agentIndex = BuildAgentIndex(agents)

	for _, a := range agents {
		pa, ok := a.(*Agent)
		if !ok || !pa.Enabled() {
			continue
		}

		pa.neighbors = Neighbors(m.agentIndex, pa, m.params.MaxNeighbors, m.params.QueryRadius)
	}

	return nil
}

// PostprocessFrame is a no-op: nothing to reconcile after the tick.
func (m *Module) PostprocessFrame(simTime, dt float64, frame int64) error { return nil }

var _ engine.Module = (*Module)(nil)
