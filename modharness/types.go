package modharness

import (
	"errors"
	"time"

	"github.com/steersuite/crowdsim/agent"
	"github.com/steersuite/crowdsim/geometry"
)

// Sentinel errors.
var (
	// ErrPresetDependencyCycle mirrors engine.ErrModuleDependencyCycle at
	// the preset-planning stage, before any engine module is touched.
	ErrPresetDependencyCycle = errors.New("modharness: preset module dependency cycle")

	// ErrUnknownModuleRef is returned when a ModulePreset names a
	// dependency or conflict that no preset module declares.
	ErrUnknownModuleRef = errors.New("modharness: module preset references an undeclared module")

	// ErrPresetConflict is returned when two modules in the same preset's
	// resolved load order declare a conflict with each other.
	ErrPresetConflict = errors.New("modharness: preset declares conflicting modules")

	// ErrEmptyEmitterTemplate is returned when an Emitter has no Factory.
	ErrEmptyEmitterTemplate = errors.New("modharness: emitter has no agent factory")
)

// ModulePreset is one module entry in a Preset's declared module set: a
// name, the string options passed verbatim to engine.LoadModule, and the
// dependency/conflict names this preset plans around (independent of,
// though normally identical to, what the module's own Dependencies/
// Conflicts report once instantiated).
type ModulePreset struct {
	Name         string
	Options      map[string]string
	Dependencies []string
	Conflicts    []string
}

// Schedule is an emitter's spawn-rate description (spec.md DESIGN NOTES
// "agent emitters"): a trigger region, a total count, and a rate.
type Schedule struct {
	// TriggerRegion is stored with the schedule; EmitterModule does not
	// consult it, so emission starts at the first frame whatever its value.
	TriggerRegion geometry.AABB
	// Total is the number of agents this emitter ever produces; zero
	// means unbounded.
	Total int
	// Rate is the mean inter-arrival period. One agent is considered due
	// every Rate of simulated time since the emitter's first eligible
	// frame.
	Rate time.Duration
}

// AgentFactory builds one fresh Steerable from an emitter's initial
// condition template. Kept abstract so modharness never needs to import a
// concrete agent kind (ppr.Agent, orca.Agent, ...).
type AgentFactory func(id string) (agent.Steerable, error)

// Emitter is an initial-condition template paired with a Schedule;
// EmitterModule consults it once per PreprocessFrame and materializes due
// agents via engine.CreateAgent (spec.md: "the engine consults emitters and materialises
// new agents via create-agent").
type Emitter struct {
	Name     string
	Factory  AgentFactory
	Schedule Schedule

	spawned     int
	nextDueTime time.Duration
}

// Preset is the top-level TOML-loadable scenario description: a module
// set (with the harness's own dependency plan) and static obstacle
// polygons. Emitters are not part of a Preset; they are passed to
// NewEmitterModule.
type Preset struct {
	Name      string           `toml:"name"`
	Modules   []TOMLModule     `toml:"module"`
	Obstacles []TOMLObstacle   `toml:"obstacle"`
}

// TOMLObstacle is one closed polygon, at rest as a flat list of [x, y]
// point pairs.
type TOMLObstacle struct {
	Points [][2]float64 `toml:"points"`
}

// TOMLModule is the at-rest (TOML) shape of a ModulePreset; [2]float64
// pairs and map[string]string keep the format dependency-free of the
// geometry/agent packages' in-memory types.
type TOMLModule struct {
	Name         string            `toml:"name"`
	Options      map[string]string `toml:"options,omitempty"`
	Dependencies []string          `toml:"dependencies,omitempty"`
	Conflicts    []string          `toml:"conflicts,omitempty"`
}

// ToModulePreset converts the at-rest shape to the in-memory ModulePreset
// the resolver operates on.
func (m TOMLModule) ToModulePreset() ModulePreset {
	return ModulePreset{
		Name:         m.Name,
		Options:      m.Options,
		Dependencies: m.Dependencies,
		Conflicts:    m.Conflicts,
	}
}

// ObstaclePolygons converts the TOML point-pair lists to geometry.Point2
// polygons.
func (p Preset) ObstaclePolygons() [][]geometry.Point2 {
	out := make([][]geometry.Point2, len(p.Obstacles))
	for i, poly := range p.Obstacles {
		pts := make([]geometry.Point2, len(poly.Points))
		for j, xy := range poly.Points {
			pts[j] = geometry.NewPoint2(xy[0], xy[1])
		}
		out[i] = pts
	}

	return out
}
