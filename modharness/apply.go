package modharness

import (
	"github.com/steersuite/crowdsim/engine"
)

// ApplyPreset resolves p's module load order, loads each module into eng
// in that order, then registers p's static obstacle polygons. eng must
// already be in StateReady (after Init, before LoadSimulation).
func ApplyPreset(eng *engine.Engine, p *Preset) error {
	order, err := ResolveOrder(p.ModulePresets())
	if err != nil {
		return err
	}

	byName := make(map[string]TOMLModule, len(p.Modules))
	for _, m := range p.Modules {
		byName[m.Name] = m
	}

	for _, name := range order {
		if err := eng.LoadModule(name, byName[name].Options); err != nil {
			return err
		}
	}

	for _, poly := range p.ObstaclePolygons() {
		if err := eng.AddObstacle(poly, p.Name); err != nil {
			return err
		}
	}

	return nil
}
