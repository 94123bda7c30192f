package modharness

import (
	"fmt"

	"github.com/steersuite/crowdsim/core"
	"github.com/steersuite/crowdsim/dfs"
)

// ResolveOrder plans a dependency-first load order for mods, the same way
// engine.LoadModule resolves its own runtime graph (core.Graph of
// dependant->dependency edges, dfs.DetectCycles, dfs.TopologicalSort
// reversed) but purely over the preset's declared data, before any
// engine.Module is instantiated. ApplyPreset (apply.go) uses the returned
// order to drive repeated engine.LoadModule calls one name at a time.
func ResolveOrder(mods []ModulePreset) ([]string, error) {
	byName := make(map[string]ModulePreset, len(mods))
	for _, m := range mods {
		byName[m.Name] = m
	}

	g := core.NewGraph(core.WithDirected(true))
	for _, m := range mods {
		if err := g.AddVertex(m.Name); err != nil {
			return nil, err
		}
	}
	for _, m := range mods {
		for _, dep := range m.Dependencies {
			if _, ok := byName[dep]; !ok {
				return nil, fmt.Errorf("%w: %s depends on %s", ErrUnknownModuleRef, m.Name, dep)
			}
			if _, err := g.AddEdge(m.Name, dep, 0); err != nil {
				return nil, err
			}
		}
	}

	hasCycle, _, err := dfs.DetectCycles(g)
	if err != nil {
		return nil, err
	}
	if hasCycle {
		return nil, ErrPresetDependencyCycle
	}

	order, err := dfs.TopologicalSort(g)
	if err != nil {
		return nil, err
	}

	// TopologicalSort orders dependants before dependencies; reverse for
	// dependency-first instantiation order.
	reversed := make([]string, len(order))
	for i, n := range order {
		reversed[len(order)-1-i] = n
	}

	if err := checkConflicts(mods, reversed); err != nil {
		return nil, err
	}

	return reversed, nil
}

// checkConflicts reports a conflict if two modules that both appear in
// order declare each other (or one declares the other) as a Conflicts
// entry — caught here, ahead of engine.LoadModule, so a preset author
// gets the error at plan time rather than partway through loading.
func checkConflicts(mods []ModulePreset, order []string) error {
	loaded := make(map[string]bool, len(order))
	byName := make(map[string]ModulePreset, len(mods))
	for _, m := range mods {
		byName[m.Name] = m
	}
	conflictedBy := make(map[string]string, len(order))
	for _, name := range order {
		if by, ok := conflictedBy[name]; ok {
			return fmt.Errorf("%w: %s conflicts with %s", ErrPresetConflict, by, name)
		}
		m := byName[name]
		for _, c := range m.Conflicts {
			if loaded[c] {
				return fmt.Errorf("%w: %s conflicts with %s", ErrPresetConflict, name, c)
			}
			conflictedBy[c] = name
		}
		loaded[name] = true
	}

	return nil
}
