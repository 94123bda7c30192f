package engine

import (
	"fmt"

	"github.com/steersuite/crowdsim/core"
	"github.com/steersuite/crowdsim/dfs"
)

// ModuleFactory constructs a fresh Module instance. Factories are
// registered by name so LoadModule can recursively resolve dependencies
// declared only as names, the way spec.md §4.1's module-loading algorithm
// describes ("for each dependency name not yet loaded, recursively load
// it").
type ModuleFactory func() Module

// RegisterFactory makes a module constructor available to LoadModule under
// name. In spec.md terms this plays the role of the search path: a
// dynamic-library handle resolves to createModule/destroyModule symbols;
// here it resolves to a registered Go constructor.
func (e *Engine) RegisterFactory(name string, f ModuleFactory) {
	if e.factories == nil {
		e.factories = make(map[string]ModuleFactory)
	}
	e.factories[name] = f
}

// LoadModule resolves name's full dependency closure, detects cycles and
// conflicts, then instantiates and initializes every not-yet-loaded module
// in dependency order (dependencies before dependants) — the module
// dependency graph is modelled as a core.Graph of dependant->dependency
// edges and resolved with dfs.DetectCycles/dfs.TopologicalSort, the same
// machinery modharness reuses for its own dependency graph.
func (e *Engine) LoadModule(name string, options map[string]string) error {
	if e.state != StateReady {
		return ErrInvalidLifecycleTransition
	}
	if err := e.transition(StateLoadingModule); err != nil {
		return err
	}

	g := core.NewGraph(core.WithDirected(true))
	instances := make(map[string]Module)

	var collect func(string) error
	collect = func(n string) error {
		if _, ok := instances[n]; ok {
			return nil
		}
		factory, ok := e.factories[n]
		if !ok {
			return fmt.Errorf("%w: %s", ErrModuleNotFound, n)
		}
		mod := factory()
		instances[n] = mod
		if err := g.AddVertex(n); err != nil {
			return err
		}
		for _, dep := range mod.Dependencies() {
			if err := collect(dep); err != nil {
				return err
			}
			if _, err := g.AddEdge(n, dep, 0); err != nil {
				return err
			}
		}

		return nil
	}

	if err := collect(name); err != nil {
		_ = e.transition(StateReady)

		return err
	}

	hasCycle, _, err := dfs.DetectCycles(g)
	if err != nil {
		_ = e.transition(StateReady)

		return err
	}
	if hasCycle {
		_ = e.transition(StateReady)

		return fmt.Errorf("%w: %s", ErrModuleDependencyCycle, name)
	}

	order, err := dfs.TopologicalSort(g)
	if err != nil {
		_ = e.transition(StateReady)

		return err
	}

	// TopologicalSort orders dependants before their dependencies (edges
	// point dependant -> dependency); reverse to instantiate dependencies
	// first.
	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		if meta, ok := e.modules[n]; ok && meta.loaded {
			continue
		}

		mod := instances[n]
		for _, conflict := range mod.Conflicts() {
			if cm, ok := e.modules[conflict]; ok && cm.loaded {
				_ = e.transition(StateReady)

				return fmt.Errorf("%w: %s conflicts with loaded module %s", ErrModuleConflict, n, conflict)
			}
		}

		meta := newModuleMeta(mod)
		e.modules[n] = meta
		if err := mod.Init(options, e); err != nil {
			delete(e.modules, n)
			_ = e.transition(StateReady)

			return err
		}
		meta.loaded, meta.initialized = true, true
		for _, dep := range mod.Dependencies() {
			e.modules[dep].dependants[n] = struct{}{}
		}
		e.moduleOrder = append(e.moduleOrder, n)
	}

	return e.transition(StateReady)
}

// UnloadModule tears down module name, in reverse dependency order. It
// refuses to unload a module with non-empty dependants unless
// recursive=true, in which case those dependants are unloaded first.
func (e *Engine) UnloadModule(name string, recursive bool) error {
	if e.state != StateReady {
		return ErrInvalidLifecycleTransition
	}
	meta, ok := e.modules[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrModuleNotFound, name)
	}
	if len(meta.dependants) > 0 && !recursive {
		return fmt.Errorf("%w: %s", ErrModuleStillDepended, name)
	}
	if err := e.transition(StateUnloadingModule); err != nil {
		return err
	}

	for dependant := range meta.dependants {
		if err := e.unloadOne(dependant); err != nil {
			_ = e.transition(StateReady)

			return err
		}
	}
	if err := e.unloadOne(name); err != nil {
		_ = e.transition(StateReady)

		return err
	}

	return e.transition(StateReady)
}

func (e *Engine) unloadOne(name string) error {
	meta, ok := e.modules[name]
	if !ok {
		return nil
	}
	if err := meta.mod.Finish(); err != nil {
		e.logger.Warn("module finish failed during unload", "module", name, "error", err)
	}
	e.destroyAgentsOwnedBy(name)
	for _, dep := range meta.mod.Dependencies() {
		if depMeta, ok := e.modules[dep]; ok {
			delete(depMeta.dependants, name)
		}
	}
	delete(e.modules, name)
	for i, n := range e.moduleOrder {
		if n == name {
			e.moduleOrder = append(e.moduleOrder[:i], e.moduleOrder[i+1:]...)

			break
		}
	}

	return nil
}
