package engine

import (
	"fmt"

	"github.com/steersuite/crowdsim/agent"
	"github.com/steersuite/crowdsim/geometry"
	"github.com/steersuite/crowdsim/obstaclebsp"
)

// CreateAgent registers a, owned by owner, in registration order. Agents
// are destroyed when their owner unloads (UnloadModule calls DestroyAgent
// for every agent it owns) or when UnloadSimulation clears the registries.
func (e *Engine) CreateAgent(a agent.Steerable, owner string) (agent.Steerable, error) {
	id := a.ID()
	if _, exists := e.agents[id]; exists {
		return nil, fmt.Errorf("engine: agent id %q already registered", id)
	}
	e.agents[id] = a
	e.agentOrder = append(e.agentOrder, id)
	e.agentOwner[id] = owner

	return a, nil
}

// DestroyAgent removes agent id from the registry.
func (e *Engine) DestroyAgent(id string) error {
	if _, ok := e.agents[id]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAgent, id)
	}
	delete(e.agents, id)
	delete(e.agentOwner, id)
	for i, n := range e.agentOrder {
		if n == id {
			e.agentOrder = append(e.agentOrder[:i], e.agentOrder[i+1:]...)

			break
		}
	}

	return nil
}

// destroyAgentsOwnedBy removes every agent owned by owner, used when a
// module unloads.
func (e *Engine) destroyAgentsOwnedBy(owner string) {
	for id, o := range e.agentOwner {
		if o == owner {
			_ = e.DestroyAgent(id)
		}
	}
}

// Agents returns every registered agent's Steerable handle in registration
// order — the deterministic iteration order the tick loop's update step
// relies on (§4.1).
func (e *Engine) Agents() []agent.Steerable {
	out := make([]agent.Steerable, 0, len(e.agentOrder))
	for _, id := range e.agentOrder {
		out = append(out, e.agents[id])
	}

	return out
}

// AddObstacle registers a closed polygon, owned by owner, and immediately
// rebuilds the whole obstacle BSP from the full polygon set, as
// RemoveObstacle does. There is no incremental insertion into an existing
// tree.
func (e *Engine) AddObstacle(polygon []geometry.Point2, owner string) error {
	e.obstaclePolygons = append(e.obstaclePolygons, polygon)
	e.obstacleOwner = append(e.obstacleOwner, owner)

	return e.rebuildObstacleTree()
}

// RemoveObstacle removes the polygon at index i and rebuilds the tree.
func (e *Engine) RemoveObstacle(i int) error {
	if i < 0 || i >= len(e.obstaclePolygons) {
		return fmt.Errorf("engine: obstacle index %d out of range", i)
	}
	e.obstaclePolygons = append(e.obstaclePolygons[:i], e.obstaclePolygons[i+1:]...)
	e.obstacleOwner = append(e.obstacleOwner[:i], e.obstacleOwner[i+1:]...)

	return e.rebuildObstacleTree()
}

// indexedSegments pairs one polygon's precomputed segments with its
// position in e.obstaclePolygons, so results collected out of order from
// the task pool can be put back in the order BuildFromSegments requires.
type indexedSegments struct {
	index    int
	segments []obstaclebsp.Segment
}

func (e *Engine) rebuildObstacleTree() error {
	if len(e.obstaclePolygons) == 0 {
		e.obstacleTree = nil

		return nil
	}
	for _, poly := range e.obstaclePolygons {
		if len(poly) < 3 {
			return obstaclebsp.ErrEmptyPolygon
		}
	}

	tasks := make([]func() indexedSegments, len(e.obstaclePolygons))
	for i, poly := range e.obstaclePolygons {
		i, poly := i, poly
		tasks[i] = func() indexedSegments {
			return indexedSegments{index: i, segments: obstaclebsp.PrecomputeSegments(poly)}
		}
	}

	results := runTaskPool(e.taskPool, nil, tasks)
	batches := make([][]obstaclebsp.Segment, len(e.obstaclePolygons))
	for _, r := range results {
		batches[r.index] = r.segments
	}

	tree, err := obstaclebsp.BuildFromSegments(batches)
	if err != nil {
		return err
	}
	e.obstacleTree = tree

	return nil
}

// ObstacleTree returns the current obstacle BSP, or nil if no obstacles
// have been added.
func (e *Engine) ObstacleTree() *obstaclebsp.Tree { return e.obstacleTree }

// AddCommand registers fn under name for later invocation via RunCommand.
func (e *Engine) AddCommand(name string, fn func() error) {
	e.commands[name] = fn
}

// RunCommand invokes the command registered under name.
func (e *Engine) RunCommand(name string) error {
	fn, ok := e.commands[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrCommandNotFound, name)
	}

	return fn()
}
