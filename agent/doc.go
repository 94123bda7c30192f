// Package agent holds the state and interface every steering policy
// shares: position, forward direction, velocity, radius, goal queue,
// waypoint list, mid-term path and bounded neighbour collections (§3 data
// model). Concrete policies (ppr.Agent, orca.Agent) embed Base and
// implement Steerable.UpdateAI with their own pipeline; the engine only
// ever talks to the Steerable interface, dispatching over whichever
// concrete kind a module registered — the tagged-sum-over-concrete-kinds
// resolution of spec.md §9's "virtual dispatch over agents" design note.
package agent
