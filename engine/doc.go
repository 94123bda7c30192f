// Package engine drives the simulation's lifecycle state machine and
// phased tick loop (§4.1): it owns the module execution order, the agent
// and obstacle registries, the command table, and the engine-wide clock.
// Everything else in this module is a collaborator the engine calls into
// in a fixed order; the engine itself never blocks mid-tick (§5).
package engine
