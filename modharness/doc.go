// Package modharness is the layer above engine: it resolves named module
// presets into a load order, expands agent emitters into create-agent
// calls frame by frame, and declares the feeder interfaces a test-case or
// rec-file driver implements — without baking either file format into the
// core (spec.md's Non-goals exclude mandating one).
//
// The preset's own module dependency/conflict graph is planned here, ahead
// of and independent from engine.LoadModule's own runtime graph: a preset
// can be validated (cycle-free, conflict-free, in dependency order) before
// any engine exists to load it into, the same way a dry-run build graph is
// checked before ninja/make actually runs it.
package modharness
