// Package crowdsim is a deterministic, tick-based pedestrian crowd simulation
// engine: it steps a population of agents through a static scene, using
// predictive-reactive (PPR) long-term planning blended with reciprocal
// velocity-obstacle (ORCA) local collision avoidance.
//
// The simulation proper lives in subpackages organized the way a reader of
// this module is expected to navigate it:
//
//	geometry/    — 2-D vector/segment primitives shared by every other package
//	kdtree/      — per-tick spatial index over agent positions
//	obstaclebsp/ — one-time BSP partition of static scene geometry
//	planning/    — A* long-term path search over the scene's navigation graph
//	agent/       — per-agent kinematic and perceptual state
//	ppr/         — predictive-reactive steering pipeline (cognitive → locomotion)
//	orca/        — reciprocal velocity obstacle local avoidance solver
//	engine/      — simulation lifecycle, phased tick loop, module registry
//	modharness/  — pluggable module dependency resolution and scheduling
//	recorder/    — trajectory capture and playback for regression comparison
//	telemetry/   — OpenTelemetry instrumentation of tick phases
//	controlapi/  — HTTP control surface for starting/stepping/inspecting a run
//	cmd/crowdsim — CLI driver wiring the above into a runnable simulation
//
// See engine.Engine for the entry point most callers want.
package crowdsim
