// Package ppr implements the predictive-reactive pedestrian agent: a
// six-phase pipeline (cognitive, long-term, mid-term, short-term,
// perceptive, predictive, reactive, locomotion) each scheduled
// independently, with threat-list maintenance and a steering state
// machine driving reactive feeler-based avoidance.
//
// Ported from original_source/pprAI/src/PPRAgent.cpp's shape into
// idiomatic Go: exceptions for phase transitions become an explicit
// PhaseOutcome sum type, and per-agent mutable globals become fields on
// Agent.
package ppr
