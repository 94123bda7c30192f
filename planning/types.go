package planning

import (
	"errors"
	"math"
)

// Sentinel errors returned by FindPath and Reachable.
var (
	// ErrEmptySource indicates that the provided start vertex ID is empty.
	ErrEmptySource = errors.New("planning: start vertex ID is empty")

	// ErrNilGraph indicates that a nil *core.Graph was passed in.
	ErrNilGraph = errors.New("planning: graph is nil")

	// ErrUnweightedGraph indicates the navigation graph was not built weighted.
	ErrUnweightedGraph = errors.New("planning: navigation graph must be weighted")

	// ErrVertexNotFound indicates start or goal does not exist in the graph.
	ErrVertexNotFound = errors.New("planning: vertex not found in navigation graph")

	// ErrNegativeWeight indicates a negative edge weight was detected.
	ErrNegativeWeight = errors.New("planning: negative edge weight encountered")

	// ErrNoPath indicates goal is unreachable from start.
	ErrNoPath = errors.New("planning: no path from start to goal")

	// ErrBadMaxCost indicates MaxCost was set to a negative value.
	ErrBadMaxCost = errors.New("planning: MaxCost must be non-negative")
)

// Options configures a single FindPath call.
//
// Start and Goal   – vertex IDs in the navigation graph.
// MaxCost          – optional cap on explored path cost; vertices beyond are
//
//	skipped. Must be >= 0. Default is math.MaxFloat64 (no cap).
//
// Heuristic        – admissible distance estimate; defaults to EuclideanHeuristic.
type Options struct {
	Start     string
	Goal      string
	MaxCost   float64
	Heuristic Heuristic
}

// Option is a functional option for configuring FindPath.
type Option func(*Options)

// WithMaxCost sets a maximum path cost threshold.
func WithMaxCost(max float64) Option {
	return func(o *Options) {
		if max < 0 {
			panic(ErrBadMaxCost.Error())
		}
		o.MaxCost = max
	}
}

// WithHeuristic overrides the default EuclideanHeuristic.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) {
		o.Heuristic = h
	}
}

// DefaultOptions returns Options initialized with sensible defaults for the
// given start/goal pair.
func DefaultOptions(start, goal string) Options {
	return Options{
		Start:     start,
		Goal:      goal,
		MaxCost:   math.MaxFloat64,
		Heuristic: EuclideanHeuristic(),
	}
}
