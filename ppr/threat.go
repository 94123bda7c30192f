package ppr

import (
	"math"
	"time"

	"github.com/steersuite/crowdsim/geometry"
)

// ThreatKind classifies how a predicted collision approaches, grounded on
// PPRAgent.cpp's distinction between agents closing head-on versus crossing
// paths at an angle.
type ThreatKind int

const (
	// ThreatOncoming is a neighbour closing almost directly against this
	// agent's forward direction.
	ThreatOncoming ThreatKind = iota
	// ThreatCrossingSoon reaches its closest approach within the first
	// half of the threat time window.
	ThreatCrossingSoon
	// ThreatCrossingLate reaches its closest approach in the back half
	// of the window, leaving more room to resolve it cooperatively.
	ThreatCrossingLate
)

// Threat records one neighbour whose predicted trajectory enters this
// agent's collision disk within the threat time window.
type Threat struct {
	NeighborID string
	Kind       ThreatKind
	// MinTime/MaxTime bound the window, in seconds from now, during which
	// the predicted relative position lies inside the combined radius.
	MinTime, MaxTime float64
	// Imminent is true when MinTime falls within
	// [Parameters.ThreatMinTime, Parameters.ThreatMaxTime].
	Imminent bool
}

// ClosestApproach solves ||dO + t*dV||^2 = combinedRadius^2 for the window
// of t >= 0 during which the relative trajectory lies inside the combined
// radius, where dO is the other agent's current position relative to self
// and dV is its velocity relative to self (otherVel - selfVel). It reports
// ok=false when the trajectories never come that close.
func ClosestApproach(dO, dV geometry.Vector2, combinedRadius float64) (minTime, maxTime float64, ok bool) {
	a := dV.Dot(dV)
	b := 2 * dO.Dot(dV)
	c := dO.Dot(dO) - combinedRadius*combinedRadius

	if a < epsilon {
		if c <= 0 {
			// Already overlapping with no relative motion: the window
			// never closes on its own.
			return 0, ThreatMaxTimeUnbounded, true
		}

		return 0, 0, false
	}

	disc := b*b - 4*a*c
	if disc < 0 {
		return 0, 0, false
	}

	sqrtDisc := math.Sqrt(disc)
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)
	if t2 < 0 {
		return 0, 0, false
	}

	if t1 < 0 {
		t1 = 0
	}

	return t1, t2, true
}

// ThreatMaxTimeUnbounded stands in for "never clears on its own" when two
// agents are already overlapping and not separating.
const ThreatMaxTimeUnbounded = 1e9

// ComputeThreats predicts, for every neighbour, whether its trajectory
// enters this agent's collision disk (inflated by DynamicCollisionPadding)
// within the next few seconds, classifying each as oncoming or crossing.
func ComputeThreats(pos, vel, forward geometry.Vector2, radius float64, neighbors []NeighborInfo, params Parameters) []Threat {
	threats := make([]Threat, 0, len(neighbors))

	for _, n := range neighbors {
		dO := n.Position.Sub(pos)
		dV := n.Velocity.Sub(vel)
		combined := radius + n.Radius + params.DynamicCollisionPadding

		minTime, maxTime, ok := ClosestApproach(dO, dV, combined)
		if !ok {
			continue
		}

		imminent := minTime >= params.ThreatMinTime && minTime <= params.ThreatMaxTime

		var kind ThreatKind
		switch {
		case forward.Dot(n.Forward) <= params.OncomingPredictionThreshold:
			kind = ThreatOncoming
		case minTime <= (params.ThreatMinTime+params.ThreatMaxTime)/2:
			kind = ThreatCrossingSoon
		default:
			kind = ThreatCrossingLate
		}

		threats = append(threats, Threat{
			NeighborID: n.ID,
			Kind:       kind,
			MinTime:    minTime,
			MaxTime:    maxTime,
			Imminent:   imminent,
		})
	}

	return threats
}

// CountImminent returns how many threats in the list are Imminent.
func CountImminent(threats []Threat) int {
	n := 0
	for _, th := range threats {
		if th.Imminent {
			n++
		}
	}

	return n
}

// Tracker maintains the clear-path hysteresis described in SPEC_FULL.md's
// reactive-phase supplement: the path only counts as "clear" once the
// threat list has been empty for ClearPathMinTime consecutive seconds,
// preventing a single gap in an otherwise dense crowd from flipping the
// agent straight out of STATE_WAIT_UNTIL_CLEAR.
type Tracker struct {
	threats    []Threat
	clearSince time.Duration
}

// Update replaces the tracked threat list and advances (or resets) the
// clear-path timer by dt seconds.
func (t *Tracker) Update(dt float64, threats []Threat) {
	t.threats = threats
	if len(threats) == 0 {
		t.clearSince += time.Duration(dt * float64(time.Second))
	} else {
		t.clearSince = 0
	}
}

// Threats returns the most recently tracked threat list.
func (t *Tracker) Threats() []Threat { return t.threats }

// ClearFor reports whether the path has been threat-free for at least min.
func (t *Tracker) ClearFor(min time.Duration) bool {
	return len(t.threats) == 0 && t.clearSince >= min
}

// durationSeconds converts a float64 second count (as Parameters store
// them) to a time.Duration.
func durationSeconds(seconds float64) time.Duration {
	return time.Duration(seconds * float64(time.Second))
}
