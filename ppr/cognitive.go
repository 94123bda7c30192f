package ppr

// PhaseOutcome reports what the cognitive phase decided needs
// (re)computing this tick, replacing PPRAgent.cpp's thrown-exception
// signalling of a plan invalidation with a plain value its caller branches
// on.
type PhaseOutcome struct {
	// Done is true when the goal queue is empty: nothing left to do.
	Done bool
	// NeedsLongTerm is true when there is no waypoint plan, or the final
	// waypoint has been reached and a new goal just advanced in.
	NeedsLongTerm bool
}

// CognitivePhase decides whether the current goal has been reached (in
// which case it advances the goal queue) and whether the long-term plan
// needs rebuilding for whatever goal is now current.
func CognitivePhase(a *Agent) PhaseOutcome {
	goal := a.CurrentGoal()
	if goal == nil || goal.Reached(a.Position(), a.Radius()) {
		if !a.AdvanceGoal() {
			return PhaseOutcome{Done: true}
		}

		return PhaseOutcome{NeedsLongTerm: true}
	}

	if len(a.Waypoints()) == 0 {
		return PhaseOutcome{NeedsLongTerm: true}
	}

	return PhaseOutcome{}
}
