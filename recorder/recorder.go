package recorder

import (
	"github.com/steersuite/crowdsim/agent"
	"github.com/steersuite/crowdsim/geometry"
)

// AgentSnapshot is one agent's recorded state for a single frame, matching
// the replay file format's per-agent fields: position, forward,
// enabled-flag, radius, and current-goal target.
type AgentSnapshot struct {
	ID         string
	Position   geometry.Point2
	Forward    geometry.Vector2
	Enabled    bool
	Radius     float64
	GoalTarget geometry.Point2
}

// Recorder persists one frame's agent snapshots at a time. Implementations
// are free to choose their own on-disk or on-wire representation; callers
// must call Close exactly once when done recording.
type Recorder interface {
	WriteFrame(frame int, agents []AgentSnapshot) error
	Close() error
}

// Snapshot converts a live agent roster into AgentSnapshots for recording.
// Disabled agents are included (with Enabled: false) rather than omitted,
// so a replay reader can tell "never existed" apart from "disabled this
// frame" when scanning a sequence of frames.
func Snapshot(agents []agent.Steerable) []AgentSnapshot {
	out := make([]AgentSnapshot, len(agents))
	for i, a := range agents {
		var goalTarget geometry.Point2
		if g := a.CurrentGoal(); g != nil {
			goalTarget = g.Target
		}

		out[i] = AgentSnapshot{
			ID:         a.ID(),
			Position:   a.Position(),
			Forward:    a.Forward(),
			Enabled:    a.Enabled(),
			Radius:     a.Radius(),
			GoalTarget: goalTarget,
		}
	}

	return out
}
