package modharness

import (
	"github.com/steersuite/crowdsim/engine"
)

// TestCaseFeeder loads a scenario (agents, obstacles, modules, emitters)
// from wherever its concrete implementation reads it — a file, a network
// fetch, a generator — and applies it to eng. spec.md's Non-goals exclude
// mandating a test-case file format, so only the interface lives here;
// concrete feeders (a JSON reader, a YAML reader, ...) are out of scope.
type TestCaseFeeder interface {
	Feed(eng *engine.Engine) error
}

// RecordFeeder replays previously recorded per-frame agent snapshots back
// into a running simulation (or into a comparison harness), one frame at
// a time. recorder.GobFile is the one concrete writer this repo ships;
// RecordFeeder is its read-side counterpart, kept abstract the same way.
type RecordFeeder interface {
	// NextFrame returns the next recorded frame's agent snapshots, or
	// ok=false once the record is exhausted.
	NextFrame() (frame int64, snapshots []AgentSnapshot, ok bool, err error)
	Close() error
}

// AgentSnapshot is the minimal per-agent state a RecordFeeder yields —
// intentionally a plain struct rather than agent.Steerable, since a
// replayed frame is data, not a live steering-capable agent.
type AgentSnapshot struct {
	ID       string
	Position [2]float64
	Forward  [2]float64
	Velocity [2]float64
}
