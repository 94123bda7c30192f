package engine

import (
	"time"

	"github.com/benbjohnson/clock"
)

// Clock is the real-time source the engine advances every tick regardless
// of pause state (spec.md §4.1 step 1). Production code uses clock.New();
// tests inject clock.NewMock() to drive deterministic round-trip and
// determinism checks (§8) without real sleeps.
type Clock = clock.Clock

// defaultClock returns the real wall clock, used when Options.Clock is
// left nil.
func defaultClock() Clock { return clock.New() }

// Stats reports the clock-contract fields spec.md §6 requires: current
// frame number, current simulation time, real elapsed time, and real FPS.
type Stats struct {
	Frame       int64
	SimTime     time.Duration
	RealElapsed time.Duration
	RealFPS     float64
}
