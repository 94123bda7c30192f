package ppr

// PhaseSchedule tracks one pipeline phase's run cadence: the phase only
// actually executes every PeriodFrames frames, with AdjustPeriod nudging
// that period up or down based on how eventful the last run was. This is
// the "dynamic scheduling" design note's feedback heuristic: threats or
// fast motion call for checking more often, a quiet scene can be checked
// less often without agents visibly drifting off course.
type PhaseSchedule struct {
	PeriodFrames int
	lastRun      int64
}

// NewPhaseSchedule starts a schedule at the given initial period.
func NewPhaseSchedule(initialPeriod int) *PhaseSchedule {
	if initialPeriod < 1 {
		initialPeriod = 1
	}

	return &PhaseSchedule{PeriodFrames: initialPeriod, lastRun: -1}
}

// Due reports whether the phase should run this frame.
func (s *PhaseSchedule) Due(frame int64) bool {
	return s.lastRun < 0 || frame-s.lastRun >= int64(s.PeriodFrames)
}

// MarkRun records that the phase ran this frame.
func (s *PhaseSchedule) MarkRun(frame int64) {
	s.lastRun = frame
}

// AdjustPeriod retunes PeriodFrames after a run: an eventful run (hit==true,
// e.g. a new imminent threat or a feeler strike) halves the period down to
// minPeriod so the next check comes sooner, a quiet run grows it by one
// frame up to maxPeriod, and speed scales both directions since a faster
// agent covers more ground between checks.
func (s *PhaseSchedule) AdjustPeriod(hit bool, speed, typicalSpeed float64, minPeriod, maxPeriod int) {
	speedFactor := 1.0
	if typicalSpeed > epsilon {
		speedFactor = speed / typicalSpeed
	}

	switch {
	case hit:
		next := s.PeriodFrames / 2
		if speedFactor > 1 {
			next = int(float64(next) / speedFactor)
		}
		if next < minPeriod {
			next = minPeriod
		}
		s.PeriodFrames = next
	default:
		next := s.PeriodFrames + 1
		if next > maxPeriod {
			next = maxPeriod
		}
		s.PeriodFrames = next
	}
}
