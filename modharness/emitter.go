package modharness

import (
	"fmt"
	"time"

	"github.com/steersuite/crowdsim/engine"
)

// EmitterModule is a concrete engine.Module that owns a list of Emitters
// and materializes agents from them during PreprocessFrame — the
// "spawner" role spec.md's design notes describe ("on each
// preprocess-frame the engine consults emitters and materialises new
// agents via create-agent"), implemented as an ordinary module rather
// than as a special engine code path so it composes with the rest of the
// module system (dependencies, conflicts, unload).
type EmitterModule struct {
	name     string
	eng      *engine.Engine
	emitters []*Emitter
	nextID   int
}

// NewEmitterModule constructs an EmitterModule named name with the given
// emitters, validating that every emitter carries a non-nil Factory.
func NewEmitterModule(name string, emitters []*Emitter) (*EmitterModule, error) {
	for _, e := range emitters {
		if e.Factory == nil {
			return nil, fmt.Errorf("%w: %s", ErrEmptyEmitterTemplate, e.Name)
		}
	}

	return &EmitterModule{name: name, emitters: emitters}, nil
}

func (m *EmitterModule) Name() string           { return m.name }
func (m *EmitterModule) Dependencies() []string { return nil }
func (m *EmitterModule) Conflicts() []string    { return nil }

func (m *EmitterModule) Init(_ map[string]string, eng *engine.Engine) error {
	m.eng = eng

	return nil
}

func (m *EmitterModule) Finish() error { return nil }

func (m *EmitterModule) InitializeSimulation() error {
	for _, e := range m.emitters {
		e.spawned = 0
		e.nextDueTime = 0
	}

	return nil
}

func (m *EmitterModule) PreprocessSimulation() error { return nil }

// PreprocessFrame materializes every emitter's due agents for this frame.
func (m *EmitterModule) PreprocessFrame(simTime, dt float64, frame int64) error {
	now := time.Duration(simTime * float64(time.Second))
	for _, e := range m.emitters {
		if e.Schedule.Total > 0 && e.spawned >= e.Schedule.Total {
			continue
		}
		for now >= e.nextDueTime {
			if e.Schedule.Total > 0 && e.spawned >= e.Schedule.Total {
				break
			}
			id := fmt.Sprintf("%s-%d", e.Name, m.nextID)
			m.nextID++
			a, err := e.Factory(id)
			if err != nil {
				return fmt.Errorf("modharness: emitter %s: %w", e.Name, err)
			}
			if _, err := m.eng.CreateAgent(a, m.name); err != nil {
				return err
			}
			e.spawned++
			e.nextDueTime += e.Schedule.Rate
			if e.Schedule.Rate <= 0 {
				break
			}
		}
	}

	return nil
}

func (m *EmitterModule) PostprocessFrame(simTime, dt float64, frame int64) error { return nil }
func (m *EmitterModule) PostprocessSimulation() error                           { return nil }
func (m *EmitterModule) CleanupSimulation() error                               { return nil }
