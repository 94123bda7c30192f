package engine

// Module is the contract every plugin implements (§6's Module API). The
// optional simulation-lifecycle hooks are still required methods here (Go
// has no optional interface methods); a module with nothing to do in a
// given hook simply returns nil.
type Module interface {
	Name() string
	Dependencies() []string
	Conflicts() []string

	Init(options map[string]string, eng *Engine) error
	Finish() error

	InitializeSimulation() error
	PreprocessSimulation() error
	PreprocessFrame(simTime, dt float64, frame int64) error
	PostprocessFrame(simTime, dt float64, frame int64) error
	PostprocessSimulation() error
	CleanupSimulation() error
}

// moduleMeta is the per-module bookkeeping spec.md §3's data model names:
// name, declared dependency/conflict sets, dependants, loaded/initialized
// flags.
type moduleMeta struct {
	mod         Module
	loaded      bool
	initialized bool
	dependants  map[string]struct{}
}

func newModuleMeta(m Module) *moduleMeta {
	return &moduleMeta{mod: m, dependants: make(map[string]struct{})}
}
