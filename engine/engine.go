package engine

import (
	"log/slog"
	"time"

	"github.com/steersuite/crowdsim/agent"
	"github.com/steersuite/crowdsim/geometry"
	"github.com/steersuite/crowdsim/obstaclebsp"
)

// Controller is the abstract collaborator spec.md §4.1/§5 grants the power
// to request pause/stop. controlapi supplies one concrete implementation
// over HTTP; callers may supply any other.
type Controller interface {
	// ShouldStop is polled once at the end of every tick (§5 cancellation).
	ShouldStop() bool
}

// noopController never requests a stop; used when Init is called with a
// nil controller.
type noopController struct{}

func (noopController) ShouldStop() bool { return false }

// Options configures a new Engine.
type Options struct {
	// FixedTimestep is the simulation's dt, advanced once per non-paused
	// tick (§6 clock contract).
	FixedTimestep time.Duration
	// FrameBudget caps the number of simulation frames update() advances
	// before signalling termination; zero means unbounded.
	FrameBudget int64
	// Logger receives warn-level diagnostics for every non-fatal error
	// path (§7). Defaults to slog.Default() if nil.
	Logger *slog.Logger
	// Clock is the real-time source; defaults to clock.New() (wall clock).
	// Tests supply clock.NewMock().
	Clock Clock
	// StatsEnabled mirrors the "stats"/"allstats" configuration options
	// (§6): when true, Update reports ticks/sec and frame-budget
	// exhaustion through the telemetry package every tick. Left false by
	// default so a caller that never configured an OTel provider pays
	// nothing beyond a no-op instrument call.
	StatsEnabled bool
	// TaskPoolSize bounds how many preprocess-time offline tasks (obstacle
	// BSP segment precompute, per §5's task-manager pool) may run at once.
	// Zero or one runs them sequentially. Never consulted inside a tick:
	// per-tick agent scheduling stays strictly sequential per §5's
	// "single simulation tick is strictly sequential" guarantee.
	TaskPoolSize int
}

// Engine is the simulation driver: lifecycle state machine, module
// execution order, agent/obstacle registries, command table and clock.
type Engine struct {
	state State

	logger *slog.Logger
	clock  Clock

	fixedTimestep time.Duration
	frameBudget   int64
	frame         int64
	simTime       time.Duration
	realStart     time.Time

	controller Controller
	stop       bool

	modules     map[string]*moduleMeta
	moduleOrder []string // dependency-topological execution order
	factories   map[string]ModuleFactory

	agents     map[string]agent.Steerable
	agentOrder []string
	agentOwner map[string]string

	obstaclePolygons [][]geometry.Point2
	obstacleOwner    []string
	obstacleTree     *obstaclebsp.Tree

	commands map[string]func() error

	statsEnabled bool
	taskPool     *TaskPool
}

// New constructs an Engine in StateNew; call Init to advance to StateReady.
func New(opts Options) *Engine {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.FixedTimestep <= 0 {
		opts.FixedTimestep = 50 * time.Millisecond
	}
	taskPoolSize := opts.TaskPoolSize
	if taskPoolSize <= 0 {
		taskPoolSize = 1
	}

	return &Engine{
		state:         StateNew,
		logger:        opts.Logger,
		clock:         opts.Clock,
		fixedTimestep: opts.FixedTimestep,
		frameBudget:   opts.FrameBudget,
		modules:       make(map[string]*moduleMeta),
		agents:        make(map[string]agent.Steerable),
		agentOwner:    make(map[string]string),
		commands:      make(map[string]func() error),
		statsEnabled:  opts.StatsEnabled,
		taskPool:      NewTaskPool(taskPoolSize),
	}
}

// State returns the engine's current lifecycle state.
func (e *Engine) State() State { return e.state }

// transition moves the engine from its current state to to, or returns
// ErrInvalidLifecycleTransition without mutating state.
func (e *Engine) transition(to State) error {
	if !canTransition(e.state, to) {
		return ErrInvalidLifecycleTransition
	}
	e.state = to

	return nil
}

// Init brings the engine from StateNew to StateReady. controller may be
// nil, in which case the engine never observes a stop request from outside.
func (e *Engine) Init(controller Controller) error {
	if e.state != StateNew {
		return ErrInvalidLifecycleTransition
	}
	if controller == nil {
		controller = noopController{}
	}
	e.controller = controller
	if err := e.transition(StateInitializing); err != nil {
		return err
	}
	if e.clock == nil {
		e.clock = defaultClock()
	}
	e.realStart = e.clock.Now()

	return e.transition(StateReady)
}

// Finish tears the engine down from StateReady to StateFinished via
// StateCleaningUp, finishing every loaded module in reverse dependency
// order.
func (e *Engine) Finish() error {
	if e.state != StateReady {
		return ErrInvalidLifecycleTransition
	}
	if err := e.transition(StateCleaningUp); err != nil {
		return err
	}
	for i := len(e.moduleOrder) - 1; i >= 0; i-- {
		name := e.moduleOrder[i]
		meta := e.modules[name]
		if meta.loaded {
			if err := meta.mod.Finish(); err != nil {
				e.logger.Warn("module finish failed", "module", name, "error", err)
			}
		}
	}

	return e.transition(StateFinished)
}

// Stats reports the clock-contract fields.
func (e *Engine) Stats() Stats {
	elapsed := e.clock.Now().Sub(e.realStart)
	fps := 0.0
	if elapsed > 0 {
		fps = float64(e.frame) / elapsed.Seconds()
	}

	return Stats{Frame: e.frame, SimTime: e.simTime, RealElapsed: elapsed, RealFPS: fps}
}
