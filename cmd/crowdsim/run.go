package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/steersuite/crowdsim/agent"
	"github.com/steersuite/crowdsim/controlapi"
	"github.com/steersuite/crowdsim/engine"
	"github.com/steersuite/crowdsim/geometry"
	"github.com/steersuite/crowdsim/modharness"
	"github.com/steersuite/crowdsim/orca"
	"github.com/steersuite/crowdsim/ppr"
	"github.com/steersuite/crowdsim/recorder"
	"github.com/steersuite/crowdsim/telemetry"
)

type runOptions struct {
	preset       string
	frameBudget  int64
	timestep     time.Duration
	httpAddr     string
	statsEnabled bool
	recordPath   string
	otlpEndpoint string

	agentKind            string
	agentCount           int
	spawnMinX, spawnMinY float64
	spawnMaxX, spawnMaxY float64
	goalX, goalY         float64

	taskPoolSize int
}

func newRunCmd() *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "load a scenario preset and drive the simulation to completion",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulation(cmd.Context(), opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.preset, "preset", "", "path to a scenario preset TOML file (required)")
	flags.Int64Var(&opts.frameBudget, "frames", 1000, "number of simulation frames to run (0 = unbounded, requires --http to stop)")
	flags.DurationVar(&opts.timestep, "dt", 50*time.Millisecond, "fixed simulation timestep")
	flags.StringVar(&opts.httpAddr, "http", "", "controlapi listen address, e.g. :8090 (empty disables the control HTTP surface)")
	flags.BoolVar(&opts.statsEnabled, "stats", false, "enable telemetry recording of phase timings and retry counts")
	flags.StringVar(&opts.recordPath, "rec", "", "path to write a GobFile replay recording (empty disables recording)")
	flags.StringVar(&opts.otlpEndpoint, "otlp-endpoint", "", "OTLP HTTP collector endpoint, e.g. localhost:4318 (empty disables export)")
	flags.StringVar(&opts.agentKind, "agent-kind", "ppr", `which loaded module steers seeded agents: "ppr" or "orca"`)
	flags.IntVar(&opts.agentCount, "agents", 0, "number of agents to scatter uniformly across the spawn region with a shared goal (0 = seed none, e.g. a preset with its own feeder)")
	flags.Float64Var(&opts.spawnMinX, "spawn-min-x", -5, "spawn region minimum X")
	flags.Float64Var(&opts.spawnMinY, "spawn-min-y", -5, "spawn region minimum Y")
	flags.Float64Var(&opts.spawnMaxX, "spawn-max-x", 5, "spawn region maximum X")
	flags.Float64Var(&opts.spawnMaxY, "spawn-max-y", 5, "spawn region maximum Y")
	flags.Float64Var(&opts.goalX, "goal-x", 0, "shared seek-static goal X for seeded agents")
	flags.Float64Var(&opts.goalY, "goal-y", 0, "shared seek-static goal Y for seeded agents")
	flags.IntVar(&opts.taskPoolSize, "task-pool-size", 0, "bound concurrent offline preprocess tasks, e.g. obstacle BSP segment precompute (0 or 1 = sequential)")
	_ = cmd.MarkFlagRequired("preset")
	flags.SortFlags = false

	return cmd
}

func runSimulation(ctx context.Context, opts *runOptions) error {
	if opts.otlpEndpoint != "" {
		shutdown, err := telemetry.Init(ctx, opts.otlpEndpoint)
		if err != nil {
			return fmt.Errorf("crowdsim: telemetry init: %w", err)
		}
		defer shutdown(ctx)
	}

	eng := engine.New(engine.Options{
		FixedTimestep: opts.timestep,
		FrameBudget:   opts.frameBudget,
		StatsEnabled:  opts.statsEnabled,
		TaskPoolSize:  opts.taskPoolSize,
	})

	// Captured so the seeding step below can build agents against the
	// exact module instance the engine drives, without engine needing to
	// expose a post-load module accessor.
	pprModule := ppr.NewModule("ppr")
	orcaModule := orca.NewModule("orca")
	eng.RegisterFactory("ppr", func() engine.Module { return pprModule })
	eng.RegisterFactory("orca", func() engine.Module { return orcaModule })

	var control *controlapi.Server
	if opts.httpAddr != "" {
		control = controlapi.NewServer(eng)
		go func() {
			_ = control.ListenAndServe(ctx, opts.httpAddr)
		}()
	}

	var controller engine.Controller
	if control != nil {
		controller = control
	}
	if err := eng.Init(controller); err != nil {
		return fmt.Errorf("crowdsim: init: %w", err)
	}

	preset, err := modharness.LoadPreset(opts.preset)
	if err != nil {
		return fmt.Errorf("crowdsim: %w", err)
	}
	if err := modharness.ApplyPreset(eng, preset); err != nil {
		return fmt.Errorf("crowdsim: apply preset: %w", err)
	}

	if opts.agentCount > 0 {
		if err := seedAgents(eng, opts, pprModule, orcaModule); err != nil {
			return fmt.Errorf("crowdsim: seed agents: %w", err)
		}
	}

	if err := eng.LoadSimulation(); err != nil {
		return fmt.Errorf("crowdsim: load simulation: %w", err)
	}
	if err := eng.PreprocessSimulation(); err != nil {
		return fmt.Errorf("crowdsim: preprocess simulation: %w", err)
	}

	var rec recorder.Recorder
	if opts.recordPath != "" {
		gobFile, err := recorder.NewGobFile(opts.recordPath)
		if err != nil {
			return fmt.Errorf("crowdsim: open recording: %w", err)
		}
		rec = gobFile
		defer rec.Close()
	}

	for {
		pausedOnly := control != nil && control.Paused()

		cont, err := eng.Update(pausedOnly)
		if err != nil {
			return fmt.Errorf("crowdsim: update: %w", err)
		}

		if rec != nil && !pausedOnly {
			stats := eng.Stats()
			if err := rec.WriteFrame(int(stats.Frame), recorder.Snapshot(eng.Agents())); err != nil {
				return fmt.Errorf("crowdsim: write frame: %w", err)
			}
		}

		if !cont {
			break
		}
	}

	if err := eng.PostprocessSimulation(); err != nil {
		return fmt.Errorf("crowdsim: postprocess simulation: %w", err)
	}

	return eng.UnloadSimulation()
}

// seedAgents scatters opts.agentCount agents uniformly across the spawn
// region, each carrying one GoalSeekStatic goal at (goalX, goalY). A
// preset that already populates the scene via its own emitters should
// leave --agents at its zero value.
func seedAgents(eng *engine.Engine, opts *runOptions, pprModule *ppr.Module, orcaModule *orca.Module) error {
	goal := agent.Goal{
		Kind:      agent.GoalSeekStatic,
		Target:    geometry.NewPoint2(opts.goalX, opts.goalY),
		Threshold: 0.3,
	}

	for i := 0; i < opts.agentCount; i++ {
		id := fmt.Sprintf("%s-%d", opts.agentKind, i)
		pos := geometry.NewPoint2(
			opts.spawnMinX+rand.Float64()*(opts.spawnMaxX-opts.spawnMinX),
			opts.spawnMinY+rand.Float64()*(opts.spawnMaxY-opts.spawnMinY),
		)

		var steerable agent.Steerable
		switch opts.agentKind {
		case "orca":
			a, err := orca.NewAgent(id, 0.3, orcaModule)
			if err != nil {
				return err
			}
			a.Reset(agent.Base{})
			a.AddGoal(goal)
			a.SetKinematics(pos, geometry.Vector2{})
			steerable = a
		default:
			a, err := ppr.NewAgent(id, 0.3, pprModule)
			if err != nil {
				return err
			}
			a.Reset(agent.Base{})
			a.AddGoal(goal)
			a.SetKinematics(pos, geometry.Vector2{})
			steerable = a
		}

		if _, err := eng.CreateAgent(steerable, opts.agentKind); err != nil {
			return err
		}
	}

	return nil
}
