package telemetry

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otellog "go.opentelemetry.io/otel/log"
	logglobal "go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
)

const (
	meterName  = "github.com/steersuite/crowdsim"
	loggerName = "crowdsim"
)

// simInstruments holds every lazily-initialized OTel metric instrument
// the engine's tick loop reports against.
type simInstruments struct {
	pprPhaseDurationHist metric.Float64Histogram
	orcaLPRetryTotal     metric.Int64Counter
	ticksPerSecGauge     metric.Float64Gauge
	frameBudgetExhausted metric.Int64Counter
}

var (
	instOnce sync.Once
	inst     simInstruments
)

func initInstruments() {
	instOnce.Do(func() {
		m := otel.GetMeterProvider().Meter(meterName)

		inst.pprPhaseDurationHist, _ = m.Float64Histogram("crowdsim.ppr.phase.duration_ms",
			metric.WithDescription("Wall-clock duration of one PPR pipeline phase invocation"),
			metric.WithUnit("ms"),
		)
		inst.orcaLPRetryTotal, _ = m.Int64Counter("crowdsim.orca.lp.retries.total",
			metric.WithDescription("Total times LinearProgram2/3 fell back after an infeasible line"),
		)
		inst.ticksPerSecGauge, _ = m.Float64Gauge("crowdsim.engine.ticks_per_sec",
			metric.WithDescription("Observed simulation ticks per real second"),
		)
		inst.frameBudgetExhausted, _ = m.Int64Counter("crowdsim.engine.frame_budget_exhausted.total",
			metric.WithDescription("Total times Update stopped the simulation because the frame budget was reached"),
		)
	})
}

// emit sends one OTel log record through the global LoggerProvider,
// mirroring the metric it accompanies.
func emit(ctx context.Context, body string, sev otellog.Severity, attrs ...otellog.KeyValue) {
	logger := logglobal.GetLoggerProvider().Logger(loggerName)

	var r otellog.Record
	r.SetBody(otellog.StringValue(body))
	r.SetSeverity(sev)
	r.AddAttributes(attrs...)
	logger.Emit(ctx, r)
}

// RecordPhaseDuration records one PPR phase's wall-clock duration.
func RecordPhaseDuration(ctx context.Context, phase string, durationMs float64) {
	initInstruments()
	inst.pprPhaseDurationHist.Record(ctx, durationMs, metric.WithAttributes(attribute.String("phase", phase)))
}

// RecordLPRetry records one ORCA linear-program fallback (LinearProgram2
// hitting an infeasible line and re-running LinearProgram3 over a subset
// of the constraints, or the joint-infeasibility tie-breaking fallback).
func RecordLPRetry(ctx context.Context, agentID string, lineIndex int) {
	initInstruments()
	inst.orcaLPRetryTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("agent", agentID),
		attribute.Int("line", lineIndex),
	))
	emit(ctx, "orca.lp.retry", otellog.SeverityDebug,
		otellog.String("agent", agentID),
		otellog.Int("line", lineIndex),
	)
}

// RecordTicksPerSecond records the engine's current observed ticks/sec.
func RecordTicksPerSecond(ctx context.Context, ticksPerSec float64) {
	initInstruments()
	inst.ticksPerSecGauge.Record(ctx, ticksPerSec)
}

// RecordFrameBudgetExhausted records that Update stopped the simulation
// because the configured frame budget was reached.
func RecordFrameBudgetExhausted(ctx context.Context, frame int64) {
	initInstruments()
	inst.frameBudgetExhausted.Add(ctx, 1)
	emit(ctx, "engine.frame_budget_exhausted", otellog.SeverityInfo,
		otellog.Int64("frame", frame),
	)
}
