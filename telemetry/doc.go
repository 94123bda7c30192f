// Package telemetry instruments simulation concerns with OpenTelemetry
// metrics and logs: per-phase PPR timings, ORCA linear-program retry
// counts, ticks/sec, and frame-budget exhaustion.
//
// It mirrors the lazy-instrument pattern of a typical OTel metrics
// recorder: one package-level set of counters/histograms built once
// behind a sync.Once against whatever MeterProvider/LoggerProvider is
// globally registered at first use, rather than threading instrument
// handles through every call site.
package telemetry
