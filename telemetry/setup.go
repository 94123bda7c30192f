package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlploghttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	logglobal "go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// serviceName tags every exported metric/log with the simulation's
// instrumentation scope, matching meterRecorderName-style scoping.
const serviceName = "crowdsim"

// Shutdown flushes and stops the metric and log providers started by Init.
type Shutdown func(context.Context) error

// Init wires the "stats"/"allstats" option pair (§6 Configuration) to a
// real OTLP HTTP metrics+logs pipeline, registering it as the process's
// global MeterProvider/LoggerProvider so every RecordXxx call in this
// package reaches it. endpoint is the OTLP HTTP collector address (e.g.
// "localhost:4318"); callers that only want in-process counters without
// an exporter can skip Init and call the Record functions directly — the
// lazy instruments still register against whatever provider (including
// the no-op default) is globally set.
func Init(ctx context.Context, endpoint string) (Shutdown, error) {
	res, err := resource.Merge(resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: build resource: %w", err)
	}

	metricExporter, err := otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpoint(endpoint), otlpmetrichttp.WithInsecure())
	if err != nil {
		return nil, fmt.Errorf("telemetry: metric exporter: %w", err)
	}

	logExporter, err := otlploghttp.New(ctx, otlploghttp.WithEndpoint(endpoint), otlploghttp.WithInsecure())
	if err != nil {
		return nil, fmt.Errorf("telemetry: log exporter: %w", err)
	}

	meterProvider := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(metric.NewPeriodicReader(metricExporter)),
	)
	otel.SetMeterProvider(meterProvider)

	loggerProvider := sdklog.NewLoggerProvider(
		sdklog.WithResource(res),
		sdklog.WithProcessor(sdklog.NewBatchProcessor(logExporter)),
	)
	logglobal.SetLoggerProvider(loggerProvider)

	return func(shutdownCtx context.Context) error {
		if err := meterProvider.Shutdown(shutdownCtx); err != nil {
			return err
		}

		return loggerProvider.Shutdown(shutdownCtx)
	}, nil
}
