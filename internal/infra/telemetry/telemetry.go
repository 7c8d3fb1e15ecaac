// Package telemetry wires OpenTelemetry tracing into the fx lifecycle.
package telemetry

import (
	"context"
	"log/slog"

	"crm/config"
	"crm/internal/domain/lifecycle"
	"crm/internal/errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
)

// InstrumentationName is the tracer name used by application code.
const InstrumentationName = "crm"

// Params defines the dependencies of the tracer provider
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// New installs the global tracer provider and returns the application tracer.
// Disabled telemetry installs a noop provider so spans cost nothing.
func New(params Params) (trace.Tracer, error) {
	cfg := params.Config.Telemetry
	if cfg == nil || !cfg.Enabled || cfg.Endpoint == "" {
		otel.SetTracerProvider(noop.NewTracerProvider())
		otel.SetTextMapPropagator(propagation.TraceContext{})

		return otel.Tracer(InstrumentationName), nil
	}

	ctx, cancel := context.WithTimeout(params.Ctx, lifecycle.DefaultTimeout)
	defer cancel()

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}
	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create otlp exporter")
	}

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithProcess(),
		resource.WithAttributes(
			semconv.ServiceName(params.Config.Env.ServiceName),
			semconv.DeploymentEnvironment(params.Config.Env.Env),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build telemetry resource")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.SampleRatio))),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return errors.Wrap(tp.Shutdown(ctx), "failed to flush traces")
		},
	})

	params.Logger.Info("Telemetry enabled",
		slog.String("endpoint", cfg.Endpoint),
		slog.Float64("sample_ratio", cfg.SampleRatio),
	)

	return tp.Tracer(InstrumentationName), nil
}
