// Package tracing configures the global OpenTelemetry tracer provider.
package tracing

import (
	"context"
	"log/slog"

	"marketbridge/config"
	"marketbridge/internal/domain/constants"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/fx"
)

const (
	ExporterOTLP   = "otlp"
	ExporterStdout = "stdout"

	defaultSampleRatio = 0.1
)

// Params holds dependencies for the tracer provider
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewTracerProvider installs the global tracer provider. Spans are dropped when tracing is disabled.
func NewTracerProvider(params Params) (trace.TracerProvider, error) {
	cfg := params.Config.Tracing
	if cfg == nil || !cfg.Enabled {
		provider := noop.NewTracerProvider()
		otel.SetTracerProvider(provider)

		return provider, nil
	}

	exporter, err := newExporter(params.Ctx, cfg)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(params.Ctx,
		resource.WithAttributes(
			attribute.String("service.name", params.Config.Env.ServiceName),
			attribute.String("service.version", constants.AppVersion),
			attribute.String("deployment.environment", params.Config.Env.Env),
		),
	)
	if err != nil {
		return nil, errors.Wrap(err, "build tracing resource")
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(sampleRatio(cfg.SampleRatio)))),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return errors.WithStack(provider.Shutdown(ctx))
		},
	})

	params.Logger.Info("Tracing initialized",
		slog.String("exporter", cfg.Exporter),
		slog.String("endpoint", cfg.Endpoint),
	)

	return provider, nil
}

func newExporter(ctx context.Context, cfg *config.TracingConfig) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case ExporterOTLP:
		opts := []otlptracehttp.Option{}
		if cfg.Endpoint != "" {
			opts = append(opts, otlptracehttp.WithEndpoint(cfg.Endpoint))
		}
		if cfg.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		exporter, err := otlptracehttp.New(ctx, opts...)

		return exporter, errors.WithStack(err)
	case ExporterStdout, "":
		exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())

		return exporter, errors.WithStack(err)
	default:
		return nil, errors.Errorf("unknown tracing exporter: %s", cfg.Exporter)
	}
}

func sampleRatio(ratio float64) float64 {
	switch {
	case ratio <= 0:
		return defaultSampleRatio
	case ratio > 1:
		return 1
	default:
		return ratio
	}
}

// Module provides the tracing FX module. Invoked so the global provider is set before any span starts.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewTracerProvider),
	fx.Invoke(func(trace.TracerProvider) {}),
)
