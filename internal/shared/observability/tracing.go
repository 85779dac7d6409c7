package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "importtree"

// Tracer resolves through the global provider, so spans are no-ops until
// SetupTracing installs an exporter.
var Tracer trace.Tracer = otel.Tracer(instrumentationName)

// SetupTracing exports spans over OTLP/gRPC to endpoint (host:port). An empty
// endpoint leaves tracing disabled. The returned shutdown flushes pending
// spans and is always safe to call.
func SetupTracing(ctx context.Context, endpoint string, insecure bool) (func(context.Context) error, error) {
	if endpoint == "" {
		return func(context.Context) error { return nil }, nil
	}

	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(endpoint)}
	if insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}
	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, sdktrace.WithBatchTimeout(2*time.Second)),
	)
	otel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}
