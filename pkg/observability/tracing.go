package observability

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// TracingConfig holds OTLP trace exporter configuration.
type TracingConfig struct {
	ServiceName string
	Endpoint    string
	Insecure    bool
}

// InitTracer installs a global TracerProvider exporting spans over OTLP/gRPC.
// The returned function flushes and shuts the provider down.
func InitTracer(ctx context.Context, cfg TracingConfig) (func(context.Context) error, error) {
	opts := []otlptracegrpc.Option{otlptracegrpc.WithEndpoint(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracegrpc.WithInsecure())
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("observability: otlp exporter: %w", err)
	}

	res := resource.NewSchemaless(attribute.String("service.name", cfg.ServiceName))

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return provider.Shutdown, nil
}
