package observability

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	ServiceName string
}

// InitMetrics initializes an OpenTelemetry MeterProvider backed by a
// Prometheus exporter on a dedicated registry. It returns the provider and an
// HTTP handler for the /metrics endpoint.
func InitMetrics(cfg MetricsConfig) (*sdkmetric.MeterProvider, http.Handler, error) {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{Namespace: cfg.ServiceName}),
	)

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("observability: prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)

	handler := promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	return provider, handler, nil
}
