// Package diag serves the diagnostics listener: prometheus metrics backed by
// an OpenTelemetry meter, and a liveness probe.
package diag

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/attribute"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"
)

// Metrics counts requests and store saves. It satisfies router.Observer.
type Metrics struct {
	provider *sdkmetric.MeterProvider
	registry *prometheus.Registry

	requests metric.Int64Counter
	saves    metric.Int64Counter
}

// New builds a meter provider exporting to a private prometheus registry.
func New(serviceName string) (*Metrics, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	m := &Metrics{
		provider: sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter)),
		registry: registry,
	}
	meter := m.provider.Meter(serviceName)

	m.requests, err = meter.Int64Counter(
		"scoop.http.requests",
		metric.WithDescription("Count of completed requests, by method, route and response status"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create request counter: %w", err)
	}

	m.saves, err = meter.Int64Counter(
		"scoop.store.saves",
		metric.WithDescription("Count of store saves, by result"),
		metric.WithUnit("{save}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create save counter: %w", err)
	}

	return m, nil
}

func (m *Metrics) ObserveRequest(ctx context.Context, method, route string, status int) {
	m.requests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("method", method),
		attribute.String("route", route),
		attribute.Int("status", status),
	))
}

func (m *Metrics) ObserveSave(ctx context.Context, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}

	m.saves.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}

// Handler serves the prometheus exposition of every recorded metric.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}

// Router mounts /metrics and /ping.
func Router(m *Metrics, logger *zap.SugaredLogger) chi.Router {
	r := chi.NewRouter()
	r.Method(http.MethodGet, "/metrics", m.Handler())
	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("pong")); err != nil {
			logger.Errorw("write ping", "error", err)
		}
	})

	return r
}
