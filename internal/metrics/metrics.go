// Package metrics exports request metrics through the OpenTelemetry
// prometheus exporter.
package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	export "go.opentelemetry.io/otel/sdk/export/metric"
	"go.opentelemetry.io/otel/sdk/metric/aggregator/histogram"
	controller "go.opentelemetry.io/otel/sdk/metric/controller/basic"
	processor "go.opentelemetry.io/otel/sdk/metric/processor/basic"
	selector "go.opentelemetry.io/otel/sdk/metric/selector/simple"
)

type Metrics struct {
	exporter *prometheus.Exporter
	requests metric.Int64Counter
	duration metric.Float64ValueRecorder
}

// New wires a pull controller to a fresh prometheus registry and creates
// the request instruments under the given instrumentation name.
func New(name string) (*Metrics, error) {
	config := prometheus.Config{}
	c := controller.New(
		processor.New(
			selector.NewWithHistogramDistribution(
				histogram.WithExplicitBoundaries(config.DefaultHistogramBoundaries),
			),
			export.CumulativeExportKindSelector(),
			processor.WithMemory(true),
		),
	)
	exporter, err := prometheus.New(config, c)
	if err != nil {
		return nil, fmt.Errorf("metrics: init prometheus exporter: %w", err)
	}

	meter := metric.Must(exporter.MeterProvider().Meter(name))

	return &Metrics{
		exporter: exporter,
		requests: meter.NewInt64Counter(
			name+"/http/requests",
			metric.WithDescription("Count of completed requests, by route, HTTP method and response status"),
		),
		duration: meter.NewFloat64ValueRecorder(
			name+"/http/duration_ms",
			metric.WithDescription("Request handling time in milliseconds, by route"),
		),
	}, nil
}

// MeterProvider exposes the provider so it can be installed globally.
func (m *Metrics) MeterProvider() metric.MeterProvider {
	return m.exporter.MeterProvider()
}

// Record counts one completed request.
func (m *Metrics) Record(ctx context.Context, route, method string, status int, elapsed time.Duration) {
	m.requests.Add(ctx, 1,
		attribute.String("route", route),
		attribute.String("method", method),
		attribute.Int("status", status),
	)
	m.duration.Record(ctx, float64(elapsed)/float64(time.Millisecond),
		attribute.String("route", route),
	)
}

// ServeHTTP serves the prometheus scrape endpoint.
func (m *Metrics) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	m.exporter.ServeHTTP(w, r)
}
