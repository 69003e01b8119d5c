// Package metrics holds shared metric definitions for the service.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/otlptranslator"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// HTTPRequestDuration tracks handled HTTP requests by method, route and status.
type HTTPRequestDuration struct {
	vec *prometheus.HistogramVec
}

// NewHTTPRequestDuration creates the request histogram and registers it with reg.
func NewHTTPRequestDuration(reg prometheus.Registerer) (*HTTPRequestDuration, error) {
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "veggieplan",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "Duration of handled HTTP requests.",
		Buckets:   DefaultBuckets,
	}, []string{"method", "route", "status"})

	if err := reg.Register(vec); err != nil {
		return nil, err //nolint: wrapcheck
	}

	return &HTTPRequestDuration{vec: vec}, nil
}

// Observe records a single request.
func (h *HTTPRequestDuration) Observe(method, route, status string, seconds float64) {
	h.vec.WithLabelValues(method, route, status).Observe(seconds)
}

// NewMeterProvider returns an OpenTelemetry meter provider whose instruments
// are exported through reg, next to the native Prometheus collectors.
// Dotted instrument names are escaped to underscores and get unit and
// counter suffixes, so veggieplan.analyses is scraped as veggieplan_analyses_total.
func NewMeterProvider(reg prometheus.Registerer) (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(
		otelprom.WithRegisterer(reg),
		otelprom.WithTranslationStrategy(otlptranslator.UnderscoreEscapingWithSuffixes),
	)
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}
