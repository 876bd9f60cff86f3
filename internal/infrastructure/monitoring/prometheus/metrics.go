// Package prometheus exposes the platform's operational metrics.
package prometheus

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "smartimport"

// Metrics bundles every collector the platform records.
type Metrics struct {
	registry *prometheus.Registry

	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	ExchangeResolutionsTotal *prometheus.CounterVec
	ExchangeAttempts         prometheus.Histogram

	TreatmentLookupsTotal *prometheus.CounterVec

	AdvisorSuggestionsTotal *prometheus.CounterVec

	SimulationsTotal   prometheus.Counter
	SimulationDuration prometheus.Histogram

	EventsPublishedTotal *prometheus.CounterVec
}

// NewMetrics builds and registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	f := newFactory(registry)

	m := &Metrics{
		registry: registry,

		HTTPRequestsTotal: f.counterVec("http_requests_total",
			"Total HTTP requests served.", []string{"method", "path", "status"}),
		HTTPRequestDuration: f.histogramVec("http_request_duration_seconds",
			"HTTP request latency.", []string{"method", "path"},
			prometheus.DefBuckets),

		ExchangeResolutionsTotal: f.counterVec("exchange_resolutions_total",
			"Exchange-rate resolutions by outcome.", []string{"status"}),
		ExchangeAttempts: f.histogram("exchange_resolution_attempts",
			"Fallback attempts per exchange-rate resolution.",
			[]float64{1, 2, 3, 4, 5, 6, 7}),

		TreatmentLookupsTotal: f.counterVec("treatment_lookups_total",
			"Tax-treatment lookups by outcome.", []string{"outcome"}),

		AdvisorSuggestionsTotal: f.counterVec("advisor_suggestions_total",
			"Classification suggestions by outcome.", []string{"outcome"}),

		SimulationsTotal: f.counter("simulations_total",
			"Completed landed-cost simulations."),
		SimulationDuration: f.histogram("simulation_duration_seconds",
			"End-to-end simulation latency.",
			prometheus.DefBuckets),

		EventsPublishedTotal: f.counterVec("events_published_total",
			"Events published to Kafka by topic.", []string{"topic"}),
	}
	return m
}

// Handler serves the scrape endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for additional collectors.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// factory wraps a registry so collector construction stays one-line.
type factory struct{ reg prometheus.Registerer }

func newFactory(reg prometheus.Registerer) factory { return factory{reg: reg} }

func (f factory) counter(name, help string) prometheus.Counter {
	c := prometheus.NewCounter(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help})
	f.reg.MustRegister(c)
	return c
}

func (f factory) counterVec(name, help string, labels []string) *prometheus.CounterVec {
	c := prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: namespace, Name: name, Help: help}, labels)
	f.reg.MustRegister(c)
	return c
}

func (f factory) histogram(name, help string, buckets []float64) prometheus.Histogram {
	h := prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: namespace, Name: name, Help: help, Buckets: buckets})
	f.reg.MustRegister(h)
	return h
}

func (f factory) histogramVec(name, help string, labels []string, buckets []float64) *prometheus.HistogramVec {
	h := prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: namespace, Name: name, Help: help, Buckets: buckets}, labels)
	f.reg.MustRegister(h)
	return h
}

//Personal.AI order the ending
