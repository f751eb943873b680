package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/admission/pkg/domain"
)

// Metrics holds the service collectors. A nil *Metrics is a valid no-op.
type Metrics struct {
	registry    *prometheus.Registry
	generated   *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	authDenials *prometheus.CounterVec
}

// NewMetrics creates and registers the collectors in a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		generated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admission_templates_generated_total",
				Help: "Total number of score upload templates generated",
			},
			[]string{"format", "status"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "admission_template_render_seconds",
				Help:    "Duration of template rendering",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
			},
			[]string{"format"},
		),
		authDenials: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "admission_auth_denials_total",
				Help: "Total number of requests rejected by the admin gate",
			},
			[]string{"reason"},
		),
	}
	m.registry.MustRegister(
		m.generated,
		m.duration,
		m.authDenials,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveGeneration records a template generation outcome.
func (m *Metrics) ObserveGeneration(format domain.Format, elapsed time.Duration, err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.generated.WithLabelValues(string(format), status).Inc()
	m.duration.WithLabelValues(string(format)).Observe(elapsed.Seconds())
}

// AuthDenied records a rejected admin request.
func (m *Metrics) AuthDenied(reason string) {
	if m == nil {
		return
	}
	m.authDenials.WithLabelValues(reason).Inc()
}

// Registry exposes the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// GeneratedCount returns the generation counter for a format and status ("ok" or "error").
func (m *Metrics) GeneratedCount(format domain.Format, status string) prometheus.Counter {
	return m.generated.WithLabelValues(string(format), status)
}

// DenialCount returns the denial counter for a reason.
func (m *Metrics) DenialCount(reason string) prometheus.Counter {
	return m.authDenials.WithLabelValues(reason)
}
