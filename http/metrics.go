package http

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records scrape pipeline outcomes into a private Prometheus
// registry served at /metrics.
type Metrics struct {
	registry *prometheus.Registry

	scrapes  *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics creates and registers the scrape metrics.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		scrapes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stagenote",
			Name:      "scrapes_total",
			Help:      "Number of scrape requests by outcome.",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "stagenote",
			Name:      "scrape_duration_seconds",
			Help:      "End to end scrape duration including rendering and OCR.",
			Buckets:   prometheus.ExponentialBuckets(0.25, 2, 10),
		}),
	}
	m.registry.MustRegister(m.scrapes, m.duration)
	return m
}

// Registry returns the underlying registry for serving.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveScrape records one scrape attempt.
func (m *Metrics) ObserveScrape(d time.Duration, err error) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.scrapes.WithLabelValues(outcome).Inc()
	m.duration.Observe(d.Seconds())
}
