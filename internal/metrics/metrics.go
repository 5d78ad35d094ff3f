// Package metrics exposes the service's Prometheus collectors.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels
const (
	OutcomeOK      = "ok"
	OutcomeWarning = "warning"
	OutcomeError   = "error"
)

// Metrics holds the collectors and the registry they are registered on
type Metrics struct {
	registry       *prometheus.Registry
	Uploads          *prometheus.CounterVec
	UploadRejections *prometheus.CounterVec
	Reports          *prometheus.CounterVec
	ParseDuration    prometheus.Histogram
	ActiveSessions   prometheus.Gauge
}

// New registers every collector on a fresh registry
func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		Uploads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dss",
			Name:      "uploads_total",
			Help:      "Survey uploads by outcome.",
		}, []string{"outcome"}),
		UploadRejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dss",
			Name:      "upload_rejections_total",
			Help:      "Rejected survey uploads by error code.",
		}, []string{"code"}),
		Reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "dss",
			Name:      "reports_total",
			Help:      "Report renders by outcome.",
		}, []string{"outcome"}),
		ParseDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "dss",
			Name:      "upload_parse_seconds",
			Help:      "Time spent parsing an uploaded spreadsheet.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}),
		ActiveSessions: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "dss",
			Name:      "active_sessions",
			Help:      "Sessions currently holding an uploaded table.",
		}),
	}

	reg.MustRegister(
		m.Uploads,
		m.UploadRejections,
		m.Reports,
		m.ParseDuration,
		m.ActiveSessions,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry returns the registry for scraping or inspection
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
