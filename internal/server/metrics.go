package server

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics collects Prometheus metrics for HTTP traffic and projection runs.
// It satisfies projection.Recorder.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	runsTotal      prometheus.Counter
	pathsTotal     prometheus.Counter
	runDuration    prometheus.Histogram
	runYears       prometheus.Histogram
	rejectedTotal  *prometheus.CounterVec
	metricsLookups *prometheus.CounterVec
}

// NewMetrics registers every collector on a fresh registry, so several
// instances can coexist in one process.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		httpRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "horizon_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		httpRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "horizon_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		runsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "horizon_projection_runs_total",
			Help: "Completed projection runs.",
		}),
		pathsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "horizon_projection_paths_total",
			Help: "Simulated paths across all completed runs.",
		}),
		runDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "horizon_projection_run_duration_seconds",
			Help:    "Wall time of completed projection runs.",
			Buckets: prometheus.ExponentialBuckets(0.005, 2, 14),
		}),
		runYears: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "horizon_projection_run_years",
			Help:    "Horizon in years of completed projection runs.",
			Buckets: []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		rejectedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "horizon_projection_rejected_total",
			Help: "Rejected requests by offending field.",
		}, []string{"field"}),
		metricsLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "horizon_portfolio_metrics_lookups_total",
			Help: "Portfolio metrics lookups by cache result.",
		}, []string{"result"}),
	}
}

// Registry returns the registry backing /metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTP(method, route, status string, elapsed time.Duration) {
	m.httpRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveRun(paths, years int, elapsed time.Duration) {
	m.runsTotal.Inc()
	m.pathsTotal.Add(float64(paths))
	m.runDuration.Observe(elapsed.Seconds())
	m.runYears.Observe(float64(years))
}

func (m *Metrics) ObserveRejected(field string) {
	m.rejectedTotal.WithLabelValues(field).Inc()
}

func (m *Metrics) ObserveMetricsLookup(cached bool) {
	result := "miss"
	if cached {
		result = "hit"
	}
	m.metricsLookups.WithLabelValues(result).Inc()
}
