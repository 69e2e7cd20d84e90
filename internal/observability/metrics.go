package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the service.
type Metrics struct {
	// Ingestion metrics.
	IngestRuns     *prometheus.CounterVec // labels: mode={merge,replace}, outcome={success,feed_error,parse_error,storage_error}
	RowsProcessed  *prometheus.CounterVec // labels: outcome={added,updated,skipped}
	IngestDuration prometheus.Histogram

	// Weather collaborator metrics.
	WeatherRequests *prometheus.CounterVec // labels: outcome={success,error}
}

// NewMetrics creates and registers all metrics with the default Prometheus
// registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.IngestRuns,
		m.RowsProcessed,
		m.IngestDuration,
		m.WeatherRequests,
	)
	return m
}

// NewMetricsForTesting creates metrics without registering them, so tests
// avoid "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		IngestRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "legislators",
			Name:      "ingest_runs_total",
			Help:      "Ingestion runs by mode and outcome.",
		}, []string{"mode", "outcome"}),
		RowsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "legislators",
			Name:      "ingest_rows_total",
			Help:      "Feed rows processed by outcome.",
		}, []string{"outcome"}),
		IngestDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "legislators",
			Name:      "ingest_duration_seconds",
			Help:      "Duration of a complete fetch-parse-apply run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60},
		}),
		WeatherRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "legislators",
			Name:      "weather_requests_total",
			Help:      "Weather collaborator requests by outcome.",
		}, []string{"outcome"}),
	}
}
