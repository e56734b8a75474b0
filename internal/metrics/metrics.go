package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	RequestsTotal    *prometheus.CounterVec
	PipelineDuration prometheus.Histogram
	FilteredRows     prometheus.Histogram
	EmptyResults     prometheus.Counter
}

// New creates and registers all Prometheus metrics
func New() *Metrics {
	return &Metrics{
		RequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "lifelens_requests_total",
			Help: "Total number of dashboard API requests by route and status",
		}, []string{"route", "status"}),
		PipelineDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lifelens_pipeline_duration_seconds",
			Help:    "Duration of one filter-and-aggregate pipeline run",
			Buckets: prometheus.DefBuckets,
		}),
		FilteredRows: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "lifelens_filtered_rows",
			Help:    "Size of the filtered subset per pipeline run",
			Buckets: prometheus.ExponentialBuckets(1, 4, 8),
		}),
		EmptyResults: promauto.NewCounter(prometheus.CounterOpts{
			Name: "lifelens_empty_results_total",
			Help: "Total number of pipeline runs where the filters matched no records",
		}),
	}
}
