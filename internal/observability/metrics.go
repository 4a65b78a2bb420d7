package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// assessment pipeline and the DEM adapter.
type Metrics struct {
	MessagesConsumed prometheus.Counter
	ReportsProduced  prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Assessment metrics.
	FeaturesAssessed prometheus.Counter
	FeaturesSkipped  prometheus.Counter

	// DEM access metrics.
	ElevationRequests    *prometheus.CounterVec   // labels: method={point,zone}, outcome={success,nodata,error}
	ElevationCache       *prometheus.CounterVec   // labels: result={hit,miss}
	ElevationAPIDuration *prometheus.HistogramVec // labels: method={point,zone}
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_risk",
			Name:      "messages_consumed_total",
			Help:      "Total area-analysis requests read from the source topic.",
		}),
		ReportsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_risk",
			Name:      "reports_produced_total",
			Help:      "Total risk reports written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_risk",
			Name:      "transform_errors_total",
			Help:      "Total requests that failed to parse or assess.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "flood_risk",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flood_risk",
			Name:      "batch_size",
			Help:      "Number of requests per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "flood_risk",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-assess-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		FeaturesAssessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_risk",
			Name:      "features_assessed_total",
			Help:      "Total building footprints scored across all reports.",
		}),
		FeaturesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "flood_risk",
			Name:      "features_skipped_total",
			Help:      "Total building footprints skipped (no elevation, no distance, bad geometry).",
		}),
		ElevationRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_risk",
			Name:      "elevation_requests_total",
			Help:      "DEM API requests by method and outcome.",
		}, []string{"method", "outcome"}),
		ElevationCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "flood_risk",
			Name:      "elevation_cache_total",
			Help:      "Point-elevation cache lookups by result.",
		}, []string{"result"}),
		ElevationAPIDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "flood_risk",
			Name:      "elevation_api_duration_seconds",
			Help:      "DEM API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"method"}),
	}

	prometheus.MustRegister(
		m.MessagesConsumed,
		m.ReportsProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.FeaturesAssessed,
		m.FeaturesSkipped,
		m.ElevationRequests,
		m.ElevationCache,
		m.ElevationAPIDuration,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them, so parallel
// tests don't trip "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		MessagesConsumed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_risk", Name: "messages_consumed_total"}),
		ReportsProduced:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_risk", Name: "reports_produced_total"}),
		TransformErrors:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_risk", Name: "transform_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "flood_risk", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "flood_risk", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "flood_risk", Name: "batch_processing_duration_seconds"}),
		FeaturesAssessed:        prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_risk", Name: "features_assessed_total"}),
		FeaturesSkipped:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "flood_risk", Name: "features_skipped_total"}),
		ElevationRequests:       prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flood_risk", Name: "elevation_requests_total"}, []string{"method", "outcome"}),
		ElevationCache:          prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "flood_risk", Name: "elevation_cache_total"}, []string{"result"}),
		ElevationAPIDuration:    prometheus.NewHistogramVec(prometheus.HistogramOpts{Namespace: "flood_risk", Name: "elevation_api_duration_seconds"}, []string{"method"}),
	}
}
