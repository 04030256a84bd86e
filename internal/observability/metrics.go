package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// report enrichment pipeline.
type Metrics struct {
	MessagesConsumed prometheus.Counter
	MessagesProduced prometheus.Counter
	TransformErrors  prometheus.Counter
	PipelineRunning  prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Grid-code enrichment metrics.
	GridEncodes *prometheus.CounterVec // labels: outcome={ok,out_of_domain}

	// Rainfall forecast metrics.
	ForecastRequests    *prometheus.CounterVec // labels: outcome={success,error}
	ForecastCache       *prometheus.CounterVec // labels: result={hit,miss}
	ForecastAPIDuration prometheus.Histogram
	ForecastEnabled     prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.MessagesConsumed,
		m.MessagesProduced,
		m.TransformErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.GridEncodes,
		m.ForecastRequests,
		m.ForecastCache,
		m.ForecastAPIDuration,
		m.ForecastEnabled,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}

func newMetrics() *Metrics {
	return &Metrics{
		MessagesConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "report_etl",
			Name:      "messages_consumed_total",
			Help:      "Total messages read from the source topic.",
		}),
		MessagesProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "report_etl",
			Name:      "messages_produced_total",
			Help:      "Total messages written to the sink topic.",
		}),
		TransformErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "report_etl",
			Name:      "transform_errors_total",
			Help:      "Total transformation failures, including out-of-domain coordinates.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "report_etl",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "report_etl",
			Name:      "batch_size",
			Help:      "Number of messages per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "report_etl",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-transform-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		GridEncodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "report_etl",
			Name:      "grid_encodes_total",
			Help:      "Grid-code encodes by outcome.",
		}, []string{"outcome"}),
		ForecastRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "report_etl",
			Name:      "forecast_requests_total",
			Help:      "Rainfall forecast API requests by outcome.",
		}, []string{"outcome"}),
		ForecastCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "report_etl",
			Name:      "forecast_cache_total",
			Help:      "Rainfall forecast cache lookups by result.",
		}, []string{"result"}),
		ForecastAPIDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "report_etl",
			Name:      "forecast_api_duration_seconds",
			Help:      "Open-Meteo API request duration in seconds.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),
		ForecastEnabled: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "report_etl",
			Name:      "forecast_enabled",
			Help:      "1 when rainfall enrichment is enabled, 0 otherwise.",
		}),
	}
}
