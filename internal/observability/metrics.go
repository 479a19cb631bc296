package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// static-correction pipeline.
type Metrics struct {
	JobsConsumed    prometheus.Counter
	ResultsProduced prometheus.Counter
	ComputeErrors   prometheus.Counter
	PipelineRunning prometheus.Gauge

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram

	// Per-job shape metrics.
	StationsPerJob prometheus.Histogram
	LayersPerModel prometheus.Histogram

	// HTTP compute endpoint metrics.
	HTTPComputeRequests *prometheus.CounterVec // labels: outcome={success,invalid,error}
	ResultCache         *prometheus.CounterVec // labels: result={hit,miss}
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		JobsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "statics",
			Name:      "jobs_consumed_total",
			Help:      "Total correction jobs read from the source topic.",
		}),
		ResultsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "statics",
			Name:      "results_produced_total",
			Help:      "Total correction results written to the sink topic.",
		}),
		ComputeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "statics",
			Name:      "compute_errors_total",
			Help:      "Total jobs rejected during parsing or computation.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "statics",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "statics",
			Name:      "batch_size",
			Help:      "Number of jobs per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "statics",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-compute-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
		StationsPerJob: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "statics",
			Name:      "stations_per_job",
			Help:      "Observation-system size of processed jobs.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500},
		}),
		LayersPerModel: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "statics",
			Name:      "layers_per_model",
			Help:      "Layer count of velocity models in processed jobs.",
			Buckets:   []float64{1, 2, 5, 10, 25, 50, 100},
		}),
		HTTPComputeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "statics",
			Name:      "http_compute_requests_total",
			Help:      "Synchronous compute requests by outcome.",
		}, []string{"outcome"}),
		ResultCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "statics",
			Name:      "result_cache_total",
			Help:      "Result cache lookups by result.",
		}, []string{"result"}),
	}

	prometheus.MustRegister(
		m.JobsConsumed,
		m.ResultsProduced,
		m.ComputeErrors,
		m.PipelineRunning,
		m.BatchSize,
		m.BatchProcessingDuration,
		m.StationsPerJob,
		m.LayersPerModel,
		m.HTTPComputeRequests,
		m.ResultCache,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		JobsConsumed:            prometheus.NewCounter(prometheus.CounterOpts{Namespace: "statics", Name: "jobs_consumed_total"}),
		ResultsProduced:         prometheus.NewCounter(prometheus.CounterOpts{Namespace: "statics", Name: "results_produced_total"}),
		ComputeErrors:           prometheus.NewCounter(prometheus.CounterOpts{Namespace: "statics", Name: "compute_errors_total"}),
		PipelineRunning:         prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "statics", Name: "pipeline_running"}),
		BatchSize:               prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "statics", Name: "batch_size"}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "statics", Name: "batch_processing_duration_seconds"}),
		StationsPerJob:          prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "statics", Name: "stations_per_job"}),
		LayersPerModel:          prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "statics", Name: "layers_per_model"}),
		HTTPComputeRequests:     prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "statics", Name: "http_compute_requests_total"}, []string{"outcome"}),
		ResultCache:             prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "statics", Name: "result_cache_total"}, []string{"result"}),
	}
}
