package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// analytics pipeline.
type Metrics struct {
	EnvelopesConsumed *prometheus.CounterVec // labels: kind={historical,forecast}
	ResultsProduced   *prometheus.CounterVec // labels: kind={prediction,alerts}
	EnvelopeErrors    prometheus.Counter
	PipelineRunning   prometheus.Gauge

	// Model lifecycle metrics.
	TrainRuns           *prometheus.CounterVec // labels: outcome={trained,insufficient_data,error}
	PredictionsProduced prometheus.Counter
	InsufficientData    *prometheus.CounterVec // labels: op={train,predict}
	TrainDuration       prometheus.Histogram
	PredictDuration     prometheus.Histogram

	// Alerting metrics.
	AlertsFired *prometheus.CounterVec // labels: type={extreme_heat,freezing,high_winds,storm}

	// Batch processing metrics.
	BatchSize               prometheus.Histogram
	BatchProcessingDuration prometheus.Histogram
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.EnvelopesConsumed,
		m.ResultsProduced,
		m.EnvelopeErrors,
		m.PipelineRunning,
		m.TrainRuns,
		m.PredictionsProduced,
		m.InsufficientData,
		m.TrainDuration,
		m.PredictDuration,
		m.AlertsFired,
		m.BatchSize,
		m.BatchProcessingDuration,
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
		EnvelopesConsumed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forecast_analytics",
			Name:      "envelopes_consumed_total",
			Help:      "Request envelopes read from the source topic, by kind.",
		}, []string{"kind"}),
		ResultsProduced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forecast_analytics",
			Name:      "results_produced_total",
			Help:      "Result messages written to the sink topic, by kind.",
		}, []string{"kind"}),
		EnvelopeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "forecast_analytics",
			Name:      "envelope_errors_total",
			Help:      "Envelopes skipped because parsing or analysis failed.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "forecast_analytics",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		TrainRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forecast_analytics",
			Name:      "train_runs_total",
			Help:      "Model training attempts, by outcome.",
		}, []string{"outcome"}),
		PredictionsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "forecast_analytics",
			Name:      "predictions_produced_total",
			Help:      "Individual prediction points produced.",
		}),
		InsufficientData: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forecast_analytics",
			Name:      "insufficient_data_total",
			Help:      "Operations short-circuited by the minimum-observation rule.",
		}, []string{"op"}),
		TrainDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "forecast_analytics",
			Name:      "train_duration_seconds",
			Help:      "Duration of a full scaler+forest fit including persistence.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		PredictDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "forecast_analytics",
			Name:      "predict_duration_seconds",
			Help:      "Duration of a horizon prediction.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		AlertsFired: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "forecast_analytics",
			Name:      "alerts_fired_total",
			Help:      "Hazard alerts emitted, by alert type.",
		}, []string{"type"}),
		BatchSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "forecast_analytics",
			Name:      "batch_size",
			Help:      "Number of envelopes per batch extracted from Kafka.",
			Buckets:   []float64{1, 5, 10, 20, 30, 40, 50, 75, 100},
		}),
		BatchProcessingDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "forecast_analytics",
			Name:      "batch_processing_duration_seconds",
			Help:      "Duration of a complete batch extract-analyze-load cycle.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10},
		}),
	}
}
