package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cropet"

// Metrics holds the Prometheus counters, histograms, and gauges for the crop
// parameter pipeline.
type Metrics struct {
	LoadsTotal   prometheus.Counter
	LoadErrors   prometheus.Counter
	SinkErrors   *prometheus.CounterVec // labels: sink={catalog,sqlite,kafka}
	CropsLoaded  prometheus.Gauge
	LastLoadTime prometheus.Gauge
	LoadDuration prometheus.Histogram

	PipelineRunning prometheus.Gauge
}

// NewMetrics creates and registers all pipeline metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.LoadsTotal,
		m.LoadErrors,
		m.SinkErrors,
		m.CropsLoaded,
		m.LastLoadTime,
		m.LoadDuration,
		m.PipelineRunning,
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
		LoadsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Successful crop parameter table loads.",
		}),
		LoadErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "load_errors_total",
			Help:      "Crop parameter file reads that failed to open or parse.",
		}),
		SinkErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sink_errors_total",
			Help:      "Sink writes that failed after retries, by sink.",
		}, []string{"sink"}),
		CropsLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "crops_loaded",
			Help:      "Number of crops in the table currently served.",
		}),
		LastLoadTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_load_timestamp_seconds",
			Help:      "Unix time of the last successful load.",
		}),
		LoadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "load_duration_seconds",
			Help:      "Duration of a complete extract, parse and load cycle.",
			Buckets:   []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5, 5, 10, 30},
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "pipeline_running",
			Help:      "1 when the reload loop is active, 0 when shut down.",
		}),
	}
}
