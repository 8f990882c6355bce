package chooser

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics exposes Prometheus metrics of directory listings.
// A nil *Metrics records nothing.
type Metrics struct {
	fetchesTotal  *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	fetchInFlight prometheus.Gauge
	cachedDirs    prometheus.Gauge
}

// NewMetrics registers the metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		fetchesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "filechooser_directory_fetches_total",
				Help: "Total number of directory listings by result",
			},
			[]string{"result"},
		),
		fetchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "filechooser_directory_fetch_duration_seconds",
				Help:    "Directory listing duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		fetchInFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "filechooser_directory_fetches_in_flight",
				Help: "Number of directory listings not yet completed",
			},
		),
		cachedDirs: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "filechooser_cached_directories",
				Help: "Number of directories known to the cache",
			},
		),
	}
}

func (m *Metrics) fetchStarted(cached int) {
	if m == nil {
		return
	}
	m.fetchInFlight.Inc()
	m.cachedDirs.Set(float64(cached))
}

func (m *Metrics) fetchDone(start time.Time, err error) {
	if m == nil {
		return
	}
	m.fetchInFlight.Dec()
	m.fetchDuration.Observe(time.Since(start).Seconds())
	result := "ok"
	if err != nil {
		result = "failed"
	}
	m.fetchesTotal.WithLabelValues(result).Inc()
}
