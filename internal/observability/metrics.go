package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the map service.
type Metrics struct {
	// Fetch metrics.
	FetchRequests *prometheus.CounterVec   // labels: source={feed,sheets,shapes}, outcome={success,error}
	FetchDuration *prometheus.HistogramVec // labels: source

	// Dataset metrics.
	LinesDropped    *prometheus.CounterVec // labels: reason={blank,malformed,no_number}
	DatasetRecords  prometheus.Gauge
	DatasetLoaded   prometheus.Gauge
	BalanceMin      prometheus.Gauge
	BalanceMax      prometheus.Gauge
	ShapesUnmatched prometheus.Gauge

	// Presentation metrics.
	ColorCache *prometheus.CounterVec // labels: result={hit,miss}

	// Snapshot publishing metrics.
	SnapshotMessages prometheus.Counter
	SnapshotErrors   prometheus.Counter
}

// NewMetrics creates and registers all service metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics(true)

	prometheus.MustRegister(
		m.FetchRequests,
		m.FetchDuration,
		m.LinesDropped,
		m.DatasetRecords,
		m.DatasetLoaded,
		m.BalanceMin,
		m.BalanceMax,
		m.ShapesUnmatched,
		m.ColorCache,
		m.SnapshotMessages,
		m.SnapshotErrors,
	)

	return m
}

// NewMetricsForTesting creates Metrics without registering them to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics(false)
}

func newMetrics(withHelp bool) *Metrics {
	help := func(s string) string {
		if withHelp {
			return s
		}
		return ""
	}

	return &Metrics{
		FetchRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parcel_map",
			Name:      "fetch_requests_total",
			Help:      help("Upstream fetches by source and outcome."),
		}, []string{"source", "outcome"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "parcel_map",
			Name:      "fetch_duration_seconds",
			Help:      help("Duration of upstream fetches in seconds."),
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		LinesDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parcel_map",
			Name:      "lines_dropped_total",
			Help:      help("Spreadsheet lines skipped during ingestion, by reason."),
		}, []string{"reason"}),
		DatasetRecords: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "parcel_map",
			Name:      "dataset_records",
			Help:      help("Parcels in the currently published dataset."),
		}),
		DatasetLoaded: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "parcel_map",
			Name:      "dataset_loaded",
			Help:      help("1 when a dataset is published, 0 otherwise."),
		}),
		BalanceMin: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "parcel_map",
			Name:      "balance_min_rubles",
			Help:      help("Smallest balance in the published dataset."),
		}),
		BalanceMax: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "parcel_map",
			Name:      "balance_max_rubles",
			Help:      help("Largest balance in the published dataset."),
		}),
		ShapesUnmatched: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "parcel_map",
			Name:      "shapes_unmatched",
			Help:      help("Map shapes whose id has no spreadsheet record."),
		}),
		ColorCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "parcel_map",
			Name:      "color_cache_total",
			Help:      help("Color scale cache lookups by result."),
		}, []string{"result"}),
		SnapshotMessages: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parcel_map",
			Name:      "snapshot_messages_total",
			Help:      help("Parcel snapshot messages published."),
		}),
		SnapshotErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "parcel_map",
			Name:      "snapshot_errors_total",
			Help:      help("Failed snapshot publish attempts."),
		}),
	}
}
