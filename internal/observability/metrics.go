package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for a pipeline run.
// A batch run is short-lived, but exposing the counters over the optional
// diagnostics listener makes long multi-file runs observable and gives tests
// exact row accounting.
type Metrics struct {
	FilesMerged  prometheus.Counter
	FilesSkipped prometheus.Counter
	RowsMerged   prometheus.Counter
	RowsDropped  prometheus.Counter

	ObservationsRetained prometheus.Counter
	ObservationsExcluded prometheus.Counter

	SingletonsOverall prometheus.Gauge
	SingletonsYearly  prometheus.Gauge
	ReferenceEntries  prometheus.Gauge

	RunDuration prometheus.Histogram
}

func newMetrics() *Metrics {
	return &Metrics{
		FilesMerged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rarebird",
			Name:      "files_merged_total",
			Help:      "Input files successfully merged.",
		}),
		FilesSkipped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rarebird",
			Name:      "files_skipped_total",
			Help:      "Input files skipped (missing or unresolvable columns).",
		}),
		RowsMerged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rarebird",
			Name:      "rows_merged_total",
			Help:      "Data rows surviving the merge stage.",
		}),
		RowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rarebird",
			Name:      "rows_dropped_total",
			Help:      "Malformed data rows dropped during merging.",
		}),
		ObservationsRetained: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rarebird",
			Name:      "observations_retained_total",
			Help:      "Merged rows retained by the US filter.",
		}),
		ObservationsExcluded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "rarebird",
			Name:      "observations_excluded_total",
			Help:      "Merged rows rejected by the US filter.",
		}),
		SingletonsOverall: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rarebird",
			Name:      "singletons_overall",
			Help:      "Species observed exactly once overall.",
		}),
		SingletonsYearly: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rarebird",
			Name:      "singletons_yearly",
			Help:      "Species-year pairs observed exactly once.",
		}),
		ReferenceEntries: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "rarebird",
			Name:      "reference_entries",
			Help:      "Entries loaded from the taxonomy reference table.",
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "rarebird",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete pipeline run.",
			Buckets:   []float64{0.1, 0.5, 1, 2.5, 5, 10, 30, 60, 120},
		}),
	}
}

// NewMetrics creates the run metrics and registers them with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.FilesMerged,
		m.FilesSkipped,
		m.RowsMerged,
		m.RowsDropped,
		m.ObservationsRetained,
		m.ObservationsExcluded,
		m.SingletonsOverall,
		m.SingletonsYearly,
		m.ReferenceEntries,
		m.RunDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics without registering them, avoiding
// "already registered" panics across tests.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
