package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ParseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "logshift_parse_seconds",
		Help:    "Time spent parsing a source file and building its scopes.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	ScanDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "logshift_scan_seconds",
		Help:    "Time spent on a full lint run.",
		Buckets: prometheus.DefBuckets,
	})

	DiagnosticsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "logshift_diagnostics_total",
		Help: "Total number of console-call diagnostics reported, by method.",
	}, []string{"method"})

	FixesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logshift_fixes_total",
		Help: "Total number of files rewritten in write mode.",
	})

	FilesScanned = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "logshift_files_scanned",
		Help: "Number of files processed by the most recent run.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "logshift_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})
)
