package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	ValidationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "conjcheck_validation_seconds",
		Help:    "Time spent validating the whole corpus.",
		Buckets: prometheus.DefBuckets,
	})

	RecordLoadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "conjcheck_record_load_seconds",
		Help:    "Time spent loading and decoding a single verb record.",
		Buckets: prometheus.DefBuckets,
	}, []string{"language"})

	RecordsValidatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conjcheck_records_validated_total",
		Help: "Total number of verb records evaluated across all runs.",
	})

	ViolationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "conjcheck_violations_total",
		Help: "Total number of rule violations, by rule category.",
	}, []string{"rule"})

	LanguagesGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "conjcheck_languages",
		Help: "Number of language groups found in the last scan.",
	})

	RecordsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "conjcheck_records",
		Help: "Number of verb records found in the last scan.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conjcheck_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	RevalidationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conjcheck_revalidations_total",
		Help: "Total number of watch-mode revalidation runs.",
	})

	RevalidationsThrottledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "conjcheck_revalidations_throttled_total",
		Help: "Total number of revalidation runs delayed by the rate limiter.",
	})
)
