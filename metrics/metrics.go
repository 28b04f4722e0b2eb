package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome-Labels für CheckTotal
const (
	OutcomeBoycott = "boycott"
	OutcomeClean   = "clean"
	OutcomeInvalid = "invalid"
	OutcomeError   = "error"
)

var (
	// CheckTotal zählt Produktprüfungen nach Ergebnis
	CheckTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boycott_checks_total",
			Help: "Total product checks by outcome",
		},
		[]string{"outcome"},
	)

	CheckDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "boycott_check_duration_seconds",
			Help:    "Duration of the catalog lookup",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 8),
		},
	)

	// RateLimited zählt abgewiesene Anfragen je Limiter
	RateLimited = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "boycott_rate_limited_total",
			Help: "Requests rejected by a rate limiter",
		},
		[]string{"scope"},
	)

	CatalogEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "boycott_catalog_entries",
			Help: "Number of entries in the loaded boycott catalog",
		},
	)

	LimiterKeysPruned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "boycott_limiter_keys_pruned_total",
			Help: "Idle rate limiter keys removed by the prune job",
		},
	)
)

// RecordCheck erfasst Dauer und Ergebnis einer Prüfung.
func RecordCheck(outcome string, duration time.Duration) {
	CheckDuration.Observe(duration.Seconds())
	CheckTotal.WithLabelValues(outcome).Inc()
}
