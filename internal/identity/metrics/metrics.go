// Package metrics exposes Prometheus collectors for the identity registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IdentitiesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sovereign_identity_created_total",
		Help: "Total number of identities created.",
	})

	ScoreUpdates = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sovereign_identity_score_updates_total",
		Help: "Dimension score updates, by dimension.",
	}, []string{"dimension"})

	AuthorityChanges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sovereign_identity_authority_changes_total",
		Help: "Total number of dimension authority reassignments.",
	})

	CompositeScores = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sovereign_identity_composite_score",
		Help:    "Composite scores observed after recomputation.",
		Buckets: prometheus.LinearBuckets(0, 1000, 11),
	})
)
