// Package metrics exposes Prometheus collectors for the resolution
// coordinator.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Runs = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sovereign_resolution_runs_total",
		Help: "Completed resolution runs, by outcome and whether a market settled.",
	}, []string{"outcome", "market"})

	PreconditionFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sovereign_resolution_precondition_failures_total",
		Help: "Resolution attempts rejected before any write.",
	})
)
