// Package metrics exposes Prometheus collectors for the admission market.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	MarketsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sovereign_market_markets_created_total",
		Help: "Total admission markets created.",
	})

	PositionsTaken = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sovereign_market_positions_taken_total",
		Help: "Positions taken, by side.",
	}, []string{"side"})

	Volume = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sovereign_market_volume_total",
		Help: "Total stake traded across all markets.",
	})

	Settlements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sovereign_market_settlements_total",
		Help: "Markets settled, by outcome.",
	}, []string{"outcome"})

	Burned = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sovereign_market_burned_total",
		Help: "Total amount burned at settlement.",
	})

	Claims = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sovereign_market_claims_total",
		Help: "Winnings claims processed, by result (won, lost, refunded).",
	}, []string{"result"})
)
