// Package metrics exposes Prometheus collectors for the governance engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DAOsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sovereign_governance_daos_created_total",
		Help: "Total number of DAOs created.",
	})

	MembersAdded = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sovereign_governance_members_added_total",
		Help: "Members added, by path (founder or admission).",
	}, []string{"path"})

	Nominations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sovereign_governance_nominations_total",
		Help: "Total nominations opened.",
	})

	VotesCast = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sovereign_governance_votes_cast_total",
		Help: "Ballots cast, by choice.",
	}, []string{"choice"})

	Resolutions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sovereign_governance_resolutions_total",
		Help: "Nominations resolved, by outcome.",
	}, []string{"outcome"})
)
