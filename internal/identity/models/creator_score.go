package models

import (
	"sovereign/internal/score"
	"sovereign/pkg/domain"
)

// CreatorScoreDetails accumulates a creator's governance and prediction
// history. It feeds the creator dimension of the owning identity.
type CreatorScoreDetails struct {
	Address  domain.Address
	Identity domain.Address

	DAOsAccepted        uint16
	DAOReputationPoints uint32

	SuccessfulNominations  uint16
	FailedNominations      uint16
	NominationAccuracyBps  uint16
	PredictionPnlBps       int32
	PredictionsCorrect     uint32
	PredictionsIncorrect   uint32
	PredictionAccuracyBps  uint16
	PeerUpvotes            uint64
	ContentCount           uint32
	TotalBurned            uint64
	FirstDAOAcceptance     int64
	HasFirstDAOAcceptance  bool
	LastUpdated            int64
}

// NewCreatorScoreDetails returns a zeroed detail record for the identity.
func NewCreatorScoreDetails(identity domain.Address, now int64) *CreatorScoreDetails {
	return &CreatorScoreDetails{
		Address:     domain.CreatorScoreAddress(identity),
		Identity:    identity,
		LastUpdated: now,
	}
}

// RecordAcceptance registers one DAO acceptance plus the prestige bonus for
// the admitting DAO's size, stamping the first acceptance time once.
func (c *CreatorScoreDetails) RecordAcceptance(memberCount uint16, now int64) {
	c.DAOsAccepted++
	c.DAOReputationPoints += uint32(score.PrestigeBonus(memberCount))
	if !c.HasFirstDAOAcceptance {
		c.FirstDAOAcceptance = now
		c.HasFirstDAOAcceptance = true
	}
	c.LastUpdated = now
}

// RecordNominationOutcome updates the nomination tally and the derived
// accuracy figure.
func (c *CreatorScoreDetails) RecordNominationOutcome(accepted bool, now int64) {
	if accepted {
		c.SuccessfulNominations++
	} else {
		c.FailedNominations++
	}
	c.NominationAccuracyBps = score.AccuracyBps(
		uint32(c.SuccessfulNominations),
		uint32(c.FailedNominations),
	)
	c.LastUpdated = now
}

// RecordPrediction folds one settled prediction into the running tallies.
// pnlBps saturates instead of wrapping so a single outsized win cannot flip
// the sign of the lifetime figure.
func (c *CreatorScoreDetails) RecordPrediction(correct bool, pnlBps int32, now int64) {
	if correct {
		c.PredictionsCorrect++
	} else {
		c.PredictionsIncorrect++
	}
	c.PredictionAccuracyBps = score.AccuracyBps(
		c.PredictionsCorrect,
		c.PredictionsIncorrect,
	)
	c.PredictionPnlBps = saturatingAddI32(c.PredictionPnlBps, pnlBps)
	c.LastUpdated = now
}

// RecordBurn adds a settlement burn attributed to this creator's market.
func (c *CreatorScoreDetails) RecordBurn(amount uint64, now int64) {
	c.TotalBurned += amount
	c.LastUpdated = now
}

// CreatorScore computes the creator dimension score from the current tallies.
func (c *CreatorScoreDetails) CreatorScore() uint16 {
	return score.Creator(score.CreatorInputs{
		DAOsAccepted:          c.DAOsAccepted,
		NominationAccuracyBps: c.NominationAccuracyBps,
		PredictionAccuracyBps: c.PredictionAccuracyBps,
		PeerUpvotes:           c.PeerUpvotes,
	})
}

func (c *CreatorScoreDetails) Clone() *CreatorScoreDetails {
	cp := *c
	return &cp
}

func saturatingAddI32(a, b int32) int32 {
	s := int64(a) + int64(b)
	switch {
	case s > int64(1<<31-1):
		return 1<<31 - 1
	case s < -(1 << 31):
		return -(1 << 31)
	default:
		return int32(s)
	}
}
