package models

import (
	"sovereign/internal/score"
	"sovereign/pkg/domain"
)

// SurfacingScore tracks a predictor's record as a market creator: how often
// the creators they surface end up admitted, and at what profit.
type SurfacingScore struct {
	Address   domain.Address
	Predictor domain.Address

	SuccessfulSurfaces   uint32
	MarketsCreated       uint32
	SurfacingAccuracyBps uint16
	TotalProfit          int64
	ScoutScore           uint16
	LastUpdated          int64
}

// NewSurfacingScore returns a zeroed surfacing record for the predictor.
func NewSurfacingScore(predictor domain.Address, now int64) *SurfacingScore {
	return &SurfacingScore{
		Address:     domain.SurfacingScoreAddress(predictor),
		Predictor:   predictor,
		LastUpdated: now,
	}
}

// RecordSurfacedAcceptance registers a market whose subject was admitted.
// MarketsCreated is bumped alongside so a scout surfacing through an older
// record still lands on a consistent ratio.
func (s *SurfacingScore) RecordSurfacedAcceptance(profit int64, now int64) {
	s.SuccessfulSurfaces++
	if s.MarketsCreated < s.SuccessfulSurfaces {
		s.MarketsCreated = s.SuccessfulSurfaces
	}
	s.TotalProfit += profit
	s.recompute(now)
}

// RecordMarketCreated counts one new market for the scout.
func (s *SurfacingScore) RecordMarketCreated(now int64) {
	s.MarketsCreated++
	s.recompute(now)
}

func (s *SurfacingScore) recompute(now int64) {
	if s.MarketsCreated > 0 {
		s.SurfacingAccuracyBps = uint16(uint64(s.SuccessfulSurfaces) * score.MaxScore / uint64(s.MarketsCreated))
	}
	s.ScoutScore = score.Scout(score.ScoutInputs{
		SurfacingAccuracyBps: s.SurfacingAccuracyBps,
		MarketsCreated:       s.MarketsCreated,
		TotalProfit:          s.TotalProfit,
	})
	s.LastUpdated = now
}

func (s *SurfacingScore) Clone() *SurfacingScore {
	cp := *s
	return &cp
}
