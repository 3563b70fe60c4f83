package models

import (
	"sovereign/internal/score"
	"sovereign/pkg/domain"
)

// TradingScoreDetails is the detail record behind the trading dimension.
// The trading authority reports raw metrics here and the resulting score is
// derived rather than asserted.
type TradingScoreDetails struct {
	Address  domain.Address
	Identity domain.Address

	WinRateBps      uint16
	ProfitFactorBps uint16
	TotalTrades     uint64
	TotalVolume     uint64
	MaxDrawdownBps  uint16
	LastUpdated     int64
}

func NewTradingScoreDetails(identity domain.Address, now int64) *TradingScoreDetails {
	return &TradingScoreDetails{
		Address:     domain.TradingScoreAddress(identity),
		Identity:    identity,
		LastUpdated: now,
	}
}

// Score derives the trading dimension score from the raw metrics.
func (t *TradingScoreDetails) Score() uint16 {
	return score.Trading(score.TradingInputs{
		WinRateBps:      t.WinRateBps,
		ProfitFactorBps: t.ProfitFactorBps,
		TotalTrades:     t.TotalTrades,
		TotalVolume:     t.TotalVolume,
		MaxDrawdownBps:  t.MaxDrawdownBps,
	})
}

func (t *TradingScoreDetails) Clone() *TradingScoreDetails {
	cp := *t
	return &cp
}

// CivicScoreDetails is the detail record behind the civic dimension.
type CivicScoreDetails struct {
	Address  domain.Address
	Identity domain.Address

	ProblemsSolved        uint64
	PredictionAccuracyBps uint16
	DirectionsProposed    uint64
	DirectionsWon         uint64
	CurrentStreak         uint16
	CommunityTrust        uint16
	LastUpdated           int64
}

func NewCivicScoreDetails(identity domain.Address, now int64) *CivicScoreDetails {
	return &CivicScoreDetails{
		Address:     domain.CivicScoreAddress(identity),
		Identity:    identity,
		LastUpdated: now,
	}
}

// Score derives the civic dimension score from the raw metrics.
func (c *CivicScoreDetails) Score() uint16 {
	return score.Civic(score.CivicInputs{
		PredictionAccuracyBps: c.PredictionAccuracyBps,
		ProblemsSolved:        c.ProblemsSolved,
		CommunityTrust:        c.CommunityTrust,
		CurrentStreak:         c.CurrentStreak,
	})
}

func (c *CivicScoreDetails) Clone() *CivicScoreDetails {
	cp := *c
	return &cp
}
