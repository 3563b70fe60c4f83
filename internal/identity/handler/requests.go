package handler

import (
	"sovereign/internal/identity/models"
	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
)

type setAuthorityRequest struct {
	Dimension string `json:"dimension"`
	Authority string `json:"authority"`

	dimension models.Dimension
	authority domain.Address
}

func (r *setAuthorityRequest) Validate() error {
	dim, err := models.ParseDimension(r.Dimension)
	if err != nil {
		return err
	}
	addr, err := domain.ParseAddress(r.Authority)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "authority")
	}
	r.dimension = dim
	r.authority = addr
	return nil
}

// updateScoreRequest carries either a direct score or, for the trading and
// civic dimensions, the raw metrics the score is derived from.
type updateScoreRequest struct {
	Score *uint16 `json:"score,omitempty"`

	TradingMetrics *tradingMetrics `json:"trading_metrics,omitempty"`
	CivicMetrics   *civicMetrics   `json:"civic_metrics,omitempty"`
}

type tradingMetrics struct {
	WinRateBps      uint16 `json:"win_rate_bps"`
	ProfitFactorBps uint16 `json:"profit_factor_bps"`
	TotalTrades     uint64 `json:"total_trades"`
	TotalVolume     uint64 `json:"total_volume"`
	MaxDrawdownBps  uint16 `json:"max_drawdown_bps"`
}

type civicMetrics struct {
	ProblemsSolved        uint64 `json:"problems_solved"`
	PredictionAccuracyBps uint16 `json:"prediction_accuracy_bps"`
	DirectionsProposed    uint64 `json:"directions_proposed"`
	DirectionsWon         uint64 `json:"directions_won"`
	CurrentStreak         uint16 `json:"current_streak"`
	CommunityTrust        uint16 `json:"community_trust"`
}

func (r *updateScoreRequest) Validate() error {
	set := 0
	if r.Score != nil {
		set++
	}
	if r.TradingMetrics != nil {
		set++
	}
	if r.CivicMetrics != nil {
		set++
	}
	if set != 1 {
		return dErrors.New(dErrors.CodeValidation, "provide exactly one of score, trading_metrics, civic_metrics")
	}
	return nil
}
