package handler

import "sovereign/internal/market/models"

type marketResponse struct {
	Address          string `json:"address"`
	ID               uint64 `json:"id"`
	DAO              string `json:"dao"`
	CreatorIdentity  string `json:"creator_identity"`
	CreatorWallet    string `json:"creator_wallet"`
	MarketCreator    string `json:"market_creator"`
	YesPool          uint64 `json:"yes_pool"`
	NoPool           uint64 `json:"no_pool"`
	YesPriceBps      uint16 `json:"yes_price_bps"`
	PredictorCount   uint32 `json:"predictor_count"`
	InitialLiquidity uint64 `json:"initial_liquidity"`
	FeeBps           uint16 `json:"fee_bps"`
	AccumulatedFees  uint64 `json:"accumulated_fees"`
	CreatedAt        int64  `json:"created_at"`
	ExpiresAt        int64  `json:"expires_at"`
	Status           string `json:"status"`
	Outcome          string `json:"outcome"`
	ResolvedBy       string `json:"resolved_by,omitempty"`
	ResolvedAt       *int64 `json:"resolved_at,omitempty"`
	BurnBps          uint16 `json:"burn_bps"`
	AmountBurned     uint64 `json:"amount_burned,omitempty"`
}

func newMarketResponse(m *models.Market) marketResponse {
	resp := marketResponse{
		Address:          m.Address.String(),
		ID:               m.ID,
		DAO:              m.DAO.String(),
		CreatorIdentity:  m.CreatorIdentity.String(),
		CreatorWallet:    m.CreatorWallet.String(),
		MarketCreator:    m.MarketCreator.String(),
		YesPool:          m.YesPool,
		NoPool:           m.NoPool,
		YesPriceBps:      m.YesPriceBps(),
		PredictorCount:   m.PredictorCount,
		InitialLiquidity: m.InitialLiquidity,
		FeeBps:           m.FeeBps,
		AccumulatedFees:  m.AccumulatedFees,
		CreatedAt:        m.CreatedAt,
		ExpiresAt:        m.ExpiresAt,
		Status:           m.Status.String(),
		Outcome:          m.Outcome.String(),
		BurnBps:          m.BurnBps,
		AmountBurned:     m.AmountBurned,
	}
	if m.HasResolvedBy {
		resp.ResolvedBy = m.ResolvedByNomination.String()
	}
	if m.HasResolvedAt {
		resolvedAt := m.ResolvedAt
		resp.ResolvedAt = &resolvedAt
	}
	return resp
}

type positionResponse struct {
	Address           string `json:"address"`
	Market            string `json:"market"`
	Predictor         string `json:"predictor"`
	PredictorIdentity string `json:"predictor_identity"`
	YesTokens         uint64 `json:"yes_tokens"`
	NoTokens          uint64 `json:"no_tokens"`
	TotalStaked       uint64 `json:"total_staked"`
	OpenedAt          int64  `json:"opened_at"`
	LastModified      int64  `json:"last_modified"`
	Claimed           bool   `json:"claimed"`
	Payout            uint64 `json:"payout,omitempty"`
}

func newPositionResponse(p *models.Position) positionResponse {
	return positionResponse{
		Address:           p.Address.String(),
		Market:            p.Market.String(),
		Predictor:         p.Predictor.String(),
		PredictorIdentity: p.PredictorIdentity.String(),
		YesTokens:         p.YesTokens,
		NoTokens:          p.NoTokens,
		TotalStaked:       p.TotalStaked,
		OpenedAt:          p.OpenedAt,
		LastModified:      p.LastModified,
		Claimed:           p.Claimed,
		Payout:            p.Payout,
	}
}

type factoryResponse struct {
	Address             string `json:"address"`
	MarketCount         uint64 `json:"market_count"`
	DefaultFeeBps       uint16 `json:"default_fee_bps"`
	DefaultBurnBps      uint16 `json:"default_burn_bps"`
	MinInitialLiquidity uint64 `json:"min_initial_liquidity"`
	DefaultExpiryPeriod int64  `json:"default_expiry_period"`
	CreatorBonusBps     uint16 `json:"creator_bonus_bps"`
	TotalMarkets        uint64 `json:"total_markets"`
	TotalVolume         uint64 `json:"total_volume"`
	TotalBurned         uint64 `json:"total_burned"`
}

func newFactoryResponse(f *models.Factory) factoryResponse {
	return factoryResponse{
		Address:             f.Address.String(),
		MarketCount:         f.MarketCount,
		DefaultFeeBps:       f.DefaultFeeBps,
		DefaultBurnBps:      f.DefaultBurnBps,
		MinInitialLiquidity: f.MinInitialLiquidity,
		DefaultExpiryPeriod: f.DefaultExpiryPeriod,
		CreatorBonusBps:     f.CreatorBonusBps,
		TotalMarkets:        f.TotalMarkets,
		TotalVolume:         f.TotalVolume,
		TotalBurned:         f.TotalBurned,
	}
}
