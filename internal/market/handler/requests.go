package handler

import (
	"sovereign/internal/market"
	"sovereign/internal/market/models"
	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
)

type createMarketRequest struct {
	DAO              string `json:"dao"`
	CreatorWallet    string `json:"creator_wallet"`
	InitialLiquidity uint64 `json:"initial_liquidity"`
	ExpiryDays       uint16 `json:"expiry_days,omitempty"`

	params market.CreateMarketParams
}

func (r *createMarketRequest) Validate() error {
	dao, err := domain.ParseAddress(r.DAO)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "dao")
	}
	creator, err := domain.ParseAddress(r.CreatorWallet)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeValidation, "creator_wallet")
	}
	r.params = market.CreateMarketParams{
		DAO:              dao,
		CreatorWallet:    creator,
		InitialLiquidity: r.InitialLiquidity,
		ExpiryDays:       r.ExpiryDays,
	}
	return nil
}

type takePositionRequest struct {
	Side   string `json:"side"`
	Amount uint64 `json:"amount"`
	// MinTokens is the slippage floor quoted by the client.
	MinTokens uint64 `json:"min_tokens,omitempty"`

	side models.Side
}

func (r *takePositionRequest) Validate() error {
	side, err := models.ParseSide(r.Side)
	if err != nil {
		return err
	}
	r.side = side
	return nil
}
