// Package models defines the admission market records: constant-product
// prediction markets answering "will this DAO accept this creator", the
// per-predictor positions, and the factory configuration.
package models

import (
	"math/bits"

	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
)

// Status is the market lifecycle state.
type Status uint8

const (
	StatusOpen Status = iota
	StatusVotingInProgress
	StatusResolved
	StatusFinalized
	StatusExpired

	numStatuses
)

var statusNames = [numStatuses]string{"open", "voting_in_progress", "resolved", "finalized", "expired"}

func (s Status) String() string {
	if s < numStatuses {
		return statusNames[s]
	}
	return "unknown"
}

// Outcome is the settled result of a market.
type Outcome uint8

const (
	OutcomePending Outcome = iota
	OutcomeAccepted
	OutcomeRejected
	OutcomeCancelled

	numOutcomes
)

var outcomeNames = [numOutcomes]string{"pending", "accepted", "rejected", "cancelled"}

func (o Outcome) String() string {
	if o < numOutcomes {
		return outcomeNames[o]
	}
	return "unknown"
}

// Side is a predictor's direction: YES predicts acceptance.
type Side uint8

const (
	SideYes Side = iota
	SideNo
)

func (s Side) String() string {
	if s == SideYes {
		return "yes"
	}
	return "no"
}

func ParseSide(s string) (Side, error) {
	switch s {
	case "yes":
		return SideYes, nil
	case "no":
		return SideNo, nil
	}
	return 0, dErrors.Newf(dErrors.CodeValidation, "unknown side %q", s)
}

// Market is a constant-product prediction market on one (DAO, creator)
// admission question. The resolution oracle is the DAO vote, never an
// external feed.
type Market struct {
	Address domain.Address
	ID      uint64

	DAO             domain.Address
	CreatorIdentity domain.Address
	CreatorWallet   domain.Address

	MarketCreator   domain.Address
	CreatorBonusBps uint16

	YesPool        uint64
	NoPool         uint64
	PredictorCount uint32

	InitialLiquidity uint64
	FeeBps           uint16
	AccumulatedFees  uint64

	CreatedAt        int64
	TradingEndsAt    int64
	HasTradingEndsAt bool
	ExpiresAt        int64

	Status  Status
	Outcome Outcome

	ResolvedByNomination domain.Address
	HasResolvedBy        bool
	ResolvedAt           int64
	HasResolvedAt        bool

	BurnBps      uint16
	AmountBurned uint64
}

// YesPriceBps returns the implied probability of acceptance in basis
// points: the NO pool's share of total liquidity. An empty market reads 50%.
func (m *Market) YesPriceBps() uint16 {
	total := m.YesPool + m.NoPool
	if total == 0 {
		return 5000
	}
	return uint16(mulDiv(m.NoPool, 10000, total))
}

// NoPriceBps returns the implied probability of rejection.
func (m *Market) NoPriceBps() uint16 {
	return 10000 - m.YesPriceBps()
}

// TokensFor prices a stake on one side with x*y=k: the stake (after fee)
// joins the opposite pool and the side pool shrinks to keep k, the
// difference being the tokens issued.
func (m *Market) TokensFor(side Side, stake uint64) uint64 {
	afterFee := stake - Fee(stake, m.FeeBps)

	poolSame, poolOpp := m.YesPool, m.NoPool
	if side == SideNo {
		poolSame, poolOpp = m.NoPool, m.YesPool
	}
	if poolSame == 0 {
		return afterFee
	}
	newSame := mulDiv(poolSame, poolOpp, poolOpp+afterFee)
	return poolSame - newSame
}

// ApplyStake commits a stake to the pools and returns the tokens issued.
// Callers check slippage against TokensFor before committing.
func (m *Market) ApplyStake(side Side, stake uint64) uint64 {
	tokens := m.TokensFor(side, stake)
	fee := Fee(stake, m.FeeBps)
	afterFee := stake - fee

	switch side {
	case SideYes:
		m.NoPool += afterFee
		m.YesPool -= min(tokens, m.YesPool)
	case SideNo:
		m.YesPool += afterFee
		m.NoPool -= min(tokens, m.NoPool)
	}
	m.AccumulatedFees += fee
	return tokens
}

// Payout returns a winning position's share of the settled pot: the total
// pool minus the one-time burn and accumulated fees, pro rata by winning
// tokens.
func (m *Market) Payout(winningTokens uint64) uint64 {
	winningPool := m.YesPool
	if m.Outcome == OutcomeRejected {
		winningPool = m.NoPool
	}
	if winningPool == 0 {
		return 0
	}
	// Heavy balanced flow can accumulate fees past what the pot holds;
	// the distributable slice floors at zero instead of wrapping.
	distributable := saturatingSub(m.YesPool+m.NoPool, m.BurnAmount())
	distributable = saturatingSub(distributable, m.AccumulatedFees)
	return mulDiv(distributable, winningTokens, winningPool)
}

// BurnAmount is the slice of the total pool burned at settlement.
func (m *Market) BurnAmount() uint64 {
	return mulDiv(m.YesPool+m.NoPool, uint64(m.BurnBps), 10000)
}

// Fee computes the trade fee for a stake.
func Fee(stake uint64, feeBps uint16) uint64 {
	return mulDiv(stake, uint64(feeBps), 10000)
}

func (m *Market) Clone() *Market {
	cp := *m
	return &cp
}

func saturatingSub(a, b uint64) uint64 {
	if b >= a {
		return 0
	}
	return a - b
}

// mulDiv computes a*b/den with a 128-bit intermediate. Every call site
// guarantees the quotient fits in 64 bits.
func mulDiv(a, b, den uint64) uint64 {
	hi, lo := bits.Mul64(a, b)
	if hi >= den {
		// Quotient would overflow; saturate rather than panic.
		return ^uint64(0)
	}
	q, _ := bits.Div64(hi, lo, den)
	return q
}

// Position is one predictor's stake in a market. One record per
// (market, predictor).
type Position struct {
	Address domain.Address

	Market            domain.Address
	Predictor         domain.Address
	PredictorIdentity domain.Address

	YesTokens   uint64
	NoTokens    uint64
	TotalStaked uint64

	OpenedAt     int64
	LastModified int64
	Claimed      bool
	Payout       uint64
}

// UnrealizedPnl values the position at current prices against its cost.
func (p *Position) UnrealizedPnl(m *Market) int64 {
	yesValue := mulDiv(p.YesTokens, uint64(m.YesPriceBps()), 10000)
	noValue := mulDiv(p.NoTokens, uint64(m.NoPriceBps()), 10000)
	return int64(yesValue+noValue) - int64(p.TotalStaked)
}

func (p *Position) Clone() *Position {
	cp := *p
	return &cp
}

// Factory is the singleton configuration and stats record for admission
// markets.
type Factory struct {
	Address   domain.Address
	Authority domain.Address

	MarketCount         uint64
	DefaultFeeBps       uint16
	DefaultBurnBps      uint16
	MinInitialLiquidity uint64
	DefaultExpiryPeriod int64
	CreatorBonusBps     uint16

	TotalMarkets uint64
	TotalVolume  uint64
	TotalBurned  uint64
}

func (f *Factory) Clone() *Factory {
	cp := *f
	return &cp
}
