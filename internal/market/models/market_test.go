package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sovereign/pkg/domain"
)

func seededMarket() *Market {
	return &Market{
		YesPool: 500_000,
		NoPool:  500_000,
		FeeBps:  100,
		BurnBps: 500,
	}
}

func TestYesPriceBps(t *testing.T) {
	m := seededMarket()
	assert.Equal(t, uint16(5000), m.YesPriceBps())
	assert.Equal(t, uint16(5000), m.NoPriceBps())

	empty := &Market{}
	assert.Equal(t, uint16(5000), empty.YesPriceBps())

	// A YES buy pushes the implied acceptance probability up.
	m.ApplyStake(SideYes, 100_000)
	assert.Greater(t, m.YesPriceBps(), uint16(5000))
	assert.Equal(t, uint16(10000), m.YesPriceBps()+m.NoPriceBps())
}

func TestTokensFor(t *testing.T) {
	m := seededMarket()

	// 100,000 at 100 bps fee: 99,000 joins the NO pool, YES shrinks to
	// 500,000*500,000/599,000 = 417,362 and the difference is issued.
	assert.Equal(t, uint64(82_638), m.TokensFor(SideYes, 100_000))

	// An empty side pool issues the full after-fee stake.
	fresh := &Market{NoPool: 500_000, FeeBps: 100}
	assert.Equal(t, uint64(99_000), fresh.TokensFor(SideYes, 100_000))

	// Issued tokens never exceed the side pool.
	whale := m.TokensFor(SideYes, 1_000_000_000)
	assert.Less(t, whale, m.YesPool)
}

func TestApplyStake(t *testing.T) {
	m := seededMarket()
	tokens := m.ApplyStake(SideYes, 100_000)

	assert.Equal(t, uint64(82_638), tokens)
	assert.Equal(t, uint64(599_000), m.NoPool)
	assert.Equal(t, uint64(417_362), m.YesPool)
	assert.Equal(t, uint64(1_000), m.AccumulatedFees)

	// Integer division sheds at most the division remainder from the pool
	// product per trade.
	k := m.YesPool * m.NoPool
	m.ApplyStake(SideNo, 50_000)
	assert.LessOrEqual(t, m.YesPool*m.NoPool, k)
	assert.Greater(t, m.YesPool*m.NoPool, k-m.YesPool)
}

func TestPayout(t *testing.T) {
	m := seededMarket()
	yesTokens := m.ApplyStake(SideYes, 100_000)
	m.ApplyStake(SideNo, 50_000)
	m.Outcome = OutcomeAccepted

	totalPot := m.YesPool + m.NoPool
	distributable := totalPot - m.BurnAmount() - m.AccumulatedFees

	payout := m.Payout(yesTokens)
	assert.Equal(t, uint64(168_286), payout)
	assert.LessOrEqual(t, payout, distributable)

	// Paying out the entire winning pool distributes everything that is
	// distributable.
	assert.Equal(t, distributable, m.Payout(m.YesPool))

	drained := &Market{Outcome: OutcomeAccepted, NoPool: 100}
	assert.Equal(t, uint64(0), drained.Payout(50))
}

func TestPayout_FeesExceedPot(t *testing.T) {
	m := seededMarket()

	// Balanced churn grows fees linearly while the pot barely moves, so
	// after enough round trips the fees outweigh the pot itself.
	var yesTokens uint64
	for i := 0; i < 1_200_000; i++ {
		tokens := m.ApplyStake(SideYes, 100)
		if i == 0 {
			yesTokens = tokens
		}
		m.ApplyStake(SideNo, 100)
	}
	require.Greater(t, m.AccumulatedFees, m.YesPool+m.NoPool)
	m.Outcome = OutcomeAccepted

	// Nothing is left to distribute; payouts floor at zero instead of
	// wrapping past the pot.
	assert.Equal(t, uint64(0), m.Payout(yesTokens))
	assert.Equal(t, uint64(0), m.Payout(m.YesPool))
}

func TestMarketRecordRoundTrip(t *testing.T) {
	addr := domain.MustAddress("aa" + "00000000000000000000000000000000000000000000000000000000000000"[:62])
	m := seededMarket()
	m.Address = addr
	m.ID = 7
	m.DAO = domain.DAOAddress(addr, 0)
	m.CreatorIdentity = domain.IdentityAddress(addr)
	m.CreatorWallet = addr
	m.MarketCreator = addr
	m.PredictorCount = 3
	m.InitialLiquidity = 1_000_000
	m.CreatedAt = 1_700_000_000
	m.ExpiresAt = 1_700_000_000 + 30*86400
	m.Status = StatusResolved
	m.Outcome = OutcomeAccepted
	m.ResolvedByNomination = domain.NominationAddress(m.DAO, 2)
	m.HasResolvedBy = true
	m.ResolvedAt = 1_700_100_000
	m.HasResolvedAt = true
	m.AmountBurned = 50_117

	data := m.MarshalRecord()
	require.Len(t, data, MarketRecordSize)

	got, err := UnmarshalMarketRecord(addr, data)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	_, err = UnmarshalMarketRecord(addr, data[:10])
	assert.Error(t, err)
}

func TestPositionRecordRoundTrip(t *testing.T) {
	addr := domain.MustAddress("bb" + "00000000000000000000000000000000000000000000000000000000000000"[:62])
	p := &Position{
		Address:           addr,
		Market:            domain.IdentityAddress(addr),
		Predictor:         addr,
		PredictorIdentity: domain.IdentityAddress(addr),
		YesTokens:         82_638,
		TotalStaked:       100_000,
		OpenedAt:          1_700_000_000,
		LastModified:      1_700_000_500,
		Claimed:           true,
		Payout:            168_286,
	}

	data := p.MarshalRecord()
	require.Len(t, data, PositionRecordSize)

	got, err := UnmarshalPositionRecord(addr, data)
	require.NoError(t, err)
	assert.Equal(t, p, got)
}

func TestFactoryRecordRoundTrip(t *testing.T) {
	f := &Factory{
		Address:             domain.MarketFactoryAddress(),
		MarketCount:         4,
		DefaultFeeBps:       100,
		DefaultBurnBps:      500,
		MinInitialLiquidity: 1_000_000,
		DefaultExpiryPeriod: 30 * 86400,
		CreatorBonusBps:     200,
		TotalMarkets:        4,
		TotalVolume:         12_000_000,
		TotalBurned:         200_468,
	}

	data := f.MarshalRecord()
	require.Len(t, data, FactoryRecordSize)

	got, err := UnmarshalFactoryRecord(domain.MarketFactoryAddress(), data)
	require.NoError(t, err)
	assert.Equal(t, f, got)
}
