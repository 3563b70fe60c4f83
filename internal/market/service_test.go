package market

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sovereign/internal/market/models"
	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
	"sovereign/pkg/requestcontext"
)

var baseTime = time.Unix(1_700_000_000, 0)

func ctxAt(caller domain.Address, at time.Time) context.Context {
	ctx := requestcontext.WithCaller(context.Background(), caller)
	return requestcontext.WithTime(ctx, at)
}

func wallet(i int) domain.Address {
	return domain.MustAddress(fmt.Sprintf("%064x", i+1))
}

type fakeDAOs struct {
	err error
}

func (f *fakeDAOs) VerifyActiveDAO(context.Context, domain.Address) error {
	return f.err
}

type predictionCall struct {
	identity domain.Address
	correct  bool
	pnlBps   int32
}

type burnCall struct {
	identity domain.Address
	amount   uint64
}

type surfacedCall struct {
	predictor domain.Address
	profit    int64
}

// fakeScores records progression calls; predictionErr simulates a predictor
// without an identity record.
type fakeScores struct {
	marketsCreated []domain.Address
	surfaced       []surfacedCall
	predictions    []predictionCall
	burns          []burnCall
	predictionErr  error
}

func (f *fakeScores) RecordMarketCreated(_ context.Context, predictor domain.Address) error {
	f.marketsCreated = append(f.marketsCreated, predictor)
	return nil
}

func (f *fakeScores) RecordSurfacedAcceptance(_ context.Context, predictor domain.Address, profit int64) error {
	f.surfaced = append(f.surfaced, surfacedCall{predictor: predictor, profit: profit})
	return nil
}

func (f *fakeScores) RecordPrediction(_ context.Context, identity domain.Address, correct bool, pnlBps int32) error {
	if f.predictionErr != nil {
		return f.predictionErr
	}
	f.predictions = append(f.predictions, predictionCall{identity: identity, correct: correct, pnlBps: pnlBps})
	return nil
}

func (f *fakeScores) RecordBurn(_ context.Context, identity domain.Address, amount uint64) error {
	f.burns = append(f.burns, burnCall{identity: identity, amount: amount})
	return nil
}

func testFactoryConfig() FactoryConfig {
	return FactoryConfig{
		MinInitialLiquidity: 1_000_000,
		DefaultFeeBps:       100,
		DefaultBurnBps:      500,
		CreatorBonusBps:     200,
		DefaultExpiryPeriod: 30 * 86400,
	}
}

func newTestService(t *testing.T) (*Service, *fakeScores) {
	t.Helper()
	scores := &fakeScores{}
	svc := New(NewMemoryStore(), &fakeDAOs{}, scores)
	require.NoError(t, svc.EnsureFactory(context.Background(), testFactoryConfig(), wallet(0)))
	return svc, scores
}

// newTestMarket opens a market on wallet(9)'s admission, surfaced by
// wallet(1) with the minimum liquidity.
func newTestMarket(t *testing.T, svc *Service) *models.Market {
	t.Helper()
	m, err := svc.CreateMarket(ctxAt(wallet(1), baseTime), CreateMarketParams{
		DAO:              domain.DAOAddress(wallet(0), 0),
		CreatorWallet:    wallet(9),
		InitialLiquidity: 1_000_000,
	})
	require.NoError(t, err)
	return m
}

func TestEnsureFactory(t *testing.T) {
	svc, _ := newTestService(t)

	f, err := svc.GetFactory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1_000_000), f.MinInitialLiquidity)
	assert.Equal(t, uint16(100), f.DefaultFeeBps)

	// A second call with a different config must not reconfigure.
	changed := testFactoryConfig()
	changed.DefaultFeeBps = 900
	require.NoError(t, svc.EnsureFactory(context.Background(), changed, wallet(0)))
	f, err = svc.GetFactory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint16(100), f.DefaultFeeBps)
}

func TestCreateMarket(t *testing.T) {
	svc, scores := newTestService(t)
	dao := domain.DAOAddress(wallet(0), 0)

	m := newTestMarket(t, svc)
	assert.Equal(t, domain.MarketAddress(dao, domain.IdentityAddress(wallet(9))), m.Address)
	assert.Equal(t, uint64(0), m.ID)
	assert.Equal(t, wallet(1), m.MarketCreator)
	assert.Equal(t, uint64(500_000), m.YesPool)
	assert.Equal(t, uint64(500_000), m.NoPool)
	assert.Equal(t, uint32(1), m.PredictorCount)
	assert.Equal(t, uint16(100), m.FeeBps)
	assert.Equal(t, uint16(500), m.BurnBps)
	assert.Equal(t, baseTime.Unix()+30*86400, m.ExpiresAt)
	assert.Equal(t, models.StatusOpen, m.Status)
	assert.Equal(t, models.OutcomePending, m.Outcome)
	assert.Equal(t, []domain.Address{wallet(1)}, scores.marketsCreated)

	factory, err := svc.GetFactory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), factory.MarketCount)
	assert.Equal(t, uint64(1), factory.TotalMarkets)
	assert.Equal(t, uint64(1_000_000), factory.TotalVolume)

	// One market per (dao, creator) pair.
	_, err = svc.CreateMarket(ctxAt(wallet(2), baseTime), CreateMarketParams{
		DAO:              dao,
		CreatorWallet:    wallet(9),
		InitialLiquidity: 1_000_000,
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestCreateMarket_Validation(t *testing.T) {
	svc, _ := newTestService(t)
	dao := domain.DAOAddress(wallet(0), 0)

	_, err := svc.CreateMarket(ctxAt(wallet(1), baseTime), CreateMarketParams{
		DAO:              dao,
		CreatorWallet:    wallet(9),
		InitialLiquidity: 999_999,
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = svc.CreateMarket(ctxAt(wallet(1), baseTime), CreateMarketParams{
		DAO:              dao,
		InitialLiquidity: 1_000_000,
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	_, err = svc.CreateMarket(ctxAt(domain.Address{}, baseTime), CreateMarketParams{
		DAO:              dao,
		CreatorWallet:    wallet(9),
		InitialLiquidity: 1_000_000,
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestCreateMarket_InactiveDAO(t *testing.T) {
	scores := &fakeScores{}
	svc := New(NewMemoryStore(), &fakeDAOs{err: dErrors.New(dErrors.CodeInvalidState, "dao is not active")}, scores)
	require.NoError(t, svc.EnsureFactory(context.Background(), testFactoryConfig(), wallet(0)))

	_, err := svc.CreateMarket(ctxAt(wallet(1), baseTime), CreateMarketParams{
		DAO:              domain.DAOAddress(wallet(0), 0),
		CreatorWallet:    wallet(9),
		InitialLiquidity: 1_000_000,
	})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
	assert.Empty(t, scores.marketsCreated)
}

func TestTakePosition(t *testing.T) {
	svc, _ := newTestService(t)
	m := newTestMarket(t, svc)

	// 100,000 YES on a fresh 500,000/500,000 pool at 100 bps fee issues
	// 82,638 tokens.
	pos, err := svc.TakePosition(ctxAt(wallet(2), baseTime), m.Address, models.SideYes, 100_000, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(82_638), pos.YesTokens)
	assert.Equal(t, uint64(0), pos.NoTokens)
	assert.Equal(t, uint64(100_000), pos.TotalStaked)
	assert.Equal(t, domain.IdentityAddress(wallet(2)), pos.PredictorIdentity)

	m, err = svc.GetMarket(context.Background(), m.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(417_362), m.YesPool)
	assert.Equal(t, uint64(599_000), m.NoPool)
	assert.Equal(t, uint64(1_000), m.AccumulatedFees)
	assert.Equal(t, uint32(2), m.PredictorCount)
	assert.Equal(t, uint16(5893), m.YesPriceBps())

	// A second trade by the same predictor tops up the position without
	// bumping the predictor count.
	pos, err = svc.TakePosition(ctxAt(wallet(2), baseTime), m.Address, models.SideYes, 10_000, 0)
	require.NoError(t, err)
	assert.Equal(t, uint64(110_000), pos.TotalStaked)

	m, err = svc.GetMarket(context.Background(), m.Address)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), m.PredictorCount)

	factory, err := svc.GetFactory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1_110_000), factory.TotalVolume)
}

func TestTakePosition_Slippage(t *testing.T) {
	svc, _ := newTestService(t)
	m := newTestMarket(t, svc)

	_, err := svc.TakePosition(ctxAt(wallet(2), baseTime), m.Address, models.SideYes, 100_000, 82_639)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))

	_, err = svc.TakePosition(ctxAt(wallet(2), baseTime), m.Address, models.SideYes, 100_000, 82_638)
	assert.NoError(t, err)
}

func TestTakePosition_Guards(t *testing.T) {
	svc, _ := newTestService(t)
	m := newTestMarket(t, svc)

	_, err := svc.TakePosition(ctxAt(wallet(2), baseTime), m.Address, models.SideYes, 0, 0)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))

	afterExpiry := baseTime.Add(31 * 24 * time.Hour)
	_, err = svc.TakePosition(ctxAt(wallet(2), afterExpiry), m.Address, models.SideYes, 100_000, 0)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func TestSettleAndClaim(t *testing.T) {
	svc, scores := newTestService(t)
	m := newTestMarket(t, svc)
	dao := m.DAO
	creatorIdentity := m.CreatorIdentity
	nomination := domain.NominationAddress(dao, 0)

	// wallet(1) surfaced the creator and backs them; wallet(2) bets against.
	_, err := svc.TakePosition(ctxAt(wallet(1), baseTime), m.Address, models.SideYes, 100_000, 0)
	require.NoError(t, err)
	_, err = svc.TakePosition(ctxAt(wallet(2), baseTime), m.Address, models.SideNo, 50_000, 0)
	require.NoError(t, err)

	require.NoError(t, svc.CanSettle(context.Background(), m.Address, dao, creatorIdentity))

	settleTime := baseTime.Add(2 * 24 * time.Hour)
	m, err = svc.Settle(ctxAt(domain.Address{}, settleTime), m.Address, dao, nomination, creatorIdentity, true)
	require.NoError(t, err)
	assert.Equal(t, models.StatusResolved, m.Status)
	assert.Equal(t, models.OutcomeAccepted, m.Outcome)
	assert.Equal(t, nomination, m.ResolvedByNomination)
	assert.True(t, m.HasResolvedBy)

	// Pools at settlement are 466,862/535,489; the 5% burn is 50,117.
	assert.Equal(t, uint64(50_117), m.AmountBurned)
	assert.Equal(t, []burnCall{{identity: creatorIdentity, amount: 50_117}}, scores.burns)

	factory, err := svc.GetFactory(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(50_117), factory.TotalBurned)

	// Settling twice is rejected.
	_, err = svc.Settle(ctxAt(domain.Address{}, settleTime), m.Address, dao, nomination, creatorIdentity, true)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))

	// Winner: distributable pot is 1,002,351 - 50,117 - 1,500 = 950,734,
	// paid pro rata over the 466,862 winning pool.
	claimTime := settleTime.Add(time.Hour)
	pos, err := svc.ClaimWinnings(ctxAt(wallet(1), claimTime), m.Address)
	require.NoError(t, err)
	assert.True(t, pos.Claimed)
	assert.Equal(t, uint64(168_286), pos.Payout)

	require.Len(t, scores.predictions, 1)
	assert.Equal(t, predictionCall{
		identity: domain.IdentityAddress(wallet(1)),
		correct:  true,
		pnlBps:   6828,
	}, scores.predictions[0])

	// The market creator backed their own surfaced creator and won, so the
	// surfacing record is credited with the realized profit.
	assert.Equal(t, []surfacedCall{{predictor: wallet(1), profit: 68_286}}, scores.surfaced)

	// Loser: nothing paid, accuracy still recorded.
	pos, err = svc.ClaimWinnings(ctxAt(wallet(2), claimTime), m.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(0), pos.Payout)
	require.Len(t, scores.predictions, 2)
	assert.False(t, scores.predictions[1].correct)

	// Double claim is rejected.
	_, err = svc.ClaimWinnings(ctxAt(wallet(1), claimTime), m.Address)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func TestClaimWinnings_Guards(t *testing.T) {
	svc, _ := newTestService(t)
	m := newTestMarket(t, svc)

	_, err := svc.TakePosition(ctxAt(wallet(2), baseTime), m.Address, models.SideYes, 100_000, 0)
	require.NoError(t, err)

	// Open market: nothing to claim yet.
	_, err = svc.ClaimWinnings(ctxAt(wallet(2), baseTime), m.Address)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))

	// No position.
	_, err = svc.Settle(ctxAt(domain.Address{}, baseTime), m.Address, m.DAO,
		domain.NominationAddress(m.DAO, 0), m.CreatorIdentity, false)
	require.NoError(t, err)
	_, err = svc.ClaimWinnings(ctxAt(wallet(3), baseTime), m.Address)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestClaimWinnings_NoIdentity(t *testing.T) {
	svc, scores := newTestService(t)
	scores.predictionErr = dErrors.New(dErrors.CodeNotFound, "identity not found")
	m := newTestMarket(t, svc)

	_, err := svc.TakePosition(ctxAt(wallet(2), baseTime), m.Address, models.SideYes, 100_000, 0)
	require.NoError(t, err)
	_, err = svc.Settle(ctxAt(domain.Address{}, baseTime), m.Address, m.DAO,
		domain.NominationAddress(m.DAO, 0), m.CreatorIdentity, true)
	require.NoError(t, err)

	// The claim still pays out even though the predictor holds no identity.
	pos, err := svc.ClaimWinnings(ctxAt(wallet(2), baseTime), m.Address)
	require.NoError(t, err)
	assert.Greater(t, pos.Payout, uint64(0))
}

func TestExpireMarket(t *testing.T) {
	svc, scores := newTestService(t)
	m := newTestMarket(t, svc)

	_, err := svc.TakePosition(ctxAt(wallet(2), baseTime), m.Address, models.SideNo, 75_000, 0)
	require.NoError(t, err)

	_, err = svc.ExpireMarket(ctxAt(wallet(3), baseTime), m.Address)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))

	afterExpiry := baseTime.Add(31 * 24 * time.Hour)
	m, err = svc.ExpireMarket(ctxAt(wallet(3), afterExpiry), m.Address)
	require.NoError(t, err)
	assert.Equal(t, models.StatusExpired, m.Status)
	assert.Equal(t, models.OutcomeCancelled, m.Outcome)

	// A cancelled market refunds the full stake and records no prediction.
	pos, err := svc.ClaimWinnings(ctxAt(wallet(2), afterExpiry), m.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(75_000), pos.Payout)
	assert.Empty(t, scores.predictions)
}

func TestCanSettle_Mismatch(t *testing.T) {
	svc, _ := newTestService(t)
	m := newTestMarket(t, svc)

	err := svc.CanSettle(context.Background(), m.Address, domain.DAOAddress(wallet(5), 3), m.CreatorIdentity)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))

	err = svc.CanSettle(context.Background(), m.Address, m.DAO, domain.IdentityAddress(wallet(5)))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}
