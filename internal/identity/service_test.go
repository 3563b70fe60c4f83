package identity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sovereign/internal/identity/models"
	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
	"sovereign/pkg/platform/audit"
	"sovereign/pkg/requestcontext"
)

var (
	testOwner  = domain.MustAddress("1111111111111111111111111111111111111111111111111111111111111111")
	testOracle = domain.MustAddress("2222222222222222222222222222222222222222222222222222222222222222")
)

func testContext(caller domain.Address) context.Context {
	ctx := requestcontext.WithCaller(context.Background(), caller)
	return requestcontext.WithTime(ctx, time.Unix(1_700_000_000, 0))
}

func newTestService() (*Service, *audit.MemorySink) {
	sink := audit.NewMemorySink()
	svc := New(NewMemoryStore(), NewMemoryLeaderboard(), WithAuditPublisher(sink))
	return svc, sink
}

func TestCreateIdentity(t *testing.T) {
	svc, sink := newTestService()
	ctx := testContext(testOwner)

	id, err := svc.CreateIdentity(ctx)
	require.NoError(t, err)

	assert.Equal(t, domain.IdentityAddress(testOwner), id.Address)
	assert.Equal(t, testOwner, id.Owner)
	assert.Equal(t, uint8(1), id.Tier)
	assert.Equal(t, uint16(0), id.CompositeScore)
	for d := 0; d < models.NumDimensions; d++ {
		assert.Equal(t, testOwner, id.Authorities[d], "authority %s defaults to owner", models.Dimension(d))
	}
	assert.Len(t, sink.ByKind(audit.EventIdentityCreated), 1)
}

func TestCreateIdentity_Duplicate(t *testing.T) {
	svc, _ := newTestService()
	ctx := testContext(testOwner)

	_, err := svc.CreateIdentity(ctx)
	require.NoError(t, err)

	_, err = svc.CreateIdentity(ctx)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestCreateIdentity_NoCaller(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.CreateIdentity(context.Background())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeUnauthorized))
}

func TestUpdateScore_RecomputesCompositeAndTier(t *testing.T) {
	svc, _ := newTestService()
	ctx := testContext(testOwner)

	id, err := svc.CreateIdentity(ctx)
	require.NoError(t, err)

	updated, err := svc.UpdateScore(ctx, id.Address, models.DimensionTrading, 10000)
	require.NoError(t, err)

	assert.Equal(t, uint16(10000), updated.Scores[models.DimensionTrading])
	assert.Equal(t, uint16(3000), updated.CompositeScore)
	assert.Equal(t, uint8(2), updated.Tier)
}

func TestUpdateScore_WrongAuthority(t *testing.T) {
	svc, _ := newTestService()

	id, err := svc.CreateIdentity(testContext(testOwner))
	require.NoError(t, err)

	_, err = svc.UpdateScore(testContext(testOracle), id.Address, models.DimensionTrading, 5000)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestUpdateScore_AboveCeiling(t *testing.T) {
	svc, _ := newTestService()
	ctx := testContext(testOwner)

	id, err := svc.CreateIdentity(ctx)
	require.NoError(t, err)

	_, err = svc.UpdateScore(ctx, id.Address, models.DimensionCivic, 10001)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestSetAuthority_Delegation(t *testing.T) {
	svc, _ := newTestService()
	ownerCtx := testContext(testOwner)

	id, err := svc.CreateIdentity(ownerCtx)
	require.NoError(t, err)

	_, err = svc.SetAuthority(ownerCtx, id.Address, models.DimensionTrading, testOracle)
	require.NoError(t, err)

	// The delegate can now write the dimension, the owner no longer can.
	_, err = svc.UpdateScore(testContext(testOracle), id.Address, models.DimensionTrading, 4000)
	assert.NoError(t, err)
	_, err = svc.UpdateScore(ownerCtx, id.Address, models.DimensionTrading, 4000)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestSetAuthority_RejectsZeroAddress(t *testing.T) {
	svc, _ := newTestService()
	ctx := testContext(testOwner)

	id, err := svc.CreateIdentity(ctx)
	require.NoError(t, err)

	_, err = svc.SetAuthority(ctx, id.Address, models.DimensionCivic, domain.Address{})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}

func TestSetAuthority_NonOwner(t *testing.T) {
	svc, _ := newTestService()

	id, err := svc.CreateIdentity(testContext(testOwner))
	require.NoError(t, err)

	_, err = svc.SetAuthority(testContext(testOracle), id.Address, models.DimensionCivic, testOracle)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestUpdateTradingDetails_DerivesScore(t *testing.T) {
	svc, _ := newTestService()
	ctx := testContext(testOwner)

	id, err := svc.CreateIdentity(ctx)
	require.NoError(t, err)

	updated, err := svc.UpdateTradingDetails(ctx, id.Address, models.TradingScoreDetails{
		WinRateBps:      10000,
		ProfitFactorBps: 20000,
		TotalTrades:     1001,
		TotalVolume:     2_000_000_000_000,
		MaxDrawdownBps:  0,
	})
	require.NoError(t, err)

	// Every component at its ceiling gives the full dimension score.
	assert.Equal(t, uint16(10000), updated.Scores[models.DimensionTrading])
}

func TestRecordDAOAcceptance_FeedsCreatorDimension(t *testing.T) {
	svc, _ := newTestService()
	ctx := testContext(testOwner)

	id, err := svc.CreateIdentity(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.RecordDAOAcceptance(ctx, id.Address, 8))

	details, err := svc.GetCreatorScore(ctx, id.Address)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), details.DAOsAccepted)
	assert.Equal(t, uint32(100), details.DAOReputationPoints)
	assert.True(t, details.HasFirstDAOAcceptance)

	// One acceptance yields the 4000 tier on the 40% component.
	updated, err := svc.GetIdentity(ctx, id.Address)
	require.NoError(t, err)
	assert.Equal(t, uint16(1600), updated.Scores[models.DimensionCreator])
	assert.Equal(t, uint16(400), updated.CompositeScore)
}

func TestRecordNominationOutcome_Accuracy(t *testing.T) {
	svc, _ := newTestService()
	ctx := testContext(testOwner)

	id, err := svc.CreateIdentity(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.RecordNominationOutcome(ctx, id.Address, true))
	require.NoError(t, svc.RecordNominationOutcome(ctx, id.Address, true))
	require.NoError(t, svc.RecordNominationOutcome(ctx, id.Address, false))

	details, err := svc.GetCreatorScore(ctx, id.Address)
	require.NoError(t, err)
	assert.Equal(t, uint16(2), details.SuccessfulNominations)
	assert.Equal(t, uint16(1), details.FailedNominations)
	assert.Equal(t, uint16(6666), details.NominationAccuracyBps)
}

func TestRecordSurfacedAcceptance(t *testing.T) {
	svc, _ := newTestService()
	ctx := testContext(testOwner)

	require.NoError(t, svc.RecordMarketCreated(ctx, testOwner))
	require.NoError(t, svc.RecordMarketCreated(ctx, testOwner))
	require.NoError(t, svc.RecordSurfacedAcceptance(ctx, testOwner, 5_000_000))

	sc, err := svc.GetSurfacingScore(ctx, testOwner)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), sc.MarketsCreated)
	assert.Equal(t, uint32(1), sc.SuccessfulSurfaces)
	assert.Equal(t, uint16(5000), sc.SurfacingAccuracyBps)
	assert.Equal(t, int64(5_000_000), sc.TotalProfit)
	assert.NotZero(t, sc.ScoutScore)
}

func TestLeaderboard_Ordering(t *testing.T) {
	svc, _ := newTestService()

	a := domain.MustAddress("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa")
	b := domain.MustAddress("bbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbbb")

	idA, err := svc.CreateIdentity(testContext(a))
	require.NoError(t, err)
	idB, err := svc.CreateIdentity(testContext(b))
	require.NoError(t, err)

	_, err = svc.UpdateScore(testContext(a), idA.Address, models.DimensionTrading, 2000)
	require.NoError(t, err)
	_, err = svc.UpdateScore(testContext(b), idB.Address, models.DimensionTrading, 8000)
	require.NoError(t, err)

	entries, err := svc.Leaderboard(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, idB.Address, entries[0].Identity)
	assert.Equal(t, uint16(2400), entries[0].Score)
	assert.Equal(t, idA.Address, entries[1].Identity)
}
