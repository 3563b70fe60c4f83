//go:build integration

package identity

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sovereign/internal/identity/models"
	"sovereign/pkg/domain"
	"sovereign/pkg/platform/sentinel"
	"sovereign/pkg/testutil"
)

func wallet(i int) domain.Address {
	return domain.MustAddress(fmt.Sprintf("%064x", i+1))
}

func newPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()
	store := NewPostgresStore(testutil.PostgresDB(t))
	require.NoError(t, store.EnsureSchema(context.Background()))
	return store
}

func TestPostgresStore_Identity(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()
	owner := wallet(0)

	id := models.NewIdentity(owner, 1_700_000_000)
	require.NoError(t, store.CreateIdentity(ctx, id))
	assert.ErrorIs(t, store.CreateIdentity(ctx, id), sentinel.ErrConflict)

	got, err := store.GetIdentity(ctx, id.Address)
	require.NoError(t, err)
	assert.Equal(t, id, got)

	id.SetScore(models.DimensionTrading, 8000, 1_700_000_100)
	require.NoError(t, store.PutIdentity(ctx, id))
	got, err = store.GetIdentity(ctx, id.Address)
	require.NoError(t, err)
	assert.Equal(t, uint16(8000), got.Scores[models.DimensionTrading])

	_, err = store.GetIdentity(ctx, domain.IdentityAddress(wallet(5)))
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestPostgresStore_CreatorScoreUpsert(t *testing.T) {
	store := newPostgresStore(t)
	ctx := context.Background()
	identityAddr := domain.IdentityAddress(wallet(0))

	details := models.NewCreatorScoreDetails(identityAddr, 1_700_000_000)
	require.NoError(t, store.PutCreatorScore(ctx, details))

	details.RecordAcceptance(8, 1_700_000_100)
	require.NoError(t, store.PutCreatorScore(ctx, details))

	got, err := store.GetCreatorScore(ctx, details.Address)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), got.DAOsAccepted)
	assert.Equal(t, uint32(100), got.DAOReputationPoints)
}

func TestRedisLeaderboard(t *testing.T) {
	lb := NewRedisLeaderboard(testutil.RedisClient(t))
	ctx := context.Background()

	require.NoError(t, lb.SetScore(ctx, domain.IdentityAddress(wallet(0)), 2400))
	require.NoError(t, lb.SetScore(ctx, domain.IdentityAddress(wallet(1)), 6100))
	require.NoError(t, lb.SetScore(ctx, domain.IdentityAddress(wallet(2)), 900))

	top, err := lb.Top(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, domain.IdentityAddress(wallet(1)), top[0].Identity)
	assert.Equal(t, uint32(6100), top[0].Score)
	assert.Equal(t, domain.IdentityAddress(wallet(0)), top[1].Identity)

	// Scores overwrite, never accumulate.
	require.NoError(t, lb.SetScore(ctx, domain.IdentityAddress(wallet(2)), 9000))
	top, err = lb.Top(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.IdentityAddress(wallet(2)), top[0].Identity)
}
