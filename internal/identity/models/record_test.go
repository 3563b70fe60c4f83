package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sovereign/pkg/domain"
)

func TestRecordSizesAreFixed(t *testing.T) {
	owner := domain.MustAddress("1111111111111111111111111111111111111111111111111111111111111111")

	id := NewIdentity(owner, 1)
	assert.Len(t, id.MarshalRecord(), IdentityRecordSize)
	assert.Len(t, NewCreatorScoreDetails(id.Address, 1).MarshalRecord(), CreatorScoreRecordSize)
	assert.Len(t, NewSurfacingScore(owner, 1).MarshalRecord(), SurfacingRecordSize)
	assert.Len(t, NewTradingScoreDetails(id.Address, 1).MarshalRecord(), TradingDetailsRecordSize)
	assert.Len(t, NewCivicScoreDetails(id.Address, 1).MarshalRecord(), CivicDetailsRecordSize)
}

func TestIdentityRecordRoundTrip(t *testing.T) {
	owner := domain.MustAddress("2222222222222222222222222222222222222222222222222222222222222222")
	oracle := domain.MustAddress("3333333333333333333333333333333333333333333333333333333333333333")

	id := NewIdentity(owner, 1_700_000_000)
	id.Authorities[DimensionTrading] = oracle
	id.SetScore(DimensionTrading, 8000, 1_700_000_100)
	id.SetScore(DimensionCreator, 4000, 1_700_000_200)

	got, err := UnmarshalIdentityRecord(id.Address, id.MarshalRecord())
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestCreatorScoreRecordRoundTrip(t *testing.T) {
	identity := domain.IdentityAddress(
		domain.MustAddress("4444444444444444444444444444444444444444444444444444444444444444"))

	d := NewCreatorScoreDetails(identity, 1_700_000_000)
	d.RecordAcceptance(42, 1_700_000_100)
	d.RecordNominationOutcome(true, 1_700_000_200)
	d.RecordPrediction(false, -2500, 1_700_000_300)
	d.PeerUpvotes = 77
	d.TotalBurned = 500_000

	got, err := UnmarshalCreatorScoreRecord(d.Address, d.MarshalRecord())
	require.NoError(t, err)
	assert.Equal(t, d, got)
}

func TestUnmarshalRejectsWrongSize(t *testing.T) {
	_, err := UnmarshalIdentityRecord(domain.Address{}, make([]byte, 7))
	assert.Error(t, err)
}
