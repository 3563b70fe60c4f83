package score

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposite(t *testing.T) {
	t.Run("single trading dimension", func(t *testing.T) {
		// 10000×30/100 = 3000, tier band 2.
		composite := Composite(10000, 0, 0, 0, 0)
		assert.Equal(t, uint16(3000), composite)
		assert.Equal(t, uint8(2), Tier(composite))
	})

	t.Run("all maxed stays within bounds", func(t *testing.T) {
		composite := Composite(10000, 10000, 10000, 10000, 10000)
		assert.Equal(t, uint16(10000), composite)
		assert.Equal(t, uint8(5), Tier(composite))
	})

	t.Run("zero scores are tier one", func(t *testing.T) {
		assert.Equal(t, uint16(0), Composite(0, 0, 0, 0, 0))
		assert.Equal(t, uint8(1), Tier(0))
	})
}

func TestTier_Boundaries(t *testing.T) {
	cases := []struct {
		composite uint16
		tier      uint8
	}{
		{0, 1},
		{1999, 1},
		{2000, 2},
		{3999, 2},
		{4000, 3},
		{5999, 3},
		{6000, 4},
		{7999, 4},
		{8000, 5},
		{10000, 5},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.tier, Tier(tc.composite), "composite %d", tc.composite)
	}
}

func TestCreator_DAOAcceptanceBoundaries(t *testing.T) {
	// Only the DAO component active: creator score = table(count)×40/100.
	cases := []struct {
		count uint16
		want  uint16
	}{
		{0, 0},
		{1, 1600},
		{2, 2000},
		{3, 2400},
		{5, 2400},
		{6, 2800},
		{10, 2800},
		{11, 3200},
		{20, 3200},
		{21, 3600},
		{30, 3600},
		{31, 4000},
	}
	for _, tc := range cases {
		got := Creator(CreatorInputs{DAOsAccepted: tc.count})
		assert.Equal(t, tc.want, got, "daos_accepted=%d", tc.count)
	}
}

func TestCreator_AllComponents(t *testing.T) {
	// 31 DAOs (10000×40%) + perfect accuracy (10000×25% + 10000×20%) +
	// 2000 upvotes (10000×15%) = exactly the ceiling.
	got := Creator(CreatorInputs{
		DAOsAccepted:          31,
		NominationAccuracyBps: 10000,
		PredictionAccuracyBps: 10000,
		PeerUpvotes:           2000,
	})
	assert.Equal(t, uint16(10000), got)
}

func TestCreator_UpvoteBoundaries(t *testing.T) {
	cases := []struct {
		upvotes uint64
		want    uint16
	}{
		{0, 300},
		{10, 300},
		{11, 600},
		{50, 600},
		{51, 900},
		{200, 900},
		{201, 1200},
		{1000, 1200},
		{1001, 1500},
	}
	for _, tc := range cases {
		got := Creator(CreatorInputs{PeerUpvotes: tc.upvotes})
		assert.Equal(t, tc.want, got, "peer_upvotes=%d", tc.upvotes)
	}
}

func TestScout(t *testing.T) {
	t.Run("no markets means no score", func(t *testing.T) {
		assert.Equal(t, uint16(0), Scout(ScoutInputs{SurfacingAccuracyBps: 10000}))
	})

	t.Run("unprofitable scouts keep floor profit tier", func(t *testing.T) {
		// accuracy 5000×50% + volume 2000×30% + profit floor 2000×20%
		got := Scout(ScoutInputs{
			SurfacingAccuracyBps: 5000,
			MarketsCreated:       3,
			TotalProfit:          -500,
		})
		assert.Equal(t, uint16(2500+600+400), got)
	})

	t.Run("top bracket everything", func(t *testing.T) {
		got := Scout(ScoutInputs{
			SurfacingAccuracyBps: 10000,
			MarketsCreated:       150,
			TotalProfit:          200_000_000_000,
		})
		assert.Equal(t, uint16(10000), got)
	})
}

func TestTrading(t *testing.T) {
	t.Run("profit factor is capped", func(t *testing.T) {
		capped := Trading(TradingInputs{ProfitFactorBps: 20000})
		beyond := Trading(TradingInputs{ProfitFactorBps: 50000})
		assert.Equal(t, capped, beyond)
	})

	t.Run("zero drawdown contributes full component", func(t *testing.T) {
		// drawdown component alone: (10000-0)×15% = 1500, plus floor tiers
		// volume 2000×20%=400 and consistency 2000×10%=200.
		got := Trading(TradingInputs{})
		assert.Equal(t, uint16(1500+400+200), got)
	})
}

func TestCivic(t *testing.T) {
	got := Civic(CivicInputs{
		PredictionAccuracyBps: 10000,
		ProblemsSolved:        201,
		CommunityTrust:        10000,
		CurrentStreak:         21,
	})
	assert.Equal(t, uint16(10000), got)
}

func TestPrestigeBonus_Boundaries(t *testing.T) {
	cases := []struct {
		members uint16
		want    uint32
	}{
		{0, 100},
		{10, 100},
		{11, 200},
		{50, 200},
		{51, 300},
		{100, 300},
		{101, 400},
		{150, 400},
		{151, 500},
		{200, 500},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, PrestigeBonus(tc.members), "member_count=%d", tc.members)
	}
}

func TestAccuracyBps(t *testing.T) {
	assert.Equal(t, uint16(0), AccuracyBps(0, 0))
	assert.Equal(t, uint16(10000), AccuracyBps(5, 0))
	assert.Equal(t, uint16(0), AccuracyBps(0, 5))
	assert.Equal(t, uint16(7500), AccuracyBps(3, 1))
	assert.Equal(t, uint16(6666), AccuracyBps(2, 1))
}
