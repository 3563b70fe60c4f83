package governance

import (
	"context"
	"crypto/rand"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sovereign/internal/governance/models"
	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
	"sovereign/pkg/platform/audit"
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

func randomSalt(t *testing.T) [32]byte {
	t.Helper()
	var salt [32]byte
	_, err := rand.Read(salt[:])
	require.NoError(t, err)
	return salt
}

func validParams() CreateDAOParams {
	return CreateDAOParams{
		Name:               "solana-writers",
		Description:        "Long-form writing on protocol design",
		ContentType:        models.ContentLongFormWriting,
		StyleTag:           "protocol-design",
		AdmissionThreshold: 70,
		VotingPeriod:       models.MinVotingPeriod,
		Quorum:             50,
	}
}

// newDAOWithMembers creates a DAO founded by wallet(0) with members
// wallet(0)..wallet(n-1).
func newDAOWithMembers(t *testing.T, svc *Service, n int) *models.DAO {
	t.Helper()
	founder := wallet(0)
	dao, err := svc.CreateDAO(ctxAt(founder, baseTime), validParams())
	require.NoError(t, err)
	for i := 0; i < n; i++ {
		_, err := svc.AddFounderMember(ctxAt(founder, baseTime), dao.Address, wallet(i))
		require.NoError(t, err)
	}
	dao, err = svc.GetDAO(context.Background(), dao.Address)
	require.NoError(t, err)
	return dao
}

func TestCreateDAO(t *testing.T) {
	svc := New(NewMemoryStore())
	founder := wallet(0)

	dao, err := svc.CreateDAO(ctxAt(founder, baseTime), validParams())
	require.NoError(t, err)

	assert.Equal(t, uint64(0), dao.ID)
	assert.Equal(t, domain.DAOAddress(founder, 0), dao.Address)
	assert.Equal(t, founder, dao.Founder)
	assert.True(t, dao.IsActive)
	assert.Equal(t, uint16(0), dao.MemberCount)

	second, err := svc.CreateDAO(ctxAt(founder, baseTime), validParams())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), second.ID)
}

func TestCreateDAO_Validation(t *testing.T) {
	svc := New(NewMemoryStore())
	ctx := ctxAt(wallet(0), baseTime)

	cases := []struct {
		name   string
		mutate func(*CreateDAOParams)
	}{
		{"zero threshold", func(p *CreateDAOParams) { p.AdmissionThreshold = 0 }},
		{"threshold above 100", func(p *CreateDAOParams) { p.AdmissionThreshold = 101 }},
		{"zero quorum", func(p *CreateDAOParams) { p.Quorum = 0 }},
		{"quorum above 100", func(p *CreateDAOParams) { p.Quorum = 101 }},
		{"short voting period", func(p *CreateDAOParams) { p.VotingPeriod = models.MinVotingPeriod - 1 }},
		{"empty name", func(p *CreateDAOParams) { p.Name = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			params := validParams()
			tc.mutate(&params)
			_, err := svc.CreateDAO(ctx, params)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestAddFounderMember(t *testing.T) {
	svc := New(NewMemoryStore())
	founder := wallet(0)
	dao, err := svc.CreateDAO(ctxAt(founder, baseTime), validParams())
	require.NoError(t, err)

	m, err := svc.AddFounderMember(ctxAt(founder, baseTime), dao.Address, wallet(1))
	require.NoError(t, err)
	assert.Equal(t, domain.IdentityAddress(wallet(1)), m.MemberIdentity)
	assert.False(t, m.HasNominator)
	assert.True(t, m.IsActive)

	dao, err = svc.GetDAO(context.Background(), dao.Address)
	require.NoError(t, err)
	assert.Equal(t, uint16(1), dao.MemberCount)

	// Same wallet cannot hold two seats.
	_, err = svc.AddFounderMember(ctxAt(founder, baseTime), dao.Address, wallet(1))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))

	// Only the founder hand-picks.
	_, err = svc.AddFounderMember(ctxAt(wallet(1), baseTime), dao.Address, wallet(2))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestNominateCreator(t *testing.T) {
	svc := New(NewMemoryStore())
	dao := newDAOWithMembers(t, svc, 3)
	nominee := wallet(10)

	n, err := svc.NominateCreator(ctxAt(wallet(1), baseTime), dao.Address, nominee, "ships weekly")
	require.NoError(t, err)

	assert.Equal(t, uint64(0), n.ID)
	assert.Equal(t, uint16(3), n.TotalMembersSnapshot)
	assert.Equal(t, baseTime.Unix()+dao.VotingPeriod, n.VotingEndsAt)
	assert.Equal(t, domain.IdentityAddress(nominee), n.NomineeIdentity)

	dao, err = svc.GetDAO(context.Background(), dao.Address)
	require.NoError(t, err)
	assert.Equal(t, uint8(1), dao.PendingNominations)
	assert.Equal(t, uint64(1), dao.NominationNonce)
}

func TestNominateCreator_NonMember(t *testing.T) {
	svc := New(NewMemoryStore())
	dao := newDAOWithMembers(t, svc, 2)

	_, err := svc.NominateCreator(ctxAt(wallet(9), baseTime), dao.Address, wallet(10), "")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))
}

func TestNominateCreator_PendingCap(t *testing.T) {
	svc := New(NewMemoryStore())
	dao := newDAOWithMembers(t, svc, 2)
	ctx := ctxAt(wallet(0), baseTime)

	for i := 0; i < models.MaxPendingNominations; i++ {
		_, err := svc.NominateCreator(ctx, dao.Address, wallet(100+i), "")
		require.NoError(t, err)
	}
	_, err := svc.NominateCreator(ctx, dao.Address, wallet(200), "")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeCapacity))
}

func TestCastVote(t *testing.T) {
	svc := New(NewMemoryStore())
	sink := audit.NewMemorySink()
	svc.audit = sink
	dao := newDAOWithMembers(t, svc, 3)

	n, err := svc.NominateCreator(ctxAt(wallet(0), baseTime), dao.Address, wallet(10), "")
	require.NoError(t, err)

	n, err = svc.CastVote(ctxAt(wallet(1), baseTime.Add(time.Hour)), n.Address, models.VoteAccept, randomSalt(t))
	require.NoError(t, err)
	assert.Equal(t, uint16(1), n.VotesAccept)

	n, err = svc.CastVote(ctxAt(wallet(2), baseTime.Add(time.Hour)), n.Address, models.VoteReject, randomSalt(t))
	require.NoError(t, err)
	assert.Equal(t, uint16(1), n.VotesReject)

	m, err := svc.GetMembership(context.Background(), dao.Address, wallet(1))
	require.NoError(t, err)
	assert.Equal(t, uint64(1), m.VotesCast)

	// Vote events never carry the actor.
	for _, ev := range sink.ByKind(audit.EventVoteCast) {
		assert.True(t, ev.Actor.IsZero())
	}
}

func TestCastVote_DoubleVote(t *testing.T) {
	svc := New(NewMemoryStore())
	dao := newDAOWithMembers(t, svc, 2)

	n, err := svc.NominateCreator(ctxAt(wallet(0), baseTime), dao.Address, wallet(10), "")
	require.NoError(t, err)

	voter := ctxAt(wallet(1), baseTime.Add(time.Hour))
	_, err = svc.CastVote(voter, n.Address, models.VoteAccept, randomSalt(t))
	require.NoError(t, err)

	// A different salt does not allow a second ballot.
	_, err = svc.CastVote(voter, n.Address, models.VoteReject, randomSalt(t))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestCastVote_AfterVotingEnds(t *testing.T) {
	svc := New(NewMemoryStore())
	dao := newDAOWithMembers(t, svc, 2)

	n, err := svc.NominateCreator(ctxAt(wallet(0), baseTime), dao.Address, wallet(10), "")
	require.NoError(t, err)

	late := baseTime.Add(time.Duration(dao.VotingPeriod+1) * time.Second)
	_, err = svc.CastVote(ctxAt(wallet(1), late), n.Address, models.VoteAccept, randomSalt(t))
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func TestApplyResolution_Accepted(t *testing.T) {
	svc := New(NewMemoryStore())
	dao := newDAOWithMembers(t, svc, 10)
	nominee := wallet(10)

	n, err := svc.NominateCreator(ctxAt(wallet(1), baseTime), dao.Address, nominee, "")
	require.NoError(t, err)

	// 6 accept, 2 reject, 2 abstain: 10 of 10 voted (quorum 50% needs 5)
	// and 6/8 decisive = 75% >= 70% threshold.
	during := baseTime.Add(time.Hour)
	for i := 0; i < 6; i++ {
		_, err := svc.CastVote(ctxAt(wallet(i), during), n.Address, models.VoteAccept, randomSalt(t))
		require.NoError(t, err)
	}
	for i := 6; i < 8; i++ {
		_, err := svc.CastVote(ctxAt(wallet(i), during), n.Address, models.VoteReject, randomSalt(t))
		require.NoError(t, err)
	}
	for i := 8; i < 10; i++ {
		_, err := svc.CastVote(ctxAt(wallet(i), during), n.Address, models.VoteAbstain, randomSalt(t))
		require.NoError(t, err)
	}

	after := baseTime.Add(time.Duration(dao.VotingPeriod+1) * time.Second)
	out, err := svc.ApplyResolution(ctxAt(wallet(5), after), n.Address)
	require.NoError(t, err)

	assert.True(t, out.Accepted)
	assert.Equal(t, uint16(11), out.MemberCount)
	assert.Equal(t, domain.IdentityAddress(nominee), out.NomineeIdentity)
	assert.Equal(t, wallet(1), out.NominatorWallet)

	// Nominee is now a member, nominated by wallet(1).
	m, err := svc.GetMembership(context.Background(), dao.Address, nominee)
	require.NoError(t, err)
	assert.True(t, m.HasNominator)
	assert.Equal(t, wallet(1), m.NominatedBy)

	// The nominator's membership records the success.
	nominator, err := svc.GetMembership(context.Background(), dao.Address, wallet(1))
	require.NoError(t, err)
	assert.Equal(t, uint16(1), nominator.SuccessfulNominations)

	got, err := svc.GetDAO(context.Background(), dao.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.TotalAdmitted)
	assert.Equal(t, uint8(0), got.PendingNominations)
}

func TestApplyResolution_QuorumNotReached(t *testing.T) {
	svc := New(NewMemoryStore())
	dao := newDAOWithMembers(t, svc, 10)

	n, err := svc.NominateCreator(ctxAt(wallet(0), baseTime), dao.Address, wallet(10), "")
	require.NoError(t, err)

	// Quorum 50% of 10 needs 5 ballots; only 4 arrive.
	during := baseTime.Add(time.Hour)
	for i := 0; i < 4; i++ {
		_, err := svc.CastVote(ctxAt(wallet(i), during), n.Address, models.VoteAccept, randomSalt(t))
		require.NoError(t, err)
	}

	after := baseTime.Add(time.Duration(dao.VotingPeriod+1) * time.Second)
	_, err = svc.ApplyResolution(ctxAt(wallet(0), after), n.Address)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func TestApplyResolution_AllAbstainRejects(t *testing.T) {
	svc := New(NewMemoryStore())
	dao := newDAOWithMembers(t, svc, 4)

	n, err := svc.NominateCreator(ctxAt(wallet(0), baseTime), dao.Address, wallet(10), "")
	require.NoError(t, err)

	during := baseTime.Add(time.Hour)
	for i := 0; i < 4; i++ {
		_, err := svc.CastVote(ctxAt(wallet(i), during), n.Address, models.VoteAbstain, randomSalt(t))
		require.NoError(t, err)
	}

	after := baseTime.Add(time.Duration(dao.VotingPeriod+1) * time.Second)
	out, err := svc.ApplyResolution(ctxAt(wallet(0), after), n.Address)
	require.NoError(t, err)
	assert.False(t, out.Accepted)

	got, err := svc.GetDAO(context.Background(), dao.Address)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), got.TotalRejected)
	assert.Equal(t, uint16(4), got.MemberCount)
}

func TestApplyResolution_PendingCountSaturates(t *testing.T) {
	store := NewMemoryStore()
	svc := New(store)
	founder := wallet(0)
	dao := newDAOWithMembers(t, svc, 2)

	n, err := svc.NominateCreator(ctxAt(founder, baseTime), dao.Address, wallet(10), "")
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err := svc.CastVote(ctxAt(wallet(i), baseTime.Add(time.Hour)), n.Address, models.VoteAccept, randomSalt(t))
		require.NoError(t, err)
	}

	// A drifted counter must not wrap the pending count on resolution.
	drifted, err := store.GetDAO(context.Background(), dao.Address)
	require.NoError(t, err)
	drifted.PendingNominations = 0
	require.NoError(t, store.PutDAO(context.Background(), drifted))

	after := baseTime.Add(time.Duration(dao.VotingPeriod+1) * time.Second)
	_, err = svc.ApplyResolution(ctxAt(founder, after), n.Address)
	require.NoError(t, err)

	got, err := svc.GetDAO(context.Background(), dao.Address)
	require.NoError(t, err)
	assert.Equal(t, uint8(0), got.PendingNominations)
}

func TestApplyResolution_Idempotence(t *testing.T) {
	svc := New(NewMemoryStore())
	dao := newDAOWithMembers(t, svc, 2)

	n, err := svc.NominateCreator(ctxAt(wallet(0), baseTime), dao.Address, wallet(10), "")
	require.NoError(t, err)

	during := baseTime.Add(time.Hour)
	for i := 0; i < 2; i++ {
		_, err := svc.CastVote(ctxAt(wallet(i), during), n.Address, models.VoteAccept, randomSalt(t))
		require.NoError(t, err)
	}

	after := baseTime.Add(time.Duration(dao.VotingPeriod+1) * time.Second)
	_, err = svc.ApplyResolution(ctxAt(wallet(0), after), n.Address)
	require.NoError(t, err)

	_, err = svc.ApplyResolution(ctxAt(wallet(0), after), n.Address)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}

func TestApplyResolution_BeforeVotingEnds(t *testing.T) {
	svc := New(NewMemoryStore())
	dao := newDAOWithMembers(t, svc, 2)

	n, err := svc.NominateCreator(ctxAt(wallet(0), baseTime), dao.Address, wallet(10), "")
	require.NoError(t, err)

	during := baseTime.Add(time.Hour)
	for i := 0; i < 2; i++ {
		_, err := svc.CastVote(ctxAt(wallet(i), during), n.Address, models.VoteAccept, randomSalt(t))
		require.NoError(t, err)
	}

	_, err = svc.ApplyResolution(ctxAt(wallet(0), during), n.Address)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidState))
}
