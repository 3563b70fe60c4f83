package governance

import (
	"context"

	"sovereign/internal/governance/metrics"
	"sovereign/internal/governance/models"
	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
	"sovereign/pkg/platform/audit"
	"sovereign/pkg/requestcontext"
)

// Outcome is the result of resolving a nomination, handed to the resolution
// coordinator so it can fan out into market settlement and score updates.
type Outcome struct {
	Accepted bool

	DAO         domain.Address
	MemberCount uint16

	NomineeIdentity domain.Address
	NomineeWallet   domain.Address

	NominatorWallet   domain.Address
	NominatorIdentity domain.Address
}

// CheckResolvable verifies every resolution precondition without writing
// anything: DAO active, nomination open, voting window closed, quorum met,
// nominator still a member, and (on an accepting tally) the nominee not a
// member already. The coordinator calls this before it touches any record.
func (s *Service) CheckResolvable(ctx context.Context, nominationAddr domain.Address) (*models.DAO, *models.Nomination, error) {
	n, err := s.GetNomination(ctx, nominationAddr)
	if err != nil {
		return nil, nil, err
	}
	if n.IsResolved {
		return nil, nil, dErrors.New(dErrors.CodeInvalidState, "nomination is already resolved")
	}

	dao, err := s.GetDAO(ctx, n.DAO)
	if err != nil {
		return nil, nil, err
	}
	if !dao.IsActive {
		return nil, nil, dErrors.New(dErrors.CodeInvalidState, "dao is not active")
	}
	if !n.VotingEnded(requestcontext.Now(ctx).Unix()) {
		return nil, nil, dErrors.New(dErrors.CodeInvalidState, "voting period has not ended")
	}
	if !n.HasQuorum(dao.Quorum) {
		return nil, nil, dErrors.New(dErrors.CodeInvalidState, "quorum not reached")
	}
	if _, err := s.GetMembership(ctx, dao.Address, n.Nominator); err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return nil, nil, dErrors.New(dErrors.CodeInvalidState, "nominator is no longer a member")
		}
		return nil, nil, err
	}
	if n.MeetsThreshold(dao.AdmissionThreshold) {
		_, err := s.GetMembership(ctx, dao.Address, n.NomineeWallet)
		switch {
		case err == nil:
			return nil, nil, dErrors.New(dErrors.CodeConflict, "nominee is already a member")
		case !dErrors.HasCode(err, dErrors.CodeNotFound):
			return nil, nil, err
		}
	}
	return dao, n, nil
}

// ApplyResolution commits the governance side of a resolution: marks the
// nomination resolved, updates DAO counters, admits the nominee on
// acceptance, and tracks the nominator's record. The coordinator runs it
// inside the resolution transaction after CheckResolvable passed.
func (s *Service) ApplyResolution(ctx context.Context, nominationAddr domain.Address) (*Outcome, error) {
	dao, n, err := s.CheckResolvable(ctx, nominationAddr)
	if err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx).Unix()
	accepted := n.MeetsThreshold(dao.AdmissionThreshold)

	if dao.PendingNominations > 0 {
		dao.PendingNominations--
	}
	out := &Outcome{
		Accepted:        accepted,
		DAO:             dao.Address,
		NomineeIdentity: n.NomineeIdentity,
		NomineeWallet:   n.NomineeWallet,
		NominatorWallet: n.Nominator,
	}

	nominatorMembership, err := s.GetMembership(ctx, dao.Address, n.Nominator)
	if err != nil {
		return nil, err
	}
	out.NominatorIdentity = nominatorMembership.MemberIdentity

	if accepted {
		dao.TotalAdmitted++
		dao.MemberCount++

		m := &models.Membership{
			Address:        domain.MembershipAddress(dao.Address, n.NomineeWallet),
			DAO:            dao.Address,
			MemberIdentity: n.NomineeIdentity,
			MemberWallet:   n.NomineeWallet,
			AdmittedAt:     now,
			NominatedBy:    n.Nominator,
			HasNominator:   true,
			IsActive:       true,
		}
		if err := s.store.CreateMembership(ctx, m); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create membership")
		}

		nominatorMembership.SuccessfulNominations++
		if err := s.store.PutMembership(ctx, nominatorMembership); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store membership")
		}

		metrics.MembersAdded.WithLabelValues("admission").Inc()
		if dao.ShouldConsiderSplit() {
			s.logger.WarnContext(ctx, "dao exceeds the advisory member ceiling",
				"dao", dao.Address, "member_count", dao.MemberCount)
		}
	} else {
		dao.TotalRejected++
	}

	if err := s.store.PutDAO(ctx, dao); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store dao")
	}
	out.MemberCount = dao.MemberCount

	// The nomination flips to resolved only after every fallible effect,
	// so a failed resolution cannot strand it closed with no effects.
	n.IsResolved = true
	n.WasAccepted = accepted
	n.ResolvedAt = now
	n.HasResolvedAt = true
	if err := s.store.PutNomination(ctx, n); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store nomination")
	}

	outcome := "rejected"
	if accepted {
		outcome = "accepted"
	}
	metrics.Resolutions.WithLabelValues(outcome).Inc()
	_ = audit.Emit(ctx, s.audit, audit.Event{
		Kind:       audit.EventNominationResolved,
		DAO:        dao.Address,
		Nomination: nominationAddr,
		Identity:   n.NomineeIdentity,
		Detail:     outcome,
		RequestID:  requestcontext.RequestID(ctx),
	})

	s.logger.InfoContext(ctx, "nomination resolved",
		"nomination", nominationAddr,
		"outcome", outcome,
		"accept", n.VotesAccept,
		"reject", n.VotesReject,
		"abstain", n.VotesAbstain)
	return out, nil
}
