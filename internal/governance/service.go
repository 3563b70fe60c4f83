// Package governance implements peer-voted DAO admission: DAO creation,
// founder hand-picking, nominations, and commitment-hashed voting.
package governance

import (
	"context"
	"errors"
	"log/slog"

	"sovereign/internal/governance/metrics"
	"sovereign/internal/governance/models"
	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
	"sovereign/pkg/platform/audit"
	"sovereign/pkg/platform/sentinel"
	"sovereign/pkg/requestcontext"
)

// AnonymityVerifier validates a ballot's anonymity proof before it is
// tallied. The default accepts everything; a ZK-backed implementation can be
// plugged in without touching the voting path.
type AnonymityVerifier interface {
	VerifyBallot(ctx context.Context, nomination, voter domain.Address, salt [32]byte) error
}

type acceptAllVerifier struct{}

func (acceptAllVerifier) VerifyBallot(context.Context, domain.Address, domain.Address, [32]byte) error {
	return nil
}

// Service owns the governance records.
type Service struct {
	store    Store
	verifier AnonymityVerifier
	audit    audit.Publisher
	logger   *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(p audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

func WithAnonymityVerifier(v AnonymityVerifier) Option {
	return func(s *Service) { s.verifier = v }
}

func New(store Store, opts ...Option) *Service {
	s := &Service{
		store:    store,
		verifier: acceptAllVerifier{},
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateDAOParams are the founder-chosen parameters of a new DAO.
type CreateDAOParams struct {
	Name               string
	Description        string
	ContentType        models.ContentType
	StyleTag           string
	RegionCode         uint16
	AdmissionThreshold uint8
	VotingPeriod       int64
	Quorum             uint8
}

func (p CreateDAOParams) validate() error {
	switch {
	case p.Name == "" || len(p.Name) > models.MaxNameLen:
		return dErrors.Newf(dErrors.CodeValidation, "name must be 1-%d bytes", models.MaxNameLen)
	case len(p.Description) > models.MaxDescriptionLen:
		return dErrors.Newf(dErrors.CodeValidation, "description must be at most %d bytes", models.MaxDescriptionLen)
	case len(p.StyleTag) > models.MaxStyleTagLen:
		return dErrors.Newf(dErrors.CodeValidation, "style tag must be at most %d bytes", models.MaxStyleTagLen)
	case p.AdmissionThreshold == 0 || p.AdmissionThreshold > 100:
		return dErrors.New(dErrors.CodeValidation, "admission threshold must be between 1 and 100")
	case p.Quorum == 0 || p.Quorum > 100:
		return dErrors.New(dErrors.CodeValidation, "quorum must be between 1 and 100")
	case p.VotingPeriod < models.MinVotingPeriod:
		return dErrors.Newf(dErrors.CodeValidation, "voting period must be at least %d seconds", models.MinVotingPeriod)
	}
	return nil
}

// CreateDAO registers a new DAO founded by the caller. The founder joins by
// adding themselves through AddFounderMember like any other initial member.
func (s *Service) CreateDAO(ctx context.Context, params CreateDAOParams) (*models.DAO, error) {
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller identity required")
	}
	if err := params.validate(); err != nil {
		return nil, err
	}

	id, err := s.store.NextDAOID(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "allocate dao id")
	}

	dao := &models.DAO{
		Address:            domain.DAOAddress(caller, id),
		ID:                 id,
		Name:               params.Name,
		Description:        params.Description,
		ContentType:        params.ContentType,
		StyleTag:           params.StyleTag,
		RegionCode:         params.RegionCode,
		Founder:            caller,
		CreatedAt:          requestcontext.Now(ctx).Unix(),
		AdmissionThreshold: params.AdmissionThreshold,
		VotingPeriod:       params.VotingPeriod,
		Quorum:             params.Quorum,
		IsActive:           true,
	}
	if err := s.store.CreateDAO(ctx, dao); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "dao already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create dao")
	}

	metrics.DAOsCreated.Inc()
	_ = audit.Emit(ctx, s.audit, audit.Event{
		Kind:      audit.EventDAOCreated,
		Actor:     caller,
		DAO:       dao.Address,
		Detail:    dao.Name,
		RequestID: requestcontext.RequestID(ctx),
	})

	s.logger.InfoContext(ctx, "dao created",
		"dao", dao.Address, "dao_id", dao.ID, "name", dao.Name, "founder", caller)
	return dao, nil
}

// GetDAO loads a DAO record.
func (s *Service) GetDAO(ctx context.Context, addr domain.Address) (*models.DAO, error) {
	dao, err := s.store.GetDAO(ctx, addr)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "dao not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "get dao")
	}
	return dao, nil
}

// VerifyActiveDAO confirms the address names an active DAO. The market
// service uses it before opening admission markets.
func (s *Service) VerifyActiveDAO(ctx context.Context, addr domain.Address) error {
	dao, err := s.GetDAO(ctx, addr)
	if err != nil {
		return err
	}
	if !dao.IsActive {
		return dErrors.New(dErrors.CodeInvalidState, "dao is not active")
	}
	return nil
}

// AddFounderMember hand-picks an initial member. Only the founder may do
// this, and only while the DAO stays under the member ceiling.
func (s *Service) AddFounderMember(ctx context.Context, daoAddr, memberWallet domain.Address) (*models.Membership, error) {
	if memberWallet.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "member wallet must not be the zero address")
	}

	dao, err := s.GetDAO(ctx, daoAddr)
	if err != nil {
		return nil, err
	}
	caller := requestcontext.Caller(ctx)
	if caller != dao.Founder {
		return nil, dErrors.New(dErrors.CodeForbidden, "only the founder may hand-pick members")
	}
	if !dao.IsActive {
		return nil, dErrors.New(dErrors.CodeInvalidState, "dao is not active")
	}
	if dao.MemberCount >= models.MaxDAOMembers {
		return nil, dErrors.New(dErrors.CodeCapacity, "dao has reached the member ceiling")
	}

	m := &models.Membership{
		Address:        domain.MembershipAddress(daoAddr, memberWallet),
		DAO:            daoAddr,
		MemberIdentity: domain.IdentityAddress(memberWallet),
		MemberWallet:   memberWallet,
		AdmittedAt:     requestcontext.Now(ctx).Unix(),
		IsActive:       true,
	}
	if err := s.store.CreateMembership(ctx, m); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "wallet is already a member")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create membership")
	}

	dao.MemberCount++
	if err := s.store.PutDAO(ctx, dao); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store dao")
	}

	metrics.MembersAdded.WithLabelValues("founder").Inc()
	_ = audit.Emit(ctx, s.audit, audit.Event{
		Kind:      audit.EventFounderMemberAdded,
		Actor:     caller,
		DAO:       daoAddr,
		Identity:  m.MemberIdentity,
		RequestID: requestcontext.RequestID(ctx),
	})

	s.logger.InfoContext(ctx, "founder member added",
		"dao", daoAddr, "wallet", memberWallet, "member_count", dao.MemberCount)
	return m, nil
}

// NominateCreator opens a nomination for a creator's admission. The caller
// must be an active member; the electorate snapshot is taken now.
func (s *Service) NominateCreator(ctx context.Context, daoAddr, nomineeWallet domain.Address, reason string) (*models.Nomination, error) {
	if nomineeWallet.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "nominee wallet must not be the zero address")
	}
	if len(reason) > models.MaxReasonLen {
		return nil, dErrors.Newf(dErrors.CodeValidation, "reason must be at most %d bytes", models.MaxReasonLen)
	}

	dao, err := s.GetDAO(ctx, daoAddr)
	if err != nil {
		return nil, err
	}
	if !dao.IsActive {
		return nil, dErrors.New(dErrors.CodeInvalidState, "dao is not active")
	}
	if dao.PendingNominations >= models.MaxPendingNominations {
		return nil, dErrors.New(dErrors.CodeCapacity, "dao has too many pending nominations")
	}

	caller := requestcontext.Caller(ctx)
	if _, err := s.activeMembership(ctx, daoAddr, caller); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx).Unix()
	n := &models.Nomination{
		Address:              domain.NominationAddress(daoAddr, dao.NominationNonce),
		DAO:                  daoAddr,
		ID:                   dao.NominationNonce,
		NomineeIdentity:      domain.IdentityAddress(nomineeWallet),
		NomineeWallet:        nomineeWallet,
		Nominator:            caller,
		Reason:               reason,
		CreatedAt:            now,
		VotingEndsAt:         now + dao.VotingPeriod,
		TotalMembersSnapshot: dao.MemberCount,
	}
	if err := s.store.CreateNomination(ctx, n); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "nomination already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create nomination")
	}

	dao.NominationNonce++
	dao.PendingNominations++
	if err := s.store.PutDAO(ctx, dao); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store dao")
	}

	metrics.Nominations.Inc()
	_ = audit.Emit(ctx, s.audit, audit.Event{
		Kind:       audit.EventCreatorNominated,
		Actor:      caller,
		DAO:        daoAddr,
		Nomination: n.Address,
		Identity:   n.NomineeIdentity,
		RequestID:  requestcontext.RequestID(ctx),
	})

	s.logger.InfoContext(ctx, "creator nominated",
		"dao", daoAddr,
		"nomination", n.Address,
		"nomination_id", n.ID,
		"nominee", nomineeWallet,
		"voting_ends_at", n.VotingEndsAt)
	return n, nil
}

// GetNomination loads a nomination record.
func (s *Service) GetNomination(ctx context.Context, addr domain.Address) (*models.Nomination, error) {
	n, err := s.store.GetNomination(ctx, addr)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "nomination not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "get nomination")
	}
	return n, nil
}

// GetMembership loads the membership record for a wallet in a DAO.
func (s *Service) GetMembership(ctx context.Context, daoAddr, wallet domain.Address) (*models.Membership, error) {
	m, err := s.store.GetMembership(ctx, domain.MembershipAddress(daoAddr, wallet))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "membership not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "get membership")
	}
	return m, nil
}

// CastVote tallies the caller's ballot on an open nomination. The ballot is
// stored under a salted commitment so the record proves participation
// without naming how each member voted.
func (s *Service) CastVote(ctx context.Context, nominationAddr domain.Address, choice models.VoteChoice, salt [32]byte) (*models.Nomination, error) {
	if choice >= 3 {
		return nil, dErrors.New(dErrors.CodeValidation, "unknown vote choice")
	}

	n, err := s.GetNomination(ctx, nominationAddr)
	if err != nil {
		return nil, err
	}
	if n.IsResolved {
		return nil, dErrors.New(dErrors.CodeInvalidState, "nomination is already resolved")
	}

	dao, err := s.GetDAO(ctx, n.DAO)
	if err != nil {
		return nil, err
	}
	if !dao.IsActive {
		return nil, dErrors.New(dErrors.CodeInvalidState, "dao is not active")
	}

	now := requestcontext.Now(ctx).Unix()
	if now > n.VotingEndsAt {
		return nil, dErrors.New(dErrors.CodeInvalidState, "voting period has ended")
	}

	caller := requestcontext.Caller(ctx)
	membership, err := s.activeMembership(ctx, n.DAO, caller)
	if err != nil {
		return nil, err
	}
	if err := s.verifier.VerifyBallot(ctx, nominationAddr, caller, salt); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeForbidden, "ballot verification failed")
	}

	record := &models.VoteRecord{
		Address:    domain.VoteRecordAddress(nominationAddr, caller),
		Nomination: nominationAddr,
		VoterHash:  models.VoterCommitment(caller, n.ID, salt),
		Vote:       choice,
		VotedAt:    now,
	}
	if err := s.store.CreateVoteRecord(ctx, record); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "member has already voted on this nomination")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create vote record")
	}

	n.Tally(choice)
	if err := s.store.PutNomination(ctx, n); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store nomination")
	}

	membership.VotesCast++
	if err := s.store.PutMembership(ctx, membership); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store membership")
	}

	metrics.VotesCast.WithLabelValues(choice.String()).Inc()
	_ = audit.Emit(ctx, s.audit, audit.Event{
		Kind:       audit.EventVoteCast,
		DAO:        n.DAO,
		Nomination: nominationAddr,
		RequestID:  requestcontext.RequestID(ctx),
	})

	s.logger.InfoContext(ctx, "vote cast",
		"nomination", nominationAddr,
		"accept", n.VotesAccept,
		"reject", n.VotesReject,
		"abstain", n.VotesAbstain)
	return n, nil
}

func (s *Service) activeMembership(ctx context.Context, daoAddr, wallet domain.Address) (*models.Membership, error) {
	m, err := s.store.GetMembership(ctx, domain.MembershipAddress(daoAddr, wallet))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeForbidden, "caller is not a member of this dao")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "get membership")
	}
	if !m.IsActive {
		return nil, dErrors.New(dErrors.CodeForbidden, "caller's membership is not active")
	}
	return m, nil
}
