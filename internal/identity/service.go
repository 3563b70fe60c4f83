// Package identity implements the reputation identity registry: one record
// per wallet carrying five dimension scores, a capability table of score
// authorities, and the derived composite score and tier.
package identity

import (
	"context"
	"errors"
	"log/slog"

	"sovereign/internal/identity/metrics"
	"sovereign/internal/identity/models"
	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
	"sovereign/pkg/platform/audit"
	"sovereign/pkg/platform/sentinel"
	"sovereign/pkg/requestcontext"
)

// Service owns identity records and their score detail records.
type Service struct {
	store       Store
	leaderboard Leaderboard
	audit       audit.Publisher
	logger      *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(p audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

func New(store Store, leaderboard Leaderboard, opts ...Option) *Service {
	s := &Service{
		store:       store,
		leaderboard: leaderboard,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CreateIdentity registers the caller's identity record. Every authority
// starts as the owner; authorities are delegated afterwards per dimension.
func (s *Service) CreateIdentity(ctx context.Context) (*models.Identity, error) {
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller identity required")
	}

	id := models.NewIdentity(caller, requestcontext.Now(ctx).Unix())
	if err := s.store.CreateIdentity(ctx, id); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "identity already exists for this wallet")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create identity")
	}

	if err := s.leaderboard.SetScore(ctx, id.Address, id.CompositeScore); err != nil {
		s.logger.WarnContext(ctx, "leaderboard update failed", "error", err)
	}

	metrics.IdentitiesCreated.Inc()
	_ = audit.Emit(ctx, s.audit, audit.Event{
		Kind:      audit.EventIdentityCreated,
		Actor:     caller,
		Identity:  id.Address,
		RequestID: requestcontext.RequestID(ctx),
	})

	s.logger.InfoContext(ctx, "identity created",
		"identity", id.Address, "owner", caller)
	return id, nil
}

// GetIdentity loads an identity record by its derived address.
func (s *Service) GetIdentity(ctx context.Context, addr domain.Address) (*models.Identity, error) {
	id, err := s.store.GetIdentity(ctx, addr)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "identity not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "get identity")
	}
	return id, nil
}

// SetAuthority reassigns the write authority for one dimension. Only the
// identity owner may delegate, and never to the zero address.
func (s *Service) SetAuthority(ctx context.Context, identityAddr domain.Address, dim models.Dimension, newAuthority domain.Address) (*models.Identity, error) {
	if newAuthority.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "authority must not be the zero address")
	}

	id, err := s.GetIdentity(ctx, identityAddr)
	if err != nil {
		return nil, err
	}
	caller := requestcontext.Caller(ctx)
	if caller != id.Owner {
		return nil, dErrors.New(dErrors.CodeForbidden, "only the identity owner may delegate authorities")
	}

	id.Authorities[dim] = newAuthority
	id.LastUpdated = requestcontext.Now(ctx).Unix()
	if err := s.store.PutIdentity(ctx, id); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store identity")
	}

	metrics.AuthorityChanges.Inc()
	_ = audit.Emit(ctx, s.audit, audit.Event{
		Kind:      audit.EventAuthorityChanged,
		Actor:     caller,
		Identity:  id.Address,
		Detail:    dim.String(),
		RequestID: requestcontext.RequestID(ctx),
	})
	return id, nil
}

// UpdateScore writes one dimension score directly. The caller must hold the
// authority for that dimension; composite and tier are recomputed in the
// same write.
func (s *Service) UpdateScore(ctx context.Context, identityAddr domain.Address, dim models.Dimension, scoreBps uint16) (*models.Identity, error) {
	if scoreBps > 10000 {
		return nil, dErrors.New(dErrors.CodeValidation, "score must not exceed 10000")
	}

	id, err := s.GetIdentity(ctx, identityAddr)
	if err != nil {
		return nil, err
	}
	caller := requestcontext.Caller(ctx)
	if caller != id.Authority(dim) {
		return nil, dErrors.Newf(dErrors.CodeForbidden, "caller is not the %s authority", dim)
	}

	return s.commitScore(ctx, id, dim, scoreBps, caller)
}

// UpdateTradingDetails reports raw trading metrics. The trading score is
// derived from the detail record rather than asserted by the authority.
func (s *Service) UpdateTradingDetails(ctx context.Context, identityAddr domain.Address, in models.TradingScoreDetails) (*models.Identity, error) {
	id, err := s.GetIdentity(ctx, identityAddr)
	if err != nil {
		return nil, err
	}
	caller := requestcontext.Caller(ctx)
	if caller != id.Authority(models.DimensionTrading) {
		return nil, dErrors.New(dErrors.CodeForbidden, "caller is not the trading authority")
	}
	if in.WinRateBps > 10000 || in.MaxDrawdownBps > 10000 {
		return nil, dErrors.New(dErrors.CodeValidation, "rate fields must not exceed 10000")
	}

	now := requestcontext.Now(ctx).Unix()
	details := models.NewTradingScoreDetails(identityAddr, now)
	details.WinRateBps = in.WinRateBps
	details.ProfitFactorBps = in.ProfitFactorBps
	details.TotalTrades = in.TotalTrades
	details.TotalVolume = in.TotalVolume
	details.MaxDrawdownBps = in.MaxDrawdownBps
	if err := s.store.PutTradingDetails(ctx, details); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store trading details")
	}

	return s.commitScore(ctx, id, models.DimensionTrading, details.Score(), caller)
}

// UpdateCivicDetails reports raw civic metrics and derives the civic score.
func (s *Service) UpdateCivicDetails(ctx context.Context, identityAddr domain.Address, in models.CivicScoreDetails) (*models.Identity, error) {
	id, err := s.GetIdentity(ctx, identityAddr)
	if err != nil {
		return nil, err
	}
	caller := requestcontext.Caller(ctx)
	if caller != id.Authority(models.DimensionCivic) {
		return nil, dErrors.New(dErrors.CodeForbidden, "caller is not the civic authority")
	}
	if in.PredictionAccuracyBps > 10000 || in.CommunityTrust > 10000 {
		return nil, dErrors.New(dErrors.CodeValidation, "rate fields must not exceed 10000")
	}

	now := requestcontext.Now(ctx).Unix()
	details := models.NewCivicScoreDetails(identityAddr, now)
	details.ProblemsSolved = in.ProblemsSolved
	details.PredictionAccuracyBps = in.PredictionAccuracyBps
	details.DirectionsProposed = in.DirectionsProposed
	details.DirectionsWon = in.DirectionsWon
	details.CurrentStreak = in.CurrentStreak
	details.CommunityTrust = in.CommunityTrust
	if err := s.store.PutCivicDetails(ctx, details); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store civic details")
	}

	return s.commitScore(ctx, id, models.DimensionCivic, details.Score(), caller)
}

func (s *Service) commitScore(ctx context.Context, id *models.Identity, dim models.Dimension, scoreBps uint16, actor domain.Address) (*models.Identity, error) {
	id.SetScore(dim, scoreBps, requestcontext.Now(ctx).Unix())
	if err := s.store.PutIdentity(ctx, id); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store identity")
	}
	if err := s.leaderboard.SetScore(ctx, id.Address, id.CompositeScore); err != nil {
		s.logger.WarnContext(ctx, "leaderboard update failed", "error", err)
	}

	metrics.ScoreUpdates.WithLabelValues(dim.String()).Inc()
	metrics.CompositeScores.Observe(float64(id.CompositeScore))
	_ = audit.Emit(ctx, s.audit, audit.Event{
		Kind:      audit.EventScoreUpdated,
		Actor:     actor,
		Identity:  id.Address,
		Amount:    uint64(scoreBps),
		Detail:    dim.String(),
		RequestID: requestcontext.RequestID(ctx),
	})

	s.logger.InfoContext(ctx, "score updated",
		"identity", id.Address,
		"dimension", dim.String(),
		"score", scoreBps,
		"composite", id.CompositeScore,
		"tier", id.Tier)
	return id, nil
}

// Leaderboard returns the top n identities by composite score.
func (s *Service) Leaderboard(ctx context.Context, n int64) ([]LeaderboardEntry, error) {
	entries, err := s.leaderboard.Top(ctx, n)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "leaderboard")
	}
	return entries, nil
}

// GetCreatorScore loads the creator detail record for an identity.
func (s *Service) GetCreatorScore(ctx context.Context, identityAddr domain.Address) (*models.CreatorScoreDetails, error) {
	details, err := s.store.GetCreatorScore(ctx, domain.CreatorScoreAddress(identityAddr))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "creator score not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "get creator score")
	}
	return details, nil
}

// GetSurfacingScore loads the surfacing record for a predictor wallet.
func (s *Service) GetSurfacingScore(ctx context.Context, predictor domain.Address) (*models.SurfacingScore, error) {
	sc, err := s.store.GetSurfacingScore(ctx, domain.SurfacingScoreAddress(predictor))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "surfacing score not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "get surfacing score")
	}
	return sc, nil
}
