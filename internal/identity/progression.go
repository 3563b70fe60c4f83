package identity

import (
	"context"
	"errors"

	"sovereign/internal/identity/models"
	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
	"sovereign/pkg/platform/sentinel"
	"sovereign/pkg/requestcontext"
)

// Creator progression entry points. These are driven by the resolution
// coordinator and the market service, not by HTTP callers, so they skip the
// per-dimension authority check: governance outcomes are the creator
// dimension's authority.

// RecordDAOAcceptance credits a creator identity with one DAO acceptance and
// the prestige bonus for the admitting DAO's size, then refreshes the
// creator dimension.
func (s *Service) RecordDAOAcceptance(ctx context.Context, identityAddr domain.Address, memberCount uint16) error {
	now := requestcontext.Now(ctx).Unix()
	details, err := s.creatorDetails(ctx, identityAddr, now)
	if err != nil {
		return err
	}
	details.RecordAcceptance(memberCount, now)
	return s.commitCreator(ctx, identityAddr, details)
}

// RecordNominationOutcome updates a nominator's accuracy tally after the
// nomination they sponsored resolves.
func (s *Service) RecordNominationOutcome(ctx context.Context, identityAddr domain.Address, accepted bool) error {
	now := requestcontext.Now(ctx).Unix()
	details, err := s.creatorDetails(ctx, identityAddr, now)
	if err != nil {
		return err
	}
	details.RecordNominationOutcome(accepted, now)
	return s.commitCreator(ctx, identityAddr, details)
}

// RecordPrediction folds one settled market prediction into a predictor's
// creator detail record.
func (s *Service) RecordPrediction(ctx context.Context, identityAddr domain.Address, correct bool, pnlBps int32) error {
	now := requestcontext.Now(ctx).Unix()
	details, err := s.creatorDetails(ctx, identityAddr, now)
	if err != nil {
		return err
	}
	details.RecordPrediction(correct, pnlBps, now)
	return s.commitCreator(ctx, identityAddr, details)
}

// RecordBurn attributes a market settlement burn to the subject creator.
// The burn feeds the detail record only, so the identity score is untouched
// and the record is written directly.
func (s *Service) RecordBurn(ctx context.Context, identityAddr domain.Address, amount uint64) error {
	now := requestcontext.Now(ctx).Unix()
	details, err := s.creatorDetails(ctx, identityAddr, now)
	if err != nil {
		return err
	}
	details.RecordBurn(amount, now)
	if err := s.store.PutCreatorScore(ctx, details); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "store creator score")
	}
	return nil
}

// RecordMarketCreated counts one market toward a predictor's surfacing
// record.
func (s *Service) RecordMarketCreated(ctx context.Context, predictor domain.Address) error {
	now := requestcontext.Now(ctx).Unix()
	sc, err := s.surfacingScore(ctx, predictor, now)
	if err != nil {
		return err
	}
	sc.RecordMarketCreated(now)
	if err := s.store.PutSurfacingScore(ctx, sc); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "store surfacing score")
	}
	return nil
}

// RecordSurfacedAcceptance credits a market creator whose subject was
// admitted, folding the realized profit into the scout score.
func (s *Service) RecordSurfacedAcceptance(ctx context.Context, predictor domain.Address, profit int64) error {
	now := requestcontext.Now(ctx).Unix()
	sc, err := s.surfacingScore(ctx, predictor, now)
	if err != nil {
		return err
	}
	sc.RecordSurfacedAcceptance(profit, now)
	if err := s.store.PutSurfacingScore(ctx, sc); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "store surfacing score")
	}
	return nil
}

func (s *Service) creatorDetails(ctx context.Context, identityAddr domain.Address, now int64) (*models.CreatorScoreDetails, error) {
	details, err := s.store.GetCreatorScore(ctx, domain.CreatorScoreAddress(identityAddr))
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.NewCreatorScoreDetails(identityAddr, now), nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "get creator score")
	}
	return details, nil
}

func (s *Service) surfacingScore(ctx context.Context, predictor domain.Address, now int64) (*models.SurfacingScore, error) {
	sc, err := s.store.GetSurfacingScore(ctx, domain.SurfacingScoreAddress(predictor))
	if errors.Is(err, sentinel.ErrNotFound) {
		return models.NewSurfacingScore(predictor, now), nil
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "get surfacing score")
	}
	return sc, nil
}

func (s *Service) commitCreator(ctx context.Context, identityAddr domain.Address, details *models.CreatorScoreDetails) error {
	// Load the identity before writing anything so a wallet without one
	// leaves no dangling detail record.
	id, err := s.GetIdentity(ctx, identityAddr)
	if err != nil {
		return err
	}
	if err := s.store.PutCreatorScore(ctx, details); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "store creator score")
	}
	_, err = s.commitScore(ctx, id, models.DimensionCreator, details.CreatorScore(), requestcontext.Caller(ctx))
	return err
}
