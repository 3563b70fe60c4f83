// Package resolution coordinates the cross-engine effects of a nomination
// resolution: the governance outcome, the admission market settlement, and
// the reputation updates land together or not at all.
package resolution

import (
	"context"
	"log/slog"

	"sovereign/internal/governance"
	govmodels "sovereign/internal/governance/models"
	marketmodels "sovereign/internal/market/models"
	"sovereign/internal/resolution/metrics"
	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
	"sovereign/pkg/platform/tx"
)

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

// GovernanceEngine is the governance side of a resolution.
type GovernanceEngine interface {
	CheckResolvable(ctx context.Context, nominationAddr domain.Address) (*govmodels.DAO, *govmodels.Nomination, error)
	ApplyResolution(ctx context.Context, nominationAddr domain.Address) (*governance.Outcome, error)
}

// MarketEngine settles the admission market tied to a nomination.
type MarketEngine interface {
	CanSettle(ctx context.Context, marketAddr, daoAddr, creatorIdentity domain.Address) error
	Settle(ctx context.Context, marketAddr, daoAddr, nominationAddr, creatorIdentity domain.Address, accepted bool) (*marketmodels.Market, error)
}

// ScoreEngine folds the outcome into the nominee's and nominator's records.
// Identities are optional, so not-found coded errors are skipped.
type ScoreEngine interface {
	RecordDAOAcceptance(ctx context.Context, identityAddr domain.Address, memberCount uint16) error
	RecordNominationOutcome(ctx context.Context, identityAddr domain.Address, accepted bool) error
}

// Service is the resolution coordinator.
type Service struct {
	governance GovernanceEngine
	markets    MarketEngine
	scores     ScoreEngine
	runner     tx.Runner
	logger     *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func New(gov GovernanceEngine, markets MarketEngine, scores ScoreEngine, runner tx.Runner, opts ...Option) *Service {
	s := &Service{
		governance: gov,
		markets:    markets,
		scores:     scores,
		runner:     runner,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Result is everything one resolution run changed.
type Result struct {
	Outcome *governance.Outcome
	// Market is the settled market, nil when the nomination had none.
	Market *marketmodels.Market
}

// Resolve runs a full resolution. Every precondition across both engines is
// checked before the first write, then the writes run in one transaction, so
// a revert can never leave the vote resolved but the market open. marketAddr
// is nil for nominations nobody opened a market on.
func (s *Service) Resolve(ctx context.Context, nominationAddr domain.Address, marketAddr *domain.Address) (*Result, error) {
	_, n, err := s.governance.CheckResolvable(ctx, nominationAddr)
	if err != nil {
		metrics.PreconditionFailures.Inc()
		return nil, err
	}
	if marketAddr != nil {
		if err := s.markets.CanSettle(ctx, *marketAddr, n.DAO, n.NomineeIdentity); err != nil {
			metrics.PreconditionFailures.Inc()
			return nil, err
		}
	}

	res := &Result{}
	err = s.runner.RunInTx(ctx, func(ctx context.Context) error {
		out, err := s.governance.ApplyResolution(ctx, nominationAddr)
		if err != nil {
			return err
		}
		res.Outcome = out

		if marketAddr != nil {
			m, err := s.markets.Settle(ctx, *marketAddr, out.DAO, nominationAddr, out.NomineeIdentity, out.Accepted)
			if err != nil {
				return err
			}
			res.Market = m
		}

		if out.Accepted {
			if err := s.recordScore(ctx, func(ctx context.Context) error {
				return s.scores.RecordDAOAcceptance(ctx, out.NomineeIdentity, out.MemberCount)
			}); err != nil {
				return err
			}
		}
		return s.recordScore(ctx, func(ctx context.Context) error {
			return s.scores.RecordNominationOutcome(ctx, out.NominatorIdentity, out.Accepted)
		})
	})
	if err != nil {
		return nil, err
	}

	outcome := "rejected"
	if res.Outcome.Accepted {
		outcome = "accepted"
	}
	settled := "none"
	if res.Market != nil {
		settled = "settled"
	}
	metrics.Runs.WithLabelValues(outcome, settled).Inc()

	s.logger.InfoContext(ctx, "resolution completed",
		"nomination", nominationAddr,
		"outcome", outcome,
		"market_settled", res.Market != nil)
	return res, nil
}

// recordScore tolerates wallets that never created an identity.
func (s *Service) recordScore(ctx context.Context, fn func(ctx context.Context) error) error {
	err := fn(ctx)
	if err != nil && dErrors.HasCode(err, dErrors.CodeNotFound) {
		return nil
	}
	return err
}
