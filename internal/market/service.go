// Package market implements admission prediction markets: constant-product
// pools on the question of whether a DAO will admit a creator, resolved by
// the governance vote rather than an external oracle.
package market

import (
	"context"
	"errors"
	"log/slog"

	"sovereign/internal/market/metrics"
	"sovereign/internal/market/models"
	"sovereign/pkg/domain"
	dErrors "sovereign/pkg/domain-errors"
	"sovereign/pkg/platform/audit"
	"sovereign/pkg/platform/sentinel"
	"sovereign/pkg/requestcontext"
)

// DAODirectory confirms that a market's subject DAO exists and is active.
type DAODirectory interface {
	VerifyActiveDAO(ctx context.Context, dao domain.Address) error
}

// ScoreRecorder feeds market outcomes back into the reputation engine.
// Identity records are optional for predictors, so implementations return a
// not-found coded error when no identity exists and the caller skips.
type ScoreRecorder interface {
	RecordMarketCreated(ctx context.Context, predictor domain.Address) error
	RecordSurfacedAcceptance(ctx context.Context, predictor domain.Address, profit int64) error
	RecordPrediction(ctx context.Context, identityAddr domain.Address, correct bool, pnlBps int32) error
	RecordBurn(ctx context.Context, identityAddr domain.Address, amount uint64) error
}

// FactoryConfig seeds the factory singleton on first start.
type FactoryConfig struct {
	MinInitialLiquidity uint64
	DefaultFeeBps       uint16
	DefaultBurnBps      uint16
	CreatorBonusBps     uint16
	DefaultExpiryPeriod int64
}

// Service owns the market records.
type Service struct {
	store  Store
	daos   DAODirectory
	scores ScoreRecorder
	audit  audit.Publisher
	logger *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithAuditPublisher(p audit.Publisher) Option {
	return func(s *Service) { s.audit = p }
}

func New(store Store, daos DAODirectory, scores ScoreRecorder, opts ...Option) *Service {
	s := &Service{
		store:  store,
		daos:   daos,
		scores: scores,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureFactory creates the factory singleton if it does not exist yet. An
// existing record wins over the passed config so a restart cannot silently
// reconfigure live markets.
func (s *Service) EnsureFactory(ctx context.Context, cfg FactoryConfig, authority domain.Address) error {
	_, err := s.store.GetFactory(ctx)
	if err == nil {
		return nil
	}
	if !errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Wrap(err, dErrors.CodeInternal, "get factory")
	}
	f := &models.Factory{
		Address:             domain.MarketFactoryAddress(),
		Authority:           authority,
		DefaultFeeBps:       cfg.DefaultFeeBps,
		DefaultBurnBps:      cfg.DefaultBurnBps,
		MinInitialLiquidity: cfg.MinInitialLiquidity,
		DefaultExpiryPeriod: cfg.DefaultExpiryPeriod,
		CreatorBonusBps:     cfg.CreatorBonusBps,
	}
	if err := s.store.PutFactory(ctx, f); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "store factory")
	}
	s.logger.InfoContext(ctx, "market factory initialized",
		"min_liquidity", f.MinInitialLiquidity,
		"fee_bps", f.DefaultFeeBps,
		"burn_bps", f.DefaultBurnBps)
	return nil
}

// GetFactory loads the factory singleton.
func (s *Service) GetFactory(ctx context.Context) (*models.Factory, error) {
	f, err := s.store.GetFactory(ctx)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "market factory not initialized")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "get factory")
	}
	return f, nil
}

// CreateMarketParams describe a new admission market.
type CreateMarketParams struct {
	DAO              domain.Address
	CreatorWallet    domain.Address
	InitialLiquidity uint64
	// ExpiryDays overrides the factory default trading window when nonzero.
	ExpiryDays uint16
}

// CreateMarket opens a market on whether the DAO will admit the creator. The
// caller surfaces the creator and seeds both pools evenly; one market exists
// per (DAO, creator) pair.
func (s *Service) CreateMarket(ctx context.Context, params CreateMarketParams) (*models.Market, error) {
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller identity required")
	}
	if params.CreatorWallet.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "creator wallet must not be the zero address")
	}
	if err := s.daos.VerifyActiveDAO(ctx, params.DAO); err != nil {
		return nil, err
	}

	factory, err := s.GetFactory(ctx)
	if err != nil {
		return nil, err
	}
	if params.InitialLiquidity < factory.MinInitialLiquidity {
		return nil, dErrors.Newf(dErrors.CodeValidation,
			"initial liquidity must be at least %d", factory.MinInitialLiquidity)
	}

	now := requestcontext.Now(ctx).Unix()
	expiry := factory.DefaultExpiryPeriod
	if params.ExpiryDays > 0 {
		expiry = int64(params.ExpiryDays) * 86400
	}

	creatorIdentity := domain.IdentityAddress(params.CreatorWallet)
	half := params.InitialLiquidity / 2
	m := &models.Market{
		Address:          domain.MarketAddress(params.DAO, creatorIdentity),
		ID:               factory.MarketCount,
		DAO:              params.DAO,
		CreatorIdentity:  creatorIdentity,
		CreatorWallet:    params.CreatorWallet,
		MarketCreator:    caller,
		CreatorBonusBps:  factory.CreatorBonusBps,
		YesPool:          half,
		NoPool:           params.InitialLiquidity - half,
		PredictorCount:   1,
		InitialLiquidity: params.InitialLiquidity,
		FeeBps:           factory.DefaultFeeBps,
		CreatedAt:        now,
		ExpiresAt:        now + expiry,
		Status:           models.StatusOpen,
		Outcome:          models.OutcomePending,
		BurnBps:          factory.DefaultBurnBps,
	}
	if err := s.store.CreateMarket(ctx, m); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "a market already exists for this dao and creator")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create market")
	}

	factory.MarketCount++
	factory.TotalMarkets++
	factory.TotalVolume += params.InitialLiquidity
	if err := s.store.PutFactory(ctx, factory); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store factory")
	}

	if err := s.scores.RecordMarketCreated(ctx, caller); err != nil {
		return nil, err
	}

	metrics.MarketsCreated.Inc()
	metrics.Volume.Add(float64(params.InitialLiquidity))
	_ = audit.Emit(ctx, s.audit, audit.Event{
		Kind:      audit.EventMarketCreated,
		Actor:     caller,
		DAO:       params.DAO,
		Market:    m.Address,
		Identity:  creatorIdentity,
		Amount:    params.InitialLiquidity,
		RequestID: requestcontext.RequestID(ctx),
	})

	s.logger.InfoContext(ctx, "market created",
		"market", m.Address,
		"market_id", m.ID,
		"dao", params.DAO,
		"creator", params.CreatorWallet,
		"liquidity", params.InitialLiquidity,
		"expires_at", m.ExpiresAt)
	return m, nil
}

// GetMarket loads a market record.
func (s *Service) GetMarket(ctx context.Context, addr domain.Address) (*models.Market, error) {
	m, err := s.store.GetMarket(ctx, addr)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "market not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "get market")
	}
	return m, nil
}

// GetPosition loads a predictor's position in a market.
func (s *Service) GetPosition(ctx context.Context, marketAddr, predictor domain.Address) (*models.Position, error) {
	p, err := s.store.GetPosition(ctx, domain.PositionAddress(marketAddr, predictor))
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "position not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "get position")
	}
	return p, nil
}

// TakePosition stakes the caller on one side of an open market. minTokens is
// the slippage floor: the trade fails if the pool would issue fewer tokens
// than the caller saw when quoting.
func (s *Service) TakePosition(ctx context.Context, marketAddr domain.Address, side models.Side, amount, minTokens uint64) (*models.Position, error) {
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller identity required")
	}
	if amount == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "stake must be positive")
	}

	m, err := s.GetMarket(ctx, marketAddr)
	if err != nil {
		return nil, err
	}
	if m.Status != models.StatusOpen {
		return nil, dErrors.New(dErrors.CodeInvalidState, "market is not open for trading")
	}
	now := requestcontext.Now(ctx).Unix()
	if now >= m.ExpiresAt {
		return nil, dErrors.New(dErrors.CodeInvalidState, "trading window has closed")
	}

	tokens := m.TokensFor(side, amount)
	if tokens < minTokens {
		return nil, dErrors.Newf(dErrors.CodeConflict,
			"price moved: would issue %d tokens, floor is %d", tokens, minTokens)
	}
	m.ApplyStake(side, amount)

	posAddr := domain.PositionAddress(marketAddr, caller)
	pos, err := s.store.GetPosition(ctx, posAddr)
	newPosition := false
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		newPosition = true
		pos = &models.Position{
			Address:           posAddr,
			Market:            marketAddr,
			Predictor:         caller,
			PredictorIdentity: domain.IdentityAddress(caller),
			OpenedAt:          now,
		}
	case err != nil:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "get position")
	case pos.Claimed:
		return nil, dErrors.New(dErrors.CodeInvalidState, "position has already been claimed")
	}

	if side == models.SideYes {
		pos.YesTokens += tokens
	} else {
		pos.NoTokens += tokens
	}
	pos.TotalStaked += amount
	pos.LastModified = now

	if newPosition {
		m.PredictorCount++
		if err := s.store.CreatePosition(ctx, pos); err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "create position")
		}
	} else if err := s.store.PutPosition(ctx, pos); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store position")
	}
	if err := s.store.PutMarket(ctx, m); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store market")
	}

	factory, err := s.GetFactory(ctx)
	if err != nil {
		return nil, err
	}
	factory.TotalVolume += amount
	if err := s.store.PutFactory(ctx, factory); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store factory")
	}

	metrics.PositionsTaken.WithLabelValues(side.String()).Inc()
	metrics.Volume.Add(float64(amount))
	_ = audit.Emit(ctx, s.audit, audit.Event{
		Kind:      audit.EventPositionTaken,
		Actor:     caller,
		Market:    marketAddr,
		Amount:    amount,
		Detail:    side.String(),
		RequestID: requestcontext.RequestID(ctx),
	})

	s.logger.InfoContext(ctx, "position taken",
		"market", marketAddr,
		"side", side,
		"amount", amount,
		"tokens", tokens,
		"yes_price_bps", m.YesPriceBps())
	return pos, nil
}

// CanSettle checks that the market can be settled by the given nomination
// resolution without writing anything. The coordinator calls it before any
// state changes.
func (s *Service) CanSettle(ctx context.Context, marketAddr, daoAddr, creatorIdentity domain.Address) error {
	m, err := s.GetMarket(ctx, marketAddr)
	if err != nil {
		return err
	}
	return s.settleable(m, daoAddr, creatorIdentity)
}

func (s *Service) settleable(m *models.Market, daoAddr, creatorIdentity domain.Address) error {
	if m.DAO != daoAddr || m.CreatorIdentity != creatorIdentity {
		return dErrors.New(dErrors.CodeInvalidState, "market does not match the resolved nomination")
	}
	if m.Status != models.StatusOpen && m.Status != models.StatusVotingInProgress {
		return dErrors.New(dErrors.CodeInvalidState, "market is already settled")
	}
	return nil
}

// Settle resolves a market from a governance outcome. Only the resolution
// coordinator calls this, after CanSettle passed for every record involved.
// The burn is taken once from the total pool and credited against the subject
// creator's record.
func (s *Service) Settle(ctx context.Context, marketAddr, daoAddr, nominationAddr, creatorIdentity domain.Address, accepted bool) (*models.Market, error) {
	m, err := s.GetMarket(ctx, marketAddr)
	if err != nil {
		return nil, err
	}
	if err := s.settleable(m, daoAddr, creatorIdentity); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx).Unix()
	m.Status = models.StatusResolved
	if accepted {
		m.Outcome = models.OutcomeAccepted
	} else {
		m.Outcome = models.OutcomeRejected
	}
	m.ResolvedByNomination = nominationAddr
	m.HasResolvedBy = true
	m.ResolvedAt = now
	m.HasResolvedAt = true
	m.AmountBurned = m.BurnAmount()

	if err := s.store.PutMarket(ctx, m); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store market")
	}

	factory, err := s.GetFactory(ctx)
	if err != nil {
		return nil, err
	}
	factory.TotalBurned += m.AmountBurned
	if err := s.store.PutFactory(ctx, factory); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store factory")
	}

	if err := s.scores.RecordBurn(ctx, creatorIdentity, m.AmountBurned); err != nil {
		return nil, err
	}

	metrics.Settlements.WithLabelValues(m.Outcome.String()).Inc()
	metrics.Burned.Add(float64(m.AmountBurned))
	_ = audit.Emit(ctx, s.audit, audit.Event{
		Kind:       audit.EventMarketSettled,
		DAO:        daoAddr,
		Nomination: nominationAddr,
		Market:     marketAddr,
		Identity:   creatorIdentity,
		Amount:     m.AmountBurned,
		Detail:     m.Outcome.String(),
		RequestID:  requestcontext.RequestID(ctx),
	})

	s.logger.InfoContext(ctx, "market settled",
		"market", marketAddr,
		"outcome", m.Outcome,
		"burned", m.AmountBurned)
	return m, nil
}

// ExpireMarket cancels a market whose trading window lapsed without a
// governance resolution. Anyone may call it; claims then refund stakes.
func (s *Service) ExpireMarket(ctx context.Context, marketAddr domain.Address) (*models.Market, error) {
	m, err := s.GetMarket(ctx, marketAddr)
	if err != nil {
		return nil, err
	}
	if m.Status != models.StatusOpen {
		return nil, dErrors.New(dErrors.CodeInvalidState, "market is not open")
	}
	now := requestcontext.Now(ctx).Unix()
	if now < m.ExpiresAt {
		return nil, dErrors.New(dErrors.CodeInvalidState, "market has not expired yet")
	}

	m.Status = models.StatusExpired
	m.Outcome = models.OutcomeCancelled
	m.ResolvedAt = now
	m.HasResolvedAt = true
	if err := s.store.PutMarket(ctx, m); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store market")
	}

	metrics.Settlements.WithLabelValues(m.Outcome.String()).Inc()
	_ = audit.Emit(ctx, s.audit, audit.Event{
		Kind:      audit.EventMarketExpired,
		Market:    marketAddr,
		RequestID: requestcontext.RequestID(ctx),
	})

	s.logger.InfoContext(ctx, "market expired", "market", marketAddr)
	return m, nil
}

// ClaimWinnings pays out the caller's position on a settled market. A
// cancelled market refunds the full stake; losers get nothing but their
// accuracy record still updates; winners are paid pro rata from the
// distributable pot. A market creator who backed their own surfaced creator
// and won also earns surfacing credit.
func (s *Service) ClaimWinnings(ctx context.Context, marketAddr domain.Address) (*models.Position, error) {
	caller := requestcontext.Caller(ctx)
	if caller.IsZero() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "caller identity required")
	}

	m, err := s.GetMarket(ctx, marketAddr)
	if err != nil {
		return nil, err
	}
	if m.Status != models.StatusResolved && m.Status != models.StatusExpired {
		return nil, dErrors.New(dErrors.CodeInvalidState, "market is not settled")
	}

	pos, err := s.GetPosition(ctx, marketAddr, caller)
	if err != nil {
		return nil, err
	}
	if pos.Claimed {
		return nil, dErrors.New(dErrors.CodeInvalidState, "winnings already claimed")
	}

	now := requestcontext.Now(ctx).Unix()
	var payout uint64
	var result string

	switch {
	case m.Outcome == models.OutcomeCancelled:
		payout = pos.TotalStaked
		result = "refunded"

	default:
		winningTokens := pos.YesTokens
		if m.Outcome == models.OutcomeRejected {
			winningTokens = pos.NoTokens
		}
		if winningTokens == 0 {
			result = "lost"
			if err := s.recordPrediction(ctx, pos.PredictorIdentity, false, 0); err != nil {
				return nil, err
			}
			break
		}

		payout = m.Payout(winningTokens)
		result = "won"
		if err := s.recordPrediction(ctx, pos.PredictorIdentity, true, pnlBps(payout, pos.TotalStaked)); err != nil {
			return nil, err
		}
		if caller == m.MarketCreator && m.Outcome == models.OutcomeAccepted {
			profit := int64(payout) - int64(pos.TotalStaked)
			if err := s.scores.RecordSurfacedAcceptance(ctx, caller, profit); err != nil {
				return nil, err
			}
		}
	}

	pos.Claimed = true
	pos.Payout = payout
	pos.LastModified = now
	if err := s.store.PutPosition(ctx, pos); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "store position")
	}

	metrics.Claims.WithLabelValues(result).Inc()
	_ = audit.Emit(ctx, s.audit, audit.Event{
		Kind:      audit.EventWinningsClaimed,
		Actor:     caller,
		Market:    marketAddr,
		Amount:    payout,
		Detail:    result,
		RequestID: requestcontext.RequestID(ctx),
	})

	s.logger.InfoContext(ctx, "winnings claimed",
		"market", marketAddr,
		"predictor", caller,
		"result", result,
		"payout", payout)
	return pos, nil
}

// recordPrediction is best effort: predictors are not required to hold an
// identity, so a missing record is skipped rather than failing the claim.
func (s *Service) recordPrediction(ctx context.Context, identityAddr domain.Address, correct bool, pnl int32) error {
	err := s.scores.RecordPrediction(ctx, identityAddr, correct, pnl)
	if err != nil && dErrors.HasCode(err, dErrors.CodeNotFound) {
		return nil
	}
	return err
}

// pnlBps expresses profit or loss relative to the stake in basis points,
// clamped to the int32 range.
func pnlBps(payout, staked uint64) int32 {
	if staked == 0 {
		return 0
	}
	bps := (int64(payout) - int64(staked)) * 10000 / int64(staked)
	switch {
	case bps > 1<<31-1:
		return 1<<31 - 1
	case bps < -(1 << 31):
		return -(1 << 31)
	default:
		return int32(bps)
	}
}
