package identity

import (
	"context"

	"sovereign/internal/identity/models"
	"sovereign/pkg/domain"
)

// Store persists identity records and their score detail records. All
// lookups are by derived record address. Implementations return
// sentinel.ErrNotFound for missing records and sentinel.ErrConflict when a
// create collides.
type Store interface {
	CreateIdentity(ctx context.Context, identity *models.Identity) error
	GetIdentity(ctx context.Context, addr domain.Address) (*models.Identity, error)
	PutIdentity(ctx context.Context, identity *models.Identity) error

	GetCreatorScore(ctx context.Context, addr domain.Address) (*models.CreatorScoreDetails, error)
	PutCreatorScore(ctx context.Context, details *models.CreatorScoreDetails) error

	GetSurfacingScore(ctx context.Context, addr domain.Address) (*models.SurfacingScore, error)
	PutSurfacingScore(ctx context.Context, sc *models.SurfacingScore) error

	GetTradingDetails(ctx context.Context, addr domain.Address) (*models.TradingScoreDetails, error)
	PutTradingDetails(ctx context.Context, details *models.TradingScoreDetails) error

	GetCivicDetails(ctx context.Context, addr domain.Address) (*models.CivicScoreDetails, error)
	PutCivicDetails(ctx context.Context, details *models.CivicScoreDetails) error
}

// LeaderboardEntry is one row of the composite score ranking.
type LeaderboardEntry struct {
	Identity domain.Address
	Score    uint16
}

// Leaderboard ranks identities by composite score.
type Leaderboard interface {
	SetScore(ctx context.Context, identity domain.Address, composite uint16) error
	Top(ctx context.Context, n int64) ([]LeaderboardEntry, error)
}
