package market

import (
	"context"

	"sovereign/internal/market/models"
	"sovereign/pkg/domain"
)

// Store persists markets, positions, and the factory singleton. Implementations
// return sentinel.ErrNotFound for missing records and sentinel.ErrConflict for
// duplicate creates.
type Store interface {
	CreateMarket(ctx context.Context, m *models.Market) error
	GetMarket(ctx context.Context, addr domain.Address) (*models.Market, error)
	PutMarket(ctx context.Context, m *models.Market) error

	CreatePosition(ctx context.Context, p *models.Position) error
	GetPosition(ctx context.Context, addr domain.Address) (*models.Position, error)
	PutPosition(ctx context.Context, p *models.Position) error

	// GetFactory loads the singleton factory record; PutFactory upserts it.
	GetFactory(ctx context.Context) (*models.Factory, error)
	PutFactory(ctx context.Context, f *models.Factory) error
}
