package governance

import (
	"context"

	"sovereign/internal/governance/models"
	"sovereign/pkg/domain"
)

// Store persists governance records. Creates return sentinel.ErrConflict for
// an existing address; gets return sentinel.ErrNotFound.
type Store interface {
	// NextDAOID atomically hands out the next globally unique DAO id.
	NextDAOID(ctx context.Context) (uint64, error)

	CreateDAO(ctx context.Context, dao *models.DAO) error
	GetDAO(ctx context.Context, addr domain.Address) (*models.DAO, error)
	PutDAO(ctx context.Context, dao *models.DAO) error

	CreateMembership(ctx context.Context, m *models.Membership) error
	GetMembership(ctx context.Context, addr domain.Address) (*models.Membership, error)
	PutMembership(ctx context.Context, m *models.Membership) error

	CreateNomination(ctx context.Context, n *models.Nomination) error
	GetNomination(ctx context.Context, addr domain.Address) (*models.Nomination, error)
	PutNomination(ctx context.Context, n *models.Nomination) error

	CreateVoteRecord(ctx context.Context, v *models.VoteRecord) error
	GetVoteRecord(ctx context.Context, addr domain.Address) (*models.VoteRecord, error)
}
