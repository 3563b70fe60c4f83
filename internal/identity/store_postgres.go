package identity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"sovereign/internal/identity/models"
	"sovereign/pkg/domain"
	"sovereign/pkg/platform/sentinel"
	"sovereign/pkg/platform/tx"
)

// Record kinds in the identity_records table.
const (
	kindIdentity = iota
	kindCreatorScore
	kindSurfacing
	kindTradingDetails
	kindCivicDetails
)

// PostgresStore persists identity records in a single keyed table. Records
// are stored in their wire layout so the database never needs to know field
// structure, only the address key.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the backing table when it does not exist yet.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS identity_records (
			address    BYTEA PRIMARY KEY,
			kind       SMALLINT NOT NULL,
			data       BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure identity schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) insert(ctx context.Context, addr domain.Address, kind int, data []byte) error {
	q := tx.Resolve(ctx, s.db)
	_, err := q.ExecContext(ctx,
		`INSERT INTO identity_records (address, kind, data) VALUES ($1, $2, $3)`,
		addr[:], kind, data)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (s *PostgresStore) upsert(ctx context.Context, addr domain.Address, kind int, data []byte) error {
	q := tx.Resolve(ctx, s.db)
	_, err := q.ExecContext(ctx, `
		INSERT INTO identity_records (address, kind, data) VALUES ($1, $2, $3)
		ON CONFLICT (address) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		addr[:], kind, data)
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

func (s *PostgresStore) update(ctx context.Context, addr domain.Address, data []byte) error {
	q := tx.Resolve(ctx, s.db)
	res, err := q.ExecContext(ctx,
		`UPDATE identity_records SET data = $2, updated_at = now() WHERE address = $1`,
		addr[:], data)
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update record: %w", err)
	}
	if n == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) get(ctx context.Context, addr domain.Address) ([]byte, error) {
	q := tx.Resolve(ctx, s.db)
	var data []byte
	err := q.QueryRowContext(ctx,
		`SELECT data FROM identity_records WHERE address = $1`, addr[:]).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return data, nil
}

func (s *PostgresStore) CreateIdentity(ctx context.Context, identity *models.Identity) error {
	return s.insert(ctx, identity.Address, kindIdentity, identity.MarshalRecord())
}

func (s *PostgresStore) GetIdentity(ctx context.Context, addr domain.Address) (*models.Identity, error) {
	data, err := s.get(ctx, addr)
	if err != nil {
		return nil, err
	}
	return models.UnmarshalIdentityRecord(addr, data)
}

func (s *PostgresStore) PutIdentity(ctx context.Context, identity *models.Identity) error {
	return s.update(ctx, identity.Address, identity.MarshalRecord())
}

func (s *PostgresStore) GetCreatorScore(ctx context.Context, addr domain.Address) (*models.CreatorScoreDetails, error) {
	data, err := s.get(ctx, addr)
	if err != nil {
		return nil, err
	}
	return models.UnmarshalCreatorScoreRecord(addr, data)
}

func (s *PostgresStore) PutCreatorScore(ctx context.Context, details *models.CreatorScoreDetails) error {
	return s.upsert(ctx, details.Address, kindCreatorScore, details.MarshalRecord())
}

func (s *PostgresStore) GetSurfacingScore(ctx context.Context, addr domain.Address) (*models.SurfacingScore, error) {
	data, err := s.get(ctx, addr)
	if err != nil {
		return nil, err
	}
	return models.UnmarshalSurfacingRecord(addr, data)
}

func (s *PostgresStore) PutSurfacingScore(ctx context.Context, sc *models.SurfacingScore) error {
	return s.upsert(ctx, sc.Address, kindSurfacing, sc.MarshalRecord())
}

func (s *PostgresStore) GetTradingDetails(ctx context.Context, addr domain.Address) (*models.TradingScoreDetails, error) {
	data, err := s.get(ctx, addr)
	if err != nil {
		return nil, err
	}
	return models.UnmarshalTradingDetailsRecord(addr, data)
}

func (s *PostgresStore) PutTradingDetails(ctx context.Context, details *models.TradingScoreDetails) error {
	return s.upsert(ctx, details.Address, kindTradingDetails, details.MarshalRecord())
}

func (s *PostgresStore) GetCivicDetails(ctx context.Context, addr domain.Address) (*models.CivicScoreDetails, error) {
	data, err := s.get(ctx, addr)
	if err != nil {
		return nil, err
	}
	return models.UnmarshalCivicDetailsRecord(addr, data)
}

func (s *PostgresStore) PutCivicDetails(ctx context.Context, details *models.CivicScoreDetails) error {
	return s.upsert(ctx, details.Address, kindCivicDetails, details.MarshalRecord())
}
