package market

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"sovereign/internal/market/models"
	"sovereign/pkg/domain"
	"sovereign/pkg/platform/sentinel"
	"sovereign/pkg/platform/tx"
)

// PostgresStore persists market records in their wire layout, keyed by
// derived address. The factory singleton shares the table under its own
// derived address.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS market_records (
			address    BYTEA PRIMARY KEY,
			data       BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("ensure market schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) insert(ctx context.Context, addr domain.Address, data []byte) error {
	q := tx.Resolve(ctx, s.db)
	_, err := q.ExecContext(ctx,
		`INSERT INTO market_records (address, data) VALUES ($1, $2)`, addr[:], data)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (s *PostgresStore) upsert(ctx context.Context, addr domain.Address, data []byte) error {
	q := tx.Resolve(ctx, s.db)
	_, err := q.ExecContext(ctx, `
		INSERT INTO market_records (address, data) VALUES ($1, $2)
		ON CONFLICT (address) DO UPDATE SET data = EXCLUDED.data, updated_at = now()`,
		addr[:], data)
	if err != nil {
		return fmt.Errorf("upsert record: %w", err)
	}
	return nil
}

func (s *PostgresStore) update(ctx context.Context, addr domain.Address, data []byte) error {
	q := tx.Resolve(ctx, s.db)
	res, err := q.ExecContext(ctx,
		`UPDATE market_records SET data = $2, updated_at = now() WHERE address = $1`,
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
		`SELECT data FROM market_records WHERE address = $1`, addr[:]).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return data, nil
}

func (s *PostgresStore) CreateMarket(ctx context.Context, m *models.Market) error {
	return s.insert(ctx, m.Address, m.MarshalRecord())
}

func (s *PostgresStore) GetMarket(ctx context.Context, addr domain.Address) (*models.Market, error) {
	data, err := s.get(ctx, addr)
	if err != nil {
		return nil, err
	}
	return models.UnmarshalMarketRecord(addr, data)
}

func (s *PostgresStore) PutMarket(ctx context.Context, m *models.Market) error {
	return s.update(ctx, m.Address, m.MarshalRecord())
}

func (s *PostgresStore) CreatePosition(ctx context.Context, p *models.Position) error {
	return s.insert(ctx, p.Address, p.MarshalRecord())
}

func (s *PostgresStore) GetPosition(ctx context.Context, addr domain.Address) (*models.Position, error) {
	data, err := s.get(ctx, addr)
	if err != nil {
		return nil, err
	}
	return models.UnmarshalPositionRecord(addr, data)
}

func (s *PostgresStore) PutPosition(ctx context.Context, p *models.Position) error {
	return s.update(ctx, p.Address, p.MarshalRecord())
}

func (s *PostgresStore) GetFactory(ctx context.Context) (*models.Factory, error) {
	addr := domain.MarketFactoryAddress()
	data, err := s.get(ctx, addr)
	if err != nil {
		return nil, err
	}
	return models.UnmarshalFactoryRecord(addr, data)
}

func (s *PostgresStore) PutFactory(ctx context.Context, f *models.Factory) error {
	return s.upsert(ctx, f.Address, f.MarshalRecord())
}
