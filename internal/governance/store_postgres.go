package governance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"sovereign/internal/governance/models"
	"sovereign/pkg/domain"
	"sovereign/pkg/platform/sentinel"
	"sovereign/pkg/platform/tx"
)

// PostgresStore persists governance records in their wire layout, keyed by
// derived address. The DAO counter lives in its own single-row table so the
// increment can be done atomically in SQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS governance_records (
			address    BYTEA PRIMARY KEY,
			data       BYTEA NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
		CREATE TABLE IF NOT EXISTS dao_counter (
			id    SMALLINT PRIMARY KEY DEFAULT 1 CHECK (id = 1),
			count BIGINT NOT NULL DEFAULT 0
		);
		INSERT INTO dao_counter (id, count) VALUES (1, 0) ON CONFLICT DO NOTHING`)
	if err != nil {
		return fmt.Errorf("ensure governance schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) NextDAOID(ctx context.Context) (uint64, error) {
	q := tx.Resolve(ctx, s.db)
	var next int64
	err := q.QueryRowContext(ctx,
		`UPDATE dao_counter SET count = count + 1 WHERE id = 1 RETURNING count - 1`).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next dao id: %w", err)
	}
	return uint64(next), nil
}

func (s *PostgresStore) insert(ctx context.Context, addr domain.Address, data []byte) error {
	q := tx.Resolve(ctx, s.db)
	_, err := q.ExecContext(ctx,
		`INSERT INTO governance_records (address, data) VALUES ($1, $2)`, addr[:], data)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert record: %w", err)
	}
	return nil
}

func (s *PostgresStore) update(ctx context.Context, addr domain.Address, data []byte) error {
	q := tx.Resolve(ctx, s.db)
	res, err := q.ExecContext(ctx,
		`UPDATE governance_records SET data = $2, updated_at = now() WHERE address = $1`,
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
		`SELECT data FROM governance_records WHERE address = $1`, addr[:]).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	return data, nil
}

func (s *PostgresStore) CreateDAO(ctx context.Context, dao *models.DAO) error {
	return s.insert(ctx, dao.Address, dao.MarshalRecord())
}

func (s *PostgresStore) GetDAO(ctx context.Context, addr domain.Address) (*models.DAO, error) {
	data, err := s.get(ctx, addr)
	if err != nil {
		return nil, err
	}
	return models.UnmarshalDAORecord(addr, data)
}

func (s *PostgresStore) PutDAO(ctx context.Context, dao *models.DAO) error {
	return s.update(ctx, dao.Address, dao.MarshalRecord())
}

func (s *PostgresStore) CreateMembership(ctx context.Context, m *models.Membership) error {
	return s.insert(ctx, m.Address, m.MarshalRecord())
}

func (s *PostgresStore) GetMembership(ctx context.Context, addr domain.Address) (*models.Membership, error) {
	data, err := s.get(ctx, addr)
	if err != nil {
		return nil, err
	}
	return models.UnmarshalMembershipRecord(addr, data)
}

func (s *PostgresStore) PutMembership(ctx context.Context, m *models.Membership) error {
	return s.update(ctx, m.Address, m.MarshalRecord())
}

func (s *PostgresStore) CreateNomination(ctx context.Context, n *models.Nomination) error {
	return s.insert(ctx, n.Address, n.MarshalRecord())
}

func (s *PostgresStore) GetNomination(ctx context.Context, addr domain.Address) (*models.Nomination, error) {
	data, err := s.get(ctx, addr)
	if err != nil {
		return nil, err
	}
	return models.UnmarshalNominationRecord(addr, data)
}

func (s *PostgresStore) PutNomination(ctx context.Context, n *models.Nomination) error {
	return s.update(ctx, n.Address, n.MarshalRecord())
}

func (s *PostgresStore) CreateVoteRecord(ctx context.Context, v *models.VoteRecord) error {
	return s.insert(ctx, v.Address, v.MarshalRecord())
}

func (s *PostgresStore) GetVoteRecord(ctx context.Context, addr domain.Address) (*models.VoteRecord, error) {
	data, err := s.get(ctx, addr)
	if err != nil {
		return nil, err
	}
	return models.UnmarshalVoteRecord(addr, data)
}
