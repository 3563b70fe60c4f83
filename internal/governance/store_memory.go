package governance

import (
	"context"
	"sync"

	"sovereign/internal/governance/models"
	"sovereign/pkg/domain"
	"sovereign/pkg/platform/sentinel"
)

// MemoryStore is the in-memory Store used in tests and single-node runs.
type MemoryStore struct {
	mu          sync.RWMutex
	daoCounter  uint64
	daos        map[domain.Address]*models.DAO
	memberships map[domain.Address]*models.Membership
	nominations map[domain.Address]*models.Nomination
	votes       map[domain.Address]*models.VoteRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		daos:        make(map[domain.Address]*models.DAO),
		memberships: make(map[domain.Address]*models.Membership),
		nominations: make(map[domain.Address]*models.Nomination),
		votes:       make(map[domain.Address]*models.VoteRecord),
	}
}

func (s *MemoryStore) NextDAOID(_ context.Context) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.daoCounter
	s.daoCounter++
	return id, nil
}

func (s *MemoryStore) CreateDAO(_ context.Context, dao *models.DAO) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.daos[dao.Address]; ok {
		return sentinel.ErrConflict
	}
	s.daos[dao.Address] = dao.Clone()
	return nil
}

func (s *MemoryStore) GetDAO(_ context.Context, addr domain.Address) (*models.DAO, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dao, ok := s.daos[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return dao.Clone(), nil
}

func (s *MemoryStore) PutDAO(_ context.Context, dao *models.DAO) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.daos[dao.Address]; !ok {
		return sentinel.ErrNotFound
	}
	s.daos[dao.Address] = dao.Clone()
	return nil
}

func (s *MemoryStore) CreateMembership(_ context.Context, m *models.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.memberships[m.Address]; ok {
		return sentinel.ErrConflict
	}
	s.memberships[m.Address] = m.Clone()
	return nil
}

func (s *MemoryStore) GetMembership(_ context.Context, addr domain.Address) (*models.Membership, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.memberships[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return m.Clone(), nil
}

func (s *MemoryStore) PutMembership(_ context.Context, m *models.Membership) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.memberships[m.Address]; !ok {
		return sentinel.ErrNotFound
	}
	s.memberships[m.Address] = m.Clone()
	return nil
}

func (s *MemoryStore) CreateNomination(_ context.Context, n *models.Nomination) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nominations[n.Address]; ok {
		return sentinel.ErrConflict
	}
	s.nominations[n.Address] = n.Clone()
	return nil
}

func (s *MemoryStore) GetNomination(_ context.Context, addr domain.Address) (*models.Nomination, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n, ok := s.nominations[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return n.Clone(), nil
}

func (s *MemoryStore) PutNomination(_ context.Context, n *models.Nomination) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.nominations[n.Address]; !ok {
		return sentinel.ErrNotFound
	}
	s.nominations[n.Address] = n.Clone()
	return nil
}

func (s *MemoryStore) CreateVoteRecord(_ context.Context, v *models.VoteRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.votes[v.Address]; ok {
		return sentinel.ErrConflict
	}
	s.votes[v.Address] = v.Clone()
	return nil
}

func (s *MemoryStore) GetVoteRecord(_ context.Context, addr domain.Address) (*models.VoteRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.votes[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return v.Clone(), nil
}
