package market

import (
	"context"
	"sync"

	"sovereign/internal/market/models"
	"sovereign/pkg/domain"
	"sovereign/pkg/platform/sentinel"
)

// MemoryStore is the in-memory Store used in tests and single-node runs.
type MemoryStore struct {
	mu        sync.RWMutex
	markets   map[domain.Address]*models.Market
	positions map[domain.Address]*models.Position
	factory   *models.Factory
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		markets:   make(map[domain.Address]*models.Market),
		positions: make(map[domain.Address]*models.Position),
	}
}

func (s *MemoryStore) CreateMarket(_ context.Context, m *models.Market) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.markets[m.Address]; ok {
		return sentinel.ErrConflict
	}
	s.markets[m.Address] = m.Clone()
	return nil
}

func (s *MemoryStore) GetMarket(_ context.Context, addr domain.Address) (*models.Market, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.markets[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return m.Clone(), nil
}

func (s *MemoryStore) PutMarket(_ context.Context, m *models.Market) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.markets[m.Address]; !ok {
		return sentinel.ErrNotFound
	}
	s.markets[m.Address] = m.Clone()
	return nil
}

func (s *MemoryStore) CreatePosition(_ context.Context, p *models.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.positions[p.Address]; ok {
		return sentinel.ErrConflict
	}
	s.positions[p.Address] = p.Clone()
	return nil
}

func (s *MemoryStore) GetPosition(_ context.Context, addr domain.Address) (*models.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.positions[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return p.Clone(), nil
}

func (s *MemoryStore) PutPosition(_ context.Context, p *models.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.positions[p.Address]; !ok {
		return sentinel.ErrNotFound
	}
	s.positions[p.Address] = p.Clone()
	return nil
}

func (s *MemoryStore) GetFactory(_ context.Context) (*models.Factory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.factory == nil {
		return nil, sentinel.ErrNotFound
	}
	return s.factory.Clone(), nil
}

func (s *MemoryStore) PutFactory(_ context.Context, f *models.Factory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.factory = f.Clone()
	return nil
}
