package identity

import (
	"context"
	"sync"

	"sovereign/internal/identity/models"
	"sovereign/pkg/domain"
	"sovereign/pkg/platform/sentinel"
)

// MemoryStore is the in-memory Store used in tests and single-node runs.
type MemoryStore struct {
	mu         sync.RWMutex
	identities map[domain.Address]*models.Identity
	creator    map[domain.Address]*models.CreatorScoreDetails
	surfacing  map[domain.Address]*models.SurfacingScore
	trading    map[domain.Address]*models.TradingScoreDetails
	civic      map[domain.Address]*models.CivicScoreDetails
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		identities: make(map[domain.Address]*models.Identity),
		creator:    make(map[domain.Address]*models.CreatorScoreDetails),
		surfacing:  make(map[domain.Address]*models.SurfacingScore),
		trading:    make(map[domain.Address]*models.TradingScoreDetails),
		civic:      make(map[domain.Address]*models.CivicScoreDetails),
	}
}

func (s *MemoryStore) CreateIdentity(_ context.Context, identity *models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.identities[identity.Address]; ok {
		return sentinel.ErrConflict
	}
	s.identities[identity.Address] = identity.Clone()
	return nil
}

func (s *MemoryStore) GetIdentity(_ context.Context, addr domain.Address) (*models.Identity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.identities[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return id.Clone(), nil
}

func (s *MemoryStore) PutIdentity(_ context.Context, identity *models.Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.identities[identity.Address]; !ok {
		return sentinel.ErrNotFound
	}
	s.identities[identity.Address] = identity.Clone()
	return nil
}

func (s *MemoryStore) GetCreatorScore(_ context.Context, addr domain.Address) (*models.CreatorScoreDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.creator[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return d.Clone(), nil
}

func (s *MemoryStore) PutCreatorScore(_ context.Context, details *models.CreatorScoreDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creator[details.Address] = details.Clone()
	return nil
}

func (s *MemoryStore) GetSurfacingScore(_ context.Context, addr domain.Address) (*models.SurfacingScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sc, ok := s.surfacing[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return sc.Clone(), nil
}

func (s *MemoryStore) PutSurfacingScore(_ context.Context, sc *models.SurfacingScore) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.surfacing[sc.Address] = sc.Clone()
	return nil
}

func (s *MemoryStore) GetTradingDetails(_ context.Context, addr domain.Address) (*models.TradingScoreDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.trading[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return d.Clone(), nil
}

func (s *MemoryStore) PutTradingDetails(_ context.Context, details *models.TradingScoreDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.trading[details.Address] = details.Clone()
	return nil
}

func (s *MemoryStore) GetCivicDetails(_ context.Context, addr domain.Address) (*models.CivicScoreDetails, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.civic[addr]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return d.Clone(), nil
}

func (s *MemoryStore) PutCivicDetails(_ context.Context, details *models.CivicScoreDetails) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.civic[details.Address] = details.Clone()
	return nil
}
