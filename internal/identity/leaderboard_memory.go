package identity

import (
	"context"
	"sort"
	"sync"

	"sovereign/pkg/domain"
)

// MemoryLeaderboard keeps the ranking in process. Used in tests and when no
// redis address is configured.
type MemoryLeaderboard struct {
	mu     sync.RWMutex
	scores map[domain.Address]uint16
}

func NewMemoryLeaderboard() *MemoryLeaderboard {
	return &MemoryLeaderboard{scores: make(map[domain.Address]uint16)}
}

func (l *MemoryLeaderboard) SetScore(_ context.Context, identity domain.Address, composite uint16) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.scores[identity] = composite
	return nil
}

func (l *MemoryLeaderboard) Top(_ context.Context, n int64) ([]LeaderboardEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	entries := make([]LeaderboardEntry, 0, len(l.scores))
	for addr, score := range l.scores {
		entries = append(entries, LeaderboardEntry{Identity: addr, Score: score})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].Identity.String() < entries[j].Identity.String()
	})
	if int64(len(entries)) > n {
		entries = entries[:n]
	}
	return entries, nil
}
