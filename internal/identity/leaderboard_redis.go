package identity

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"sovereign/pkg/domain"
)

const leaderboardKey = "sovereign:leaderboard"

// RedisLeaderboard ranks identities in a redis sorted set keyed by hex
// record address, so the ranking survives restarts and is shared across
// instances.
type RedisLeaderboard struct {
	client *redis.Client
}

func NewRedisLeaderboard(client *redis.Client) *RedisLeaderboard {
	return &RedisLeaderboard{client: client}
}

func (l *RedisLeaderboard) SetScore(ctx context.Context, identity domain.Address, composite uint16) error {
	err := l.client.ZAdd(ctx, leaderboardKey, redis.Z{
		Score:  float64(composite),
		Member: identity.String(),
	}).Err()
	if err != nil {
		return fmt.Errorf("leaderboard zadd: %w", err)
	}
	return nil
}

func (l *RedisLeaderboard) Top(ctx context.Context, n int64) ([]LeaderboardEntry, error) {
	if n <= 0 {
		return nil, nil
	}
	rows, err := l.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, n-1).Result()
	if err != nil {
		return nil, fmt.Errorf("leaderboard zrevrange: %w", err)
	}
	entries := make([]LeaderboardEntry, 0, len(rows))
	for _, row := range rows {
		member, ok := row.Member.(string)
		if !ok {
			continue
		}
		addr, err := domain.ParseAddress(member)
		if err != nil {
			continue
		}
		entries = append(entries, LeaderboardEntry{Identity: addr, Score: uint16(row.Score)})
	}
	return entries, nil
}
