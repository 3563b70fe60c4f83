// Package config builds runtime configuration from environment variables so
// main stays lean.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr        string
	MetricsAddr string

	// PostgresURL selects the durable store; empty means in-memory stores.
	PostgresURL string
	// RedisURL selects the leaderboard backend; empty means in-memory.
	RedisURL string
	// KafkaBrokers selects the audit event sink; empty means in-memory.
	KafkaBrokers []string
	KafkaTopic   string

	// JWTSigningKey verifies host-issued caller tokens.
	JWTSigningKey string

	Market MarketFactory
}

// MarketFactory holds the admission market factory parameters applied to
// every market at creation.
type MarketFactory struct {
	MinInitialLiquidity uint64
	DefaultFeeBps       uint16
	DefaultBurnBps      uint16
	CreatorBonusBps     uint16
	DefaultExpiry       time.Duration
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	cfg := Server{
		Addr:          envOr("SOVEREIGN_ADDR", ":8080"),
		MetricsAddr:   envOr("SOVEREIGN_METRICS_ADDR", ":9090"),
		PostgresURL:   os.Getenv("SOVEREIGN_POSTGRES_URL"),
		RedisURL:      os.Getenv("SOVEREIGN_REDIS_URL"),
		KafkaTopic:    envOr("SOVEREIGN_KAFKA_TOPIC", "sovereign.audit"),
		JWTSigningKey: os.Getenv("SOVEREIGN_JWT_SIGNING_KEY"),
		Market: MarketFactory{
			MinInitialLiquidity: envUint("SOVEREIGN_MARKET_MIN_LIQUIDITY", 1_000_000),
			DefaultFeeBps:       uint16(envUint("SOVEREIGN_MARKET_FEE_BPS", 100)),
			DefaultBurnBps:      uint16(envUint("SOVEREIGN_MARKET_BURN_BPS", 500)),
			CreatorBonusBps:     uint16(envUint("SOVEREIGN_MARKET_CREATOR_BONUS_BPS", 200)),
			DefaultExpiry:       30 * 24 * time.Hour,
		},
	}
	if cfg.JWTSigningKey == "" {
		// Development default - must be overridden in production.
		cfg.JWTSigningKey = "dev-secret-key-change-in-production"
	}
	if brokers := os.Getenv("SOVEREIGN_KAFKA_BROKERS"); brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envUint(key string, fallback uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fallback
	}
	return parsed
}
