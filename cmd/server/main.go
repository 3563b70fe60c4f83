// Command server runs the reputation protocol API: self-sovereign identity
// scores, DAO admission governance, and the admission prediction market.
package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"sovereign/internal/governance"
	govhandler "sovereign/internal/governance/handler"
	"sovereign/internal/identity"
	identityhandler "sovereign/internal/identity/handler"
	"sovereign/internal/market"
	markethandler "sovereign/internal/market/handler"
	"sovereign/internal/platform/config"
	"sovereign/internal/platform/httpserver"
	"sovereign/internal/platform/logger"
	platformredis "sovereign/internal/platform/redis"
	"sovereign/internal/resolution"
	resolutionhandler "sovereign/internal/resolution/handler"
	transport "sovereign/internal/transport/http"
	"sovereign/pkg/domain"
	"sovereign/pkg/platform/audit"
	"sovereign/pkg/platform/middleware/auth"
	"sovereign/pkg/platform/tx"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		identityStore   identity.Store
		governanceStore governance.Store
		marketStore     market.Store
		runner          tx.Runner
	)
	if cfg.PostgresURL != "" {
		db, err := sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			log.Error("open postgres", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		if err := db.PingContext(ctx); err != nil {
			log.Error("ping postgres", "error", err)
			os.Exit(1)
		}

		ids := identity.NewPostgresStore(db)
		gov := governance.NewPostgresStore(db)
		mkt := market.NewPostgresStore(db)
		for _, ensure := range []func(context.Context) error{
			ids.EnsureSchema, gov.EnsureSchema, mkt.EnsureSchema,
		} {
			if err := ensure(ctx); err != nil {
				log.Error("ensure schema", "error", err)
				os.Exit(1)
			}
		}
		identityStore, governanceStore, marketStore = ids, gov, mkt
		runner = tx.NewSQLRunner(db)
		log.Info("using postgres stores")
	} else {
		identityStore = identity.NewMemoryStore()
		governanceStore = governance.NewMemoryStore()
		marketStore = market.NewMemoryStore()
		runner = tx.NewMemoryRunner()
		log.Info("using in-memory stores")
	}

	var leaderboard identity.Leaderboard = identity.NewMemoryLeaderboard()
	redisClient, err := platformredis.New(ctx, cfg.RedisURL)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		leaderboard = identity.NewRedisLeaderboard(redisClient.Client)
		log.Info("using redis leaderboard")
	}

	var publisher audit.Publisher = audit.NewMemorySink()
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := audit.NewKafkaPublisher(ctx, cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			log.Error("connect kafka", "error", err)
			os.Exit(1)
		}
		defer kafka.Close()
		publisher = kafka
		log.Info("publishing audit events to kafka", "topic", cfg.KafkaTopic)
	}

	identitySvc := identity.New(identityStore, leaderboard,
		identity.WithLogger(log), identity.WithAuditPublisher(publisher))
	governanceSvc := governance.New(governanceStore,
		governance.WithLogger(log), governance.WithAuditPublisher(publisher))
	marketSvc := market.New(marketStore, governanceSvc, identitySvc,
		market.WithLogger(log), market.WithAuditPublisher(publisher))
	resolutionSvc := resolution.New(governanceSvc, marketSvc, identitySvc, runner,
		resolution.WithLogger(log))

	if err := marketSvc.EnsureFactory(ctx, market.FactoryConfig{
		MinInitialLiquidity: cfg.Market.MinInitialLiquidity,
		DefaultFeeBps:       cfg.Market.DefaultFeeBps,
		DefaultBurnBps:      cfg.Market.DefaultBurnBps,
		CreatorBonusBps:     cfg.Market.CreatorBonusBps,
		DefaultExpiryPeriod: int64(cfg.Market.DefaultExpiry.Seconds()),
	}, domain.Address{}); err != nil {
		log.Error("ensure market factory", "error", err)
		os.Exit(1)
	}

	router := transport.NewRouter(transport.Handlers{
		Identity:   identityhandler.New(identitySvc, log),
		Governance: govhandler.New(governanceSvc, log),
		Market:     markethandler.New(marketSvc, log),
		Resolution: resolutionhandler.New(resolutionSvc, log),
	}, auth.NewVerifier(cfg.JWTSigningKey), log)

	apiSrv := httpserver.New(cfg.Addr, router)

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsSrv := httpserver.New(cfg.MetricsAddr, metricsMux)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("api server listening", "addr", cfg.Addr)
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		log.Info("metrics server listening", "addr", cfg.MetricsAddr)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := apiSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("api server shutdown", "error", err)
		}
		return metricsSrv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
	log.Info("shutdown complete")
}
