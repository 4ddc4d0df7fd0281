// Package app assembles the engine's adapters and services from configuration.
// Both the API server and claimsctl build on it.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"claim-escrow-engine/config"
	"claim-escrow-engine/internal/adapter/chain"
	"claim-escrow-engine/internal/adapter/oracle"
	pgStorage "claim-escrow-engine/internal/adapter/storage/postgres"
	redisStorage "claim-escrow-engine/internal/adapter/storage/redis"
	"claim-escrow-engine/internal/core/ports"
	"claim-escrow-engine/internal/service"
	"claim-escrow-engine/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const reconcilerLockKey = "claims:reconciler:lock"

// App holds the wired engine.
type App struct {
	Config   *config.Config
	Log      zerolog.Logger
	Registry *prometheus.Registry

	Pool  *pgxpool.Pool
	Redis *goredis.Client

	ClaimRepo      ports.ClaimRepository
	Contract       ports.EscrowContract
	TokenSvc       ports.TokenService
	AuditSvc       ports.AuditService
	Notifier       *service.NotificationService
	Ledger         ports.EscrowLedger
	ClaimSvc       ports.ClaimService
	ReportingSvc   ports.ReportingService
	Reconciler     *service.Reconciler
	RateLimitStore *redisStorage.RateLimitStore
	HealthCheckers []ports.HealthChecker
}

// New connects to PostgreSQL and Redis and wires every service.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("connecting to PostgreSQL: %w", err)
	}
	log.Info().Msg("PostgreSQL connected")

	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to Redis: %w", err)
	}
	log.Info().Msg("Redis connected")

	a := &App{
		Config:   cfg,
		Log:      log,
		Registry: prometheus.NewRegistry(),
		Pool:     pool,
		Redis:    rdb,
	}
	a.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Repositories
	claimRepo := pgStorage.NewClaimRepo(pool)
	escrowRepo := pgStorage.NewEscrowRepo(pool)
	auditRepo := pgStorage.NewAuditRepo(pool)
	transactor := pgStorage.NewTransactor(pool, cfg.Database.LockTimeout)
	a.ClaimRepo = claimRepo

	// Infrastructure services
	sigSvc := service.NewHMACSignatureService()
	a.TokenSvc = service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	a.AuditSvc = service.NewAuditService(auditRepo, logger.Component(log, "audit"))
	a.Notifier = service.NewNotificationService(cfg.Notify, sigSvc, &http.Client{Timeout: 10 * time.Second}, logger.Component(log, "notifier"))

	a.HealthCheckers = []ports.HealthChecker{
		pgStorage.NewHealthCheck(pool),
		redisStorage.NewHealthCheck(rdb),
	}

	switch cfg.Chain.Mode {
	case "rpc":
		rpc := chain.NewRPCClient(cfg.Chain, nil, logger.Component(log, "chain"))
		a.Contract = rpc
		a.HealthCheckers = append(a.HealthCheckers, rpc)
	default:
		log.Warn().Msg("chain.mode=simulated: escrow funds are held in process memory")
		a.Contract = chain.NewSimulatedContract()
	}

	oracleLog := logger.Component(log, "oracle")
	oracleClient := oracle.NewClient(cfg.Oracle, &http.Client{Timeout: cfg.Oracle.Timeout}, sigSvc, oracleLog)

	// Business services
	a.Ledger = service.NewEscrowLedger(claimRepo, escrowRepo, transactor, a.Contract, a.AuditSvc, cfg.Chain, logger.Component(log, "escrow"))
	a.ClaimSvc = service.NewClaimService(claimRepo, service.NewOracleAdapter(oracleClient, oracleLog), a.Ledger, a.AuditSvc, a.Notifier, logger.Component(log, "claims"))
	a.ReportingSvc = service.NewReportingService(claimRepo)
	a.RateLimitStore = redisStorage.NewRateLimitStore(rdb)

	a.Reconciler = service.NewReconciler(
		claimRepo,
		a.ClaimSvc,
		redisStorage.NewPassLock(rdb, reconcilerLockKey),
		cfg.Reconciler,
		service.NewReconcilerMetrics(a.Registry),
		logger.Component(log, "reconciler"),
	)

	return a, nil
}

// Close stops background work and releases connections.
func (a *App) Close() {
	a.Reconciler.Stop()
	a.Notifier.Close()
	if err := a.Redis.Close(); err != nil {
		a.Log.Warn().Err(err).Msg("closing Redis client")
	}
	a.Pool.Close()
}
