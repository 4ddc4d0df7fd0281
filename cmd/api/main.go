package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"claim-escrow-engine/config"
	httpHandler "claim-escrow-engine/internal/adapter/http/handler"
	"claim-escrow-engine/internal/adapter/http/middleware"
	"claim-escrow-engine/internal/app"
	"claim-escrow-engine/pkg/logger"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load(os.Getenv("CEE_CONFIG"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("chain_mode", cfg.Chain.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Claim Escrow Engine")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialise engine")
	}
	defer a.Close()

	// Load OpenAPI spec for Swagger UI
	if specBytes, err := os.ReadFile("docs/api/openapi.yaml"); err == nil {
		httpHandler.SetSwaggerSpec(specBytes)
		log.Info().Msg("OpenAPI spec loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	deps := httpHandler.RouterDeps{
		ClaimSvc:       a.ClaimSvc,
		Ledger:         a.Ledger,
		ReportingSvc:   a.ReportingSvc,
		TokenSvc:       a.TokenSvc,
		RateLimitStore: a.RateLimitStore,
		HealthCheckers: a.HealthCheckers,
		AuditSvc:       a.AuditSvc,
		Logger:         log,
	}
	if cfg.Metrics.Enabled {
		deps.HTTPMetrics = middleware.NewHTTPMetrics(a.Registry)
		deps.MetricsHandler = promhttp.HandlerFor(a.Registry, promhttp.HandlerOpts{Registry: a.Registry})
	}
	router := httpHandler.SetupRouter(deps)

	if cfg.Reconciler.Enabled {
		a.Reconciler.Start(ctx)
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
