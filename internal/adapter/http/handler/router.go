package handler

import (
	"net/http"

	"claim-escrow-engine/internal/adapter/http/middleware"
	redisStore "claim-escrow-engine/internal/adapter/storage/redis"
	"claim-escrow-engine/internal/core/domain"
	"claim-escrow-engine/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	ClaimSvc       ports.ClaimService
	Ledger         ports.EscrowLedger
	ReportingSvc   ports.ReportingService
	TokenSvc       ports.TokenService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService         // nil = request auditing disabled
	HTTPMetrics    *middleware.HTTPMetrics    // nil = no request metrics
	MetricsHandler http.Handler               // nil = /metrics not exposed
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	if deps.HTTPMetrics != nil {
		r.Use(deps.HTTPMetrics.Middleware())
	}
	r.Use(middleware.MaxBodySize(1 << 20))

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(deps.MetricsHandler))
	}

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	staff := middleware.RequireRole(domain.RoleAdjuster, domain.RoleAdmin)

	// Every API route requires a bearer token.
	v1 := r.Group("/api/v1", middleware.JWTAuth(deps.TokenSvc, deps.Logger))

	claimHandler := NewClaimHandler(deps.ClaimSvc)
	claims := v1.Group("/claims")
	{
		claims.POST("", middleware.RequireRole(domain.RoleClaimant), rl("claims_submit"), claimHandler.Submit)
		claims.GET("", rl("claims_read"), claimHandler.List)
		claims.GET("/:id", rl("claims_read"), claimHandler.Get)
		claims.POST("/:id/evaluate", staff, rl("claims_evaluate"), claimHandler.Evaluate)
		claims.POST("/:id/settle", staff, rl("claims_settle"), claimHandler.Settle)
	}

	reviewHandler := NewReviewHandler(deps.ClaimSvc)
	v1.GET("/review/claims", middleware.RequireRole(domain.RoleAdmin), rl("dashboard"), reviewHandler.List)

	escrowHandler := NewEscrowHandler(deps.Ledger)
	v1.GET("/escrow/:claim_id", staff, rl("dashboard"), escrowHandler.Get)

	dashboardHandler := NewDashboardHandler(deps.ReportingSvc)
	v1.GET("/dashboard/stats", staff, rl("dashboard"), dashboardHandler.GetStats)

	return r
}
