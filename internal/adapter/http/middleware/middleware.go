package middleware

import (
	"net/http"
	"strings"
	"time"

	"claim-escrow-engine/internal/adapter/http/dto"
	"claim-escrow-engine/internal/core/domain"
	"claim-escrow-engine/internal/core/ports"
	"claim-escrow-engine/pkg/apperror"
	"claim-escrow-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	// HeaderRequestID carries the request correlation ID in both directions.
	HeaderRequestID = "X-Request-ID"

	// CtxPrincipal is the gin context key holding the authenticated domain.Principal.
	CtxPrincipal = "principal"
)

// RequestID propagates a caller-supplied X-Request-ID or assigns a new one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" || len(id) > 64 {
			id = uuid.New().String()
		}
		c.Set(response.RequestIDKey, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// JWTAuth validates the bearer token and stores the caller's principal.
// Claimants must carry a well-formed wallet address since it becomes the
// payout recipient.
func JWTAuth(tokenSvc ports.TokenService, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") || len(authHeader) < 8 {
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		principal, err := tokenSvc.Validate(authHeader[7:])
		if err != nil {
			log.Debug().Err(err).Msg("token rejected")
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		switch principal.Role {
		case domain.RoleClaimant:
			if !dto.IsWalletAddress(principal.WalletAddress) {
				response.Error(c, apperror.ErrInvalidToken())
				c.Abort()
				return
			}
		case domain.RoleAdjuster, domain.RoleAdmin:
		default:
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}

		c.Set(CtxPrincipal, *principal)
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by JWTAuth.
func PrincipalFrom(c *gin.Context) (domain.Principal, bool) {
	v, ok := c.Get(CtxPrincipal)
	if !ok {
		return domain.Principal{}, false
	}
	p, ok := v.(domain.Principal)
	return p, ok
}

// RequireRole rejects callers whose role is not listed.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			response.Error(c, apperror.ErrInvalidToken())
			c.Abort()
			return
		}
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		response.Error(c, apperror.ErrForbidden())
		c.Abort()
	}
}

// RequestLogger creates a middleware that logs every HTTP request.
func RequestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		status := c.Writer.Status()

		event := log.Info()
		if status >= http.StatusInternalServerError {
			event = log.Error()
		} else if status >= http.StatusBadRequest {
			event = log.Warn()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", status).
			Dur("latency", latency).
			Str("client_ip", c.ClientIP()).
			Str("request_id", c.GetString(response.RequestIDKey)).
			Msg("http request")
	}
}

// Recovery creates a panic recovery middleware.
func Recovery(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Str("path", c.Request.URL.Path).Msg("panic recovered")
				c.Abort()
				response.Error(c, apperror.InternalError(nil))
			}
		}()
		c.Next()
	}
}
