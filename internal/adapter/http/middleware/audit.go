package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"claim-escrow-engine/internal/core/domain"
	"claim-escrow-engine/internal/core/ports"
	"claim-escrow-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog records operator-triggered requests against claims, whatever
// their outcome. State transitions themselves are audited by the services.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Request.Method != http.MethodPost {
			return
		}
		action, resourceType := mapRouteToAction(c.FullPath())
		if action == "" {
			return
		}

		var actorID *string
		if p, ok := PrincipalFrom(c); ok {
			id := p.UserID
			actorID = &id
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"request_id": c.GetString(response.RequestIDKey),
		})

		auditSvc.Log(c.Request.Context(), &domain.AuditLog{
			ID:           uuid.New(),
			ActorID:      actorID,
			Action:       action,
			ResourceType: resourceType,
			ResourceID:   c.Param("id"),
			IPAddress:    c.ClientIP(),
			Details:      string(details),
			CreatedAt:    time.Now(),
		})
	}
}

func mapRouteToAction(route string) (domain.AuditAction, string) {
	switch route {
	case "/api/v1/claims/:id/evaluate":
		return domain.AuditActionEvaluateRequest, "claim"
	case "/api/v1/claims/:id/settle":
		return domain.AuditActionSettleRequest, "claim"
	}
	return "", ""
}
