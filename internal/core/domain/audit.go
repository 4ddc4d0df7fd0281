package domain

import (
	"time"

	"github.com/google/uuid"
)

// AuditAction represents the type of audited action.
type AuditAction string

const (
	AuditActionSubmit          AuditAction = "CLAIM_SUBMIT"
	AuditActionDecide          AuditAction = "CLAIM_DECIDE"
	AuditActionSettle          AuditAction = "CLAIM_SETTLE"
	AuditActionSettleFailed    AuditAction = "CLAIM_SETTLE_FAILED"
	AuditActionEscrowLock      AuditAction = "ESCROW_LOCK"
	AuditActionEscrowRelease   AuditAction = "ESCROW_RELEASE"
	AuditActionEvaluateRequest AuditAction = "EVALUATE_REQUEST"
	AuditActionSettleRequest   AuditAction = "SETTLE_REQUEST"
)

// AuditLog records a single audited action in the system.
type AuditLog struct {
	ID           uuid.UUID   `json:"id"`
	ActorID      *string     `json:"actor_id,omitempty"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	ResourceID   string      `json:"resource_id,omitempty"`
	Details      string      `json:"details,omitempty"` // JSON string
	IPAddress    string      `json:"ip_address"`
	CreatedAt    time.Time   `json:"created_at"`
}
