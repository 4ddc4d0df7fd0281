package handler

import (
	"claim-escrow-engine/internal/core/ports"
	"claim-escrow-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

// EscrowHandler exposes escrow accounts to operators.
type EscrowHandler struct {
	ledger ports.EscrowLedger
}

// NewEscrowHandler creates a new EscrowHandler.
func NewEscrowHandler(ledger ports.EscrowLedger) *EscrowHandler {
	return &EscrowHandler{ledger: ledger}
}

// Get handles GET /api/v1/escrow/:claim_id.
func (h *EscrowHandler) Get(c *gin.Context) {
	id, ok := claimIDParam(c, "claim_id")
	if !ok {
		return
	}

	acct, err := h.ledger.Get(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toEscrowAccountResponse(acct))
}
