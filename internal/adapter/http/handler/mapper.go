package handler

import (
	"math"
	"strconv"
	"time"

	"claim-escrow-engine/internal/adapter/http/dto"
	"claim-escrow-engine/internal/core/domain"

	"github.com/gin-gonic/gin"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func toClaimResponse(c *domain.Claim) dto.ClaimResponse {
	resp := dto.ClaimResponse{
		ID:              c.ID.String(),
		ClaimantAddress: c.ClaimantAddress,
		ClaimAmount:     c.ClaimAmount,
		Status:          string(c.Status),
		Confidence:      c.Confidence,
		ApprovedAmount:  c.ApprovedAmount,
		TxHash:          c.TxHash,
		CreatedAt:       c.CreatedAt.UTC().Format(time.RFC3339),
	}
	if c.Decision != nil {
		d := string(*c.Decision)
		resp.Decision = &d
	}
	return resp
}

func toReviewClaimResponse(c *domain.Claim) dto.ReviewClaimResponse {
	return dto.ReviewClaimResponse{
		ClaimResponse:      toClaimResponse(c),
		SettlementAttempts: c.SettlementAttempts,
		FailureReason:      c.FailureReason,
		NeedsReview:        c.NeedsReview,
		UpdatedAt:          c.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toEscrowAccountResponse(a *domain.EscrowAccount) dto.EscrowAccountResponse {
	return dto.EscrowAccountResponse{
		ClaimID:             a.ClaimID.String(),
		LockedAmount:        a.LockedAmount,
		Released:            a.Released,
		ReleasedAmount:      a.ReleasedAmount,
		AuthorizedRecipient: a.AuthorizedRecipient,
		LockTxHash:          a.LockTxHash,
		ReleaseTxHash:       a.ReleaseTxHash,
		PendingTxHash:       a.PendingTxHash,
		CreatedAt:           a.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:           a.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// pagination reads page and page_size, falling back to defaults for bad values.
func pagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(defaultPageSize)))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

func totalPages(total int64, pageSize int) int {
	return int(math.Ceil(float64(total) / float64(pageSize)))
}
