package handler

import (
	"claim-escrow-engine/internal/adapter/http/dto"
	"claim-escrow-engine/internal/adapter/http/middleware"
	"claim-escrow-engine/internal/core/ports"
	"claim-escrow-engine/pkg/apperror"
	"claim-escrow-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

// ReviewHandler serves the operator review queue.
type ReviewHandler struct {
	claimSvc ports.ClaimService
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(claimSvc ports.ClaimService) *ReviewHandler {
	return &ReviewHandler{claimSvc: claimSvc}
}

// List handles GET /api/v1/review/claims.
func (h *ReviewHandler) List(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	page, pageSize := pagination(c)
	needsReview := true
	claims, total, err := h.claimSvc.List(c.Request.Context(), principal, ports.ClaimListParams{
		NeedsReview: &needsReview,
		Page:        page,
		PageSize:    pageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.ReviewClaimResponse, 0, len(claims))
	for i := range claims {
		items = append(items, toReviewClaimResponse(&claims[i]))
	}

	response.OK(c, dto.ReviewListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	})
}
