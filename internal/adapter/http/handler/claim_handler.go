package handler

import (
	"claim-escrow-engine/internal/adapter/http/dto"
	"claim-escrow-engine/internal/adapter/http/middleware"
	"claim-escrow-engine/internal/core/domain"
	"claim-escrow-engine/internal/core/ports"
	"claim-escrow-engine/pkg/apperror"
	"claim-escrow-engine/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ClaimHandler handles the claim lifecycle endpoints.
type ClaimHandler struct {
	claimSvc ports.ClaimService
}

// NewClaimHandler creates a new ClaimHandler.
func NewClaimHandler(claimSvc ports.ClaimService) *ClaimHandler {
	return &ClaimHandler{claimSvc: claimSvc}
}

// Submit handles POST /api/v1/claims.
func (h *ClaimHandler) Submit(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.SubmitClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	claim, err := h.claimSvc.Submit(c.Request.Context(), ports.SubmitRequest{
		Principal:    principal,
		Amount:       req.ClaimAmount,
		EvidenceRefs: req.EvidenceRefs,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, toClaimResponse(claim))
}

// Get handles GET /api/v1/claims/:id.
func (h *ClaimHandler) Get(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	id, ok := claimIDParam(c, "id")
	if !ok {
		return
	}

	claim, err := h.claimSvc.Get(c.Request.Context(), principal, id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toClaimResponse(claim))
}

// List handles GET /api/v1/claims.
func (h *ClaimHandler) List(c *gin.Context) {
	principal, ok := middleware.PrincipalFrom(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	page, pageSize := pagination(c)
	params := ports.ClaimListParams{Page: page, PageSize: pageSize}
	if s := c.Query("status"); s != "" {
		status, err := domain.ParseClaimStatus(s)
		if err != nil {
			response.Error(c, apperror.Validation("invalid status filter"))
			return
		}
		params.Status = &status
	}

	claims, total, err := h.claimSvc.List(c.Request.Context(), principal, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]dto.ClaimResponse, 0, len(claims))
	for i := range claims {
		items = append(items, toClaimResponse(&claims[i]))
	}

	response.OK(c, dto.ClaimListResponse{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	})
}

// Evaluate handles POST /api/v1/claims/:id/evaluate.
func (h *ClaimHandler) Evaluate(c *gin.Context) {
	id, ok := claimIDParam(c, "id")
	if !ok {
		return
	}

	claim, err := h.claimSvc.Evaluate(c.Request.Context(), id)
	if err != nil {
		if claim != nil && apperror.HasCode(err, apperror.CodeAlreadyDecided) {
			response.ErrorWithData(c, err, toClaimResponse(claim))
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, toClaimResponse(claim))
}

// Settle handles POST /api/v1/claims/:id/settle.
func (h *ClaimHandler) Settle(c *gin.Context) {
	id, ok := claimIDParam(c, "id")
	if !ok {
		return
	}

	claim, err := h.claimSvc.Settle(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toClaimResponse(claim))
}

// claimIDParam parses a UUID path parameter, writing a 400 on failure.
func claimIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		response.Error(c, apperror.Validation("invalid claim id"))
		return uuid.Nil, false
	}
	return id, true
}
