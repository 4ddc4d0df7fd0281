package handler

import (
	"claim-escrow-engine/internal/adapter/http/dto"
	"claim-escrow-engine/internal/core/ports"
	"claim-escrow-engine/pkg/response"

	"github.com/gin-gonic/gin"
)

// DashboardHandler handles dashboard endpoints.
type DashboardHandler struct {
	reportingSvc ports.ReportingService
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(reportingSvc ports.ReportingService) *DashboardHandler {
	return &DashboardHandler{reportingSvc: reportingSvc}
}

// GetStats handles GET /api/v1/dashboard/stats.
func (h *DashboardHandler) GetStats(c *gin.Context) {
	period := c.DefaultQuery("period", "all")
	stats, err := h.reportingSvc.GetDashboardStats(c.Request.Context(), period)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.DashboardStatsResponse{
		Total:            stats.Total,
		Submitted:        stats.Submitted,
		Approved:         stats.Approved,
		Rejected:         stats.Rejected,
		Settled:          stats.Settled,
		SettlementFailed: stats.SettlementFailed,
		NeedsReview:      stats.NeedsReview,
		TotalClaimed:     stats.TotalClaimed,
		TotalApproved:    stats.TotalApproved,
		TotalSettled:     stats.TotalSettled,
	})
}
