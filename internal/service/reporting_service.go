package service

import (
	"context"
	"time"

	"claim-escrow-engine/internal/core/ports"
	"claim-escrow-engine/pkg/apperror"
)

// reportingService implements ports.ReportingService.
type reportingService struct {
	claimRepo ports.ClaimRepository
	now       func() time.Time
}

// NewReportingService creates a new reporting service.
func NewReportingService(claimRepo ports.ClaimRepository) ports.ReportingService {
	return &reportingService{
		claimRepo: claimRepo,
		now:       time.Now,
	}
}

// GetDashboardStats returns aggregated claim stats for claims created within the period.
func (s *reportingService) GetDashboardStats(ctx context.Context, period string) (*ports.ClaimStats, error) {
	var since *time.Time

	now := s.now().UTC()
	switch period {
	case "day":
		t := now.AddDate(0, 0, -1)
		since = &t
	case "week":
		t := now.AddDate(0, 0, -7)
		since = &t
	case "month":
		t := now.AddDate(0, -1, 0)
		since = &t
	case "all", "":
		// No time filter
	default:
		return nil, apperror.Validation("invalid period: must be day, week, month, or all")
	}

	stats, err := s.claimRepo.GetStats(ctx, since)
	if err != nil {
		return nil, apperror.InternalError(err)
	}

	return stats, nil
}
