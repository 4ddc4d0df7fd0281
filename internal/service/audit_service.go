package service

import (
	"context"

	"claim-escrow-engine/internal/core/domain"
	"claim-escrow-engine/internal/core/ports"

	"github.com/rs/zerolog"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService creates a new audit service.
// If repo is nil, audit entries are only written to the logger.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Log records an audit entry asynchronously (fire-and-forget). The caller's
// context only contributes its values; cancellation does not drop the entry.
func (s *auditService) Log(ctx context.Context, entry *domain.AuditLog) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		evt := s.log.Info().
			Str("action", string(entry.Action)).
			Str("resource_type", entry.ResourceType).
			Str("resource_id", entry.ResourceID)
		if entry.ActorID != nil {
			evt = evt.Str("actor_id", *entry.ActorID)
		}
		if entry.IPAddress != "" {
			evt = evt.Str("ip", entry.IPAddress)
		}
		evt.Msg("audit")

		if s.repo != nil {
			if err := s.repo.Create(ctx, entry); err != nil {
				s.log.Warn().Err(err).Str("action", string(entry.Action)).Msg("failed to persist audit log")
			}
		}
	}()
}
