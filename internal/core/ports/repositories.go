package ports

//go:generate mockgen -source=repositories.go -destination=mocks/mock_repositories.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"claim-escrow-engine/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// ErrDuplicateKey is returned by repositories when a unique constraint rejects an insert.
var ErrDuplicateKey = errors.New("duplicate key")

// ClaimRepository defines persistence operations for claims.
// State-changing methods are compare-and-set: they return false when the
// stored row no longer matches the expected prior state.
type ClaimRepository interface {
	Create(ctx context.Context, claim *domain.Claim) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Claim, error)
	List(ctx context.Context, params ClaimListParams) ([]domain.Claim, int64, error)
	// RecordDecision commits decision, confidence, approved amount and status
	// only if no decision has been recorded yet.
	RecordDecision(ctx context.Context, id uuid.UUID, rec domain.DecisionRecord) (bool, error)
	// MarkSettled sets tx_hash and SETTLED only from a settleable status.
	MarkSettled(ctx context.Context, id uuid.UUID, txHash string, at time.Time) (bool, error)
	// MarkSettlementFailed moves a settleable claim to SETTLEMENT_FAILED and
	// counts the attempt.
	MarkSettlementFailed(ctx context.Context, id uuid.UUID, reason string, needsReview bool, at time.Time) (bool, error)
	// FlagForReview parks a settleable claim in SETTLEMENT_FAILED for operators
	// without counting another attempt.
	FlagForReview(ctx context.Context, id uuid.UUID, reason string, at time.Time) (bool, error)
	// ListAwaitingSettlement returns settleable claims not flagged for review
	// whose last transition happened before the cutoff, oldest first.
	ListAwaitingSettlement(ctx context.Context, updatedBefore time.Time, limit int) ([]domain.Claim, error)
	GetStats(ctx context.Context, since *time.Time) (*ClaimStats, error)
}

// ClaimListParams holds filter + pagination for listing claims.
type ClaimListParams struct {
	ClaimantID  *string // nil = all claimants
	Status      *domain.ClaimStatus
	NeedsReview *bool
	Page        int
	PageSize    int
}

// ClaimStats holds aggregated statistics for the dashboard.
type ClaimStats struct {
	Total            int64
	Submitted        int64
	Approved         int64
	Rejected         int64
	Settled          int64
	SettlementFailed int64
	NeedsReview      int64
	TotalClaimed     int64 // Sum of claim_amount
	TotalApproved    int64 // Sum of approved_amount
	TotalSettled     int64 // Sum of approved_amount over SETTLED claims
}

// EscrowRepository defines persistence for escrow accounts and their ledger entries.
// Methods accepting pgx.Tx are used inside transaction blocks.
type EscrowRepository interface {
	Create(ctx context.Context, tx pgx.Tx, acct *domain.EscrowAccount) error
	GetByClaimID(ctx context.Context, claimID uuid.UUID) (*domain.EscrowAccount, error)
	// AcquireReleaseLease grants the caller the right to submit a release
	// until the given time, unless the account is released or another lease is live.
	AcquireReleaseLease(ctx context.Context, claimID uuid.UUID, now, until time.Time) (bool, error)
	ClearReleaseLease(ctx context.Context, claimID uuid.UUID) error
	SetPendingTx(ctx context.Context, claimID uuid.UUID, txHash string) error
	// MarkReleased flips released and decrements locked_amount only if the
	// account is still unreleased and holds at least amount.
	MarkReleased(ctx context.Context, tx pgx.Tx, claimID uuid.UUID, amount int64, recipient, txHash string) (bool, error)
	CreateEntry(ctx context.Context, tx pgx.Tx, entry *domain.LedgerEntry) error
}

// AuditRepository persists audit log entries.
type AuditRepository interface {
	Create(ctx context.Context, log *domain.AuditLog) error
}

// DBTransactor provides database transaction management.
type DBTransactor interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}
