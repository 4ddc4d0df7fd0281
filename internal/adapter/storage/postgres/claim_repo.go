package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"claim-escrow-engine/internal/core/domain"
	"claim-escrow-engine/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const claimColumns = `id, claimant_id, claimant_address, claim_amount, evidence_refs, status,
	decision, confidence, approved_amount, tx_hash, created_at, updated_at,
	decided_at, settled_at, settlement_attempts, failure_reason, needs_review`

// settleableStatusSQL matches domain.SettleableStatuses.
const settleableStatusSQL = `status IN ('APPROVED', 'SETTLEMENT_FAILED')`

// ClaimRepo implements ports.ClaimRepository.
// Every transition is a single conditional UPDATE; the affected row count
// tells the caller whether it won.
type ClaimRepo struct {
	pool Pool
}

// NewClaimRepo creates a new ClaimRepo.
func NewClaimRepo(pool Pool) *ClaimRepo {
	return &ClaimRepo{pool: pool}
}

// Create inserts a freshly submitted claim.
func (r *ClaimRepo) Create(ctx context.Context, c *domain.Claim) error {
	query := `INSERT INTO claims (id, claimant_id, claimant_address, claim_amount, evidence_refs,
		status, settlement_attempts, needs_review, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.ClaimantID, c.ClaimantAddress, c.ClaimAmount, c.EvidenceRefs,
		string(c.Status), c.SettlementAttempts, c.NeedsReview, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert claim: %w", err)
	}
	return nil
}

// GetByID fetches a claim by UUID. Returns nil, nil when absent.
func (r *ClaimRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM claims WHERE id = $1`

	c, err := scanClaim(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get claim: %w", err)
	}
	return c, nil
}

// List fetches claims with filtering and pagination, newest first.
func (r *ClaimRepo) List(ctx context.Context, params ports.ClaimListParams) ([]domain.Claim, int64, error) {
	var conditions []string
	var args []any
	argIdx := 1

	if params.ClaimantID != nil {
		conditions = append(conditions, fmt.Sprintf("claimant_id = $%d", argIdx))
		args = append(args, *params.ClaimantID)
		argIdx++
	}
	if params.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", argIdx))
		args = append(args, string(*params.Status))
		argIdx++
	}
	if params.NeedsReview != nil {
		conditions = append(conditions, fmt.Sprintf("needs_review = $%d", argIdx))
		args = append(args, *params.NeedsReview)
		argIdx++
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	// Count total
	var total int64
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM claims %s", where)
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count claims: %w", err)
	}

	// Fetch page
	offset := (params.Page - 1) * params.PageSize
	dataQuery := fmt.Sprintf(`SELECT %s FROM claims %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		claimColumns, where, argIdx, argIdx+1)
	args = append(args, params.PageSize, offset)

	claims, err := r.queryClaims(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list claims: %w", err)
	}
	return claims, total, nil
}

// RecordDecision commits the evaluation outcome if the claim is still undecided.
func (r *ClaimRepo) RecordDecision(ctx context.Context, id uuid.UUID, rec domain.DecisionRecord) (bool, error) {
	query := `UPDATE claims
		SET decision = $1, confidence = $2, approved_amount = $3, status = $4, decided_at = $5, updated_at = $5
		WHERE id = $6 AND decision IS NULL AND status = 'SUBMITTED'`

	tag, err := r.pool.Exec(ctx, query,
		string(rec.Decision), rec.Confidence, rec.ApprovedAmount, string(rec.StatusFor()), rec.DecidedAt, id,
	)
	if err != nil {
		return false, fmt.Errorf("record decision: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkSettled records the confirmed settlement transaction.
func (r *ClaimRepo) MarkSettled(ctx context.Context, id uuid.UUID, txHash string, at time.Time) (bool, error) {
	query := `UPDATE claims
		SET status = 'SETTLED', tx_hash = $1, settled_at = $2, updated_at = $2, failure_reason = NULL
		WHERE id = $3 AND ` + settleableStatusSQL + ` AND tx_hash IS NULL`

	tag, err := r.pool.Exec(ctx, query, txHash, at, id)
	if err != nil {
		return false, fmt.Errorf("mark claim settled: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkSettlementFailed records a failed settlement attempt.
// needs_review is sticky: once set, a later transient failure does not clear it.
func (r *ClaimRepo) MarkSettlementFailed(ctx context.Context, id uuid.UUID, reason string, needsReview bool, at time.Time) (bool, error) {
	query := `UPDATE claims
		SET status = 'SETTLEMENT_FAILED', failure_reason = $1, needs_review = needs_review OR $2,
			settlement_attempts = settlement_attempts + 1, updated_at = $3
		WHERE id = $4 AND ` + settleableStatusSQL

	tag, err := r.pool.Exec(ctx, query, reason, needsReview, at, id)
	if err != nil {
		return false, fmt.Errorf("mark settlement failed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// FlagForReview parks a claim for operator review.
func (r *ClaimRepo) FlagForReview(ctx context.Context, id uuid.UUID, reason string, at time.Time) (bool, error) {
	query := `UPDATE claims
		SET status = 'SETTLEMENT_FAILED', needs_review = TRUE, failure_reason = $1, updated_at = $2
		WHERE id = $3 AND ` + settleableStatusSQL

	tag, err := r.pool.Exec(ctx, query, reason, at, id)
	if err != nil {
		return false, fmt.Errorf("flag claim for review: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ListAwaitingSettlement returns reconciler candidates, oldest transition first.
func (r *ClaimRepo) ListAwaitingSettlement(ctx context.Context, updatedBefore time.Time, limit int) ([]domain.Claim, error) {
	query := `SELECT ` + claimColumns + ` FROM claims
		WHERE ` + settleableStatusSQL + ` AND needs_review = FALSE AND updated_at < $1
		ORDER BY updated_at ASC LIMIT $2`

	claims, err := r.queryClaims(ctx, query, updatedBefore, limit)
	if err != nil {
		return nil, fmt.Errorf("list claims awaiting settlement: %w", err)
	}
	return claims, nil
}

// GetStats aggregates claim counts and amounts, optionally since a point in time.
func (r *ClaimRepo) GetStats(ctx context.Context, since *time.Time) (*ports.ClaimStats, error) {
	var args []any
	where := ""
	if since != nil {
		where = "WHERE created_at >= $1"
		args = append(args, *since)
	}

	query := fmt.Sprintf(`SELECT
		COUNT(*) AS total,
		COUNT(*) FILTER (WHERE status = 'SUBMITTED') AS submitted,
		COUNT(*) FILTER (WHERE status = 'APPROVED') AS approved,
		COUNT(*) FILTER (WHERE status = 'REJECTED') AS rejected,
		COUNT(*) FILTER (WHERE status = 'SETTLED') AS settled,
		COUNT(*) FILTER (WHERE status = 'SETTLEMENT_FAILED') AS settlement_failed,
		COUNT(*) FILTER (WHERE needs_review) AS needs_review,
		COALESCE(SUM(claim_amount), 0) AS total_claimed,
		COALESCE(SUM(approved_amount), 0) AS total_approved,
		COALESCE(SUM(approved_amount) FILTER (WHERE status = 'SETTLED'), 0) AS total_settled
		FROM claims %s`, where)

	stats := &ports.ClaimStats{}
	err := r.pool.QueryRow(ctx, query, args...).Scan(
		&stats.Total, &stats.Submitted, &stats.Approved, &stats.Rejected,
		&stats.Settled, &stats.SettlementFailed, &stats.NeedsReview,
		&stats.TotalClaimed, &stats.TotalApproved, &stats.TotalSettled,
	)
	if err != nil {
		return nil, fmt.Errorf("get claim stats: %w", err)
	}
	return stats, nil
}

func (r *ClaimRepo) queryClaims(ctx context.Context, query string, args ...any) ([]domain.Claim, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []domain.Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, fmt.Errorf("scan claim row: %w", err)
		}
		claims = append(claims, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate claim rows: %w", err)
	}
	return claims, nil
}

// scanClaim reads one row and maps status/decision through the closed
// enumerations, so an unknown stored value is an error.
func scanClaim(row pgx.Row) (*domain.Claim, error) {
	c := &domain.Claim{}
	var status string
	var decision *string
	err := row.Scan(
		&c.ID, &c.ClaimantID, &c.ClaimantAddress, &c.ClaimAmount, &c.EvidenceRefs, &status,
		&decision, &c.Confidence, &c.ApprovedAmount, &c.TxHash, &c.CreatedAt, &c.UpdatedAt,
		&c.DecidedAt, &c.SettledAt, &c.SettlementAttempts, &c.FailureReason, &c.NeedsReview,
	)
	if err != nil {
		return nil, err
	}

	if c.Status, err = domain.ParseClaimStatus(status); err != nil {
		return nil, fmt.Errorf("claim %s: %w", c.ID, err)
	}
	if decision != nil {
		d, err := domain.ParseDecision(*decision)
		if err != nil {
			return nil, fmt.Errorf("claim %s: %w", c.ID, err)
		}
		c.Decision = &d
	}
	return c, nil
}
