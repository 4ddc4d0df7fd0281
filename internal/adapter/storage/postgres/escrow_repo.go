package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"claim-escrow-engine/internal/core/domain"
	"claim-escrow-engine/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const escrowColumns = `claim_id, locked_amount, released, released_amount, authorized_recipient,
	lock_tx_hash, release_tx_hash, pending_tx_hash, release_lease_until, created_at, updated_at`

// EscrowRepo implements ports.EscrowRepository.
type EscrowRepo struct {
	pool Pool
}

// NewEscrowRepo creates a new EscrowRepo.
func NewEscrowRepo(pool Pool) *EscrowRepo {
	return &EscrowRepo{pool: pool}
}

// Create inserts an escrow account within a database transaction.
// A second account for the same claim yields ports.ErrDuplicateKey.
func (r *EscrowRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.EscrowAccount) error {
	query := `INSERT INTO escrow_accounts (claim_id, locked_amount, released, released_amount,
		authorized_recipient, lock_tx_hash, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := tx.Exec(ctx, query,
		a.ClaimID, a.LockedAmount, a.Released, a.ReleasedAmount,
		a.AuthorizedRecipient, a.LockTxHash, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ports.ErrDuplicateKey
		}
		return fmt.Errorf("insert escrow account: %w", err)
	}
	return nil
}

// GetByClaimID fetches the escrow account for a claim. Returns nil, nil when absent.
func (r *EscrowRepo) GetByClaimID(ctx context.Context, claimID uuid.UUID) (*domain.EscrowAccount, error) {
	query := `SELECT ` + escrowColumns + ` FROM escrow_accounts WHERE claim_id = $1`

	a := &domain.EscrowAccount{}
	err := r.pool.QueryRow(ctx, query, claimID).Scan(
		&a.ClaimID, &a.LockedAmount, &a.Released, &a.ReleasedAmount, &a.AuthorizedRecipient,
		&a.LockTxHash, &a.ReleaseTxHash, &a.PendingTxHash, &a.ReleaseLeaseUntil, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get escrow account: %w", err)
	}
	return a, nil
}

// AcquireReleaseLease takes the release lease if no live lease exists.
func (r *EscrowRepo) AcquireReleaseLease(ctx context.Context, claimID uuid.UUID, now, until time.Time) (bool, error) {
	query := `UPDATE escrow_accounts SET release_lease_until = $1, updated_at = $2
		WHERE claim_id = $3 AND released = FALSE
		AND (release_lease_until IS NULL OR release_lease_until < $2)`

	tag, err := r.pool.Exec(ctx, query, until, now, claimID)
	if err != nil {
		return false, fmt.Errorf("acquire release lease: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// ClearReleaseLease drops the release lease so the next attempt need not wait for expiry.
func (r *EscrowRepo) ClearReleaseLease(ctx context.Context, claimID uuid.UUID) error {
	query := `UPDATE escrow_accounts SET release_lease_until = NULL WHERE claim_id = $1 AND released = FALSE`

	if _, err := r.pool.Exec(ctx, query, claimID); err != nil {
		return fmt.Errorf("clear release lease: %w", err)
	}
	return nil
}

// SetPendingTx remembers a submitted but unconfirmed release transaction.
func (r *EscrowRepo) SetPendingTx(ctx context.Context, claimID uuid.UUID, txHash string) error {
	query := `UPDATE escrow_accounts SET pending_tx_hash = $1, updated_at = $2
		WHERE claim_id = $3 AND released = FALSE`

	tag, err := r.pool.Exec(ctx, query, txHash, time.Now().UTC(), claimID)
	if err != nil {
		return fmt.Errorf("set pending tx: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("escrow account not pending release: %s", claimID)
	}
	return nil
}

// MarkReleased flips the write-once released flag within a database transaction.
func (r *EscrowRepo) MarkReleased(ctx context.Context, tx pgx.Tx, claimID uuid.UUID, amount int64, recipient, txHash string) (bool, error) {
	query := `UPDATE escrow_accounts
		SET released = TRUE, locked_amount = locked_amount - $1, released_amount = $1,
			release_tx_hash = $2, pending_tx_hash = NULL, release_lease_until = NULL, updated_at = $3
		WHERE claim_id = $4 AND released = FALSE AND locked_amount >= $1 AND authorized_recipient = $5`

	tag, err := tx.Exec(ctx, query, amount, txHash, time.Now().UTC(), claimID, recipient)
	if err != nil {
		return false, fmt.Errorf("mark escrow released: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// CreateEntry appends a ledger entry within a database transaction.
func (r *EscrowRepo) CreateEntry(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	query := `INSERT INTO escrow_ledger_entries (id, claim_id, entry_type, amount, recipient, tx_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query,
		e.ID, e.ClaimID, string(e.EntryType), e.Amount, e.Recipient, e.TxHash, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}
