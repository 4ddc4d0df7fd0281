package integration

import (
	"context"
	"sort"
	"sync"
	"time"

	"claim-escrow-engine/internal/core/domain"
	"claim-escrow-engine/internal/core/ports"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// The in-memory repositories apply the same compare-and-set conditions as
// the PostgreSQL statements, so races resolve the way they do in production.

func isSettleable(s domain.ClaimStatus) bool {
	return s == domain.ClaimStatusApproved || s == domain.ClaimStatusSettlementFailed
}

// --- In-Memory Claim Repo ---

type inMemoryClaimRepo struct {
	mu     sync.RWMutex
	claims map[uuid.UUID]*domain.Claim
}

func newInMemoryClaimRepo() *inMemoryClaimRepo {
	return &inMemoryClaimRepo{claims: make(map[uuid.UUID]*domain.Claim)}
}

func (r *inMemoryClaimRepo) Create(ctx context.Context, c *domain.Claim) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *c
	r.claims[c.ID] = &cp
	return nil
}

func (r *inMemoryClaimRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Claim, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.claims[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *inMemoryClaimRepo) List(ctx context.Context, params ports.ClaimListParams) ([]domain.Claim, int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var filtered []domain.Claim
	for _, c := range r.claims {
		if params.ClaimantID != nil && c.ClaimantID != *params.ClaimantID {
			continue
		}
		if params.Status != nil && c.Status != *params.Status {
			continue
		}
		if params.NeedsReview != nil && c.NeedsReview != *params.NeedsReview {
			continue
		}
		filtered = append(filtered, *c)
	}
	sort.Slice(filtered, func(i, j int) bool { return filtered[i].CreatedAt.After(filtered[j].CreatedAt) })

	total := int64(len(filtered))
	start := (params.Page - 1) * params.PageSize
	if start >= len(filtered) {
		return nil, total, nil
	}
	end := start + params.PageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], total, nil
}

func (r *inMemoryClaimRepo) RecordDecision(ctx context.Context, id uuid.UUID, rec domain.DecisionRecord) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.claims[id]
	if !ok || c.Decision != nil || c.Status != domain.ClaimStatusSubmitted {
		return false, nil
	}
	d := rec.Decision
	conf := rec.Confidence
	at := rec.DecidedAt
	c.Decision = &d
	c.Confidence = &conf
	c.ApprovedAmount = rec.ApprovedAmount
	c.Status = rec.StatusFor()
	c.DecidedAt = &at
	c.UpdatedAt = at
	return true, nil
}

func (r *inMemoryClaimRepo) MarkSettled(ctx context.Context, id uuid.UUID, txHash string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.claims[id]
	if !ok || !isSettleable(c.Status) || c.TxHash != nil {
		return false, nil
	}
	hash := txHash
	c.Status = domain.ClaimStatusSettled
	c.TxHash = &hash
	c.SettledAt = &at
	c.UpdatedAt = at
	c.FailureReason = nil
	return true, nil
}

func (r *inMemoryClaimRepo) MarkSettlementFailed(ctx context.Context, id uuid.UUID, reason string, needsReview bool, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.claims[id]
	if !ok || !isSettleable(c.Status) {
		return false, nil
	}
	c.Status = domain.ClaimStatusSettlementFailed
	c.FailureReason = &reason
	c.NeedsReview = c.NeedsReview || needsReview
	c.SettlementAttempts++
	c.UpdatedAt = at
	return true, nil
}

func (r *inMemoryClaimRepo) FlagForReview(ctx context.Context, id uuid.UUID, reason string, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.claims[id]
	if !ok || !isSettleable(c.Status) {
		return false, nil
	}
	c.Status = domain.ClaimStatusSettlementFailed
	c.NeedsReview = true
	c.FailureReason = &reason
	c.UpdatedAt = at
	return true, nil
}

func (r *inMemoryClaimRepo) ListAwaitingSettlement(ctx context.Context, updatedBefore time.Time, limit int) ([]domain.Claim, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []domain.Claim
	for _, c := range r.claims {
		if isSettleable(c.Status) && !c.NeedsReview && c.UpdatedAt.Before(updatedBefore) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UpdatedAt.Before(out[j].UpdatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *inMemoryClaimRepo) GetStats(ctx context.Context, since *time.Time) (*ports.ClaimStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := &ports.ClaimStats{}
	for _, c := range r.claims {
		if since != nil && c.CreatedAt.Before(*since) {
			continue
		}
		stats.Total++
		stats.TotalClaimed += c.ClaimAmount
		if c.ApprovedAmount != nil {
			stats.TotalApproved += *c.ApprovedAmount
		}
		switch c.Status {
		case domain.ClaimStatusSubmitted:
			stats.Submitted++
		case domain.ClaimStatusApproved:
			stats.Approved++
		case domain.ClaimStatusRejected:
			stats.Rejected++
		case domain.ClaimStatusSettled:
			stats.Settled++
			if c.ApprovedAmount != nil {
				stats.TotalSettled += *c.ApprovedAmount
			}
		case domain.ClaimStatusSettlementFailed:
			stats.SettlementFailed++
		}
		if c.NeedsReview {
			stats.NeedsReview++
		}
	}
	return stats, nil
}

// --- In-Memory Escrow Repo ---

type inMemoryEscrowRepo struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]*domain.EscrowAccount
	entries  []domain.LedgerEntry
}

func newInMemoryEscrowRepo() *inMemoryEscrowRepo {
	return &inMemoryEscrowRepo{accounts: make(map[uuid.UUID]*domain.EscrowAccount)}
}

func (r *inMemoryEscrowRepo) Create(ctx context.Context, tx pgx.Tx, a *domain.EscrowAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.accounts[a.ClaimID]; exists {
		return ports.ErrDuplicateKey
	}
	cp := *a
	r.accounts[a.ClaimID] = &cp
	return nil
}

func (r *inMemoryEscrowRepo) GetByClaimID(ctx context.Context, claimID uuid.UUID) (*domain.EscrowAccount, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.accounts[claimID]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (r *inMemoryEscrowRepo) AcquireReleaseLease(ctx context.Context, claimID uuid.UUID, now, until time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[claimID]
	if !ok || a.Released {
		return false, nil
	}
	if a.ReleaseLeaseUntil != nil && !a.ReleaseLeaseUntil.Before(now) {
		return false, nil
	}
	a.ReleaseLeaseUntil = &until
	a.UpdatedAt = now
	return true, nil
}

func (r *inMemoryEscrowRepo) ClearReleaseLease(ctx context.Context, claimID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[claimID]; ok && !a.Released {
		a.ReleaseLeaseUntil = nil
	}
	return nil
}

func (r *inMemoryEscrowRepo) SetPendingTx(ctx context.Context, claimID uuid.UUID, txHash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[claimID]; ok && !a.Released {
		hash := txHash
		a.PendingTxHash = &hash
	}
	return nil
}

func (r *inMemoryEscrowRepo) MarkReleased(ctx context.Context, tx pgx.Tx, claimID uuid.UUID, amount int64, recipient, txHash string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[claimID]
	if !ok || a.Released || a.LockedAmount < amount || a.AuthorizedRecipient != recipient {
		return false, nil
	}
	hash := txHash
	a.Released = true
	a.LockedAmount -= amount
	a.ReleasedAmount = amount
	a.ReleaseTxHash = &hash
	a.PendingTxHash = nil
	a.ReleaseLeaseUntil = nil
	a.UpdatedAt = time.Now().UTC()
	return true, nil
}

func (r *inMemoryEscrowRepo) CreateEntry(ctx context.Context, tx pgx.Tx, e *domain.LedgerEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *e)
	return nil
}

// setRecipient overwrites an account's authorized recipient.
func (r *inMemoryEscrowRepo) setRecipient(claimID uuid.UUID, recipient string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.accounts[claimID]; ok {
		a.AuthorizedRecipient = recipient
	}
}

// entriesFor returns the ledger entries of one claim by type.
func (r *inMemoryEscrowRepo) entriesFor(claimID uuid.UUID, t domain.LedgerEntryType) []domain.LedgerEntry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.LedgerEntry
	for _, e := range r.entries {
		if e.ClaimID == claimID && e.EntryType == t {
			out = append(out, e)
		}
	}
	return out
}

// --- In-Memory Audit Repo ---

type inMemoryAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditLog
}

func (r *inMemoryAuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *log)
	return nil
}

func (r *inMemoryAuditRepo) actions() []domain.AuditAction {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuditAction, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.Action)
	}
	return out
}

// --- In-Memory Transactor ---

type inMemoryTransactor struct{}

func (t *inMemoryTransactor) Begin(ctx context.Context) (pgx.Tx, error) {
	return &noopTx{}, nil
}

// noopTx is a no-op pgx.Tx implementation for in-memory testing.
type noopTx struct{}

func (t *noopTx) Begin(ctx context.Context) (pgx.Tx, error) { return t, nil }
func (t *noopTx) Commit(ctx context.Context) error          { return nil }
func (t *noopTx) Rollback(ctx context.Context) error        { return nil }
func (t *noopTx) CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (t *noopTx) SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults { return nil }
func (t *noopTx) LargeObjects() pgx.LargeObjects                               { return pgx.LargeObjects{} }
func (t *noopTx) Prepare(ctx context.Context, name, sql string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (t *noopTx) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.NewCommandTag(""), nil
}
func (t *noopTx) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}
func (t *noopTx) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	return nil
}
func (t *noopTx) Conn() *pgx.Conn { return nil }
