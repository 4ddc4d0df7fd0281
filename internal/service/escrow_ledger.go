package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"claim-escrow-engine/config"
	"claim-escrow-engine/internal/core/domain"
	"claim-escrow-engine/internal/core/ports"
	"claim-escrow-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// EscrowLedgerImpl implements ports.EscrowLedger. Every account change is a
// compare-and-set statement; chain calls never run inside a DB transaction.
type EscrowLedgerImpl struct {
	claimRepo  ports.ClaimRepository
	escrowRepo ports.EscrowRepository
	transactor ports.DBTransactor
	contract   ports.EscrowContract
	auditSvc   ports.AuditService
	cfg        config.ChainConfig
	now        func() time.Time
	log        zerolog.Logger
}

// NewEscrowLedger creates a new EscrowLedgerImpl.
func NewEscrowLedger(
	claimRepo ports.ClaimRepository,
	escrowRepo ports.EscrowRepository,
	transactor ports.DBTransactor,
	contract ports.EscrowContract,
	auditSvc ports.AuditService,
	cfg config.ChainConfig,
	log zerolog.Logger,
) *EscrowLedgerImpl {
	return &EscrowLedgerImpl{
		claimRepo:  claimRepo,
		escrowRepo: escrowRepo,
		transactor: transactor,
		contract:   contract,
		auditSvc:   auditSvc,
		cfg:        cfg,
		now:        func() time.Time { return time.Now().UTC() },
		log:        log,
	}
}

// Lock escrows amount for an approved claim and records the account.
func (l *EscrowLedgerImpl) Lock(ctx context.Context, claimID uuid.UUID, amount int64) (*domain.EscrowAccount, error) {
	if amount <= 0 {
		return nil, apperror.ErrInvalidInput("lock amount must be positive")
	}

	existing, err := l.escrowRepo.GetByClaimID(ctx, claimID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get escrow account: %w", err))
	}
	if existing != nil {
		return nil, apperror.ErrAlreadyLocked()
	}

	claim, err := l.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get claim: %w", err))
	}
	if claim == nil {
		return nil, apperror.ErrNotFound("claim")
	}
	if claim.Decision == nil || *claim.Decision != domain.DecisionApproved || claim.ApprovedAmount == nil {
		return nil, apperror.ErrInvalidState("escrow can only be locked for an approved claim")
	}
	if amount > *claim.ApprovedAmount {
		return nil, apperror.ErrInvalidInput("lock amount exceeds approved amount")
	}

	var lockTx *string
	hash, err := l.contract.Lock(ctx, claimID.String(), amount)
	switch {
	case errors.Is(err, ports.ErrContractAlreadyLocked):
		// A previous attempt locked on-chain but never recorded the account.
		l.log.Warn().Str("claim_id", claimID.String()).Msg("adopting existing on-chain escrow lock")
	case errors.Is(err, ports.ErrContractRejected):
		return nil, apperror.ErrInvalidState(fmt.Sprintf("escrow contract refused lock: %v", err))
	case err != nil:
		return nil, apperror.ErrSettlementTransient(fmt.Errorf("submit lock: %w", err))
	default:
		if err := l.awaitConfirmation(ctx, hash); err != nil {
			return nil, err
		}
		lockTx = &hash
	}

	now := l.now()
	acct := &domain.EscrowAccount{
		ClaimID:             claimID,
		LockedAmount:        amount,
		AuthorizedRecipient: claim.ClaimantAddress,
		LockTxHash:          lockTx,
		CreatedAt:           now,
		UpdatedAt:           now,
	}

	dbTx, err := l.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	if err := l.escrowRepo.Create(ctx, dbTx, acct); err != nil {
		if errors.Is(err, ports.ErrDuplicateKey) {
			return nil, apperror.ErrAlreadyLocked()
		}
		return nil, apperror.InternalError(fmt.Errorf("create escrow account: %w", err))
	}
	if err := l.escrowRepo.CreateEntry(ctx, dbTx, &domain.LedgerEntry{
		ID:        uuid.New(),
		ClaimID:   claimID,
		EntryType: domain.LedgerEntryLock,
		Amount:    amount,
		Recipient: acct.AuthorizedRecipient,
		TxHash:    lockTx,
		CreatedAt: now,
	}); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create lock entry: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	l.audit(ctx, domain.AuditActionEscrowLock, claimID, fmt.Sprintf(`{"amount":%d}`, amount))
	l.log.Info().
		Str("claim_id", claimID.String()).
		Int64("amount", amount).
		Msg("escrow locked")

	return acct, nil
}

// Release pays amount to recipient at most once per claim. Repeating a
// completed release with the same parameters returns the original TxRef.
func (l *EscrowLedgerImpl) Release(ctx context.Context, claimID uuid.UUID, recipient string, amount int64) (ref *domain.TxRef, err error) {
	acct, err := l.escrowRepo.GetByClaimID(ctx, claimID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get escrow account: %w", err))
	}
	if acct == nil {
		return nil, apperror.ErrNotLocked()
	}
	if acct.Released {
		return existingRelease(acct, recipient, amount)
	}
	if !strings.EqualFold(recipient, acct.AuthorizedRecipient) {
		return nil, apperror.ErrRecipientMismatch()
	}
	if amount <= 0 {
		return nil, apperror.ErrInvalidInput("release amount must be positive")
	}
	if amount > acct.LockedAmount {
		return nil, apperror.ErrAmountExceedsLock()
	}

	now := l.now()
	leased, err := l.escrowRepo.AcquireReleaseLease(ctx, claimID, now, now.Add(l.cfg.ReleaseLease))
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("acquire release lease: %w", err))
	}
	if !leased {
		return l.afterLostRace(ctx, claimID, recipient, amount)
	}
	defer func() {
		if err == nil {
			return
		}
		if cerr := l.escrowRepo.ClearReleaseLease(context.WithoutCancel(ctx), claimID); cerr != nil {
			l.log.Warn().Err(cerr).Str("claim_id", claimID.String()).Msg("failed to clear release lease")
		}
	}()

	hash, err := l.submitRelease(ctx, acct, amount)
	if err != nil {
		return nil, err
	}
	if err := l.awaitConfirmation(ctx, hash); err != nil {
		return nil, err
	}

	dbTx, err := l.transactor.Begin(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("begin tx: %w", err))
	}
	defer dbTx.Rollback(ctx) //nolint:errcheck

	ok, err := l.escrowRepo.MarkReleased(ctx, dbTx, claimID, amount, acct.AuthorizedRecipient, hash)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("mark released: %w", err))
	}
	if !ok {
		_ = dbTx.Rollback(ctx)
		return l.afterLostRace(ctx, claimID, recipient, amount)
	}
	if err := l.escrowRepo.CreateEntry(ctx, dbTx, &domain.LedgerEntry{
		ID:        uuid.New(),
		ClaimID:   claimID,
		EntryType: domain.LedgerEntryRelease,
		Amount:    amount,
		Recipient: acct.AuthorizedRecipient,
		TxHash:    &hash,
		CreatedAt: l.now(),
	}); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create release entry: %w", err))
	}
	if err := dbTx.Commit(ctx); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("commit tx: %w", err))
	}

	l.audit(ctx, domain.AuditActionEscrowRelease, claimID,
		fmt.Sprintf(`{"amount":%d,"tx_hash":%q}`, amount, hash))
	l.log.Info().
		Str("claim_id", claimID.String()).
		Int64("amount", amount).
		Str("tx_hash", hash).
		Msg("escrow released")

	return &domain.TxRef{Hash: hash}, nil
}

// Get returns the escrow account for a claim.
func (l *EscrowLedgerImpl) Get(ctx context.Context, claimID uuid.UUID) (*domain.EscrowAccount, error) {
	acct, err := l.escrowRepo.GetByClaimID(ctx, claimID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get escrow account: %w", err))
	}
	if acct == nil {
		return nil, apperror.ErrNotFound("escrow account")
	}
	return acct, nil
}

// existingRelease answers a retry against an already released account.
func existingRelease(acct *domain.EscrowAccount, recipient string, amount int64) (*domain.TxRef, error) {
	if acct.ReleaseTxHash == nil {
		return nil, apperror.InternalError(fmt.Errorf("released escrow %s has no release tx", acct.ClaimID))
	}
	if !strings.EqualFold(recipient, acct.AuthorizedRecipient) || amount != acct.ReleasedAmount {
		return nil, apperror.ErrAlreadyReleased()
	}
	return &domain.TxRef{Hash: *acct.ReleaseTxHash}, nil
}

// afterLostRace reloads the account when another worker holds the lease or
// committed first.
func (l *EscrowLedgerImpl) afterLostRace(ctx context.Context, claimID uuid.UUID, recipient string, amount int64) (*domain.TxRef, error) {
	acct, err := l.escrowRepo.GetByClaimID(ctx, claimID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("reload escrow account: %w", err))
	}
	if acct != nil && acct.Released {
		return existingRelease(acct, recipient, amount)
	}
	return nil, apperror.ErrSettlementTransient(errors.New("release in progress by another worker"))
}

// submitRelease returns the hash of the transaction that settles the claim,
// adopting an on-chain settlement or an unconfirmed earlier submission before
// broadcasting a new release.
func (l *EscrowLedgerImpl) submitRelease(ctx context.Context, acct *domain.EscrowAccount, amount int64) (string, error) {
	claimID := acct.ClaimID.String()

	settled, err := l.contract.IsSettled(ctx, claimID)
	if err != nil {
		return "", apperror.ErrSettlementTransient(fmt.Errorf("query settlement: %w", err))
	}
	if settled {
		return l.adoptSettlement(ctx, claimID)
	}

	// A recorded submission is only replaced once it has definitively reverted.
	if acct.PendingTxHash != nil {
		pending := *acct.PendingTxHash
		rcpt, err := l.contract.Receipt(ctx, pending)
		if err != nil {
			return "", apperror.ErrSettlementTransient(fmt.Errorf("query pending release %s: %w", pending, err))
		}
		if rcpt.Status != domain.ReceiptReverted {
			l.log.Info().Str("claim_id", claimID).Str("tx_hash", pending).Msg("resuming confirmation of submitted release")
			return pending, nil
		}
		l.log.Warn().Str("claim_id", claimID).Str("tx_hash", pending).Str("reason", rcpt.RevertReason).Msg("submitted release reverted, broadcasting again")
	}

	hash, err := l.contract.Release(ctx, claimID, acct.AuthorizedRecipient, amount)
	switch {
	case errors.Is(err, ports.ErrContractAlreadySettled):
		return l.adoptSettlement(ctx, claimID)
	case errors.Is(err, ports.ErrContractRejected):
		notLocked := apperror.ErrNotLocked()
		notLocked.Err = err
		return "", notLocked
	case err != nil:
		return "", apperror.ErrSettlementTransient(fmt.Errorf("submit release: %w", err))
	}

	if err := l.escrowRepo.SetPendingTx(ctx, acct.ClaimID, hash); err != nil {
		l.log.Warn().Err(err).Str("claim_id", claimID).Str("tx_hash", hash).Msg("failed to record pending release tx")
	}
	return hash, nil
}

func (l *EscrowLedgerImpl) adoptSettlement(ctx context.Context, claimID string) (string, error) {
	hash, err := l.contract.SettlementTx(ctx, claimID)
	if err != nil {
		return "", apperror.ErrSettlementTransient(fmt.Errorf("query settlement tx: %w", err))
	}
	if hash == "" {
		return "", apperror.ErrSettlementTransient(errors.New("contract reports settled without a settlement tx"))
	}
	l.log.Warn().Str("claim_id", claimID).Str("tx_hash", hash).Msg("adopting existing on-chain settlement")
	return hash, nil
}

// awaitConfirmation polls the receipt until it confirms, reverts or the
// confirmation timeout elapses. Receipt lookup errors are retried.
func (l *EscrowLedgerImpl) awaitConfirmation(ctx context.Context, hash string) error {
	ctx, cancel := context.WithTimeout(ctx, l.cfg.ConfirmTimeout)
	defer cancel()

	ticker := time.NewTicker(l.cfg.PollInterval)
	defer ticker.Stop()

	for {
		rcpt, err := l.contract.Receipt(ctx, hash)
		switch {
		case err != nil:
			l.log.Debug().Err(err).Str("tx_hash", hash).Msg("receipt lookup failed")
		case rcpt.Status == domain.ReceiptConfirmed:
			return nil
		case rcpt.Status == domain.ReceiptReverted:
			return apperror.ErrSettlementTransient(fmt.Errorf("tx %s reverted: %s", hash, rcpt.RevertReason))
		}

		select {
		case <-ctx.Done():
			return apperror.ErrSettlementTransient(fmt.Errorf("awaiting confirmation of %s: %w", hash, ctx.Err()))
		case <-ticker.C:
		}
	}
}

func (l *EscrowLedgerImpl) audit(ctx context.Context, action domain.AuditAction, claimID uuid.UUID, details string) {
	if l.auditSvc == nil {
		return
	}
	l.auditSvc.Log(ctx, &domain.AuditLog{
		ID:           uuid.New(),
		Action:       action,
		ResourceType: "escrow_account",
		ResourceID:   claimID.String(),
		Details:      details,
		CreatedAt:    l.now(),
	})
}
