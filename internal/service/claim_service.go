package service

import (
	"context"
	"fmt"
	"time"

	"claim-escrow-engine/internal/core/domain"
	"claim-escrow-engine/internal/core/ports"
	"claim-escrow-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxEvidenceRefs = 20
)

// ClaimServiceImpl implements ports.ClaimService. Concurrent calls on the same
// claim are serialized by the repository's compare-and-set statements; no lock
// is held while the oracle or the ledger is working.
type ClaimServiceImpl struct {
	claimRepo ports.ClaimRepository
	oracle    ports.OracleAdapter
	ledger    ports.EscrowLedger
	auditSvc  ports.AuditService
	notifier  ports.Notifier
	now       func() time.Time
	log       zerolog.Logger
}

// NewClaimService creates a new ClaimServiceImpl. notifier may be nil.
func NewClaimService(
	claimRepo ports.ClaimRepository,
	oracle ports.OracleAdapter,
	ledger ports.EscrowLedger,
	auditSvc ports.AuditService,
	notifier ports.Notifier,
	log zerolog.Logger,
) *ClaimServiceImpl {
	return &ClaimServiceImpl{
		claimRepo: claimRepo,
		oracle:    oracle,
		ledger:    ledger,
		auditSvc:  auditSvc,
		notifier:  notifier,
		now:       func() time.Time { return time.Now().UTC() },
		log:       log,
	}
}

// Submit creates a SUBMITTED claim owned by the principal.
func (s *ClaimServiceImpl) Submit(ctx context.Context, req ports.SubmitRequest) (*domain.Claim, error) {
	if req.Amount <= 0 {
		return nil, apperror.ErrInvalidInput("claim amount must be positive")
	}
	if len(req.EvidenceRefs) == 0 {
		return nil, apperror.ErrInvalidInput("at least one evidence reference is required")
	}
	if len(req.EvidenceRefs) > maxEvidenceRefs {
		return nil, apperror.ErrInvalidInput(fmt.Sprintf("at most %d evidence references are allowed", maxEvidenceRefs))
	}
	if req.Principal.WalletAddress == "" {
		return nil, apperror.ErrInvalidInput("principal has no wallet address")
	}

	now := s.now()
	claim := &domain.Claim{
		ID:              uuid.New(),
		ClaimantID:      req.Principal.UserID,
		ClaimantAddress: req.Principal.WalletAddress,
		ClaimAmount:     req.Amount,
		EvidenceRefs:    append([]string(nil), req.EvidenceRefs...),
		Status:          domain.ClaimStatusSubmitted,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.claimRepo.Create(ctx, claim); err != nil {
		return nil, apperror.InternalError(fmt.Errorf("create claim: %w", err))
	}

	s.audit(ctx, &req.Principal.UserID, domain.AuditActionSubmit, claim,
		fmt.Sprintf(`{"claim_amount":%d,"evidence_refs":%d}`, claim.ClaimAmount, len(claim.EvidenceRefs)))
	s.log.Info().
		Str("claim_id", claim.ID.String()).
		Str("claimant_id", claim.ClaimantID).
		Int64("claim_amount", claim.ClaimAmount).
		Msg("claim submitted")

	return claim, nil
}

// Evaluate asks the oracle for a verdict and records it exactly once.
func (s *ClaimServiceImpl) Evaluate(ctx context.Context, claimID uuid.UUID) (*domain.Claim, error) {
	claim, err := s.load(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if claim.IsDecided() {
		return claim, apperror.ErrAlreadyDecided()
	}

	rec := domain.DecisionRecord{DecidedAt: s.now()}
	verdict, err := s.oracle.Evaluate(ctx, claim)
	switch {
	case apperror.HasCode(err, apperror.CodeOracleRejected):
		s.log.Info().Err(err).Str("claim_id", claim.ID.String()).Msg("oracle refused claim input, rejecting")
		rec.Decision = domain.DecisionRejected
	case err != nil:
		return nil, err
	default:
		rec.Decision = verdict.Decision
		rec.Confidence = verdict.Confidence
		rec.ApprovedAmount = verdict.ApprovedAmountFor(claim.ClaimAmount)
	}

	ok, err := s.claimRepo.RecordDecision(ctx, claim.ID, rec)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("record decision: %w", err))
	}
	if !ok {
		// Lost the race: report the decision that was committed instead.
		committed, err := s.load(ctx, claim.ID)
		if err != nil {
			return nil, err
		}
		return committed, apperror.ErrAlreadyDecided()
	}

	decision := rec.Decision
	confidence := rec.Confidence
	claim.Decision = &decision
	claim.Confidence = &confidence
	claim.ApprovedAmount = rec.ApprovedAmount
	claim.Status = rec.StatusFor()
	claim.DecidedAt = &rec.DecidedAt
	claim.UpdatedAt = rec.DecidedAt

	s.audit(ctx, nil, domain.AuditActionDecide, claim,
		fmt.Sprintf(`{"decision":%q,"confidence":%g}`, decision, confidence))
	s.log.Info().
		Str("claim_id", claim.ID.String()).
		Str("status", string(claim.Status)).
		Float64("confidence", confidence).
		Msg("claim decided")
	s.notify(ctx, claim)

	if claim.Status == domain.ClaimStatusApproved {
		if _, err := s.ledger.Lock(ctx, claim.ID, *claim.ApprovedAmount); err != nil {
			s.log.Warn().Err(err).Str("claim_id", claim.ID.String()).Msg("escrow lock after approval failed, settlement will retry")
		}
	}

	return claim, nil
}

// Settle releases the approved amount to the claimant. It makes one attempt;
// failures are recorded on the claim for the reconciler.
func (s *ClaimServiceImpl) Settle(ctx context.Context, claimID uuid.UUID) (*domain.Claim, error) {
	claim, err := s.load(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if !claim.IsSettleable() {
		return nil, apperror.ErrInvalidState(fmt.Sprintf("claim in status %s cannot be settled", claim.Status))
	}
	if claim.ApprovedAmount == nil {
		return nil, apperror.InternalError(fmt.Errorf("settleable claim %s has no approved amount", claim.ID))
	}

	ref, err := s.release(ctx, claim)
	if err != nil {
		return nil, s.recordFailure(ctx, claim, err)
	}

	at := s.now()
	ok, err := s.claimRepo.MarkSettled(ctx, claim.ID, ref.Hash, at)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("mark settled: %w", err))
	}
	if !ok {
		// A concurrent settle committed first; report what it stored.
		return s.load(ctx, claim.ID)
	}

	claim.Status = domain.ClaimStatusSettled
	claim.TxHash = &ref.Hash
	claim.SettledAt = &at
	claim.UpdatedAt = at
	claim.FailureReason = nil

	s.audit(ctx, nil, domain.AuditActionSettle, claim, fmt.Sprintf(`{"tx_hash":%q}`, ref.Hash))
	s.log.Info().
		Str("claim_id", claim.ID.String()).
		Str("tx_hash", ref.Hash).
		Int64("amount", *claim.ApprovedAmount).
		Msg("claim settled")
	s.notify(ctx, claim)

	return claim, nil
}

// Get returns a claim the principal is allowed to see.
func (s *ClaimServiceImpl) Get(ctx context.Context, principal domain.Principal, claimID uuid.UUID) (*domain.Claim, error) {
	claim, err := s.load(ctx, claimID)
	if err != nil {
		return nil, err
	}
	if !principal.CanView(claim) {
		return nil, apperror.ErrForbidden()
	}
	return claim, nil
}

// List returns a page of claims. Claimants only ever see their own.
func (s *ClaimServiceImpl) List(ctx context.Context, principal domain.Principal, params ports.ClaimListParams) ([]domain.Claim, int64, error) {
	if !principal.IsStaff() {
		params.ClaimantID = &principal.UserID
		params.NeedsReview = nil
	}
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PageSize < 1 {
		params.PageSize = defaultPageSize
	}
	if params.PageSize > maxPageSize {
		params.PageSize = maxPageSize
	}

	claims, total, err := s.claimRepo.List(ctx, params)
	if err != nil {
		return nil, 0, apperror.InternalError(fmt.Errorf("list claims: %w", err))
	}
	return claims, total, nil
}

func (s *ClaimServiceImpl) load(ctx context.Context, claimID uuid.UUID) (*domain.Claim, error) {
	claim, err := s.claimRepo.GetByID(ctx, claimID)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("get claim: %w", err))
	}
	if claim == nil {
		return nil, apperror.ErrNotFound("claim")
	}
	return claim, nil
}

// release ensures the escrow lock exists and asks the ledger to pay out.
func (s *ClaimServiceImpl) release(ctx context.Context, claim *domain.Claim) (*domain.TxRef, error) {
	amount := *claim.ApprovedAmount

	if _, err := s.ledger.Lock(ctx, claim.ID, amount); err != nil {
		switch apperror.CodeOf(err) {
		case apperror.CodeAlreadyLocked:
		case apperror.CodeInvalidInput, apperror.CodeInvalidState, apperror.CodeNotFound:
			notLocked := apperror.ErrNotLocked()
			notLocked.Err = err
			return nil, notLocked
		default:
			return nil, err
		}
	}

	return s.ledger.Release(ctx, claim.ID, claim.ClaimantAddress, amount)
}

// recordFailure moves the claim to SETTLEMENT_FAILED and returns cause.
// Permanent ledger errors park the claim for operator review.
func (s *ClaimServiceImpl) recordFailure(ctx context.Context, claim *domain.Claim, cause error) error {
	// The failure is recorded even when the caller has gone away.
	ctx = context.WithoutCancel(ctx)
	needsReview := apperror.IsPermanentSettlement(cause)
	at := s.now()

	ok, err := s.claimRepo.MarkSettlementFailed(ctx, claim.ID, cause.Error(), needsReview, at)
	if err != nil {
		s.log.Error().Err(err).Str("claim_id", claim.ID.String()).Msg("failed to record settlement failure")
		return cause
	}
	if !ok {
		s.log.Debug().Str("claim_id", claim.ID.String()).Msg("claim changed while settling, failure not recorded")
		return cause
	}

	reason := cause.Error()
	claim.Status = domain.ClaimStatusSettlementFailed
	claim.SettlementAttempts++
	claim.FailureReason = &reason
	claim.NeedsReview = claim.NeedsReview || needsReview
	claim.UpdatedAt = at

	s.audit(ctx, nil, domain.AuditActionSettleFailed, claim,
		fmt.Sprintf(`{"error_code":%q,"needs_review":%t}`, apperror.CodeOf(cause), needsReview))
	s.log.Warn().
		Err(cause).
		Str("claim_id", claim.ID.String()).
		Int("attempt", claim.SettlementAttempts).
		Bool("needs_review", needsReview).
		Msg("settlement failed")
	s.notify(ctx, claim)

	return cause
}

func (s *ClaimServiceImpl) audit(ctx context.Context, actorID *string, action domain.AuditAction, claim *domain.Claim, details string) {
	if s.auditSvc == nil {
		return
	}
	s.auditSvc.Log(ctx, &domain.AuditLog{
		ID:           uuid.New(),
		ActorID:      actorID,
		Action:       action,
		ResourceType: "claim",
		ResourceID:   claim.ID.String(),
		Details:      details,
		CreatedAt:    s.now(),
	})
}

func (s *ClaimServiceImpl) notify(ctx context.Context, claim *domain.Claim) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.NotifyStatusChange(ctx, claim); err != nil {
		s.log.Warn().Err(err).Str("claim_id", claim.ID.String()).Msg("status notification failed")
	}
}
