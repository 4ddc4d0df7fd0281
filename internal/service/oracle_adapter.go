package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"claim-escrow-engine/internal/core/domain"
	"claim-escrow-engine/internal/core/ports"
	"claim-escrow-engine/pkg/apperror"

	"github.com/rs/zerolog"
)

// oracleAdapter implements ports.OracleAdapter on top of the raw oracle transport.
type oracleAdapter struct {
	oracle ports.EvaluationOracle
	log    zerolog.Logger
}

// NewOracleAdapter creates a verdict-normalizing oracle adapter.
func NewOracleAdapter(oracle ports.EvaluationOracle, log zerolog.Logger) ports.OracleAdapter {
	return &oracleAdapter{oracle: oracle, log: log}
}

// Evaluate scores the claim and normalizes the verdict.
// Only ORC_001 (retry later) and ORC_002 (input refused) errors leave this method.
func (a *oracleAdapter) Evaluate(ctx context.Context, claim *domain.Claim) (*domain.Verdict, error) {
	resp, err := a.oracle.Score(ctx, ports.OracleRequest{
		ClaimID:      claim.ID.String(),
		ClaimAmount:  claim.ClaimAmount,
		EvidenceRefs: claim.EvidenceRefs,
		ClaimantMetadata: map[string]string{
			"claimant_address": claim.ClaimantAddress,
			"submitted_at":     claim.CreatedAt.UTC().Format(time.RFC3339),
		},
	})
	if err != nil {
		if apperror.HasCode(err, apperror.CodeOracleRejected) || apperror.HasCode(err, apperror.CodeOracleUnavailable) {
			return nil, err
		}
		return nil, apperror.ErrOracleUnavailable(err)
	}

	verdict, err := normalizeVerdict(resp)
	if err != nil {
		a.log.Warn().Err(err).Str("claim_id", claim.ID.String()).Msg("oracle returned unusable verdict")
		return nil, apperror.ErrOracleUnavailable(err)
	}
	return verdict, nil
}

// normalizeVerdict validates a raw response. Confidence passes through
// unchanged when it lies in [0,1]; anything else is a malformed answer.
func normalizeVerdict(resp *ports.OracleResponse) (*domain.Verdict, error) {
	if resp == nil {
		return nil, errors.New("empty oracle response")
	}

	c := resp.Confidence
	if math.IsNaN(c) || math.IsInf(c, 0) || c < 0 || c > 1 {
		return nil, fmt.Errorf("confidence %v out of range", c)
	}

	decision, err := domain.ParseDecision(resp.Decision)
	if err != nil {
		return nil, err
	}

	v := &domain.Verdict{Decision: decision, Confidence: c}
	if decision == domain.DecisionApproved {
		if resp.SuggestedAmount <= 0 {
			return nil, fmt.Errorf("approval with non-positive suggested_amount %d", resp.SuggestedAmount)
		}
		v.SuggestedAmount = resp.SuggestedAmount
	}
	return v, nil
}
