package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ClaimStatus represents the lifecycle state of a claim.
type ClaimStatus string

const (
	ClaimStatusSubmitted        ClaimStatus = "SUBMITTED"
	ClaimStatusApproved         ClaimStatus = "APPROVED"
	ClaimStatusRejected         ClaimStatus = "REJECTED"
	ClaimStatusSettled          ClaimStatus = "SETTLED"
	ClaimStatusSettlementFailed ClaimStatus = "SETTLEMENT_FAILED"
)

// ParseClaimStatus maps a stored status string onto the closed enumeration.
// Unknown values are an error, never a default.
func ParseClaimStatus(s string) (ClaimStatus, error) {
	switch st := ClaimStatus(s); st {
	case ClaimStatusSubmitted, ClaimStatusApproved, ClaimStatusRejected,
		ClaimStatusSettled, ClaimStatusSettlementFailed:
		return st, nil
	}
	return "", fmt.Errorf("unrecognized claim status %q", s)
}

// Decision is the immutable outcome of an evaluation.
type Decision string

const (
	DecisionApproved Decision = "APPROVED"
	DecisionRejected Decision = "REJECTED"
)

// ParseDecision maps a stored decision string onto the closed enumeration.
func ParseDecision(s string) (Decision, error) {
	switch d := Decision(s); d {
	case DecisionApproved, DecisionRejected:
		return d, nil
	}
	return "", fmt.Errorf("unrecognized decision %q", s)
}

// claimTransitions lists every legal status change. SETTLEMENT_FAILED may
// re-enter itself so a failed retry can record another attempt.
var claimTransitions = map[ClaimStatus][]ClaimStatus{
	ClaimStatusSubmitted:        {ClaimStatusApproved, ClaimStatusRejected},
	ClaimStatusApproved:         {ClaimStatusSettled, ClaimStatusSettlementFailed},
	ClaimStatusSettlementFailed: {ClaimStatusSettled, ClaimStatusSettlementFailed},
}

// CanTransition reports whether from -> to is a legal lifecycle step.
func CanTransition(from, to ClaimStatus) bool {
	for _, next := range claimTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// SettleableStatuses are the states from which settlement may be attempted.
var SettleableStatuses = []ClaimStatus{ClaimStatusApproved, ClaimStatusSettlementFailed}

// Claim is one insurance claim submission. Claims are never deleted.
type Claim struct {
	ID              uuid.UUID   `json:"id"`
	ClaimantID      string      `json:"-"`
	ClaimantAddress string      `json:"claimant_address"`
	ClaimAmount     int64       `json:"claim_amount"` // In smallest unit
	EvidenceRefs    []string    `json:"-"`
	Status          ClaimStatus `json:"status"`
	Decision        *Decision   `json:"decision"`
	Confidence      *float64    `json:"confidence"`
	ApprovedAmount  *int64      `json:"approved_amount"`
	TxHash          *string     `json:"tx_hash"`
	CreatedAt       time.Time   `json:"created_at"`

	// Bookkeeping for the reconciler and operator review.
	UpdatedAt          time.Time  `json:"-"`
	DecidedAt          *time.Time `json:"-"`
	SettledAt          *time.Time `json:"-"`
	SettlementAttempts int        `json:"-"`
	FailureReason      *string    `json:"-"`
	NeedsReview        bool       `json:"-"`
}

// IsTerminal returns true if the claim can no longer change status.
func (c *Claim) IsTerminal() bool {
	return c.Status == ClaimStatusRejected || c.Status == ClaimStatusSettled
}

// IsSettleable returns true if settlement may be attempted.
func (c *Claim) IsSettleable() bool {
	return c.Status == ClaimStatusApproved || c.Status == ClaimStatusSettlementFailed
}

// IsDecided returns true once an evaluation outcome has been recorded.
func (c *Claim) IsDecided() bool {
	return c.Decision != nil
}

// CheckInvariants verifies the field relationships every stored claim must satisfy.
func (c *Claim) CheckInvariants() error {
	var errs []error

	decided := c.Status != ClaimStatusSubmitted
	if (c.Decision != nil) != decided {
		errs = append(errs, fmt.Errorf("decision set=%t but status=%s", c.Decision != nil, c.Status))
	}
	if (c.TxHash != nil) != (c.Status == ClaimStatusSettled) {
		errs = append(errs, fmt.Errorf("tx_hash set=%t but status=%s", c.TxHash != nil, c.Status))
	}
	approved := c.Decision != nil && *c.Decision == DecisionApproved
	if (c.ApprovedAmount != nil) != approved {
		errs = append(errs, fmt.Errorf("approved_amount set=%t but decision=%v", c.ApprovedAmount != nil, c.Decision))
	}
	if c.ApprovedAmount != nil && *c.ApprovedAmount > c.ClaimAmount {
		errs = append(errs, fmt.Errorf("approved_amount %d exceeds claim_amount %d", *c.ApprovedAmount, c.ClaimAmount))
	}
	if c.Decision != nil && *c.Decision == DecisionRejected && c.Status != ClaimStatusRejected {
		errs = append(errs, fmt.Errorf("rejected claim has status %s", c.Status))
	}
	if (c.Confidence != nil) != (c.Decision != nil) {
		errs = append(errs, errors.New("confidence and decision must be set together"))
	}
	if c.Confidence != nil && (*c.Confidence < 0 || *c.Confidence > 1) {
		errs = append(errs, fmt.Errorf("confidence %v out of range", *c.Confidence))
	}
	if c.ClaimAmount <= 0 {
		errs = append(errs, fmt.Errorf("claim_amount %d must be positive", c.ClaimAmount))
	}

	return errors.Join(errs...)
}

// DecisionRecord is the set of fields committed together by an evaluation.
type DecisionRecord struct {
	Decision       Decision
	Confidence     float64
	ApprovedAmount *int64
	DecidedAt      time.Time
}

// StatusFor returns the claim status a decision moves the claim into.
func (d DecisionRecord) StatusFor() ClaimStatus {
	if d.Decision == DecisionApproved {
		return ClaimStatusApproved
	}
	return ClaimStatusRejected
}
