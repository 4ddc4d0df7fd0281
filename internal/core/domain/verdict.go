package domain

// Verdict is the oracle's normalized evaluation of a claim.
type Verdict struct {
	Decision        Decision
	Confidence      float64
	SuggestedAmount int64
}

// ApprovedAmountFor clamps the oracle's suggested payout to the claimed amount.
// Returns nil for rejections.
func (v Verdict) ApprovedAmountFor(claimAmount int64) *int64 {
	if v.Decision != DecisionApproved {
		return nil
	}
	amount := v.SuggestedAmount
	if amount > claimAmount {
		amount = claimAmount
	}
	return &amount
}
