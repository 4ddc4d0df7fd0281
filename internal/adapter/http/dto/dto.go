package dto

// SubmitClaimRequest is the request body for claim submission.
type SubmitClaimRequest struct {
	ClaimAmount  int64    `json:"claim_amount" binding:"required,gt=0"`
	EvidenceRefs []string `json:"evidence_refs" binding:"required,min=1,max=20,dive,required,evidence_ref"`
}

// ClaimResponse is the public claim resource. Unset nullable fields are
// rendered as JSON null.
type ClaimResponse struct {
	ID              string   `json:"id"`
	ClaimantAddress string   `json:"claimant_address"`
	ClaimAmount     int64    `json:"claim_amount"`
	Status          string   `json:"status"`
	Decision        *string  `json:"decision"`
	Confidence      *float64 `json:"confidence"`
	ApprovedAmount  *int64   `json:"approved_amount"`
	TxHash          *string  `json:"tx_hash"`
	CreatedAt       string   `json:"created_at"`
}

// ClaimListResponse wraps a paginated claim list.
type ClaimListResponse struct {
	Items      []ClaimResponse `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// ReviewClaimResponse adds the operator bookkeeping to a claim.
type ReviewClaimResponse struct {
	ClaimResponse
	SettlementAttempts int     `json:"settlement_attempts"`
	FailureReason      *string `json:"failure_reason"`
	NeedsReview        bool    `json:"needs_review"`
	UpdatedAt          string  `json:"updated_at"`
}

// ReviewListResponse wraps a paginated review queue.
type ReviewListResponse struct {
	Items      []ReviewClaimResponse `json:"items"`
	Total      int64                 `json:"total"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"page_size"`
	TotalPages int                   `json:"total_pages"`
}

// EscrowAccountResponse is the operator view of an escrow account.
type EscrowAccountResponse struct {
	ClaimID             string  `json:"claim_id"`
	LockedAmount        int64   `json:"locked_amount"`
	Released            bool    `json:"released"`
	ReleasedAmount      int64   `json:"released_amount"`
	AuthorizedRecipient string  `json:"authorized_recipient"`
	LockTxHash          *string `json:"lock_tx_hash"`
	ReleaseTxHash       *string `json:"release_tx_hash"`
	PendingTxHash       *string `json:"pending_tx_hash"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

// DashboardStatsResponse is the response for dashboard statistics.
type DashboardStatsResponse struct {
	Total            int64 `json:"total"`
	Submitted        int64 `json:"submitted"`
	Approved         int64 `json:"approved"`
	Rejected         int64 `json:"rejected"`
	Settled          int64 `json:"settled"`
	SettlementFailed int64 `json:"settlement_failed"`
	NeedsReview      int64 `json:"needs_review"`
	TotalClaimed     int64 `json:"total_claimed"`
	TotalApproved    int64 `json:"total_approved"`
	TotalSettled     int64 `json:"total_settled"`
}
