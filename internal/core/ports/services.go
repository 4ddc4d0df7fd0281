package ports

//go:generate mockgen -source=services.go -destination=mocks/mock_services.go -package=mocks

import (
	"context"
	"errors"
	"time"

	"claim-escrow-engine/internal/core/domain"

	"github.com/google/uuid"
)

// --- Infrastructure Ports ---

// Signature purposes keep a signature for one message kind from verifying as another.
const (
	SignPurposeOracleEvaluate = "oracle.evaluate"
	SignPurposeClaimStatus    = "claim.status"
)

// SignedMessage is everything an outbound signature binds: what the message
// is for, which claim it concerns, when it was sent and its exact body.
type SignedMessage struct {
	Purpose   string
	ClaimID   string
	Timestamp int64
	Body      []byte
}

// SignatureService signs oracle requests and status notifications.
type SignatureService interface {
	Sign(secretKey string, msg SignedMessage) string
	Verify(secretKey string, msg SignedMessage, signature string) bool
}

// TokenService validates identity-provider bearer tokens.
type TokenService interface {
	Generate(principal domain.Principal) (string, time.Time, error)
	Validate(tokenString string) (*domain.Principal, error)
}

// OracleRequest is the payload sent to the external scoring oracle.
type OracleRequest struct {
	ClaimID          string            `json:"claim_id"`
	ClaimAmount      int64             `json:"claim_amount"`
	EvidenceRefs     []string          `json:"evidence_refs"`
	ClaimantMetadata map[string]string `json:"claimant_metadata"`
}

// OracleResponse is the oracle's raw, un-normalized answer.
type OracleResponse struct {
	Decision        string  `json:"decision"`
	Confidence      float64 `json:"confidence"`
	SuggestedAmount int64   `json:"suggested_amount"`
	Reason          string  `json:"reason,omitempty"`
}

// EvaluationOracle is the transport to the external scoring process.
// Implementations return apperror ORC_001 for transient faults and ORC_002
// when the oracle refuses the input.
type EvaluationOracle interface {
	Score(ctx context.Context, req OracleRequest) (*OracleResponse, error)
}

// Contract-level rejections reported by an EscrowContract.
var (
	// ErrContractAlreadySettled means the contract refused a second release.
	ErrContractAlreadySettled = errors.New("escrow contract: already settled")
	// ErrContractAlreadyLocked means the contract already holds funds for the claim.
	ErrContractAlreadyLocked = errors.New("escrow contract: already locked")
	// ErrContractRejected is a permanent revert (unknown claim, amount above lock).
	ErrContractRejected = errors.New("escrow contract: call rejected")
)

// EscrowContract is the on-chain escrow contract as seen through its gateway.
// State-changing calls return a transaction hash that must be confirmed
// through Receipt. Errors other than the ErrContract* values are transient.
type EscrowContract interface {
	Lock(ctx context.Context, claimID string, amount int64) (string, error)
	Release(ctx context.Context, claimID string, recipient string, amount int64) (string, error)
	IsSettled(ctx context.Context, claimID string) (bool, error)
	SettlementTx(ctx context.Context, claimID string) (string, error)
	Receipt(ctx context.Context, txHash string) (*domain.TxReceipt, error)
}

// AuditService records audit entries (fire-and-forget).
type AuditService interface {
	Log(ctx context.Context, entry *domain.AuditLog)
}

// Notifier announces claim status changes to an external subscriber.
type Notifier interface {
	NotifyStatusChange(ctx context.Context, claim *domain.Claim) error
}

// --- Service Ports (Business Logic) ---

// OracleAdapter turns a claim into a normalized verdict.
type OracleAdapter interface {
	Evaluate(ctx context.Context, claim *domain.Claim) (*domain.Verdict, error)
}

// EscrowLedger owns custody of locked funds and the single-release guarantee.
type EscrowLedger interface {
	Lock(ctx context.Context, claimID uuid.UUID, amount int64) (*domain.EscrowAccount, error)
	Release(ctx context.Context, claimID uuid.UUID, recipient string, amount int64) (*domain.TxRef, error)
	Get(ctx context.Context, claimID uuid.UUID) (*domain.EscrowAccount, error)
}

// ClaimService is the claim lifecycle state machine.
type ClaimService interface {
	Submit(ctx context.Context, req SubmitRequest) (*domain.Claim, error)
	Evaluate(ctx context.Context, claimID uuid.UUID) (*domain.Claim, error)
	Settle(ctx context.Context, claimID uuid.UUID) (*domain.Claim, error)
	Get(ctx context.Context, principal domain.Principal, claimID uuid.UUID) (*domain.Claim, error)
	List(ctx context.Context, principal domain.Principal, params ClaimListParams) ([]domain.Claim, int64, error)
}

// SubmitRequest holds validated input for a claim submission.
type SubmitRequest struct {
	Principal    domain.Principal
	Amount       int64
	EvidenceRefs []string
}

// ReportingService defines dashboard/reporting business logic.
type ReportingService interface {
	GetDashboardStats(ctx context.Context, period string) (*ClaimStats, error)
}

// PassLocker grants one replica at a time the right to run a reconciliation pass.
type PassLocker interface {
	TryAcquire(ctx context.Context, ttl time.Duration) (release func(context.Context) error, ok bool, err error)
}
