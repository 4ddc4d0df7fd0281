package service

import (
	"context"
	"io"
	"net/http"
	"time"

	"claim-escrow-engine/internal/core/domain"
	"claim-escrow-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

func newTestLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

// mockHTTPClient implements HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

// mockTx implements pgx.Tx for testing
type mockTx struct{ pgx.Tx }

func (m *mockTx) Rollback(_ context.Context) error { return nil }
func (m *mockTx) Commit(_ context.Context) error   { return nil }

const testWallet = "0x9f2c4e1a7b3d5f60718293a4b5c6d7e8f9012345"

func submittedClaim(amount int64) *domain.Claim {
	now := time.Now().UTC().Add(-time.Hour)
	return &domain.Claim{
		ID:              uuid.New(),
		ClaimantID:      "user-1",
		ClaimantAddress: testWallet,
		ClaimAmount:     amount,
		EvidenceRefs:    []string{"evidence/photo-1.jpg"},
		Status:          domain.ClaimStatusSubmitted,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

func approvedClaim(claimAmount, approved int64) *domain.Claim {
	c := submittedClaim(claimAmount)
	d := domain.DecisionApproved
	conf := 0.9
	decidedAt := c.CreatedAt.Add(time.Minute)
	c.Status = domain.ClaimStatusApproved
	c.Decision = &d
	c.Confidence = &conf
	c.ApprovedAmount = &approved
	c.DecidedAt = &decidedAt
	c.UpdatedAt = decidedAt
	return c
}

func codeOf(err error) string {
	return apperror.CodeOf(err)
}
