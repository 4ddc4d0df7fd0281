package integration

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"claim-escrow-engine/internal/core/domain"
	"claim-escrow-engine/internal/core/ports"
	"claim-escrow-engine/internal/service"
	"claim-escrow-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConcurrentEvaluate fires many evaluations at one claim. Exactly one
// verdict is committed; every other caller sees CLM_003.
func TestConcurrentEvaluate(t *testing.T) {
	e := newEngine(t)
	claim := e.submit(t, claimantA, 1000)

	e.oracle.respond(http.StatusOK, ports.OracleResponse{Decision: "APPROVED", Confidence: 0.9, SuggestedAmount: 1000})
	e.oracle.setDelay(5 * time.Millisecond)

	const concurrency = 20
	var (
		wg        sync.WaitGroup
		succeeded atomic.Int32
		decided   atomic.Int32
		other     atomic.Int32
		start     = make(chan struct{})
		mu        sync.Mutex
		winner    *domain.Claim
		losers    []*domain.Claim
	)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			got, err := e.claims.Evaluate(context.Background(), claim.ID)
			switch {
			case err == nil:
				succeeded.Add(1)
				mu.Lock()
				winner = got
				mu.Unlock()
			case apperror.CodeOf(err) == apperror.CodeAlreadyDecided:
				decided.Add(1)
				mu.Lock()
				losers = append(losers, got)
				mu.Unlock()
			default:
				t.Logf("unexpected error: %v", err)
				other.Add(1)
			}
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), succeeded.Load())
	assert.Equal(t, int32(concurrency-1), decided.Load())
	assert.Zero(t, other.Load())

	stored, err := e.claimRepo.GetByID(context.Background(), claim.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimStatusApproved, stored.Status)

	require.NotNil(t, winner)
	require.NotNil(t, winner.DecidedAt)
	assert.True(t, stored.DecidedAt.Equal(*winner.DecidedAt))
	for _, l := range losers {
		require.NotNil(t, l, "a conflicting evaluation reports the committed claim")
		assert.Equal(t, winner.Status, l.Status)
		assert.Equal(t, *winner.Decision, *l.Decision)
		assert.Equal(t, *winner.ApprovedAmount, *l.ApprovedAmount)
		require.NotNil(t, l.DecidedAt)
		assert.True(t, winner.DecidedAt.Equal(*l.DecidedAt), "every loser sees the winning decision")
	}

	acct, err := e.ledger.Get(context.Background(), claim.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1000), acct.LockedAmount)
	assert.Len(t, e.escrowRepo.entriesFor(claim.ID, domain.LedgerEntryLock), 1)
	e.assertInvariants(t)
}

// TestConcurrentSettle races settlement of one approved claim. The contract
// sees a single transfer and every successful caller reports the same tx_hash.
func TestConcurrentSettle(t *testing.T) {
	e := newEngine(t)
	e.contract.SetConfirmations(2)
	claim := e.submit(t, claimantA, 1000)

	e.oracle.respond(http.StatusOK, ports.OracleResponse{Decision: "APPROVED", Confidence: 0.9, SuggestedAmount: 1000})
	_, err := e.claims.Evaluate(context.Background(), claim.ID)
	require.NoError(t, err)

	const concurrency = 20
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		hashes = make(map[string]int)
		start  = make(chan struct{})
	)

	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			settled, err := e.claims.Settle(context.Background(), claim.ID)
			if err != nil {
				// Losers of the lease race may see a transient error or a
				// claim that is already settled.
				code := apperror.CodeOf(err)
				assert.Contains(t, []string{apperror.CodeSettlementTransient, apperror.CodeInvalidState}, code, "error: %v", err)
				return
			}
			mu.Lock()
			hashes[*settled.TxHash]++
			mu.Unlock()
		}()
	}
	close(start)
	wg.Wait()

	assert.Equal(t, 1, e.contract.Transfers())
	assert.Len(t, hashes, 1, "all successful settles must report one tx")
	assert.Len(t, e.escrowRepo.entriesFor(claim.ID, domain.LedgerEntryRelease), 1)

	// Any claim left in SETTLEMENT_FAILED by a losing racer converges.
	require.Eventually(t, func() bool {
		_, _ = e.reconciler.RunOnce(context.Background())
		c, _ := e.claimRepo.GetByID(context.Background(), claim.ID)
		return c.Status == domain.ClaimStatusSettled
	}, 2*time.Second, 10*time.Millisecond)

	stored, _ := e.claimRepo.GetByID(context.Background(), claim.ID)
	for h := range hashes {
		assert.Equal(t, h, *stored.TxHash)
	}
	assert.Equal(t, 1, e.contract.Transfers())
	e.assertInvariants(t)
}

// TestConcurrentSettle_ManyClaims settles many claims in parallel while the
// reconciler runs, checking that no claim is paid twice.
func TestConcurrentSettle_ManyClaims(t *testing.T) {
	e := newEngine(t)
	ctx := context.Background()
	e.oracle.respond(http.StatusOK, ports.OracleResponse{Decision: "APPROVED", Confidence: 0.9, SuggestedAmount: 100})

	const n = 25
	ids := make([]uuid.UUID, 0, n)
	for i := 0; i < n; i++ {
		c := e.submit(t, claimantA, 100)
		_, err := e.claims.Evaluate(ctx, c.ID)
		require.NoError(t, err)
		ids = append(ids, c.ID)
	}

	// Racing the reconciler costs extra attempts, so allow plenty.
	cfg := testReconcilerConfig()
	cfg.MaxAttempts = 100
	reconciler := service.NewReconciler(e.claimRepo, e.claims, nil, cfg, nil, zerolog.Nop())

	e.contract.FailNextReleases(5)
	reconciler.Start(ctx)
	defer reconciler.Stop()

	var wg sync.WaitGroup
	for _, id := range ids {
		wg.Add(1)
		go func(id uuid.UUID) {
			defer wg.Done()
			_, _ = e.claims.Settle(ctx, id)
		}(id)
	}
	wg.Wait()

	require.Eventually(t, func() bool {
		stats, err := e.reporting.GetDashboardStats(ctx, "all")
		return err == nil && stats.Settled == n
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, n, e.contract.Transfers())
	for _, id := range ids {
		assert.Len(t, e.escrowRepo.entriesFor(id, domain.LedgerEntryRelease), 1, "claim %s", id)
	}
	e.assertInvariants(t)
}
