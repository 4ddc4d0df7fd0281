package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"claim-escrow-engine/config"
	"claim-escrow-engine/internal/core/domain"
	"claim-escrow-engine/internal/core/ports"
	"claim-escrow-engine/internal/core/ports/mocks"
	"claim-escrow-engine/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type ledgerTestDeps struct {
	svc        *EscrowLedgerImpl
	claimRepo  *mocks.MockClaimRepository
	escrowRepo *mocks.MockEscrowRepository
	transactor *mocks.MockDBTransactor
	contract   *mocks.MockEscrowContract
	auditSvc   *mocks.MockAuditService
	ctrl       *gomock.Controller
}

func testChainConfig() config.ChainConfig {
	return config.ChainConfig{
		Mode:           "simulated",
		ConfirmTimeout: 50 * time.Millisecond,
		PollInterval:   time.Millisecond,
		ReleaseLease:   time.Minute,
	}
}

func setupLedger(t *testing.T) *ledgerTestDeps {
	ctrl := gomock.NewController(t)
	d := &ledgerTestDeps{
		claimRepo:  mocks.NewMockClaimRepository(ctrl),
		escrowRepo: mocks.NewMockEscrowRepository(ctrl),
		transactor: mocks.NewMockDBTransactor(ctrl),
		contract:   mocks.NewMockEscrowContract(ctrl),
		auditSvc:   mocks.NewMockAuditService(ctrl),
		ctrl:       ctrl,
	}
	d.auditSvc.EXPECT().Log(gomock.Any(), gomock.Any()).AnyTimes()
	d.svc = NewEscrowLedger(d.claimRepo, d.escrowRepo, d.transactor, d.contract, d.auditSvc, testChainConfig(), newTestLogger())
	return d
}

func confirmed(hash string) *domain.TxReceipt {
	return &domain.TxReceipt{TxHash: hash, Status: domain.ReceiptConfirmed, Confirmations: 1}
}

func lockedAccount(claimID uuid.UUID, amount int64) *domain.EscrowAccount {
	return &domain.EscrowAccount{
		ClaimID:             claimID,
		LockedAmount:        amount,
		AuthorizedRecipient: testWallet,
	}
}

// ==================== Lock Tests ====================

func TestEscrowLedger_Lock_Success(t *testing.T) {
	d := setupLedger(t)
	defer d.ctrl.Finish()

	ctx := context.Background()
	claim := approvedClaim(1000, 800)
	tx := &mockTx{}

	d.escrowRepo.EXPECT().GetByClaimID(ctx, claim.ID).Return(nil, nil)
	d.claimRepo.EXPECT().GetByID(ctx, claim.ID).Return(claim, nil)
	d.contract.EXPECT().Lock(ctx, claim.ID.String(), int64(800)).Return("0xlock", nil)
	d.contract.EXPECT().Receipt(gomock.Any(), "0xlock").Return(confirmed("0xlock"), nil)
	d.transactor.EXPECT().Begin(ctx).Return(tx, nil)
	d.escrowRepo.EXPECT().Create(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ any, acct *domain.EscrowAccount) error {
			assert.Equal(t, int64(800), acct.LockedAmount)
			assert.Equal(t, testWallet, acct.AuthorizedRecipient)
			assert.False(t, acct.Released)
			return nil
		})
	d.escrowRepo.EXPECT().CreateEntry(ctx, tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ any, e *domain.LedgerEntry) error {
			assert.Equal(t, domain.LedgerEntryLock, e.EntryType)
			assert.Equal(t, int64(800), e.Amount)
			return nil
		})

	acct, err := d.svc.Lock(ctx, claim.ID, 800)
	require.NoError(t, err)
	require.NotNil(t, acct.LockTxHash)
	assert.Equal(t, "0xlock", *acct.LockTxHash)
}

func TestEscrowLedger_Lock_AlreadyLocked(t *testing.T) {
	d := setupLedger(t)
	defer d.ctrl.Finish()

	claimID := uuid.New()
	d.escrowRepo.EXPECT().GetByClaimID(gomock.Any(), claimID).Return(lockedAccount(claimID, 100), nil)

	_, err := d.svc.Lock(context.Background(), claimID, 100)
	assert.Equal(t, apperror.CodeAlreadyLocked, codeOf(err))
}

func TestEscrowLedger_Lock_Rejections(t *testing.T) {
	rejected := submittedClaim(500)
	dec := domain.DecisionRejected
	conf := 0.1
	rejected.Status, rejected.Decision, rejected.Confidence = domain.ClaimStatusRejected, &dec, &conf

	tests := []struct {
		name   string
		claim  *domain.Claim
		amount int64
		code   string
	}{
		{"claim missing", nil, 100, apperror.CodeNotFound},
		{"claim undecided", submittedClaim(500), 100, apperror.CodeInvalidState},
		{"claim rejected", rejected, 100, apperror.CodeInvalidState},
		{"amount above approved", approvedClaim(1000, 800), 900, apperror.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupLedger(t)
			defer d.ctrl.Finish()

			claimID := uuid.New()
			if tt.claim != nil {
				claimID = tt.claim.ID
			}
			d.escrowRepo.EXPECT().GetByClaimID(gomock.Any(), claimID).Return(nil, nil)
			d.claimRepo.EXPECT().GetByID(gomock.Any(), claimID).Return(tt.claim, nil)

			_, err := d.svc.Lock(context.Background(), claimID, tt.amount)
			assert.Equal(t, tt.code, codeOf(err))
		})
	}
}

func TestEscrowLedger_Lock_NonPositiveAmount(t *testing.T) {
	d := setupLedger(t)
	defer d.ctrl.Finish()

	_, err := d.svc.Lock(context.Background(), uuid.New(), 0)
	assert.Equal(t, apperror.CodeInvalidInput, codeOf(err))
}

func TestEscrowLedger_Lock_AdoptsOnChainLock(t *testing.T) {
	d := setupLedger(t)
	defer d.ctrl.Finish()

	claim := approvedClaim(1000, 1000)
	tx := &mockTx{}

	d.escrowRepo.EXPECT().GetByClaimID(gomock.Any(), claim.ID).Return(nil, nil)
	d.claimRepo.EXPECT().GetByID(gomock.Any(), claim.ID).Return(claim, nil)
	d.contract.EXPECT().Lock(gomock.Any(), claim.ID.String(), int64(1000)).Return("", ports.ErrContractAlreadyLocked)
	d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	d.escrowRepo.EXPECT().Create(gomock.Any(), tx, gomock.Any()).Return(nil)
	d.escrowRepo.EXPECT().CreateEntry(gomock.Any(), tx, gomock.Any()).Return(nil)

	acct, err := d.svc.Lock(context.Background(), claim.ID, 1000)
	require.NoError(t, err)
	assert.Nil(t, acct.LockTxHash)
}

func TestEscrowLedger_Lock_ChainUnavailable(t *testing.T) {
	d := setupLedger(t)
	defer d.ctrl.Finish()

	claim := approvedClaim(1000, 1000)
	d.escrowRepo.EXPECT().GetByClaimID(gomock.Any(), claim.ID).Return(nil, nil)
	d.claimRepo.EXPECT().GetByID(gomock.Any(), claim.ID).Return(claim, nil)
	d.contract.EXPECT().Lock(gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("connection reset"))

	_, err := d.svc.Lock(context.Background(), claim.ID, 1000)
	assert.Equal(t, apperror.CodeSettlementTransient, codeOf(err))
	assert.True(t, apperror.IsTransient(err))
}

func TestEscrowLedger_Lock_DuplicateInsert(t *testing.T) {
	d := setupLedger(t)
	defer d.ctrl.Finish()

	claim := approvedClaim(1000, 1000)
	d.escrowRepo.EXPECT().GetByClaimID(gomock.Any(), claim.ID).Return(nil, nil)
	d.claimRepo.EXPECT().GetByID(gomock.Any(), claim.ID).Return(claim, nil)
	d.contract.EXPECT().Lock(gomock.Any(), gomock.Any(), gomock.Any()).Return("0xlock", nil)
	d.contract.EXPECT().Receipt(gomock.Any(), "0xlock").Return(confirmed("0xlock"), nil)
	d.transactor.EXPECT().Begin(gomock.Any()).Return(&mockTx{}, nil)
	d.escrowRepo.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(ports.ErrDuplicateKey)

	_, err := d.svc.Lock(context.Background(), claim.ID, 1000)
	assert.Equal(t, apperror.CodeAlreadyLocked, codeOf(err))
}

// ==================== Release Tests ====================

func expectCommitRelease(d *ledgerTestDeps, claimID uuid.UUID, amount int64, hash string) {
	tx := &mockTx{}
	d.transactor.EXPECT().Begin(gomock.Any()).Return(tx, nil)
	d.escrowRepo.EXPECT().MarkReleased(gomock.Any(), tx, claimID, amount, testWallet, hash).Return(true, nil)
	d.escrowRepo.EXPECT().CreateEntry(gomock.Any(), tx, gomock.Any()).DoAndReturn(
		func(_ context.Context, _ any, e *domain.LedgerEntry) error {
			if e.EntryType != domain.LedgerEntryRelease || *e.TxHash != hash {
				return errors.New("unexpected ledger entry")
			}
			return nil
		})
}

func TestEscrowLedger_Release_Success(t *testing.T) {
	d := setupLedger(t)
	defer d.ctrl.Finish()

	claimID := uuid.New()
	d.escrowRepo.EXPECT().GetByClaimID(gomock.Any(), claimID).Return(lockedAccount(claimID, 1000), nil)
	d.escrowRepo.EXPECT().AcquireReleaseLease(gomock.Any(), claimID, gomock.Any(), gomock.Any()).Return(true, nil)
	d.contract.EXPECT().IsSettled(gomock.Any(), claimID.String()).Return(false, nil)
	d.contract.EXPECT().Release(gomock.Any(), claimID.String(), testWallet, int64(1000)).Return("0xrel", nil)
	d.escrowRepo.EXPECT().SetPendingTx(gomock.Any(), claimID, "0xrel").Return(nil)
	gomock.InOrder(
		d.contract.EXPECT().Receipt(gomock.Any(), "0xrel").Return(&domain.TxReceipt{TxHash: "0xrel", Status: domain.ReceiptPending}, nil),
		d.contract.EXPECT().Receipt(gomock.Any(), "0xrel").Return(confirmed("0xrel"), nil),
	)
	expectCommitRelease(d, claimID, 1000, "0xrel")

	ref, err := d.svc.Release(context.Background(), claimID, testWallet, 1000)
	require.NoError(t, err)
	assert.Equal(t, "0xrel", ref.Hash)
}

func TestEscrowLedger_Release_Idempotent(t *testing.T) {
	d := setupLedger(t)
	defer d.ctrl.Finish()

	claimID := uuid.New()
	hash := "0xdone"
	acct := lockedAccount(claimID, 0)
	acct.Released = true
	acct.ReleasedAmount = 1000
	acct.ReleaseTxHash = &hash
	d.escrowRepo.EXPECT().GetByClaimID(gomock.Any(), claimID).Return(acct, nil).Times(3)

	// No contract call and no write happens on a repeat.
	ref, err := d.svc.Release(context.Background(), claimID, testWallet, 1000)
	require.NoError(t, err)
	assert.Equal(t, hash, ref.Hash)

	_, err = d.svc.Release(context.Background(), claimID, testWallet, 999)
	assert.Equal(t, apperror.CodeAlreadyReleased, codeOf(err))

	_, err = d.svc.Release(context.Background(), claimID, "0x0000000000000000000000000000000000000001", 1000)
	assert.Equal(t, apperror.CodeAlreadyReleased, codeOf(err))
}

func TestEscrowLedger_Release_Rejections(t *testing.T) {
	tests := []struct {
		name      string
		acct      func(uuid.UUID) *domain.EscrowAccount
		recipient string
		amount    int64
		code      string
	}{
		{"not locked", func(uuid.UUID) *domain.EscrowAccount { return nil }, testWallet, 100, apperror.CodeNotLocked},
		{"recipient mismatch", func(id uuid.UUID) *domain.EscrowAccount { return lockedAccount(id, 100) },
			"0x0000000000000000000000000000000000000001", 100, apperror.CodeRecipientMismatch},
		{"amount exceeds lock", func(id uuid.UUID) *domain.EscrowAccount { return lockedAccount(id, 100) },
			testWallet, 101, apperror.CodeAmountExceedsLock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupLedger(t)
			defer d.ctrl.Finish()

			claimID := uuid.New()
			d.escrowRepo.EXPECT().GetByClaimID(gomock.Any(), claimID).Return(tt.acct(claimID), nil)

			_, err := d.svc.Release(context.Background(), claimID, tt.recipient, tt.amount)
			assert.Equal(t, tt.code, codeOf(err))
			assert.True(t, apperror.IsPermanentSettlement(err))
		})
	}
}

func TestEscrowLedger_Release_LeaseHeldElsewhere(t *testing.T) {
	d := setupLedger(t)
	defer d.ctrl.Finish()

	claimID := uuid.New()
	d.escrowRepo.EXPECT().GetByClaimID(gomock.Any(), claimID).Return(lockedAccount(claimID, 1000), nil).Times(2)
	d.escrowRepo.EXPECT().AcquireReleaseLease(gomock.Any(), claimID, gomock.Any(), gomock.Any()).Return(false, nil)

	_, err := d.svc.Release(context.Background(), claimID, testWallet, 1000)
	assert.Equal(t, apperror.CodeSettlementTransient, codeOf(err))
}

func TestEscrowLedger_Release_AdoptsOnChainSettlement(t *testing.T) {
	d := setupLedger(t)
	defer d.ctrl.Finish()

	claimID := uuid.New()
	d.escrowRepo.EXPECT().GetByClaimID(gomock.Any(), claimID).Return(lockedAccount(claimID, 1000), nil)
	d.escrowRepo.EXPECT().AcquireReleaseLease(gomock.Any(), claimID, gomock.Any(), gomock.Any()).Return(true, nil)
	d.contract.EXPECT().IsSettled(gomock.Any(), claimID.String()).Return(true, nil)
	d.contract.EXPECT().SettlementTx(gomock.Any(), claimID.String()).Return("0xearlier", nil)
	d.contract.EXPECT().Receipt(gomock.Any(), "0xearlier").Return(confirmed("0xearlier"), nil)
	expectCommitRelease(d, claimID, 1000, "0xearlier")

	ref, err := d.svc.Release(context.Background(), claimID, testWallet, 1000)
	require.NoError(t, err)
	assert.Equal(t, "0xearlier", ref.Hash)
}

func TestEscrowLedger_Release_ContractRefusesSecondRelease(t *testing.T) {
	d := setupLedger(t)
	defer d.ctrl.Finish()

	claimID := uuid.New()
	d.escrowRepo.EXPECT().GetByClaimID(gomock.Any(), claimID).Return(lockedAccount(claimID, 1000), nil)
	d.escrowRepo.EXPECT().AcquireReleaseLease(gomock.Any(), claimID, gomock.Any(), gomock.Any()).Return(true, nil)
	d.contract.EXPECT().IsSettled(gomock.Any(), claimID.String()).Return(false, nil)
	d.contract.EXPECT().Release(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", ports.ErrContractAlreadySettled)
	d.contract.EXPECT().SettlementTx(gomock.Any(), claimID.String()).Return("0xraced", nil)
	d.contract.EXPECT().Receipt(gomock.Any(), "0xraced").Return(confirmed("0xraced"), nil)
	expectCommitRelease(d, claimID, 1000, "0xraced")

	ref, err := d.svc.Release(context.Background(), claimID, testWallet, 1000)
	require.NoError(t, err)
	assert.Equal(t, "0xraced", ref.Hash)
}

func TestEscrowLedger_Release_ResumesPendingTx(t *testing.T) {
	d := setupLedger(t)
	defer d.ctrl.Finish()

	claimID := uuid.New()
	pending := "0xpending"
	acct := lockedAccount(claimID, 1000)
	acct.PendingTxHash = &pending

	d.escrowRepo.EXPECT().GetByClaimID(gomock.Any(), claimID).Return(acct, nil)
	d.escrowRepo.EXPECT().AcquireReleaseLease(gomock.Any(), claimID, gomock.Any(), gomock.Any()).Return(true, nil)
	d.contract.EXPECT().IsSettled(gomock.Any(), claimID.String()).Return(false, nil)
	gomock.InOrder(
		d.contract.EXPECT().Receipt(gomock.Any(), pending).Return(&domain.TxReceipt{TxHash: pending, Status: domain.ReceiptPending}, nil),
		d.contract.EXPECT().Receipt(gomock.Any(), pending).Return(confirmed(pending), nil),
	)
	expectCommitRelease(d, claimID, 1000, pending)

	ref, err := d.svc.Release(context.Background(), claimID, testWallet, 1000)
	require.NoError(t, err)
	assert.Equal(t, pending, ref.Hash)
}

func TestEscrowLedger_Release_PendingReceiptErrorDoesNotRebroadcast(t *testing.T) {
	d := setupLedger(t)
	defer d.ctrl.Finish()

	claimID := uuid.New()
	pending := "0xpending"
	acct := lockedAccount(claimID, 1000)
	acct.PendingTxHash = &pending

	d.escrowRepo.EXPECT().GetByClaimID(gomock.Any(), claimID).Return(acct, nil)
	d.escrowRepo.EXPECT().AcquireReleaseLease(gomock.Any(), claimID, gomock.Any(), gomock.Any()).Return(true, nil)
	d.contract.EXPECT().IsSettled(gomock.Any(), claimID.String()).Return(false, nil)
	d.contract.EXPECT().Receipt(gomock.Any(), pending).Return(nil, errors.New("gateway timeout"))
	d.contract.EXPECT().Release(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	d.escrowRepo.EXPECT().SetPendingTx(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
	d.escrowRepo.EXPECT().ClearReleaseLease(gomock.Any(), claimID).Return(nil)

	_, err := d.svc.Release(context.Background(), claimID, testWallet, 1000)
	assert.Equal(t, apperror.CodeSettlementTransient, codeOf(err))
}

func TestEscrowLedger_Release_RebroadcastsRevertedPendingTx(t *testing.T) {
	d := setupLedger(t)
	defer d.ctrl.Finish()

	claimID := uuid.New()
	pending := "0xreverted"
	acct := lockedAccount(claimID, 1000)
	acct.PendingTxHash = &pending

	d.escrowRepo.EXPECT().GetByClaimID(gomock.Any(), claimID).Return(acct, nil)
	d.escrowRepo.EXPECT().AcquireReleaseLease(gomock.Any(), claimID, gomock.Any(), gomock.Any()).Return(true, nil)
	d.contract.EXPECT().IsSettled(gomock.Any(), claimID.String()).Return(false, nil)
	d.contract.EXPECT().Receipt(gomock.Any(), pending).Return(
		&domain.TxReceipt{TxHash: pending, Status: domain.ReceiptReverted, RevertReason: "nonce too low"}, nil)
	d.contract.EXPECT().Release(gomock.Any(), claimID.String(), testWallet, int64(1000)).Return("0xretry", nil)
	d.escrowRepo.EXPECT().SetPendingTx(gomock.Any(), claimID, "0xretry").Return(nil)
	d.contract.EXPECT().Receipt(gomock.Any(), "0xretry").Return(confirmed("0xretry"), nil)
	expectCommitRelease(d, claimID, 1000, "0xretry")

	ref, err := d.svc.Release(context.Background(), claimID, testWallet, 1000)
	require.NoError(t, err)
	assert.Equal(t, "0xretry", ref.Hash)
}

func TestEscrowLedger_Release_TransientFailureClearsLease(t *testing.T) {
	tests := []struct {
		name  string
		setup func(d *ledgerTestDeps, claimID uuid.UUID)
	}{
		{"broadcast fails", func(d *ledgerTestDeps, claimID uuid.UUID) {
			d.contract.EXPECT().Release(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("", errors.New("503 from gateway"))
		}},
		{"tx reverts", func(d *ledgerTestDeps, claimID uuid.UUID) {
			d.contract.EXPECT().Release(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("0xbad", nil)
			d.escrowRepo.EXPECT().SetPendingTx(gomock.Any(), claimID, "0xbad").Return(nil)
			d.contract.EXPECT().Receipt(gomock.Any(), "0xbad").Return(
				&domain.TxReceipt{TxHash: "0xbad", Status: domain.ReceiptReverted, RevertReason: "out of gas"}, nil)
		}},
		{"confirmation times out", func(d *ledgerTestDeps, claimID uuid.UUID) {
			d.contract.EXPECT().Release(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return("0xslow", nil)
			d.escrowRepo.EXPECT().SetPendingTx(gomock.Any(), claimID, "0xslow").Return(nil)
			d.contract.EXPECT().Receipt(gomock.Any(), "0xslow").Return(
				&domain.TxReceipt{TxHash: "0xslow", Status: domain.ReceiptPending}, nil).MinTimes(1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := setupLedger(t)
			defer d.ctrl.Finish()

			claimID := uuid.New()
			d.escrowRepo.EXPECT().GetByClaimID(gomock.Any(), claimID).Return(lockedAccount(claimID, 1000), nil)
			d.escrowRepo.EXPECT().AcquireReleaseLease(gomock.Any(), claimID, gomock.Any(), gomock.Any()).Return(true, nil)
			d.contract.EXPECT().IsSettled(gomock.Any(), claimID.String()).Return(false, nil)
			tt.setup(d, claimID)
			d.escrowRepo.EXPECT().ClearReleaseLease(gomock.Any(), claimID).Return(nil)

			_, err := d.svc.Release(context.Background(), claimID, testWallet, 1000)
			assert.Equal(t, apperror.CodeSettlementTransient, codeOf(err))
		})
	}
}

func TestEscrowLedger_Release_LostCommitReturnsStoredRef(t *testing.T) {
	d := setupLedger(t)
	defer d.ctrl.Finish()

	claimID := uuid.New()
	hash := "0xrel"
	released := lockedAccount(claimID, 0)
	released.Released = true
	released.ReleasedAmount = 1000
	released.ReleaseTxHash = &hash

	gomock.InOrder(
		d.escrowRepo.EXPECT().GetByClaimID(gomock.Any(), claimID).Return(lockedAccount(claimID, 1000), nil),
		d.escrowRepo.EXPECT().GetByClaimID(gomock.Any(), claimID).Return(released, nil),
	)
	d.escrowRepo.EXPECT().AcquireReleaseLease(gomock.Any(), claimID, gomock.Any(), gomock.Any()).Return(true, nil)
	d.contract.EXPECT().IsSettled(gomock.Any(), claimID.String()).Return(false, nil)
	d.contract.EXPECT().Release(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(hash, nil)
	d.escrowRepo.EXPECT().SetPendingTx(gomock.Any(), claimID, hash).Return(nil)
	d.contract.EXPECT().Receipt(gomock.Any(), hash).Return(confirmed(hash), nil)
	d.transactor.EXPECT().Begin(gomock.Any()).Return(&mockTx{}, nil)
	d.escrowRepo.EXPECT().MarkReleased(gomock.Any(), gomock.Any(), claimID, int64(1000), testWallet, hash).Return(false, nil)

	ref, err := d.svc.Release(context.Background(), claimID, testWallet, 1000)
	require.NoError(t, err)
	assert.Equal(t, hash, ref.Hash)
}

func TestEscrowLedger_Get(t *testing.T) {
	d := setupLedger(t)
	defer d.ctrl.Finish()

	claimID := uuid.New()
	gomock.InOrder(
		d.escrowRepo.EXPECT().GetByClaimID(gomock.Any(), claimID).Return(lockedAccount(claimID, 10), nil),
		d.escrowRepo.EXPECT().GetByClaimID(gomock.Any(), claimID).Return(nil, nil),
	)

	acct, err := d.svc.Get(context.Background(), claimID)
	require.NoError(t, err)
	assert.Equal(t, int64(10), acct.LockedAmount)

	_, err = d.svc.Get(context.Background(), claimID)
	assert.Equal(t, apperror.CodeNotFound, codeOf(err))
}
