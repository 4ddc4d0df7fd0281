package chain

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"sync"

	"claim-escrow-engine/internal/core/domain"
	"claim-escrow-engine/internal/core/ports"

	"golang.org/x/crypto/sha3"
)

// ErrGatewayUnavailable is the transient failure injected by SimulatedContract.
var ErrGatewayUnavailable = errors.New("simulated gateway unavailable")

type simEscrow struct {
	amount       int64
	settled      bool
	settlementTx string
}

type simTx struct {
	polls    int
	reverted string
}

// SimulatedContract is an in-process escrow contract with the same rules as
// the deployed one: one lock per claim, one release per claim, release never
// exceeds the locked amount. It backs chain.mode=simulated and the test suites.
type SimulatedContract struct {
	mu            sync.Mutex
	escrows       map[string]*simEscrow
	txs           map[string]*simTx
	nonce         uint64
	confirmations int // receipt polls answered PENDING before CONFIRMED
	failReleases  int
	failReceipts  int
	revertNext    string
	transfers     int
}

// NewSimulatedContract creates an empty simulated contract.
func NewSimulatedContract() *SimulatedContract {
	return &SimulatedContract{
		escrows: make(map[string]*simEscrow),
		txs:     make(map[string]*simTx),
	}
}

// SetConfirmations sets how many receipt polls stay PENDING before a tx confirms.
func (s *SimulatedContract) SetConfirmations(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.confirmations = n
}

// FailNextReleases makes the next n Release calls fail transiently before broadcast.
func (s *SimulatedContract) FailNextReleases(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failReleases = n
}

// FailNextReceipts makes the next n Receipt calls fail transiently.
func (s *SimulatedContract) FailNextReceipts(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failReceipts = n
}

// RevertNextRelease makes the next Release broadcast a transaction that
// reverts on-chain with reason and leaves the escrow untouched.
func (s *SimulatedContract) RevertNextRelease(reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revertNext = reason
}

// Transfers returns how many releases moved funds.
func (s *SimulatedContract) Transfers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.transfers
}

// Lock implements ports.EscrowContract.
func (s *SimulatedContract) Lock(ctx context.Context, claimID string, amount int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.escrows[claimID]; ok {
		return "", ports.ErrContractAlreadyLocked
	}
	if amount <= 0 {
		return "", fmt.Errorf("%w: non-positive lock amount", ports.ErrContractRejected)
	}
	s.escrows[claimID] = &simEscrow{amount: amount}
	return s.newTx("lock", claimID, "", amount), nil
}

// Release implements ports.EscrowContract.
func (s *SimulatedContract) Release(ctx context.Context, claimID, recipient string, amount int64) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failReleases > 0 {
		s.failReleases--
		return "", ErrGatewayUnavailable
	}

	e, ok := s.escrows[claimID]
	if !ok {
		return "", fmt.Errorf("%w: no escrow for claim", ports.ErrContractRejected)
	}
	if e.settled {
		return "", ports.ErrContractAlreadySettled
	}
	if amount > e.amount {
		return "", fmt.Errorf("%w: amount exceeds lock", ports.ErrContractRejected)
	}
	if s.revertNext != "" {
		hash := s.newTx("release", claimID, recipient, amount)
		s.txs[hash].reverted = s.revertNext
		s.revertNext = ""
		return hash, nil
	}

	e.amount -= amount
	e.settled = true
	e.settlementTx = s.newTx("release", claimID, recipient, amount)
	s.transfers++
	return e.settlementTx, nil
}

// IsSettled implements ports.EscrowContract.
func (s *SimulatedContract) IsSettled(ctx context.Context, claimID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.escrows[claimID]
	return ok && e.settled, nil
}

// SettlementTx implements ports.EscrowContract.
func (s *SimulatedContract) SettlementTx(ctx context.Context, claimID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.escrows[claimID]; ok {
		return e.settlementTx, nil
	}
	return "", nil
}

// Receipt implements ports.EscrowContract.
func (s *SimulatedContract) Receipt(ctx context.Context, txHash string) (*domain.TxReceipt, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failReceipts > 0 {
		s.failReceipts--
		return nil, ErrGatewayUnavailable
	}

	tx, ok := s.txs[txHash]
	if !ok {
		return nil, fmt.Errorf("unknown transaction %s", txHash)
	}
	if tx.reverted != "" {
		return &domain.TxReceipt{TxHash: txHash, Status: domain.ReceiptReverted, RevertReason: tx.reverted}, nil
	}
	tx.polls++
	if tx.polls <= s.confirmations {
		return &domain.TxReceipt{TxHash: txHash, Status: domain.ReceiptPending}, nil
	}
	return &domain.TxReceipt{
		TxHash:        txHash,
		Status:        domain.ReceiptConfirmed,
		Confirmations: tx.polls - s.confirmations,
	}, nil
}

// newTx records a transaction and returns its Keccak-256 hash. Caller holds mu.
func (s *SimulatedContract) newTx(method, claimID, recipient string, amount int64) string {
	s.nonce++
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(method))
	h.Write([]byte(claimID))
	h.Write([]byte(recipient))
	h.Write([]byte(strconv.FormatInt(amount, 10)))
	h.Write([]byte(strconv.FormatUint(s.nonce, 10)))
	hash := "0x" + hex.EncodeToString(h.Sum(nil))
	s.txs[hash] = &simTx{}
	return hash
}
