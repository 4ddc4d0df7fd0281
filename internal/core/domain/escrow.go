package domain

import (
	"time"

	"github.com/google/uuid"
)

// EscrowAccount is the custodial record for one claim's locked funds.
// It mirrors the on-chain escrow entry and is owned by the escrow ledger.
type EscrowAccount struct {
	ClaimID             uuid.UUID  `json:"claim_id"`
	LockedAmount        int64      `json:"locked_amount"`
	Released            bool       `json:"released"`
	ReleasedAmount      int64      `json:"released_amount"`
	AuthorizedRecipient string     `json:"authorized_recipient"`
	LockTxHash          *string    `json:"lock_tx_hash,omitempty"`
	ReleaseTxHash       *string    `json:"release_tx_hash,omitempty"`
	PendingTxHash       *string    `json:"pending_tx_hash,omitempty"` // submitted, not yet confirmed
	ReleaseLeaseUntil   *time.Time `json:"-"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// TxRef identifies a confirmed on-chain settlement transaction.
type TxRef struct {
	Hash string `json:"tx_hash"`
}

// LedgerEntryType is the kind of movement recorded against an escrow account.
type LedgerEntryType string

const (
	LedgerEntryLock    LedgerEntryType = "LOCK"
	LedgerEntryRelease LedgerEntryType = "RELEASE"
)

// LedgerEntry is an append-only record of a lock or release.
type LedgerEntry struct {
	ID        uuid.UUID       `json:"id"`
	ClaimID   uuid.UUID       `json:"claim_id"`
	EntryType LedgerEntryType `json:"entry_type"`
	Amount    int64           `json:"amount"`
	Recipient string          `json:"recipient,omitempty"`
	TxHash    *string         `json:"tx_hash,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// ReceiptStatus is the confirmation state of a submitted chain transaction.
type ReceiptStatus string

const (
	ReceiptPending   ReceiptStatus = "PENDING"
	ReceiptConfirmed ReceiptStatus = "CONFIRMED"
	ReceiptReverted  ReceiptStatus = "REVERTED"
)

// TxReceipt reports the state of a submitted chain transaction.
type TxReceipt struct {
	TxHash        string        `json:"tx_hash"`
	Status        ReceiptStatus `json:"status"`
	Confirmations int           `json:"confirmations"`
	RevertReason  string        `json:"revert_reason,omitempty"`
}
