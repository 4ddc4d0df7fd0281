package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// Transactor implements ports.DBTransactor. The escrow ledger uses it to
// commit an account change and its ledger entry atomically.
type Transactor struct {
	pool        Pool
	lockTimeout time.Duration
}

// NewTransactor creates a Transactor. A positive lockTimeout caps how long a
// ledger transaction waits on a row another settlement holds; zero leaves the
// server default.
func NewTransactor(pool Pool, lockTimeout time.Duration) *Transactor {
	return &Transactor{pool: pool, lockTimeout: lockTimeout}
}

// Begin starts a ledger transaction with the configured lock timeout applied.
func (t *Transactor) Begin(ctx context.Context) (pgx.Tx, error) {
	tx, err := t.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	if t.lockTimeout <= 0 {
		return tx, nil
	}

	// SET LOCAL takes no bind parameters; the value is an integer we format.
	stmt := fmt.Sprintf("SET LOCAL lock_timeout = '%dms'", t.lockTimeout.Milliseconds())
	if _, err := tx.Exec(ctx, stmt); err != nil {
		_ = tx.Rollback(ctx)
		return nil, fmt.Errorf("set ledger lock timeout: %w", err)
	}
	return tx, nil
}
