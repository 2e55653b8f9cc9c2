// Package store defines the persistent ledger interface the reconciler
// works against, and its SQLite implementation.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smsledger-dev/smsledger/internal/model"
)

var (
	// ErrUnavailable marks storage connectivity failures. The ingestion
	// batch stops on these; any other storage error fails only the
	// draft that hit it.
	ErrUnavailable = errors.New("store unavailable")

	// ErrNotFound is returned by lookups with no matching row.
	ErrNotFound = errors.New("not found")
)

// Ledger opens atomic scopes against the banks/categories/transactions
// tables.
type Ledger interface {
	Begin(ctx context.Context) (Tx, error)
}

// Tx is one atomic reconciliation scope. Implementations must make
// Rollback safe to call after Commit so callers can defer it on every
// exit path.
type Tx interface {
	// TransactionExists reports whether a transaction with this dedup
	// fingerprint is already committed.
	TransactionExists(fingerprint string) (bool, error)

	// BankByAccountNumber and BankByName return ErrNotFound when absent.
	BankByAccountNumber(accountNumber string) (model.Bank, error)
	BankByName(name string) (model.Bank, error)

	// InsertBank creates a bank row and returns its id.
	InsertBank(bank model.Bank) (int64, error)

	// UpdateBank advances last_updated and, when balance is non-nil,
	// overwrites the balance. A non-empty accountNumber backfills the
	// column only if it is still NULL.
	UpdateBank(id int64, balance *decimal.Decimal, accountNumber string, lastUpdated time.Time) error

	// CategoryByName returns ErrNotFound when absent.
	CategoryByName(name model.CategoryName) (model.Category, error)

	// InsertTransaction creates a transaction row and returns its id.
	InsertTransaction(txn model.Transaction) (int64, error)

	Commit() error
	Rollback() error
}
