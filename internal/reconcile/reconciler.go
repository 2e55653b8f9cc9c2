// Package reconcile resolves transaction drafts against the persistent
// ledger: dedup by fingerprint, lazy bank/category resolution, and an
// all-or-nothing transaction insert per draft.
package reconcile

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smsledger-dev/smsledger/internal/model"
	"github.com/smsledger-dev/smsledger/internal/store"
)

// ErrDuplicate reports a draft whose fingerprint is already committed.
// The caller counts these separately from failures; nothing is written.
var ErrDuplicate = errors.New("duplicate transaction")

// Reconciler applies drafts to the ledger one atomic scope at a time.
type Reconciler struct {
	ledger store.Ledger
	now    func() time.Time
}

// New creates a Reconciler against a ledger.
func New(ledger store.Ledger) *Reconciler {
	return &Reconciler{ledger: ledger, now: time.Now}
}

// Reconcile applies one draft within a single atomic scope. It returns
// the committed transaction, ErrDuplicate for an already-ingested
// message, or an error with no surviving partial writes.
func (r *Reconciler) Reconcile(ctx context.Context, draft model.TransactionDraft) (model.Transaction, error) {
	if err := draft.Validate(); err != nil {
		return model.Transaction{}, fmt.Errorf("invalid draft: %w", err)
	}

	tx, err := r.ledger.Begin(ctx)
	if err != nil {
		return model.Transaction{}, err
	}
	defer tx.Rollback()

	fingerprint := Fingerprint(draft)
	exists, err := tx.TransactionExists(fingerprint)
	if err != nil {
		return model.Transaction{}, err
	}
	if exists {
		return model.Transaction{}, ErrDuplicate
	}

	bankID, err := r.resolveBank(tx, draft)
	if err != nil {
		return model.Transaction{}, err
	}

	categoryID, err := resolveCategory(tx, draft.Category)
	if err != nil {
		return model.Transaction{}, err
	}

	txn := model.Transaction{
		Direction:   draft.Direction,
		Amount:      draft.Amount,
		OccurredAt:  draft.OccurredAt,
		BankID:      bankID,
		CategoryID:  categoryID,
		Description: draft.Description,
		RawSMS:      draft.RawText,
		Fingerprint: fingerprint,
	}
	txn.ID, err = tx.InsertTransaction(txn)
	if err != nil {
		return model.Transaction{}, err
	}

	if err := tx.Commit(); err != nil {
		return model.Transaction{}, err
	}
	return txn, nil
}

// resolveBank finds the draft's bank by account number, then by name,
// creating it on first reference. An existing bank gets its balance
// overwritten only when the draft carries an explicit balance figure;
// last_updated always advances.
func (r *Reconciler) resolveBank(tx store.Tx, draft model.TransactionDraft) (int64, error) {
	name := draft.Bank.DisplayName()

	var bank model.Bank
	var err error
	if draft.AccountFragment != "" {
		bank, err = tx.BankByAccountNumber(draft.AccountFragment)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return 0, err
		}
	} else {
		err = store.ErrNotFound
	}
	if errors.Is(err, store.ErrNotFound) {
		bank, err = tx.BankByName(name)
	}

	switch {
	case err == nil:
		if uerr := tx.UpdateBank(bank.ID, draft.Balance, draft.AccountFragment, r.now()); uerr != nil {
			return 0, uerr
		}
		return bank.ID, nil
	case errors.Is(err, store.ErrNotFound):
		balance := decimal.Zero
		if draft.Balance != nil {
			balance = *draft.Balance
		}
		return tx.InsertBank(model.Bank{
			Name:          name,
			Balance:       balance,
			AccountNumber: draft.AccountFragment,
			LastUpdated:   r.now(),
		})
	default:
		return 0, err
	}
}

// resolveCategory maps the draft's category to an existing row, falling
// back to the reserved default. Ingestion never creates categories, and
// the default is found by name, never assumed by id.
func resolveCategory(tx store.Tx, name model.CategoryName) (int64, error) {
	cat, err := tx.CategoryByName(name)
	if errors.Is(err, store.ErrNotFound) {
		cat, err = tx.CategoryByName(model.CategoryOthers)
	}
	if err != nil {
		return 0, fmt.Errorf("resolving category %q: %w", name, err)
	}
	return cat.ID, nil
}
