package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Direction is the side of a transaction from the account holder's view.
type Direction string

const (
	Debit  Direction = "DEBIT"
	Credit Direction = "CREDIT"
)

// TransactionDraft is the parser's output and the reconciler's input.
// It is never persisted directly.
type TransactionDraft struct {
	Direction       Direction
	Amount          decimal.Decimal
	OccurredAt      time.Time
	Bank            BankKey
	AccountFragment string           // masked account fragment, "" if not captured
	Balance         *decimal.Decimal // authoritative balance figure, nil if the message carried none
	Category        CategoryName
	Description     string
	RawText         string
}

// Validate checks the draft invariants the reconciler depends on.
func (d TransactionDraft) Validate() error {
	if d.Direction != Debit && d.Direction != Credit {
		return fmt.Errorf("invalid direction %q", d.Direction)
	}
	if !d.Amount.IsPositive() {
		return fmt.Errorf("amount must be positive, got %s", d.Amount)
	}
	if d.Bank == BankUnknown || d.Bank == "" {
		return fmt.Errorf("draft has no resolved bank")
	}
	if d.Category == "" {
		return fmt.Errorf("draft has no category")
	}
	return nil
}

// Transaction is a row in the transactions table. Rows are append-only;
// deletion is a user action outside ingestion.
type Transaction struct {
	ID          int64
	Direction   Direction
	Amount      decimal.Decimal
	OccurredAt  time.Time
	BankID      int64
	CategoryID  int64
	Description string
	RawSMS      string
	Fingerprint string
}
