package store

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smsledger-dev/smsledger/internal/model"
)

// Banks returns all bank rows ordered by id.
func (s *SQLite) Banks(ctx context.Context) ([]model.Bank, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, balance, account_number, last_updated FROM banks ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying banks: %w", err)
	}
	defer rows.Close()

	var out []model.Bank
	for rows.Next() {
		var (
			b       model.Bank
			balance string
			acct    nullStr
			updated nullStr
		)
		if err := rows.Scan(&b.ID, &b.Name, &balance, &acct, &updated); err != nil {
			return nil, fmt.Errorf("scanning bank: %w", err)
		}
		b.Balance, err = decimal.NewFromString(balance)
		if err != nil {
			return nil, fmt.Errorf("parsing balance %q: %w", balance, err)
		}
		b.AccountNumber = acct.v
		if updated.v != "" {
			b.LastUpdated, err = time.Parse(time.RFC3339, updated.v)
			if err != nil {
				return nil, fmt.Errorf("parsing last_updated %q: %w", updated.v, err)
			}
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// Categories returns all category rows ordered by id.
func (s *SQLite) Categories(ctx context.Context) ([]model.Category, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color, icon FROM categories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying categories: %w", err)
	}
	defer rows.Close()

	var out []model.Category
	for rows.Next() {
		var c model.Category
		var name string
		var icon nullStr
		if err := rows.Scan(&c.ID, &name, &c.Color, &icon); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		c.Name = model.CategoryName(name)
		c.Icon = icon.v
		out = append(out, c)
	}
	return out, rows.Err()
}

// Transactions returns all transaction rows, newest first.
func (s *SQLite) Transactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, type, amount, date, bank_id, category_id, description, raw_sms, fingerprint
		 FROM transactions ORDER BY date DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying transactions: %w", err)
	}
	defer rows.Close()

	var out []model.Transaction
	for rows.Next() {
		var (
			t           model.Transaction
			direction   string
			amount      string
			date        string
			desc, raw   nullStr
			fingerprint nullStr
		)
		if err := rows.Scan(&t.ID, &direction, &amount, &date, &t.BankID, &t.CategoryID, &desc, &raw, &fingerprint); err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		t.Direction = model.Direction(direction)
		t.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parsing amount %q: %w", amount, err)
		}
		t.OccurredAt, err = time.Parse(time.RFC3339, date)
		if err != nil {
			return nil, fmt.Errorf("parsing date %q: %w", date, err)
		}
		t.Description = desc.v
		t.RawSMS = raw.v
		t.Fingerprint = fingerprint.v
		out = append(out, t)
	}
	return out, rows.Err()
}

// nullStr scans TEXT columns that may be NULL into a plain string.
type nullStr struct {
	v string
}

func (n *nullStr) Scan(src any) error {
	switch s := src.(type) {
	case nil:
		n.v = ""
	case string:
		n.v = s
	case []byte:
		n.v = string(s)
	default:
		return fmt.Errorf("unexpected column type %T", src)
	}
	return nil
}
