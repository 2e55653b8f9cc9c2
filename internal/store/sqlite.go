package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/smsledger-dev/smsledger/internal/model"
)

// SQLite is the Ledger implementation backed by a local SQLite file.
type SQLite struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at path.
func Open(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrUnavailable, path, err)
	}
	// SQLite handles one writer at a time.
	db.SetMaxOpenConns(1)
	return &SQLite{db: db}, nil
}

// Close releases the underlying database handle.
func (s *SQLite) Close() error {
	return s.db.Close()
}

var createTables = []string{
	`CREATE TABLE IF NOT EXISTS banks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL UNIQUE,
		balance TEXT NOT NULL DEFAULT '0',
		account_number TEXT,
		last_updated TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS categories (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		color TEXT NOT NULL,
		icon TEXT
	)`,
	`CREATE TABLE IF NOT EXISTS transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type TEXT NOT NULL,
		amount TEXT NOT NULL,
		date TEXT NOT NULL,
		bank_id INTEGER,
		category_id INTEGER,
		description TEXT,
		raw_sms TEXT,
		fingerprint TEXT,
		FOREIGN KEY (bank_id) REFERENCES banks (id),
		FOREIGN KEY (category_id) REFERENCES categories (id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_banks_account_number ON banks (account_number) WHERE account_number IS NOT NULL`,
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_transactions_fingerprint ON transactions (fingerprint) WHERE fingerprint IS NOT NULL`,
}

// migrations add columns that predate-schema databases are missing.
// Each pair is a pragma_table_info guard plus the ALTER to run when the
// column count is zero.
var migrations = [][2]string{
	{
		`SELECT COUNT(*) FROM pragma_table_info('banks') WHERE name = 'account_number'`,
		`ALTER TABLE banks ADD COLUMN account_number TEXT`,
	},
	{
		`SELECT COUNT(*) FROM pragma_table_info('banks') WHERE name = 'last_updated'`,
		`ALTER TABLE banks ADD COLUMN last_updated TEXT`,
	},
	{
		`SELECT COUNT(*) FROM pragma_table_info('transactions') WHERE name = 'fingerprint'`,
		`ALTER TABLE transactions ADD COLUMN fingerprint TEXT`,
	},
}

// Init creates the schema, applies migrations, and seeds the default
// categories and banks on first open.
func (s *SQLite) Init(ctx context.Context) error {
	for _, stmt := range createTables {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("creating schema: %w", err)
		}
	}

	for _, m := range migrations {
		var count int
		if err := s.db.QueryRowContext(ctx, m[0]).Scan(&count); err != nil {
			return fmt.Errorf("checking migration: %w", err)
		}
		if count == 0 {
			if _, err := s.db.ExecContext(ctx, m[1]); err != nil {
				return fmt.Errorf("running migration: %w", err)
			}
		}
	}

	if err := s.seed(ctx); err != nil {
		return fmt.Errorf("seeding defaults: %w", err)
	}
	return nil
}

func (s *SQLite) seed(ctx context.Context) error {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM categories`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		for _, c := range model.DefaultCategories() {
			if _, err := s.db.ExecContext(ctx,
				`INSERT INTO categories (name, color, icon) VALUES (?, ?, ?)`,
				string(c.Name), c.Color, c.Icon); err != nil {
				return err
			}
		}
	}

	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM banks`).Scan(&count); err != nil {
		return err
	}
	if count == 0 {
		for _, b := range model.DefaultBanks() {
			if _, err := s.db.ExecContext(ctx,
				`INSERT INTO banks (name, balance) VALUES (?, ?)`,
				b.Name, b.Balance.String()); err != nil {
				return err
			}
		}
	}
	return nil
}

// Begin opens an atomic reconciliation scope.
func (s *SQLite) Begin(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: begin: %v", ErrUnavailable, err)
	}
	return &sqliteTx{tx: tx}, nil
}

type sqliteTx struct {
	tx   *sql.Tx
	done bool
}

func (t *sqliteTx) TransactionExists(fingerprint string) (bool, error) {
	var count int
	err := t.tx.QueryRow(`SELECT COUNT(*) FROM transactions WHERE fingerprint = ?`, fingerprint).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("querying fingerprint: %w", err)
	}
	return count > 0, nil
}

func (t *sqliteTx) BankByAccountNumber(accountNumber string) (model.Bank, error) {
	return t.scanBank(t.tx.QueryRow(
		`SELECT id, name, balance, account_number, last_updated FROM banks WHERE account_number = ?`,
		accountNumber))
}

func (t *sqliteTx) BankByName(name string) (model.Bank, error) {
	return t.scanBank(t.tx.QueryRow(
		`SELECT id, name, balance, account_number, last_updated FROM banks WHERE name = ?`,
		name))
}

func (t *sqliteTx) scanBank(row *sql.Row) (model.Bank, error) {
	var (
		b       model.Bank
		balance string
		acct    sql.NullString
		updated sql.NullString
	)
	err := row.Scan(&b.ID, &b.Name, &balance, &acct, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bank{}, ErrNotFound
	}
	if err != nil {
		return model.Bank{}, fmt.Errorf("scanning bank: %w", err)
	}

	b.Balance, err = decimal.NewFromString(balance)
	if err != nil {
		return model.Bank{}, fmt.Errorf("parsing balance %q: %w", balance, err)
	}
	b.AccountNumber = acct.String
	if updated.Valid {
		b.LastUpdated, err = time.Parse(time.RFC3339, updated.String)
		if err != nil {
			return model.Bank{}, fmt.Errorf("parsing last_updated %q: %w", updated.String, err)
		}
	}
	return b, nil
}

func (t *sqliteTx) InsertBank(bank model.Bank) (int64, error) {
	res, err := t.tx.Exec(
		`INSERT INTO banks (name, balance, account_number, last_updated) VALUES (?, ?, ?, ?)`,
		bank.Name, bank.Balance.String(), nullString(bank.AccountNumber), nullTime(bank.LastUpdated))
	if err != nil {
		return 0, fmt.Errorf("inserting bank %s: %w", bank.Name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("bank insert id: %w", err)
	}
	return id, nil
}

func (t *sqliteTx) UpdateBank(id int64, balance *decimal.Decimal, accountNumber string, lastUpdated time.Time) error {
	var bal sql.NullString
	if balance != nil {
		bal = sql.NullString{String: balance.String(), Valid: true}
	}
	_, err := t.tx.Exec(
		`UPDATE banks
		 SET balance = COALESCE(?, balance),
		     account_number = COALESCE(account_number, ?),
		     last_updated = ?
		 WHERE id = ?`,
		bal, nullString(accountNumber), lastUpdated.Format(time.RFC3339), id)
	if err != nil {
		return fmt.Errorf("updating bank %d: %w", id, err)
	}
	return nil
}

func (t *sqliteTx) CategoryByName(name model.CategoryName) (model.Category, error) {
	var c model.Category
	var n string
	err := t.tx.QueryRow(
		`SELECT id, name, color, icon FROM categories WHERE name = ?`,
		string(name)).Scan(&c.ID, &n, &c.Color, &c.Icon)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Category{}, ErrNotFound
	}
	if err != nil {
		return model.Category{}, fmt.Errorf("scanning category: %w", err)
	}
	c.Name = model.CategoryName(n)
	return c, nil
}

func (t *sqliteTx) InsertTransaction(txn model.Transaction) (int64, error) {
	res, err := t.tx.Exec(
		`INSERT INTO transactions (type, amount, date, bank_id, category_id, description, raw_sms, fingerprint)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		string(txn.Direction), txn.Amount.String(), txn.OccurredAt.Format(time.RFC3339),
		txn.BankID, txn.CategoryID, txn.Description, txn.RawSMS, txn.Fingerprint)
	if err != nil {
		return 0, fmt.Errorf("inserting transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transaction insert id: %w", err)
	}
	return id, nil
}

func (t *sqliteTx) Commit() error {
	t.done = true
	if err := t.tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (t *sqliteTx) Rollback() error {
	if t.done {
		return nil
	}
	t.done = true
	if err := t.tx.Rollback(); err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t time.Time) sql.NullString {
	if t.IsZero() {
		return sql.NullString{}
	}
	return sql.NullString{String: t.Format(time.RFC3339), Valid: true}
}
