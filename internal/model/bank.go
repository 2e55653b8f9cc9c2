package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// BankKey identifies a supported bank. The set is closed: adding a bank
// means adding a constant and a grammar variant, never mutating a table
// at runtime.
type BankKey string

const (
	BankHDFC    BankKey = "HDFC"
	BankICICI   BankKey = "ICICI"
	BankSBI     BankKey = "SBI"
	BankAxis    BankKey = "AXIS"
	BankBOI     BankKey = "BOI"
	BankYes     BankKey = "YESBANK"
	BankKotak   BankKey = "KOTAK"
	BankUnknown BankKey = "UNKNOWN"
)

// DisplayName returns the bank name used for the banks.name column.
func (k BankKey) DisplayName() string {
	switch k {
	case BankHDFC:
		return "HDFC"
	case BankICICI:
		return "ICICI"
	case BankSBI:
		return "SBI"
	case BankAxis:
		return "Axis"
	case BankBOI:
		return "BOI"
	case BankYes:
		return "Yes Bank"
	case BankKotak:
		return "Kotak"
	default:
		return "Unknown"
	}
}

// Bank is a row in the banks table. AccountNumber and LastUpdated are
// optional; their zero values map to NULL.
type Bank struct {
	ID            int64
	Name          string
	Balance       decimal.Decimal
	AccountNumber string
	LastUpdated   time.Time
}

// DefaultBanks returns the banks seeded on first open.
func DefaultBanks() []Bank {
	return []Bank{
		{Name: "Cash", Balance: decimal.Zero},
		{Name: "Bank Account", Balance: decimal.Zero},
	}
}
