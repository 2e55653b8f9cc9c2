// Package classify holds the pure text classifiers used by ingestion:
// the financial pre-filter and the keyword category classifier.
package classify

import "strings"

// financialKeywords is the vocabulary a message must touch to be
// considered finance-related. False negatives skip a message; false
// positives are cheap because the parser rejects non-matching bodies.
var financialKeywords = []string{
	"debit",
	"credit",
	"spent",
	"received",
	"transaction",
	"account",
	"balance",
	"payment",
	"upi",
	"bank",
	"atm",
	"transfer",
}

// IsFinancial reports whether a message body plausibly describes a bank
// transaction. Case-insensitive, no side effects.
func IsFinancial(body string) bool {
	lower := strings.ToLower(body)
	for _, kw := range financialKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
