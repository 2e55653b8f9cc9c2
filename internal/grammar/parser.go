package grammar

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/smsledger-dev/smsledger/internal/classify"
	"github.com/smsledger-dev/smsledger/internal/model"
)

// balancePattern captures an explicit available-balance figure. Only a
// figure like this is authoritative for the bank balance; ordinary
// transaction amounts never move it.
var balancePattern = regexp.MustCompile(`(?i)(?:avl|available)\.?\s*(?:bal|balance)\.?\s*:?\s*(?:Rs\.|INR|Rs|₹)?\s*(?P<bal>[\d,]+\.?\d*)`)

// dateLayouts are the date forms bank messages embed, tried in order.
var dateLayouts = []string{
	"2-1-06",
	"2/1/06",
	"2-1-2006",
	"2/1/2006",
	"2 Jan 2006",
	"2 Jan 06",
}

// Parse applies the grammar registry to a raw message. It returns the
// extracted draft and true, or a zero draft and false when the message
// has no recognized bank, no matching pattern, or a malformed amount.
// Parse is pure: repeated calls on the same message yield the same
// result.
func Parse(msg model.RawMessage) (model.TransactionDraft, bool) {
	g, ok := Resolve(msg.Sender, msg.Body)
	if !ok {
		return model.TransactionDraft{}, false
	}

	for _, p := range g.patterns {
		c, ok := p.Match(msg.Body)
		if !ok {
			continue
		}

		amount, ok := parseAmount(c.amount)
		if !ok {
			return model.TransactionDraft{}, false
		}

		desc := strings.TrimSpace(c.description)
		if desc == "" {
			desc = msg.Body
		}

		return model.TransactionDraft{
			Direction:       parseDirection(c.direction),
			Amount:          amount,
			OccurredAt:      parseDate(c.date, msg.Timestamp),
			Bank:            g.Key,
			AccountFragment: c.account,
			Balance:         extractBalance(msg.Body),
			Category:        classify.Categorize(desc),
			Description:     desc,
			RawText:         msg.Body,
		}, true
	}

	return model.TransactionDraft{}, false
}

// parseAmount strips thousands separators and parses a positive decimal.
func parseAmount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsPositive() {
		return decimal.Decimal{}, false
	}
	return d, true
}

// parseDirection maps a direction word to Credit or Debit. Any synonym
// of credited/received/deposited means Credit; everything else is Debit.
func parseDirection(word string) model.Direction {
	lower := strings.ToLower(word)
	for _, syn := range []string{"credit", "received", "deposit"} {
		if strings.Contains(lower, syn) {
			return model.Credit
		}
	}
	return model.Debit
}

// parseDate prefers an explicit captured date and falls back to the
// message's own timestamp.
func parseDate(s string, fallback time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return fallback
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return fallback
}

// extractBalance returns the explicit balance figure in a body, or nil.
func extractBalance(body string) *decimal.Decimal {
	m := balancePattern.FindStringSubmatch(body)
	if m == nil {
		return nil
	}
	// A balance of zero is legitimate, unlike a transaction amount.
	s := strings.ReplaceAll(m[len(m)-1], ",", "")
	bal, err := decimal.NewFromString(s)
	if err != nil || bal.IsNegative() {
		return nil
	}
	return &bal
}
