// Package grammar defines the per-bank text grammars and the SMS parser
// built on them. Banks form a closed, ordered set of variants: resolution
// is deterministic, first match wins at both the bank and pattern level.
package grammar

import (
	"regexp"
	"strings"

	"github.com/smsledger-dev/smsledger/internal/model"
)

// Pattern is one extraction pattern of a bank grammar. Named capture
// groups carry the extracted fields: amount (required), dir, acct,
// date, desc (all optional).
type Pattern struct {
	re *regexp.Regexp
}

// Match applies the pattern to a body and returns the captured fields.
func (p Pattern) Match(body string) (capture, bool) {
	m := p.re.FindStringSubmatch(body)
	if m == nil {
		return capture{}, false
	}
	var c capture
	for i, name := range p.re.SubexpNames() {
		if i == 0 || i >= len(m) {
			continue
		}
		switch name {
		case "amount":
			c.amount = m[i]
		case "dir":
			c.direction = m[i]
		case "acct":
			c.account = m[i]
		case "date":
			c.date = m[i]
		case "desc":
			c.description = m[i]
		}
	}
	return c, true
}

// capture holds the raw text fields a pattern extracted from a body.
type capture struct {
	amount      string
	direction   string
	account     string
	date        string
	description string
}

// Grammar is one bank variant: a detection rule plus an ordered list of
// extraction patterns.
type Grammar struct {
	Key model.BankKey
	// detectTokens are matched case-insensitively against the sender
	// address and the body. Any hit resolves the bank.
	detectTokens []string
	patterns     []Pattern
}

// Detect reports whether this grammar claims the message.
func (g Grammar) Detect(sender, body string) bool {
	s := strings.ToUpper(sender)
	b := strings.ToUpper(body)
	for _, tok := range g.detectTokens {
		if strings.Contains(s, tok) || strings.Contains(b, tok) {
			return true
		}
	}
	return false
}

// Registry returns the grammars in resolution order. Order matters:
// the first grammar whose Detect matches wins.
func Registry() []Grammar {
	return registry
}

// Resolve returns the grammar for a message, or Unknown. An unknown
// bank is a hard reject for the parser, not a fallback.
func Resolve(sender, body string) (Grammar, bool) {
	for _, g := range registry {
		if g.Detect(sender, body) {
			return g, true
		}
	}
	return Grammar{Key: model.BankUnknown}, false
}

func pat(expr string) Pattern {
	return Pattern{re: regexp.MustCompile(expr)}
}
