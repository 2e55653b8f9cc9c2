package reconcile

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/smsledger-dev/smsledger/internal/model"
)

// Fingerprint derives the dedup key for a draft: a hash over bank key,
// amount, occurrence time, and the raw message text. Any number of
// ingestion runs over the same real-world message produce the same
// fingerprint, so at most one transaction row ever exists for it.
func Fingerprint(d model.TransactionDraft) string {
	h := sha256.Sum256(fmt.Appendf(nil, "%s|%s|%d|%s",
		d.Bank, d.Amount.String(), d.OccurredAt.Unix(), d.RawText))
	return hex.EncodeToString(h[:])
}
