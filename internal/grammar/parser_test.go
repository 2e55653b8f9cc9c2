package grammar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smsledger-dev/smsledger/internal/model"
)

func msg(sender, body string) model.RawMessage {
	return model.RawMessage{
		Sender:    sender,
		Body:      body,
		Timestamp: time.Date(2023, 8, 10, 12, 0, 0, 0, time.UTC),
	}
}

func TestParse_HDFCDebit(t *testing.T) {
	draft, ok := Parse(msg("HDFCBK", "HDFC Bank: Rs. 1,234.50 debited from your a/c XX1234 on 05-08-23"))
	require.True(t, ok)

	assert.Equal(t, model.Debit, draft.Direction)
	assert.True(t, draft.Amount.Equal(dec("1234.50")), "amount %s", draft.Amount)
	assert.Equal(t, model.BankHDFC, draft.Bank)
	assert.Equal(t, "XX1234", draft.AccountFragment)
	assert.Equal(t, time.Date(2023, 8, 5, 0, 0, 0, 0, time.UTC), draft.OccurredAt)
	assert.Equal(t, "HDFC Bank: Rs. 1,234.50 debited from your a/c XX1234 on 05-08-23", draft.RawText)
}

func TestParse_NoPatternMatch(t *testing.T) {
	// Bank resolves but no extraction pattern fires.
	_, ok := Parse(msg("HDFCBK", "Happy Diwali from HDFC Bank!"))
	assert.False(t, ok)
}

func TestParse_UnknownBank(t *testing.T) {
	// No grammar claims the sender or body: hard reject, not a fallback.
	_, ok := Parse(msg("VM-PROMO", "Rs. 500 debited from your wallet"))
	assert.False(t, ok)
}

func TestParse_RejectsZeroAmount(t *testing.T) {
	_, ok := Parse(msg("HDFCBK", "HDFC Bank: Rs. 0.00 debited from your a/c XX1234 on 05-08-23"))
	assert.False(t, ok)
}

// Every supported grammar round-trips a synthetic message back to a
// draft with the embedded amount, direction, and account fragment.
func TestParse_RoundTripPerGrammar(t *testing.T) {
	tests := []struct {
		bank    model.BankKey
		sender  string
		body    string
		dir     model.Direction
		amount  string
		account string
	}{
		{model.BankHDFC, "HDFCBK", "HDFC Bank: Rs. 2,500.00 credited to your a/c XX9876 on 12-07-23", model.Credit, "2500.00", "XX9876"},
		{model.BankICICI, "ICICIB", "ICICI Bank A/c XX1111 debited with Rs. 750.25 on 01-02-23", model.Debit, "750.25", "XX1111"},
		{model.BankSBI, "SBIINB", "SBI A/c XX2222 credited with INR 5,000.00 on 15-06-23", model.Credit, "5000.00", "XX2222"},
		{model.BankAxis, "AXISBK", "Axis Bank A/c XX3333 debited Rs. 120.00 on 09-09-23", model.Debit, "120.00", "XX3333"},
		{model.BankBOI, "BOIIND", "BOI: Rs. 300.00 debited from A/c XX4444 on 03-03-23", model.Debit, "300.00", "XX4444"},
		{model.BankYes, "YESBNK", "YES BANK Alert: Rs. 999.99 has been debited from your A/c XX5555", model.Debit, "999.99", "XX5555"},
		{model.BankKotak, "KOTAKB", "Kotak Bank: credited Rs. 50.00 to your A/c XX6666", model.Credit, "50.00", "XX6666"},
	}

	for _, tt := range tests {
		t.Run(string(tt.bank), func(t *testing.T) {
			draft, ok := Parse(msg(tt.sender, tt.body))
			require.True(t, ok)
			assert.Equal(t, tt.bank, draft.Bank)
			assert.Equal(t, tt.dir, draft.Direction)
			assert.True(t, draft.Amount.Equal(dec(tt.amount)), "amount %s", draft.Amount)
			assert.Equal(t, tt.account, draft.AccountFragment)
		})
	}
}

func TestParse_FreeFormSpend(t *testing.T) {
	draft, ok := Parse(msg("HDFCBK", "You have spent Rs. 420.00 at SWIGGY on 05-08-23 via HDFC card"))
	require.True(t, ok)
	assert.Equal(t, model.Debit, draft.Direction)
	assert.True(t, draft.Amount.Equal(dec("420.00")))
	assert.Equal(t, model.CategoryFood, draft.Category)
}

func TestParse_DateFallsBackToMessageTimestamp(t *testing.T) {
	m := msg("YESBNK", "YES BANK Alert: Rs. 10.00 has been debited from your A/c XX5555")
	draft, ok := Parse(m)
	require.True(t, ok)
	assert.Equal(t, m.Timestamp, draft.OccurredAt)
}

func TestParse_ExtractsBalanceFigure(t *testing.T) {
	draft, ok := Parse(msg("HDFCBK", "HDFC Bank: Rs. 100.00 debited from your a/c XX1234 on 05-08-23. Avl Bal Rs. 4,900.00"))
	require.True(t, ok)
	require.NotNil(t, draft.Balance)
	assert.True(t, draft.Balance.Equal(dec("4900.00")))
}

func TestParse_NoBalanceFigure(t *testing.T) {
	draft, ok := Parse(msg("HDFCBK", "HDFC Bank: Rs. 100.00 debited from your a/c XX1234 on 05-08-23"))
	require.True(t, ok)
	assert.Nil(t, draft.Balance)
}

func TestParse_Deterministic(t *testing.T) {
	m := msg("ICICIB", "ICICI Bank A/c XX1111 debited with Rs. 750.25 on 01-02-23")
	first, ok1 := Parse(m)
	second, ok2 := Parse(m)
	require.True(t, ok1)
	require.True(t, ok2)
	assert.Equal(t, first, second)
}

func TestResolve_RegistryOrder(t *testing.T) {
	// A body mentioning two banks resolves to the earlier grammar.
	g, ok := Resolve("", "HDFC and ICICI joint notice")
	require.True(t, ok)
	assert.Equal(t, model.BankHDFC, g.Key)
}
