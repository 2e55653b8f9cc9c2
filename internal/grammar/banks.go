package grammar

import "github.com/smsledger-dev/smsledger/internal/model"

// Sender formats are heterogeneous across banks, so each bank carries
// its own patterns. Within a bank, patterns go from most to least
// structured; the free-form HDFC patterns catch card-spend wording the
// structured alert format misses.
//
// Date captures accept DD-MM-YY, DD/MM/YYYY and "D Mon YYYY" forms;
// normalization happens in the parser.
var registry = []Grammar{
	{
		Key:          model.BankHDFC,
		detectTokens: []string{"HDFCBK", "HDFC"},
		patterns: []Pattern{
			pat(`(?i)HDFC Bank: (?:Rs\.|INR) (?P<amount>[\d,]+\.?\d*) (?P<dir>credited to|debited from) your (?:a/c|account) (?P<acct>\w+) on (?P<date>\d{2}-\d{2}-\d{2})`),
			pat(`(?i)(?P<dir>spent|debited|paid)\s+(?:Rs\.|INR|Rs|₹)\s*(?P<amount>[\d,]+\.?\d*)\s+(?:at|to|in)\s+(?P<desc>.+?)(?:\s+on\s+(?P<date>\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{2,4})|\.|$)`),
			pat(`(?i)(?P<dir>credited|received|deposited)\s+(?:Rs\.|INR|Rs|₹)\s*(?P<amount>[\d,]+\.?\d*)\s+(?:from|by)\s+(?P<desc>.+?)(?:\s+on\s+(?P<date>\d{1,2}[/-]\d{1,2}[/-]\d{2,4}|\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)\s+\d{2,4})|\.|$)`),
		},
	},
	{
		Key:          model.BankICICI,
		detectTokens: []string{"ICICIB", "ICICI"},
		patterns: []Pattern{
			pat(`(?i)ICICI Bank (?:A/c|Account) (?P<acct>\w+) (?P<dir>credited|debited) with (?:Rs\.|INR) (?P<amount>[\d,]+\.?\d*) on (?P<date>\d{2}-\d{2}-\d{2})`),
		},
	},
	{
		Key:          model.BankSBI,
		detectTokens: []string{"SBIINB", "SBI"},
		patterns: []Pattern{
			pat(`(?i)SBI (?:A/c|Account) (?P<acct>\w+) (?P<dir>credited|debited) with (?:Rs\.|INR) (?P<amount>[\d,]+\.?\d*) on (?P<date>\d{2}-\d{2}-\d{2})`),
		},
	},
	{
		Key:          model.BankAxis,
		detectTokens: []string{"AXISBK", "AXIS"},
		patterns: []Pattern{
			pat(`(?i)Axis Bank (?:A/c|Account) (?P<acct>\w+) (?P<dir>credited|debited) (?:Rs\.|INR) (?P<amount>[\d,]+\.?\d*) on (?P<date>\d{2}-\d{2}-\d{2})`),
		},
	},
	{
		Key:          model.BankBOI,
		detectTokens: []string{"BOIIND", "BOI"},
		patterns: []Pattern{
			pat(`(?i)BOI: (?:Rs\.|INR) (?P<amount>[\d,]+\.?\d*) (?P<dir>credited to|debited from) (?:A/c|Account) (?P<acct>\w+) on (?P<date>\d{2}-\d{2}-\d{2})`),
		},
	},
	{
		Key:          model.BankYes,
		detectTokens: []string{"YESBNK", "YES BANK"},
		patterns: []Pattern{
			pat(`(?i)YES BANK.*?(?:Rs\.|INR) (?P<amount>[\d,]+\.?\d*).*(?P<dir>credited|debited).*?A/c\s?(?P<acct>\w+)`),
		},
	},
	{
		Key:          model.BankKotak,
		detectTokens: []string{"KOTAKB", "KOTAK"},
		patterns: []Pattern{
			pat(`(?i)Kotak.*?(?P<dir>credited|debited).*?(?:Rs\.|INR) (?P<amount>[\d,]+\.?\d*).*?A/c\s?(?P<acct>\w+)`),
		},
	},
}
