package model

import "time"

// RawMessage is a bank notification message as read from the inbox.
// It is never persisted verbatim except as raw_sms on a Transaction.
type RawMessage struct {
	Sender    string
	Body      string
	Timestamp time.Time
}
