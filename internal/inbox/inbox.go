// Package inbox provides the message-store collaborator for CLI use: a
// CSV export of messages, filtered by a sender allow-list and a body
// keyword pre-filter.
package inbox

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/smsledger-dev/smsledger/internal/model"
)

// Header is the CSV header for a message export.
const Header = "sender,timestamp,body"

const (
	numFields    = 3
	colSender    = 0
	colTimestamp = 1
	colBody      = 2
)

// Source reads messages from a CSV file.
type Source struct {
	path     string
	senders  []string
	keywords []string
}

// New creates a Source. An empty senders or keywords list disables that
// filter.
func New(path string, senders, keywords []string) *Source {
	return &Source{path: path, senders: senders, keywords: keywords}
}

// ListMessages returns all messages with timestamp >= since that pass
// the sender allow-list and body keyword filter, in file order.
func (s *Source) ListMessages(_ context.Context, since time.Time) ([]model.RawMessage, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening inbox %s: %w", s.path, err)
	}
	defer f.Close()

	messages, err := ReadMessages(f)
	if err != nil {
		return nil, fmt.Errorf("reading inbox %s: %w", s.path, err)
	}

	var out []model.RawMessage
	for _, m := range messages {
		if m.Timestamp.Before(since) {
			continue
		}
		if !s.senderAllowed(m.Sender) {
			continue
		}
		if !s.bodyMatches(m.Body) {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *Source) senderAllowed(sender string) bool {
	if len(s.senders) == 0 {
		return true
	}
	upper := strings.ToUpper(sender)
	for _, allowed := range s.senders {
		if strings.Contains(upper, strings.ToUpper(allowed)) {
			return true
		}
	}
	return false
}

func (s *Source) bodyMatches(body string) bool {
	if len(s.keywords) == 0 {
		return true
	}
	lower := strings.ToLower(body)
	for _, kw := range s.keywords {
		if strings.Contains(lower, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// ReadMessages reads all messages from a CSV export reader.
func ReadMessages(r io.Reader) ([]model.RawMessage, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading messages CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var messages []model.RawMessage
	for i, rec := range records[1:] {
		ts, err := time.Parse(time.RFC3339, rec[colTimestamp])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing timestamp %q: %w", i+2, rec[colTimestamp], err)
		}
		messages = append(messages, model.RawMessage{
			Sender:    rec[colSender],
			Timestamp: ts,
			Body:      rec[colBody],
		})
	}
	return messages, nil
}

// WriteMessages writes messages to a CSV export writer (with header).
func WriteMessages(w io.Writer, messages []model.RawMessage) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, m := range messages {
		row := make([]string, numFields)
		row[colSender] = m.Sender
		row[colTimestamp] = m.Timestamp.Format(time.RFC3339)
		row[colBody] = m.Body
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}
