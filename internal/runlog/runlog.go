// Package runlog appends one CSV row per ingestion run under the data
// directory, so runs stay auditable without a database query.
package runlog

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the ingest log.
type Entry struct {
	Timestamp  time.Time
	RunID      string
	WindowDays int
	Processed  int
	Skipped    int
	Duplicates int
	Failed     int
}

// Header is the CSV header for ingest-log.csv.
const Header = "timestamp,run_id,window_days,processed,skipped,duplicates,failed"

const (
	numFields     = 7
	logDir        = "logs"
	logFile       = "logs/ingest-log.csv"
	colTimestamp  = 0
	colRunID      = 1
	colWindowDays = 2
	colProcessed  = 3
	colSkipped    = 4
	colDuplicates = 5
	colFailed     = 6
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTimestamp] = e.Timestamp.Format(time.RFC3339)
	row[colRunID] = e.RunID
	row[colWindowDays] = strconv.Itoa(e.WindowDays)
	row[colProcessed] = strconv.Itoa(e.Processed)
	row[colSkipped] = strconv.Itoa(e.Skipped)
	row[colDuplicates] = strconv.Itoa(e.Duplicates)
	row[colFailed] = strconv.Itoa(e.Failed)
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	ts, err := time.Parse(time.RFC3339, record[colTimestamp])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTimestamp], err)
	}

	ints := make([]int, numFields)
	for _, col := range []int{colWindowDays, colProcessed, colSkipped, colDuplicates, colFailed} {
		ints[col], err = strconv.Atoi(record[col])
		if err != nil {
			return Entry{}, fmt.Errorf("parsing field %d %q: %w", col, record[col], err)
		}
	}

	return Entry{
		Timestamp:  ts,
		RunID:      record[colRunID],
		WindowDays: ints[colWindowDays],
		Processed:  ints[colProcessed],
		Skipped:    ints[colSkipped],
		Duplicates: ints[colDuplicates],
		Failed:     ints[colFailed],
	}, nil
}

// Append writes an entry to <dataDir>/logs/ingest-log.csv, creating the
// file and header if needed.
func Append(dataDir string, entry Entry) error {
	dir := filepath.Join(dataDir, logDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	path := filepath.Join(dataDir, logFile)
	needsHeader := false
	if _, err := os.Stat(path); os.IsNotExist(err) {
		needsHeader = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ingest log: %w", err)
	}
	defer f.Close()

	if needsHeader {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(MarshalEntry(entry)); err != nil {
		return fmt.Errorf("writing entry: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all entries from <dataDir>/logs/ingest-log.csv.
func Read(dataDir string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dataDir, logFile))
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ingest log: %w", err)
	}
	defer f.Close()

	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ingest log: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records {
		if i == 0 && strings.Join(rec, ",") == Header {
			continue
		}
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
