package runlog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func entry(runID string, processed int) Entry {
	return Entry{
		Timestamp:  time.Date(2023, 8, 10, 12, 0, 0, 0, time.UTC),
		RunID:      runID,
		WindowDays: 30,
		Processed:  processed,
		Skipped:    2,
		Duplicates: 1,
		Failed:     0,
	}
}

func TestAppendAndRead(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, Append(dir, entry("run-1", 5)))
	require.NoError(t, Append(dir, entry("run-2", 0)))

	entries, err := Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "run-1", entries[0].RunID)
	assert.Equal(t, 5, entries[0].Processed)
	assert.Equal(t, "run-2", entries[1].RunID)
}

func TestRead_NoLogFile(t *testing.T) {
	entries, err := Read(t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMarshalRoundTrip(t *testing.T) {
	e := entry("run-9", 12)
	got, err := UnmarshalEntry(MarshalEntry(e))
	require.NoError(t, err)
	assert.Equal(t, e, got)
}

func TestUnmarshalEntry_WrongFieldCount(t *testing.T) {
	_, err := UnmarshalEntry([]string{"only", "three", "fields"})
	require.Error(t, err)
}
