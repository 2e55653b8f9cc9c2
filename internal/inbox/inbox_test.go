package inbox

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smsledger-dev/smsledger/internal/model"
)

var (
	t0 = time.Date(2023, 8, 1, 9, 0, 0, 0, time.UTC)
	t1 = time.Date(2023, 8, 5, 9, 0, 0, 0, time.UTC)
	t2 = time.Date(2023, 8, 9, 9, 0, 0, 0, time.UTC)
)

func writeInbox(t *testing.T, messages []model.RawMessage) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "inbox.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, WriteMessages(f, messages))
	return path
}

func TestListMessages_WindowFilter(t *testing.T) {
	path := writeInbox(t, []model.RawMessage{
		{Sender: "HDFCBK", Timestamp: t0, Body: "old debited message"},
		{Sender: "HDFCBK", Timestamp: t2, Body: "new debited message"},
	})
	src := New(path, nil, nil)

	got, err := src.ListMessages(context.Background(), t1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, t2, got[0].Timestamp)
}

func TestListMessages_SenderAllowList(t *testing.T) {
	path := writeInbox(t, []model.RawMessage{
		{Sender: "VM-HDFCBK", Timestamp: t2, Body: "debited 100"},
		{Sender: "VM-PROMO", Timestamp: t2, Body: "debited 200"},
	})
	src := New(path, []string{"HDFCBK", "ICICIB"}, nil)

	got, err := src.ListMessages(context.Background(), t1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "VM-HDFCBK", got[0].Sender)
}

func TestListMessages_BodyKeywordFilter(t *testing.T) {
	path := writeInbox(t, []model.RawMessage{
		{Sender: "HDFCBK", Timestamp: t2, Body: "Rs 100 Debited from a/c"},
		{Sender: "HDFCBK", Timestamp: t2, Body: "Welcome to netbanking"},
	})
	src := New(path, nil, []string{"credited", "debited"})

	got, err := src.ListMessages(context.Background(), t1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got[0].Body, "Debited")
}

func TestListMessages_MissingFile(t *testing.T) {
	src := New(filepath.Join(t.TempDir(), "nope.csv"), nil, nil)
	_, err := src.ListMessages(context.Background(), t1)
	require.Error(t, err)
}

func TestReadMessages_RoundTrip(t *testing.T) {
	in := []model.RawMessage{
		{Sender: "HDFCBK", Timestamp: t0, Body: "body with, comma and \"quotes\""},
		{Sender: "ICICIB", Timestamp: t1, Body: "plain body"},
	}
	var sb strings.Builder
	require.NoError(t, WriteMessages(&sb, in))

	out, err := ReadMessages(strings.NewReader(sb.String()))
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestStaticPermissions(t *testing.T) {
	granted, err := StaticPermissions{Granted: true}.HasReadAccess(context.Background())
	require.NoError(t, err)
	assert.True(t, granted)

	granted, err = StaticPermissions{}.RequestReadAccess(context.Background())
	require.NoError(t, err)
	assert.False(t, granted)
}
