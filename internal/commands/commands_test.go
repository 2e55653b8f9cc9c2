package commands

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smsledger-dev/smsledger/internal/config"
	"github.com/smsledger-dev/smsledger/internal/inbox"
	"github.com/smsledger-dev/smsledger/internal/model"
	"github.com/smsledger-dev/smsledger/internal/runlog"
	"github.com/smsledger-dev/smsledger/internal/store"
)

func TestInit_CreatesDataDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, runInit(context.Background(), dir))

	// Config written.
	cfg, err := config.Load(filepath.Join(dir, "smsledger.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "ledger.db", cfg.Storage.Path)

	// Logs dir created.
	info, err := os.Stat(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// Database created with seeds.
	s, err := store.Open(filepath.Join(dir, "ledger.db"))
	require.NoError(t, err)
	defer s.Close()
	cats, err := s.Categories(context.Background())
	require.NoError(t, err)
	assert.Len(t, cats, 7)
	banks, err := s.Banks(context.Background())
	require.NoError(t, err)
	assert.Len(t, banks, 2)
}

func TestIngest_EndToEnd(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	require.NoError(t, runInit(ctx, dir))

	// Grant consent and write an inbox export.
	cfgPath := filepath.Join(dir, "smsledger.yaml")
	cfg, err := config.Load(cfgPath)
	require.NoError(t, err)
	cfg.Permissions.AssumeGranted = true
	require.NoError(t, config.Save(cfgPath, cfg))

	f, err := os.Create(filepath.Join(dir, "inbox.csv"))
	require.NoError(t, err)
	err = inbox.WriteMessages(f, []model.RawMessage{
		{Sender: "HDFCBK", Timestamp: time.Now(), Body: "HDFC Bank: Rs. 1,234.50 debited from your a/c XX1234 on 05-08-23"},
		{Sender: "HDFCBK", Timestamp: time.Now(), Body: "Happy holidays from HDFC Bank! No transaction here."},
	})
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, runIngest(ctx, dir, 0, ""))

	s, err := store.Open(filepath.Join(dir, "ledger.db"))
	require.NoError(t, err)
	defer s.Close()
	txns, err := s.Transactions(ctx)
	require.NoError(t, err)
	require.Len(t, txns, 1)

	// Run log recorded the run.
	entries, err := runlog.Read(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 1, entries[0].Processed)
	assert.Equal(t, 30, entries[0].WindowDays)
}

func TestIngest_PermissionDenied(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()
	require.NoError(t, runInit(ctx, dir))

	err := runIngest(ctx, dir, 7, "")
	require.Error(t, err, "consent not granted in config")
}
