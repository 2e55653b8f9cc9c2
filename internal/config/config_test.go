package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Storage.Path = "/data/ledger.db"
	cfg.Inbox.Senders = []string{"HDFCBK"}
	cfg.Permissions.AssumeGranted = true

	path := filepath.Join(t.TempDir(), "smsledger.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Storage.Path, got.Storage.Path)
	assert.Equal(t, cfg.Inbox.Path, got.Inbox.Path)
	assert.Equal(t, cfg.Inbox.Senders, got.Inbox.Senders)
	assert.Equal(t, cfg.Inbox.Keywords, got.Inbox.Keywords)
	assert.Equal(t, cfg.Ingest.WindowDays, got.Ingest.WindowDays)
	assert.True(t, got.Permissions.AssumeGranted)
}

func TestDefaults(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "ledger.db", cfg.Storage.Path)
	assert.Equal(t, "inbox.csv", cfg.Inbox.Path)
	assert.Equal(t, 30, cfg.Ingest.WindowDays)
	assert.Contains(t, cfg.Inbox.Senders, "HDFCBK")
	assert.Contains(t, cfg.Inbox.Keywords, "debited")
	assert.False(t, cfg.Permissions.AssumeGranted)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default()
	path := filepath.Join(t.TempDir(), "smsledger.yaml")
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "path: ledger.db")
	assert.Contains(t, contents, "window_days: 30")
	assert.Contains(t, contents, "assume_granted: false")
	assert.Contains(t, contents, "- HDFCBK")
}
