package commands

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/smsledger-dev/smsledger/internal/config"
	"github.com/smsledger-dev/smsledger/internal/inbox"
	"github.com/smsledger-dev/smsledger/internal/ingest"
	"github.com/smsledger-dev/smsledger/internal/logging"
	"github.com/smsledger-dev/smsledger/internal/reconcile"
	"github.com/smsledger-dev/smsledger/internal/runlog"
	"github.com/smsledger-dev/smsledger/internal/store"
)

func newIngestCommand() *cobra.Command {
	var dataDir string
	var windowDays int
	var inboxPath string

	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest bank messages into the ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			absDir, err := filepath.Abs(dataDir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			return runIngest(cmd.Context(), absDir, windowDays, inboxPath)
		},
	}

	cmd.Flags().StringVar(&dataDir, "data", ".", "ledger data directory")
	cmd.Flags().IntVar(&windowDays, "window-days", 0, "ingestion window in days (default from config)")
	cmd.Flags().StringVar(&inboxPath, "inbox", "", "message export CSV (default from config)")

	return cmd
}

func runIngest(ctx context.Context, dir string, windowDays int, inboxPath string) error {
	cfg, err := config.Load(filepath.Join(dir, "smsledger.yaml"))
	if err != nil {
		return err
	}
	if windowDays <= 0 {
		windowDays = cfg.Ingest.WindowDays
	}
	if windowDays <= 0 {
		windowDays = 30
	}
	if inboxPath == "" {
		inboxPath = resolve(dir, cfg.Inbox.Path)
	}

	s, err := store.Open(resolve(dir, cfg.Storage.Path))
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Init(ctx); err != nil {
		return fmt.Errorf("initializing ledger: %w", err)
	}

	log := logging.New()
	source := inbox.New(inboxPath, cfg.Inbox.Senders, cfg.Inbox.Keywords)
	perms := inbox.StaticPermissions{Granted: cfg.Permissions.AssumeGranted}
	orch := ingest.New(source, perms, reconcile.New(s), log)

	report, runErr := orch.Run(ctx, time.Duration(windowDays)*24*time.Hour)

	if report.RunID != "" {
		entry := runlog.Entry{
			Timestamp:  time.Now(),
			RunID:      report.RunID,
			WindowDays: windowDays,
			Processed:  report.Processed,
			Skipped:    report.Skipped,
			Duplicates: report.Duplicates,
			Failed:     report.Failed,
		}
		if err := runlog.Append(dir, entry); err != nil {
			log.Warn().Err(err).Msg("failed to write ingest log")
		}
	}

	fmt.Printf("Processed: %d  Skipped: %d  Duplicates: %d  Failed: %d\n",
		report.Processed, report.Skipped, report.Duplicates, report.Failed)
	for _, e := range report.Errors {
		fmt.Printf("  %s: %s\n", e.Sender, e.Err)
	}

	return runErr
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}
