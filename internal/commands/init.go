package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/smsledger-dev/smsledger/internal/config"
	"github.com/smsledger-dev/smsledger/internal/store"
)

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new ledger data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.Context(), absDir)
		},
	}

	return cmd
}

func runInit(ctx context.Context, dir string) error {
	if err := os.MkdirAll(filepath.Join(dir, "logs"), 0o755); err != nil {
		return fmt.Errorf("creating logs dir: %w", err)
	}

	// Write smsledger.yaml.
	cfg := config.Default()
	if err := config.Save(filepath.Join(dir, "smsledger.yaml"), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Create the ledger database with schema and seed rows.
	s, err := store.Open(filepath.Join(dir, cfg.Storage.Path))
	if err != nil {
		return err
	}
	defer s.Close()
	if err := s.Init(ctx); err != nil {
		return fmt.Errorf("initializing ledger: %w", err)
	}

	fmt.Printf("Initialized ledger in %s\n", dir)
	return nil
}
