// Package ingest coordinates one batch ingestion run: permission
// acquisition, windowed message retrieval, classification, parsing,
// categorization, and reconciliation. It does no parsing or persistence
// itself; it wires the pure stages to the reconciler and aggregates
// per-message outcomes.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/smsledger-dev/smsledger/internal/classify"
	"github.com/smsledger-dev/smsledger/internal/grammar"
	"github.com/smsledger-dev/smsledger/internal/model"
	"github.com/smsledger-dev/smsledger/internal/reconcile"
	"github.com/smsledger-dev/smsledger/internal/store"
)

// ErrPermissionDenied is fatal for a run: no messages are processed.
var ErrPermissionDenied = errors.New("message read permission denied")

// MessageSource lists inbox messages newer than a cutoff.
type MessageSource interface {
	ListMessages(ctx context.Context, since time.Time) ([]model.RawMessage, error)
}

// Permissions is the external permission collaborator.
type Permissions interface {
	HasReadAccess(ctx context.Context) (bool, error)
	RequestReadAccess(ctx context.Context) (bool, error)
}

// Reconciler applies one draft to the ledger.
type Reconciler interface {
	Reconcile(ctx context.Context, draft model.TransactionDraft) (model.Transaction, error)
}

// DraftError records a single message's failure inside a run.
type DraftError struct {
	Sender string
	Err    string
}

// Report summarizes one ingestion run. Duplicates are counted apart
// from failures: a duplicate is the idempotency guarantee working.
type Report struct {
	RunID      string
	Processed  int
	Skipped    int
	Duplicates int
	Failed     int
	Errors     []DraftError
}

// Orchestrator runs bounded ingestion batches.
type Orchestrator struct {
	source     MessageSource
	perms      Permissions
	reconciler Reconciler
	log        zerolog.Logger
	now        func() time.Time
}

// New creates an Orchestrator. The reconciler is typically
// reconcile.New over a store; tests may substitute fakes.
func New(source MessageSource, perms Permissions, reconciler Reconciler, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		source:     source,
		perms:      perms,
		reconciler: reconciler,
		log:        log,
		now:        time.Now,
	}
}

// Run ingests all messages within the trailing window. Per-message
// failures are recorded and the batch continues; storage connectivity
// failures abort the remaining batch, leaving committed drafts in
// place. Re-running over an overlapping window is idempotent.
func (o *Orchestrator) Run(ctx context.Context, window time.Duration) (Report, error) {
	report := Report{RunID: uuid.NewString()}
	log := o.log.With().Str("run_id", report.RunID).Logger()

	granted, err := o.perms.HasReadAccess(ctx)
	if err != nil {
		return report, fmt.Errorf("checking read access: %w", err)
	}
	if !granted {
		granted, err = o.perms.RequestReadAccess(ctx)
		if err != nil {
			return report, fmt.Errorf("requesting read access: %w", err)
		}
	}
	if !granted {
		return report, ErrPermissionDenied
	}

	since := o.now().Add(-window)
	messages, err := o.source.ListMessages(ctx, since)
	if err != nil {
		return report, fmt.Errorf("listing messages: %w", err)
	}
	if len(messages) == 0 {
		// An empty window is a reported zero result, not an error.
		log.Info().Msg("no messages in window")
		return report, nil
	}

	drafts := parseAll(messages)

	// Reconciliation mutates shared bank state, so it runs sequentially
	// in store order. Cancellation means "do not start the next draft";
	// a draft already begun runs to commit or rollback.
	for i, d := range drafts {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		if d == nil {
			report.Skipped++
			continue
		}

		_, err := o.reconciler.Reconcile(ctx, *d)
		switch {
		case err == nil:
			report.Processed++
		case errors.Is(err, reconcile.ErrDuplicate):
			report.Duplicates++
		case errors.Is(err, store.ErrUnavailable):
			report.Errors = append(report.Errors, DraftError{Sender: messages[i].Sender, Err: err.Error()})
			log.Error().Err(err).Msg("store unavailable, aborting batch")
			return report, err
		default:
			report.Failed++
			report.Errors = append(report.Errors, DraftError{Sender: messages[i].Sender, Err: err.Error()})
		}
	}

	log.Info().
		Int("processed", report.Processed).
		Int("skipped", report.Skipped).
		Int("duplicates", report.Duplicates).
		Int("failed", report.Failed).
		Msg("ingestion run complete")
	return report, nil
}

// parseAll runs the pure stages over all messages. Classification and
// parsing are side-effect free, so messages fan out across goroutines;
// the indexed slice keeps store order for the reconciliation phase.
// A nil entry means the message was filtered or unparseable.
func parseAll(messages []model.RawMessage) []*model.TransactionDraft {
	drafts := make([]*model.TransactionDraft, len(messages))
	var wg sync.WaitGroup
	for i, msg := range messages {
		wg.Add(1)
		go func(i int, msg model.RawMessage) {
			defer wg.Done()
			if !classify.IsFinancial(msg.Body) {
				return
			}
			if draft, ok := grammar.Parse(msg); ok {
				drafts[i] = &draft
			}
		}(i, msg)
	}
	wg.Wait()
	return drafts
}
