package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"expenseflow/internal/core"
)

// RowReader reads back the journal rows already in the export destination.
type RowReader interface {
	ReadRows(ctx context.Context) ([][]interface{}, error)
}

// SnapshotLoader loads the stored transaction collection.
// *storage.SQLiteRepository satisfies it.
type SnapshotLoader interface {
	Load(ctx context.Context) ([]core.Transaction, error)
}

// journalSheet is the export destination seen by the reconciler: it must
// support both reading the existing journal and appending to it.
type journalSheet interface {
	RowAppender
	RowReader
}

// actionBackfill marks journal rows written by the reconciler instead of a
// consumed mutation event.
const actionBackfill = "backfill"

// Reconciler heals gaps in the export journal: on every interval tick it
// compares storage against the sheet and appends a backfill row for each
// stored transaction that has no journal row at all, at most batchSize rows
// per pass so a large backlog drains without hitting API quotas.
type Reconciler struct {
	storage   SnapshotLoader
	sheet     journalSheet
	batchSize int
	interval  time.Duration
}

func NewReconciler(storage SnapshotLoader, sheet journalSheet, batchSize int, interval time.Duration) *Reconciler {
	return &Reconciler{
		storage:   storage,
		sheet:     sheet,
		batchSize: batchSize,
		interval:  interval,
	}
}

// Run reconciles on every tick until the context is cancelled. A failed pass
// is logged and retried on the next tick.
func (r *Reconciler) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "Started journal reconciler",
		"interval", r.interval,
		"batch_size", r.batchSize)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping journal reconciler", "reason", ctx.Err())
			return ctx.Err()
		case <-ticker.C:
			if err := r.reconcile(ctx); err != nil {
				slog.ErrorContext(ctx, "Reconciliation pass failed", "error", err)
			}
		}
	}
}

func (r *Reconciler) reconcile(ctx context.Context) error {
	rows, err := r.sheet.ReadRows(ctx)
	if err != nil {
		return fmt.Errorf("read journal rows: %w", err)
	}

	// Column C holds the transaction id for every action, deletes included.
	journaled := make(map[string]bool, len(rows))
	for _, row := range rows {
		if len(row) < 3 {
			continue
		}
		if id, ok := row[2].(string); ok && id != "" {
			journaled[id] = true
		}
	}

	transactions, err := r.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("load transactions: %w", err)
	}

	appended := 0
	for _, t := range transactions {
		if journaled[t.ID] {
			continue
		}
		if appended == r.batchSize {
			break
		}

		row := []interface{}{
			time.Now().Format(time.RFC3339),
			actionBackfill,
			t.ID,
			t.Title,
			t.Amount.String(),
			string(t.Type),
			t.Category,
			t.Date.String(),
		}
		if err := r.sheet.AppendRow(ctx, row); err != nil {
			return fmt.Errorf("append backfill row for %s: %w", t.ID, err)
		}
		appended++
	}

	if appended > 0 {
		slog.InfoContext(ctx, "Backfilled journal rows", "count", appended)
	}
	return nil
}
