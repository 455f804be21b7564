// Package worker turns ledger mutation events into export journal rows.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"expenseflow/internal/amqp"
	"expenseflow/internal/core"
	"expenseflow/internal/storage"
)

// RowAppender is the outbound port for the export destination.
type RowAppender interface {
	AppendRow(ctx context.Context, row []interface{}) error
}

// TransactionGetter is the inbound port for looking up the full transaction
// behind a sync message. *storage.SQLiteRepository satisfies it.
type TransactionGetter interface {
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
}

// SyncWorker consumes transaction sync messages and appends one journal row
// per mutation to the export sheet. The journal is append-only: deletes are
// recorded as rows too, never removed.
type SyncWorker struct {
	storage TransactionGetter
	sheet   RowAppender
}

func NewSyncWorker(storage TransactionGetter, sheet RowAppender) *SyncWorker {
	return &SyncWorker{
		storage: storage,
		sheet:   sheet,
	}
}

// HandleSyncMessage processes a single mutation event from AMQP.
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message",
		"id", msg.ID,
		"action", msg.Action)

	if msg.Action == amqp.ActionDelete {
		return w.appendRow(ctx, msg, core.Transaction{ID: msg.ID})
	}

	t, err := w.storage.GetTransaction(ctx, msg.ID)
	if errors.Is(err, storage.ErrNoRow) {
		// The transaction was deleted before this event was consumed; the
		// delete event carries its own row.
		slog.WarnContext(ctx, "Transaction no longer in storage, skipping",
			"id", msg.ID,
			"action", msg.Action)
		return nil
	}
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	return w.appendRow(ctx, msg, t)
}

func (w *SyncWorker) appendRow(ctx context.Context, msg *amqp.TransactionSyncMessage, t core.Transaction) error {
	amount, date := "", ""
	if msg.Action != amqp.ActionDelete {
		amount = t.Amount.String()
		date = t.Date.String()
	}
	row := []interface{}{
		msg.Timestamp.Format(time.RFC3339),
		msg.Action,
		t.ID,
		t.Title,
		amount,
		string(t.Type),
		t.Category,
		date,
	}
	if err := w.sheet.AppendRow(ctx, row); err != nil {
		return fmt.Errorf("append journal row: %w", err)
	}

	slog.InfoContext(ctx, "Exported journal row",
		"id", t.ID,
		"action", msg.Action)
	return nil
}
