// Package services orchestrates ledger mutations with the persistence
// adapter and the event pipeline.
package services

import (
	"context"
	"log/slog"

	"expenseflow/internal/amqp"
	"expenseflow/internal/core"
	"expenseflow/internal/ledger"
	"expenseflow/internal/persist"
)

// Publisher is the outbound port for mutation events. *amqp.Client
// satisfies it; a nil publisher disables the pipeline.
type Publisher interface {
	PublishTransactionSync(ctx context.Context, id, action string) error
}

// Tracker wraps the Ledger with its collaborators: every successful
// mutation is followed by a snapshot save through the store and a
// best-effort sync event. Reads pass through untouched.
type Tracker struct {
	ledger    *ledger.Ledger
	store     persist.Store
	publisher Publisher
}

func NewTracker(l *ledger.Ledger, store persist.Store, publisher Publisher) *Tracker {
	return &Tracker{
		ledger:    l,
		store:     store,
		publisher: publisher,
	}
}

// Ledger exposes the read-side views.
func (s *Tracker) Ledger() *ledger.Ledger {
	return s.ledger
}

// Add records a new transaction and persists the updated collection.
func (s *Tracker) Add(ctx context.Context, in ledger.AddInput) (core.Transaction, error) {
	t, err := s.ledger.Add(in)
	if err != nil {
		return core.Transaction{}, err
	}
	s.persistAndPublish(ctx, t.ID, amqp.ActionCreate)
	return t, nil
}

// Edit updates an existing transaction and persists the updated collection.
func (s *Tracker) Edit(ctx context.Context, id string, p ledger.Patch) (core.Transaction, error) {
	t, err := s.ledger.Edit(id, p)
	if err != nil {
		return core.Transaction{}, err
	}
	s.persistAndPublish(ctx, t.ID, amqp.ActionUpdate)
	return t, nil
}

// Delete removes a transaction and persists the updated collection.
func (s *Tracker) Delete(ctx context.Context, id string) error {
	if err := s.ledger.Delete(id); err != nil {
		return err
	}
	s.persistAndPublish(ctx, id, amqp.ActionDelete)
	return nil
}

// SaveNow writes the current snapshot through the store. The server calls
// it once more on shutdown.
func (s *Tracker) SaveNow(ctx context.Context) error {
	return s.store.Save(ctx, s.ledger.Snapshot())
}

// persistAndPublish runs the post-mutation side effects. The in-memory
// collection is the authority; a failed save or publish is logged and does
// not undo the committed mutation.
func (s *Tracker) persistAndPublish(ctx context.Context, id, action string) {
	if err := s.store.Save(ctx, s.ledger.Snapshot()); err != nil {
		slog.ErrorContext(ctx, "Failed to persist ledger snapshot",
			"error", err,
			"transaction_id", id,
			"action", action)
	}

	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishTransactionSync(ctx, id, action); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"error", err,
			"transaction_id", id,
			"action", action)
	}
}
