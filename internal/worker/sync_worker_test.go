package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"expenseflow/internal/amqp"
	"expenseflow/internal/core"
	"expenseflow/internal/storage"
)

type fakeGetter struct {
	transactions map[string]core.Transaction
	err          error
}

func (f *fakeGetter) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	if f.err != nil {
		return core.Transaction{}, f.err
	}
	t, ok := f.transactions[id]
	if !ok {
		return core.Transaction{}, storage.ErrNoRow
	}
	return t, nil
}

type fakeSheet struct {
	rows [][]interface{}
	err  error
}

func (f *fakeSheet) AppendRow(ctx context.Context, row []interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.rows = append(f.rows, row)
	return nil
}

func syncMessage(id, action string) *amqp.TransactionSyncMessage {
	return &amqp.TransactionSyncMessage{
		ID:        id,
		Action:    action,
		Timestamp: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}
}

func TestHandleSyncMessageCreate(t *testing.T) {
	getter := &fakeGetter{transactions: map[string]core.Transaction{
		"42": {
			ID:       "42",
			Title:    "Groceries",
			Amount:   core.Money{Cents: 4550},
			Type:     core.Expense,
			Category: "Food",
			Date:     core.NewDate(2024, 1, 15),
		},
	}}
	sheet := &fakeSheet{}
	w := NewSyncWorker(getter, sheet)

	if err := w.HandleSyncMessage(context.Background(), syncMessage("42", amqp.ActionCreate)); err != nil {
		t.Fatalf("HandleSyncMessage() failed: %v", err)
	}

	if len(sheet.rows) != 1 {
		t.Fatalf("appended %d rows, want 1", len(sheet.rows))
	}
	row := sheet.rows[0]
	want := []interface{}{
		"2024-01-15T10:30:00Z", "create", "42", "Groceries", "45.50", "expense", "Food", "2024-01-15",
	}
	for i := range want {
		if row[i] != want[i] {
			t.Errorf("column %d = %v, want %v", i, row[i], want[i])
		}
	}
}

func TestHandleSyncMessageDelete(t *testing.T) {
	// Deletes never hit storage; the journal row carries only the id.
	getter := &fakeGetter{err: errors.New("storage must not be queried")}
	sheet := &fakeSheet{}
	w := NewSyncWorker(getter, sheet)

	if err := w.HandleSyncMessage(context.Background(), syncMessage("42", amqp.ActionDelete)); err != nil {
		t.Fatalf("HandleSyncMessage() failed: %v", err)
	}

	if len(sheet.rows) != 1 {
		t.Fatalf("appended %d rows, want 1", len(sheet.rows))
	}
	row := sheet.rows[0]
	if row[1] != "delete" || row[2] != "42" {
		t.Errorf("row = %v", row)
	}
	if row[4] != "" || row[7] != "" {
		t.Errorf("delete row must have blank amount and date, got %v", row)
	}
}

func TestHandleSyncMessageMissingTransaction(t *testing.T) {
	getter := &fakeGetter{}
	sheet := &fakeSheet{}
	w := NewSyncWorker(getter, sheet)

	// Already deleted before the update event arrived: skip without error so
	// the message is acked and not redelivered.
	if err := w.HandleSyncMessage(context.Background(), syncMessage("gone", amqp.ActionUpdate)); err != nil {
		t.Fatalf("HandleSyncMessage() = %v, want nil", err)
	}
	if len(sheet.rows) != 0 {
		t.Errorf("appended %d rows, want 0", len(sheet.rows))
	}
}

func TestHandleSyncMessageStorageError(t *testing.T) {
	getter := &fakeGetter{err: errors.New("db closed")}
	w := NewSyncWorker(getter, &fakeSheet{})

	if err := w.HandleSyncMessage(context.Background(), syncMessage("42", amqp.ActionCreate)); err == nil {
		t.Error("HandleSyncMessage() = nil, want error")
	}
}

func TestHandleSyncMessageAppendError(t *testing.T) {
	getter := &fakeGetter{transactions: map[string]core.Transaction{
		"42": {ID: "42", Title: "x", Amount: core.Money{Cents: 100}, Type: core.Expense, Category: "Food", Date: core.NewDate(2024, 1, 15)},
	}}
	sheet := &fakeSheet{err: errors.New("quota exceeded")}
	w := NewSyncWorker(getter, sheet)

	if err := w.HandleSyncMessage(context.Background(), syncMessage("42", amqp.ActionCreate)); err == nil {
		t.Error("HandleSyncMessage() = nil, want error so the message is requeued")
	}
}
