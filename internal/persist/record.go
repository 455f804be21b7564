package persist

import (
	"encoding/json"
	"fmt"

	"expenseflow/internal/core"
)

// Record is the serialized form of a transaction. The amount is a
// two-decimal JSON number; encoding goes through the cents formatter and
// decoding through the cents parser, so the value survives the round trip
// exactly.
type Record struct {
	ID       string      `json:"id"`
	Title    string      `json:"title"`
	Amount   json.Number `json:"amount"`
	Type     string      `json:"type"`
	Category string      `json:"category"`
	Date     string      `json:"date"`
}

// ToRecord converts a transaction to its serialized form.
func ToRecord(t core.Transaction) Record {
	return Record{
		ID:       t.ID,
		Title:    t.Title,
		Amount:   json.Number(core.FormatCents(t.Amount.Cents)),
		Type:     string(t.Type),
		Category: t.Category,
		Date:     t.Date.String(),
	}
}

// FromRecord converts a serialized record back into a transaction.
func (r Record) FromRecord() (core.Transaction, error) {
	cents, err := core.ParseDecimalToCents(r.Amount.String())
	if err != nil {
		return core.Transaction{}, fmt.Errorf("record %s: amount %q: %w", r.ID, r.Amount, err)
	}
	date, err := core.ParseDate(r.Date)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("record %s: date %q: %w", r.ID, r.Date, err)
	}
	return core.Transaction{
		ID:       r.ID,
		Title:    r.Title,
		Amount:   core.Money{Cents: cents},
		Type:     core.TransactionType(r.Type),
		Category: r.Category,
		Date:     date,
	}, nil
}

// ToRecords converts a collection, preserving order.
func ToRecords(ts []core.Transaction) []Record {
	out := make([]Record, len(ts))
	for i, t := range ts {
		out[i] = ToRecord(t)
	}
	return out
}

// FromRecords converts a serialized collection, preserving order.
func FromRecords(rs []Record) ([]core.Transaction, error) {
	out := make([]core.Transaction, len(rs))
	for i, r := range rs {
		t, err := r.FromRecord()
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
