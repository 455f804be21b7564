// Package persist defines the persistence adapter contract for the ledger
// and the serialized record format shared by its implementations.
package persist

import (
	"context"

	"expenseflow/internal/core"
)

// Store loads the transaction collection at startup and saves it after
// every successful mutation. Implementations must round-trip the collection
// field-for-field, amounts included.
type Store interface {
	Load(ctx context.Context) ([]core.Transaction, error)
	Save(ctx context.Context, transactions []core.Transaction) error
	Close() error
}
