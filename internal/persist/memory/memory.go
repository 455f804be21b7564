// Package memory holds the collection in process memory only. It is the
// default backend and the one the handler tests run against.
package memory

import (
	"context"
	"sync"

	"expenseflow/internal/core"
)

type Store struct {
	mu    sync.Mutex
	items []core.Transaction
}

func New() *Store {
	return &Store{}
}

// NewSeeded creates a store pre-populated with a collection, for tests.
func NewSeeded(items []core.Transaction) *Store {
	s := &Store{items: make([]core.Transaction, len(items))}
	copy(s.items, items)
	return s
}

func (s *Store) Load(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Transaction, len(s.items))
	copy(out, s.items)
	return out, nil
}

func (s *Store) Save(_ context.Context, transactions []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = make([]core.Transaction, len(transactions))
	copy(s.items, transactions)
	return nil
}

func (s *Store) Close() error {
	return nil
}
