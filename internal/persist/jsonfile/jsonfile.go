// Package jsonfile persists the transaction collection as a single JSON
// document on disk.
package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"expenseflow/internal/core"
	"expenseflow/internal/persist"
)

type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &Store{path: path}, nil
}

// Load reads the stored collection. A missing file means nothing has been
// saved yet and yields an empty collection.
func (s *Store) Load(ctx context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.path, err)
	}

	var records []persist.Record
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("decode %s: %w", s.path, err)
	}

	transactions, err := persist.FromRecords(records)
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Loaded transactions from file",
		"path", s.path,
		"count", len(transactions))
	return transactions, nil
}

// Save replaces the stored collection wholesale. The document is written to
// a temp file and renamed so a crash mid-write never leaves a torn file.
func (s *Store) Save(ctx context.Context, transactions []core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(persist.ToRecords(transactions), "", "  ")
	if err != nil {
		return fmt.Errorf("encode transactions: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename %s: %w", tmp, err)
	}

	slog.DebugContext(ctx, "Saved transactions to file",
		"path", s.path,
		"count", len(transactions))
	return nil
}

func (s *Store) Close() error {
	return nil
}
