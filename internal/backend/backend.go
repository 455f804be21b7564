// Package backend selects and constructs the persistence adapter.
package backend

import (
	"fmt"
	"log/slog"

	"expenseflow/internal/persist"
	"expenseflow/internal/persist/jsonfile"
	"expenseflow/internal/persist/memory"
	"expenseflow/internal/storage"
)

type Type string

const (
	MemoryBackend   Type = "memory"
	JSONFileBackend Type = "json"
	SQLiteBackend   Type = "sqlite"
)

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// IsValid returns true if the backend type is valid.
func (t Type) IsValid() bool {
	switch t {
	case MemoryBackend, JSONFileBackend, SQLiteBackend:
		return true
	default:
		return false
	}
}

// Config holds the settings needed to construct a backend.
type Config struct {
	Type         Type
	JSONFilePath string
	SQLiteDBPath string
}

// Open constructs the configured persistence adapter.
func Open(cfg Config, logger *slog.Logger) (persist.Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if !cfg.Type.IsValid() {
		return nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case SQLiteBackend:
		repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
		if err != nil {
			return nil, fmt.Errorf("initialize SQLite backend: %w", err)
		}
		logger.Info("Initialized SQLite backend", "db_path", cfg.SQLiteDBPath)
		return repo, nil

	case JSONFileBackend:
		store, err := jsonfile.New(cfg.JSONFilePath)
		if err != nil {
			return nil, fmt.Errorf("initialize JSON file backend: %w", err)
		}
		logger.Info("Initialized JSON file backend", "path", cfg.JSONFilePath)
		return store, nil

	default:
		logger.Info("Initialized memory backend")
		return memory.New(), nil
	}
}
