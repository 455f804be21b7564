// Package storage is the SQLite persistence backend for the ledger.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"expenseflow/internal/core"

	_ "modernc.org/sqlite"
)

// ErrNoRow is returned by GetTransaction when no row matches the id.
var ErrNoRow = errors.New("transaction row not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load implements persist.Store. Rows come back in stored position order,
// which is the ledger's newest-first order.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, amount_cents, type, category, tx_date
		 FROM transactions ORDER BY position ASC`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	slog.InfoContext(ctx, "Loaded transactions from SQLite", "count", len(out))
	return out, nil
}

// Save implements persist.Store: the stored collection is replaced wholesale
// inside a transaction. Position encodes the newest-first ordering.
func (r *SQLiteRepository) Save(ctx context.Context, transactions []core.Transaction) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions`); err != nil {
		return fmt.Errorf("clear transactions: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO transactions (id, position, title, amount_cents, type, category, tx_date)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, t := range transactions {
		if _, err := stmt.ExecContext(ctx, t.ID, i, t.Title, t.Amount.Cents,
			string(t.Type), t.Category, t.Date.String()); err != nil {
			return fmt.Errorf("insert transaction %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}

	slog.DebugContext(ctx, "Saved transactions to SQLite", "count", len(transactions))
	return nil
}

// GetTransaction fetches a single row by id. The export worker uses it to
// materialize a sync message into a full transaction.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, title, amount_cents, type, category, tx_date
		 FROM transactions WHERE id = ?`, id)

	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Transaction{}, ErrNoRow
	}
	if err != nil {
		return core.Transaction{}, err
	}
	return t, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t       core.Transaction
		cents   int64
		ttype   string
		rawDate string
	)
	if err := row.Scan(&t.ID, &t.Title, &cents, &ttype, &t.Category, &rawDate); err != nil {
		return core.Transaction{}, err
	}
	date, err := core.ParseDate(rawDate)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("row %s: date %q: %w", t.ID, rawDate, err)
	}
	t.Amount = core.Money{Cents: cents}
	t.Type = core.TransactionType(ttype)
	t.Date = date
	return t, nil
}
