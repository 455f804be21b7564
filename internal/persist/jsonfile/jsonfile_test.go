package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"expenseflow/internal/core"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "transactions.json"))
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return s
}

func TestLoadMissingFile(t *testing.T) {
	s := testStore(t)
	got, err := s.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() of missing file failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Load() of missing file = %v, want empty", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	transactions := []core.Transaction{
		{ID: "2", Title: "Dinner", Amount: core.Money{Cents: 3275}, Type: core.Expense, Category: "Food", Date: core.NewDate(2024, 2, 10)},
		{ID: "1", Title: "Salary", Amount: core.Money{Cents: 500000}, Type: core.Income, Category: "Salary", Date: core.NewDate(2024, 2, 1)},
	}

	if err := s.Save(ctx, transactions); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(got) != len(transactions) {
		t.Fatalf("Load() returned %d transactions, want %d", len(got), len(transactions))
	}
	for i := range transactions {
		if got[i] != transactions[i] {
			t.Errorf("position %d mismatch:\n got %+v\nwant %+v", i, got[i], transactions[i])
		}
	}
}

func TestSaveReplacesWholesale(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first := []core.Transaction{
		{ID: "1", Title: "a", Amount: core.Money{Cents: 100}, Type: core.Expense, Category: "Food", Date: core.NewDate(2024, 1, 1)},
		{ID: "2", Title: "b", Amount: core.Money{Cents: 200}, Type: core.Expense, Category: "Food", Date: core.NewDate(2024, 1, 2)},
	}
	if err := s.Save(ctx, first); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	second := []core.Transaction{
		{ID: "3", Title: "c", Amount: core.Money{Cents: 300}, Type: core.Income, Category: "Gift", Date: core.NewDate(2024, 1, 3)},
	}
	if err := s.Save(ctx, second); err != nil {
		t.Fatalf("second Save() failed: %v", err)
	}

	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(got) != 1 || got[0].ID != "3" {
		t.Errorf("Load() after replace = %+v, want only id 3", got)
	}
}

func TestSaveEmptyCollection(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Save(ctx, nil); err != nil {
		t.Fatalf("Save(nil) failed: %v", err)
	}
	got, err := s.Load(ctx)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("Load() = %v, want empty", got)
	}
}

func TestLoadCorruptFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transactions.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := New(path)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if _, err := s.Load(context.Background()); err == nil {
		t.Error("Load() accepted a corrupt file")
	}
}
