package core

import (
	"errors"
	"strings"
	"testing"
)

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		Title:    "Groceries",
		Amount:   Money{Cents: 4550},
		Type:     Expense,
		Category: "Food",
		Date:     NewDate(2024, 1, 15),
	}

	tests := []struct {
		name    string
		mutate  func(tx *Transaction)
		wantErr error
	}{
		{"valid", func(tx *Transaction) {}, nil},
		{"empty title", func(tx *Transaction) { tx.Title = "" }, ErrEmptyTitle},
		{"whitespace title", func(tx *Transaction) { tx.Title = "   " }, ErrEmptyTitle},
		{"zero amount", func(tx *Transaction) { tx.Amount = Money{} }, ErrInvalidAmount},
		{"negative amount", func(tx *Transaction) { tx.Amount = Money{Cents: -100} }, ErrInvalidAmount},
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
		{"empty category", func(tx *Transaction) { tx.Category = "" }, ErrEmptyCategory},
		{"zero date", func(tx *Transaction) { tx.Date = Date{} }, ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			if !IsValidationError(err) {
				t.Errorf("IsValidationError(%v) = false, want true", err)
			}
		})
	}
}

func TestTransactionValidateTitleTooLong(t *testing.T) {
	tx := Transaction{
		Title:    strings.Repeat("x", 201),
		Amount:   Money{Cents: 100},
		Type:     Expense,
		Category: "Food",
		Date:     NewDate(2024, 1, 15),
	}
	err := tx.Validate()
	if !errors.Is(err, ErrTitleTooLong) {
		t.Fatalf("Validate() error = %v, want ErrTitleTooLong", err)
	}
	if !IsValidationError(err) {
		t.Error("IsValidationError(ErrTitleTooLong) = false, want true")
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2024-01-15", "2024-01-15", false},
		{"  2024-12-31  ", "2024-12-31", false},
		{"2024-02-30", "", true},
		{"15/01/2024", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDate(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseDate(%q) = %v, want error", tt.input, got)
			} else if !errors.Is(err, ErrInvalidDate) {
				t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", tt.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseDate(%q) unexpected error: %v", tt.input, err)
			continue
		}
		if got.String() != tt.want {
			t.Errorf("ParseDate(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestValidCategoryFor(t *testing.T) {
	tests := []struct {
		txType   TransactionType
		category string
		want     bool
	}{
		{Expense, "Food", true},
		{Expense, "Travel", true},
		{Expense, "Salary", false},
		{Income, "Salary", true},
		{Income, "Gift", true},
		{Income, "Food", false},
		{Expense, "Other", true},
		{Income, "Other", true},
		{Expense, "", false},
	}

	for _, tt := range tests {
		if got := ValidCategoryFor(tt.txType, tt.category); got != tt.want {
			t.Errorf("ValidCategoryFor(%s, %q) = %v, want %v", tt.txType, tt.category, got, tt.want)
		}
	}
}

func TestTransactionTypeIsValid(t *testing.T) {
	if !Income.IsValid() || !Expense.IsValid() {
		t.Error("income and expense should be valid types")
	}
	if TransactionType("transfer").IsValid() {
		t.Error("transfer should not be a valid type")
	}
	if TransactionType("").IsValid() {
		t.Error("empty type should not be valid")
	}
}
