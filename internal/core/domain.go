package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TransactionType = "income"
	Expense TransactionType = "expense"
)

type (
	TransactionType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a single recorded income or expense event. The ID is
	// assigned once at creation and is the sole key for edit and delete.
	Transaction struct {
		ID       string
		Title    string
		Amount   Money
		Type     TransactionType
		Category string
		Date     Date
	}
)

// ExpenseCategories and IncomeCategories are the conventional category sets.
// Membership is checked at the presentation boundary, not in the data layer.
var (
	ExpenseCategories = []string{
		"Food", "Transport", "Entertainment", "Shopping",
		"Healthcare", "Education", "Bills", "Travel", "Other",
	}
	IncomeCategories = []string{
		"Salary", "Freelance", "Investment", "Gift", "Other",
	}
)

var (
	ErrEmptyTitle    = errors.New("empty title")
	ErrTitleTooLong  = errors.New("title too long (max 200 characters)")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrEmptyCategory = errors.New("empty category")
	ErrInvalidDate   = errors.New("invalid date")
)

// IsValidationError reports whether err is one of the field validation
// failures that a caller can surface as a field-level message.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptyTitle) ||
		errors.Is(err, ErrTitleTooLong) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidType) ||
		errors.Is(err, ErrEmptyCategory) ||
		errors.Is(err, ErrInvalidDate)
}

func (tt TransactionType) IsValid() bool {
	switch tt {
	case Income, Expense:
		return true
	default:
		return false
	}
}

// String implements fmt.Stringer.
func (tt TransactionType) String() string {
	return string(tt)
}

// CategoriesFor returns the conventional category set for a transaction type.
func CategoriesFor(tt TransactionType) []string {
	if tt == Income {
		return IncomeCategories
	}
	return ExpenseCategories
}

// ValidCategoryFor reports whether name belongs to the conventional set for
// the given type.
func ValidCategoryFor(tt TransactionType, name string) bool {
	for _, c := range CategoriesFor(tt) {
		if c == name {
			return true
		}
	}
	return false
}

// NewDate creates a new Date at midnight UTC.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), int(t.Month()), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return Date{Time: t.UTC()}, nil
}

// String formats the date as YYYY-MM-DD.
func (d Date) String() string {
	return d.Format("2006-01-02")
}

func (d Date) Validate() error {
	if d.IsZero() {
		return ErrInvalidDate
	}
	return nil
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the calendar month, 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (t Transaction) Validate() error {
	if len(strings.TrimSpace(t.Title)) == 0 {
		return ErrEmptyTitle
	}
	if len(t.Title) > 200 {
		return ErrTitleTooLong
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Type.IsValid() {
		return ErrInvalidType
	}
	if strings.TrimSpace(t.Category) == "" {
		return ErrEmptyCategory
	}
	if err := t.Date.Validate(); err != nil {
		return err
	}
	return nil
}
