package core

// Totals aggregates the full collection by transaction type.
type Totals struct {
	TotalIncome   Money
	TotalExpenses Money
	NetBalance    Money
}

// CategoryShare is a per-category expense sum with its share of total expenses.
type CategoryShare struct {
	Category   string
	Amount     Money
	Percentage float64 // 0-100
}

// MonthlyStats is the report summary for a reference date.
//
// TotalTransactions counts every transaction regardless of month,
// AveragePerDay divides total expenses by the day of month of the reference
// date, and MostFrequentCategory is the top category by summed amount, not
// by count.
type MonthlyStats struct {
	TotalTransactions    int
	AveragePerDay        Money
	HighestExpense       Money
	MostFrequentCategory string
}
