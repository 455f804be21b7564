// Package ledger owns the in-memory transaction collection and the derived
// aggregate views over it: totals, category breakdown, filtered history and
// monthly statistics.
package ledger

import (
	"errors"
	"math"
	"sort"
	"sync"
	"time"

	"expenseflow/internal/core"
)

// ErrNotFound is returned by Edit and Delete when no transaction has the
// given id. The collection is left unmodified.
var ErrNotFound = errors.New("transaction not found")

// WildcardCategory matches any category in a filter.
const WildcardCategory = "all"

// AddInput carries the fields for a new transaction. A zero Date defaults
// to the current date.
type AddInput struct {
	Title    string
	Amount   core.Money
	Type     core.TransactionType
	Category string
	Date     core.Date
}

// Patch holds the replaceable fields for Edit. Nil fields are left as-is.
type Patch struct {
	Title    *string
	Amount   *core.Money
	Type     *core.TransactionType
	Category *string
	Date     *core.Date
}

// Criteria selects a subsequence of the collection. An empty or "all"
// Category matches any category; a zero Month matches any month.
type Criteria struct {
	Category string
	Month    time.Month
}

// Ledger is the sole owner of the live transaction collection, ordered
// newest-first. All operations are synchronous and immediately consistent;
// the mutex exists because the HTTP host serves concurrent requests.
type Ledger struct {
	mu    sync.RWMutex
	items []core.Transaction
	ids   *idGenerator
	rev   uint64
	now   func() time.Time
}

// New creates a Ledger seeded with the collection loaded by the persistence
// adapter, which is expected to already be in newest-first order.
func New(initial []core.Transaction) *Ledger {
	items := make([]core.Transaction, len(initial))
	copy(items, initial)
	return &Ledger{
		items: items,
		ids:   newIDGenerator(time.Now),
		now:   time.Now,
	}
}

// Add validates the input, assigns a fresh unique id and prepends the new
// transaction so the collection stays newest-first.
func (l *Ledger) Add(in AddInput) (core.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	date := in.Date
	if date.IsZero() {
		date = core.DateOf(l.now())
	}

	t := core.Transaction{
		Title:    in.Title,
		Amount:   in.Amount,
		Type:     in.Type,
		Category: in.Category,
		Date:     date,
	}
	if err := t.Validate(); err != nil {
		return core.Transaction{}, err
	}

	t.ID = l.ids.Next()
	l.items = append([]core.Transaction{t}, l.items...)
	l.rev++
	return t, nil
}

// Edit shallow-merges patch into the transaction with the given id. The id
// and the position in the ordering never change. The merged result is
// re-validated, so an invalid patch is rejected rather than stored.
func (l *Ledger) Edit(id string, p Patch) (core.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(id)
	if i < 0 {
		return core.Transaction{}, ErrNotFound
	}

	merged := l.items[i]
	if p.Title != nil {
		merged.Title = *p.Title
	}
	if p.Amount != nil {
		merged.Amount = *p.Amount
	}
	if p.Type != nil {
		merged.Type = *p.Type
	}
	if p.Category != nil {
		merged.Category = *p.Category
	}
	if p.Date != nil {
		merged.Date = *p.Date
	}
	if err := merged.Validate(); err != nil {
		return core.Transaction{}, err
	}

	l.items[i] = merged
	l.rev++
	return merged, nil
}

// Delete removes the transaction with the given id, or returns ErrNotFound.
func (l *Ledger) Delete(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	i := l.index(id)
	if i < 0 {
		return ErrNotFound
	}
	l.items = append(l.items[:i], l.items[i+1:]...)
	l.rev++
	return nil
}

// Get returns the transaction with the given id, or ErrNotFound.
func (l *Ledger) Get(id string) (core.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i := l.index(id)
	if i < 0 {
		return core.Transaction{}, ErrNotFound
	}
	return l.items[i], nil
}

// Filter returns the subsequence matching the criteria, preserving the
// newest-first order.
func (l *Ledger) Filter(c Criteria) []core.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	anyCategory := c.Category == "" || c.Category == WildcardCategory
	out := make([]core.Transaction, 0, len(l.items))
	for _, t := range l.items {
		if !anyCategory && t.Category != c.Category {
			continue
		}
		if c.Month != 0 && t.Date.Month() != int(c.Month) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Totals sums amounts over the full collection by type. Accumulation is in
// cents, so currency magnitudes never drift.
func (l *Ledger) Totals() core.Totals {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var income, expenses int64
	for _, t := range l.items {
		switch t.Type {
		case core.Income:
			income += t.Amount.Cents
		case core.Expense:
			expenses += t.Amount.Cents
		}
	}
	return core.Totals{
		TotalIncome:   core.Money{Cents: income},
		TotalExpenses: core.Money{Cents: expenses},
		NetBalance:    core.Money{Cents: income - expenses},
	}
}

// CategoryBreakdown groups expense transactions by category and returns the
// groups sorted descending by summed amount. Ties keep the order in which
// the categories were first encountered. Returns an empty slice when there
// are no expenses.
func (l *Ledger) CategoryBreakdown() []core.CategoryShare {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.breakdownLocked()
}

func (l *Ledger) breakdownLocked() []core.CategoryShare {
	sums := make(map[string]int64)
	var order []string
	var total int64
	for _, t := range l.items {
		if t.Type != core.Expense {
			continue
		}
		if _, seen := sums[t.Category]; !seen {
			order = append(order, t.Category)
		}
		sums[t.Category] += t.Amount.Cents
		total += t.Amount.Cents
	}

	out := make([]core.CategoryShare, 0, len(order))
	for _, cat := range order {
		share := core.CategoryShare{
			Category: cat,
			Amount:   core.Money{Cents: sums[cat]},
		}
		if total > 0 {
			share.Percentage = 100 * float64(sums[cat]) / float64(total)
		}
		out = append(out, share)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.Cents > out[j].Amount.Cents
	})
	return out
}

// MonthlyStatistics reports the summary for the given reference date. The
// transaction count is not month-filtered, the per-day average divides total
// expenses by the reference day of month, and the "most frequent" category
// is the one with the highest summed amount.
func (l *Ledger) MonthlyStatistics(ref core.Date) core.MonthlyStats {
	l.mu.RLock()
	defer l.mu.RUnlock()

	stats := core.MonthlyStats{
		TotalTransactions:    len(l.items),
		MostFrequentCategory: "None",
	}

	var totalExpenses, highest int64
	for _, t := range l.items {
		if t.Type != core.Expense {
			continue
		}
		totalExpenses += t.Amount.Cents
		if t.Amount.Cents > highest {
			highest = t.Amount.Cents
		}
	}
	stats.HighestExpense = core.Money{Cents: highest}

	if day := ref.Day(); day > 0 && !ref.IsZero() {
		avg := math.Round(float64(totalExpenses) / float64(day))
		stats.AveragePerDay = core.Money{Cents: int64(avg)}
	}

	if breakdown := l.breakdownLocked(); len(breakdown) > 0 {
		stats.MostFrequentCategory = breakdown[0].Category
	}
	return stats
}

// Snapshot returns a copy of the collection in newest-first order, for the
// persistence adapter.
func (l *Ledger) Snapshot() []core.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]core.Transaction, len(l.items))
	copy(out, l.items)
	return out
}

// Len returns the collection size.
func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.items)
}

// Revision increments on every successful mutation. Read-side consumers use
// it to invalidate derived caches such as rendered charts.
func (l *Ledger) Revision() uint64 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.rev
}

// index returns the position of id, or -1. Callers must hold the lock.
func (l *Ledger) index(id string) int {
	for i, t := range l.items {
		if t.ID == id {
			return i
		}
	}
	return -1
}
