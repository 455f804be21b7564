package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"expenseflow/internal/charts"
	"expenseflow/internal/core"
	"expenseflow/internal/ledger"
	applog "expenseflow/internal/log"
	"expenseflow/internal/persist"
)

// addRequest carries a new transaction. Amount is accepted as a JSON number
// or a decimal string; date is optional and defaults to today.
type addRequest struct {
	Title    string          `json:"title"`
	Amount   json.RawMessage `json:"amount"`
	Type     string          `json:"type"`
	Category string          `json:"category"`
	Date     string          `json:"date"`
}

// patchRequest carries an edit: every field is optional.
type patchRequest struct {
	Title    *string         `json:"title"`
	Amount   json.RawMessage `json:"amount"`
	Type     *string         `json:"type"`
	Category *string         `json:"category"`
	Date     *string         `json:"date"`
}

func (s *Server) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.listTransactions(w, r)
	case http.MethodPost:
		s.createTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use GET or POST")
	}
}

func (s *Server) listTransactions(w http.ResponseWriter, r *http.Request) {
	criteria := ledger.Criteria{Category: r.URL.Query().Get("category")}

	month, err := parseMonthParam(r.URL.Query().Get("month"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	criteria.Month = month

	respondJSON(w, http.StatusOK, persist.ToRecords(s.tracker.Ledger().Filter(criteria)))
}

func (s *Server) createTransaction(w http.ResponseWriter, r *http.Request) {
	var req addRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	amount, err := parseAmountField(req.Amount)
	if err != nil {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid amount")
		return
	}

	in := ledger.AddInput{
		Title:    strings.TrimSpace(req.Title),
		Amount:   amount,
		Type:     core.TransactionType(req.Type),
		Category: strings.TrimSpace(req.Category),
	}
	if req.Date != "" {
		date, err := core.ParseDate(req.Date)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid date, expected YYYY-MM-DD")
			return
		}
		in.Date = date
	}

	// Category membership is a UI convention, enforced here rather than in
	// the data layer.
	if in.Type.IsValid() && in.Category != "" && !core.ValidCategoryFor(in.Type, in.Category) {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			fmt.Sprintf("category %q is not valid for type %q", in.Category, in.Type))
		return
	}

	t, err := s.tracker.Add(r.Context(), in)
	if err != nil {
		respondLedgerError(w, err)
		return
	}

	slog.InfoContext(r.Context(), "Transaction created",
		applog.FieldTransactionID, t.ID,
		applog.FieldTitle, t.Title,
		applog.FieldAmountCents, t.Amount.Cents,
		applog.FieldType, string(t.Type),
		applog.FieldCategory, t.Category)

	respondJSON(w, http.StatusCreated, persist.ToRecord(t))
}

func (s *Server) handleTransactionByID(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/transactions/")
	if id == "" || strings.Contains(id, "/") {
		respondError(w, http.StatusNotFound, "NOT_FOUND", "transaction not found")
		return
	}

	switch r.Method {
	case http.MethodGet:
		t, err := s.tracker.Ledger().Get(id)
		if err != nil {
			respondLedgerError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, persist.ToRecord(t))
	case http.MethodPut, http.MethodPatch:
		s.editTransaction(w, r, id)
	case http.MethodDelete:
		s.deleteTransaction(w, r, id)
	default:
		w.Header().Set("Allow", "GET, PUT, PATCH, DELETE")
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use GET, PUT, PATCH or DELETE")
	}
}

func (s *Server) editTransaction(w http.ResponseWriter, r *http.Request, id string) {
	var req patchRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid request body")
		return
	}

	current, err := s.tracker.Ledger().Get(id)
	if err != nil {
		respondLedgerError(w, err)
		return
	}

	patch := ledger.Patch{}
	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		patch.Title = &title
	}
	if len(req.Amount) > 0 {
		amount, err := parseAmountField(req.Amount)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid amount")
			return
		}
		patch.Amount = &amount
	}

	effectiveType := current.Type
	if req.Type != nil {
		tt := core.TransactionType(*req.Type)
		patch.Type = &tt
		effectiveType = tt
	}
	effectiveCategory := current.Category
	if req.Category != nil {
		category := strings.TrimSpace(*req.Category)
		patch.Category = &category
		effectiveCategory = category
	}
	if effectiveType.IsValid() && effectiveCategory != "" &&
		!core.ValidCategoryFor(effectiveType, effectiveCategory) {
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR",
			fmt.Sprintf("category %q is not valid for type %q", effectiveCategory, effectiveType))
		return
	}

	if req.Date != nil {
		date, err := core.ParseDate(*req.Date)
		if err != nil {
			respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "invalid date, expected YYYY-MM-DD")
			return
		}
		patch.Date = &date
	}

	t, err := s.tracker.Edit(r.Context(), id, patch)
	if err != nil {
		respondLedgerError(w, err)
		return
	}

	slog.InfoContext(r.Context(), "Transaction updated",
		applog.FieldTransactionID, t.ID,
		applog.FieldAmountCents, t.Amount.Cents,
		applog.FieldCategory, t.Category)

	respondJSON(w, http.StatusOK, persist.ToRecord(t))
}

func (s *Server) deleteTransaction(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.tracker.Delete(r.Context(), id); err != nil {
		respondLedgerError(w, err)
		return
	}

	slog.InfoContext(r.Context(), "Transaction deleted", applog.FieldTransactionID, id)
	w.WriteHeader(http.StatusNoContent)
}

type summaryJSON struct {
	TotalIncome   json.Number `json:"total_income"`
	TotalExpenses json.Number `json:"total_expenses"`
	NetBalance    json.Number `json:"net_balance"`
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use GET")
		return
	}

	totals := s.tracker.Ledger().Totals()
	respondJSON(w, http.StatusOK, summaryJSON{
		TotalIncome:   json.Number(totals.TotalIncome.String()),
		TotalExpenses: json.Number(totals.TotalExpenses.String()),
		NetBalance:    json.Number(totals.NetBalance.String()),
	})
}

type shareJSON struct {
	Category   string      `json:"category"`
	Amount     json.Number `json:"amount"`
	Percentage float64     `json:"percentage"`
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use GET")
		return
	}

	breakdown := s.tracker.Ledger().CategoryBreakdown()
	out := make([]shareJSON, len(breakdown))
	for i, share := range breakdown {
		out[i] = shareJSON{
			Category:   share.Category,
			Amount:     json.Number(share.Amount.String()),
			Percentage: share.Percentage,
		}
	}
	respondJSON(w, http.StatusOK, out)
}

type statsJSON struct {
	TotalTransactions    int         `json:"total_transactions"`
	AveragePerDay        json.Number `json:"average_per_day"`
	HighestExpense       json.Number `json:"highest_expense"`
	MostFrequentCategory string      `json:"most_frequent_category"`
}

func (s *Server) handleStatistics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use GET")
		return
	}

	ref := core.DateOf(time.Now())
	if v := r.URL.Query().Get("date"); v != "" {
		parsed, err := core.ParseDate(v)
		if err != nil {
			respondError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid date, expected YYYY-MM-DD")
			return
		}
		ref = parsed
	}

	stats := s.tracker.Ledger().MonthlyStatistics(ref)
	respondJSON(w, http.StatusOK, statsJSON{
		TotalTransactions:    stats.TotalTransactions,
		AveragePerDay:        json.Number(stats.AveragePerDay.String()),
		HighestExpense:       json.Number(stats.HighestExpense.String()),
		MostFrequentCategory: stats.MostFrequentCategory,
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use GET")
		return
	}

	respondJSON(w, http.StatusOK, map[string][]string{
		"expense": core.ExpenseCategories,
		"income":  core.IncomeCategories,
	})
}

func (s *Server) handleExpenseChart(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		respondError(w, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED", "use GET")
		return
	}

	rev := s.tracker.Ledger().Revision()
	png, ok := s.chartCache.get(rev)
	if !ok {
		var err error
		png, err = charts.RenderExpensePie(s.tracker.Ledger().CategoryBreakdown())
		if err != nil {
			slog.ErrorContext(r.Context(), "Failed to render expense chart", applog.FieldError, err)
			respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to render chart")
			return
		}
		s.chartCache.set(rev, png)
	}

	if len(png) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(png)
}

// decodeBody decodes a JSON request body, rejecting unknown trailing data.
func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.UseNumber()
	return dec.Decode(v)
}

// parseAmountField accepts either a JSON number or a decimal string.
func parseAmountField(raw json.RawMessage) (core.Money, error) {
	s := strings.TrimSpace(string(raw))
	s = strings.Trim(s, `"`)
	return core.ParseMoney(s)
}

// parseMonthParam turns the month query parameter into a filter month.
// Empty or "all" is the wildcard; otherwise a calendar month 1-12.
func parseMonthParam(v string) (time.Month, error) {
	v = strings.TrimSpace(v)
	if v == "" || v == "all" {
		return 0, nil
	}
	m, err := strconv.Atoi(v)
	if err != nil || m < 1 || m > 12 {
		return 0, fmt.Errorf("invalid month %q: expected 1-12 or 'all'", v)
	}
	return time.Month(m), nil
}
