package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"expenseflow/internal/core"
	"expenseflow/internal/ledger"
	applog "expenseflow/internal/log"
)

// response is the standard API envelope. Data is always present on success
// so list endpoints serialize an empty collection as [], never a missing key.
type response struct {
	Data  any        `json:"data"`
	Error *errorInfo `json:"error,omitempty"`
}

type errorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(response{Data: data}); err != nil {
		slog.Error("Failed to encode response", applog.FieldError, err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(response{Error: &errorInfo{Code: code, Message: message}})
}

// respondLedgerError maps the ledger error taxonomy onto HTTP statuses:
// validation failures are 422, unknown ids are 404.
func respondLedgerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		respondError(w, http.StatusNotFound, "NOT_FOUND", "transaction not found")
	case core.IsValidationError(err):
		respondError(w, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
	default:
		respondError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred")
	}
}
