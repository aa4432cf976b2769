package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"budget/internal/archive"
	"budget/internal/core"
	"budget/internal/ledger"
	"budget/internal/log"
	"budget/internal/rollover"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// mutationResponse reports a ledger command outcome. Changed is false when
// the target id did not exist.
type mutationResponse struct {
	ID      string `json:"id,omitempty"`
	Changed bool   `json:"changed"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(v)
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var ve *ledger.ValidationError
	switch {
	case errors.Is(err, errBadRequest), errors.Is(err, core.ErrInvalidMonthKey):
		return http.StatusBadRequest
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ledger.ErrAccountInUse), errors.Is(err, rollover.ErrNoPendingRollover):
		return http.StatusConflict
	case errors.Is(err, archive.ErrNotFound),
		errors.Is(err, ledger.ErrTransactionNotFound),
		errors.Is(err, ledger.ErrAccountNotFound),
		errors.Is(err, ledger.ErrBudgetNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError logs server-side failures and hides their detail from clients.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	resp := errorResponse{Error: err.Error()}

	var ve *ledger.ValidationError
	if errors.As(err, &ve) {
		resp.Field = ve.Field
		resp.Error = ve.Err.Error()
	}

	if status >= http.StatusInternalServerError {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			log.FieldError, err,
			log.FieldPath, r.URL.Path)
		resp.Error = http.StatusText(status)
	}
	writeJSON(w, status, resp)
}

func writeResult(w http.ResponseWriter, status int, res ledger.Result) {
	writeJSON(w, status, mutationResponse{ID: res.ID, Changed: res.Changed})
}
