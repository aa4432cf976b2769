package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"

	"budget/internal/core"
	"budget/internal/ledger"
)

const maxBodyBytes = 1 << 20

// errBadRequest marks malformed request bodies.
var errBadRequest = errors.New("malformed request")

// decodeJSON reads a single JSON object from the body into v, rejecting
// unknown fields and trailing data.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return fmt.Errorf("%w: content type %q", errBadRequest, ct)
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("%w: body must contain a single JSON object", errBadRequest)
	}
	return nil
}

// amount is a request money field. Unlike core.Money it refuses sub-cent
// precision instead of rounding it away.
type amount core.Money

func (a *amount) UnmarshalJSON(b []byte) error {
	var m core.Money
	if err := m.UnmarshalJSON(b); err != nil {
		return err
	}
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if d, err := decimal.NewFromString(s); err == nil && !d.Shift(2).IsInteger() {
		return fmt.Errorf("%w: %s has more than two decimals", core.ErrInvalidAmount, s)
	}
	*a = amount(m)
	return nil
}

type transactionRequest struct {
	Type        core.TransactionType `json:"type"`
	Amount      amount               `json:"amount"`
	Category    string               `json:"category"`
	Description string               `json:"description"`
	Date        core.Date            `json:"date"`
	AccountID   string               `json:"accountId"`
	HasBudget   bool                 `json:"hasBudget"`
}

func (t transactionRequest) input() ledger.TransactionInput {
	return ledger.TransactionInput{
		Type:        t.Type,
		Amount:      core.Money(t.Amount),
		Category:    t.Category,
		Description: t.Description,
		Date:        t.Date,
		AccountID:   t.AccountID,
		HasBudget:   t.HasBudget,
	}
}

type accountRequest struct {
	Name     string           `json:"name"`
	Type     core.AccountType `json:"type"`
	Color    string           `json:"color"`
	BankName string           `json:"bankName"`
	// Balance is only read on creation.
	Balance amount `json:"balance"`
}

func (a accountRequest) input() ledger.AccountInput {
	return ledger.AccountInput{
		Name:     a.Name,
		Type:     a.Type,
		Color:    a.Color,
		BankName: a.BankName,
	}
}

type budgetRequest struct {
	Category string     `json:"category"`
	Limit    amount `json:"limit"`
}

// monthParam validates the {month} path value.
func monthParam(r *http.Request) (string, error) {
	month := r.PathValue("month")
	if err := core.ValidateMonthKey(month); err != nil {
		return "", err
	}
	return month, nil
}
