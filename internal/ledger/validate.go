package ledger

import (
	"strings"

	"budget/internal/core"
)

// buildTransaction validates in against the current accounts and budgets
// and returns the record to store. Callers hold e.mu.
func (e *Engine) buildTransaction(id string, in TransactionInput) (core.Transaction, error) {
	tx := core.Transaction{
		ID:          id,
		Type:        in.Type,
		Amount:      in.Amount,
		Category:    strings.TrimSpace(in.Category),
		Description: strings.TrimSpace(in.Description),
		Date:        in.Date,
		AccountID:   strings.TrimSpace(in.AccountID),
		HasBudget:   in.HasBudget,
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, invalid("transaction", err)
	}

	if tx.BudgetFunded() {
		if e.budgetIndexByCategory(tx.Category) < 0 {
			return core.Transaction{}, invalid("category", ErrBudgetNotFound)
		}
		tx.AccountID = ""
		return tx, nil
	}
	if e.accountIndex(tx.AccountID) < 0 {
		return core.Transaction{}, invalid("accountId", ErrAccountNotFound)
	}
	return tx, nil
}

// buildAccount validates in and the uniqueness rules, ignoring the account
// with selfID. Callers hold e.mu.
func (e *Engine) buildAccount(selfID string, in AccountInput) (core.Account, error) {
	acc := core.Account{
		ID:       selfID,
		Name:     strings.TrimSpace(in.Name),
		Type:     in.Type,
		Color:    strings.TrimSpace(in.Color),
		BankName: strings.TrimSpace(in.BankName),
	}
	if err := acc.Validate(); err != nil {
		return core.Account{}, invalid("account", err)
	}

	for _, other := range e.accounts {
		if other.ID == selfID {
			continue
		}
		if strings.EqualFold(other.Name, acc.Name) {
			return core.Account{}, invalid("name", ErrDuplicateAccountName)
		}
		if acc.BankName != "" && other.Type == acc.Type && strings.EqualFold(other.BankName, acc.BankName) {
			return core.Account{}, invalid("bankName", ErrDuplicateBankAccount)
		}
	}
	return acc, nil
}

func validateLimit(limit core.Money) error {
	if err := limit.Validate(); err != nil {
		return invalid("limit", err)
	}
	return nil
}
