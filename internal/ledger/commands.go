package ledger

import "budget/internal/core"

// Command is one of the ledger operations below. The set is closed.
type Command interface {
	commandName() string
}

// TransactionInput carries the caller-supplied fields of a transaction.
type TransactionInput struct {
	Type        core.TransactionType
	Amount      core.Money
	Category    string
	Description string
	Date        core.Date
	AccountID   string
	HasBudget   bool
}

type AccountInput struct {
	Name     string
	Type     core.AccountType
	Color    string
	BankName string
}

type (
	CreateTransaction struct {
		Input TransactionInput
	}

	// EditTransaction replaces every field of transaction ID, keeping its
	// id and list position.
	EditTransaction struct {
		ID    string
		Input TransactionInput
	}

	DeleteTransaction struct {
		ID string
	}

	CreateAccount struct {
		Input          AccountInput
		OpeningBalance core.Money
	}

	// UpdateAccount never touches the balance.
	UpdateAccount struct {
		ID    string
		Input AccountInput
	}

	DeleteAccount struct {
		ID string
	}

	// SetBudget creates the budget for Category or, when one exists,
	// replaces its limit.
	SetBudget struct {
		Category string
		Limit    core.Money
	}

	UpdateBudgetLimit struct {
		ID    string
		Limit core.Money
	}

	DeleteBudget struct {
		ID string
	}

	// ClearAll empties accounts, budgets and transactions.
	ClearAll struct{}
)

func (CreateTransaction) commandName() string { return "create_transaction" }
func (EditTransaction) commandName() string   { return "edit_transaction" }
func (DeleteTransaction) commandName() string { return "delete_transaction" }
func (CreateAccount) commandName() string     { return "create_account" }
func (UpdateAccount) commandName() string     { return "update_account" }
func (DeleteAccount) commandName() string     { return "delete_account" }
func (SetBudget) commandName() string         { return "set_budget" }
func (UpdateBudgetLimit) commandName() string { return "update_budget_limit" }
func (DeleteBudget) commandName() string      { return "delete_budget" }
func (ClearAll) commandName() string          { return "clear_all" }

// Result describes what a command did. Changed is false for lookups that
// found nothing to act on.
type Result struct {
	ID      string
	Changed bool
}
