package ledger

import "budget/internal/core"

// apply adds tx's effect to the balance or budget it targets. A missing
// target is ignored. Callers hold e.mu.
func (e *Engine) apply(tx core.Transaction) {
	switch {
	case tx.Type == core.Income:
		if i := e.accountIndex(tx.AccountID); i >= 0 {
			e.accounts[i].Balance = e.accounts[i].Balance.Add(tx.Amount)
		}
	case tx.BudgetFunded():
		if i := e.budgetIndexByCategory(tx.Category); i >= 0 {
			e.budgets[i].Spent = e.budgets[i].Spent.Add(tx.Amount)
		}
	case tx.Type == core.Expense:
		if i := e.accountIndex(tx.AccountID); i >= 0 {
			e.accounts[i].Balance = e.accounts[i].Balance.Sub(tx.Amount)
		}
	}
}

// reverse undoes apply. Budget spent stops at zero; balances do not.
func (e *Engine) reverse(tx core.Transaction) {
	switch {
	case tx.Type == core.Income:
		if i := e.accountIndex(tx.AccountID); i >= 0 {
			e.accounts[i].Balance = e.accounts[i].Balance.Sub(tx.Amount)
		}
	case tx.BudgetFunded():
		if i := e.budgetIndexByCategory(tx.Category); i >= 0 {
			spent := e.budgets[i].Spent.Sub(tx.Amount)
			if spent.Cents < 0 {
				spent = core.Money{}
			}
			e.budgets[i].Spent = spent
		}
	case tx.Type == core.Expense:
		if i := e.accountIndex(tx.AccountID); i >= 0 {
			e.accounts[i].Balance = e.accounts[i].Balance.Add(tx.Amount)
		}
	}
}

// edit swaps old's effect for updated's. The order matters when both
// touch the same account or budget.
func (e *Engine) edit(old, updated core.Transaction) {
	e.reverse(old)
	e.apply(updated)
}

func (e *Engine) accountIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range e.accounts {
		if e.accounts[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) budgetIndex(id string) int {
	for i := range e.budgets {
		if e.budgets[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) budgetIndexByCategory(category string) int {
	for i := range e.budgets {
		if e.budgets[i].Category == category {
			return i
		}
	}
	return -1
}

func (e *Engine) transactionIndex(id string) int {
	for i := range e.txs {
		if e.txs[i].ID == id {
			return i
		}
	}
	return -1
}
