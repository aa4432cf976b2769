package core

import (
	"cmp"
	"math"
	"slices"
	"strings"
	"time"
)

// NoBankName groups accounts that have no bank.
const NoBankName = "Cash/Other"

// MonthlySnapshot is the archived, immutable copy of a month's ledger.
type MonthlySnapshot struct {
	Month             string        `json:"month"`
	Year              int           `json:"year"`
	MonthName         string        `json:"monthName"`
	Transactions      []Transaction `json:"transactions"`
	Budgets           []Budget      `json:"budgets"`
	Accounts          []Account     `json:"accounts"`
	TotalBalance      Money         `json:"totalBalance"`
	TotalExpenses     Money         `json:"totalExpenses"`
	TotalIncome       Money         `json:"totalIncome"`
	BudgetUtilization float64       `json:"budgetUtilization"`
	ArchivedAt        time.Time     `json:"archivedAt"`
}

// Overview aggregates the live ledger for display.
type Overview struct {
	TotalBalance      Money    `json:"totalBalance"`
	TotalIncome       Money    `json:"totalIncome"`
	TotalExpenses     Money    `json:"totalExpenses"`
	TotalBudgetLimit  Money    `json:"totalBudgetLimit"`
	TotalBudgetSpent  Money    `json:"totalBudgetSpent"`
	RemainingBudget   Money    `json:"remainingBudget"`
	BudgetUtilization float64  `json:"budgetUtilization"`
	OverBudget        []string `json:"overBudget"`
	NegativeAccounts  []string `json:"negativeAccounts"`
	TransactionCount  int      `json:"transactionCount"`

	Banks              []BankSummary   `json:"banks"`
	ExpensesByCategory []CategoryTotal `json:"expensesByCategory"`
}

// BankSummary totals the accounts held at one bank. Assets sums positive
// balances and Debts the magnitude of negative ones.
type BankSummary struct {
	BankName     string   `json:"bankName"`
	AccountIDs   []string `json:"accountIds"`
	AccountCount int      `json:"accountCount"`
	TotalBalance Money    `json:"totalBalance"`
	Assets       Money    `json:"assets"`
	Debts        Money    `json:"debts"`
}

// CategoryTotal is the expense total of one category and its share of all
// expenses, as a percentage rounded to two decimals.
type CategoryTotal struct {
	Category   string  `json:"category"`
	Amount     Money   `json:"amount"`
	Percentage float64 `json:"percentage"`
}

// Summarize computes the dashboard totals for the given collections.
func Summarize(accounts []Account, budgets []Budget, txs []Transaction) Overview {
	ov := Overview{
		TransactionCount: len(txs),
		OverBudget:       []string{},
		NegativeAccounts: []string{},
	}
	for _, a := range accounts {
		ov.TotalBalance = ov.TotalBalance.Add(a.Balance)
		if a.Balance.Cents < 0 {
			ov.NegativeAccounts = append(ov.NegativeAccounts, a.ID)
		}
	}
	for _, t := range txs {
		switch t.Type {
		case Income:
			ov.TotalIncome = ov.TotalIncome.Add(t.Amount)
		case Expense:
			ov.TotalExpenses = ov.TotalExpenses.Add(t.Amount)
		}
	}
	for _, b := range budgets {
		ov.TotalBudgetLimit = ov.TotalBudgetLimit.Add(b.Limit)
		ov.TotalBudgetSpent = ov.TotalBudgetSpent.Add(b.Spent)
		if b.OverBudget() {
			ov.OverBudget = append(ov.OverBudget, b.Category)
		}
	}
	ov.RemainingBudget = ov.TotalBudgetLimit.Sub(ov.TotalBudgetSpent)
	ov.BudgetUtilization = utilization(ov.TotalBudgetSpent, ov.TotalBudgetLimit)
	ov.Banks = SummarizeBanks(accounts)
	ov.ExpensesByCategory = ExpensesByCategory(txs)
	return ov
}

// SummarizeBanks groups accounts by bank name, largest total balance first.
// Bank names differing only in case share a group.
func SummarizeBanks(accounts []Account) []BankSummary {
	out := []BankSummary{}
	index := map[string]int{}
	for _, a := range accounts {
		name := strings.TrimSpace(a.BankName)
		if name == "" {
			name = NoBankName
		}
		key := strings.ToLower(name)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, BankSummary{BankName: name, AccountIDs: []string{}})
		}
		b := &out[i]
		b.AccountIDs = append(b.AccountIDs, a.ID)
		b.AccountCount++
		b.TotalBalance = b.TotalBalance.Add(a.Balance)
		switch {
		case a.Balance.Cents > 0:
			b.Assets = b.Assets.Add(a.Balance)
		case a.Balance.Cents < 0:
			b.Debts = b.Debts.Sub(a.Balance)
		}
	}
	slices.SortStableFunc(out, func(x, y BankSummary) int {
		return cmp.Compare(y.TotalBalance.Cents, x.TotalBalance.Cents)
	})
	return out
}

// ExpensesByCategory totals expenses per category, largest first.
func ExpensesByCategory(txs []Transaction) []CategoryTotal {
	out := []CategoryTotal{}
	index := map[string]int{}
	var total Money
	for _, t := range txs {
		if t.Type != Expense {
			continue
		}
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryTotal{Category: t.Category})
		}
		out[i].Amount = out[i].Amount.Add(t.Amount)
		total = total.Add(t.Amount)
	}
	for i := range out {
		out[i].Percentage = utilization(out[i].Amount, total)
	}
	slices.SortStableFunc(out, func(x, y CategoryTotal) int {
		if c := cmp.Compare(y.Amount.Cents, x.Amount.Cents); c != 0 {
			return c
		}
		return strings.Compare(x.Category, y.Category)
	})
	return out
}

// NewSnapshot builds the archive entry for month from copies of the given
// collections. The caller's slices are not retained.
func NewSnapshot(month string, accounts []Account, budgets []Budget, txs []Transaction, archivedAt time.Time) MonthlySnapshot {
	ov := Summarize(accounts, budgets, txs)
	year := 0
	if t, err := ParseMonthKey(month); err == nil {
		year = t.Year()
	}
	return MonthlySnapshot{
		Month:             month,
		Year:              year,
		MonthName:         MonthName(month),
		Transactions:      append([]Transaction{}, txs...),
		Budgets:           append([]Budget{}, budgets...),
		Accounts:          append([]Account{}, accounts...),
		TotalBalance:      ov.TotalBalance,
		TotalExpenses:     ov.TotalExpenses,
		TotalIncome:       ov.TotalIncome,
		BudgetUtilization: ov.BudgetUtilization,
		ArchivedAt:        archivedAt.UTC(),
	}
}

// utilization is spent/limit as a percentage rounded to two decimals.
// ExpensesByCategory reuses it for shares of the expense total.
func utilization(spent, limit Money) float64 {
	if limit.Cents <= 0 {
		return 0
	}
	pct := float64(spent.Cents) / float64(limit.Cents) * 100
	return math.Round(pct*100) / 100
}

// Clone returns a copy that shares no slices with s.
func (s MonthlySnapshot) Clone() MonthlySnapshot {
	s.Transactions = append([]Transaction{}, s.Transactions...)
	s.Budgets = append([]Budget{}, s.Budgets...)
	s.Accounts = append([]Account{}, s.Accounts...)
	return s
}
