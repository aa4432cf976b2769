package core

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestMonthKeyAndName(t *testing.T) {
	now := time.Date(2025, 3, 31, 23, 59, 0, 0, time.UTC)
	if got := MonthKey(now); got != "2025-03" {
		t.Fatalf("expected 2025-03, got %s", got)
	}
	if got := MonthName("2025-01"); got != "January 2025" {
		t.Fatalf("expected January 2025, got %s", got)
	}
	for _, bad := range []string{"2025-1", "2025-13", "25-01", "", "2025/01"} {
		if err := ValidateMonthKey(bad); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestNewSnapshot(t *testing.T) {
	accounts := []Account{
		{ID: "a", Balance: Money{Cents: 100000}},
		{ID: "b", Balance: Money{Cents: -2500}},
	}
	budgets := []Budget{
		{ID: "b1", Category: "Food", Limit: Money{Cents: 30000}, Spent: Money{Cents: 10000}},
		{ID: "b2", Category: "Fun", Limit: Money{Cents: 10000}, Spent: Money{Cents: 0}},
	}
	txs := []Transaction{
		{ID: "t1", Type: Income, Amount: Money{Cents: 500000}},
		{ID: "t2", Type: Expense, Amount: Money{Cents: 10000}, HasBudget: true},
		{ID: "t3", Type: Expense, Amount: Money{Cents: 2550}},
	}
	at := time.Date(2025, 2, 1, 8, 0, 0, 0, time.UTC)

	snap := NewSnapshot("2025-01", accounts, budgets, txs, at)

	if snap.Year != 2025 || snap.MonthName != "January 2025" {
		t.Fatalf("unexpected month fields: %d %q", snap.Year, snap.MonthName)
	}
	if snap.TotalBalance.Cents != 97500 {
		t.Fatalf("expected total balance 97500, got %d", snap.TotalBalance.Cents)
	}
	if snap.TotalIncome.Cents != 500000 || snap.TotalExpenses.Cents != 12550 {
		t.Fatalf("unexpected totals: income=%d expenses=%d", snap.TotalIncome.Cents, snap.TotalExpenses.Cents)
	}
	if snap.BudgetUtilization != 25 {
		t.Fatalf("expected 25%% utilization, got %v", snap.BudgetUtilization)
	}

	// The snapshot must not alias the live slices.
	txs[0].Amount = Money{Cents: 1}
	budgets[0].Spent = Money{}
	if snap.Transactions[0].Amount.Cents != 500000 || snap.Budgets[0].Spent.Cents != 10000 {
		t.Fatalf("snapshot aliases live data")
	}
}

func TestSummarizeFlagsOverBudgetAndNegative(t *testing.T) {
	ov := Summarize(
		[]Account{{ID: "neg", Balance: Money{Cents: -1}}},
		[]Budget{{Category: "Food", Limit: Money{Cents: 100}, Spent: Money{Cents: 101}}},
		nil,
	)
	if len(ov.OverBudget) != 1 || ov.OverBudget[0] != "Food" {
		t.Fatalf("expected Food over budget, got %v", ov.OverBudget)
	}
	if len(ov.NegativeAccounts) != 1 || ov.NegativeAccounts[0] != "neg" {
		t.Fatalf("expected negative account, got %v", ov.NegativeAccounts)
	}
	if ov.RemainingBudget.Cents != -1 {
		t.Fatalf("expected remaining -1, got %d", ov.RemainingBudget.Cents)
	}
}

func TestSummarizeBanks(t *testing.T) {
	accounts := []Account{
		{ID: "wallet", Balance: Money{Cents: 3000}},
		{ID: "chk", BankName: "Acme", Type: Checking, Balance: Money{Cents: 120000}},
		{ID: "card", BankName: "acme ", Type: Credit, Balance: Money{Cents: -45000}},
		{ID: "sav", BankName: "Zeta", Type: Savings, Balance: Money{Cents: 500000}},
		{ID: "empty", BankName: "Zeta", Type: Checking},
	}

	banks := SummarizeBanks(accounts)

	if len(banks) != 3 {
		t.Fatalf("got %d banks, want 3: %+v", len(banks), banks)
	}
	want := []struct {
		name   string
		count  int
		total  int64
		assets int64
		debts  int64
	}{
		{"Zeta", 2, 500000, 500000, 0},
		{"Acme", 2, 75000, 120000, 45000},
		{NoBankName, 1, 3000, 3000, 0},
	}
	for i, w := range want {
		b := banks[i]
		if b.BankName != w.name || b.AccountCount != w.count || len(b.AccountIDs) != w.count {
			t.Errorf("bank %d = %s/%d, want %s/%d", i, b.BankName, b.AccountCount, w.name, w.count)
		}
		if b.TotalBalance.Cents != w.total || b.Assets.Cents != w.assets || b.Debts.Cents != w.debts {
			t.Errorf("%s totals = %d/%d/%d, want %d/%d/%d", b.BankName,
				b.TotalBalance.Cents, b.Assets.Cents, b.Debts.Cents, w.total, w.assets, w.debts)
		}
	}

	if got := SummarizeBanks(nil); got == nil || len(got) != 0 {
		t.Errorf("SummarizeBanks(nil) = %#v, want empty slice", got)
	}
}

func TestExpensesByCategory(t *testing.T) {
	txs := []Transaction{
		{Type: Income, Category: "Salary", Amount: Money{Cents: 900000}},
		{Type: Expense, Category: "Food", Amount: Money{Cents: 2500}},
		{Type: Expense, Category: "Rent", Amount: Money{Cents: 5000}},
		{Type: Expense, Category: "Food", Amount: Money{Cents: 1250}},
		{Type: Expense, Category: "Fun", Amount: Money{Cents: 1250}},
	}

	got := ExpensesByCategory(txs)

	want := []CategoryTotal{
		{Category: "Rent", Amount: Money{Cents: 5000}, Percentage: 50},
		{Category: "Food", Amount: Money{Cents: 3750}, Percentage: 37.5},
		{Category: "Fun", Amount: Money{Cents: 1250}, Percentage: 12.5},
	}
	if len(got) != len(want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}

	if got := ExpensesByCategory([]Transaction{{Type: Income, Amount: Money{Cents: 1}}}); len(got) != 0 {
		t.Errorf("income only = %+v, want none", got)
	}
}

func TestSummarizeIncludesBreakdowns(t *testing.T) {
	ov := Summarize(
		[]Account{{ID: "a", BankName: "Acme", Balance: Money{Cents: 100}}},
		nil,
		[]Transaction{{Type: Expense, Category: "Food", Amount: Money{Cents: 100}}},
	)
	if len(ov.Banks) != 1 || ov.Banks[0].BankName != "Acme" {
		t.Errorf("banks = %+v", ov.Banks)
	}
	if len(ov.ExpensesByCategory) != 1 || ov.ExpensesByCategory[0].Percentage != 100 {
		t.Errorf("expenses by category = %+v", ov.ExpensesByCategory)
	}
}

func TestSnapshotJSONAlwaysHasArchivedAt(t *testing.T) {
	b, err := json.Marshal(MonthlySnapshot{Month: "2025-01"})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(b), `"archivedAt":"0001-01-01T00:00:00Z"`) {
		t.Fatalf("archivedAt missing from %s", b)
	}
}
