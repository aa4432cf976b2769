package ledger

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"budget/internal/core"
	"budget/internal/storage"
	"budget/internal/storage/memory"
)

func newTestEngine(t *testing.T) (*Engine, *memory.Store) {
	t.Helper()
	kv := memory.New()
	e := New(context.Background(), storage.NewDocuments(kv))
	n := 0
	e.newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	return e, kv
}

func money(units int64) core.Money {
	return core.Money{Cents: units * 100}
}

func mustExec(t *testing.T, e *Engine, cmd Command) Result {
	t.Helper()
	res, err := e.Execute(context.Background(), cmd)
	if err != nil {
		t.Fatalf("%T: unexpected error: %v", cmd, err)
	}
	return res
}

func addAccount(t *testing.T, e *Engine, name string, balance int64) string {
	t.Helper()
	return mustExec(t, e, CreateAccount{
		Input:          AccountInput{Name: name, Type: core.Checking, Color: "#3366ff"},
		OpeningBalance: money(balance),
	}).ID
}

func expense(accountID string, amount int64) TransactionInput {
	return TransactionInput{
		Type:        core.Expense,
		Amount:      money(amount),
		Category:    "General",
		Description: "expense",
		Date:        core.NewDate(2025, 1, 15),
		AccountID:   accountID,
	}
}

func budgetExpense(category string, amount int64) TransactionInput {
	return TransactionInput{
		Type:        core.Expense,
		Amount:      money(amount),
		Category:    category,
		Description: "budget expense",
		Date:        core.NewDate(2025, 1, 16),
		HasBudget:   true,
	}
}

func income(accountID string, amount int64) TransactionInput {
	return TransactionInput{
		Type:        core.Income,
		Amount:      money(amount),
		Category:    "Salary",
		Description: "pay",
		Date:        core.NewDate(2025, 1, 1),
		AccountID:   accountID,
	}
}

func balanceOf(t *testing.T, e *Engine, id string) core.Money {
	t.Helper()
	acc, err := e.Account(id)
	if err != nil {
		t.Fatalf("Account(%s): %v", id, err)
	}
	return acc.Balance
}

func spentOf(t *testing.T, e *Engine, category string) core.Money {
	t.Helper()
	for _, b := range e.State().Budgets {
		if b.Category == category {
			return b.Spent
		}
	}
	t.Fatalf("no budget for %s", category)
	return core.Money{}
}

func TestScenario(t *testing.T) {
	e, _ := newTestEngine(t)

	a := addAccount(t, e, "A", 1000)

	tx1 := mustExec(t, e, CreateTransaction{Input: expense(a, 200)}).ID
	if got := balanceOf(t, e, a); got != money(800) {
		t.Fatalf("after tx1 A.balance = %v, want 800", got)
	}

	mustExec(t, e, SetBudget{Category: "Food", Limit: money(500)})
	if got := spentOf(t, e, "Food"); got.Cents != 0 {
		t.Fatalf("new budget spent = %v, want 0", got)
	}

	tx2 := mustExec(t, e, CreateTransaction{Input: budgetExpense("Food", 150)}).ID
	if got := spentOf(t, e, "Food"); got != money(150) {
		t.Fatalf("after tx2 B.spent = %v, want 150", got)
	}
	if got := balanceOf(t, e, a); got != money(800) {
		t.Fatalf("budget expense changed A.balance to %v", got)
	}

	mustExec(t, e, DeleteTransaction{ID: tx1})
	if got := balanceOf(t, e, a); got != money(1000) {
		t.Fatalf("after deleting tx1 A.balance = %v, want 1000", got)
	}

	mustExec(t, e, EditTransaction{ID: tx2, Input: budgetExpense("Food", 600)})
	if got := spentOf(t, e, "Food"); got != money(600) {
		t.Fatalf("after edit B.spent = %v, want 600", got)
	}
	if !e.State().Budgets[0].OverBudget() {
		t.Fatalf("budget should be over its limit")
	}
}

func TestApplyReverseRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		input func(accountID string) TransactionInput
	}{
		{"income", func(id string) TransactionInput { return income(id, 250) }},
		{"account expense", func(id string) TransactionInput { return expense(id, 75) }},
		{"budget expense", func(string) TransactionInput { return budgetExpense("Food", 40) }},
		{"overdraft", func(id string) TransactionInput { return expense(id, 5000) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEngine(t)
			a := addAccount(t, e, "Main", 100)
			mustExec(t, e, SetBudget{Category: "Food", Limit: money(300)})
			before := e.State()

			id := mustExec(t, e, CreateTransaction{Input: tt.input(a)}).ID
			mustExec(t, e, DeleteTransaction{ID: id})

			after := e.State()
			if after.Accounts[0].Balance != before.Accounts[0].Balance {
				t.Errorf("balance = %v, want %v", after.Accounts[0].Balance, before.Accounts[0].Balance)
			}
			if after.Budgets[0].Spent != before.Budgets[0].Spent {
				t.Errorf("spent = %v, want %v", after.Budgets[0].Spent, before.Budgets[0].Spent)
			}
			if len(after.Transactions) != 0 {
				t.Errorf("transactions = %d, want 0", len(after.Transactions))
			}
		})
	}
}

func TestReverseClampsSpentAtZero(t *testing.T) {
	e, _ := newTestEngine(t)
	mustExec(t, e, SetBudget{Category: "Food", Limit: money(100)})
	e.budgets[0].Spent = money(30)

	e.reverse(core.Transaction{Type: core.Expense, Amount: money(50), Category: "Food", HasBudget: true})

	if got := e.budgets[0].Spent; got.Cents != 0 {
		t.Fatalf("spent = %v, want 0", got)
	}
}

func TestReverseDoesNotClampBalance(t *testing.T) {
	e, _ := newTestEngine(t)
	a := addAccount(t, e, "Main", 10)

	e.reverse(core.Transaction{Type: core.Income, Amount: money(50), AccountID: a})

	if got := balanceOf(t, e, a); got != money(-40) {
		t.Fatalf("balance = %v, want -40", got)
	}
}

func TestMissingTargetIsIgnored(t *testing.T) {
	e, _ := newTestEngine(t)
	a := addAccount(t, e, "Main", 10)
	before := e.State()

	e.apply(core.Transaction{Type: core.Income, Amount: money(5), AccountID: "missing"})
	e.apply(core.Transaction{Type: core.Expense, Amount: money(5), Category: "None", HasBudget: true})
	e.reverse(core.Transaction{Type: core.Expense, Amount: money(5), AccountID: "missing"})

	if got := balanceOf(t, e, a); got != before.Accounts[0].Balance {
		t.Fatalf("balance changed to %v", got)
	}
}

// equivalentState compares balances by account name and spent by category.
func equivalentState(t *testing.T, got, want State) {
	t.Helper()
	balances := map[string]core.Money{}
	for _, a := range want.Accounts {
		balances[a.Name] = a.Balance
	}
	for _, a := range got.Accounts {
		if balances[a.Name] != a.Balance {
			t.Errorf("account %s balance = %v, want %v", a.Name, a.Balance, balances[a.Name])
		}
	}
	spent := map[string]core.Money{}
	for _, b := range want.Budgets {
		spent[b.Category] = b.Spent
	}
	for _, b := range got.Budgets {
		if spent[b.Category] != b.Spent {
			t.Errorf("budget %s spent = %v, want %v", b.Category, b.Spent, spent[b.Category])
		}
	}
	if len(got.Transactions) != len(want.Transactions) {
		t.Errorf("transactions = %d, want %d", len(got.Transactions), len(want.Transactions))
	}
}

func TestEditEquivalentToDeleteAndRecreate(t *testing.T) {
	type accounts struct{ x, y string }
	tests := []struct {
		name     string
		old, new func(accounts) TransactionInput
	}{
		{
			name: "funding unchanged",
			old:  func(a accounts) TransactionInput { return expense(a.x, 100) },
			new:  func(a accounts) TransactionInput { return expense(a.x, 130) },
		},
		{
			name: "account to budget",
			old:  func(a accounts) TransactionInput { return expense(a.x, 100) },
			new:  func(accounts) TransactionInput { return budgetExpense("Food", 100) },
		},
		{
			name: "budget to account",
			old:  func(accounts) TransactionInput { return budgetExpense("Food", 80) },
			new:  func(a accounts) TransactionInput { return expense(a.y, 80) },
		},
		{
			name: "account changed",
			old:  func(a accounts) TransactionInput { return expense(a.x, 60) },
			new:  func(a accounts) TransactionInput { return expense(a.y, 60) },
		},
		{
			name: "category changed",
			old:  func(accounts) TransactionInput { return budgetExpense("Food", 70) },
			new:  func(accounts) TransactionInput { return budgetExpense("Fun", 90) },
		},
		{
			name: "income to expense",
			old:  func(a accounts) TransactionInput { return income(a.x, 500) },
			new:  func(a accounts) TransactionInput { return expense(a.x, 500) },
		},
	}

	setup := func(t *testing.T) (*Engine, accounts) {
		e, _ := newTestEngine(t)
		a := accounts{x: addAccount(t, e, "X", 1000), y: addAccount(t, e, "Y", 200)}
		mustExec(t, e, SetBudget{Category: "Food", Limit: money(400)})
		mustExec(t, e, SetBudget{Category: "Fun", Limit: money(100)})
		mustExec(t, e, CreateTransaction{Input: budgetExpense("Food", 25)})
		return e, a
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			edited, ea := setup(t)
			id := mustExec(t, edited, CreateTransaction{Input: tt.old(ea)}).ID
			mustExec(t, edited, EditTransaction{ID: id, Input: tt.new(ea)})

			recreated, ra := setup(t)
			id = mustExec(t, recreated, CreateTransaction{Input: tt.old(ra)}).ID
			mustExec(t, recreated, DeleteTransaction{ID: id})
			mustExec(t, recreated, CreateTransaction{Input: tt.new(ra)})

			equivalentState(t, edited.State(), recreated.State())
		})
	}
}

func TestEditKeepsIDAndPosition(t *testing.T) {
	e, _ := newTestEngine(t)
	a := addAccount(t, e, "Main", 100)
	first := mustExec(t, e, CreateTransaction{Input: expense(a, 1)}).ID
	mustExec(t, e, CreateTransaction{Input: expense(a, 2)})

	in := expense(a, 3)
	in.Description = "edited"
	mustExec(t, e, EditTransaction{ID: first, Input: in})

	txs := e.State().Transactions
	if txs[1].ID != first || txs[1].Description != "edited" {
		t.Fatalf("edited transaction = %+v, want id %s at index 1", txs[1], first)
	}
}

func TestTransactionsNewestFirst(t *testing.T) {
	e, _ := newTestEngine(t)
	a := addAccount(t, e, "Main", 100)
	first := mustExec(t, e, CreateTransaction{Input: expense(a, 1)}).ID
	second := mustExec(t, e, CreateTransaction{Input: expense(a, 2)}).ID

	txs := e.State().Transactions
	if txs[0].ID != second || txs[1].ID != first {
		t.Fatalf("order = [%s %s], want [%s %s]", txs[0].ID, txs[1].ID, second, first)
	}
}

func TestBudgetExpenseStoresNoAccount(t *testing.T) {
	e, _ := newTestEngine(t)
	a := addAccount(t, e, "Main", 100)
	mustExec(t, e, SetBudget{Category: "Food", Limit: money(50)})

	in := budgetExpense("Food", 10)
	in.AccountID = a
	id := mustExec(t, e, CreateTransaction{Input: in}).ID

	tx, err := e.Transaction(id)
	if err != nil {
		t.Fatalf("Transaction: %v", err)
	}
	if tx.AccountID != "" {
		t.Fatalf("AccountID = %q, want empty", tx.AccountID)
	}
	if got := balanceOf(t, e, a); got != money(100) {
		t.Fatalf("balance = %v, want 100", got)
	}
}

func TestLaterBudgetDoesNotReclassify(t *testing.T) {
	e, _ := newTestEngine(t)
	a := addAccount(t, e, "Main", 100)
	in := expense(a, 20)
	in.Category = "Food"
	id := mustExec(t, e, CreateTransaction{Input: in}).ID

	mustExec(t, e, SetBudget{Category: "Food", Limit: money(50)})
	mustExec(t, e, DeleteTransaction{ID: id})

	if got := spentOf(t, e, "Food"); got.Cents != 0 {
		t.Fatalf("spent = %v, want 0", got)
	}
	if got := balanceOf(t, e, a); got != money(100) {
		t.Fatalf("balance = %v, want 100", got)
	}
}

func TestValidationRejectsWithoutMutation(t *testing.T) {
	e, _ := newTestEngine(t)
	a := addAccount(t, e, "Main", 100)
	mustExec(t, e, CreateAccount{Input: AccountInput{Name: "Card", Type: core.Credit, BankName: "Acme"}})
	mustExec(t, e, SetBudget{Category: "Food", Limit: money(50)})

	withIncomeBudget := income(a, 5)
	withIncomeBudget.HasBudget = true
	noDescription := expense(a, 5)
	noDescription.Description = "  "
	zeroAmount := expense(a, 0)

	tests := []struct {
		name string
		cmd  Command
		want error
	}{
		{"budget expense without budget", CreateTransaction{Input: budgetExpense("Travel", 5)}, ErrBudgetNotFound},
		{"unknown account", CreateTransaction{Input: expense("nope", 5)}, ErrAccountNotFound},
		{"income with budget", CreateTransaction{Input: withIncomeBudget}, core.ErrIncomeWithBudget},
		{"empty description", CreateTransaction{Input: noDescription}, core.ErrEmptyDescription},
		{"zero amount", CreateTransaction{Input: zeroAmount}, core.ErrInvalidAmount},
		{"duplicate name", CreateAccount{Input: AccountInput{Name: " main ", Type: core.Savings}}, ErrDuplicateAccountName},
		{"duplicate bank and type", CreateAccount{Input: AccountInput{Name: "Other", Type: core.Credit, BankName: "ACME"}}, ErrDuplicateBankAccount},
		{"bad account type", CreateAccount{Input: AccountInput{Name: "Odd", Type: "loan"}}, core.ErrInvalidAccountType},
		{"zero limit", SetBudget{Category: "Food", Limit: core.Money{}}, core.ErrInvalidAmount},
		{"oversized amount", CreateTransaction{Input: expense(a, 900_000_000_000_000)}, core.ErrAmountTooLarge},
		{"oversized limit", SetBudget{Category: "Food", Limit: money(900_000_000_000_000)}, core.ErrAmountTooLarge},
		{"oversized opening balance", CreateAccount{Input: AccountInput{Name: "Vault", Type: core.Savings}, OpeningBalance: money(-900_000_000_000_000)}, core.ErrAmountTooLarge},
		{"empty category", SetBudget{Category: " ", Limit: money(5)}, core.ErrEmptyCategory},
		{"edit to missing budget", EditTransaction{ID: "whatever", Input: budgetExpense("Travel", 5)}, ErrBudgetNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := e.State()
			_, err := e.Execute(context.Background(), tt.cmd)
			if !errors.Is(err, tt.want) {
				t.Fatalf("error = %v, want %v", err, tt.want)
			}
			if !IsValidation(err) {
				t.Fatalf("error %v is not a validation error", err)
			}
			equivalentState(t, e.State(), before)
			if len(e.State().Accounts) != len(before.Accounts) {
				t.Fatalf("accounts changed")
			}
		})
	}
}

func TestSameBankDifferentTypeAllowed(t *testing.T) {
	e, _ := newTestEngine(t)
	mustExec(t, e, CreateAccount{Input: AccountInput{Name: "Card", Type: core.Credit, BankName: "Acme"}})
	if _, err := e.Execute(context.Background(), CreateAccount{Input: AccountInput{Name: "Current", Type: core.Checking, BankName: "Acme"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUpdateAccountKeepsBalance(t *testing.T) {
	e, _ := newTestEngine(t)
	a := addAccount(t, e, "Main", 100)
	mustExec(t, e, CreateTransaction{Input: expense(a, 30)})

	mustExec(t, e, UpdateAccount{ID: a, Input: AccountInput{Name: "Renamed", Type: core.Savings, Color: "#000"}})

	acc, _ := e.Account(a)
	if acc.Name != "Renamed" || acc.Type != core.Savings {
		t.Fatalf("account = %+v", acc)
	}
	if acc.Balance != money(70) {
		t.Fatalf("balance = %v, want 70", acc.Balance)
	}
}

func TestUpdateAccountAllowsOwnName(t *testing.T) {
	e, _ := newTestEngine(t)
	a := addAccount(t, e, "Main", 100)
	if _, err := e.Execute(context.Background(), UpdateAccount{ID: a, Input: AccountInput{Name: "MAIN", Type: core.Checking}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestDeleteAccount(t *testing.T) {
	e, _ := newTestEngine(t)
	used := addAccount(t, e, "Used", 100)
	unused := addAccount(t, e, "Unused", 0)
	mustExec(t, e, CreateTransaction{Input: income(used, 10)})

	if _, err := e.Execute(context.Background(), DeleteAccount{ID: used}); !errors.Is(err, ErrAccountInUse) {
		t.Fatalf("error = %v, want ErrAccountInUse", err)
	}
	if _, err := e.Account(used); err != nil {
		t.Fatalf("account in use was removed")
	}

	res := mustExec(t, e, DeleteAccount{ID: unused})
	if !res.Changed {
		t.Fatalf("delete of unused account reported no change")
	}
	if _, err := e.Account(unused); !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("unused account still present")
	}
}

func TestLimitUpdatesKeepSpent(t *testing.T) {
	e, _ := newTestEngine(t)
	id := mustExec(t, e, SetBudget{Category: "Food", Limit: money(100)}).ID
	mustExec(t, e, CreateTransaction{Input: budgetExpense("Food", 40)})

	again := mustExec(t, e, SetBudget{Category: "Food", Limit: money(200)})
	if again.ID != id {
		t.Fatalf("SetBudget created %s, want update of %s", again.ID, id)
	}
	mustExec(t, e, UpdateBudgetLimit{ID: id, Limit: money(20)})

	b, _ := e.Budget(id)
	if b.Limit != money(20) || b.Spent != money(40) {
		t.Fatalf("budget = %+v, want limit 20 spent 40", b)
	}
	if len(e.State().Budgets) != 1 {
		t.Fatalf("budgets = %d, want 1", len(e.State().Budgets))
	}
}

func TestMissingIDsAreNoOps(t *testing.T) {
	e, _ := newTestEngine(t)
	a := addAccount(t, e, "Main", 100)
	mustExec(t, e, SetBudget{Category: "Food", Limit: money(10)})

	cmds := []Command{
		DeleteTransaction{ID: "missing"},
		EditTransaction{ID: "missing", Input: expense(a, 5)},
		UpdateAccount{ID: "missing", Input: AccountInput{Name: "X", Type: core.Cash}},
		DeleteAccount{ID: "missing"},
		UpdateBudgetLimit{ID: "missing", Limit: money(5)},
		DeleteBudget{ID: "missing"},
	}
	for _, cmd := range cmds {
		before := e.State()
		res, err := e.Execute(context.Background(), cmd)
		if err != nil {
			t.Fatalf("%T: unexpected error: %v", cmd, err)
		}
		if res.Changed {
			t.Fatalf("%T: reported a change", cmd)
		}
		equivalentState(t, e.State(), before)
	}
}

func TestDeleteBudget(t *testing.T) {
	e, _ := newTestEngine(t)
	id := mustExec(t, e, SetBudget{Category: "Food", Limit: money(10)}).ID
	mustExec(t, e, DeleteBudget{ID: id})
	if len(e.State().Budgets) != 0 {
		t.Fatalf("budget not deleted")
	}
}

func TestClearAll(t *testing.T) {
	e, kv := newTestEngine(t)
	a := addAccount(t, e, "Main", 100)
	mustExec(t, e, SetBudget{Category: "Food", Limit: money(10)})
	mustExec(t, e, CreateTransaction{Input: income(a, 5)})

	mustExec(t, e, ClearAll{})

	st := e.State()
	if len(st.Accounts)+len(st.Budgets)+len(st.Transactions) != 0 {
		t.Fatalf("state not empty: %+v", st)
	}
	if keys := kv.Keys(); len(keys) != 0 {
		t.Fatalf("persisted keys = %v, want none", keys)
	}
}

func TestStateIsACopy(t *testing.T) {
	e, _ := newTestEngine(t)
	addAccount(t, e, "Main", 100)

	st := e.State()
	st.Accounts[0].Balance = money(1)

	if got := e.State().Accounts[0].Balance; got != money(100) {
		t.Fatalf("internal balance changed to %v", got)
	}
}

func TestPersistedStateReloads(t *testing.T) {
	e, kv := newTestEngine(t)
	a := addAccount(t, e, "Main", 100)
	mustExec(t, e, SetBudget{Category: "Food", Limit: money(50)})
	mustExec(t, e, CreateTransaction{Input: expense(a, 30)})
	mustExec(t, e, CreateTransaction{Input: budgetExpense("Food", 20)})

	reloaded := New(context.Background(), storage.NewDocuments(kv))

	equivalentState(t, reloaded.State(), e.State())
	if got := balanceOf(t, reloaded, a); got != money(70) {
		t.Fatalf("reloaded balance = %v, want 70", got)
	}
}

func TestCorruptDocumentStartsEmpty(t *testing.T) {
	kv := memory.New()
	ctx := context.Background()
	_ = kv.Set(ctx, storage.KeyTransactions, "{not json")
	_ = kv.Set(ctx, storage.KeyAccounts, `[{"id":"a1","name":"Main","type":"cash","balance":12.5,"color":""}]`)

	e := New(ctx, storage.NewDocuments(kv))

	st := e.State()
	if len(st.Transactions) != 0 {
		t.Fatalf("transactions = %d, want 0", len(st.Transactions))
	}
	if len(st.Accounts) != 1 || st.Accounts[0].Balance.Cents != 1250 {
		t.Fatalf("accounts = %+v", st.Accounts)
	}
}

type failingKV struct {
	storage.KV
}

func (failingKV) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

func TestPersistFailureKeepsMemoryState(t *testing.T) {
	e := New(context.Background(), storage.NewDocuments(failingKV{KV: memory.New()}))

	res, err := e.Execute(context.Background(), CreateAccount{Input: AccountInput{Name: "Main", Type: core.Cash}, OpeningBalance: money(5)})
	if err != nil {
		t.Fatalf("persistence failure surfaced: %v", err)
	}
	if _, err := e.Account(res.ID); err != nil {
		t.Fatalf("account lost after failed write: %v", err)
	}
}

func TestResetMonth(t *testing.T) {
	ctx := context.Background()
	e, _ := newTestEngine(t)
	a := addAccount(t, e, "Main", 100)
	mustExec(t, e, SetBudget{Category: "Food", Limit: money(50)})
	mustExec(t, e, CreateTransaction{Input: budgetExpense("Food", 20)})
	mustExec(t, e, CreateTransaction{Input: expense(a, 10)})

	boom := errors.New("archive down")
	if err := e.ResetMonth(ctx, func(State) error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("error = %v, want %v", err, boom)
	}
	if len(e.State().Transactions) != 2 {
		t.Fatalf("failed reset cleared transactions")
	}

	var seen State
	if err := e.ResetMonth(ctx, func(s State) error { seen = s; return nil }); err != nil {
		t.Fatalf("ResetMonth: %v", err)
	}
	if len(seen.Transactions) != 2 {
		t.Fatalf("callback saw %d transactions, want 2", len(seen.Transactions))
	}

	st := e.State()
	if len(st.Transactions) != 0 {
		t.Fatalf("transactions not cleared")
	}
	if st.Budgets[0].Spent.Cents != 0 || st.Budgets[0].Limit != money(50) {
		t.Fatalf("budget = %+v, want spent 0 limit 50", st.Budgets[0])
	}
	if got := balanceOf(t, e, a); got != money(90) {
		t.Fatalf("balance = %v, want 90", got)
	}
}

func TestOverview(t *testing.T) {
	e, _ := newTestEngine(t)
	a := addAccount(t, e, "Main", 100)
	mustExec(t, e, SetBudget{Category: "Food", Limit: money(50)})
	mustExec(t, e, CreateTransaction{Input: income(a, 40)})
	mustExec(t, e, CreateTransaction{Input: budgetExpense("Food", 60)})

	ov := e.Overview()
	if ov.TotalIncome != money(40) || ov.TotalExpenses != money(60) {
		t.Fatalf("totals = %v/%v", ov.TotalIncome, ov.TotalExpenses)
	}
	if len(ov.OverBudget) != 1 || ov.OverBudget[0] != "Food" {
		t.Fatalf("over budget = %v", ov.OverBudget)
	}
	if ov.TransactionCount != 2 {
		t.Fatalf("count = %d", ov.TransactionCount)
	}
}

type bogusCommand struct{}

func (bogusCommand) commandName() string { return "bogus" }

func TestUnknownCommand(t *testing.T) {
	e, _ := newTestEngine(t)
	if _, err := e.Execute(context.Background(), bogusCommand{}); !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("error = %v, want ErrUnknownCommand", err)
	}
}
