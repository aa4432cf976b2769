package ledger

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"budget/internal/core"
	"budget/internal/log"
	"budget/internal/storage"
)

type collections uint8

const (
	colTransactions collections = 1 << iota
	colAccounts
	colBudgets

	colAll = colTransactions | colAccounts | colBudgets
)

// State is a copy of the live ledger.
type State struct {
	Accounts     []core.Account     `json:"accounts"`
	Budgets      []core.Budget      `json:"budgets"`
	Transactions []core.Transaction `json:"transactions"`
}

// Engine owns accounts, budgets and transactions. Every mutation goes
// through Execute or ResetMonth and is persisted best effort.
type Engine struct {
	mu       sync.Mutex
	docs     *storage.Documents
	logger   *log.Logger
	newID    func() string
	accounts []core.Account
	budgets  []core.Budget
	txs      []core.Transaction
}

// New loads the ledger from docs. A collection that fails to load starts
// empty. A nil docs keeps the ledger in memory only.
func New(ctx context.Context, docs *storage.Documents) *Engine {
	e := &Engine{
		docs:     docs,
		logger:   log.ForComponent(log.ComponentLedger),
		newID:    uuid.NewString,
		accounts: []core.Account{},
		budgets:  []core.Budget{},
		txs:      []core.Transaction{},
	}
	if docs == nil {
		return e
	}

	if accounts, err := docs.LoadAccounts(ctx); err != nil {
		e.logger.ErrorContext(ctx, "Failed to load accounts", log.FieldOperation, log.OpLoad, log.FieldKey, storage.KeyAccounts, log.FieldError, err)
	} else {
		e.accounts = accounts
	}
	if budgets, err := docs.LoadBudgets(ctx); err != nil {
		e.logger.ErrorContext(ctx, "Failed to load budgets", log.FieldOperation, log.OpLoad, log.FieldKey, storage.KeyBudgets, log.FieldError, err)
	} else {
		e.budgets = budgets
	}
	if txs, err := docs.LoadTransactions(ctx); err != nil {
		e.logger.ErrorContext(ctx, "Failed to load transactions", log.FieldOperation, log.OpLoad, log.FieldKey, storage.KeyTransactions, log.FieldError, err)
	} else {
		e.txs = txs
	}

	e.logger.InfoContext(ctx, "Ledger loaded",
		"accounts", len(e.accounts),
		"budgets", len(e.budgets),
		"transactions", len(e.txs))
	return e
}

// Execute validates and applies cmd. Validation failures leave the ledger
// untouched. Commands aimed at a missing id succeed with Changed false.
func (e *Engine) Execute(ctx context.Context, cmd Command) (Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var (
		res   Result
		dirty collections
		err   error
	)
	switch c := cmd.(type) {
	case CreateTransaction:
		res, dirty, err = e.createTransaction(c)
	case EditTransaction:
		res, dirty, err = e.editTransaction(c)
	case DeleteTransaction:
		res, dirty, err = e.deleteTransaction(c)
	case CreateAccount:
		res, dirty, err = e.createAccount(c)
	case UpdateAccount:
		res, dirty, err = e.updateAccount(c)
	case DeleteAccount:
		res, dirty, err = e.deleteAccount(c)
	case SetBudget:
		res, dirty, err = e.setBudget(c)
	case UpdateBudgetLimit:
		res, dirty, err = e.updateBudgetLimit(c)
	case DeleteBudget:
		res, dirty, err = e.deleteBudget(c)
	case ClearAll:
		return e.clearAll(ctx), nil
	default:
		return Result{}, fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
	if err != nil {
		e.logger.DebugContext(ctx, "Ledger command rejected",
			append(commandFields(cmd), log.FieldError, err)...)
		return Result{}, err
	}

	e.logger.DebugContext(ctx, "Ledger command applied",
		append(commandFields(cmd), "id", res.ID, "changed", res.Changed)...)
	if res.Changed {
		e.persist(ctx, dirty)
	}
	return res, nil
}

func (e *Engine) createTransaction(c CreateTransaction) (Result, collections, error) {
	tx, err := e.buildTransaction(e.newID(), c.Input)
	if err != nil {
		return Result{}, 0, err
	}
	e.apply(tx)
	e.txs = slices.Insert(e.txs, 0, tx)
	return Result{ID: tx.ID, Changed: true}, colAll, nil
}

func (e *Engine) editTransaction(c EditTransaction) (Result, collections, error) {
	updated, err := e.buildTransaction(c.ID, c.Input)
	if err != nil {
		return Result{}, 0, err
	}
	i := e.transactionIndex(c.ID)
	if i < 0 {
		return Result{ID: c.ID}, 0, nil
	}
	e.edit(e.txs[i], updated)
	e.txs[i] = updated
	return Result{ID: c.ID, Changed: true}, colAll, nil
}

func (e *Engine) deleteTransaction(c DeleteTransaction) (Result, collections, error) {
	i := e.transactionIndex(c.ID)
	if i < 0 {
		return Result{ID: c.ID}, 0, nil
	}
	e.reverse(e.txs[i])
	e.txs = slices.Delete(e.txs, i, i+1)
	return Result{ID: c.ID, Changed: true}, colAll, nil
}

func (e *Engine) createAccount(c CreateAccount) (Result, collections, error) {
	acc, err := e.buildAccount("", c.Input)
	if err != nil {
		return Result{}, 0, err
	}
	if err := c.OpeningBalance.ValidateBalance(); err != nil {
		return Result{}, 0, invalid("balance", err)
	}
	acc.ID = e.newID()
	acc.Balance = c.OpeningBalance
	e.accounts = append(e.accounts, acc)
	return Result{ID: acc.ID, Changed: true}, colAccounts, nil
}

func (e *Engine) updateAccount(c UpdateAccount) (Result, collections, error) {
	acc, err := e.buildAccount(c.ID, c.Input)
	if err != nil {
		return Result{}, 0, err
	}
	i := e.accountIndex(c.ID)
	if i < 0 {
		return Result{ID: c.ID}, 0, nil
	}
	acc.Balance = e.accounts[i].Balance
	e.accounts[i] = acc
	return Result{ID: c.ID, Changed: true}, colAccounts, nil
}

func (e *Engine) deleteAccount(c DeleteAccount) (Result, collections, error) {
	i := e.accountIndex(c.ID)
	if i < 0 {
		return Result{ID: c.ID}, 0, nil
	}
	for _, tx := range e.txs {
		if tx.AccountID == c.ID {
			return Result{}, 0, ErrAccountInUse
		}
	}
	e.accounts = slices.Delete(e.accounts, i, i+1)
	return Result{ID: c.ID, Changed: true}, colAccounts, nil
}

func (e *Engine) setBudget(c SetBudget) (Result, collections, error) {
	category := strings.TrimSpace(c.Category)
	if category == "" {
		return Result{}, 0, invalid("category", core.ErrEmptyCategory)
	}
	if err := validateLimit(c.Limit); err != nil {
		return Result{}, 0, err
	}

	if i := e.budgetIndexByCategory(category); i >= 0 {
		e.budgets[i].Limit = c.Limit
		return Result{ID: e.budgets[i].ID, Changed: true}, colBudgets, nil
	}
	b := core.Budget{ID: e.newID(), Category: category, Limit: c.Limit}
	e.budgets = append(e.budgets, b)
	return Result{ID: b.ID, Changed: true}, colBudgets, nil
}

func (e *Engine) updateBudgetLimit(c UpdateBudgetLimit) (Result, collections, error) {
	if err := validateLimit(c.Limit); err != nil {
		return Result{}, 0, err
	}
	i := e.budgetIndex(c.ID)
	if i < 0 {
		return Result{ID: c.ID}, 0, nil
	}
	e.budgets[i].Limit = c.Limit
	return Result{ID: c.ID, Changed: true}, colBudgets, nil
}

func (e *Engine) deleteBudget(c DeleteBudget) (Result, collections, error) {
	i := e.budgetIndex(c.ID)
	if i < 0 {
		return Result{ID: c.ID}, 0, nil
	}
	e.budgets = slices.Delete(e.budgets, i, i+1)
	return Result{ID: c.ID, Changed: true}, colBudgets, nil
}

func (e *Engine) clearAll(ctx context.Context) Result {
	e.accounts = []core.Account{}
	e.budgets = []core.Budget{}
	e.txs = []core.Transaction{}
	if e.docs != nil {
		if err := e.docs.RemoveLedger(ctx); err != nil {
			e.logger.ErrorContext(ctx, "Failed to clear persisted ledger", log.FieldError, err)
		}
	}
	e.logger.InfoContext(ctx, "Ledger cleared")
	return Result{Changed: true}
}

// ResetMonth hands fn a copy of the ledger and, if fn succeeds, clears the
// transactions and zeroes every budget's spent. Limits and balances carry
// over. The ledger stays locked for the whole call.
func (e *Engine) ResetMonth(ctx context.Context, fn func(State) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := fn(e.stateLocked()); err != nil {
		return err
	}

	cleared := len(e.txs)
	e.txs = []core.Transaction{}
	for i := range e.budgets {
		e.budgets[i].Spent = core.Money{}
	}
	e.persist(ctx, colTransactions|colBudgets)

	e.logger.InfoContext(ctx, "Ledger reset for new month", log.FieldCount, cleared)
	return nil
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

// HasMonthData reports whether there are transactions or budgets worth
// archiving.
func (e *Engine) HasMonthData() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.txs) > 0 || len(e.budgets) > 0
}

func (e *Engine) Overview() core.Overview {
	e.mu.Lock()
	defer e.mu.Unlock()
	return core.Summarize(e.accounts, e.budgets, e.txs)
}

func (e *Engine) Transaction(id string) (core.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.transactionIndex(id); i >= 0 {
		return e.txs[i], nil
	}
	return core.Transaction{}, ErrTransactionNotFound
}

func (e *Engine) Account(id string) (core.Account, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.accountIndex(id); i >= 0 {
		return e.accounts[i], nil
	}
	return core.Account{}, ErrAccountNotFound
}

func (e *Engine) Budget(id string) (core.Budget, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.budgetIndex(id); i >= 0 {
		return e.budgets[i], nil
	}
	return core.Budget{}, ErrBudgetNotFound
}

func (e *Engine) stateLocked() State {
	return State{
		Accounts:     append([]core.Account{}, e.accounts...),
		Budgets:      append([]core.Budget{}, e.budgets...),
		Transactions: append([]core.Transaction{}, e.txs...),
	}
}

// persist writes the dirty collections. Failures are logged and the
// in-memory state is kept.
func (e *Engine) persist(ctx context.Context, dirty collections) {
	if e.docs == nil {
		return
	}
	if dirty&colTransactions != 0 {
		if err := e.docs.SaveTransactions(ctx, e.txs); err != nil {
			e.persistFailed(ctx, storage.KeyTransactions, err)
		}
	}
	if dirty&colAccounts != 0 {
		if err := e.docs.SaveAccounts(ctx, e.accounts); err != nil {
			e.persistFailed(ctx, storage.KeyAccounts, err)
		}
	}
	if dirty&colBudgets != 0 {
		if err := e.docs.SaveBudgets(ctx, e.budgets); err != nil {
			e.persistFailed(ctx, storage.KeyBudgets, err)
		}
	}
}

func (e *Engine) persistFailed(ctx context.Context, key string, err error) {
	e.logger.ErrorContext(ctx, "Failed to persist ledger document",
		log.FieldOperation, log.OpPersist,
		log.FieldKey, key,
		log.FieldError, err)
}

// commandFields returns the log fields identifying what cmd targets.
func commandFields(cmd Command) []any {
	fields := []any{log.FieldCommand, cmd.commandName()}
	switch c := cmd.(type) {
	case CreateTransaction:
		fields = append(fields, log.FieldCategory, c.Input.Category, log.FieldAmountCents, c.Input.Amount.Cents)
	case EditTransaction:
		fields = append(fields, log.FieldTransactionID, c.ID, log.FieldCategory, c.Input.Category, log.FieldAmountCents, c.Input.Amount.Cents)
	case DeleteTransaction:
		fields = append(fields, log.FieldTransactionID, c.ID)
	case UpdateAccount:
		fields = append(fields, log.FieldAccountID, c.ID)
	case DeleteAccount:
		fields = append(fields, log.FieldAccountID, c.ID)
	case SetBudget:
		fields = append(fields, log.FieldCategory, c.Category, log.FieldAmountCents, c.Limit.Cents)
	case UpdateBudgetLimit:
		fields = append(fields, log.FieldBudgetID, c.ID, log.FieldAmountCents, c.Limit.Cents)
	case DeleteBudget:
		fields = append(fields, log.FieldBudgetID, c.ID)
	}
	return fields
}
