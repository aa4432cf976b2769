package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"budget/internal/core"
)

// Documents reads and writes the ledger's JSON documents through a KV.
type Documents struct {
	kv KV
}

func NewDocuments(kv KV) *Documents {
	return &Documents{kv: kv}
}

func (d *Documents) LoadTransactions(ctx context.Context) ([]core.Transaction, error) {
	return loadList[core.Transaction](ctx, d.kv, KeyTransactions)
}

func (d *Documents) SaveTransactions(ctx context.Context, txs []core.Transaction) error {
	return saveList(ctx, d.kv, KeyTransactions, txs)
}

func (d *Documents) LoadAccounts(ctx context.Context) ([]core.Account, error) {
	return loadList[core.Account](ctx, d.kv, KeyAccounts)
}

func (d *Documents) SaveAccounts(ctx context.Context, accounts []core.Account) error {
	return saveList(ctx, d.kv, KeyAccounts, accounts)
}

func (d *Documents) LoadBudgets(ctx context.Context) ([]core.Budget, error) {
	return loadList[core.Budget](ctx, d.kv, KeyBudgets)
}

func (d *Documents) SaveBudgets(ctx context.Context, budgets []core.Budget) error {
	return saveList(ctx, d.kv, KeyBudgets, budgets)
}

// RemoveLedger drops the three live collections.
func (d *Documents) RemoveLedger(ctx context.Context) error {
	for _, key := range []string{KeyTransactions, KeyAccounts, KeyBudgets} {
		if err := d.kv.Remove(ctx, key); err != nil {
			return fmt.Errorf("remove %s: %w", key, err)
		}
	}
	return nil
}

func (d *Documents) LoadArchive(ctx context.Context) ([]core.MonthlySnapshot, error) {
	return loadList[core.MonthlySnapshot](ctx, d.kv, KeyMonthlyData)
}

func (d *Documents) SaveArchive(ctx context.Context, snapshots []core.MonthlySnapshot) error {
	return saveList(ctx, d.kv, KeyMonthlyData, snapshots)
}

func (d *Documents) RemoveArchive(ctx context.Context) error {
	return d.kv.Remove(ctx, KeyMonthlyData)
}

// LoadCurrentMonth returns the stored month marker and whether one exists.
func (d *Documents) LoadCurrentMonth(ctx context.Context) (string, bool, error) {
	raw, ok, err := d.kv.Get(ctx, KeyCurrentMonth)
	if err != nil || !ok {
		return "", false, err
	}
	var month string
	if err := json.Unmarshal([]byte(raw), &month); err != nil {
		// Markers written as bare text are accepted too.
		month = raw
	}
	if err := core.ValidateMonthKey(month); err != nil {
		return "", false, fmt.Errorf("decode %s: %w", KeyCurrentMonth, err)
	}
	return month, true, nil
}

func (d *Documents) SaveCurrentMonth(ctx context.Context, month string) error {
	if err := core.ValidateMonthKey(month); err != nil {
		return err
	}
	b, err := json.Marshal(month)
	if err != nil {
		return fmt.Errorf("encode %s: %w", KeyCurrentMonth, err)
	}
	return d.kv.Set(ctx, KeyCurrentMonth, string(b))
}

func loadList[T any](ctx context.Context, kv KV, key string) ([]T, error) {
	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok || raw == "" {
		return []T{}, nil
	}
	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func saveList[T any](ctx context.Context, kv KV, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return kv.Set(ctx, key, string(b))
}
