package storage

import "context"

// Logical document keys.
const (
	KeyTransactions = "transactions"
	KeyAccounts     = "accounts"
	KeyBudgets      = "budgets"
	KeyMonthlyData  = "budget_tracker_monthly_data"
	KeyCurrentMonth = "budget_tracker_current_month"
)

// KV is a string-keyed store of serialized documents. Implementations give
// no transactional guarantees across keys.
type KV interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	// Remove deletes key. Removing a missing key is not an error.
	Remove(ctx context.Context, key string) error
}
