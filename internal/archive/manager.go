package archive

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"budget/internal/cache"
	"budget/internal/core"
	"budget/internal/log"
	"budget/internal/storage"
)

var ErrNotFound = errors.New("no archive for month")

// Manager stores monthly snapshots in a single document, most recent
// month first.
type Manager struct {
	mu     sync.Mutex
	docs   *storage.Documents
	cache  cache.Cache[core.MonthlySnapshot]
	logger *log.Logger
}

// New returns a Manager. c may be nil to disable read caching.
func New(docs *storage.Documents, c cache.Cache[core.MonthlySnapshot]) *Manager {
	return &Manager{
		docs:   docs,
		cache:  c,
		logger: log.ForComponent(log.ComponentArchive),
	}
}

// Save stores snap, replacing any snapshot for the same month.
func (m *Manager) Save(ctx context.Context, snap core.MonthlySnapshot) error {
	if err := core.ValidateMonthKey(snap.Month); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.docs.LoadArchive(ctx)
	if err != nil {
		return fmt.Errorf("load archive: %w", err)
	}
	all = slices.DeleteFunc(all, func(s core.MonthlySnapshot) bool { return s.Month == snap.Month })
	all = append(all, snap.Clone())
	sortDescending(all)

	if err := m.docs.SaveArchive(ctx, all); err != nil {
		return fmt.Errorf("save archive: %w", err)
	}
	m.invalidate(snap.Month)

	m.logger.InfoContext(ctx, "Monthly snapshot archived",
		log.FieldMonth, snap.Month,
		"transactions", len(snap.Transactions),
		log.FieldCount, len(all))
	return nil
}

// List returns every snapshot, most recent first.
func (m *Manager) List(ctx context.Context) ([]core.MonthlySnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.docs.LoadArchive(ctx)
	if err != nil {
		return nil, fmt.Errorf("load archive: %w", err)
	}
	sortDescending(all)
	return all, nil
}

// Get returns the snapshot for month or ErrNotFound.
func (m *Manager) Get(ctx context.Context, month string) (core.MonthlySnapshot, error) {
	if err := core.ValidateMonthKey(month); err != nil {
		return core.MonthlySnapshot{}, err
	}
	if m.cache != nil {
		if snap, ok := m.cache.Get(month); ok {
			return snap.Clone(), nil
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.docs.LoadArchive(ctx)
	if err != nil {
		return core.MonthlySnapshot{}, fmt.Errorf("load archive: %w", err)
	}
	for _, snap := range all {
		if snap.Month == month {
			if m.cache != nil {
				m.cache.Set(month, snap.Clone())
			}
			return snap, nil
		}
	}
	return core.MonthlySnapshot{}, fmt.Errorf("%w %s", ErrNotFound, month)
}

// Delete removes the snapshot for month. A missing month is not an error.
func (m *Manager) Delete(ctx context.Context, month string) error {
	if err := core.ValidateMonthKey(month); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	all, err := m.docs.LoadArchive(ctx)
	if err != nil {
		return fmt.Errorf("load archive: %w", err)
	}
	n := len(all)
	all = slices.DeleteFunc(all, func(s core.MonthlySnapshot) bool { return s.Month == month })
	if len(all) == n {
		return nil
	}

	if err := m.docs.SaveArchive(ctx, all); err != nil {
		return fmt.Errorf("save archive: %w", err)
	}
	m.invalidate(month)

	m.logger.InfoContext(ctx, "Monthly snapshot deleted", log.FieldMonth, month)
	return nil
}

// ClearAll empties the archive.
func (m *Manager) ClearAll(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.docs.RemoveArchive(ctx); err != nil {
		return fmt.Errorf("clear archive: %w", err)
	}
	if m.cache != nil {
		m.cache.Clear()
	}

	m.logger.InfoContext(ctx, "Archive cleared")
	return nil
}

func (m *Manager) invalidate(month string) {
	if m.cache != nil {
		m.cache.Delete(month)
	}
}

// sortDescending orders by month key; "YYYY-MM" sorts chronologically.
func sortDescending(all []core.MonthlySnapshot) {
	slices.SortStableFunc(all, func(a, b core.MonthlySnapshot) int {
		return strings.Compare(b.Month, a.Month)
	})
}
