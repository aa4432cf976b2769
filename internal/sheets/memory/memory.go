package memory

import (
	"context"
	"sort"
	"sync"

	"budget/internal/core"
	ports "budget/internal/sheets"
)

// Exporter keeps exported snapshots in memory, keyed by month.
type Exporter struct {
	mu    sync.Mutex
	items map[string]core.MonthlySnapshot
}

var _ ports.SnapshotExporter = (*Exporter)(nil)

func New() *Exporter {
	return &Exporter{items: make(map[string]core.MonthlySnapshot)}
}

func (e *Exporter) ExportSnapshot(_ context.Context, snap core.MonthlySnapshot) error {
	if err := core.ValidateMonthKey(snap.Month); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.items[snap.Month] = snap.Clone()
	return nil
}

// Exported returns the months exported so far, oldest first.
func (e *Exporter) Exported() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]string, 0, len(e.items))
	for m := range e.items {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func (e *Exporter) Snapshot(month string) (core.MonthlySnapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.items[month]
	if !ok {
		return core.MonthlySnapshot{}, false
	}
	return s.Clone(), true
}
