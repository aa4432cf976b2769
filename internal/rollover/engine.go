package rollover

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"budget/internal/core"
	"budget/internal/ledger"
	"budget/internal/log"
	"budget/internal/storage"
)

var ErrNoPendingRollover = errors.New("no rollover pending")

type State int

const (
	// Current means the stored month marker matches the calendar month.
	Current State = iota
	// Pending means the month has changed and a snapshot awaits
	// confirmation.
	Pending
)

func (s State) String() string {
	switch s {
	case Current:
		return "current"
	case Pending:
		return "pending"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Archiver persists a confirmed snapshot.
type Archiver interface {
	Save(ctx context.Context, snap core.MonthlySnapshot) error
}

// Notifier announces a confirmed rollover to other processes.
type Notifier interface {
	PublishSnapshotArchived(ctx context.Context, month string, archivedAt time.Time) error
}

// Status describes the rollover state machine for display.
type Status struct {
	State        State                 `json:"state"`
	StoredMonth  string                `json:"storedMonth"`
	CurrentMonth string                `json:"currentMonth"`
	Pending      *core.MonthlySnapshot `json:"pending,omitempty"`
}

type Option func(*Engine)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithNotifier(n Notifier) Option {
	return func(e *Engine) { e.notifier = n }
}

// Engine decides when the ledger crosses into a new calendar month and
// performs the archive-and-reset once the user confirms.
type Engine struct {
	mu          sync.Mutex
	ledger      *ledger.Engine
	archive     Archiver
	docs        *storage.Documents
	notifier    Notifier
	now         func() time.Time
	logger      *log.Logger
	state       State
	storedMonth string
	pending     *core.MonthlySnapshot
}

func New(l *ledger.Engine, archive Archiver, docs *storage.Documents, opts ...Option) *Engine {
	e := &Engine{
		ledger:  l,
		archive: archive,
		docs:    docs,
		now:     time.Now,
		logger:  log.ForComponent(log.ComponentRollover),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Check compares the stored month marker with the calendar month.
func (e *Engine) Check(ctx context.Context) (Status, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	current := core.MonthKey(e.now())
	stored, ok, err := e.docs.LoadCurrentMonth(ctx)
	if err != nil {
		return e.statusLocked(current), fmt.Errorf("read month marker: %w", err)
	}

	switch {
	case !ok:
		e.logger.InfoContext(ctx, "No month marker, starting tracking", log.FieldMonth, current)
		e.advanceLocked(ctx, current)
	case stored == current:
		e.setCurrentLocked(stored)
	case stored > current:
		// Clock went backwards; keep the marker until the calendar catches up.
		e.logger.WarnContext(ctx, "Month marker is ahead of the clock, skipping rollover",
			log.FieldMonth, stored,
			"current_month", current)
		e.setCurrentLocked(stored)
	case e.ledger.HasMonthData():
		st := e.ledger.State()
		snap := core.NewSnapshot(stored, st.Accounts, st.Budgets, st.Transactions, e.now())
		e.state = Pending
		e.storedMonth = stored
		e.pending = &snap
		e.logger.InfoContext(ctx, "Month changed, rollover pending confirmation",
			log.FieldMonth, stored,
			"current_month", current,
			"transactions", len(st.Transactions),
			"budgets", len(st.Budgets))
	default:
		e.logger.InfoContext(ctx, "Month changed with nothing to archive",
			log.FieldMonth, stored,
			"current_month", current)
		e.advanceLocked(ctx, current)
	}
	return e.statusLocked(current), nil
}

// Confirm archives the outgoing month, advances the month marker and resets
// the ledger for the new one. If the archive or the marker cannot be saved
// nothing is reset and the rollover stays pending.
func (e *Engine) Confirm(ctx context.Context) (core.MonthlySnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Pending {
		return core.MonthlySnapshot{}, ErrNoPendingRollover
	}

	outgoing := e.storedMonth
	archivedAt := e.now()
	current := core.MonthKey(archivedAt)
	var snap core.MonthlySnapshot
	err := e.ledger.ResetMonth(ctx, func(st ledger.State) error {
		snap = core.NewSnapshot(outgoing, st.Accounts, st.Budgets, st.Transactions, archivedAt)
		if err := e.archive.Save(ctx, snap); err != nil {
			return fmt.Errorf("archive %s: %w", outgoing, err)
		}
		// Marker before reset: a cleared ledger under the old marker would be
		// archived again, empty, over this snapshot.
		if err := e.docs.SaveCurrentMonth(ctx, current); err != nil {
			return fmt.Errorf("store month marker %s: %w", current, err)
		}
		return nil
	})
	if err != nil {
		e.logger.ErrorContext(ctx, "Rollover aborted",
			log.FieldOperation, log.OpConfirm,
			log.FieldMonth, outgoing,
			log.FieldError, err)
		return core.MonthlySnapshot{}, err
	}

	e.setCurrentLocked(current)
	e.logger.InfoContext(ctx, "Monthly rollover completed",
		log.FieldMonth, outgoing,
		"current_month", current,
		"transactions", len(snap.Transactions))

	e.notify(ctx, snap)
	return snap, nil
}

// Dismiss defers a pending rollover. The marker is left alone so the next
// Check prompts again.
func (e *Engine) Dismiss(ctx context.Context) (Status, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != Pending {
		return e.statusLocked(core.MonthKey(e.now())), ErrNoPendingRollover
	}
	e.logger.InfoContext(ctx, "Rollover dismissed", log.FieldOperation, log.OpDismiss, log.FieldMonth, e.storedMonth)
	return e.statusLocked(core.MonthKey(e.now())), nil
}

func (e *Engine) Status() Status {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.statusLocked(core.MonthKey(e.now()))
}

// Pending returns the candidate snapshot while a rollover awaits
// confirmation.
func (e *Engine) Pending() (core.MonthlySnapshot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.pending == nil {
		return core.MonthlySnapshot{}, false
	}
	return e.pending.Clone(), true
}

func (e *Engine) advanceLocked(ctx context.Context, month string) {
	if err := e.docs.SaveCurrentMonth(ctx, month); err != nil {
		e.logger.ErrorContext(ctx, "Failed to store month marker",
			log.FieldOperation, log.OpPersist,
			log.FieldMonth, month,
			log.FieldError, err)
	}
	e.setCurrentLocked(month)
}

func (e *Engine) setCurrentLocked(month string) {
	e.state = Current
	e.storedMonth = month
	e.pending = nil
}

func (e *Engine) notify(ctx context.Context, snap core.MonthlySnapshot) {
	if e.notifier == nil {
		e.logger.WarnContext(ctx, "Event publisher not available, skipping archive notification", log.FieldMonth, snap.Month)
		return
	}
	if err := e.notifier.PublishSnapshotArchived(ctx, snap.Month, snap.ArchivedAt); err != nil {
		e.logger.ErrorContext(ctx, "Failed to publish archive notification",
			log.FieldMonth, snap.Month,
			log.FieldError, err)
	}
}

func (e *Engine) statusLocked(current string) Status {
	s := Status{
		State:        e.state,
		StoredMonth:  e.storedMonth,
		CurrentMonth: current,
	}
	if e.pending != nil {
		p := e.pending.Clone()
		s.Pending = &p
	}
	return s
}
