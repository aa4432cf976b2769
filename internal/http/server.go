package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"budget/internal/core"
	"budget/internal/ledger"
	"budget/internal/log"
	"budget/internal/middleware/security"
	"budget/internal/middleware/trace"
	"budget/internal/rollover"
)

type (
	Ledger interface {
		Execute(ctx context.Context, cmd ledger.Command) (ledger.Result, error)
		State() ledger.State
		Overview() core.Overview
		Transaction(id string) (core.Transaction, error)
		Account(id string) (core.Account, error)
		Budget(id string) (core.Budget, error)
	}

	Rollover interface {
		Check(ctx context.Context) (rollover.Status, error)
		Confirm(ctx context.Context) (core.MonthlySnapshot, error)
		Dismiss(ctx context.Context) (rollover.Status, error)
		Status() rollover.Status
	}

	Archive interface {
		List(ctx context.Context) ([]core.MonthlySnapshot, error)
		Get(ctx context.Context, month string) (core.MonthlySnapshot, error)
		Delete(ctx context.Context, month string) error
		ClearAll(ctx context.Context) error
	}

	// ReadyCheck reports whether a dependency can serve traffic.
	ReadyCheck func(ctx context.Context) error
)

type Server struct {
	http.Server
	ledger   Ledger
	rollover Rollover
	archive  Archive
	ready    ReadyCheck
	trace    *trace.Middleware
	logger   *log.Logger

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run
// server. ready may be nil.
func NewServer(addr string, l Ledger, r Rollover, a Archive, ready ReadyCheck) *Server {
	mux := http.NewServeMux()
	logger := log.ForComponent(log.ComponentHTTP)

	s := &Server{
		ledger:   l,
		rollover: r,
		archive:  a,
		ready:    ready,
		trace:    trace.NewMiddleware(logger, extractClientIP),
		logger:   logger,
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/overview", s.handleOverview)
	mux.HandleFunc("DELETE /api/ledger", s.handleClearAll)

	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /api/transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleEditTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("POST /api/accounts", s.handleCreateAccount)
	mux.HandleFunc("GET /api/accounts/{id}", s.handleGetAccount)
	mux.HandleFunc("PUT /api/accounts/{id}", s.handleUpdateAccount)
	mux.HandleFunc("DELETE /api/accounts/{id}", s.handleDeleteAccount)

	mux.HandleFunc("POST /api/budgets", s.handleSetBudget)
	mux.HandleFunc("GET /api/budgets/{id}", s.handleGetBudget)
	mux.HandleFunc("PUT /api/budgets/{id}", s.handleUpdateBudgetLimit)
	mux.HandleFunc("DELETE /api/budgets/{id}", s.handleDeleteBudget)

	mux.HandleFunc("GET /api/rollover", s.handleRolloverStatus)
	mux.HandleFunc("POST /api/rollover/check", s.handleRolloverCheck)
	mux.HandleFunc("POST /api/rollover/confirm", s.handleRolloverConfirm)
	mux.HandleFunc("POST /api/rollover/dismiss", s.handleRolloverDismiss)

	mux.HandleFunc("GET /api/archive", s.handleListArchive)
	mux.HandleFunc("DELETE /api/archive", s.handleClearArchive)
	mux.HandleFunc("GET /api/archive/{month}", s.handleGetArchive)
	mux.HandleFunc("DELETE /api/archive/{month}", s.handleDeleteArchive)

	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())
	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.trace.Middleware(headers.Middleware(mux)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.InfoContext(ctx, "HTTP server listening", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		metrics := s.trace.GetMetrics()
		s.logger.InfoContext(ctx, "HTTP server shutting down",
			log.FieldOperation, log.OpShutdown,
			"total_requests", metrics.TotalRequests,
			"server_errors", metrics.ServerErrors)
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.ready != nil {
		if err := s.ready(r.Context()); err != nil {
			s.logger.WarnContext(r.Context(), "Readiness check failed", log.FieldError, err)
			http.Error(w, "not ready", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
