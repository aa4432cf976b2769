package http

import (
	"net/http"

	"budget/internal/core"
	"budget/internal/ledger"
)

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.State())
}

func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.Overview())
}

// lookup answers with the item found by get, or 404.
func lookup[T any](w http.ResponseWriter, r *http.Request, get func(string) (T, error)) {
	item, err := get(r.PathValue("id"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	lookup(w, r, s.ledger.Transaction)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	lookup(w, r, s.ledger.Account)
}

func (s *Server) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	lookup(w, r, s.ledger.Budget)
}

// execute runs cmd and answers with created on success when the command
// made a change, 200 otherwise.
func (s *Server) execute(w http.ResponseWriter, r *http.Request, cmd ledger.Command, created bool) {
	res, err := s.ledger.Execute(r.Context(), cmd)
	if err != nil {
		writeError(w, r, err)
		return
	}
	status := http.StatusOK
	if created && res.Changed {
		status = http.StatusCreated
	}
	writeResult(w, status, res)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s.execute(w, r, ledger.CreateTransaction{Input: req.input()}, true)
}

func (s *Server) handleEditTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s.execute(w, r, ledger.EditTransaction{ID: r.PathValue("id"), Input: req.input()}, false)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	s.execute(w, r, ledger.DeleteTransaction{ID: r.PathValue("id")}, false)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s.execute(w, r, ledger.CreateAccount{Input: req.input(), OpeningBalance: core.Money(req.Balance)}, true)
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	var req accountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s.execute(w, r, ledger.UpdateAccount{ID: r.PathValue("id"), Input: req.input()}, false)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	s.execute(w, r, ledger.DeleteAccount{ID: r.PathValue("id")}, false)
}

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s.execute(w, r, ledger.SetBudget{Category: req.Category, Limit: core.Money(req.Limit)}, true)
}

func (s *Server) handleUpdateBudgetLimit(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	s.execute(w, r, ledger.UpdateBudgetLimit{ID: r.PathValue("id"), Limit: core.Money(req.Limit)}, false)
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	s.execute(w, r, ledger.DeleteBudget{ID: r.PathValue("id")}, false)
}

func (s *Server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	s.execute(w, r, ledger.ClearAll{}, false)
}
