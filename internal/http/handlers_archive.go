package http

import (
	"net/http"

	"budget/internal/core"
)

// archiveEntry is the list view of a snapshot, without its collections.
type archiveEntry struct {
	Month             string     `json:"month"`
	MonthName         string     `json:"monthName"`
	TotalIncome       core.Money `json:"totalIncome"`
	TotalExpenses     core.Money `json:"totalExpenses"`
	TotalBalance      core.Money `json:"totalBalance"`
	BudgetUtilization float64    `json:"budgetUtilization"`
	TransactionCount  int        `json:"transactionCount"`
}

func (s *Server) handleListArchive(w http.ResponseWriter, r *http.Request) {
	snaps, err := s.archive.List(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	out := make([]archiveEntry, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, archiveEntry{
			Month:             snap.Month,
			MonthName:         snap.MonthName,
			TotalIncome:       snap.TotalIncome,
			TotalExpenses:     snap.TotalExpenses,
			TotalBalance:      snap.TotalBalance,
			BudgetUtilization: snap.BudgetUtilization,
			TransactionCount:  len(snap.Transactions),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetArchive(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	snap, err := s.archive.Get(r.Context(), month)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleDeleteArchive(w http.ResponseWriter, r *http.Request) {
	month, err := monthParam(r)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if err := s.archive.Delete(r.Context(), month); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleClearArchive(w http.ResponseWriter, r *http.Request) {
	if err := s.archive.ClearAll(r.Context()); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
