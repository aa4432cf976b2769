package http

import "net/http"

func (s *Server) handleRolloverStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.rollover.Status())
}

func (s *Server) handleRolloverCheck(w http.ResponseWriter, r *http.Request) {
	status, err := s.rollover.Check(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleRolloverConfirm(w http.ResponseWriter, r *http.Request) {
	snap, err := s.rollover.Confirm(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (s *Server) handleRolloverDismiss(w http.ResponseWriter, r *http.Request) {
	status, err := s.rollover.Dismiss(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, status)
}
