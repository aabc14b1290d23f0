package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"permsync/permission"
	"permsync/reconcile"
)

// Request/response types for JSON serialization

type CompareRequest struct {
	Left   []string `json:"left"`
	Right  string   `json:"right"`
	Filter string   `json:"filter"`
}

type CompareResponse struct {
	Rows    []permission.Row `json:"rows"`
	Message string           `json:"message,omitempty"`
}

type RowActionRequest struct {
	Row    permission.Row `json:"row"`
	Left   []string       `json:"left"`
	Right  string         `json:"right"`
	Filter string         `json:"filter"`
}

type BulkSaveRequest struct {
	Baseline []permission.Row `json:"baseline"`
	Edited   []permission.Row `json:"edited"`
	Left     []string         `json:"left"`
	Right    string           `json:"right"`
	Filter   string           `json:"filter"`
}

type SaveResponse struct {
	Applied int              `json:"applied"`
	Message string           `json:"message"`
	Rows    []permission.Row `json:"rows"`
}

// Helper functions

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, permission.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, permission.ErrConnection):
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func nonNil(rows []permission.Row) []permission.Row {
	if rows == nil {
		return []permission.Row{}
	}
	return rows
}

// Handlers

func (s *Server) handleListDomains(w http.ResponseWriter, r *http.Request) {
	domains, err := s.service.ListDomainOptions(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if domains == nil {
		domains = []string{}
	}
	writeJSON(w, http.StatusOK, domains)
}

func (s *Server) handleCompare(w http.ResponseWriter, r *http.Request) {
	var req CompareRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body: %v", permission.ErrValidation, err))
		return
	}

	rows, err := s.service.RequestComparison(r.Context(), req.Left, req.Right, req.Filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CompareResponse{Rows: nonNil(rows), Message: "Comparison completed."})
}

func (s *Server) handleRowApply(w http.ResponseWriter, r *http.Request) {
	s.handleRowAction(w, r, reconcile.ActionUpdate)
}

func (s *Server) handleRowDelete(w http.ResponseWriter, r *http.Request) {
	s.handleRowAction(w, r, reconcile.ActionDelete)
}

func (s *Server) handleRowAction(w http.ResponseWriter, r *http.Request, kind reconcile.ActionKind) {
	var req RowActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body: %v", permission.ErrValidation, err))
		return
	}

	msg, rows, err := s.service.RequestRowAction(r.Context(), kind, req.Row, req.Left, req.Right, req.Filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, CompareResponse{Rows: nonNil(rows), Message: msg})
}

func (s *Server) handleBulkSave(w http.ResponseWriter, r *http.Request) {
	var req BulkSaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: invalid request body: %v", permission.ErrValidation, err))
		return
	}

	applied, msg, rows, err := s.service.RequestBulkSave(r.Context(), req.Baseline, req.Edited, req.Left, req.Right, req.Filter)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SaveResponse{Applied: applied, Message: msg, Rows: nonNil(rows)})
}
