package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Handlers serves the backend API over an in-memory store.
type Handlers struct {
	Version   string
	StartTime time.Time
	Store     *Store
	Logger    *slog.Logger
}

// Register adds all API routes to mux.
func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/health", h.handleHealth)
	mux.HandleFunc("GET /api/knowledge", h.handleListKnowledge)
	mux.HandleFunc("POST /api/knowledge", h.handleCreateKnowledge)
	mux.HandleFunc("GET /api/approvals", h.handleListApprovals)
	mux.HandleFunc("POST /api/approvals", h.handleCreateApproval)
	mux.HandleFunc("POST /api/approvals/{id}/decision", h.handleDecideApproval)
	mux.HandleFunc("GET /api/requests", h.handleListRequests)
	mux.HandleFunc("POST /api/requests", h.handleCreateRequest)
}

type apiError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, apiError{Code: status, Message: message})
}

func (h *Handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"version":        h.Version,
		"uptime_seconds": int(time.Since(h.StartTime).Seconds()),
	})
}

func (h *Handlers) handleListKnowledge(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.SearchEntries(r.URL.Query().Get("q")))
}

func (h *Handlers) handleCreateKnowledge(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	entry, err := h.Store.AddEntry(in.Title, in.Content)
	if err != nil {
		h.Logger.Error("storing entry failed", "error", err)
		writeError(w, http.StatusInternalServerError, "storing entry failed")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (h *Handlers) handleListApprovals(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.ListApprovals(r.URL.Query().Get("status")))
}

func (h *Handlers) handleCreateApproval(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Amount      *float64 `json:"amount"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	approval, err := h.Store.AddApproval(in.Title, in.Description, in.Amount)
	if err != nil {
		h.Logger.Error("storing approval failed", "error", err)
		writeError(w, http.StatusInternalServerError, "storing approval failed")
		return
	}
	writeJSON(w, http.StatusCreated, approval)
}

func (h *Handlers) handleDecideApproval(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Decision string `json:"decision"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	approval, err := h.Store.DecideApproval(r.PathValue("id"), in.Decision)
	if err != nil {
		writeError(w, http.StatusNotFound, "approval not found")
		return
	}
	writeJSON(w, http.StatusOK, approval)
}

func (h *Handlers) handleListRequests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Store.ListTickets(r.URL.Query().Get("status")))
}

func (h *Handlers) handleCreateRequest(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Priority    string `json:"priority"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	ticket, err := h.Store.AddTicket(in.Title, in.Description, in.Priority)
	if err != nil {
		h.Logger.Error("storing request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "storing request failed")
		return
	}
	writeJSON(w, http.StatusCreated, ticket)
}
