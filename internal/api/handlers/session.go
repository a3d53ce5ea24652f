package handlers

import (
	"encoding/json"
	"net/http"

	"portfolio-tracker/internal/api/request"
	"portfolio-tracker/internal/api/response"
	"portfolio-tracker/internal/session"
	"portfolio-tracker/internal/validation"
)

// SessionHandler handles the session preference endpoints.
type SessionHandler struct {
	sessions *session.Manager
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions *session.Manager) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

// SetCurrency handles POST requests selecting the display currency.
//
// Endpoint: POST /api/session/currency
// Response: 200 OK with the updated session
// Error: 400 if the symbol is not in the fixed set
func (h *SessionHandler) SetCurrency(w http.ResponseWriter, r *http.Request) {
	var req request.CurrencyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCurrency(req); err != nil {
		respondServiceError(w, err)
		return
	}

	sess := h.sessions.Load(r)
	sess.Currency = req.Currency
	if err := h.sessions.Save(w, sess); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to save session", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, sess)
}

// Select handles POST requests choosing the holding for the news panel.
// An empty ticker clears the selection.
//
// Endpoint: POST /api/session/select
// Response: 200 OK with the updated session
func (h *SessionHandler) Select(w http.ResponseWriter, r *http.Request) {
	var req request.SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if req.Ticker != "" {
		if err := validation.ValidateTicker(req.Ticker); err != nil {
			respondServiceError(w, err)
			return
		}
	}

	sess := h.sessions.Load(r)
	sess.Selected = req.Ticker
	if err := h.sessions.Save(w, sess); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to save session", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, sess)
}
