package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/quizbingo/internal/api/request"
	"github.com/mcoot/quizbingo/internal/api/response"
	"github.com/mcoot/quizbingo/internal/model"
	"github.com/mcoot/quizbingo/internal/services/game"
)

// SessionHandler handles the game session endpoints
type SessionHandler struct {
	engine *game.Engine
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(engine *game.Engine) *SessionHandler {
	return &SessionHandler{engine: engine}
}

// Get handles GET /api/v1/session
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.OK(w, response.SessionFromModel(h.engine.State(), h.engine.Lines()))
}

// Select handles POST /api/v1/session/panels/{id}/select
func (h *SessionHandler) Select(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, NewInvalidRequestError("Panel id must be a number"))
		return
	}

	state, applied := h.engine.SelectPanel(r.Context(), model.PanelID(id))
	h.writeAction(w, state, applied)
}

// Answer handles POST /api/v1/session/answer
func (h *SessionHandler) Answer(w http.ResponseWriter, r *http.Request) {
	var req request.AnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}
	if req.Choice == nil {
		WriteError(w, NewInvalidRequestError("choice is required"))
		return
	}

	state, applied := h.engine.SubmitAnswer(r.Context(), *req.Choice)
	h.writeAction(w, state, applied)
}

// Close handles POST /api/v1/session/close
func (h *SessionHandler) Close(w http.ResponseWriter, r *http.Request) {
	state, applied := h.engine.Close(r.Context())
	h.writeAction(w, state, applied)
}

// Dismiss handles POST /api/v1/session/dismiss
func (h *SessionHandler) Dismiss(w http.ResponseWriter, r *http.Request) {
	state, applied := h.engine.Dismiss(r.Context())
	h.writeAction(w, state, applied)
}

// Reset handles POST /api/v1/session/reset
func (h *SessionHandler) Reset(w http.ResponseWriter, r *http.Request) {
	state, err := h.engine.Reset(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}
	h.writeAction(w, state, true)
}

func (h *SessionHandler) writeAction(w http.ResponseWriter, state *model.Session, applied bool) {
	response.OK(w, response.ActionResponse{
		Applied: applied,
		Session: response.SessionFromModel(state, h.engine.Lines()),
	})
}
