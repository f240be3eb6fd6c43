package handler

import (
	"encoding/json"
	"net/http"

	"github.com/mcoot/quizbingo/internal/api/apierr"
	"github.com/mcoot/quizbingo/internal/api/middleware"
	"github.com/mcoot/quizbingo/internal/api/request"
	"github.com/mcoot/quizbingo/internal/api/response"
	"github.com/mcoot/quizbingo/internal/services/host"
)

// HostHandler handles host login
type HostHandler struct {
	host *host.Service
}

// NewHostHandler creates a new host handler
func NewHostHandler(host *host.Service) *HostHandler {
	return &HostHandler{host: host}
}

// Login handles POST /api/v1/host/login
func (h *HostHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !h.host.Enabled() {
		WriteError(w, apierr.NewHostAuthDisabledError())
		return
	}

	var req request.HostLoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("Invalid request body"))
		return
	}

	session, err := h.host.Login(req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.HostCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	response.OK(w, response.HostSessionFromModel(session))
}

// Logout handles POST /api/v1/host/logout
func (h *HostHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.HostCredential(r); token != "" {
		h.host.Logout(token)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.HostCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	response.OK(w, response.Message{Message: "Logged out"})
}
