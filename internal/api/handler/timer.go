package handler

import (
	"net/http"

	"github.com/mcoot/quizbingo/internal/api/response"
	"github.com/mcoot/quizbingo/internal/services/countdown"
)

// TimerHandler handles the countdown endpoints
type TimerHandler struct {
	countdown *countdown.Service
}

// NewTimerHandler creates a new timer handler
func NewTimerHandler(countdown *countdown.Service) *TimerHandler {
	return &TimerHandler{countdown: countdown}
}

// Get handles GET /api/v1/timer
func (h *TimerHandler) Get(w http.ResponseWriter, r *http.Request) {
	response.OK(w, response.TimerFromState(h.countdown.State()))
}

// Start handles POST /api/v1/timer/start
func (h *TimerHandler) Start(w http.ResponseWriter, r *http.Request) {
	response.OK(w, response.TimerFromState(h.countdown.Start()))
}

// Stop handles POST /api/v1/timer/stop
func (h *TimerHandler) Stop(w http.ResponseWriter, r *http.Request) {
	response.OK(w, response.TimerFromState(h.countdown.Stop()))
}
