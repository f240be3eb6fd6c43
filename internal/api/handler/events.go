package handler

import (
	"log/slog"
	"net/http"

	"github.com/mcoot/quizbingo/internal/api/response"
	"github.com/mcoot/quizbingo/internal/model"
	"github.com/mcoot/quizbingo/internal/services/countdown"
	"github.com/mcoot/quizbingo/internal/services/game"
	"github.com/mcoot/quizbingo/internal/sse"
)

// EventsHandler streams session and timer changes over SSE
type EventsHandler struct {
	engine      *game.Engine
	countdown   *countdown.Service
	hub         *sse.Hub
	broadcaster *sse.Broadcaster
	logger      *slog.Logger
}

// NewEventsHandler creates a new events handler
func NewEventsHandler(
	engine *game.Engine,
	countdown *countdown.Service,
	hub *sse.Hub,
	broadcaster *sse.Broadcaster,
	logger *slog.Logger,
) *EventsHandler {
	return &EventsHandler{
		engine:      engine,
		countdown:   countdown,
		hub:         hub,
		broadcaster: broadcaster,
		logger:      logger,
	}
}

// Stream handles GET /api/v1/events
func (h *EventsHandler) Stream(w http.ResponseWriter, r *http.Request) {
	var initial [][]byte

	state, err := h.broadcaster.StateMessage(model.EventType(sse.EventConnected), h.engine.State())
	if err != nil {
		h.logger.Error("sse failed to encode initial state", slog.Any("error", err))
	} else {
		initial = append(initial, state)
	}

	timer, err := h.broadcaster.TimerMessage(response.TimerFromState(h.countdown.State()))
	if err != nil {
		h.logger.Error("sse failed to encode initial timer", slog.Any("error", err))
	} else {
		initial = append(initial, timer)
	}

	sse.ServeSSE(w, r, h.hub, initial...)
}
