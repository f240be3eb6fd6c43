package sse

import (
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mcoot/quizbingo/internal/api/response"
	"github.com/mcoot/quizbingo/internal/model"
)

// SSE event names
const (
	EventConnected = "connected"
	EventState     = "state"
	EventTimer     = "timer"
)

// StateMessage is the payload of a state event
type StateMessage struct {
	Cause   model.EventType  `json:"cause"`
	Session response.Session `json:"session"`
}

// Broadcaster turns engine and countdown events into SSE messages
type Broadcaster struct {
	hub           *Hub
	lines         []model.Line
	timerDuration time.Duration
	logger        *slog.Logger
}

// NewBroadcaster creates a new Broadcaster. lines are the board's bingo lines,
// used to compute open reach lines for each team.
func NewBroadcaster(hub *Hub, lines []model.Line, timerDuration time.Duration, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:           hub,
		lines:         lines,
		timerDuration: timerDuration,
		logger:        logger.With(slog.String("component", "sse-broadcaster")),
	}
}

// HandleGameEvent broadcasts the session carried by an engine event
func (b *Broadcaster) HandleGameEvent(event model.Event) {
	if event.State == nil {
		return
	}
	message, err := b.StateMessage(event.Type, event.State)
	if err != nil {
		b.logger.Error("sse failed to encode state",
			slog.String("cause", string(event.Type)),
			slog.Any("error", err))
		return
	}
	b.hub.Broadcast(message)
}

// HandleTimerEvent broadcasts the countdown carried by a timer event
func (b *Broadcaster) HandleTimerEvent(event model.Event) {
	payload, ok := event.Payload.(model.TimerPayload)
	if !ok {
		return
	}
	message, err := b.TimerMessage(response.TimerFromPayload(payload, b.timerDuration))
	if err != nil {
		b.logger.Error("sse failed to encode timer", slog.Any("error", err))
		return
	}
	b.hub.Broadcast(message)
}

// StateMessage encodes a session as a state event
func (b *Broadcaster) StateMessage(cause model.EventType, session *model.Session) ([]byte, error) {
	data, err := json.Marshal(StateMessage{
		Cause:   cause,
		Session: response.SessionFromModel(session, b.lines),
	})
	if err != nil {
		return nil, err
	}
	return FormatMessage(EventState, string(data)), nil
}

// TimerMessage encodes the countdown as a timer event
func (b *Broadcaster) TimerMessage(timer response.Timer) ([]byte, error) {
	data, err := json.Marshal(timer)
	if err != nil {
		return nil, err
	}
	return FormatMessage(EventTimer, string(data)), nil
}
