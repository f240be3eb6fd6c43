package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventPanelSelected   EventType = "panel_selected"
	EventPresentClosed   EventType = "present_closed"
	EventAnswerSubmitted EventType = "answer_submitted"
	EventAnswerCommitted EventType = "answer_committed"
	EventReachCleared    EventType = "reach_cleared"
	EventDismissed       EventType = "announcements_dismissed"
	EventSessionReset    EventType = "session_reset"
	EventTimerTick       EventType = "timer_tick"
	EventTimerStopped    EventType = "timer_stopped"
)

// Event is emitted to listeners after every state change
type Event struct {
	Type      EventType
	Timestamp time.Time
	State     *Session // Session after the change; nil for timer events
	Payload   any      // Type-specific data
}

// AnswerCommittedPayload contains the outcome of a committed answer
type AnswerCommittedPayload struct {
	TeamID  TeamID
	PanelID PanelID
	Correct bool
	Awarded int
	Ending  Ending
}

// TimerPayload contains countdown state
type TimerPayload struct {
	Remaining time.Duration
	Running   bool
}
