package sse

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/quizbingo/internal/api/response"
	"github.com/mcoot/quizbingo/internal/model"
	"github.com/mcoot/quizbingo/internal/services/bingo"
	"github.com/mcoot/quizbingo/internal/testutil"
)

func testSession() *model.Session {
	assignment := make([]model.Quiz, 4)
	for i := range assignment {
		assignment[i] = model.Quiz{Question: "Q", Options: []string{"yes", "no"}, Answer: 1}
	}
	session := model.NewSession([]string{"Red", "Blue"}, 2, []int{10, 20}, assignment)
	session.Panels[0].Claim(0)
	session.Teams[0].Score = 10
	session.Presenting = &model.Presentation{PanelID: 3, Quiz: assignment[3]}
	return session
}

// receive waits for the next message and decodes its data line
func receive(t *testing.T, client *Client, eventName string, v any) {
	t.Helper()
	select {
	case msg := <-client.send:
		text := string(msg)
		require.True(t, strings.HasPrefix(text, "event: "+eventName+"\n"), "got %q", text)
		data := strings.TrimSuffix(strings.TrimPrefix(text, "event: "+eventName+"\ndata: "), "\n\n")
		require.NoError(t, json.Unmarshal([]byte(data), v))
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client did not receive message")
	}
}

func TestBroadcaster_HandleGameEvent(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	broadcaster := NewBroadcaster(hub, bingo.Lines(2), time.Minute, testutil.NopLogger())
	client := NewClient(hub, "10.0.0.1:5000")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	broadcaster.HandleGameEvent(model.Event{Type: model.EventPanelSelected, State: testSession()})

	var msg StateMessage
	receive(t, client, EventState, &msg)

	assert.Equal(t, model.EventPanelSelected, msg.Cause)
	assert.Equal(t, 2, msg.Session.BoardSize)
	assert.Equal(t, 10, msg.Session.Teams[0].Score)
	require.NotNil(t, msg.Session.Presenting)
	assert.Equal(t, []string{"yes", "no"}, msg.Session.Presenting.Options)
	// Team 0 needs one more panel on three lines through panel 0
	assert.Len(t, msg.Session.Teams[0].OpenReachLines, 3)
}

func TestBroadcaster_IgnoresEventsWithoutState(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	broadcaster := NewBroadcaster(hub, bingo.Lines(2), time.Minute, testutil.NopLogger())
	client := NewClient(hub, "10.0.0.1:5000")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	broadcaster.HandleGameEvent(model.Event{Type: model.EventTimerTick})

	select {
	case msg := <-client.send:
		t.Errorf("unexpected message %q", string(msg))
	case <-time.After(20 * time.Millisecond):
	}
}

func TestBroadcaster_HandleTimerEvent(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	broadcaster := NewBroadcaster(hub, bingo.Lines(2), 5*time.Minute, testutil.NopLogger())
	client := NewClient(hub, "10.0.0.1:5000")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	broadcaster.HandleTimerEvent(model.Event{
		Type:    model.EventTimerTick,
		Payload: model.TimerPayload{Remaining: 90 * time.Second, Running: true},
	})

	var timer response.Timer
	receive(t, client, EventTimer, &timer)

	assert.Equal(t, 300, timer.DurationSeconds)
	assert.Equal(t, 90, timer.RemainingSeconds)
	assert.True(t, timer.Running)
}
