package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/quizbingo/internal/api"
	"github.com/mcoot/quizbingo/internal/api/response"
	"github.com/mcoot/quizbingo/internal/factory"
	"github.com/mcoot/quizbingo/internal/model"
	"github.com/mcoot/quizbingo/internal/sse"
	"github.com/mcoot/quizbingo/internal/testutil"
)

type CLISuite struct {
	suite.Suite
	app       *factory.TestApp
	server    *httptest.Server
	tokenFile string
}

func TestCLISuite(t *testing.T) {
	suite.Run(t, new(CLISuite))
}

func (s *CLISuite) SetupTest() {
	ctx := context.Background()

	app, err := factory.NewTestApp(factory.WithHostPassword("secret"))
	s.Require().NoError(err)
	s.Require().NoError(app.SaveTestQuizzes(ctx, 30))
	s.Require().NoError(app.Init(ctx, ""))
	s.app = app

	s.server = httptest.NewServer(api.NewRouter(api.RouterConfig{
		Logger:      testutil.NopLogger(),
		StorageType: app.StorageType,
		Engine:      app.Engine,
		Countdown:   app.Countdown,
		QuizBank:    app.QuizBank,
		HostService: app.HostService,
		Hub:         app.Hub,
		Broadcaster: app.Broadcaster,
	}))
	s.tokenFile = filepath.Join(s.T().TempDir(), "token")
}

func (s *CLISuite) TearDownTest() {
	s.server.Close()
	s.NoError(s.app.Close())
}

// run executes the CLI in-process and returns everything it printed
func (s *CLISuite) run(args ...string) (string, error) {
	var buf bytes.Buffer

	root := NewRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append([]string{
		"--server", s.server.URL,
		"--token-file", s.tokenFile,
		"--token", "",
	}, args...))

	err := root.Execute()
	return buf.String(), err
}

func (s *CLISuite) runJSON(result any, args ...string) {
	output, err := s.run(append([]string{"--output", "json"}, args...)...)
	s.Require().NoError(err, "output: %s", output)
	s.Require().NoError(json.Unmarshal([]byte(output), result), "output: %s", output)
}

func (s *CLISuite) TestHealth() {
	var result response.Health
	s.runJSON(&result, "health")

	s.Equal("ok", result.Status)
	s.Equal(30, result.Quizzes)
}

func (s *CLISuite) TestSessionGetText() {
	output, err := s.run("session", "get")
	s.Require().NoError(err)

	s.Contains(output, "Board 5x5, 0/25 answered")
	s.Contains(output, "> [1] Team A: 0 points")
	// Unanswered panels show their points, bottom row is worth 100
	s.Contains(output, "100")
}

func (s *CLISuite) TestSelectAnswerAndCommit() {
	var selected response.ActionResponse
	s.runJSON(&selected, "session", "select", "7")
	s.True(selected.Applied)
	s.Require().NotNil(selected.Session.Presenting)
	s.Equal(7, selected.Session.Presenting.PanelID)

	var answered response.ActionResponse
	s.runJSON(&answered, "session", "answer", "0")
	s.True(answered.Applied)
	s.Require().NotNil(answered.Session.Reveal)
	s.True(answered.Session.Reveal.Correct)

	s.app.MockScheduler.Advance(time.Second)

	var state response.Session
	s.runJSON(&state, "session", "get")
	s.Equal(1, state.AnsweredCount)
	s.Equal(20, state.Teams[0].Score)
	s.Equal(1, state.CurrentTeam)
	s.Require().NotNil(state.Panels[7].ClaimedBy)
	s.Equal(0, *state.Panels[7].ClaimedBy)
}

func (s *CLISuite) TestInvalidActionIsReported() {
	output, err := s.run("session", "close")
	s.Require().NoError(err)

	s.Contains(output, "Nothing changed")
}

func (s *CLISuite) TestSelectRejectsBadPanel() {
	_, err := s.run("session", "select", "abc")

	s.Error(err)
}

func (s *CLISuite) TestResetNeedsHostLogin() {
	_, err := s.run("session", "reset")
	var apiErr *APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal(http.StatusUnauthorized, apiErr.Status)
	s.Equal("UNAUTHORIZED", apiErr.Code)

	var login response.HostSession
	s.runJSON(&login, "host", "login", "--password", "secret")
	s.True(strings.HasPrefix(login.Token, "host_"))

	// The saved token is picked up by later commands
	var reset response.ActionResponse
	s.runJSON(&reset, "session", "reset")
	s.True(reset.Applied)

	var msg response.Message
	s.runJSON(&msg, "host", "logout")
	s.Zero(s.app.HostService.SessionCount())

	_, err = s.run("session", "reset")
	s.Error(err)
}

func (s *CLISuite) TestHostLoginWrongPassword() {
	_, err := s.run("host", "login", "--password", "nope")

	var apiErr *APIError
	s.Require().True(errors.As(err, &apiErr))
	s.Equal("INVALID_PASSWORD", apiErr.Code)
}

func (s *CLISuite) TestTimer() {
	var timer response.Timer
	s.runJSON(&timer, "timer", "start")
	s.True(timer.Running)
	s.Equal(60, timer.RemainingSeconds)

	s.app.MockScheduler.Advance(5 * time.Second)

	output, err := s.run("timer", "stop")
	s.Require().NoError(err)
	s.Contains(output, "Timer: 00:55 (stopped)")
}

func (s *CLISuite) TestReadEvents() {
	stream := string(sse.FormatMessage(sse.EventTimer, `{"running":true}`)) +
		": ping\n\n" +
		string(sse.FormatMessage(sse.EventState, "line one\nline two"))

	var events, data []string
	err := readEvents(strings.NewReader(stream), func(event, d string) {
		events = append(events, event)
		data = append(data, d)
	})

	s.Require().NoError(err)
	s.Equal([]string{sse.EventTimer, sse.EventState}, events)
	s.Equal("line one\nline two", data[1])
}

func (s *CLISuite) TestSummarizeStateEvent() {
	msg, err := json.Marshal(sse.StateMessage{
		Cause: model.EventAnswerCommitted,
		Session: response.Session{
			Panels:        make([]response.Panel, 25),
			AnsweredCount: 9,
			Bingo:         &response.Announcement{TeamName: "Team C"},
		},
	})
	s.Require().NoError(err)

	summary := summarizeEvent(sse.EventState, string(msg))

	s.Equal(string(model.EventAnswerCommitted)+", 9/25 answered, bingo by Team C", summary)
}
