package response

import (
	"time"

	"github.com/mcoot/quizbingo/internal/model"
	"github.com/mcoot/quizbingo/internal/services/bingo"
	"github.com/mcoot/quizbingo/internal/services/countdown"
	"github.com/mcoot/quizbingo/internal/services/host"
)

// Team represents a team in API responses
type Team struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	// OpenReachLines are lines one panel short of a bingo that the team can still complete
	OpenReachLines [][]int `json:"open_reach_lines,omitempty"`
}

// Panel represents a board panel
type Panel struct {
	ID        int  `json:"id"`
	Row       int  `json:"row"`
	Col       int  `json:"col"`
	Point     int  `json:"point"`
	Answered  bool `json:"answered"`
	ClaimedBy *int `json:"claimed_by,omitempty"`
}

// Presentation is the quiz shown to the current team. The answer is withheld.
type Presentation struct {
	PanelID  int      `json:"panel_id"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// Reveal is a submitted answer during its reveal delay
type Reveal struct {
	PanelID int  `json:"panel_id"`
	TeamID  int  `json:"team_id"`
	Choice  int  `json:"choice"`
	Correct bool `json:"correct"`
	Answer  int  `json:"answer"`
}

// Announcement is a bingo or reach announcement
type Announcement struct {
	TeamID   int     `json:"team_id"`
	TeamName string  `json:"team_name"`
	Lines    [][]int `json:"lines"`
}

// Session is the full game state as clients see it
type Session struct {
	BoardSize     int           `json:"board_size"`
	Teams         []Team        `json:"teams"`
	Panels        []Panel       `json:"panels"`
	CurrentTeam   int           `json:"current_team"`
	AnsweredCount int           `json:"answered_count"`
	Concluded     bool          `json:"concluded"`
	Ending        string        `json:"ending,omitempty"`
	Dismissed     bool          `json:"dismissed"`
	Presenting    *Presentation `json:"presenting,omitempty"`
	Reveal        *Reveal       `json:"reveal,omitempty"`
	Bingo         *Announcement `json:"bingo,omitempty"`
	Reach         *Announcement `json:"reach,omitempty"`
}

// SessionFromModel converts a model.Session, computing open reach lines over the given lines
func SessionFromModel(s *model.Session, lines []model.Line) Session {
	size := s.BoardSize()
	resp := Session{
		BoardSize:     size,
		Teams:         make([]Team, len(s.Teams)),
		Panels:        make([]Panel, len(s.Panels)),
		CurrentTeam:   s.CurrentTeam,
		AnsweredCount: s.AnsweredCount(),
		Concluded:     s.Concluded,
		Ending:        string(s.Ending),
		Dismissed:     s.Dismissed,
	}

	for i, t := range s.Teams {
		resp.Teams[i] = Team{
			ID:             int(t.ID),
			Name:           t.Name,
			Score:          t.Score,
			OpenReachLines: linesToInts(bingo.OpenReachLines(s.Panels, t.ID, lines)),
		}
	}

	for i, p := range s.Panels {
		panel := Panel{
			ID:       int(p.ID),
			Row:      p.Row(size),
			Col:      p.Col(size),
			Point:    p.Point,
			Answered: p.Answered,
		}
		if p.ClaimedBy != nil {
			team := int(*p.ClaimedBy)
			panel.ClaimedBy = &team
		}
		resp.Panels[i] = panel
	}

	if s.Presenting != nil {
		resp.Presenting = &Presentation{
			PanelID:  int(s.Presenting.PanelID),
			Question: s.Presenting.Quiz.Question,
			Options:  append([]string(nil), s.Presenting.Quiz.Options...),
		}
	}

	if s.PendingReveal != nil && s.Presenting != nil {
		resp.Reveal = &Reveal{
			PanelID: int(s.PendingReveal.PanelID),
			TeamID:  int(s.PendingReveal.TeamID),
			Choice:  s.PendingReveal.Choice,
			Correct: s.PendingReveal.Correct,
			Answer:  s.Presenting.Quiz.Answer,
		}
	}

	resp.Bingo = announcementFromModel(s, s.Bingo)
	resp.Reach = announcementFromModel(s, s.Reach)

	return resp
}

func announcementFromModel(s *model.Session, a *model.LineAnnouncement) *Announcement {
	if a == nil {
		return nil
	}
	name := ""
	if int(a.TeamID) < len(s.Teams) {
		name = s.Teams[a.TeamID].Name
	}
	return &Announcement{
		TeamID:   int(a.TeamID),
		TeamName: name,
		Lines:    linesToInts(a.Lines),
	}
}

func linesToInts(lines []model.Line) [][]int {
	if len(lines) == 0 {
		return nil
	}
	result := make([][]int, len(lines))
	for i, line := range lines {
		ids := make([]int, len(line))
		for j, id := range line {
			ids[j] = int(id)
		}
		result[i] = ids
	}
	return result
}

// ActionResponse is returned by every session action. Applied is false when
// the action was not valid in the current state and nothing changed.
type ActionResponse struct {
	Applied bool    `json:"applied"`
	Session Session `json:"session"`
}

// Timer represents the countdown
type Timer struct {
	DurationSeconds  int  `json:"duration_seconds"`
	RemainingSeconds int  `json:"remaining_seconds"`
	Running          bool `json:"running"`
}

// TimerFromState converts countdown state
func TimerFromState(s countdown.State) Timer {
	return Timer{
		DurationSeconds:  int(s.Duration / time.Second),
		RemainingSeconds: int(s.Remaining / time.Second),
		Running:          s.Running,
	}
}

// TimerFromPayload converts a timer event payload
func TimerFromPayload(p model.TimerPayload, duration time.Duration) Timer {
	return TimerFromState(countdown.State{Duration: duration, Remaining: p.Remaining, Running: p.Running})
}

// HostSession is returned by host login
type HostSession struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// HostSessionFromModel converts a host.Session
func HostSessionFromModel(s *host.Session) HostSession {
	return HostSession{
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
	}
}

// Health is the health check response
type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage,omitempty"`
	Quizzes int    `json:"quizzes"`
}

// Message is a plain acknowledgement
type Message struct {
	Message string `json:"message"`
}
