package model

import "math"

// Ending describes how a concluded game finished
type Ending string

const (
	EndingNone        Ending = ""             // Game still in progress
	EndingBingo       Ending = "bingo"        // A team completed a line
	EndingAllAnswered Ending = "all_answered" // Board exhausted without a bingo
)

// Presentation is the panel/quiz pair currently shown to the team holding priority
type Presentation struct {
	PanelID PanelID `json:"panel_id"`
	Quiz    Quiz    `json:"quiz"`
}

// Reveal is a submitted answer waiting for its deferred commit
type Reveal struct {
	PanelID PanelID `json:"panel_id"`
	TeamID  TeamID  `json:"team_id"`
	Choice  int     `json:"choice"`
	Correct bool    `json:"correct"`
}

// LineAnnouncement names a team and the lines it completed (bingo) or nearly completed (reach)
type LineAnnouncement struct {
	TeamID TeamID `json:"team_id"`
	Lines  []Line `json:"lines"`
}

// Session is the complete game state: durable fields plus transient UI signals
type Session struct {
	// Durable state
	Teams       []Team  `json:"teams"`
	Panels      []Panel `json:"panels"`
	Assignment  []Quiz  `json:"-"` // Assignment[panelID] is that panel's quiz
	CurrentTeam int     `json:"current_team"`
	Concluded   bool    `json:"concluded"`
	Ending      Ending  `json:"ending,omitempty"`

	// Transient signals, never persisted
	Presenting     *Presentation     `json:"presenting,omitempty"`
	PendingReveal  *Reveal           `json:"pending_reveal,omitempty"`
	Bingo          *LineAnnouncement `json:"bingo,omitempty"`
	Reach          *LineAnnouncement `json:"reach,omitempty"`
	ReachAnnounced bool              `json:"reach_announced"`
	Dismissed      bool              `json:"dismissed"` // Ending announcement closed by the host
}

// NewSession creates a fresh session with zero scores and an unanswered board
func NewSession(teamNames []string, size int, rowPoints []int, assignment []Quiz) *Session {
	return &Session{
		Teams:      NewTeams(teamNames),
		Panels:     NewPanels(size, rowPoints),
		Assignment: assignment,
	}
}

// BoardSize returns the side length of the square board
func (s *Session) BoardSize() int {
	return int(math.Sqrt(float64(len(s.Panels))))
}

// CurrentTeamID returns the id of the team holding turn priority
func (s *Session) CurrentTeamID() TeamID {
	return s.Teams[s.CurrentTeam].ID
}

// Panel returns the panel with the given id, or nil if out of range
func (s *Session) Panel(id PanelID) *Panel {
	if id < 0 || int(id) >= len(s.Panels) {
		return nil
	}
	return &s.Panels[id]
}

// AnsweredCount returns the number of claimed panels
func (s *Session) AnsweredCount() int {
	count := 0
	for _, p := range s.Panels {
		if p.Answered {
			count++
		}
	}
	return count
}

// ClaimedPoints returns the sum of point values of panels claimed by a team
func (s *Session) ClaimedPoints(team TeamID) int {
	total := 0
	for _, p := range s.Panels {
		if p.IsClaimedBy(team) {
			total += p.Point
		}
	}
	return total
}

// Clone returns a deep copy of the session
func (s *Session) Clone() *Session {
	c := *s
	c.Teams = append([]Team(nil), s.Teams...)
	c.Panels = make([]Panel, len(s.Panels))
	for i, p := range s.Panels {
		c.Panels[i] = p
		if p.ClaimedBy != nil {
			id := *p.ClaimedBy
			c.Panels[i].ClaimedBy = &id
		}
	}
	c.Assignment = make([]Quiz, len(s.Assignment))
	for i, q := range s.Assignment {
		c.Assignment[i] = cloneQuiz(q)
	}
	if s.Presenting != nil {
		p := *s.Presenting
		p.Quiz = cloneQuiz(p.Quiz)
		c.Presenting = &p
	}
	if s.PendingReveal != nil {
		r := *s.PendingReveal
		c.PendingReveal = &r
	}
	c.Bingo = s.Bingo.clone()
	c.Reach = s.Reach.clone()
	return &c
}

func (a *LineAnnouncement) clone() *LineAnnouncement {
	if a == nil {
		return nil
	}
	lines := make([]Line, len(a.Lines))
	for i, l := range a.Lines {
		lines[i] = append(Line(nil), l...)
	}
	return &LineAnnouncement{TeamID: a.TeamID, Lines: lines}
}

func cloneQuiz(q Quiz) Quiz {
	q.Options = append([]string(nil), q.Options...)
	return q
}

// Validate checks the durable invariants of the session
func (s *Session) Validate() error {
	size := s.BoardSize()
	if size == 0 || size*size != len(s.Panels) {
		return ErrInvalidBoardSize
	}
	if len(s.Teams) == 0 {
		return ErrNoTeams
	}
	if s.CurrentTeam < 0 || s.CurrentTeam >= len(s.Teams) {
		return ErrMalformedSnapshot
	}
	if len(s.Assignment) != len(s.Panels) {
		return ErrMalformedSnapshot
	}
	for i, t := range s.Teams {
		if t.ID != TeamID(i) || t.Score < 0 {
			return ErrMalformedSnapshot
		}
	}
	for i, p := range s.Panels {
		if p.ID != PanelID(i) {
			return ErrMalformedSnapshot
		}
		if p.Answered != (p.ClaimedBy != nil) {
			return ErrMalformedSnapshot
		}
		if p.ClaimedBy != nil && (*p.ClaimedBy < 0 || int(*p.ClaimedBy) >= len(s.Teams)) {
			return ErrMalformedSnapshot
		}
	}
	for _, q := range s.Assignment {
		if err := q.Validate(); err != nil {
			return ErrMalformedSnapshot
		}
	}
	return nil
}
