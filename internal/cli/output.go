package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mcoot/quizbingo/internal/api/response"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter writing to w
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(response.Message{Message: msg})
	} else {
		o.printf("%s\n", msg)
	}
}

func (o *Output) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(o.w, format, args...)
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case response.Session:
		o.printSession(v)
	case response.ActionResponse:
		o.printAction(v)
	case response.Timer:
		o.printTimer(v)
	case response.HostSession:
		o.printHostSession(v)
	case response.Health:
		o.printHealth(v)
	case response.Message:
		o.printf("%s\n", v.Message)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

func (o *Output) printAction(a response.ActionResponse) {
	if !a.Applied {
		o.printf("Nothing changed: the action is not valid right now\n\n")
	}
	o.printSession(a.Session)
}

func (o *Output) printSession(s response.Session) {
	o.printf("Board %dx%d, %d/%d answered\n\n", s.BoardSize, s.BoardSize, s.AnsweredCount, len(s.Panels))
	o.printBoard(s)

	o.printf("\nTeams:\n")
	for _, t := range s.Teams {
		marker := " "
		if t.ID == s.CurrentTeam && !s.Concluded {
			marker = ">"
		}
		o.printf(" %s %s %s: %d points", marker, teamLabel(t.ID), t.Name, t.Score)
		if len(t.OpenReachLines) > 0 {
			o.printf(" (%d open reach)", len(t.OpenReachLines))
		}
		o.printf("\n")
	}

	if s.Presenting != nil {
		o.printf("\nPanel %d:\n  %s\n", s.Presenting.PanelID, s.Presenting.Question)
		for i, opt := range s.Presenting.Options {
			o.printf("  %d) %s\n", i, opt)
		}
	}

	if s.Reveal != nil {
		verdict := "wrong"
		if s.Reveal.Correct {
			verdict = "correct"
		}
		o.printf("\n%s answered %d: %s (answer %d)\n",
			teamName(s, s.Reveal.TeamID), s.Reveal.Choice, verdict, s.Reveal.Answer)
	}

	if s.Bingo != nil {
		o.printf("\nBINGO! %s completed %s\n", s.Bingo.TeamName, formatLines(s.Bingo.Lines))
	}
	if s.Reach != nil {
		o.printf("\nREACH! %s is one away on %s\n", s.Reach.TeamName, formatLines(s.Reach.Lines))
	}

	if s.Concluded {
		o.printf("\nGame over (%s)", s.Ending)
		if s.Dismissed {
			o.printf(", dismissed")
		}
		o.printf("\n")
	}
}

// printBoard draws the grid. Unanswered cells show their points, claimed
// cells the claiming team and answered unclaimed cells a dash.
func (o *Output) printBoard(s response.Session) {
	size := s.BoardSize
	if size == 0 || len(s.Panels) != size*size {
		return
	}

	presenting := -1
	if s.Presenting != nil {
		presenting = s.Presenting.PanelID
	}

	o.printf("   ")
	for col := 0; col < size; col++ {
		o.printf("%6d", col)
	}
	o.printf("\n   +%s+\n", strings.Repeat("-", size*6))

	for row := 0; row < size; row++ {
		o.printf("%2d |", row)
		for col := 0; col < size; col++ {
			p := s.Panels[row*size+col]
			var cell string
			switch {
			case p.ClaimedBy != nil:
				cell = teamLabel(*p.ClaimedBy)
			case p.Answered:
				cell = "-"
			default:
				cell = strconv.Itoa(p.Point)
			}
			if p.ID == presenting {
				cell = "*" + cell
			}
			o.printf("%6s", cell)
		}
		o.printf("|\n")
	}

	o.printf("   +%s+\n", strings.Repeat("-", size*6))
}

func (o *Output) printTimer(t response.Timer) {
	state := "stopped"
	if t.Running {
		state = "running"
	}
	o.printf("Timer: %s (%s)\n", formatSeconds(t.RemainingSeconds), state)
}

func (o *Output) printHostSession(h response.HostSession) {
	o.printf("Logged in as host until %s\n", h.ExpiresAt.Format("2006-01-02 15:04:05"))
}

func (o *Output) printHealth(h response.Health) {
	o.printf("Status: %s\n", h.Status)
	if h.Storage != "" {
		o.printf("Storage: %s\n", h.Storage)
	}
	o.printf("Quizzes: %d\n", h.Quizzes)
}

func teamLabel(id int) string {
	return "[" + strconv.Itoa(id+1) + "]"
}

func teamName(s response.Session, id int) string {
	for _, t := range s.Teams {
		if t.ID == id {
			return t.Name
		}
	}
	return teamLabel(id)
}

func formatLines(lines [][]int) string {
	parts := make([]string, len(lines))
	for i, line := range lines {
		ids := make([]string, len(line))
		for j, id := range line {
			ids[j] = strconv.Itoa(id)
		}
		parts[i] = "{" + strings.Join(ids, ",") + "}"
	}
	return strings.Join(parts, " ")
}

func formatSeconds(total int) string {
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
