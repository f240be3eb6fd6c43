package game

import (
	"github.com/mcoot/quizbingo/internal/model"
	"github.com/mcoot/quizbingo/internal/services/bingo"
)

// Result describes what a resolved answer did
type Result struct {
	Applied bool
	TeamID  model.TeamID
	PanelID model.PanelID
	Correct bool
	Awarded int
	Bingo   *model.LineAnnouncement
	Reach   *model.LineAnnouncement
	Ending  model.Ending
	// NextTeam is the index of the team holding priority after the answer
	NextTeam int
}

// Resolve applies the presented panel's answer to a copy of current and
// returns the next session. current is never modified. It is a no-op
// (Applied=false) when nothing is presented, the game has concluded, or
// choice is not one of the quiz's options.
//
// Bingo and reach are detected on the post-answer board. Board exhaustion is
// judged on the pre-answer board: the game ends when every other panel was
// already answered, whether or not this answer was correct.
func Resolve(current *model.Session, choice int, lines []model.Line) (*model.Session, Result) {
	next := current.Clone()
	presented := next.Presenting
	if next.Concluded || presented == nil || !presented.Quiz.HasOption(choice) {
		return next, Result{NextTeam: next.CurrentTeam}
	}
	panel := next.Panel(presented.PanelID)
	if panel == nil || panel.Answered {
		return next, Result{NextTeam: next.CurrentTeam}
	}

	team := next.CurrentTeamID()
	result := Result{Applied: true, TeamID: team, PanelID: panel.ID}

	exhausted := current.AnsweredCount() == len(current.Panels)-1

	if presented.Quiz.IsCorrect(choice) {
		result.Correct = true
		result.Awarded = panel.Point
		next.Teams[next.CurrentTeam].Score += panel.Point
		panel.Claim(team)
	}

	outcome := bingo.Evaluate(next.Panels, next.Teams, lines)
	if outcome.Bingo != nil {
		next.Bingo = outcome.Bingo
		next.Reach = nil
		next.Concluded = true
		next.Ending = model.EndingBingo
		result.Bingo = outcome.Bingo
	} else {
		if outcome.Reach != nil && !next.ReachAnnounced {
			next.Reach = outcome.Reach
			next.ReachAnnounced = true
			result.Reach = outcome.Reach
		}
		if exhausted {
			next.Concluded = true
			next.Ending = model.EndingAllAnswered
		}
	}

	if !next.Concluded {
		next.CurrentTeam = (next.CurrentTeam + 1) % len(next.Teams)
	}

	next.Presenting = nil
	next.PendingReveal = nil

	result.Ending = next.Ending
	result.NextTeam = next.CurrentTeam
	return next, result
}
