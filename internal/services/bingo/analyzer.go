// Package bingo detects completed (bingo) and nearly completed (reach) lines on a board.
package bingo

import "github.com/mcoot/quizbingo/internal/model"

// Result lists the lines a team has completed and the lines it is one panel short of
type Result struct {
	BingoLines []model.Line
	ReachLines []model.Line
}

// Outcome is the board-wide result for one transition: at most one bingo winner,
// and at most one reach announcement when nobody has a bingo
type Outcome struct {
	Bingo *model.LineAnnouncement
	Reach *model.LineAnnouncement
}

// Lines returns every line of a size x size board: rows, then columns, then the
// main diagonal and the anti-diagonal
func Lines(size int) []model.Line {
	if size <= 0 {
		return nil
	}
	lines := make([]model.Line, 0, 2*size+2)
	for row := 0; row < size; row++ {
		line := make(model.Line, size)
		for col := 0; col < size; col++ {
			line[col] = model.PanelID(row*size + col)
		}
		lines = append(lines, line)
	}
	for col := 0; col < size; col++ {
		line := make(model.Line, size)
		for row := 0; row < size; row++ {
			line[row] = model.PanelID(row*size + col)
		}
		lines = append(lines, line)
	}
	diag := make(model.Line, size)
	anti := make(model.Line, size)
	for i := 0; i < size; i++ {
		diag[i] = model.PanelID(i*size + i)
		anti[i] = model.PanelID(i*size + size - 1 - i)
	}
	return append(lines, diag, anti)
}

// Analyze counts, for each line, the panels claimed by team. A full line is a
// bingo line, a line one panel short is a reach line.
func Analyze(panels []model.Panel, team model.TeamID, lines []model.Line) Result {
	var result Result
	for _, line := range lines {
		switch claimedCount(panels, team, line) {
		case len(line):
			result.BingoLines = append(result.BingoLines, line)
		case len(line) - 1:
			result.ReachLines = append(result.ReachLines, line)
		}
	}
	return result
}

// Evaluate analyzes every team in canonical order. The first team with a bingo
// wins; reach is only reported when no team has a bingo, and then only for the
// first team in order that has one.
func Evaluate(panels []model.Panel, teams []model.Team, lines []model.Line) Outcome {
	var reach *model.LineAnnouncement
	for _, team := range teams {
		result := Analyze(panels, team.ID, lines)
		if len(result.BingoLines) > 0 {
			return Outcome{Bingo: &model.LineAnnouncement{TeamID: team.ID, Lines: result.BingoLines}}
		}
		if reach == nil && len(result.ReachLines) > 0 {
			reach = &model.LineAnnouncement{TeamID: team.ID, Lines: result.ReachLines}
		}
	}
	return Outcome{Reach: reach}
}

// OpenReachLines returns the team's reach lines whose missing panel is still
// unclaimed, i.e. lines the team can still complete
func OpenReachLines(panels []model.Panel, team model.TeamID, lines []model.Line) []model.Line {
	var open []model.Line
	for _, line := range Analyze(panels, team, lines).ReachLines {
		blocked := false
		for _, id := range line {
			p := panels[id]
			if p.ClaimedBy != nil && *p.ClaimedBy != team {
				blocked = true
				break
			}
		}
		if !blocked {
			open = append(open, line)
		}
	}
	return open
}

func claimedCount(panels []model.Panel, team model.TeamID, line model.Line) int {
	count := 0
	for _, id := range line {
		if int(id) < len(panels) && panels[id].IsClaimedBy(team) {
			count++
		}
	}
	return count
}
