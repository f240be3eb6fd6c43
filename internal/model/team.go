package model

// TeamID identifies a team; ids are assigned 0..n-1 in turn order
type TeamID int

// Team is a participant group taking turns on the board
type Team struct {
	ID    TeamID `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// NewTeams creates zero-score teams in rotation order from the given names
func NewTeams(names []string) []Team {
	teams := make([]Team, len(names))
	for i, name := range names {
		teams[i] = Team{ID: TeamID(i), Name: name}
	}
	return teams
}
