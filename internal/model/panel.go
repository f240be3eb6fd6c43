package model

// PanelID identifies a panel on the board (row*size + col)
type PanelID int

// Panel is a point-valued cell on the board, claimable once by a correct answer
type Panel struct {
	ID        PanelID `json:"id"`
	Point     int     `json:"point"`
	Answered  bool    `json:"answered"`
	ClaimedBy *TeamID `json:"claimed_by,omitempty"` // nil until answered
}

// Claim marks the panel answered by the given team
func (p *Panel) Claim(team TeamID) {
	t := team
	p.Answered = true
	p.ClaimedBy = &t
}

// IsClaimedBy reports whether the panel was answered by the given team
func (p Panel) IsClaimedBy(team TeamID) bool {
	return p.ClaimedBy != nil && *p.ClaimedBy == team
}

// Row returns the panel's row on a board of the given size
func (p Panel) Row(size int) int {
	return int(p.ID) / size
}

// Col returns the panel's column on a board of the given size
func (p Panel) Col(size int) int {
	return int(p.ID) % size
}

// NewPanels creates an unanswered size x size board.
// Every panel in row r is worth rowPoints[r].
func NewPanels(size int, rowPoints []int) []Panel {
	panels := make([]Panel, size*size)
	for i := range panels {
		panels[i] = Panel{
			ID:    PanelID(i),
			Point: rowPoints[i/size],
		}
	}
	return panels
}

// Line is an ordered set of panel ids forming a row, column or diagonal
type Line []PanelID
