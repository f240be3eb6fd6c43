package model

// Quiz is a multiple-choice question assigned to a panel
type Quiz struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   int      `json:"answer"` // index into Options
}

// IsCorrect reports whether the chosen option index is the right answer
func (q Quiz) IsCorrect(choice int) bool {
	return choice == q.Answer
}

// HasOption reports whether choice indexes one of the options
func (q Quiz) HasOption(choice int) bool {
	return choice >= 0 && choice < len(q.Options)
}

// Validate checks the quiz is well-formed
func (q Quiz) Validate() error {
	if q.Question == "" || len(q.Options) < 2 || !q.HasOption(q.Answer) {
		return ErrInvalidQuiz
	}
	return nil
}
