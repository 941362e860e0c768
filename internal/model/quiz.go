package model

// QuizQuestion has the same shape as an MCQ; it is owned by a quiz session
// for the lifetime of one run.
// swagger:model QuizQuestion
type QuizQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}
