package model

// StudyPackResponse is the contract-stable bundle returned for one source
// document. Every field is always present; on unparseable model output the
// raw text becomes the summary and everything else is empty.
// swagger:model StudyPackResponse
type StudyPackResponse struct {
	Summary    string         `json:"summary"`
	Keywords   []string       `json:"keywords"`
	MCQs       []MCQ          `json:"mcqs"`
	PPTOutline []SlideOutline `json:"pptOutline"`
	Mindmap    string         `json:"mindmap"`
	Flashcards []Flashcard    `json:"flashcards"`
}

// MCQ is a multiple-choice question. After normalization the answer is
// always one of the options and there are at most four options.
// swagger:model MCQ
type MCQ struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// swagger:model SlideOutline
type SlideOutline struct {
	Title   string   `json:"title"`
	Bullets []string `json:"bullets"`
}

// swagger:model Flashcard
type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}
