package model

// QuizMode distinguishes a solo timed quiz from a pass-the-device friend battle.
type QuizMode string

const (
	QuizSolo   QuizMode = "solo"
	QuizFriend QuizMode = "friend"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Mood shapes prompt tone and, in the UI, default difficulty.
type Mood string

const (
	MoodSleepy    Mood = "sleepy"
	MoodNeutral   Mood = "neutral"
	MoodEnergized Mood = "energized"
)

// QuizResult is one append-only entry in a user's quiz history log.
// For friend battles it stores the winner's score and duration.
// swagger:model QuizResult
type QuizResult struct {
	UUIDBase
	UserID          uint       `gorm:"index;not null" json:"-"`
	Mode            QuizMode   `gorm:"type:enum('solo','friend');default:'solo'" json:"mode"`
	Difficulty      Difficulty `gorm:"type:enum('easy','medium','hard');default:'medium'" json:"difficulty"`
	Topic           string     `gorm:"size:120" json:"topic"`
	Score           int        `gorm:"not null" json:"score"`
	TotalQuestions  int        `gorm:"not null" json:"totalQuestions"`
	DurationSeconds int        `gorm:"not null" json:"durationSeconds"`
}

func (QuizResult) TableName() string {
	return "quiz_results"
}
