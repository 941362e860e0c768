package model

// SessionMode is the kind of source material a study session was built from.
type SessionMode string

const (
	SessionText SessionMode = "text"
	SessionURL  SessionMode = "url"
	SessionPDF  SessionMode = "pdf"
)

// StudySession is one append-only entry in a user's study history log.
// Rows are never updated after insert; the log is trimmed to the most
// recent entries on append.
// swagger:model StudySession
type StudySession struct {
	UUIDBase
	UserID         uint        `gorm:"index;not null" json:"-"`
	Mode           SessionMode `gorm:"type:enum('text','url','pdf');default:'text'" json:"mode"`
	Title          string      `gorm:"size:255" json:"title"`
	SummaryPreview string      `gorm:"size:255" json:"summaryPreview"`
}

func (StudySession) TableName() string {
	return "study_sessions"
}
