package model

// StudyPlan is a user-created planner entry. Unlike the history logs it is
// mutable (the done flag toggles) and is never auto-deleted.
// swagger:model StudyPlan
type StudyPlan struct {
	UUIDBase
	UserID uint   `gorm:"index;not null" json:"-"`
	Title  string `gorm:"size:255;not null" json:"title"`
	Date   string `gorm:"size:10" json:"date"` // YYYY-MM-DD
	Done   bool   `gorm:"default:false" json:"done"`
}

func (StudyPlan) TableName() string {
	return "study_plans"
}
