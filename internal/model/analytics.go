package model

// AnalyticsSnapshot is derived entirely from the per-user session and quiz
// logs; nothing in it is stored.
// swagger:model AnalyticsSnapshot
type AnalyticsSnapshot struct {
	AccuracyPercent    int             `json:"accuracyPercent"`
	CurrentStreak      int             `json:"currentStreak"`
	BestStreak         int             `json:"bestStreak"`
	DailyActivity      []DayActivity   `json:"dailyActivity"`
	QuizAccuracySeries []AccuracyPoint `json:"quizAccSeries"`
}

// DayActivity counts the sessions recorded on one calendar day, and how
// many of those came from PDF sources.
// swagger:model DayActivity
type DayActivity struct {
	Date        string `json:"date"` // YYYY-MM-DD
	Sessions    int    `json:"sessions"`
	PDFSessions int    `json:"pdfSessions"`
}

// swagger:model AccuracyPoint
type AccuracyPoint struct {
	Label   string `json:"label"`
	Percent int    `json:"percent"`
}
