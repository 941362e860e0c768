package service

import (
	"testing"
	"time"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/model"
)

func sessionOn(t time.Time, mode model.SessionMode) model.StudySession {
	s := model.StudySession{Mode: mode}
	s.CreatedAt = t
	return s
}

func resultOn(t time.Time, score, total int) model.QuizResult {
	r := model.QuizResult{Score: score, TotalQuestions: total}
	r.CreatedAt = t
	return r
}

func TestComputeSnapshotEmpty(t *testing.T) {
	snap := ComputeSnapshot(nil, nil, time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC))

	if snap.AccuracyPercent != 0 || snap.CurrentStreak != 0 || snap.BestStreak != 0 {
		t.Fatalf("empty logs produced non-zero stats: %+v", snap)
	}
	if len(snap.DailyActivity) != 7 {
		t.Fatalf("dailyActivity length = %d, want 7", len(snap.DailyActivity))
	}
	if len(snap.QuizAccuracySeries) != 0 {
		t.Fatalf("series = %v, want empty", snap.QuizAccuracySeries)
	}
}

func TestAccuracyPercent(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	results := []model.QuizResult{
		resultOn(now, 4, 5),
		resultOn(now, 1, 3),
		resultOn(now, 9, 0), // unscored, ignored
	}

	snap := ComputeSnapshot(nil, results, now)

	// 5 of 8 → 62.5 → 63.
	if snap.AccuracyPercent != 63 {
		t.Fatalf("accuracy = %d, want 63", snap.AccuracyPercent)
	}
}

func TestStreaks(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	day := func(offset int) time.Time { return now.AddDate(0, 0, offset) }

	tests := []struct {
		name        string
		sessions    []model.StudySession
		wantCurrent int
		wantBest    int
	}{
		{
			name: "active run through today",
			sessions: []model.StudySession{
				sessionOn(day(0), model.SessionText),
				sessionOn(day(-1), model.SessionText),
				sessionOn(day(-2), model.SessionPDF),
			},
			wantCurrent: 3,
			wantBest:    3,
		},
		{
			name: "nothing today breaks the current streak",
			sessions: []model.StudySession{
				sessionOn(day(-1), model.SessionText),
				sessionOn(day(-2), model.SessionText),
			},
			wantCurrent: 0,
			wantBest:    2,
		},
		{
			name: "gap splits runs, best is the longer one",
			sessions: []model.StudySession{
				sessionOn(day(0), model.SessionText),
				sessionOn(day(-3), model.SessionText),
				sessionOn(day(-4), model.SessionText),
				sessionOn(day(-5), model.SessionText),
			},
			wantCurrent: 1,
			wantBest:    3,
		},
		{
			name: "several sessions one day count once",
			sessions: []model.StudySession{
				sessionOn(day(0), model.SessionText),
				sessionOn(day(0).Add(2*time.Hour), model.SessionPDF),
			},
			wantCurrent: 1,
			wantBest:    1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := ComputeSnapshot(tt.sessions, nil, now)
			if snap.CurrentStreak != tt.wantCurrent {
				t.Fatalf("current = %d, want %d", snap.CurrentStreak, tt.wantCurrent)
			}
			if snap.BestStreak != tt.wantBest {
				t.Fatalf("best = %d, want %d", snap.BestStreak, tt.wantBest)
			}
		})
	}
}

func TestDailyActivityWindow(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	sessions := []model.StudySession{
		sessionOn(now, model.SessionPDF),
		sessionOn(now, model.SessionText),
		sessionOn(now.AddDate(0, 0, -6), model.SessionText),
		sessionOn(now.AddDate(0, 0, -7), model.SessionText), // outside the window
	}

	snap := ComputeSnapshot(sessions, nil, now)

	if len(snap.DailyActivity) != 7 {
		t.Fatalf("window length = %d", len(snap.DailyActivity))
	}
	first, last := snap.DailyActivity[0], snap.DailyActivity[6]
	if first.Date != "2026-08-22" || last.Date != "2026-08-28" {
		t.Fatalf("window = %s..%s", first.Date, last.Date)
	}
	if first.Sessions != 1 || first.PDFSessions != 0 {
		t.Fatalf("oldest day = %+v", first)
	}
	if last.Sessions != 2 || last.PDFSessions != 1 {
		t.Fatalf("today = %+v", last)
	}
}

func TestAccuracySeriesKeepsRecentFive(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	var results []model.QuizResult
	for i := 0; i < 7; i++ {
		// Oldest first: 0%, 10%, ... 60%.
		results = append(results, resultOn(now.AddDate(0, 0, i-7), i, 10))
	}
	results = append(results, resultOn(now, 3, 0)) // unscored, ignored

	snap := ComputeSnapshot(nil, results, now)

	if len(snap.QuizAccuracySeries) != 5 {
		t.Fatalf("series length = %d, want 5", len(snap.QuizAccuracySeries))
	}
	if snap.QuizAccuracySeries[0].Percent != 20 || snap.QuizAccuracySeries[4].Percent != 60 {
		t.Fatalf("series = %+v", snap.QuizAccuracySeries)
	}
	if snap.QuizAccuracySeries[0].Label != "Q1" {
		t.Fatalf("label = %q", snap.QuizAccuracySeries[0].Label)
	}
}
