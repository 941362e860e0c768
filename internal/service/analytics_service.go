package service

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/model"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/repository"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/util"
)

type AnalyticsService struct {
	Sessions *repository.StudySessionRepository
	Results  *repository.QuizResultRepository
}

func NewAnalyticsService(sessions *repository.StudySessionRepository, results *repository.QuizResultRepository) *AnalyticsService {
	return &AnalyticsService{Sessions: sessions, Results: results}
}

// Snapshot loads the user's logs and derives their statistics.
func (s *AnalyticsService) Snapshot(userID uint) (model.AnalyticsSnapshot, error) {
	sessions, err := s.Sessions.ListByUser(userID)
	if err != nil {
		return model.AnalyticsSnapshot{}, err
	}
	results, err := s.Results.ListByUser(userID)
	if err != nil {
		return model.AnalyticsSnapshot{}, err
	}
	return ComputeSnapshot(sessions, results, time.Now()), nil
}

// ComputeSnapshot derives all dashboard statistics from the two logs. It
// is a pure function of its inputs; "today" is taken from now in local
// calendar terms.
func ComputeSnapshot(sessions []model.StudySession, results []model.QuizResult, now time.Time) model.AnalyticsSnapshot {
	snapshot := model.AnalyticsSnapshot{
		AccuracyPercent:    overallAccuracy(results),
		DailyActivity:      dailyActivity(sessions, now),
		QuizAccuracySeries: accuracySeries(results),
	}
	snapshot.CurrentStreak, snapshot.BestStreak = streaks(sessions, now)
	return snapshot
}

// overallAccuracy is total correct over total asked, as a rounded percent.
func overallAccuracy(results []model.QuizResult) int {
	var score, total int
	for _, r := range results {
		if r.TotalQuestions <= 0 {
			continue
		}
		score += r.Score
		total += r.TotalQuestions
	}
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// streaks walks the set of distinct calendar days with at least one
// session. The current streak runs backward from today and stops at the
// first missing day; the best streak is the longest consecutive run
// anywhere in the set.
func streaks(sessions []model.StudySession, now time.Time) (current, best int) {
	days := make(map[string]bool, len(sessions))
	for _, s := range sessions {
		days[s.CreatedAt.Local().Format(util.DateFormat)] = true
	}
	if len(days) == 0 {
		return 0, 0
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	for d := today; days[d.Format(util.DateFormat)]; d = d.AddDate(0, 0, -1) {
		current++
	}

	sorted := make([]string, 0, len(days))
	for day := range days {
		sorted = append(sorted, day)
	}
	sort.Strings(sorted)

	run := 1
	best = 1
	for i := 1; i < len(sorted); i++ {
		prev, _ := time.ParseInLocation(util.DateFormat, sorted[i-1], now.Location())
		cur, _ := time.ParseInLocation(util.DateFormat, sorted[i], now.Location())
		if prev.AddDate(0, 0, 1).Equal(cur) {
			run++
		} else {
			run = 1
		}
		if run > best {
			best = run
		}
	}
	return current, best
}

// dailyActivity buckets sessions over the trailing 7 calendar days,
// oldest first.
func dailyActivity(sessions []model.StudySession, now time.Time) []model.DayActivity {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	activity := make([]model.DayActivity, 7)
	index := make(map[string]int, 7)
	for i := 0; i < 7; i++ {
		day := today.AddDate(0, 0, i-6).Format(util.DateFormat)
		activity[i] = model.DayActivity{Date: day}
		index[day] = i
	}

	for _, s := range sessions {
		i, ok := index[s.CreatedAt.Local().Format(util.DateFormat)]
		if !ok {
			continue
		}
		activity[i].Sessions++
		if s.Mode == model.SessionPDF {
			activity[i].PDFSessions++
		}
	}
	return activity
}

// accuracySeries is the accuracy of the most recent 5 scored quizzes,
// oldest of the five first.
func accuracySeries(results []model.QuizResult) []model.AccuracyPoint {
	scored := make([]model.QuizResult, 0, len(results))
	for _, r := range results {
		if r.TotalQuestions > 0 {
			scored = append(scored, r)
		}
	}
	sort.Slice(scored, func(i, j int) bool {
		return scored[i].CreatedAt.Before(scored[j].CreatedAt)
	})
	if len(scored) > 5 {
		scored = scored[len(scored)-5:]
	}

	series := make([]model.AccuracyPoint, 0, len(scored))
	for i, r := range scored {
		series = append(series, model.AccuracyPoint{
			Label:   fmt.Sprintf("Q%d", i+1),
			Percent: int(math.Round(float64(r.Score) / float64(r.TotalQuestions) * 100)),
		})
	}
	return series
}
