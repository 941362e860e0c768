package service

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/priya-tenac/Ai-Study-Buddy/internal/model"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/repository"
	"github.com/priya-tenac/Ai-Study-Buddy/internal/util"
)

const (
	minDailyHours   = 1
	maxDailyHours   = 12
	defaultHours    = 3
	defaultPlanDays = 21
)

var planTips = []string{
	"Stick to your daily hours, even if you cover slightly less than planned.",
	"Use a timer (Pomodoro or 50-10 blocks) so sessions stay focused.",
	"Mark weak topics as you go and give them extra time every few days.",
	"Keep one light revision-only day each week so you don't burn out.",
}

type PlanRequest struct {
	Subjects   string  `json:"subjects" binding:"required"`
	ExamDate   string  `json:"examDate"`
	DailyHours float64 `json:"dailyHours"`
}

type PlannerService struct {
	Plans *repository.StudyPlanRepository
}

func NewPlannerService(plans *repository.StudyPlanRepository) *PlannerService {
	return &PlannerService{Plans: plans}
}

type weightedSubject struct {
	name   string
	weight int
}

// parseSubjects splits comma- or newline-separated subject lines. A
// priority keyword anywhere in the line sets the weight; anything after a
// dash or colon is treated as annotation, not name.
func parseSubjects(raw string) []weightedSubject {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == '\n'
	})

	var subjects []weightedSubject
	for _, field := range fields {
		line := strings.TrimSpace(field)
		if line == "" {
			continue
		}

		weight := 1
		lower := strings.ToLower(line)
		switch {
		case strings.Contains(lower, "high"):
			weight = 3
		case strings.Contains(lower, "medium"):
			weight = 2
		}

		name := line
		if i := strings.IndexAny(line, "-–:"); i >= 0 {
			name = strings.TrimSpace(line[:i])
		}
		if name == "" {
			name = line
		}
		subjects = append(subjects, weightedSubject{name: name, weight: weight})
	}
	return subjects
}

// daysUntil counts calendar days from today to the exam, floored at 1.
// Zero means no usable exam date was given.
func daysUntil(examDate string, now time.Time) int {
	if examDate == "" {
		return 0
	}
	exam, err := time.ParseInLocation(util.DateFormat, examDate, now.Location())
	if err != nil {
		return 0
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := int(math.Ceil(exam.Sub(today).Hours() / 24))
	if days < 1 {
		return 1
	}
	return days
}

// GeneratePlan builds the day-by-day schedule. It is fully deterministic:
// subject weights split the daily hours, rounded to half hours with a
// half-hour floor.
func (s *PlannerService) GeneratePlan(req PlanRequest, now time.Time) (model.GeneratedPlan, error) {
	if strings.TrimSpace(req.Subjects) == "" {
		return model.GeneratedPlan{}, errors.New("at least one subject is required")
	}

	hours := req.DailyHours
	if hours <= 0 {
		hours = defaultHours
	}
	if hours < minDailyHours {
		hours = minDailyHours
	}
	if hours > maxDailyHours {
		hours = maxDailyHours
	}

	totalDays := daysUntil(req.ExamDate, now)
	if totalDays == 0 {
		totalDays = defaultPlanDays
	}

	subjects := parseSubjects(req.Subjects)
	if len(subjects) == 0 {
		subjects = []weightedSubject{{name: "General revision", weight: 1}}
	}
	totalWeight := 0
	for _, sub := range subjects {
		totalWeight += sub.weight
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	totalWeeks := (totalDays + 6) / 7

	var weeks []model.PlanWeek
	for dayIndex := 0; dayIndex < totalDays; dayIndex++ {
		date := today.AddDate(0, 0, dayIndex)
		weekIndex := dayIndex / 7

		if weekIndex == len(weeks) {
			weekEnd := date.AddDate(0, 0, 6-dayIndex%7)
			weeks = append(weeks, model.PlanWeek{
				WeekLabel: fmt.Sprintf("Week %d", weekIndex+1),
				StartDate: date.Format(util.DateFormat),
				EndDate:   weekEnd.Format(util.DateFormat),
				Focus:     weekFocus(weekIndex, totalWeeks),
			})
		}

		day := model.PlanDay{
			Date:  date.Format(util.DateFormat),
			Label: date.Format("Mon"),
		}
		for _, sub := range subjects {
			share := float64(sub.weight) / float64(totalWeight)
			subjectHours := math.Round(hours*share*2) / 2
			if subjectHours < 0.5 {
				subjectHours = 0.5
			}
			day.Subjects = append(day.Subjects, model.PlanSubject{
				Name:   sub.name,
				Topics: "Core concepts + 5-10 practice questions",
				Hours:  subjectHours,
			})
		}
		weeks[weekIndex].Days = append(weeks[weekIndex].Days, day)
	}

	until := "the exam"
	if req.ExamDate != "" {
		until = req.ExamDate
	}
	overview := fmt.Sprintf(
		"From %s until %s, you will study about %g hour(s) per day across %d subject(s). Heavier-weight subjects get a larger share of time while still leaving room for revision and practice.",
		today.Format(util.DateFormat), until, hours, len(subjects))

	return model.GeneratedPlan{
		Overview: overview,
		Weeks:    weeks,
		Tips:     planTips,
	}, nil
}

func weekFocus(weekIndex, totalWeeks int) string {
	switch {
	case weekIndex == 0:
		return "Warm-up and building foundations"
	case weekIndex == totalWeeks-1:
		return "Final revisions and mock tests"
	default:
		return "Balanced practice and revision"
	}
}

// Plan item CRUD backing the dashboard checklist.

func (s *PlannerService) AddPlan(userID uint, title, date string) (*model.StudyPlan, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.New("plan title is required")
	}
	if date == "" {
		date = time.Now().Format(util.DateFormat)
	}

	plan := &model.StudyPlan{
		UserID: userID,
		Title:  title,
		Date:   date,
	}
	if err := s.Plans.Create(plan); err != nil {
		return nil, err
	}
	return plan, nil
}

func (s *PlannerService) ListPlans(userID uint) ([]model.StudyPlan, error) {
	return s.Plans.ListByUser(userID)
}

func (s *PlannerService) TogglePlan(userID uint, id string) (*model.StudyPlan, error) {
	plan, err := s.Plans.ToggleDone(userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrPlanNotFound
		}
		return nil, err
	}
	return plan, nil
}

func (s *PlannerService) DeletePlan(userID uint, id string) error {
	return s.Plans.Delete(userID, id)
}
