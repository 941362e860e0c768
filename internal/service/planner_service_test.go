package service

import (
	"testing"
	"time"
)

func TestParseSubjects(t *testing.T) {
	subjects := parseSubjects("Physics - high, Chemistry: medium\nBiology - low, Economics")

	want := []weightedSubject{
		{name: "Physics", weight: 3},
		{name: "Chemistry", weight: 2},
		{name: "Biology", weight: 1},
		{name: "Economics", weight: 1},
	}
	if len(subjects) != len(want) {
		t.Fatalf("parsed %d subjects, want %d: %v", len(subjects), len(want), subjects)
	}
	for i, w := range want {
		if subjects[i] != w {
			t.Fatalf("subject %d = %+v, want %+v", i, subjects[i], w)
		}
	}
}

func TestGeneratePlanDefaults(t *testing.T) {
	svc := NewPlannerService(nil)
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	plan, err := svc.GeneratePlan(PlanRequest{Subjects: "Maths"}, now)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}

	// No exam date → 21 days → 3 full weeks.
	if len(plan.Weeks) != 3 {
		t.Fatalf("weeks = %d, want 3", len(plan.Weeks))
	}
	totalDays := 0
	for _, week := range plan.Weeks {
		totalDays += len(week.Days)
	}
	if totalDays != 21 {
		t.Fatalf("days = %d, want 21", totalDays)
	}

	if plan.Weeks[0].Focus != "Warm-up and building foundations" {
		t.Fatalf("first week focus = %q", plan.Weeks[0].Focus)
	}
	if plan.Weeks[2].Focus != "Final revisions and mock tests" {
		t.Fatalf("last week focus = %q", plan.Weeks[2].Focus)
	}

	// Single subject gets the whole default 3 hours.
	day := plan.Weeks[0].Days[0]
	if day.Date != "2026-08-28" {
		t.Fatalf("first day = %s", day.Date)
	}
	if len(day.Subjects) != 1 || day.Subjects[0].Hours != 3 {
		t.Fatalf("day subjects = %+v", day.Subjects)
	}

	if len(plan.Tips) == 0 || plan.Overview == "" {
		t.Fatal("plan missing overview or tips")
	}
}

func TestGeneratePlanWeightedSplit(t *testing.T) {
	svc := NewPlannerService(nil)
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	plan, err := svc.GeneratePlan(PlanRequest{
		Subjects:   "Physics - high, History - low",
		DailyHours: 4,
		ExamDate:   "2026-09-04",
	}, now)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}

	totalDays := 0
	for _, week := range plan.Weeks {
		totalDays += len(week.Days)
	}
	if totalDays != 7 {
		t.Fatalf("days = %d, want 7", totalDays)
	}

	subjects := plan.Weeks[0].Days[0].Subjects
	if len(subjects) != 2 {
		t.Fatalf("subjects = %+v", subjects)
	}
	// Weight 3 of 4 → 3h; weight 1 of 4 → 1h.
	if subjects[0].Hours != 3 || subjects[1].Hours != 1 {
		t.Fatalf("hours = %v / %v, want 3 / 1", subjects[0].Hours, subjects[1].Hours)
	}
}

func TestGeneratePlanClampsHours(t *testing.T) {
	svc := NewPlannerService(nil)
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	plan, err := svc.GeneratePlan(PlanRequest{Subjects: "Maths", DailyHours: 99}, now)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	if got := plan.Weeks[0].Days[0].Subjects[0].Hours; got != 12 {
		t.Fatalf("hours = %v, want clamp at 12", got)
	}
}

func TestGeneratePlanHalfHourFloor(t *testing.T) {
	svc := NewPlannerService(nil)
	now := time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC)

	// Nine equal subjects sharing 1 hour: each share rounds below the
	// half-hour floor and gets bumped to 0.5.
	plan, err := svc.GeneratePlan(PlanRequest{
		Subjects:   "a,b,c,d,e,f,g,h,i",
		DailyHours: 1,
	}, now)
	if err != nil {
		t.Fatalf("GeneratePlan: %v", err)
	}
	for _, sub := range plan.Weeks[0].Days[0].Subjects {
		if sub.Hours != 0.5 {
			t.Fatalf("subject %q hours = %v, want 0.5", sub.Name, sub.Hours)
		}
	}
}

func TestGeneratePlanRequiresSubjects(t *testing.T) {
	svc := NewPlannerService(nil)
	if _, err := svc.GeneratePlan(PlanRequest{Subjects: "   "}, time.Now()); err == nil {
		t.Fatal("expected an error for empty subjects")
	}
}
