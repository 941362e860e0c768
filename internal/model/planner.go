package model

// GeneratedPlan is the deterministic week-by-week schedule produced by the
// study planner (no AI call involved).
// swagger:model GeneratedPlan
type GeneratedPlan struct {
	Overview string     `json:"overview"`
	Weeks    []PlanWeek `json:"weeks"`
	Tips     []string   `json:"tips"`
}

// swagger:model PlanWeek
type PlanWeek struct {
	WeekLabel string    `json:"weekLabel"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Focus     string    `json:"focus"`
	Days      []PlanDay `json:"days"`
}

// swagger:model PlanDay
type PlanDay struct {
	Date     string        `json:"date"`
	Label    string        `json:"label"`
	Subjects []PlanSubject `json:"subjects"`
}

// swagger:model PlanSubject
type PlanSubject struct {
	Name   string  `json:"name"`
	Topics string  `json:"topics"`
	Hours  float64 `json:"hours"`
}
