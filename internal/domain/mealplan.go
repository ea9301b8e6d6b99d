package domain

import "time"

// Franjas y días válidos para entradas de un plan de comidas.
var (
	MealTimes = []string{"breakfast", "lunch", "dinner"}
	Weekdays  = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}
)

type MealPlan struct {
	ID        string           `json:"id"`
	FamilyID  string           `json:"family_id"`
	StartDate string           `json:"start_date"`
	EndDate   string           `json:"end_date"`
	Details   []MealPlanDetail `json:"details,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

type MealPlanDetail struct {
	ID         string    `json:"id"`
	MealPlanID string    `json:"meal_plan_id"`
	MealID     string    `json:"meal_id"`
	MealTime   string    `json:"meal_time"`
	Weekday    string    `json:"weekday"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
