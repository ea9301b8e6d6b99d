package domain

import "time"

type Meal struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	MealTime  []string   `json:"meal_time"`
	FamilyID  string     `json:"family_id"`
	CreatedBy string     `json:"created_by"`
	DishIDs   []string   `json:"dish_ids,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}
