package model

import "time"

// Habit belongs to exactly one Result. Color is a "#RRGGBB" hex string.
type Habit struct {
	ID          int64     `json:"id"          db:"id"`
	ResultID    int64     `json:"resultId"    db:"result_id"`
	Name        string    `json:"name"        db:"name"`
	Description string    `json:"description" db:"description"`
	Color       string    `json:"color"       db:"color"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`
}

type CreateHabitRequest struct {
	ResultID    int64  `json:"resultId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type UpdateHabitRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}
