package model

import "time"

// Action belongs to exactly one Habit.
type Action struct {
	ID        int64     `json:"id"        db:"id"`
	HabitID   int64     `json:"habitId"   db:"habit_id"`
	Name      string    `json:"name"      db:"name"`
	Color     string    `json:"color"     db:"color"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type CreateActionRequest struct {
	HabitID int64  `json:"habitId"`
	Name    string `json:"name"`
	Color   string `json:"color"`
}

type UpdateActionRequest struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}
