package model

import "time"

// Result is a goal owned by exactly one user.
type Result struct {
	ID          int64     `json:"id"          db:"id"`
	UserID      string    `json:"userId"      db:"user_id"`
	Name        string    `json:"name"        db:"name"`
	Description string    `json:"description" db:"description"`
	CreatedAt   time.Time `json:"createdAt"   db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt"   db:"updated_at"`
}

// CreateResultRequest is the body of POST /results.
type CreateResultRequest struct {
	UserID      string `json:"userId"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// UpdateResultRequest is the body of PUT /results/{id}.
type UpdateResultRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// DeletedResult is the summary returned by DELETE /results/{id}.
type DeletedResult struct {
	ID     int64  `json:"id"`
	UserID string `json:"userId"`
	Name   string `json:"name"`
}
