// Package model defines the data structures used throughout the application.
package model

import "time"

// User is a registered account.
//
// PasswordHash and PasswordSalt are never serialized: the `json:"-"` tag keeps
// them out of every response body, including list endpoints.
//
// DeletedAt is nil for live users. A soft-deleted user keeps its row (and its
// id) but becomes invisible to lookups, listings and uniqueness checks.
type User struct {
	ID           string     `json:"id"        db:"id"`
	Username     string     `json:"username"  db:"username"`
	Email        string     `json:"email"     db:"email"`
	FirstName    string     `json:"firstName" db:"first_name"`
	LastName     string     `json:"lastName"  db:"last_name"`
	PasswordHash string     `json:"-"         db:"password_hash"`
	PasswordSalt string     `json:"-"         db:"password_salt"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
	DeletedAt    *time.Time `json:"deletedAt" db:"deleted_at"`
}

// CreateUserRequest is the body of POST /users.
type CreateUserRequest struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// UpdateUserRequest is the body of PUT /users/{id}.
//
// Pointer fields distinguish "absent" (nil) from "present". After syntactic
// validation an empty string is normalised to nil, so downstream code only has
// to check for nil.
type UpdateUserRequest struct {
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
}

// Empty reports whether the patch changes nothing.
func (r UpdateUserRequest) Empty() bool {
	return r.Username == nil && r.Email == nil && r.Password == nil &&
		r.FirstName == nil && r.LastName == nil
}

// DeletedUser is the summary returned by DELETE /users/{id}.
type DeletedUser struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
