package sqldb

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/sakif/habitrack/internal/apperror"
	"github.com/sakif/habitrack/internal/model"
	"github.com/sakif/habitrack/internal/repository"
)

var _ repository.UserRepository = userRepo{}

const userColumns = `id, username, email, first_name, last_name, password_hash, password_salt,
	created_at, updated_at, deleted_at`

type userRepo struct {
	q sqlx.ExtContext
}

// Create inserts a live user. ID is generated (UUID v4) when empty; timestamps
// are always set here.
func (r userRepo) Create(ctx context.Context, user *model.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.DeletedAt = nil

	_, err := r.q.ExecContext(ctx, r.q.Rebind(
		`INSERT INTO users (id, username, email, first_name, last_name, password_hash, password_salt,
			created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		user.ID,
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.PasswordSalt,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return userWriteErr(err, "creating user")
	}
	return nil
}

func (r userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := sqlx.GetContext(ctx, r.q, &u, r.q.Rebind(
		`SELECT `+userColumns+` FROM users WHERE id = ? AND deleted_at IS NULL`), id)
	if err != nil {
		return nil, getErr(err, apperror.ResourceUser, "getting user "+id)
	}
	return &u, nil
}

func (r userRepo) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := sqlx.GetContext(ctx, r.q, &u, r.q.Rebind(
		`SELECT `+userColumns+` FROM users WHERE username = ? AND deleted_at IS NULL`), username)
	if err != nil {
		return nil, getErr(err, apperror.ResourceUser, "getting user by username")
	}
	return &u, nil
}

// List returns live users, oldest first.
func (r userRepo) List(ctx context.Context) ([]model.User, error) {
	users := []model.User{}
	err := sqlx.SelectContext(ctx, r.q, &users,
		`SELECT `+userColumns+` FROM users WHERE deleted_at IS NULL ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("sqldb: listing users: %w", err)
	}
	return users, nil
}

func (r userRepo) UsernameTaken(ctx context.Context, username, exceptID string) (bool, error) {
	return r.taken(ctx, "username", username, exceptID)
}

func (r userRepo) EmailTaken(ctx context.Context, email, exceptID string) (bool, error) {
	return r.taken(ctx, "email", email, exceptID)
}

// taken builds the query from a fixed column name, never from input.
func (r userRepo) taken(ctx context.Context, column, value, exceptID string) (bool, error) {
	var taken bool
	err := sqlx.GetContext(ctx, r.q, &taken, r.q.Rebind(
		`SELECT EXISTS (
			SELECT 1 FROM users WHERE `+column+` = ? AND deleted_at IS NULL AND id <> ?
		)`), value, exceptID)
	if err != nil {
		return false, fmt.Errorf("sqldb: checking %s: %w", column, err)
	}
	return taken, nil
}

// Update writes every mutable column of a live user and bumps updated_at.
func (r userRepo) Update(ctx context.Context, user *model.User) error {
	user.UpdatedAt = time.Now().UTC()

	res, err := r.q.ExecContext(ctx, r.q.Rebind(
		`UPDATE users
		 SET username = ?, email = ?, first_name = ?, last_name = ?,
		     password_hash = ?, password_salt = ?, updated_at = ?
		 WHERE id = ? AND deleted_at IS NULL`),
		user.Username,
		user.Email,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.PasswordSalt,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return userWriteErr(err, "updating user "+user.ID)
	}
	return mustAffect(res, apperror.ResourceUser, "updating user "+user.ID)
}

// SoftDelete stamps deleted_at. The row stays, so the id is never reused, but
// the username and email become available again.
func (r userRepo) SoftDelete(ctx context.Context, id string) error {
	now := time.Now().UTC()
	res, err := r.q.ExecContext(ctx, r.q.Rebind(
		`UPDATE users SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`),
		now, now, id)
	if err != nil {
		return fmt.Errorf("sqldb: deleting user %s: %w", id, err)
	}
	return mustAffect(res, apperror.ResourceUser, "deleting user "+id)
}
