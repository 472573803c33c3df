// Package repository declares the storage contracts the service layer depends on.
//
// Two views of the same repositories exist:
//
//   - Store.Users() etc. run each call on the shared connection pool. Used for
//     plain reads.
//   - Tx.Users() etc. run on one transaction. The mutation executor hands these
//     to semantic validation and the write so both see one snapshot.
//
// Implementations translate "no row" into apperror.NotFound and storage-level
// unique violations into apperror.Conflict.
package repository

import (
	"context"

	"github.com/sakif/habitrack/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	// GetByID and GetByUsername never return soft-deleted users.
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	// UsernameTaken and EmailTaken ignore soft-deleted users and the user
	// with id exceptID (pass "" to check against everyone).
	UsernameTaken(ctx context.Context, username, exceptID string) (bool, error)
	EmailTaken(ctx context.Context, email, exceptID string) (bool, error)
	Update(ctx context.Context, user *model.User) error
	SoftDelete(ctx context.Context, id string) error
}

type ResultRepository interface {
	Create(ctx context.Context, result *model.Result) error
	GetByID(ctx context.Context, id int64) (*model.Result, error)
	ListByUser(ctx context.Context, userID string) ([]model.Result, error)
	Update(ctx context.Context, result *model.Result) error
	// Delete removes the result together with its habits and actions.
	Delete(ctx context.Context, id int64) error
	// DeleteByUser removes every result of a user, cascading like Delete.
	DeleteByUser(ctx context.Context, userID string) error
}

type HabitRepository interface {
	Create(ctx context.Context, habit *model.Habit) error
	GetByID(ctx context.Context, id int64) (*model.Habit, error)
	ListByResult(ctx context.Context, resultID int64) ([]model.Habit, error)
	Update(ctx context.Context, habit *model.Habit) error
	// Delete removes the habit together with its actions.
	Delete(ctx context.Context, id int64) error
}

type ActionRepository interface {
	Create(ctx context.Context, action *model.Action) error
	GetByID(ctx context.Context, id int64) (*model.Action, error)
	ListByHabit(ctx context.Context, habitID int64) ([]model.Action, error)
	Update(ctx context.Context, action *model.Action) error
	Delete(ctx context.Context, id int64) error
}

// Repositories groups the entity repositories bound to one query target.
type Repositories interface {
	Users() UserRepository
	Results() ResultRepository
	Habits() HabitRepository
	Actions() ActionRepository
}

// Store is the process-wide handle on the transactional store.
type Store interface {
	Repositories
	// Acquire reserves a dedicated session. The caller owns it exclusively
	// until Release.
	Acquire(ctx context.Context) (Session, error)
}

// Session is one reserved connection.
type Session interface {
	Begin(ctx context.Context) (Tx, error)
	// Release returns the connection to the pool. Safe to call after the
	// transaction finished either way.
	Release() error
}

// Tx is an open transaction plus repositories bound to it.
type Tx interface {
	Repositories
	Commit() error
	Rollback() error
}
