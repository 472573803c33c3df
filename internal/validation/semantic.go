package validation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sakif/habitrack/internal/apperror"
	"github.com/sakif/habitrack/internal/model"
	"github.com/sakif/habitrack/internal/repository"
)

// EnsureUsernameAvailable fails with Conflict when a live user other than
// exceptID already uses username. Matching is case-sensitive.
func EnsureUsernameAvailable(ctx context.Context, users repository.UserRepository, username, exceptID string) error {
	taken, err := users.UsernameTaken(ctx, username, exceptID)
	if err != nil {
		return fmt.Errorf("checking username availability: %w", err)
	}
	if taken {
		return apperror.Conflict("username", apperror.MsgUsernameTaken)
	}
	return nil
}

// EnsureEmailAvailable is the email counterpart of EnsureUsernameAvailable.
func EnsureEmailAvailable(ctx context.Context, users repository.UserRepository, email, exceptID string) error {
	taken, err := users.EmailTaken(ctx, email, exceptID)
	if err != nil {
		return fmt.Errorf("checking email availability: %w", err)
	}
	if taken {
		return apperror.Conflict("email", apperror.MsgEmailTaken)
	}
	return nil
}

// FindUserOrFail returns the live user with id, or NotFound("User").
// Soft-deleted users count as missing.
func FindUserOrFail(ctx context.Context, users repository.UserRepository, id string) (*model.User, error) {
	user, err := users.GetByID(ctx, id)
	if err := lookupErr(user == nil, err, apperror.ResourceUser); err != nil {
		return nil, err
	}
	return user, nil
}

func FindResultOrFail(ctx context.Context, results repository.ResultRepository, id int64) (*model.Result, error) {
	result, err := results.GetByID(ctx, id)
	if err := lookupErr(result == nil, err, apperror.ResourceResult); err != nil {
		return nil, err
	}
	return result, nil
}

func FindHabitOrFail(ctx context.Context, habits repository.HabitRepository, id int64) (*model.Habit, error) {
	habit, err := habits.GetByID(ctx, id)
	if err := lookupErr(habit == nil, err, apperror.ResourceHabit); err != nil {
		return nil, err
	}
	return habit, nil
}

func FindActionOrFail(ctx context.Context, actions repository.ActionRepository, id int64) (*model.Action, error) {
	action, err := actions.GetByID(ctx, id)
	if err := lookupErr(action == nil, err, apperror.ResourceAction); err != nil {
		return nil, err
	}
	return action, nil
}

// lookupErr folds a repository lookup into NotFound or a wrapped store error.
// NotFound from the repository is returned unchanged.
func lookupErr(missing bool, err error, resource string) error {
	switch {
	case errors.Is(err, apperror.ErrNotFound):
		return err
	case err != nil:
		return fmt.Errorf("loading %s: %w", strings.ToLower(resource), err)
	case missing:
		return apperror.NotFound(resource)
	}
	return nil
}
