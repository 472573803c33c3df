package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/habitrack/internal/model"
	"github.com/sakif/habitrack/internal/repository"
	"github.com/sakif/habitrack/internal/txn"
	"github.com/sakif/habitrack/internal/validation"
)

// ActionService manages actions, each owned by a habit.
type ActionService struct {
	base
}

// NewActionService creates an ActionService.
func NewActionService(repos repository.Repositories, exec *txn.Executor, logger *slog.Logger) *ActionService {
	return &ActionService{base{repos: repos, exec: exec, logger: logger}}
}

// Create validates the body, checks the parent habit exists and stores the
// action. It returns the new action id.
func (s *ActionService) Create(ctx context.Context, req model.CreateActionRequest) (int64, error) {
	req, err := validation.ValidateActionCreate(req)
	if err != nil {
		return 0, err
	}

	action := &model.Action{HabitID: req.HabitID, Name: req.Name, Color: req.Color}
	err = s.exec.Run(ctx, "action.create", func(ctx context.Context, repos repository.Repositories) error {
		if _, err := validation.FindHabitOrFail(ctx, repos.Habits(), req.HabitID); err != nil {
			return err
		}
		return repos.Actions().Create(ctx, action)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("action created",
		slog.Int64("actionID", action.ID),
		slog.Int64("habitID", action.HabitID),
	)
	return action.ID, nil
}

// Get returns one action.
func (s *ActionService) Get(ctx context.Context, rawID string) (*model.Action, error) {
	id, err := validation.ValidateID(rawID)
	if err != nil {
		return nil, err
	}
	return validation.FindActionOrFail(ctx, s.repos.Actions(), id)
}

// ListByHabit returns the actions of an existing habit.
func (s *ActionService) ListByHabit(ctx context.Context, rawHabitID string) ([]model.Action, error) {
	habitID, err := validation.ValidateID(rawHabitID)
	if err != nil {
		return nil, err
	}
	if _, err := validation.FindHabitOrFail(ctx, s.repos.Habits(), habitID); err != nil {
		return nil, err
	}
	actions, err := s.repos.Actions().ListByHabit(ctx, habitID)
	if err != nil {
		return nil, fmt.Errorf("service/action: listing actions: %w", err)
	}
	return actions, nil
}

// Update applies a partial patch and returns the stored action.
func (s *ActionService) Update(ctx context.Context, rawID string, req model.UpdateActionRequest) (*model.Action, error) {
	id, err := validation.ValidateID(rawID)
	if err != nil {
		return nil, err
	}
	req, err = validation.ValidateActionUpdate(req)
	if err != nil {
		return nil, err
	}

	action, err := txn.Do(ctx, s.exec, "action.update", func(ctx context.Context, repos repository.Repositories) (*model.Action, error) {
		action, err := validation.FindActionOrFail(ctx, repos.Actions(), id)
		if err != nil {
			return nil, err
		}
		if req.Name == nil && req.Color == nil {
			return action, nil
		}
		if req.Name != nil {
			action.Name = *req.Name
		}
		if req.Color != nil {
			action.Color = *req.Color
		}
		if err := repos.Actions().Update(ctx, action); err != nil {
			return nil, err
		}
		return action, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("action updated", slog.Int64("actionID", id))
	return action, nil
}

// Delete removes an action and returns it.
func (s *ActionService) Delete(ctx context.Context, rawID string) (*model.Action, error) {
	id, err := validation.ValidateID(rawID)
	if err != nil {
		return nil, err
	}

	action, err := txn.Do(ctx, s.exec, "action.delete", func(ctx context.Context, repos repository.Repositories) (*model.Action, error) {
		action, err := validation.FindActionOrFail(ctx, repos.Actions(), id)
		if err != nil {
			return nil, err
		}
		if err := repos.Actions().Delete(ctx, id); err != nil {
			return nil, err
		}
		return action, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("action deleted", slog.Int64("actionID", id))
	return action, nil
}
