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

// HabitService manages habits, each owned by a result.
type HabitService struct {
	base
}

// NewHabitService creates a HabitService.
func NewHabitService(repos repository.Repositories, exec *txn.Executor, logger *slog.Logger) *HabitService {
	return &HabitService{base{repos: repos, exec: exec, logger: logger}}
}

// Create validates the body, checks the parent result exists and stores the
// habit. It returns the new habit id.
func (s *HabitService) Create(ctx context.Context, req model.CreateHabitRequest) (int64, error) {
	req, err := validation.ValidateHabitCreate(req)
	if err != nil {
		return 0, err
	}

	habit := &model.Habit{
		ResultID:    req.ResultID,
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	}
	err = s.exec.Run(ctx, "habit.create", func(ctx context.Context, repos repository.Repositories) error {
		if _, err := validation.FindResultOrFail(ctx, repos.Results(), req.ResultID); err != nil {
			return err
		}
		return repos.Habits().Create(ctx, habit)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("habit created",
		slog.Int64("habitID", habit.ID),
		slog.Int64("resultID", habit.ResultID),
	)
	return habit.ID, nil
}

// Get returns one habit.
func (s *HabitService) Get(ctx context.Context, rawID string) (*model.Habit, error) {
	id, err := validation.ValidateID(rawID)
	if err != nil {
		return nil, err
	}
	return validation.FindHabitOrFail(ctx, s.repos.Habits(), id)
}

// ListByResult returns the habits of an existing result.
func (s *HabitService) ListByResult(ctx context.Context, rawResultID string) ([]model.Habit, error) {
	resultID, err := validation.ValidateID(rawResultID)
	if err != nil {
		return nil, err
	}
	if _, err := validation.FindResultOrFail(ctx, s.repos.Results(), resultID); err != nil {
		return nil, err
	}
	habits, err := s.repos.Habits().ListByResult(ctx, resultID)
	if err != nil {
		return nil, fmt.Errorf("service/habit: listing habits: %w", err)
	}
	return habits, nil
}

// Update applies a partial patch and returns the stored habit.
func (s *HabitService) Update(ctx context.Context, rawID string, req model.UpdateHabitRequest) (*model.Habit, error) {
	id, err := validation.ValidateID(rawID)
	if err != nil {
		return nil, err
	}
	req, err = validation.ValidateHabitUpdate(req)
	if err != nil {
		return nil, err
	}

	habit, err := txn.Do(ctx, s.exec, "habit.update", func(ctx context.Context, repos repository.Repositories) (*model.Habit, error) {
		habit, err := validation.FindHabitOrFail(ctx, repos.Habits(), id)
		if err != nil {
			return nil, err
		}
		if req.Name == nil && req.Description == nil && req.Color == nil {
			return habit, nil
		}
		if req.Name != nil {
			habit.Name = *req.Name
		}
		if req.Description != nil {
			habit.Description = *req.Description
		}
		if req.Color != nil {
			habit.Color = *req.Color
		}
		if err := repos.Habits().Update(ctx, habit); err != nil {
			return nil, err
		}
		return habit, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("habit updated", slog.Int64("habitID", id))
	return habit, nil
}

// Delete removes a habit with its actions and returns the removed habit.
func (s *HabitService) Delete(ctx context.Context, rawID string) (*model.Habit, error) {
	id, err := validation.ValidateID(rawID)
	if err != nil {
		return nil, err
	}

	habit, err := txn.Do(ctx, s.exec, "habit.delete", func(ctx context.Context, repos repository.Repositories) (*model.Habit, error) {
		habit, err := validation.FindHabitOrFail(ctx, repos.Habits(), id)
		if err != nil {
			return nil, err
		}
		if err := repos.Habits().Delete(ctx, id); err != nil {
			return nil, err
		}
		return habit, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("habit deleted", slog.Int64("habitID", id))
	return habit, nil
}
