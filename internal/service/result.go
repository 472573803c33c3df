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

// ResultService manages results (a user's goals).
type ResultService struct {
	base
}

func NewResultService(repos repository.Repositories, exec *txn.Executor, logger *slog.Logger) *ResultService {
	return &ResultService{base{repos: repos, exec: exec, logger: logger}}
}

// Create adds a result for an existing user and returns its id.
func (s *ResultService) Create(ctx context.Context, req model.CreateResultRequest) (int64, error) {
	req, err := validation.ValidateResultCreate(req)
	if err != nil {
		return 0, err
	}

	result := &model.Result{
		UserID:      req.UserID,
		Name:        req.Name,
		Description: req.Description,
	}
	err = s.exec.Run(ctx, "result.create", func(ctx context.Context, repos repository.Repositories) error {
		if _, err := validation.FindUserOrFail(ctx, repos.Users(), req.UserID); err != nil {
			return err
		}
		return repos.Results().Create(ctx, result)
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("result created",
		slog.Int64("resultID", result.ID),
		slog.String("userID", result.UserID),
	)
	return result.ID, nil
}

func (s *ResultService) Get(ctx context.Context, rawID string) (*model.Result, error) {
	id, err := validation.ValidateID(rawID)
	if err != nil {
		return nil, err
	}
	return validation.FindResultOrFail(ctx, s.repos.Results(), id)
}

// ListByUser returns the results of a live user. An unknown user is an error,
// not an empty list.
func (s *ResultService) ListByUser(ctx context.Context, rawUserID string) ([]model.Result, error) {
	userID, err := validation.ValidateUUID(rawUserID)
	if err != nil {
		return nil, err
	}
	if _, err := validation.FindUserOrFail(ctx, s.repos.Users(), userID); err != nil {
		return nil, err
	}
	results, err := s.repos.Results().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service/result: listing results: %w", err)
	}
	return results, nil
}

func (s *ResultService) Update(ctx context.Context, rawID string, req model.UpdateResultRequest) (*model.Result, error) {
	id, err := validation.ValidateID(rawID)
	if err != nil {
		return nil, err
	}
	req, err = validation.ValidateResultUpdate(req)
	if err != nil {
		return nil, err
	}

	result, err := txn.Do(ctx, s.exec, "result.update", func(ctx context.Context, repos repository.Repositories) (*model.Result, error) {
		result, err := validation.FindResultOrFail(ctx, repos.Results(), id)
		if err != nil {
			return nil, err
		}
		if req.Name == nil && req.Description == nil {
			return result, nil
		}
		if req.Name != nil {
			result.Name = *req.Name
		}
		if req.Description != nil {
			result.Description = *req.Description
		}
		if err := repos.Results().Update(ctx, result); err != nil {
			return nil, err
		}
		return result, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("result updated", slog.Int64("resultID", id))
	return result, nil
}

// Delete removes a result with its habits and actions.
func (s *ResultService) Delete(ctx context.Context, rawID string) (*model.DeletedResult, error) {
	id, err := validation.ValidateID(rawID)
	if err != nil {
		return nil, err
	}

	deleted, err := txn.Do(ctx, s.exec, "result.delete", func(ctx context.Context, repos repository.Repositories) (*model.DeletedResult, error) {
		result, err := validation.FindResultOrFail(ctx, repos.Results(), id)
		if err != nil {
			return nil, err
		}
		if err := repos.Results().Delete(ctx, id); err != nil {
			return nil, err
		}
		return &model.DeletedResult{ID: result.ID, UserID: result.UserID, Name: result.Name}, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("result deleted", slog.Int64("resultID", id))
	return deleted, nil
}
