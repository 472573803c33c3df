package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/habitrack/internal/auth"
	"github.com/sakif/habitrack/internal/model"
	"github.com/sakif/habitrack/internal/repository"
	"github.com/sakif/habitrack/internal/txn"
	"github.com/sakif/habitrack/internal/validation"
)

// UserService handles account lifecycle.
type UserService struct {
	base
	passwords *auth.PasswordService
}

// NewUserService wires a UserService. repos are used for reads outside a
// transaction; writes go through exec.
func NewUserService(
	repos repository.Repositories,
	exec *txn.Executor,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		base:      base{repos: repos, exec: exec, logger: logger},
		passwords: passwords,
	}
}

// Create registers a user and returns the new id.
//
// The password is hashed before the transaction starts: bcrypt is slow and
// does not need the database.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (string, error) {
	req, err := validation.ValidateUserCreate(req)
	if err != nil {
		return "", err
	}

	user := &model.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}
	if err := s.passwords.SetCredential(user, req.Password); err != nil {
		return "", fmt.Errorf("service/user: hashing password: %w", err)
	}

	err = s.exec.Run(ctx, "user.create", func(ctx context.Context, repos repository.Repositories) error {
		if err := validation.EnsureUsernameAvailable(ctx, repos.Users(), user.Username, ""); err != nil {
			return err
		}
		if err := validation.EnsureEmailAvailable(ctx, repos.Users(), user.Email, ""); err != nil {
			return err
		}
		return repos.Users().Create(ctx, user)
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("user created", slog.String("userID", user.ID))
	return user.ID, nil
}

// Get returns a live user.
func (s *UserService) Get(ctx context.Context, rawID string) (*model.User, error) {
	id, err := validation.ValidateUUID(rawID)
	if err != nil {
		return nil, err
	}
	return validation.FindUserOrFail(ctx, s.repos.Users(), id)
}

// List returns every live user.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repos.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service/user: listing users: %w", err)
	}
	return users, nil
}

// Update applies a partial patch. Only supplied, non-empty fields change.
// Username and email are re-checked for uniqueness only when they actually
// change, so re-sending your own username is not a conflict.
func (s *UserService) Update(ctx context.Context, rawID string, req model.UpdateUserRequest) (*model.User, error) {
	id, err := validation.ValidateUUID(rawID)
	if err != nil {
		return nil, err
	}
	req, err = validation.ValidateUserUpdate(req)
	if err != nil {
		return nil, err
	}

	var cred model.User
	if req.Password != nil {
		if err := s.passwords.SetCredential(&cred, *req.Password); err != nil {
			return nil, fmt.Errorf("service/user: hashing password: %w", err)
		}
	}

	user, err := txn.Do(ctx, s.exec, "user.update", func(ctx context.Context, repos repository.Repositories) (*model.User, error) {
		user, err := validation.FindUserOrFail(ctx, repos.Users(), id)
		if err != nil {
			return nil, err
		}
		if req.Empty() {
			return user, nil
		}

		if req.Username != nil && *req.Username != user.Username {
			if err := validation.EnsureUsernameAvailable(ctx, repos.Users(), *req.Username, id); err != nil {
				return nil, err
			}
			user.Username = *req.Username
		}
		if req.Email != nil && *req.Email != user.Email {
			if err := validation.EnsureEmailAvailable(ctx, repos.Users(), *req.Email, id); err != nil {
				return nil, err
			}
			user.Email = *req.Email
		}
		if req.FirstName != nil {
			user.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			user.LastName = *req.LastName
		}
		if req.Password != nil {
			user.PasswordHash = cred.PasswordHash
			user.PasswordSalt = cred.PasswordSalt
		}

		if err := repos.Users().Update(ctx, user); err != nil {
			return nil, err
		}
		return user, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user updated",
		slog.String("userID", id),
		slog.Bool("passwordChanged", req.Password != nil),
	)
	return user, nil
}

// Delete soft-deletes a user and hard-deletes everything the user owns.
func (s *UserService) Delete(ctx context.Context, rawID string) (*model.DeletedUser, error) {
	id, err := validation.ValidateUUID(rawID)
	if err != nil {
		return nil, err
	}

	deleted, err := txn.Do(ctx, s.exec, "user.delete", func(ctx context.Context, repos repository.Repositories) (*model.DeletedUser, error) {
		user, err := validation.FindUserOrFail(ctx, repos.Users(), id)
		if err != nil {
			return nil, err
		}
		if err := repos.Results().DeleteByUser(ctx, id); err != nil {
			return nil, err
		}
		if err := repos.Users().SoftDelete(ctx, id); err != nil {
			return nil, err
		}
		return &model.DeletedUser{
			Username:  user.Username,
			Email:     user.Email,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("user deleted", slog.String("userID", id))
	return deleted, nil
}
