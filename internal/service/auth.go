package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/habitrack/internal/apperror"
	"github.com/sakif/habitrack/internal/auth"
	"github.com/sakif/habitrack/internal/model"
	"github.com/sakif/habitrack/internal/repository"
	"github.com/sakif/habitrack/internal/validation"
)

// AuthService exchanges a username and password for an access token.
//
//	AuthHandler (HTTP) → AuthService → UserRepository (DB)
//	                                 ↘ PasswordService (bcrypt)
//	                                 ↘ TokenService (JWT)
//
// Unknown usernames and wrong passwords produce the same Unauthorized error so
// the response does not reveal which accounts exist.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// Login verifies the credential and issues a token for the user.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (string, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return "", apperror.MissingField("username", apperror.MsgUsernameRequired)
	}
	if req.Password == "" {
		return "", apperror.MissingField("password", apperror.MsgPasswordRequired)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			s.logger.Info("login failed", slog.String("reason", "unknown user"))
			return "", apperror.Unauthorized(apperror.MsgBadCredentials)
		}
		return "", fmt.Errorf("service/auth: looking up user: %w", err)
	}

	if err := s.passwords.VerifyCredential(user, req.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidCredential) {
			s.logger.Info("login failed",
				slog.String("userID", user.ID),
				slog.String("reason", "wrong password"),
			)
			return "", apperror.Unauthorized(apperror.MsgBadCredentials)
		}
		return "", fmt.Errorf("service/auth: verifying credential for user %s: %w", user.ID, err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return "", fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in", slog.String("userID", user.ID))
	return token, nil
}

// Me returns the user a validated token belongs to. A token for a user that
// has since been deleted is Unauthorized.
func (s *AuthService) Me(ctx context.Context, userID string) (*model.User, error) {
	if userID == "" {
		return nil, apperror.Unauthorized(apperror.MsgUnauthorized)
	}
	user, err := validation.FindUserOrFail(ctx, s.users, userID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized(apperror.MsgUnauthorized)
		}
		return nil, err
	}
	return user, nil
}
