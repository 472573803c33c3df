package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/sakif/habitrack/internal/apperror"
	"github.com/sakif/habitrack/internal/auth"
	"github.com/sakif/habitrack/internal/model"
)

type AuthService interface {
	Login(ctx context.Context, req model.LoginRequest) (string, error)
	Me(ctx context.Context, userID string) (*model.User, error)
}

// AuthHandler serves /auth. HandleMe must sit behind auth.RequireAuth.
type AuthHandler struct {
	auth   AuthService
	logger *slog.Logger
}

func NewAuthHandler(svc AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: svc, logger: logger}
}

// HandleLogin exchanges a username and password for a bearer token.
//
// HTTP: POST /auth/login
// REQUEST BODY: {"username","password"}
// RESPONSE: 200 {"token": "<jwt>"} | 401 {"message":"Invalid username or password"}
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	token, err := h.auth.Login(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.TokenResponse{Token: token})
}

// HandleMe returns the user the bearer token belongs to.
//
// HTTP: GET /auth/me
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := auth.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, h.logger, apperror.Unauthorized(apperror.MsgUnauthorized))
		return
	}

	user, err := h.auth.Me(r.Context(), userID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
