package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/habitrack/internal/model"
)

type ActionService interface {
	Create(ctx context.Context, req model.CreateActionRequest) (int64, error)
	Get(ctx context.Context, id string) (*model.Action, error)
	ListByHabit(ctx context.Context, habitID string) ([]model.Action, error)
	Update(ctx context.Context, id string, req model.UpdateActionRequest) (*model.Action, error)
	Delete(ctx context.Context, id string) (*model.Action, error)
}

type ActionHandler struct {
	actions ActionService
	logger  *slog.Logger
}

func NewActionHandler(actions ActionService, logger *slog.Logger) *ActionHandler {
	return &ActionHandler{actions: actions, logger: logger}
}

func (h *ActionHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.CreateActionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	id, err := h.actions.Create(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.CreatedResponse[int64]{ID: id})
}

func (h *ActionHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	action, err := h.actions.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, action)
}

// HandleListByHabit serves GET /habits/{id}/actions.
func (h *ActionHandler) HandleListByHabit(w http.ResponseWriter, r *http.Request) {
	actions, err := h.actions.ListByHabit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, actions)
}

func (h *ActionHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateActionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	action, err := h.actions.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, action)
}

func (h *ActionHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	action, err := h.actions.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, action)
}
