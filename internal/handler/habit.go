package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/habitrack/internal/model"
)

type HabitService interface {
	Create(ctx context.Context, req model.CreateHabitRequest) (int64, error)
	Get(ctx context.Context, id string) (*model.Habit, error)
	ListByResult(ctx context.Context, resultID string) ([]model.Habit, error)
	Update(ctx context.Context, id string, req model.UpdateHabitRequest) (*model.Habit, error)
	Delete(ctx context.Context, id string) (*model.Habit, error)
}

type HabitHandler struct {
	habits HabitService
	logger *slog.Logger
}

func NewHabitHandler(habits HabitService, logger *slog.Logger) *HabitHandler {
	return &HabitHandler{habits: habits, logger: logger}
}

func (h *HabitHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.CreateHabitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	id, err := h.habits.Create(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.CreatedResponse[int64]{ID: id})
}

func (h *HabitHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	habit, err := h.habits.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

// HandleListByResult serves GET /results/{id}/habits.
func (h *HabitHandler) HandleListByResult(w http.ResponseWriter, r *http.Request) {
	habits, err := h.habits.ListByResult(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, habits)
}

func (h *HabitHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateHabitRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	habit, err := h.habits.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, habit)
}

func (h *HabitHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	habit, err := h.habits.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, habit)
}
