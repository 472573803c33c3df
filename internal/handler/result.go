package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/habitrack/internal/model"
)

type ResultService interface {
	Create(ctx context.Context, req model.CreateResultRequest) (int64, error)
	Get(ctx context.Context, id string) (*model.Result, error)
	ListByUser(ctx context.Context, userID string) ([]model.Result, error)
	Update(ctx context.Context, id string, req model.UpdateResultRequest) (*model.Result, error)
	Delete(ctx context.Context, id string) (*model.DeletedResult, error)
}

// ResultHandler serves /results and /users/{id}/results.
type ResultHandler struct {
	results ResultService
	logger  *slog.Logger
}

func NewResultHandler(results ResultService, logger *slog.Logger) *ResultHandler {
	return &ResultHandler{results: results, logger: logger}
}

// HTTP: POST /results
// REQUEST BODY: {"userId","name","description"}
// RESPONSE: 200 {"id": 1}
func (h *ResultHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var req model.CreateResultRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	id, err := h.results.Create(r.Context(), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, model.CreatedResponse[int64]{ID: id})
}

// HTTP: GET /results/{id}
func (h *ResultHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	result, err := h.results.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HTTP: GET /users/{id}/results
func (h *ResultHandler) HandleListByUser(w http.ResponseWriter, r *http.Request) {
	results, err := h.results.ListByUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, results)
}

// HTTP: PUT /results/{id}
func (h *ResultHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var req model.UpdateResultRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	result, err := h.results.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// HTTP: DELETE /results/{id}
// RESPONSE: 200 {"id","userId","name"}
func (h *ResultHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	deleted, err := h.results.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, deleted)
}
