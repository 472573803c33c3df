// Package handler contains the HTTP handlers. They parse the request, call one
// service method and write the result; no business rules live here.
package handler

// Every error response has the same shape:
//
//	{"message": "Username already exists"}
//
// writeError is the single place that maps an error to a status code, via
// apperror.StatusOf. Anything that is not an *apperror.AppError becomes a 500
// with a generic message; the real error only goes to the log.

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sakif/habitrack/internal/apperror"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Message string `json:"message"`
}

// writeJSON sends data as JSON. Headers and status go out before the body.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already sent; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

func writeError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		writeJSON(w, appErr.Status(), ErrorResponse{Message: appErr.Message})
		return
	}

	// Never expose internal error details to the client.
	logger.Error("request failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{Message: apperror.MsgInternal})
}

// decodeJSON reads a single JSON object into dst. An empty body decodes to the
// zero value so that validation, not the decoder, reports the missing fields.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		return apperror.InvalidFormat("body", apperror.MsgInvalidJSON)
	}
	return nil
}
