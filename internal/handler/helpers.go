package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"yogablocks/internal/domain"
	"yogablocks/internal/httputil"
)

// handleError converts domain errors to HTTP responses.
// Anything unclassified is logged and reported as a generic 500.
func handleError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		httputil.RespondError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		httputil.RespondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// respondBodyError answers a request body that failed to decode.
// Bodies over the size cap get 413, anything else 400.
func respondBodyError(w http.ResponseWriter, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		httputil.RespondError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
}

// pathID returns the {id} path value, answering 404 when it is not a UUID.
// Non-UUID ids can never name a stored document.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	parsed, err := uuid.Parse(id)
	if err != nil || len(id) != 36 {
		httputil.RespondError(w, http.StatusNotFound, "document not found")
		return "", false
	}
	return parsed.String(), true
}
