package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/middleware"
	"storefront/internal/model"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Request headers carrying the caller's identity.
const (
	SessionIDHeader = "X-Session-ID"
	UserIDHeader    = "X-User-ID"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent, so an encode error cannot change the response.
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response with the given status code and message.
func writeError(w http.ResponseWriter, r *http.Request, status int, code, message string, logger zerolog.Logger) {
	event := logger.Warn()
	if status >= http.StatusInternalServerError {
		event = logger.Error()
	}
	event.Str("code", code).Str("error", message).Int("status", status).Msg("handler error")

	writeJSON(w, status, model.ErrorResponse{
		Error:         code,
		Message:       message,
		CorrelationID: middleware.CorrelationIDFromContext(r.Context()),
	})
}

// writeServiceError maps an error returned by a service to a response.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger zerolog.Logger) {
	var domainErr *model.DomainError
	if !errors.As(err, &domainErr) {
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, r, http.StatusInternalServerError, model.ErrCodeInternalError, "internal server error", logger)
		return
	}

	writeError(w, r, statusForCode(domainErr.Code), domainErr.Code, err.Error(), logger)
}

func statusForCode(code string) int {
	switch code {
	case model.ErrCodeEmptyCart, model.ErrCodeIncompleteCheckout:
		return http.StatusUnprocessableEntity
	case model.ErrCodeInvalidStatusTransition:
		return http.StatusConflict
	case model.ErrCodeOrderNotFound:
		return http.StatusNotFound
	case model.ErrCodeUnauthorised:
		return http.StatusUnauthorized
	default:
		return http.StatusBadRequest
	}
}

// sessionID returns the X-Session-ID header or writes a 400.
func sessionID(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (string, bool) {
	id := strings.TrimSpace(r.Header.Get(SessionIDHeader))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingSession, "X-Session-ID header is required", logger)
		return "", false
	}
	return id, true
}

// userID returns the X-User-ID header or writes a 400.
func userID(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (string, bool) {
	id := strings.TrimSpace(r.Header.Get(UserIDHeader))
	if id == "" {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeMissingUser, "X-User-ID header is required", logger)
		return "", false
	}
	return id, true
}

func productIDParam(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (int64, bool) {
	raw := chi.URLParam(r, "productID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id < 1 {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "invalid product ID", logger)
		return 0, false
	}
	return id, true
}

func orderIDParam(w http.ResponseWriter, r *http.Request, logger zerolog.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeValidation, "invalid order ID format", logger)
		return uuid.Nil, false
	}
	return id, true
}
