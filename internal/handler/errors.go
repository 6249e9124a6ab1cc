package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pkordes/roamlog/backend/internal/domain"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code})
}

// fail maps a service error onto a status and body. notFound is the message
// used for domain.ErrNotFound, because only the handler knows what was being
// looked up. Unexpected errors are logged and reported without detail.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error, notFound string) {
	var verr *domain.ValidationError
	var reqErr *requestError

	switch {
	case errors.As(err, &reqErr):
		writeError(w, reqErr.status, reqErr.message, reqErr.code)
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Message(), "validation_error")
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "Invalid request", "validation_error")
	case errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, notFound, "not_found")
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials", "invalid_credentials")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized", "unauthorized")
	case errors.Is(err, domain.ErrConflict):
		writeError(w, http.StatusConflict, "Username already taken", "conflict")
	case errors.Is(err, domain.ErrProviderNotConfigured):
		writeError(w, http.StatusInternalServerError, "AI is not configured on the server.", "ai_not_configured")
	case errors.Is(err, domain.ErrProviderRateLimited):
		s.log.WarnContext(r.Context(), "itinerary provider rate limited",
			"err", err, "request_id", chimiddleware.GetReqID(r.Context()))
		writeError(w, http.StatusServiceUnavailable,
			"The AI provider is busy or out of quota. Please try again later.", "ai_rate_limited")
	case errors.Is(err, domain.ErrGeneration):
		s.log.ErrorContext(r.Context(), "itinerary generation failed",
			"err", err, "request_id", chimiddleware.GetReqID(r.Context()))
		writeError(w, http.StatusInternalServerError, "Failed to generate itinerary.", "ai_generation_failed")
	default:
		s.log.ErrorContext(r.Context(), "unhandled error",
			"err", err, "method", r.Method, "path", r.URL.Path,
			"request_id", chimiddleware.GetReqID(r.Context()))
		writeError(w, http.StatusInternalServerError, "Internal server error", "internal_error")
	}
}
