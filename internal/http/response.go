package http

import (
	"encoding/json"
	"net/http"

	"github.com/revollution/storefront/internal/domain"
	"github.com/rs/zerolog/log"
)

type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

const dbUnavailableMessage = "Database connection failed. Please check your internet connection and try again."

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func respondSuccess(w http.ResponseWriter, message string, data any) {
	respondJSON(w, http.StatusOK, Envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

func respondError(w http.ResponseWriter, status int, message, detail string) {
	respondJSON(w, status, ErrorResponse{
		Success: false,
		Message: message,
		Error:   detail,
	})
}

// handleError maps a domain error kind onto a status code. fallback is the
// message used when the failure has no user-facing message of its own.
func handleError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	message := domain.MessageOf(err)

	switch domain.KindOf(err) {
	case domain.KindMissingFields, domain.KindInvalidInput:
		respondError(w, http.StatusBadRequest, message, "")
	case domain.KindDuplicateEmail:
		respondError(w, http.StatusConflict, message, "Duplicate email")
	case domain.KindUnauthorized:
		respondError(w, http.StatusUnauthorized, message, "")
	case domain.KindNotFound:
		respondError(w, http.StatusNotFound, message, "")
	case domain.KindDatabaseUnavailable:
		requestLogger(r).Error().Err(err).Msg(fallback)
		respondError(w, http.StatusServiceUnavailable, dbUnavailableMessage, "Database connection error")
	default:
		requestLogger(r).Error().Err(err).Msg(fallback)
		detail := "Unknown error"
		if err != nil {
			detail = err.Error()
		}
		respondError(w, http.StatusInternalServerError, fallback, detail)
	}
}
