package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"

	apperrors "github.com/moritahq/vet-night-map/backend/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps typed application errors onto HTTP statuses
func respondWithAppError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsType(err, apperrors.ErrorTypeValidation):
		respondWithError(w, http.StatusBadRequest, appErrorMessage(err))
	case apperrors.IsType(err, apperrors.ErrorTypeNotFound),
		apperrors.IsType(err, apperrors.ErrorTypeNoResults):
		respondWithError(w, http.StatusNotFound, appErrorMessage(err))
	case apperrors.IsType(err, apperrors.ErrorTypeRateLimited):
		respondWithError(w, http.StatusTooManyRequests, appErrorMessage(err))
	case apperrors.IsType(err, apperrors.ErrorTypeExternal):
		respondWithError(w, http.StatusBadGateway, appErrorMessage(err))
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

func appErrorMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return err.Error()
}

func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		return strings.TrimSpace(parts[0])
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err == nil {
		return host
	}
	return r.RemoteAddr
}
