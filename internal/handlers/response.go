package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/andreprog02/saas-sst/internal/models"
	"github.com/andreprog02/saas-sst/internal/services"
)

func writeJSONResponse(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeErrorResponse(w http.ResponseWriter, statusCode int, message string, err error) {
	response := map[string]interface{}{
		"error":     message,
		"status":    statusCode,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if err != nil && statusCode < http.StatusInternalServerError {
		response["details"] = err.Error()
	}
	writeJSONResponse(w, statusCode, response)
}

// statusFor maps service errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusUnprocessableEntity
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrAssetNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmployeeNotEligible), errors.Is(err, services.ErrInsufficientStock):
		return http.StatusConflict
	case errors.Is(err, services.ErrTenantInactive):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// writeServiceError logs and writes a service failure
func writeServiceError(w http.ResponseWriter, log *logrus.Entry, message string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.WithError(err).Error(message)
	} else {
		log.WithError(err).Warn(message)
	}
	writeErrorResponse(w, status, message, err)
}
