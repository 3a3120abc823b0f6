package config

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/muraja-app/muraja-backend/internal/apperror"
)

type successEnvelope struct {
	Success bool                   `json:"success"`
	Data    interface{}            `json:"data,omitempty"`
	Message string                 `json:"message,omitempty"`
	Meta    map[string]interface{} `json:"meta,omitempty"`
}

type errorEnvelope struct {
	Success bool               `json:"success"`
	Error   *apperror.AppError `json:"error"`
}

func JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successEnvelope{Success: true, Data: data})
}

// JSONMeta is JSON with an extra meta block (counts, pagination).
func JSONMeta(w http.ResponseWriter, status int, data interface{}, meta map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(successEnvelope{Success: true, Data: data, Meta: meta})
}

// Error writes the envelope for an *apperror.AppError, or a generic internal
// error for anything else so storage details never leak to clients.
func Error(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		appErr = apperror.Internal("internal server error")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.Status)
	_ = json.NewEncoder(w).Encode(errorEnvelope{Success: false, Error: appErr})
}
