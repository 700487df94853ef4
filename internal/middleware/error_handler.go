// file: internal/middleware/error_handler.go
package middleware

import (
	"academichub/internal/services"
	"encoding/json"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// errorBody is the JSON envelope for error responses
type errorBody struct {
	Error     *services.ServiceError `json:"error"`
	RequestID string                 `json:"request_id,omitempty"`
	Timestamp string                 `json:"timestamp"`
	Path      string                 `json:"path,omitempty"`
}

// WriteError translates any error into the standard JSON error response.
// ServiceError carries its own status code; anything else becomes a 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	serviceErr := services.GetServiceError(err)

	logger := GetRequestLogger(r.Context())
	if serviceErr.GetStatusCode() >= 500 {
		logger.Error("Request failed", zap.Error(err))
	} else {
		logger.Warn("Request rejected",
			zap.String("error_type", serviceErr.Type),
			zap.String("message", serviceErr.Message),
		)
	}

	body := &errorBody{
		Error:     serviceErr,
		RequestID: GetRequestID(r.Context()),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Path:      r.URL.Path,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(serviceErr.GetStatusCode())
	if encodeErr := json.NewEncoder(w).Encode(body); encodeErr != nil {
		logger.Error("Failed to encode error response", zap.Error(encodeErr))
	}
}

// WriteJSON writes a JSON success response
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}
