package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/stockfolio/stockfolio/internal/types"
)

// ErrorResponse represents an API error response.
type ErrorResponse struct {
	Error types.ServiceError `json:"error"`
}

// respondError sends an error response.
func respondError(w http.ResponseWriter, statusCode int, code, message string, details map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := ErrorResponse{
		Error: types.ServiceError{
			Code:    code,
			Message: message,
			Details: details,
		},
	}

	json.NewEncoder(w).Encode(response)
}

// respondJSON sends a JSON response.
func respondJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// parseJSONBody parses JSON request body.
func parseJSONBody(r *http.Request, v interface{}) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}

// respondServiceError maps a service error to an HTTP response.
func respondServiceError(w http.ResponseWriter, err error) {
	status, code, message := mapServiceError(err)
	respondError(w, status, code, message, nil)
}

// mapServiceError maps service errors to HTTP status codes.
func mapServiceError(err error) (int, string, string) {
	var serviceErr *types.ServiceError
	if errors.As(err, &serviceErr) {
		switch serviceErr.Code {
		case types.CodeInvalidInput:
			return http.StatusBadRequest, serviceErr.Code, serviceErr.Message
		case types.CodeUnauthenticated, types.CodeInvalidCredentials:
			return http.StatusUnauthorized, serviceErr.Code, serviceErr.Message
		case types.CodeNotFound:
			return http.StatusNotFound, serviceErr.Code, serviceErr.Message
		case types.CodeConflict:
			return http.StatusConflict, serviceErr.Code, serviceErr.Message
		case types.CodeUpstreamError:
			return http.StatusBadGateway, serviceErr.Code, serviceErr.Message
		default:
			return http.StatusInternalServerError, types.CodeInternalError, serviceErr.Message
		}
	}

	return http.StatusInternalServerError, types.CodeInternalError, err.Error()
}
