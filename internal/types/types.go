// Package types provides common type definitions shared across the stockfolio system.
package types

// Error codes used across service and API layers. The API layer owns the
// mapping from code to HTTP status.
const (
	// CodeInvalidInput indicates a missing or malformed request field
	CodeInvalidInput = "INVALID_INPUT"
	// CodeUnauthenticated indicates a missing or expired session
	CodeUnauthenticated = "UNAUTHENTICATED"
	// CodeInvalidCredentials indicates a failed login attempt
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	// CodeConflict indicates a uniqueness constraint violation
	CodeConflict = "CONFLICT"
	// CodeNotFound indicates a resource that is absent or not owned by the caller
	CodeNotFound = "NOT_FOUND"
	// CodeUpstreamError indicates a market-data provider failure
	CodeUpstreamError = "UPSTREAM_ERROR"
	// CodeInternalError indicates an unexpected failure
	CodeInternalError = "INTERNAL_ERROR"
)

// ServiceError represents a structured error response
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}

// NewServiceError creates a ServiceError with the given code and message.
func NewServiceError(code, message string) *ServiceError {
	return &ServiceError{Code: code, Message: message}
}
