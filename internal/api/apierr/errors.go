package apierr

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mcoot/clubroster/internal/model"
	"github.com/mcoot/clubroster/internal/services/auth"
)

// APIError represents an API error response
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse wraps an APIError
type ErrorResponse struct {
	Error APIError `json:"error"`
}

// Common error codes
const (
	CodeInvalidRequest     = "INVALID_REQUEST"
	CodeInvalidCategory    = "INVALID_CATEGORY"
	CodeNoValidAttendance  = "NO_VALID_ATTENDANCE"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodePlayerNotFound     = "PLAYER_NOT_FOUND"
	CodeEventNotFound      = "EVENT_NOT_FOUND"
	CodePlayerExists       = "PLAYER_EXISTS"
	CodeAdminProtected     = "ADMIN_PROTECTED"
	CodeNotFound           = "NOT_FOUND"
	CodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	CodeInternalError      = "INTERNAL_ERROR"
)

// httpError combines an HTTP status code with an APIError
type httpError struct {
	status   int
	apiError APIError
}

// Error implements error interface
func (e *httpError) Error() string {
	return e.apiError.Message
}

// WriteError writes an error response to the response writer
func WriteError(w http.ResponseWriter, err error) {
	he := toHTTPError(err)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(he.status)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: he.apiError})
}

// StatusOf returns the HTTP status WriteError would use for err
func StatusOf(err error) int {
	return toHTTPError(err).status
}

// toHTTPError converts an error to an httpError
func toHTTPError(err error) *httpError {
	// Check for specific error types
	var he *httpError
	if errors.As(err, &he) {
		return he
	}

	var ve *model.ValidationError
	if errors.As(err, &ve) {
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, ve.Message}}
	}

	switch {
	// Map roster errors
	case errors.Is(err, model.ErrPlayerNotFound):
		return &httpError{http.StatusNotFound, APIError{CodePlayerNotFound, "Player not found"}}
	case errors.Is(err, model.ErrEventNotFound):
		return &httpError{http.StatusNotFound, APIError{CodeEventNotFound, "Event not found"}}
	case errors.Is(err, model.ErrDuplicatePlayer):
		return &httpError{http.StatusConflict, APIError{CodePlayerExists, "A player with that email or username already exists"}}
	case errors.Is(err, model.ErrAdminProtected):
		return &httpError{http.StatusBadRequest, APIError{CodeAdminProtected, "Cannot remove administrator accounts"}}
	case errors.Is(err, model.ErrInvalidCategory):
		return &httpError{http.StatusBadRequest, APIError{CodeInvalidCategory, "Invalid category: must be one of " + model.CategoryNames()}}
	case errors.Is(err, model.ErrNoValidAttendance):
		return &httpError{http.StatusBadRequest, APIError{CodeNoValidAttendance, "No valid attendance records provided"}}

	// Map auth errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		return &httpError{http.StatusUnauthorized, APIError{CodeInvalidCredentials, "Invalid credentials"}}
	case errors.Is(err, auth.ErrAccountRemoved):
		return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Account no longer exists"}}

	// Storage failures share the generic 500 below
	default:
		return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, "Internal server error"}}
	}
}

// NewInvalidRequestError creates an invalid request error
func NewInvalidRequestError(message string) error {
	return &httpError{http.StatusBadRequest, APIError{CodeInvalidRequest, message}}
}

// NewUnauthorizedError creates an unauthorized error
func NewUnauthorizedError() error {
	return &httpError{http.StatusUnauthorized, APIError{CodeUnauthorized, "Authentication required"}}
}

// NewForbiddenError creates an error for a valid session lacking the required role
func NewForbiddenError() error {
	return &httpError{http.StatusForbidden, APIError{CodeForbidden, "Administrator access required"}}
}

// NewNotFoundError creates an error for an unknown API route
func NewNotFoundError() error {
	return &httpError{http.StatusNotFound, APIError{CodeNotFound, "Not found"}}
}

// NewMethodNotAllowedError creates an error for a known route with the wrong method
func NewMethodNotAllowedError() error {
	return &httpError{http.StatusMethodNotAllowed, APIError{CodeMethodNotAllowed, "Method not allowed"}}
}

// NewInternalError creates an internal server error. A non-empty requestID
// is quoted in the message so the failure can be found in the server logs.
func NewInternalError(requestID string) error {
	message := "Internal server error"
	if requestID != "" {
		message += " (request " + requestID + ")"
	}
	return &httpError{http.StatusInternalServerError, APIError{CodeInternalError, message}}
}
