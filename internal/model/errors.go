package model

import "errors"

// Common errors used across the application
var (
	// Storage errors
	ErrDocumentNotFound   = errors.New("document not found")
	ErrStorageUnavailable = errors.New("storage unavailable")

	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrDuplicatePlayer = errors.New("player already exists")
	ErrAdminProtected  = errors.New("administrator accounts cannot be removed")

	// Event errors
	ErrEventNotFound   = errors.New("event not found")
	ErrInvalidCategory = errors.New("invalid event category")

	// Attendance errors
	ErrNoValidAttendance = errors.New("no valid attendance records provided")
)

// ValidationError reports input that was rejected before any state changed
type ValidationError struct {
	Message string
}

// Error implements error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with the given message
func NewValidationError(message string) error {
	return &ValidationError{Message: message}
}

// IsValidation reports whether err is a ValidationError or one of the
// validation sentinels
func IsValidation(err error) bool {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return true
	}
	return errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrNoValidAttendance)
}
