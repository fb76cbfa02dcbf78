package services

import (
	"fmt"
)

// ErrorType is the category the HTTP layer maps to a status code
type ErrorType string

const (
	ErrorTypeNotFound    ErrorType = "not_found"
	ErrorTypeValidation  ErrorType = "validation"
	ErrorTypeConflict    ErrorType = "conflict"
	ErrorTypeInternal    ErrorType = "internal"
	ErrorTypeUnavailable ErrorType = "unavailable"
)

// DomainError is a categorized service failure. Message is safe to show
// to clients; Err carries the cause for logs.
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError of the same type, so errors.Is(err, ErrCarNotFound)
// holds for every not-found error
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Wrap returns a copy of a sentinel carrying cause
func (e *DomainError) Wrap(cause error) *DomainError {
	return NewDomainError(e.Type, e.Message, cause)
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

var (
	ErrUserNotFound   = NewDomainError(ErrorTypeNotFound, "user not found", nil)
	ErrCarNotFound    = NewDomainError(ErrorTypeNotFound, "car not found", nil)
	ErrRecordNotFound = NewDomainError(ErrorTypeNotFound, "record not found", nil)

	ErrInvalidRecord   = NewDomainError(ErrorTypeValidation, "Validation failed", nil)
	ErrMissingFileName = NewDomainError(ErrorTypeValidation, "file name is required", nil)

	ErrDuplicateRecord = NewDomainError(ErrorTypeConflict, "record already exists", nil)

	ErrDatabaseError = NewDomainError(ErrorTypeInternal, "database error", nil)
	ErrStorageFailed = NewDomainError(ErrorTypeInternal, "storage upload failed", nil)

	ErrStorageNotConfigured = NewDomainError(ErrorTypeUnavailable, "image storage is not configured", nil)
)
